package repositories

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OfferReader defines read operations for product offers.
type OfferReader interface {
	// FindOfferByID retrieves an offer by its unique identifier.
	FindOfferByID(ctx context.Context, offerID string) (*domain.ProductOffer, error)

	// ListActiveOffers retrieves all offers with remaining inventory.
	ListActiveOffers(ctx context.Context, limit int, offset int) ([]domain.ProductOffer, error)
}

// OfferWriter defines write operations for product offers.
type OfferWriter interface {
	// SaveOffer persists a new offer.
	SaveOffer(ctx context.Context, offer domain.ProductOffer) error

	// DeactivateOffer clears the active flag, hiding the offer from listings.
	DeactivateOffer(ctx context.Context, offerID string) error

	// RecordPurchase performs the whole purchase atomically: it locks the
	// offer row, verifies and decrements inventory (deactivating at zero),
	// applies the balance deltas, appends the ledger transaction and stores
	// the purchase record. Insufficient inventory fails the whole operation
	// with apperrors.ErrInsufficientInventory and changes nothing.
	RecordPurchase(ctx context.Context, offerID string, purchase domain.Purchase, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
}

// PurchaseReader defines read operations for purchase records.
type PurchaseReader interface {
	// ListPurchasesOfBuyer retrieves all purchases made by an actor.
	ListPurchasesOfBuyer(ctx context.Context, buyer domain.Buyer) ([]domain.Purchase, error)
}

// OfferRepositoryFacade combines offer and purchase repository interfaces.
type OfferRepositoryFacade interface {
	OfferReader
	OfferWriter
	PurchaseReader
}

// OfferRepositoryWithTx extends OfferRepositoryFacade with transaction capabilities.
type OfferRepositoryWithTx interface {
	OfferRepositoryFacade
	TransactionManager
}
