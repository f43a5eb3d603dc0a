package services

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
)

// PurchaseSvcFacade manages product offers and purchases.
type PurchaseSvcFacade interface {
	// CreateOffer lists the product of one of the planner's active plans.
	CreateOffer(ctx context.Context, plannerID string, req dto.CreateOfferRequest) (*domain.ProductOffer, error)

	// ListOffers retrieves active offers.
	ListOffers(ctx context.Context, limit, offset int) ([]domain.ProductOffer, error)

	// PurchaseProduct buys from an offer: inventory is checked and
	// decremented atomically, the buyer's account is debited and the
	// planner's product account credited, and the movement is recorded in
	// the ledger. Overselling fails the whole operation.
	PurchaseProduct(ctx context.Context, buyer domain.Buyer, req dto.PurchaseProductRequest) (*domain.Purchase, error)

	// ListPurchases retrieves the purchases of an actor.
	ListPurchases(ctx context.Context, buyer domain.Buyer) ([]domain.Purchase, error)
}
