package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type offerRepository struct {
	BaseRepository
}

// NewOfferRepository creates a new repository for product offers and
// purchase records.
func NewOfferRepository(pool *pgxpool.Pool) repositories.OfferRepositoryWithTx {
	return &offerRepository{BaseRepository{Pool: pool}}
}

const offerColumns = `offer_id, plan_id, name, description, amount_available, active, created_at, last_updated_at`

func scanOffer(row pgx.Row) (domain.ProductOffer, error) {
	var o domain.ProductOffer
	err := row.Scan(
		&o.OfferID,
		&o.PlanID,
		&o.Name,
		&o.Description,
		&o.AmountAvailable,
		&o.Active,
		&o.CreatedAt,
		&o.LastUpdatedAt,
	)
	return o, err
}

// SaveOffer inserts a new offer row.
func (r *offerRepository) SaveOffer(ctx context.Context, offer domain.ProductOffer) error {
	query := `
		INSERT INTO product_offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		offer.OfferID,
		offer.PlanID,
		offer.Name,
		offer.Description,
		offer.AmountAvailable,
		offer.Active,
		offer.CreatedAt,
		offer.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer %s: %w", offer.OfferID, err)
	}
	return nil
}

// FindOfferByID retrieves an offer by its ID.
func (r *offerRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.ProductOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM product_offers WHERE offer_id = $1;`
	o, err := scanOffer(r.Pool.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find offer by ID %s: %w", offerID, err)
	}
	return &o, nil
}

// ListActiveOffers retrieves offers with remaining inventory, newest first.
func (r *offerRepository) ListActiveOffers(ctx context.Context, limit int, offset int) ([]domain.ProductOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM product_offers
		WHERE active = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query active offers: %w", err)
	}
	defer rows.Close()

	offers := []domain.ProductOffer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offer rows: %w", err)
	}
	return offers, nil
}

// DeactivateOffer clears the active flag.
func (r *offerRepository) DeactivateOffer(ctx context.Context, offerID string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE product_offers SET active = FALSE, last_updated_at = NOW() WHERE offer_id = $1;`, offerID)
	if err != nil {
		return fmt.Errorf("failed to deactivate offer %s: %w", offerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordPurchase performs the full purchase within a DB transaction: it
// locks the offer row, checks and decrements inventory, applies the
// balance deltas, appends the ledger entry and stores the purchase record.
// Holding the offer row lock for the duration serializes concurrent
// purchases of the same offer, so inventory can never go negative.
func (r *offerRepository) RecordPurchase(ctx context.Context, offerID string, purchase domain.Purchase, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// 1. Lock the offer row and check inventory.
	var available int64
	var active bool
	lockQuery := `SELECT amount_available, active FROM product_offers WHERE offer_id = $1 FOR UPDATE;`
	err = tx.QueryRow(ctx, lockQuery, offerID).Scan(&available, &active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock offer %s: %w", offerID, err)
	}
	if !active || available < purchase.Amount {
		return apperrors.ErrInsufficientInventory
	}

	// 2. Decrement inventory, deactivating the offer when it hits zero.
	remaining := available - purchase.Amount
	_, err = tx.Exec(ctx,
		`UPDATE product_offers SET amount_available = $1, active = $2, last_updated_at = $3 WHERE offer_id = $4;`,
		remaining, remaining > 0, purchase.Date, offerID,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement inventory of offer %s: %w", offerID, err)
	}

	// 3. Lock the two accounts and apply the balance deltas.
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	rows, err := tx.Query(ctx, `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for purchase %s: %w", purchase.PurchaseID, err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked account rows: %w", err)
	}
	if locked != len(accountIDs) {
		return apperrors.ErrNotFound
	}

	batch := &pgx.Batch{}
	for accountID, delta := range balanceChanges {
		batch.Queue(
			`UPDATE accounts SET balance = balance + $1, last_updated_at = $2 WHERE account_id = $3;`,
			delta, purchase.Date, accountID,
		)
	}

	// 4. Append the ledger entry and the purchase record.
	batch.Queue(
		`INSERT INTO transactions (transaction_id, date, sending_account_id, receiving_account_id, amount, purpose)
		 VALUES ($1, $2, $3, $4, $5, $6);`,
		txn.TransactionID, txn.Date, txn.SendingAccountID, txn.ReceivingAccountID, txn.Amount, txn.Purpose,
	)
	var memberID, companyID *string
	switch purchase.Buyer.Kind {
	case domain.BuyerMember:
		memberID = &purchase.Buyer.MemberID
	case domain.BuyerCompany:
		companyID = &purchase.Buyer.CompanyID
	}
	batch.Queue(
		`INSERT INTO purchases (purchase_id, date, plan_id, buyer_kind, member_id, company_id, price_per_unit, amount, purpose)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		purchase.PurchaseID, purchase.Date, purchase.PlanID, purchase.Buyer.Kind,
		memberID, companyID, purchase.PricePerUnit, purchase.Amount, purchase.Purpose,
	)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute purchase batch for offer %s: %w", offerID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit purchase %s: %w", purchase.PurchaseID, err)
	}
	return nil
}

// ListPurchasesOfBuyer retrieves all purchases made by an actor, newest first.
func (r *offerRepository) ListPurchasesOfBuyer(ctx context.Context, buyer domain.Buyer) ([]domain.Purchase, error) {
	var query string
	var actorID string
	switch buyer.Kind {
	case domain.BuyerMember:
		query = `
			SELECT purchase_id, date, plan_id, buyer_kind, member_id, company_id, price_per_unit, amount, purpose
			FROM purchases WHERE member_id = $1 ORDER BY date DESC;
		`
		actorID = buyer.MemberID
	case domain.BuyerCompany:
		query = `
			SELECT purchase_id, date, plan_id, buyer_kind, member_id, company_id, price_per_unit, amount, purpose
			FROM purchases WHERE company_id = $1 ORDER BY date DESC;
		`
		actorID = buyer.CompanyID
	default:
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown buyer kind %q", buyer.Kind), apperrors.ErrValidation)
	}

	rows, err := r.Pool.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases for buyer %s: %w", actorID, err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		var p domain.Purchase
		var memberID, companyID *string
		if err := rows.Scan(
			&p.PurchaseID,
			&p.Date,
			&p.PlanID,
			&p.Buyer.Kind,
			&memberID,
			&companyID,
			&p.PricePerUnit,
			&p.Amount,
			&p.Purpose,
		); err != nil {
			return nil, fmt.Errorf("failed to scan purchase row for buyer %s: %w", actorID, err)
		}
		if memberID != nil {
			p.Buyer.MemberID = *memberID
		}
		if companyID != nil {
			p.Buyer.CompanyID = *companyID
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase rows for buyer %s: %w", actorID, err)
	}
	return purchases, nil
}
