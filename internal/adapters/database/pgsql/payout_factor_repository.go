package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type payoutFactorRepository struct {
	BaseRepository
}

// NewPayoutFactorRepository creates a new repository for payout-factor snapshots.
func NewPayoutFactorRepository(pool *pgxpool.Pool) repositories.PayoutFactorRepository {
	return &payoutFactorRepository{BaseRepository{Pool: pool}}
}

// StorePayoutFactor inserts a new snapshot. Earlier snapshots stay in place
// so the factor history can be replayed.
func (r *payoutFactorRepository) StorePayoutFactor(ctx context.Context, factor domain.PayoutFactor) error {
	query := `
		INSERT INTO payout_factors (calculation_date, value)
		VALUES ($1, $2);
	`
	_, err := r.Pool.Exec(ctx, query, factor.CalculationDate, factor.Value)
	if err != nil {
		return fmt.Errorf("failed to store payout factor: %w", err)
	}
	return nil
}

// FindLatestBefore retrieves the most recent snapshot at or before ts.
func (r *payoutFactorRepository) FindLatestBefore(ctx context.Context, ts time.Time) (*domain.PayoutFactor, error) {
	query := `
		SELECT calculation_date, value
		FROM payout_factors
		WHERE calculation_date <= $1
		ORDER BY calculation_date DESC
		LIMIT 1;
	`
	var factor domain.PayoutFactor
	err := r.Pool.QueryRow(ctx, query, ts).Scan(&factor.CalculationDate, &factor.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payout factor before %s: %w", ts, err)
	}
	return &factor, nil
}
