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
)

type socialAccountingRepository struct {
	BaseRepository
}

// NewSocialAccountingRepository creates a repository for the social
// accounting singleton.
func NewSocialAccountingRepository(pool *pgxpool.Pool) repositories.SocialAccountingRepository {
	return &socialAccountingRepository{BaseRepository{Pool: pool}}
}

// GetSocialAccounting retrieves the singleton row created by the
// bootstrap migration.
func (r *socialAccountingRepository) GetSocialAccounting(ctx context.Context) (*domain.SocialAccounting, error) {
	query := `
		SELECT id, account_id, created_at, last_updated_at
		FROM social_accounting
		LIMIT 1;
	`
	var sa domain.SocialAccounting
	err := r.Pool.QueryRow(ctx, query).Scan(&sa.ID, &sa.AccountID, &sa.CreatedAt, &sa.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get social accounting: %w", err)
	}
	return &sa, nil
}
