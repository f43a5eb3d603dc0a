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

type cooperationRepository struct {
	BaseRepository
	plans *planRepository
}

// NewCooperationRepository creates a new repository for cooperations.
func NewCooperationRepository(pool *pgxpool.Pool) repositories.CooperationRepositoryFacade {
	return &cooperationRepository{
		BaseRepository: BaseRepository{Pool: pool},
		plans:          &planRepository{BaseRepository{Pool: pool}},
	}
}

// SaveCooperation inserts a new cooperation row.
func (r *cooperationRepository) SaveCooperation(ctx context.Context, cooperation domain.Cooperation) error {
	query := `
		INSERT INTO cooperations (cooperation_id, name, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		cooperation.CooperationID,
		cooperation.Name,
		cooperation.CreatedAt,
		cooperation.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save cooperation %s: %w", cooperation.CooperationID, err)
	}
	return nil
}

// FindCooperationByID retrieves a cooperation by its ID.
func (r *cooperationRepository) FindCooperationByID(ctx context.Context, cooperationID string) (*domain.Cooperation, error) {
	query := `SELECT cooperation_id, name, created_at, last_updated_at FROM cooperations WHERE cooperation_id = $1;`
	var c domain.Cooperation
	err := r.Pool.QueryRow(ctx, query, cooperationID).Scan(&c.CooperationID, &c.Name, &c.CreatedAt, &c.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cooperation by ID %s: %w", cooperationID, err)
	}
	return &c, nil
}

// ListPlansByCooperation retrieves the plans currently pooled in a
// cooperation. The result reflects membership at query time.
func (r *cooperationRepository) ListPlansByCooperation(ctx context.Context, cooperationID string) ([]domain.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE cooperation_id = $1
		ORDER BY activation_date DESC;
	`
	return r.plans.queryPlans(ctx, query, cooperationID)
}

// SetPlanCooperation links a plan to a cooperation, or detaches it when
// cooperationID is nil.
func (r *cooperationRepository) SetPlanCooperation(ctx context.Context, planID string, cooperationID *string) error {
	query := `UPDATE plans SET cooperation_id = $1, last_updated_at = NOW() WHERE plan_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, cooperationID, planID)
	if err != nil {
		return fmt.Errorf("failed to set cooperation of plan %s: %w", planID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
