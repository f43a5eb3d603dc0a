package repositories

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
)

// CooperationReader defines read operations for cooperations.
type CooperationReader interface {
	// FindCooperationByID retrieves a cooperation by its unique identifier.
	FindCooperationByID(ctx context.Context, cooperationID string) (*domain.Cooperation, error)

	// ListPlansByCooperation retrieves the plans currently pooled in a
	// cooperation. Membership changes over time, so callers must not cache
	// the result.
	ListPlansByCooperation(ctx context.Context, cooperationID string) ([]domain.Plan, error)
}

// CooperationWriter defines write operations for cooperations.
type CooperationWriter interface {
	// SaveCooperation persists a new cooperation.
	SaveCooperation(ctx context.Context, cooperation domain.Cooperation) error

	// SetPlanCooperation links a plan to a cooperation, or detaches it when
	// cooperationID is nil.
	SetPlanCooperation(ctx context.Context, planID string, cooperationID *string) error
}

// CooperationRepositoryFacade combines all cooperation repository interfaces.
type CooperationRepositoryFacade interface {
	CooperationReader
	CooperationWriter
}
