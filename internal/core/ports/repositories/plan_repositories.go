package repositories

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlanFilter selects which field a plan query matches against.
type PlanFilter string

const (
	FilterByPlanID      PlanFilter = "plan_id"
	FilterByProductName PlanFilter = "product_name"
)

// PlanQuery describes a plan listing request. An empty Term matches all
// active plans.
type PlanQuery struct {
	Term   string
	Filter PlanFilter
}

// PlanReader defines read operations for plan data.
type PlanReader interface {
	// FindPlanByID retrieves a specific plan by its unique identifier.
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListActivePlans retrieves all active, non-hidden plans.
	ListActivePlans(ctx context.Context) ([]domain.Plan, error)

	// ListPlansByPlanner retrieves all plans filed by a company.
	ListPlansByPlanner(ctx context.Context, plannerID string) ([]domain.Plan, error)

	// AllProductivePlansApprovedActiveNotExpired retrieves the productive
	// half of the payout-factor snapshot.
	AllProductivePlansApprovedActiveNotExpired(ctx context.Context) ([]domain.Plan, error)

	// AllPublicPlansApprovedActiveNotExpired retrieves the public-service
	// half of the payout-factor snapshot.
	AllPublicPlansApprovedActiveNotExpired(ctx context.Context) ([]domain.Plan, error)

	// ThreeLatestActivePlansByActivationDate retrieves the three most
	// recently activated plans for the company dashboard.
	ThreeLatestActivePlansByActivationDate(ctx context.Context) ([]domain.Plan, error)

	// QueryPlans retrieves active plans matching the query, ordered by
	// activation date descending.
	QueryPlans(ctx context.Context, query PlanQuery) ([]domain.Plan, error)
}

// PlanWriter defines write operations for plan data.
type PlanWriter interface {
	// SavePlan persists a new plan.
	SavePlan(ctx context.Context, plan domain.Plan) error

	// UpdatePlan updates an existing plan's lifecycle fields.
	UpdatePlan(ctx context.Context, plan domain.Plan) error

	// ActivatePlan persists the whole credit grant atomically: the activated
	// plan, its four ledger transactions and the signed balance deltas.
	// Either everything is applied or nothing is.
	ActivatePlan(ctx context.Context, plan domain.Plan, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error
}

// PlanDraftReader defines read operations for plan drafts.
type PlanDraftReader interface {
	// FindDraftByID retrieves a draft by its unique identifier.
	FindDraftByID(ctx context.Context, draftID string) (*domain.PlanDraft, error)

	// ListDraftsByPlanner retrieves all drafts of a company.
	ListDraftsByPlanner(ctx context.Context, plannerID string) ([]domain.PlanDraft, error)
}

// PlanDraftWriter defines write operations for plan drafts.
type PlanDraftWriter interface {
	// SaveDraft persists a new draft.
	SaveDraft(ctx context.Context, draft domain.PlanDraft) error

	// DeleteDraft removes a draft, used both on cancel and on submission.
	DeleteDraft(ctx context.Context, draftID string) error
}

// PlanRepositoryFacade combines all plan-related repository interfaces.
type PlanRepositoryFacade interface {
	PlanReader
	PlanWriter
	PlanDraftReader
	PlanDraftWriter
}

// PlanRepositoryWithTx extends PlanRepositoryFacade with transaction capabilities.
type PlanRepositoryWithTx interface {
	PlanRepositoryFacade
	TransactionManager
}
