package services

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
)

// ApprovalPolicy decides whether a pending plan is approved. The engine
// treats the decision as opaque, so policies can be swapped without
// touching lifecycle code.
type ApprovalPolicy interface {
	Evaluate(ctx context.Context, plan domain.Plan) domain.ApprovalDecision
}

// PlanSvcFacade is the plan lifecycle engine: draft handling, approval,
// credit granting, expiry, renewal, hiding and plan queries.
type PlanSvcFacade interface {
	// CreateDraft files a new plan draft for the planner.
	CreateDraft(ctx context.Context, plannerID string, req dto.CreateDraftRequest) (*domain.PlanDraft, error)

	// CancelDraft deletes a draft without migrating it anywhere.
	CancelDraft(ctx context.Context, plannerID string, draftID string) error

	// SubmitDraft turns a draft into a pending plan awaiting approval.
	SubmitDraft(ctx context.Context, plannerID string, draftID string) (*domain.Plan, error)

	// ApprovePlan runs the approval policy against a pending plan and
	// records the decision.
	ApprovePlan(ctx context.Context, planID string) (*domain.Plan, error)

	// GrantCredit activates an approved plan, crediting the planner's
	// means, raw material and work accounts and debiting the product
	// account, all atomically with the four ledger transactions.
	GrantCredit(ctx context.Context, planID string) (*domain.Plan, error)

	// HidePlan hides an expired plan from listings. Hiding a plan that is
	// still active is a business rejection reported in the response.
	HidePlan(ctx context.Context, plannerID string, planID string) (dto.HidePlanResponse, error)

	// RenewPlan spawns a pending successor of an expired plan.
	RenewPlan(ctx context.Context, plannerID string, planID string) (*domain.Plan, error)

	// ExpirePlans sweeps active plans whose timeframe has elapsed and
	// returns how many were expired.
	ExpirePlans(ctx context.Context) (int, error)

	// GetPlanByID retrieves a single plan.
	GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListPlansByPlanner retrieves all plans of a company.
	ListPlansByPlanner(ctx context.Context, plannerID string) ([]domain.Plan, error)

	// ListDrafts retrieves all drafts of a company.
	ListDrafts(ctx context.Context, plannerID string) ([]domain.PlanDraft, error)

	// QueryPlans searches active plans by plan id or product name.
	QueryPlans(ctx context.Context, req dto.QueryPlansRequest) (dto.QueryPlansResponse, error)
}
