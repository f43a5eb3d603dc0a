package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
)

// defaultApprovalPolicy approves every submitted plan. The original scheme
// has a single approving authority that rubber-stamps plans; real policies
// plug in through the ApprovalPolicy port without touching the engine.
type defaultApprovalPolicy struct{}

func (defaultApprovalPolicy) Evaluate(_ context.Context, _ domain.Plan) domain.ApprovalDecision {
	return domain.ApprovalDecision{Approved: true, Reason: "approved by social accounting"}
}

// NewDefaultApprovalPolicy returns the approve-everything policy.
func NewDefaultApprovalPolicy() portssvc.ApprovalPolicy {
	return defaultApprovalPolicy{}
}

// planService is the plan lifecycle engine.
type planService struct {
	BaseService
	planRepo    portsrepo.PlanRepositoryWithTx
	companyRepo portsrepo.CompanyReader
	socialRepo  portsrepo.SocialAccountingRepository
	pricingSvc  portssvc.PricingSvcFacade
	policy      portssvc.ApprovalPolicy
	clock       portssvc.Clock
}

// NewPlanService creates a new PlanService.
func NewPlanService(
	planRepo portsrepo.PlanRepositoryWithTx,
	companyRepo portsrepo.CompanyReader,
	socialRepo portsrepo.SocialAccountingRepository,
	pricingSvc portssvc.PricingSvcFacade,
	policy portssvc.ApprovalPolicy,
	clock portssvc.Clock,
) portssvc.PlanSvcFacade {
	return &planService{
		planRepo:    planRepo,
		companyRepo: companyRepo,
		socialRepo:  socialRepo,
		pricingSvc:  pricingSvc,
		policy:      policy,
		clock:       clock,
	}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

// CreateDraft files a new plan draft for the planner.
func (s *planService) CreateDraft(ctx context.Context, plannerID string, req dto.CreateDraftRequest) (*domain.PlanDraft, error) {
	costs, err := domain.NewProductionCosts(req.LabourCost, req.ResourceCost, req.MeansCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.companyRepo.FindCompanyByID(ctx, plannerID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	draft := domain.PlanDraft{
		DraftID:         uuid.NewString(),
		PlannerID:       plannerID,
		CreationDate:    now,
		Costs:           costs,
		ProductName:     req.ProductName,
		ProductUnit:     req.ProductUnit,
		ProductAmount:   req.ProductAmount,
		Description:     req.Description,
		Timeframe:       req.Timeframe,
		IsPublicService: req.IsPublicService,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.planRepo.SaveDraft(ctx, draft); err != nil {
		s.LogError(ctx, err, "Failed to save plan draft", slog.String("planner_id", plannerID))
		return nil, err
	}
	s.LogInfo(ctx, "Plan draft created", slog.String("draft_id", draft.DraftID), slog.String("planner_id", plannerID))
	return &draft, nil
}

// CancelDraft deletes a draft. Cancelled drafts are discarded, never
// migrated into plans.
func (s *planService) CancelDraft(ctx context.Context, plannerID string, draftID string) error {
	draft, err := s.planRepo.FindDraftByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft.PlannerID != plannerID {
		return apperrors.ErrForbidden
	}
	return s.planRepo.DeleteDraft(ctx, draftID)
}

// SubmitDraft turns a draft into a pending plan awaiting approval.
func (s *planService) SubmitDraft(ctx context.Context, plannerID string, draftID string) (*domain.Plan, error) {
	draft, err := s.planRepo.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.PlannerID != plannerID {
		return nil, apperrors.ErrForbidden
	}

	plan, err := domain.SubmitDraft(*draft, uuid.NewString(), s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to save submitted plan", slog.String("draft_id", draftID))
		return nil, err
	}
	if err := s.planRepo.DeleteDraft(ctx, draftID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft after submission", slog.String("draft_id", draftID))
		return nil, err
	}
	s.LogInfo(ctx, "Plan submitted for approval", slog.String("plan_id", plan.PlanID))
	return &plan, nil
}

// ApprovePlan runs the approval policy against a pending plan and records
// the decision.
func (s *planService) ApprovePlan(ctx context.Context, planID string) (*domain.Plan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Evaluate(ctx, *plan)
	decided, err := plan.Decide(decision, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.UpdatePlan(ctx, decided); err != nil {
		s.LogError(ctx, err, "Failed to persist approval decision", slog.String("plan_id", planID))
		return nil, err
	}
	s.LogInfo(ctx, "Plan approval decided",
		slog.String("plan_id", planID),
		slog.Bool("approved", decision.Approved),
		slog.String("reason", decision.Reason))
	return &decided, nil
}

// GrantCredit activates an approved plan. The plan update, the four
// balance adjustments and the four ledger transactions are persisted in a
// single storage transaction; a failure leaves everything unchanged.
func (s *planService) GrantCredit(ctx context.Context, planID string) (*domain.Plan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	planner, err := s.companyRepo.FindCompanyByID(ctx, plan.PlannerID)
	if err != nil {
		return nil, err
	}
	social, err := s.socialRepo.GetSocialAccounting(ctx)
	if err != nil {
		return nil, err
	}

	grant, err := plan.GrantCredit(*planner, *social, uuid.NewString, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.ActivatePlan(ctx, grant.Plan, grant.Transactions, grant.BalanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to activate plan", slog.String("plan_id", planID))
		return nil, err
	}
	s.LogInfo(ctx, "Credit granted, plan activated",
		slog.String("plan_id", planID),
		slog.String("total_cost", grant.Plan.Costs.Total().String()))
	return &grant.Plan, nil
}

// HidePlan hides an expired plan from listings. Hiding an active plan is
// reported as an unsuccessful response, not an error.
func (s *planService) HidePlan(ctx context.Context, plannerID string, planID string) (dto.HidePlanResponse, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return dto.HidePlanResponse{}, err
	}
	if plan.PlannerID != plannerID {
		return dto.HidePlanResponse{}, apperrors.ErrForbidden
	}

	hidden, err := plan.Hide(s.clock.Now())
	if errors.Is(err, domain.ErrPlanNotExpired) {
		return dto.HidePlanResponse{PlanID: planID, IsSuccess: false}, nil
	}
	if err != nil {
		return dto.HidePlanResponse{}, err
	}
	if err := s.planRepo.UpdatePlan(ctx, hidden); err != nil {
		return dto.HidePlanResponse{}, err
	}
	return dto.HidePlanResponse{PlanID: planID, IsSuccess: true}, nil
}

// RenewPlan spawns a pending successor of an expired plan.
func (s *planService) RenewPlan(ctx context.Context, plannerID string, planID string) (*domain.Plan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.PlannerID != plannerID {
		return nil, apperrors.ErrForbidden
	}

	successor, renewed, err := plan.Renew(uuid.NewString(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.SavePlan(ctx, successor); err != nil {
		return nil, err
	}
	if err := s.planRepo.UpdatePlan(ctx, renewed); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Plan renewed",
		slog.String("plan_id", planID),
		slog.String("successor_id", successor.PlanID))
	return &successor, nil
}

// ExpirePlans sweeps active plans whose timeframe has elapsed.
func (s *planService) ExpirePlans(ctx context.Context) (int, error) {
	active, err := s.planRepo.ListActivePlans(ctx)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	count := 0
	for _, plan := range active {
		if !plan.IsDueForExpiry(now) {
			continue
		}
		expired, err := plan.Expire(now)
		if err != nil {
			return count, err
		}
		if err := s.planRepo.UpdatePlan(ctx, expired); err != nil {
			return count, err
		}
		count++
	}
	if count > 0 {
		s.LogInfo(ctx, "Expired plans", slog.Int("count", count))
	}
	return count, nil
}

// GetPlanByID retrieves a single plan.
func (s *planService) GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	return s.planRepo.FindPlanByID(ctx, planID)
}

// ListPlansByPlanner retrieves all plans of a company.
func (s *planService) ListPlansByPlanner(ctx context.Context, plannerID string) ([]domain.Plan, error) {
	return s.planRepo.ListPlansByPlanner(ctx, plannerID)
}

// ListDrafts retrieves all drafts of a company.
func (s *planService) ListDrafts(ctx context.Context, plannerID string) ([]domain.PlanDraft, error) {
	return s.planRepo.ListDraftsByPlanner(ctx, plannerID)
}

// QueryPlans searches active plans by plan id or product name. Prices are
// recomputed per result so cooperating plans show their pooled price.
func (s *planService) QueryPlans(ctx context.Context, req dto.QueryPlansRequest) (dto.QueryPlansResponse, error) {
	query := portsrepo.PlanQuery{Term: req.Term, Filter: portsrepo.PlanFilter(req.Filter)}
	plans, err := s.planRepo.QueryPlans(ctx, query)
	if err != nil {
		return dto.QueryPlansResponse{}, err
	}

	results := make([]dto.QueriedPlan, 0, len(plans))
	for _, plan := range plans {
		if plan.ActivationDate == nil {
			continue
		}
		planner, err := s.companyRepo.FindCompanyByID(ctx, plan.PlannerID)
		if err != nil {
			return dto.QueryPlansResponse{}, err
		}
		price, err := s.pricingSvc.CalculatePrice(ctx, plan.PlanID)
		if err != nil {
			return dto.QueryPlansResponse{}, err
		}
		results = append(results, dto.QueriedPlan{
			PlanID:          plan.PlanID,
			CompanyID:       planner.CompanyID,
			CompanyName:     planner.Name,
			ProductName:     plan.ProductName,
			Description:     plan.Description,
			PricePerUnit:    price,
			IsPublicService: plan.IsPublicService,
			IsCooperating:   plan.CooperationID != nil,
			ActivationDate:  *plan.ActivationDate,
		})
	}
	return dto.QueryPlansResponse{Results: results}, nil
}
