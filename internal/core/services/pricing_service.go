package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/utils/accounting"
)

// pricingService computes effective unit prices across cooperations.
type pricingService struct {
	BaseService
	planRepo portsrepo.PlanReader
	coopRepo portsrepo.CooperationRepositoryFacade
	clock    portssvc.Clock
}

// NewPricingService creates a new PricingService.
func NewPricingService(
	planRepo portsrepo.PlanReader,
	coopRepo portsrepo.CooperationRepositoryFacade,
	clock portssvc.Clock,
) portssvc.PricingSvcFacade {
	return &pricingService{planRepo: planRepo, coopRepo: coopRepo, clock: clock}
}

var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

// CalculatePrice returns the effective price per unit of a plan. Group
// membership changes over time, so the cooperative price is recomputed on
// every call and never cached.
func (s *pricingService) CalculatePrice(ctx context.Context, planID string) (decimal.Decimal, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return decimal.Zero, err
	}
	if plan.IsPublicService {
		return decimal.Zero, nil
	}
	if plan.CooperationID == nil {
		return plan.PricePerUnit(), nil
	}

	members, err := s.coopRepo.ListPlansByCooperation(ctx, *plan.CooperationID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.CooperativePricePerUnit(members), nil
}

// CreateCooperation founds a new, empty cooperation.
func (s *pricingService) CreateCooperation(ctx context.Context, req dto.CreateCooperationRequest) (*domain.Cooperation, error) {
	now := s.clock.Now()
	coop := domain.Cooperation{
		CooperationID: uuid.NewString(),
		Name:          req.Name,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.coopRepo.SaveCooperation(ctx, coop); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Cooperation created", slog.String("cooperation_id", coop.CooperationID))
	return &coop, nil
}

// JoinCooperation pools a planner's plan into a cooperation.
func (s *pricingService) JoinCooperation(ctx context.Context, plannerID string, cooperationID string, planID string) error {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.PlannerID != plannerID {
		return apperrors.ErrForbidden
	}
	if _, err := s.coopRepo.FindCooperationByID(ctx, cooperationID); err != nil {
		return err
	}
	return s.coopRepo.SetPlanCooperation(ctx, planID, &cooperationID)
}

// LeaveCooperation detaches a planner's plan from its cooperation.
func (s *pricingService) LeaveCooperation(ctx context.Context, plannerID string, planID string) error {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.PlannerID != plannerID {
		return apperrors.ErrForbidden
	}
	return s.coopRepo.SetPlanCooperation(ctx, planID, nil)
}
