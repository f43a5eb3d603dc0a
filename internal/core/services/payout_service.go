package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/utils/accounting"
)

// payoutService computes and stores the global payout factor.
type payoutService struct {
	BaseService
	planRepo   portsrepo.PlanReader
	payoutRepo portsrepo.PayoutFactorRepository
	planSvc    portssvc.PlanSvcFacade
	clock      portssvc.Clock
}

// NewPayoutService creates a new PayoutService.
func NewPayoutService(
	planRepo portsrepo.PlanReader,
	payoutRepo portsrepo.PayoutFactorRepository,
	planSvc portssvc.PlanSvcFacade,
	clock portssvc.Clock,
) portssvc.PayoutSvcFacade {
	return &payoutService{
		planRepo:   planRepo,
		payoutRepo: payoutRepo,
		planSvc:    planSvc,
		clock:      clock,
	}
}

var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

// CalculatePayoutFactor computes (A - (Po + Ro)) / (A + Ao) over the
// currently approved, active, non-expired plans. Both plan sets come from
// the same repository snapshot so a plan transitioning state mid-cycle is
// either counted fully or not at all.
func (s *payoutService) CalculatePayoutFactor(ctx context.Context) (decimal.Decimal, error) {
	productive, err := s.planRepo.AllProductivePlansApprovedActiveNotExpired(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	public, err := s.planRepo.AllPublicPlansApprovedActiveNotExpired(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.PayoutFactor(productive, public), nil
}

// StorePayoutFactor persists a timestamped snapshot. Prior snapshots are
// never overwritten.
func (s *payoutService) StorePayoutFactor(ctx context.Context, value decimal.Decimal) error {
	factor := domain.PayoutFactor{CalculationDate: s.clock.Now(), Value: value}
	return s.payoutRepo.StorePayoutFactor(ctx, factor)
}

// LatestPayoutFactor retrieves the most recent snapshot at or before now.
func (s *payoutService) LatestPayoutFactor(ctx context.Context) (*domain.PayoutFactor, error) {
	return s.payoutRepo.FindLatestBefore(ctx, s.clock.Now())
}

// RunPayout performs one payout cycle: expire elapsed plans, compute the
// factor over the remaining active plans, store the snapshot.
func (s *payoutService) RunPayout(ctx context.Context) (*domain.PayoutFactor, error) {
	expired, err := s.planSvc.ExpirePlans(ctx)
	if err != nil {
		return nil, err
	}

	value, err := s.CalculatePayoutFactor(ctx)
	if err != nil {
		return nil, err
	}
	factor := domain.PayoutFactor{CalculationDate: s.clock.Now(), Value: value}
	if err := s.payoutRepo.StorePayoutFactor(ctx, factor); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payout cycle completed",
		slog.Int("expired_plans", expired),
		slog.String("payout_factor", value.String()))
	return &factor, nil
}
