package services

import (
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	clock := NewUTCClock()
	container := &portssvc.ServiceContainer{}

	// Pricing first: the plan engine and the purchase flow both quote
	// cooperative prices.
	container.Pricing = NewPricingService(repos.PlanRepo, repos.CooperationRepo, clock)

	container.Plan = NewPlanService(
		repos.PlanRepo,
		repos.CompanyRepo,
		repos.SocialAccountingRepo,
		container.Pricing,
		NewDefaultApprovalPolicy(),
		clock,
	)

	container.Payout = NewPayoutService(repos.PlanRepo, repos.PayoutFactorRepo, container.Plan, clock)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.TransactionRepo, clock)
	container.Company = NewCompanyService(repos.CompanyRepo, repos.MemberRepo, repos.PlanRepo, clock)
	container.Member = NewMemberService(repos.MemberRepo, clock)
	container.Purchase = NewPurchaseService(
		repos.OfferRepo,
		repos.PlanRepo,
		repos.CompanyRepo,
		repos.MemberRepo,
		container.Pricing,
		clock,
	)
	container.Token = NewTokenService(cfg, clock)

	return container
}
