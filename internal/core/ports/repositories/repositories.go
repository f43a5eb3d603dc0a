package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PlanRepo             PlanRepositoryWithTx
	AccountRepo          AccountRepositoryWithTx
	TransactionRepo      TransactionRepositoryFacade
	PayoutFactorRepo     PayoutFactorRepository
	CompanyRepo          CompanyRepositoryFacade
	MemberRepo           MemberRepositoryFacade
	SocialAccountingRepo SocialAccountingRepository
	OfferRepo            OfferRepositoryWithTx
	CooperationRepo      CooperationRepositoryFacade
}
