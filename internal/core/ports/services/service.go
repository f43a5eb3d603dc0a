package services

// ServiceContainer holds all service facades handed to the HTTP layer.
type ServiceContainer struct {
	Plan     PlanSvcFacade
	Payout   PayoutSvcFacade
	Ledger   LedgerSvcFacade
	Pricing  PricingSvcFacade
	Company  CompanySvcFacade
	Member   MemberSvcFacade
	Purchase PurchaseSvcFacade
	Token    TokenSvcFacade
}
