package pgsql

import (
	"github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories onto one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *repositories.RepositoryProvider {
	return &repositories.RepositoryProvider{
		PlanRepo:             NewPlanRepository(pool),
		AccountRepo:          NewAccountRepository(pool),
		TransactionRepo:      NewTransactionRepository(pool),
		PayoutFactorRepo:     NewPayoutFactorRepository(pool),
		CompanyRepo:          NewCompanyRepository(pool),
		MemberRepo:           NewMemberRepository(pool),
		SocialAccountingRepo: NewSocialAccountingRepository(pool),
		OfferRepo:            NewOfferRepository(pool),
		CooperationRepo:      NewCooperationRepository(pool),
	}
}
