package repositories

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
)

// CompanyReader defines read operations for company data.
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindCompanyByEmail retrieves a company by its login email.
	FindCompanyByEmail(ctx context.Context, email string) (*domain.Company, error)

	// ListCompanyWorkers retrieves the members working at a company.
	ListCompanyWorkers(ctx context.Context, companyID string) ([]domain.Member, error)
}

// CompanyWriter defines write operations for company data.
type CompanyWriter interface {
	// SaveCompanyWithAccounts persists a company together with its four
	// accounts in one storage transaction.
	SaveCompanyWithAccounts(ctx context.Context, company domain.Company, accounts []domain.Account) error

	// AddWorkerToCompany records a member as worker of a company.
	AddWorkerToCompany(ctx context.Context, companyID string, memberID string) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

// MemberReader defines read operations for member data.
type MemberReader interface {
	// FindMemberByID retrieves a member by its unique identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByEmail retrieves a member by its login email.
	FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error)
}

// MemberWriter defines write operations for member data.
type MemberWriter interface {
	// SaveMemberWithAccount persists a member together with their single
	// account in one storage transaction.
	SaveMemberWithAccount(ctx context.Context, member domain.Member, account domain.Account) error
}

// MemberRepositoryFacade combines all member-related repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}

// SocialAccountingRepository retrieves the explicitly constructed social
// accounting singleton. The row is created by migration bootstrap.
type SocialAccountingRepository interface {
	// GetSocialAccounting retrieves the singleton.
	GetSocialAccounting(ctx context.Context) (*domain.SocialAccounting, error)
}
