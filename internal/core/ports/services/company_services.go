package services

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
)

// CompanySvcFacade manages company registration, authentication, workers
// and the dashboard.
type CompanySvcFacade interface {
	// RegisterCompany creates a company together with its four accounts.
	RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error)

	// GetCompanyByID retrieves a company.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// AuthenticateCompany verifies login credentials.
	AuthenticateCompany(ctx context.Context, email, password string) (*domain.Company, error)

	// AddWorker employs a member at a company. Employing the same member
	// twice is a duplicate error.
	AddWorker(ctx context.Context, companyID string, memberID string) error

	// ListWorkers retrieves the members working at a company.
	ListWorkers(ctx context.Context, companyID string) ([]domain.Member, error)

	// GetDashboard assembles the company landing page summary, including
	// the three most recently activated plans.
	GetDashboard(ctx context.Context, companyID string) (*dto.CompanyDashboardResponse, error)
}

// MemberSvcFacade manages member registration and authentication.
type MemberSvcFacade interface {
	// RegisterMember creates a member together with their single account.
	RegisterMember(ctx context.Context, req dto.RegisterMemberRequest) (*domain.Member, error)

	// GetMemberByID retrieves a member.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// AuthenticateMember verifies login credentials.
	AuthenticateMember(ctx context.Context, email, password string) (*domain.Member, error)
}
