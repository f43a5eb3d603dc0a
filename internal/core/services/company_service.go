package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/utils"
)

// ErrInvalidCredentials is returned for login failures without revealing
// whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// companyService manages company registration, workers and the dashboard.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	memberRepo  portsrepo.MemberReader
	planRepo    portsrepo.PlanReader
	clock       portssvc.Clock
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(
	companyRepo portsrepo.CompanyRepositoryFacade,
	memberRepo portsrepo.MemberReader,
	planRepo portsrepo.PlanReader,
	clock portssvc.Clock,
) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		memberRepo:  memberRepo,
		planRepo:    planRepo,
		clock:       clock,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// RegisterCompany creates a company together with its four accounts in one
// storage transaction. Accounts are created exactly once and never deleted.
func (s *companyService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error) {
	existing, err := s.companyRepo.FindCompanyByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicate
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	companyID := uuid.NewString()
	audit := domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	accounts := make([]domain.Account, 0, 4)
	accountIDs := make(map[domain.AccountType]string, 4)
	for _, accountType := range domain.CompanyAccountTypes() {
		account := domain.Account{
			AccountID:   uuid.NewString(),
			OwnerID:     companyID,
			AccountType: accountType,
			Balance:     decimal.Zero,
			AuditFields: audit,
		}
		accounts = append(accounts, account)
		accountIDs[accountType] = account.AccountID
	}

	company := domain.Company{
		CompanyID:            companyID,
		Name:                 req.Name,
		Email:                req.Email,
		PasswordHash:         hash,
		MeansAccountID:       accountIDs[domain.AccountMeans],
		RawMaterialAccountID: accountIDs[domain.AccountRawMaterial],
		WorkAccountID:        accountIDs[domain.AccountWork],
		ProductAccountID:     accountIDs[domain.AccountProduct],
		AuditFields:          audit,
	}

	if err := s.companyRepo.SaveCompanyWithAccounts(ctx, company, accounts); err != nil {
		s.LogError(ctx, err, "Failed to register company", slog.String("email", req.Email))
		return nil, err
	}
	s.LogInfo(ctx, "Company registered", slog.String("company_id", companyID))
	return &company, nil
}

// GetCompanyByID retrieves a company.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// AuthenticateCompany verifies login credentials.
func (s *companyService) AuthenticateCompany(ctx context.Context, email, password string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, company.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return company, nil
}

// AddWorker employs a member at a company.
func (s *companyService) AddWorker(ctx context.Context, companyID string, memberID string) error {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return err
	}
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return err
	}
	workers, err := s.companyRepo.ListCompanyWorkers(ctx, companyID)
	if err != nil {
		return err
	}
	for _, worker := range workers {
		if worker.MemberID == memberID {
			return apperrors.ErrDuplicate
		}
	}
	return s.companyRepo.AddWorkerToCompany(ctx, companyID, memberID)
}

// ListWorkers retrieves the members working at a company.
func (s *companyService) ListWorkers(ctx context.Context, companyID string) ([]domain.Member, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.companyRepo.ListCompanyWorkers(ctx, companyID)
}

// GetDashboard assembles the company landing page summary.
func (s *companyService) GetDashboard(ctx context.Context, companyID string) (*dto.CompanyDashboardResponse, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	workers, err := s.companyRepo.ListCompanyWorkers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	latest, err := s.planRepo.ThreeLatestActivePlansByActivationDate(ctx)
	if err != nil {
		return nil, err
	}

	plans := make([]dto.DashboardPlan, 0, len(latest))
	for _, plan := range latest {
		if plan.ActivationDate == nil {
			continue
		}
		plans = append(plans, dto.DashboardPlan{
			PlanID:         plan.PlanID,
			ProductName:    plan.ProductName,
			ActivationDate: *plan.ActivationDate,
		})
	}

	return &dto.CompanyDashboardResponse{
		Company:          dto.ToCompanyResponse(company),
		HasWorkers:       len(workers) > 0,
		ThreeLatestPlans: plans,
	}, nil
}
