package services_test

import (
	"context"
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fixedClock freezes time for lifecycle arithmetic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var frozenNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// --- Mock PlanRepository ---

type MockPlanRepository struct {
	mock.Mock
}

var _ portsrepo.PlanRepositoryWithTx = (*MockPlanRepository)(nil)

func (m *MockPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ListActivePlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ListPlansByPlanner(ctx context.Context, plannerID string) ([]domain.Plan, error) {
	args := m.Called(ctx, plannerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) AllProductivePlansApprovedActiveNotExpired(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) AllPublicPlansApprovedActiveNotExpired(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ThreeLatestActivePlansByActivationDate(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) QueryPlans(ctx context.Context, query portsrepo.PlanQuery) ([]domain.Plan, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) UpdatePlan(ctx context.Context, plan domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) ActivatePlan(ctx context.Context, plan domain.Plan, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, plan, transactions, balanceChanges)
	return args.Error(0)
}

func (m *MockPlanRepository) FindDraftByID(ctx context.Context, draftID string) (*domain.PlanDraft, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanDraft), args.Error(1)
}

func (m *MockPlanRepository) ListDraftsByPlanner(ctx context.Context, plannerID string) ([]domain.PlanDraft, error) {
	args := m.Called(ctx, plannerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanDraft), args.Error(1)
}

func (m *MockPlanRepository) SaveDraft(ctx context.Context, draft domain.PlanDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockPlanRepository) DeleteDraft(ctx context.Context, draftID string) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func (m *MockPlanRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPlanRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPlanRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyByEmail(ctx context.Context, email string) (*domain.Company, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanyWorkers(ctx context.Context, companyID string) ([]domain.Member, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompanyWithAccounts(ctx context.Context, company domain.Company, accounts []domain.Account) error {
	args := m.Called(ctx, company, accounts)
	return args.Error(0)
}

func (m *MockCompanyRepository) AddWorkerToCompany(ctx context.Context, companyID string, memberID string) error {
	args := m.Called(ctx, companyID, memberID)
	return args.Error(0)
}

// --- Mock MemberRepository ---

type MockMemberRepository struct {
	mock.Mock
}

var _ portsrepo.MemberRepositoryFacade = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMemberWithAccount(ctx context.Context, member domain.Member, account domain.Account) error {
	args := m.Called(ctx, member, account)
	return args.Error(0)
}

// --- Mock SocialAccountingRepository ---

type MockSocialAccountingRepository struct {
	mock.Mock
}

var _ portsrepo.SocialAccountingRepository = (*MockSocialAccountingRepository)(nil)

func (m *MockSocialAccountingRepository) GetSocialAccounting(ctx context.Context) (*domain.SocialAccounting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SocialAccounting), args.Error(1)
}

// --- Mock PayoutFactorRepository ---

type MockPayoutFactorRepository struct {
	mock.Mock
}

var _ portsrepo.PayoutFactorRepository = (*MockPayoutFactorRepository)(nil)

func (m *MockPayoutFactorRepository) StorePayoutFactor(ctx context.Context, factor domain.PayoutFactor) error {
	args := m.Called(ctx, factor)
	return args.Error(0)
}

func (m *MockPayoutFactorRepository) FindLatestBefore(ctx context.Context, ts time.Time) (*domain.PayoutFactor, error) {
	args := m.Called(ctx, ts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutFactor), args.Error(1)
}

// --- Mock OfferRepository ---

type MockOfferRepository struct {
	mock.Mock
}

var _ portsrepo.OfferRepositoryWithTx = (*MockOfferRepository)(nil)

func (m *MockOfferRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.ProductOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductOffer), args.Error(1)
}

func (m *MockOfferRepository) ListActiveOffers(ctx context.Context, limit int, offset int) ([]domain.ProductOffer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductOffer), args.Error(1)
}

func (m *MockOfferRepository) SaveOffer(ctx context.Context, offer domain.ProductOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) DeactivateOffer(ctx context.Context, offerID string) error {
	args := m.Called(ctx, offerID)
	return args.Error(0)
}

func (m *MockOfferRepository) RecordPurchase(ctx context.Context, offerID string, purchase domain.Purchase, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, offerID, purchase, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockOfferRepository) ListPurchasesOfBuyer(ctx context.Context, buyer domain.Buyer) ([]domain.Purchase, error) {
	args := m.Called(ctx, buyer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockOfferRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOfferRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOfferRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CooperationRepository ---

type MockCooperationRepository struct {
	mock.Mock
}

var _ portsrepo.CooperationRepositoryFacade = (*MockCooperationRepository)(nil)

func (m *MockCooperationRepository) FindCooperationByID(ctx context.Context, cooperationID string) (*domain.Cooperation, error) {
	args := m.Called(ctx, cooperationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cooperation), args.Error(1)
}

func (m *MockCooperationRepository) ListPlansByCooperation(ctx context.Context, cooperationID string) ([]domain.Plan, error) {
	args := m.Called(ctx, cooperationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockCooperationRepository) SaveCooperation(ctx context.Context, cooperation domain.Cooperation) error {
	args := m.Called(ctx, cooperation)
	return args.Error(0)
}

func (m *MockCooperationRepository) SetPlanCooperation(ctx context.Context, planID string, cooperationID *string) error {
	args := m.Called(ctx, planID, cooperationID)
	return args.Error(0)
}

// --- Mock PricingService ---

type MockPricingService struct {
	mock.Mock
}

var _ portssvc.PricingSvcFacade = (*MockPricingService)(nil)

func (m *MockPricingService) CalculatePrice(ctx context.Context, planID string) (decimal.Decimal, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPricingService) CreateCooperation(ctx context.Context, req dto.CreateCooperationRequest) (*domain.Cooperation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cooperation), args.Error(1)
}

func (m *MockPricingService) JoinCooperation(ctx context.Context, plannerID string, cooperationID string, planID string) error {
	args := m.Called(ctx, plannerID, cooperationID, planID)
	return args.Error(0)
}

func (m *MockPricingService) LeaveCooperation(ctx context.Context, plannerID string, planID string) error {
	args := m.Called(ctx, plannerID, planID)
	return args.Error(0)
}

// --- Mock PlanService (as used by PayoutService) ---

type MockPlanService struct {
	mock.Mock
}

var _ portssvc.PlanSvcFacade = (*MockPlanService)(nil)

func (m *MockPlanService) CreateDraft(ctx context.Context, plannerID string, req dto.CreateDraftRequest) (*domain.PlanDraft, error) {
	args := m.Called(ctx, plannerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanDraft), args.Error(1)
}

func (m *MockPlanService) CancelDraft(ctx context.Context, plannerID string, draftID string) error {
	args := m.Called(ctx, plannerID, draftID)
	return args.Error(0)
}

func (m *MockPlanService) SubmitDraft(ctx context.Context, plannerID string, draftID string) (*domain.Plan, error) {
	args := m.Called(ctx, plannerID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanService) ApprovePlan(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanService) GrantCredit(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanService) HidePlan(ctx context.Context, plannerID string, planID string) (dto.HidePlanResponse, error) {
	args := m.Called(ctx, plannerID, planID)
	return args.Get(0).(dto.HidePlanResponse), args.Error(1)
}

func (m *MockPlanService) RenewPlan(ctx context.Context, plannerID string, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, plannerID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanService) ExpirePlans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPlanService) GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanService) ListPlansByPlanner(ctx context.Context, plannerID string) ([]domain.Plan, error) {
	args := m.Called(ctx, plannerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanService) ListDrafts(ctx context.Context, plannerID string) ([]domain.PlanDraft, error) {
	args := m.Called(ctx, plannerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanDraft), args.Error(1)
}

func (m *MockPlanService) QueryPlans(ctx context.Context, req dto.QueryPlansRequest) (dto.QueryPlansResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.QueryPlansResponse), args.Error(1)
}
