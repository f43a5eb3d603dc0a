package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
)

type PurchaseServiceTestSuite struct {
	suite.Suite
	mockOfferRepo   *MockOfferRepository
	mockPlanRepo    *MockPlanRepository
	mockCompanyRepo *MockCompanyRepository
	mockMemberRepo  *MockMemberRepository
	mockPricingSvc  *MockPricingService
	service         portssvc.PurchaseSvcFacade
	ctx             context.Context
}

func (s *PurchaseServiceTestSuite) SetupTest() {
	s.mockOfferRepo = new(MockOfferRepository)
	s.mockPlanRepo = new(MockPlanRepository)
	s.mockCompanyRepo = new(MockCompanyRepository)
	s.mockMemberRepo = new(MockMemberRepository)
	s.mockPricingSvc = new(MockPricingService)
	s.service = services.NewPurchaseService(
		s.mockOfferRepo,
		s.mockPlanRepo,
		s.mockCompanyRepo,
		s.mockMemberRepo,
		s.mockPricingSvc,
		fixedClock{frozenNow},
	)
	s.ctx = context.Background()
}

func (s *PurchaseServiceTestSuite) sellingCompany() *domain.Company {
	return &domain.Company{
		CompanyID:            "company-1",
		Name:                 "Bakery Collective",
		MeansAccountID:       "acc-means",
		RawMaterialAccountID: "acc-raw",
		WorkAccountID:        "acc-work",
		ProductAccountID:     "acc-product",
	}
}

func (s *PurchaseServiceTestSuite) buyingCompany() *domain.Company {
	return &domain.Company{
		CompanyID:            "company-2",
		Name:                 "Mill Collective",
		MeansAccountID:       "acc-b-means",
		RawMaterialAccountID: "acc-b-raw",
		WorkAccountID:        "acc-b-work",
		ProductAccountID:     "acc-b-product",
	}
}

func (s *PurchaseServiceTestSuite) activePlan() *domain.Plan {
	return &domain.Plan{
		PlanID:        "plan-1",
		PlannerID:     "company-1",
		Costs:         domain.ProductionCosts{LabourCost: decimal.NewFromInt(250)},
		ProductName:   "Bread",
		ProductUnit:   "loaf",
		ProductAmount: 100,
		Timeframe:     5,
		Approved:      true,
		IsActive:      true,
	}
}

func (s *PurchaseServiceTestSuite) activeOffer() *domain.ProductOffer {
	return &domain.ProductOffer{
		OfferID:         "offer-1",
		PlanID:          "plan-1",
		Name:            "Fresh bread",
		AmountAvailable: 50,
		Active:          true,
	}
}

func (s *PurchaseServiceTestSuite) TestCreateOffer_Success() {
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(s.activePlan(), nil).Once()
	s.mockOfferRepo.On("SaveOffer", s.ctx, mock.MatchedBy(func(o domain.ProductOffer) bool {
		return o.PlanID == "plan-1" && o.Active && o.AmountAvailable == 50
	})).Return(nil).Once()

	offer, err := s.service.CreateOffer(s.ctx, "company-1", dto.CreateOfferRequest{
		PlanID: "plan-1",
		Name:   "Fresh bread",
		Amount: 50,
	})

	s.Require().NoError(err)
	s.Require().NotNil(offer)
	s.True(offer.Active)
	s.Equal(int64(50), offer.AmountAvailable)
	s.mockOfferRepo.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestCreateOffer_RequiresActivePlan() {
	inactive := s.activePlan()
	inactive.IsActive = false
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(inactive, nil).Once()

	offer, err := s.service.CreateOffer(s.ctx, "company-1", dto.CreateOfferRequest{
		PlanID: "plan-1",
		Name:   "Fresh bread",
		Amount: 50,
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(offer)
	s.mockOfferRepo.AssertNotCalled(s.T(), "SaveOffer", mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestCreateOffer_ForbiddenForNonPlanner() {
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(s.activePlan(), nil).Once()

	offer, err := s.service.CreateOffer(s.ctx, "company-2", dto.CreateOfferRequest{
		PlanID: "plan-1",
		Name:   "Fresh bread",
		Amount: 50,
	})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.Nil(offer)
}

func (s *PurchaseServiceTestSuite) TestPurchaseProduct_MemberConsumption() {
	buyer := domain.MemberBuyer("member-1")
	s.mockOfferRepo.On("FindOfferByID", s.ctx, "offer-1").Return(s.activeOffer(), nil).Once()
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(s.activePlan(), nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").Return(s.sellingCompany(), nil).Once()
	s.mockMemberRepo.On("FindMemberByID", s.ctx, "member-1").
		Return(&domain.Member{MemberID: "member-1", AccountID: "acc-member"}, nil).Once()
	s.mockPricingSvc.On("CalculatePrice", s.ctx, "plan-1").Return(decimal.NewFromFloat(2.5), nil).Once()
	s.mockOfferRepo.On("RecordPurchase", s.ctx, "offer-1",
		mock.AnythingOfType("domain.Purchase"),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.SendingAccountID == "acc-member" &&
				txn.ReceivingAccountID == "acc-product" &&
				txn.Amount.Equal(decimal.NewFromInt(10))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 2 &&
				changes["acc-member"].Equal(decimal.NewFromInt(-10)) &&
				changes["acc-product"].Equal(decimal.NewFromInt(10))
		}),
	).Return(nil).Once()

	purchase, err := s.service.PurchaseProduct(s.ctx, buyer, dto.PurchaseProductRequest{
		OfferID: "offer-1",
		Amount:  4,
		Purpose: "consumption",
	})

	s.Require().NoError(err)
	s.Require().NotNil(purchase)
	s.Equal("plan-1", purchase.PlanID)
	s.Equal(int64(4), purchase.Amount)
	s.True(purchase.PricePerUnit.Equal(decimal.NewFromFloat(2.5)))
	s.Equal(domain.PurposeConsumption, purchase.Purpose)
	s.mockOfferRepo.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestPurchaseProduct_MemberCannotBuyMeansOfProduction() {
	buyer := domain.MemberBuyer("member-1")
	s.mockOfferRepo.On("FindOfferByID", s.ctx, "offer-1").Return(s.activeOffer(), nil).Once()
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(s.activePlan(), nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").Return(s.sellingCompany(), nil).Once()

	purchase, err := s.service.PurchaseProduct(s.ctx, buyer, dto.PurchaseProductRequest{
		OfferID: "offer-1",
		Amount:  4,
		Purpose: "means_of_prod",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(purchase)
	s.mockOfferRepo.AssertNotCalled(s.T(), "RecordPurchase",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestPurchaseProduct_CompanyBuysRawMaterials() {
	buyer := domain.CompanyBuyer("company-2")
	s.mockOfferRepo.On("FindOfferByID", s.ctx, "offer-1").Return(s.activeOffer(), nil).Once()
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(s.activePlan(), nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").Return(s.sellingCompany(), nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-2").Return(s.buyingCompany(), nil).Once()
	s.mockPricingSvc.On("CalculatePrice", s.ctx, "plan-1").Return(decimal.NewFromInt(3), nil).Once()
	s.mockOfferRepo.On("RecordPurchase", s.ctx, "offer-1",
		mock.AnythingOfType("domain.Purchase"),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.SendingAccountID == "acc-b-raw" && txn.ReceivingAccountID == "acc-product"
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes["acc-b-raw"].Equal(decimal.NewFromInt(-6)) &&
				changes["acc-product"].Equal(decimal.NewFromInt(6))
		}),
	).Return(nil).Once()

	purchase, err := s.service.PurchaseProduct(s.ctx, buyer, dto.PurchaseProductRequest{
		OfferID: "offer-1",
		Amount:  2,
		Purpose: "raw_materials",
	})

	s.Require().NoError(err)
	s.Require().NotNil(purchase)
	s.Equal(domain.BuyerCompany, purchase.Buyer.Kind)
	s.mockOfferRepo.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestPurchaseProduct_CompanyCannotConsume() {
	buyer := domain.CompanyBuyer("company-2")
	s.mockOfferRepo.On("FindOfferByID", s.ctx, "offer-1").Return(s.activeOffer(), nil).Once()
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(s.activePlan(), nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").Return(s.sellingCompany(), nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-2").Return(s.buyingCompany(), nil).Once()

	purchase, err := s.service.PurchaseProduct(s.ctx, buyer, dto.PurchaseProductRequest{
		OfferID: "offer-1",
		Amount:  2,
		Purpose: "consumption",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(purchase)
}

func (s *PurchaseServiceTestSuite) TestPurchaseProduct_InactiveOfferRejected() {
	stale := s.activeOffer()
	stale.Active = false
	s.mockOfferRepo.On("FindOfferByID", s.ctx, "offer-1").Return(stale, nil).Once()

	purchase, err := s.service.PurchaseProduct(s.ctx, domain.MemberBuyer("member-1"), dto.PurchaseProductRequest{
		OfferID: "offer-1",
		Amount:  1,
		Purpose: "consumption",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(purchase)
}

func (s *PurchaseServiceTestSuite) TestPurchaseProduct_InsufficientInventory() {
	buyer := domain.MemberBuyer("member-1")
	s.mockOfferRepo.On("FindOfferByID", s.ctx, "offer-1").Return(s.activeOffer(), nil).Once()
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(s.activePlan(), nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").Return(s.sellingCompany(), nil).Once()
	s.mockMemberRepo.On("FindMemberByID", s.ctx, "member-1").
		Return(&domain.Member{MemberID: "member-1", AccountID: "acc-member"}, nil).Once()
	s.mockPricingSvc.On("CalculatePrice", s.ctx, "plan-1").Return(decimal.NewFromFloat(2.5), nil).Once()
	s.mockOfferRepo.On("RecordPurchase", s.ctx, "offer-1",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(apperrors.ErrInsufficientInventory).Once()

	purchase, err := s.service.PurchaseProduct(s.ctx, buyer, dto.PurchaseProductRequest{
		OfferID: "offer-1",
		Amount:  60,
		Purpose: "consumption",
	})

	s.Require().ErrorIs(err, apperrors.ErrInsufficientInventory)
	s.Nil(purchase)
}

func (s *PurchaseServiceTestSuite) TestListPurchases() {
	buyer := domain.MemberBuyer("member-1")
	stored := []domain.Purchase{{PurchaseID: "purchase-1", PlanID: "plan-1", Buyer: buyer}}
	s.mockOfferRepo.On("ListPurchasesOfBuyer", s.ctx, buyer).Return(stored, nil).Once()

	purchases, err := s.service.ListPurchases(s.ctx, buyer)

	s.Require().NoError(err)
	s.Equal(stored, purchases)
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
