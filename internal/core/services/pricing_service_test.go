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

type PricingServiceTestSuite struct {
	suite.Suite
	mockPlanRepo *MockPlanRepository
	mockCoopRepo *MockCooperationRepository
	service      portssvc.PricingSvcFacade
	ctx          context.Context
}

func (s *PricingServiceTestSuite) SetupTest() {
	s.mockPlanRepo = new(MockPlanRepository)
	s.mockCoopRepo = new(MockCooperationRepository)
	s.service = services.NewPricingService(s.mockPlanRepo, s.mockCoopRepo, fixedClock{frozenNow})
	s.ctx = context.Background()
}

func pricedPlan(id string, total int64, amount int64) *domain.Plan {
	return &domain.Plan{
		PlanID:        id,
		PlannerID:     "company-1",
		Costs:         domain.ProductionCosts{LabourCost: decimal.NewFromInt(total)},
		ProductAmount: amount,
		Timeframe:     5,
		Approved:      true,
		IsActive:      true,
	}
}

func (s *PricingServiceTestSuite) TestCalculatePrice_StandalonePlan() {
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(pricedPlan("plan-1", 70, 100), nil).Once()

	price, err := s.service.CalculatePrice(s.ctx, "plan-1")

	s.Require().NoError(err)
	s.True(price.Equal(decimal.NewFromFloat(0.7)), "got %s", price)
	s.mockCoopRepo.AssertNotCalled(s.T(), "ListPlansByCooperation", mock.Anything, mock.Anything)
}

func (s *PricingServiceTestSuite) TestCalculatePrice_PublicServiceIsFree() {
	plan := pricedPlan("plan-1", 70, 100)
	plan.IsPublicService = true
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(plan, nil).Once()

	price, err := s.service.CalculatePrice(s.ctx, "plan-1")

	s.Require().NoError(err)
	s.True(price.IsZero(), "got %s", price)
}

func (s *PricingServiceTestSuite) TestCalculatePrice_CooperatingPlansAverage() {
	coopID := "coop-1"
	plan := pricedPlan("plan-1", 60, 10)
	plan.CooperationID = &coopID
	peer := pricedPlan("plan-2", 40, 10)
	peer.CooperationID = &coopID
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(plan, nil).Once()
	s.mockCoopRepo.On("ListPlansByCooperation", s.ctx, "coop-1").
		Return([]domain.Plan{*plan, *peer}, nil).Once()

	price, err := s.service.CalculatePrice(s.ctx, "plan-1")

	s.Require().NoError(err)
	// (60 + 40) / (10 + 10)
	s.True(price.Equal(decimal.NewFromInt(5)), "got %s", price)
	s.mockCoopRepo.AssertExpectations(s.T())
}

func (s *PricingServiceTestSuite) TestCreateCooperation() {
	s.mockCoopRepo.On("SaveCooperation", s.ctx, mock.MatchedBy(func(c domain.Cooperation) bool {
		return c.Name == "Bread Alliance" && c.CooperationID != ""
	})).Return(nil).Once()

	coop, err := s.service.CreateCooperation(s.ctx, dto.CreateCooperationRequest{Name: "Bread Alliance"})

	s.Require().NoError(err)
	s.Require().NotNil(coop)
	s.Equal("Bread Alliance", coop.Name)
	s.NotEmpty(coop.CooperationID)
	s.mockCoopRepo.AssertExpectations(s.T())
}

func (s *PricingServiceTestSuite) TestJoinCooperation() {
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(pricedPlan("plan-1", 70, 100), nil).Once()
	s.mockCoopRepo.On("FindCooperationByID", s.ctx, "coop-1").
		Return(&domain.Cooperation{CooperationID: "coop-1", Name: "Bread Alliance"}, nil).Once()
	s.mockCoopRepo.On("SetPlanCooperation", s.ctx, "plan-1", mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == "coop-1"
	})).Return(nil).Once()

	err := s.service.JoinCooperation(s.ctx, "company-1", "coop-1", "plan-1")

	s.Require().NoError(err)
	s.mockCoopRepo.AssertExpectations(s.T())
}

func (s *PricingServiceTestSuite) TestJoinCooperation_ForbiddenForNonPlanner() {
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(pricedPlan("plan-1", 70, 100), nil).Once()

	err := s.service.JoinCooperation(s.ctx, "company-2", "coop-1", "plan-1")

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockCoopRepo.AssertNotCalled(s.T(), "SetPlanCooperation", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PricingServiceTestSuite) TestJoinCooperation_UnknownCooperation() {
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(pricedPlan("plan-1", 70, 100), nil).Once()
	s.mockCoopRepo.On("FindCooperationByID", s.ctx, "coop-404").Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.JoinCooperation(s.ctx, "company-1", "coop-404", "plan-1")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockCoopRepo.AssertNotCalled(s.T(), "SetPlanCooperation", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PricingServiceTestSuite) TestLeaveCooperation_DetachesPlan() {
	coopID := "coop-1"
	plan := pricedPlan("plan-1", 70, 100)
	plan.CooperationID = &coopID
	s.mockPlanRepo.On("FindPlanByID", s.ctx, "plan-1").Return(plan, nil).Once()
	s.mockCoopRepo.On("SetPlanCooperation", s.ctx, "plan-1", (*string)(nil)).Return(nil).Once()

	err := s.service.LeaveCooperation(s.ctx, "company-1", "plan-1")

	s.Require().NoError(err)
	s.mockCoopRepo.AssertExpectations(s.T())
}

func TestPricingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
