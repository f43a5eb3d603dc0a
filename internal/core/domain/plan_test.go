package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testCosts(t *testing.T) domain.ProductionCosts {
	t.Helper()
	costs, err := domain.NewProductionCosts(
		decimal.NewFromInt(20), // labour
		decimal.NewFromInt(5),  // resources
		decimal.NewFromInt(10), // means
	)
	require.NoError(t, err)
	return costs
}

func testDraft(t *testing.T) domain.PlanDraft {
	t.Helper()
	return domain.PlanDraft{
		DraftID:       "draft-1",
		PlannerID:     "company-1",
		CreationDate:  testNow,
		Costs:         testCosts(t),
		ProductName:   "Bread",
		ProductUnit:   "loaf",
		ProductAmount: 100,
		Timeframe:     5,
	}
}

func testPlanner() domain.Company {
	return domain.Company{
		CompanyID:            "company-1",
		MeansAccountID:       "acc-p",
		RawMaterialAccountID: "acc-r",
		WorkAccountID:        "acc-a",
		ProductAccountID:     "acc-prd",
	}
}

func testSocial() domain.SocialAccounting {
	return domain.SocialAccounting{ID: "social-1", AccountID: "acc-social"}
}

func approvedPlan(t *testing.T) domain.Plan {
	t.Helper()
	plan, err := domain.SubmitDraft(testDraft(t), "plan-1", testNow)
	require.NoError(t, err)
	decided, err := plan.Decide(domain.ApprovalDecision{Approved: true, Reason: "ok"}, testNow)
	require.NoError(t, err)
	return decided
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("txn-%d", n)
	}
}

func TestSubmitDraft(t *testing.T) {
	plan, err := domain.SubmitDraft(testDraft(t), "plan-1", testNow)
	require.NoError(t, err)

	assert.Equal(t, "plan-1", plan.PlanID)
	assert.Equal(t, "company-1", plan.PlannerID)
	assert.Equal(t, domain.StatusPending, plan.Status())
	assert.False(t, plan.Approved)
	assert.Nil(t, plan.ActivationDate)
}

func TestSubmitDraft_RejectsInvalidAmountAndTimeframe(t *testing.T) {
	draft := testDraft(t)
	draft.ProductAmount = 0
	_, err := domain.SubmitDraft(draft, "plan-1", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidProductAmount)

	draft = testDraft(t)
	draft.Timeframe = 0
	_, err = domain.SubmitDraft(draft, "plan-1", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeframe)
}

func TestDecide_OnlyOnce(t *testing.T) {
	plan, err := domain.SubmitDraft(testDraft(t), "plan-1", testNow)
	require.NoError(t, err)

	denied, err := plan.Decide(domain.ApprovalDecision{Approved: false, Reason: "no"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDenied, denied.Status())

	_, err = denied.Decide(domain.ApprovalDecision{Approved: true}, testNow)
	assert.ErrorIs(t, err, domain.ErrPlanAlreadyDecided)
}

func TestGrantCredit(t *testing.T) {
	plan := approvedPlan(t)

	grant, err := plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	require.NoError(t, err)

	assert.True(t, grant.Plan.IsActive)
	assert.Equal(t, domain.StatusActive, grant.Plan.Status())
	require.NotNil(t, grant.Plan.ActivationDate)
	require.NotNil(t, grant.Plan.ExpirationDate)
	assert.Equal(t, testNow.AddDate(0, 0, 5), *grant.Plan.ExpirationDate)

	// One signed delta per planner account: credits sum to total cost,
	// the product account carries the offsetting liability.
	require.Len(t, grant.BalanceChanges, 4)
	assert.True(t, grant.BalanceChanges["acc-p"].Equal(decimal.NewFromInt(10)))
	assert.True(t, grant.BalanceChanges["acc-r"].Equal(decimal.NewFromInt(5)))
	assert.True(t, grant.BalanceChanges["acc-a"].Equal(decimal.NewFromInt(20)))
	assert.True(t, grant.BalanceChanges["acc-prd"].Equal(decimal.NewFromInt(-35)))

	require.Len(t, grant.Transactions, 4)
	for _, txn := range grant.Transactions {
		assert.Equal(t, "acc-social", txn.SendingAccountID)
		assert.Equal(t, "Plan-Id: plan-1", txn.Purpose)
	}
}

func TestGrantCredit_RequiresApproval(t *testing.T) {
	plan, err := domain.SubmitDraft(testDraft(t), "plan-1", testNow)
	require.NoError(t, err)

	_, err = plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	assert.ErrorIs(t, err, domain.ErrPlanNotApproved)
}

func TestGrantCredit_RejectsDoubleGrant(t *testing.T) {
	plan := approvedPlan(t)
	grant, err := plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	require.NoError(t, err)

	_, err = grant.Plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	assert.ErrorIs(t, err, domain.ErrCreditAlreadyGranted)
}

func TestGrantCredit_RejectsWrongPlanner(t *testing.T) {
	plan := approvedPlan(t)
	other := testPlanner()
	other.CompanyID = "company-2"

	_, err := plan.GrantCredit(other, testSocial(), sequentialIDs(), testNow)
	assert.ErrorIs(t, err, domain.ErrCreditGrantPurposeSelf)
}

func TestActiveDays_ClampedToTimeframe(t *testing.T) {
	plan := approvedPlan(t)
	grant, err := plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	require.NoError(t, err)
	active := grant.Plan

	assert.Equal(t, 0, active.ActiveDays(testNow))
	assert.Equal(t, 3, active.ActiveDays(testNow.AddDate(0, 0, 3)))
	// 30 days after activation the count stays at the 5-day timeframe.
	assert.Equal(t, 5, active.ActiveDays(testNow.AddDate(0, 0, 30)))
}

func TestIsDueForExpiryAndExpire(t *testing.T) {
	plan := approvedPlan(t)
	grant, err := plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	require.NoError(t, err)
	active := grant.Plan

	assert.False(t, active.IsDueForExpiry(testNow.AddDate(0, 0, 4)))
	assert.True(t, active.IsDueForExpiry(testNow.AddDate(0, 0, 5)))

	expired, err := active.Expire(testNow.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.False(t, expired.IsActive)
	assert.True(t, expired.Expired)
	assert.Equal(t, domain.StatusExpired, expired.Status())

	_, err = expired.Expire(testNow)
	assert.ErrorIs(t, err, domain.ErrPlanNotActive)
}

func TestRenew(t *testing.T) {
	plan := approvedPlan(t)
	grant, err := plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	require.NoError(t, err)
	expired, err := grant.Plan.Expire(testNow.AddDate(0, 0, 5))
	require.NoError(t, err)

	later := testNow.AddDate(0, 0, 6)
	successor, renewed, err := expired.Renew("plan-2", later)
	require.NoError(t, err)

	assert.Equal(t, "plan-2", successor.PlanID)
	assert.Equal(t, expired.Costs, successor.Costs)
	assert.Equal(t, domain.StatusPending, successor.Status())
	assert.Nil(t, successor.ActivationDate)
	assert.True(t, renewed.Renewed)

	_, _, err = renewed.Renew("plan-3", later)
	assert.ErrorIs(t, err, domain.ErrPlanAlreadyRenewed)
}

func TestRenew_RequiresExpiry(t *testing.T) {
	plan := approvedPlan(t)
	_, _, err := plan.Renew("plan-2", testNow)
	assert.ErrorIs(t, err, domain.ErrPlanNotExpired)
}

func TestHide(t *testing.T) {
	plan := approvedPlan(t)
	grant, err := plan.GrantCredit(testPlanner(), testSocial(), sequentialIDs(), testNow)
	require.NoError(t, err)

	// Active plans cannot be hidden.
	_, err = grant.Plan.Hide(testNow)
	assert.ErrorIs(t, err, domain.ErrPlanNotExpired)

	expired, err := grant.Plan.Expire(testNow.AddDate(0, 0, 5))
	require.NoError(t, err)
	hidden, err := expired.Hide(testNow.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.True(t, hidden.HiddenByUser)
}

func TestPricePerUnit(t *testing.T) {
	plan, err := domain.SubmitDraft(testDraft(t), "plan-1", testNow)
	require.NoError(t, err)
	// 35 total cost over 100 units
	assert.True(t, plan.PricePerUnit().Equal(decimal.RequireFromString("0.35")))

	public := plan
	public.IsPublicService = true
	assert.True(t, public.PricePerUnit().IsZero())
	assert.True(t, public.ExpectedSalesValue().IsZero())
	assert.True(t, plan.ExpectedSalesValue().Equal(decimal.NewFromInt(35)))
}
