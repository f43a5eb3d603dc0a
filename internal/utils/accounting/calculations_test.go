package accounting_test

import (
	"testing"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plan(t *testing.T, labour, resource, means int64, timeframe int, amount int64, public bool) domain.Plan {
	t.Helper()
	costs, err := domain.NewProductionCosts(
		decimal.NewFromInt(labour),
		decimal.NewFromInt(resource),
		decimal.NewFromInt(means),
	)
	require.NoError(t, err)
	return domain.Plan{
		Costs:           costs,
		Timeframe:       timeframe,
		ProductAmount:   amount,
		IsPublicService: public,
	}
}

func TestPayoutFactor_NoPublicPlans(t *testing.T) {
	productive := []domain.Plan{plan(t, 100, 0, 0, 1, 10, false)}

	// With no public-service demand the whole labour supply pays out.
	factor := accounting.PayoutFactor(productive, nil)
	assert.True(t, factor.Equal(decimal.NewFromInt(1)), "got %s", factor)
}

func TestPayoutFactor_NoPlansAtAll(t *testing.T) {
	factor := accounting.PayoutFactor(nil, nil)
	assert.True(t, factor.IsZero())
}

func TestPayoutFactor_MixedPlans(t *testing.T) {
	// A = 90, Po+Ro = 20+10 = 30, Ao = 60: (90-30)/(90+60) = 0.4
	productive := []domain.Plan{plan(t, 90, 50, 40, 1, 10, false)}
	public := []domain.Plan{plan(t, 60, 10, 20, 1, 10, true)}

	factor := accounting.PayoutFactor(productive, public)
	assert.True(t, factor.Equal(decimal.RequireFromString("0.4")), "got %s", factor)
}

func TestPayoutFactor_CanGoNegativeUnclamped(t *testing.T) {
	// A = 10, Po+Ro = 40, Ao = 10: (10-40)/(10+10) = -1.5
	productive := []domain.Plan{plan(t, 10, 0, 0, 1, 10, false)}
	public := []domain.Plan{plan(t, 10, 20, 20, 1, 10, true)}

	factor := accounting.PayoutFactor(productive, public)
	assert.True(t, factor.Equal(decimal.RequireFromString("-1.5")), "got %s", factor)
}

func TestPayoutFactor_DividesByTimeframe(t *testing.T) {
	// Labour 100 over 10 days is a daily supply of 10.
	productive := []domain.Plan{plan(t, 100, 0, 0, 10, 10, false)}
	public := []domain.Plan{plan(t, 0, 5, 0, 1, 10, true)}

	// (10 - 5) / (10 + 0) = 0.5
	factor := accounting.PayoutFactor(productive, public)
	assert.True(t, factor.Equal(decimal.RequireFromString("0.5")), "got %s", factor)
}

func TestCooperativePricePerUnit(t *testing.T) {
	plans := []domain.Plan{
		plan(t, 30, 20, 10, 1, 10, false), // 60 cost, 10 units
		plan(t, 20, 10, 10, 1, 10, false), // 40 cost, 10 units
	}

	// (60 + 40) / (10 + 10) = 5
	price := accounting.CooperativePricePerUnit(plans)
	assert.True(t, price.Equal(decimal.NewFromInt(5)), "got %s", price)
}

func TestCooperativePricePerUnit_ExcludesPublicPlans(t *testing.T) {
	plans := []domain.Plan{
		plan(t, 30, 20, 10, 1, 10, false),
		plan(t, 500, 500, 500, 1, 1000, true), // public, contributes nothing
	}

	price := accounting.CooperativePricePerUnit(plans)
	assert.True(t, price.Equal(decimal.NewFromInt(6)), "got %s", price)
}

func TestCooperativePricePerUnit_EmptyPool(t *testing.T) {
	assert.True(t, accounting.CooperativePricePerUnit(nil).IsZero())
}
