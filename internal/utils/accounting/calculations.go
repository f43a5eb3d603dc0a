package accounting

import (
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DailyCosts sums costs-per-day (production costs divided by timeframe)
// over the given plans. Plans with a non-positive timeframe contribute
// nothing; submission validation keeps them out of the active set anyway.
func DailyCosts(plans []domain.Plan) domain.ProductionCosts {
	sum := domain.ZeroCosts()
	for _, p := range plans {
		perDay, err := p.Costs.Div(decimal.NewFromInt(int64(p.Timeframe)))
		if err != nil {
			continue
		}
		sum = sum.Add(perDay)
	}
	return sum
}

// DailyLabour sums labour-cost-per-day over the given plans. This is the
// "A" term of the payout factor for productive plans.
func DailyLabour(plans []domain.Plan) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range plans {
		if p.Timeframe <= 0 {
			continue
		}
		sum = sum.Add(p.Costs.LabourCost.Div(decimal.NewFromInt(int64(p.Timeframe))))
	}
	return sum
}

// PayoutFactor computes (A - (Po + Ro)) / (A + Ao) where A is the daily
// productive labour supply and Po, Ro, Ao the daily public-service means,
// resource and labour costs. When there is no productive base the
// denominator defaults to 1, yielding a zero factor rather than an error.
// The result is not clamped; values outside [-1, 1] are returned as
// computed.
func PayoutFactor(productive, public []domain.Plan) decimal.Decimal {
	publicPerDay := DailyCosts(public)
	a := DailyLabour(productive)

	numerator := a.Sub(publicPerDay.MeansCost.Add(publicPerDay.ResourceCost))
	denominator := a.Add(publicPerDay.LabourCost)
	if denominator.IsZero() {
		denominator = decimal.NewFromInt(1)
	}
	return numerator.Div(denominator)
}

// CooperativePricePerUnit computes the shared unit price of cooperating
// plans: total pooled cost divided by total pooled output. Public-service
// plans contribute neither cost nor output; their own price stays zero.
func CooperativePricePerUnit(plans []domain.Plan) decimal.Decimal {
	totalCost := decimal.Zero
	totalAmount := decimal.Zero
	for _, p := range plans {
		if p.IsPublicService {
			continue
		}
		totalCost = totalCost.Add(p.Costs.Total())
		totalAmount = totalAmount.Add(decimal.NewFromInt(p.ProductAmount))
	}
	if totalAmount.IsZero() {
		return decimal.Zero
	}
	return totalCost.Div(totalAmount)
}
