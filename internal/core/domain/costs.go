package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductionCosts is the cost triple of a plan, measured in labour hours:
// labour performed, raw materials consumed and means of production used up.
type ProductionCosts struct {
	LabourCost   decimal.Decimal `json:"labourCost"`
	ResourceCost decimal.Decimal `json:"resourceCost"`
	MeansCost    decimal.Decimal `json:"meansCost"`
}

// NewProductionCosts builds a cost triple, rejecting negative components.
func NewProductionCosts(labour, resource, means decimal.Decimal) (ProductionCosts, error) {
	if labour.IsNegative() || resource.IsNegative() || means.IsNegative() {
		return ProductionCosts{}, fmt.Errorf("production costs must not be negative: a=%s r=%s p=%s",
			labour.String(), resource.String(), means.String())
	}
	return ProductionCosts{LabourCost: labour, ResourceCost: resource, MeansCost: means}, nil
}

// ZeroCosts returns the additive identity for ProductionCosts.
func ZeroCosts() ProductionCosts {
	return ProductionCosts{
		LabourCost:   decimal.Zero,
		ResourceCost: decimal.Zero,
		MeansCost:    decimal.Zero,
	}
}

// Total returns the sum of the three cost components.
func (c ProductionCosts) Total() decimal.Decimal {
	return c.LabourCost.Add(c.ResourceCost).Add(c.MeansCost)
}

// Add returns the elementwise sum of two cost triples.
func (c ProductionCosts) Add(other ProductionCosts) ProductionCosts {
	return ProductionCosts{
		LabourCost:   c.LabourCost.Add(other.LabourCost),
		ResourceCost: c.ResourceCost.Add(other.ResourceCost),
		MeansCost:    c.MeansCost.Add(other.MeansCost),
	}
}

// Div returns the cost triple scaled down by divisor, typically the plan
// timeframe in days when averaging cost per day.
func (c ProductionCosts) Div(divisor decimal.Decimal) (ProductionCosts, error) {
	if divisor.LessThanOrEqual(decimal.Zero) {
		return ProductionCosts{}, fmt.Errorf("production cost divisor must be positive, got %s", divisor.String())
	}
	return ProductionCosts{
		LabourCost:   c.LabourCost.Div(divisor),
		ResourceCost: c.ResourceCost.Div(divisor),
		MeansCost:    c.MeansCost.Div(divisor),
	}, nil
}
