package dto

import (
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDraftRequest defines the data needed to file a new plan draft.
type CreateDraftRequest struct {
	ProductName     string          `json:"productName" binding:"required"`
	ProductUnit     string          `json:"productUnit" binding:"required"`
	ProductAmount   int64           `json:"productAmount" binding:"required,gt=0"`
	Description     string          `json:"description"`
	Timeframe       int             `json:"timeframe" binding:"required,gt=0"`
	IsPublicService bool            `json:"isPublicService"`
	LabourCost      decimal.Decimal `json:"labourCost"`
	ResourceCost    decimal.Decimal `json:"resourceCost"`
	MeansCost       decimal.Decimal `json:"meansCost"`
}

// DraftResponse defines the data returned for a plan draft.
type DraftResponse struct {
	DraftID         string          `json:"draftID"`
	PlannerID       string          `json:"plannerID"`
	ProductName     string          `json:"productName"`
	ProductUnit     string          `json:"productUnit"`
	ProductAmount   int64           `json:"productAmount"`
	Description     string          `json:"description"`
	Timeframe       int             `json:"timeframe"`
	IsPublicService bool            `json:"isPublicService"`
	LabourCost      decimal.Decimal `json:"labourCost"`
	ResourceCost    decimal.Decimal `json:"resourceCost"`
	MeansCost       decimal.Decimal `json:"meansCost"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PlanResponse defines the data returned for a plan.
type PlanResponse struct {
	PlanID          string            `json:"planID"`
	PlannerID       string            `json:"plannerID"`
	Status          domain.PlanStatus `json:"status"`
	ProductName     string            `json:"productName"`
	ProductUnit     string            `json:"productUnit"`
	ProductAmount   int64             `json:"productAmount"`
	Description     string            `json:"description"`
	Timeframe       int               `json:"timeframe"`
	IsPublicService bool              `json:"isPublicService"`
	LabourCost      decimal.Decimal   `json:"labourCost"`
	ResourceCost    decimal.Decimal   `json:"resourceCost"`
	MeansCost       decimal.Decimal   `json:"meansCost"`
	PricePerUnit    decimal.Decimal   `json:"pricePerUnit"`
	Approved        bool              `json:"approved"`
	ApprovalReason  string            `json:"approvalReason,omitempty"`
	IsActive        bool              `json:"isActive"`
	Expired         bool              `json:"expired"`
	Renewed         bool              `json:"renewed"`
	IsCooperating   bool              `json:"isCooperating"`
	ActivationDate  *time.Time        `json:"activationDate,omitempty"`
	ExpirationDate  *time.Time        `json:"expirationDate,omitempty"`
}

// ToDraftResponse converts a domain.PlanDraft to DraftResponse.
func ToDraftResponse(d *domain.PlanDraft) DraftResponse {
	return DraftResponse{
		DraftID:         d.DraftID,
		PlannerID:       d.PlannerID,
		ProductName:     d.ProductName,
		ProductUnit:     d.ProductUnit,
		ProductAmount:   d.ProductAmount,
		Description:     d.Description,
		Timeframe:       d.Timeframe,
		IsPublicService: d.IsPublicService,
		LabourCost:      d.Costs.LabourCost,
		ResourceCost:    d.Costs.ResourceCost,
		MeansCost:       d.Costs.MeansCost,
		CreatedAt:       d.CreatedAt,
	}
}

// ToPlanResponse converts a domain.Plan to PlanResponse.
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:          p.PlanID,
		PlannerID:       p.PlannerID,
		Status:          p.Status(),
		ProductName:     p.ProductName,
		ProductUnit:     p.ProductUnit,
		ProductAmount:   p.ProductAmount,
		Description:     p.Description,
		Timeframe:       p.Timeframe,
		IsPublicService: p.IsPublicService,
		LabourCost:      p.Costs.LabourCost,
		ResourceCost:    p.Costs.ResourceCost,
		MeansCost:       p.Costs.MeansCost,
		PricePerUnit:    p.PricePerUnit(),
		Approved:        p.Approved,
		ApprovalReason:  p.ApprovalReason,
		IsActive:        p.IsActive,
		Expired:         p.Expired,
		Renewed:         p.Renewed,
		IsCooperating:   p.CooperationID != nil,
		ActivationDate:  p.ActivationDate,
		ExpirationDate:  p.ExpirationDate,
	}
}

// HidePlanResponse reports the outcome of a hide request. Hiding an active
// plan is a business rejection: IsSuccess is false and nothing changes.
type HidePlanResponse struct {
	PlanID    string `json:"planID"`
	IsSuccess bool   `json:"isSuccess"`
}

// QueryPlansRequest defines the plan search parameters.
type QueryPlansRequest struct {
	Term   string `json:"term" form:"term"`
	Filter string `json:"filter" form:"filter" binding:"omitempty,oneof=plan_id product_name"`
}

// QueriedPlan is one row of a plan search result.
type QueriedPlan struct {
	PlanID          string          `json:"planID"`
	CompanyID       string          `json:"companyID"`
	CompanyName     string          `json:"companyName"`
	ProductName     string          `json:"productName"`
	Description     string          `json:"description"`
	PricePerUnit    decimal.Decimal `json:"pricePerUnit"`
	IsPublicService bool            `json:"isPublicService"`
	IsCooperating   bool            `json:"isCooperating"`
	ActivationDate  time.Time       `json:"activationDate"`
}

// QueryPlansResponse wraps a plan search result.
type QueryPlansResponse struct {
	Results []QueriedPlan `json:"results"`
}
