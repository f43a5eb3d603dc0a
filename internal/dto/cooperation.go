package dto

import (
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCooperationRequest defines the data needed to found a cooperation.
type CreateCooperationRequest struct {
	Name string `json:"name" binding:"required"`
}

// CooperationResponse defines the data returned for a cooperation.
type CooperationResponse struct {
	CooperationID string `json:"cooperationID"`
	Name          string `json:"name"`
}

// ToCooperationResponse converts a domain.Cooperation to CooperationResponse.
func ToCooperationResponse(c *domain.Cooperation) CooperationResponse {
	return CooperationResponse{CooperationID: c.CooperationID, Name: c.Name}
}

// JoinCooperationRequest defines the data needed to pool a plan into a
// cooperation.
type JoinCooperationRequest struct {
	PlanID string `json:"planID" binding:"required"`
}

// PriceResponse returns the effective price per unit of a plan, accounting
// for cooperating plans pooling costs.
type PriceResponse struct {
	PlanID       string          `json:"planID"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}
