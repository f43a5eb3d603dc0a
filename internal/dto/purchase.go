package dto

import (
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOfferRequest defines the data needed to list a plan's product.
type CreateOfferRequest struct {
	PlanID      string `json:"planID" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// OfferResponse defines the data returned for a product offer.
type OfferResponse struct {
	OfferID         string `json:"offerID"`
	PlanID          string `json:"planID"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	AmountAvailable int64  `json:"amountAvailable"`
	Active          bool   `json:"active"`
}

// ToOfferResponse converts a domain.ProductOffer to OfferResponse.
func ToOfferResponse(o *domain.ProductOffer) OfferResponse {
	return OfferResponse{
		OfferID:         o.OfferID,
		PlanID:          o.PlanID,
		Name:            o.Name,
		Description:     o.Description,
		AmountAvailable: o.AmountAvailable,
		Active:          o.Active,
	}
}

// PurchaseProductRequest defines the data needed to purchase from an offer.
type PurchaseProductRequest struct {
	OfferID string `json:"offerID" binding:"required"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
	Purpose string `json:"purpose" binding:"required,oneof=means_of_prod raw_materials consumption"`
}

// PurchaseResponse defines the data returned for a completed purchase.
type PurchaseResponse struct {
	PurchaseID   string          `json:"purchaseID"`
	Date         time.Time       `json:"date"`
	PlanID       string          `json:"planID"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Amount       int64           `json:"amount"`
	Purpose      string          `json:"purpose"`
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:   p.PurchaseID,
		Date:         p.Date,
		PlanID:       p.PlanID,
		PricePerUnit: p.PricePerUnit,
		Amount:       p.Amount,
		Purpose:      string(p.Purpose),
	}
}
