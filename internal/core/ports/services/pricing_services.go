package services

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/shopspring/decimal"
)

// PricingSvcFacade computes effective unit prices and manages cooperations.
// Cooperative prices are recomputed on every call because cooperation
// membership changes over time.
type PricingSvcFacade interface {
	// CalculatePrice returns the effective price per unit of a plan: its own
	// cost per unit when standing alone, or the averaged price of its
	// cooperation when pooled.
	CalculatePrice(ctx context.Context, planID string) (decimal.Decimal, error)

	// CreateCooperation founds a new, empty cooperation.
	CreateCooperation(ctx context.Context, req dto.CreateCooperationRequest) (*domain.Cooperation, error)

	// JoinCooperation pools a planner's plan into a cooperation.
	JoinCooperation(ctx context.Context, plannerID string, cooperationID string, planID string) error

	// LeaveCooperation detaches a planner's plan from its cooperation.
	LeaveCooperation(ctx context.Context, plannerID string, planID string) error
}
