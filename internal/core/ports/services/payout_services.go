package services

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayoutSvcFacade computes and stores the global payout factor balancing
// productive labour-time supply against public-service cost demand.
type PayoutSvcFacade interface {
	// CalculatePayoutFactor computes (A - (Po + Ro)) / (A + Ao) over the
	// currently approved, active, non-expired plans. The denominator
	// defaults to 1 when there is no productive base, yielding a zero
	// factor instead of an error. The result is not clamped.
	CalculatePayoutFactor(ctx context.Context) (decimal.Decimal, error)

	// StorePayoutFactor persists a timestamped snapshot of the value.
	StorePayoutFactor(ctx context.Context, value decimal.Decimal) error

	// LatestPayoutFactor retrieves the most recent snapshot at or before now.
	LatestPayoutFactor(ctx context.Context) (*domain.PayoutFactor, error)

	// RunPayout performs one payout cycle: expire elapsed plans, compute
	// the factor over the remaining active plans, store the snapshot.
	RunPayout(ctx context.Context) (*domain.PayoutFactor, error)
}
