package repositories

import (
	"context"
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
)

// PayoutFactorRepository stores and retrieves historical payout-factor
// snapshots. Snapshots are write-once.
type PayoutFactorRepository interface {
	// StorePayoutFactor persists a new snapshot. Prior records are never
	// overwritten.
	StorePayoutFactor(ctx context.Context, factor domain.PayoutFactor) error

	// FindLatestBefore retrieves the most recent snapshot at or before ts.
	FindLatestBefore(ctx context.Context, ts time.Time) (*domain.PayoutFactor, error)
}
