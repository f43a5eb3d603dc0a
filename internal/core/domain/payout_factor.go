package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutFactor is a timestamped snapshot of the global ratio balancing
// productive labour-time supply against public-service cost demand.
// Snapshots are persisted historically and never mutated; consumers look up
// the most recent snapshot at or before a point in time. The value is not
// clamped, so factors outside [-1, 1] are stored as computed.
type PayoutFactor struct {
	CalculationDate time.Time       `json:"calculationDate"`
	Value           decimal.Decimal `json:"value"`
}
