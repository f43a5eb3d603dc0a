package services

import "time"

// Clock abstracts "now" so lifecycle arithmetic and payout snapshots are
// testable against a frozen time.
type Clock interface {
	Now() time.Time
}
