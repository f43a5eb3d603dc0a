package domain

// Cooperation is a pool of plans that share an averaged unit price. Plans
// reference their cooperation through Plan.CooperationID; membership
// changes over time, which is why cooperative prices are recomputed on
// every query instead of being cached.
type Cooperation struct {
	CooperationID string `json:"cooperationID"`
	Name          string `json:"name"`
	AuditFields
}
