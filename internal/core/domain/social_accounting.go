package domain

// SocialAccounting is the singleton authority that approves plans and
// grants labour-certificate credit. It owns the single accounting-type
// account that all credit-grant transactions originate from. The row is
// created once by migration bootstrap and carries a generated id like any
// other entity.
type SocialAccounting struct {
	ID        string `json:"id"`
	AccountID string `json:"accountID"`
	AuditFields
}
