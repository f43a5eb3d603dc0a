package domain

// Member is a natural person taking part in the labour-time economy. Every
// member owns exactly one account holding their labour certificates.
type Member struct {
	MemberID     string `json:"memberID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AccountID    string `json:"accountID"`
	AuditFields
}
