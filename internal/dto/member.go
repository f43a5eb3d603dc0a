package dto

import (
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
)

// RegisterMemberRequest defines the data needed to register a member.
type RegisterMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// MemberResponse defines the data returned for a member.
type MemberResponse struct {
	MemberID  string `json:"memberID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AccountID string `json:"accountID"`
}

// ToMemberResponse converts a domain.Member to MemberResponse.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:  m.MemberID,
		Name:      m.Name,
		Email:     m.Email,
		AccountID: m.AccountID,
	}
}
