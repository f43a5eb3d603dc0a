package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/utils"
)

// memberService manages member registration and authentication.
type memberService struct {
	BaseService
	memberRepo portsrepo.MemberRepositoryFacade
	clock      portssvc.Clock
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo portsrepo.MemberRepositoryFacade, clock portssvc.Clock) portssvc.MemberSvcFacade {
	return &memberService{memberRepo: memberRepo, clock: clock}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

// RegisterMember creates a member together with their single account in one
// storage transaction.
func (s *memberService) RegisterMember(ctx context.Context, req dto.RegisterMemberRequest) (*domain.Member, error) {
	existing, err := s.memberRepo.FindMemberByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicate
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	audit := domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}
	memberID := uuid.NewString()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     memberID,
		AccountType: domain.AccountMember,
		Balance:     decimal.Zero,
		AuditFields: audit,
	}
	member := domain.Member{
		MemberID:     memberID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AccountID:    account.AccountID,
		AuditFields:  audit,
	}

	if err := s.memberRepo.SaveMemberWithAccount(ctx, member, account); err != nil {
		s.LogError(ctx, err, "Failed to register member", slog.String("email", req.Email))
		return nil, err
	}
	s.LogInfo(ctx, "Member registered", slog.String("member_id", memberID))
	return &member, nil
}

// GetMemberByID retrieves a member.
func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

// AuthenticateMember verifies login credentials.
func (s *memberService) AuthenticateMember(ctx context.Context, email, password string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, member.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return member, nil
}
