package services

import (
	"github.com/golang-jwt/jwt/v5"

	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
	"github.com/NichtEuler/arbeitszeitapp/internal/platform/config"
)

// tokenService issues signed bearer tokens for authenticated actors.
type tokenService struct {
	cfg   *config.Config
	clock portssvc.Clock
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, clock portssvc.Clock) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, clock: clock}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueToken signs a token whose subject is the actor id and whose kind
// claim distinguishes members from companies.
func (s *tokenService) IssueToken(actorID string, kind portssvc.ActorKind) (string, error) {
	now := s.clock.Now()
	claims := middleware.ActorClaims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			Subject:   actorID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
