package middleware

import (
	"github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const (
	actorIDKey   = contextKey("actorID")
	actorKindKey = contextKey("actorKind")
)

// GetActorFromContext retrieves the authenticated actor id and kind from
// the Gin context. The boolean reports whether auth middleware ran.
func GetActorFromContext(c *gin.Context) (string, services.ActorKind, bool) {
	idVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", "", false
	}
	actorID, ok := idVal.(string)
	if !ok {
		return "", "", false
	}
	kindVal, exists := c.Get(string(actorKindKey))
	if !exists {
		return "", "", false
	}
	kind, ok := kindVal.(services.ActorKind)
	if !ok {
		return "", "", false
	}
	return actorID, kind, true
}

// GetCompanyFromContext retrieves the actor id when the authenticated actor
// is a company.
func GetCompanyFromContext(c *gin.Context) (string, bool) {
	id, kind, ok := GetActorFromContext(c)
	if !ok || kind != services.ActorCompany {
		return "", false
	}
	return id, true
}

// GetMemberFromContext retrieves the actor id when the authenticated actor
// is a member.
func GetMemberFromContext(c *gin.Context) (string, bool) {
	id, kind, ok := GetActorFromContext(c)
	if !ok || kind != services.ActorMember {
		return "", false
	}
	return id, true
}
