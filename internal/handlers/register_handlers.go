package handlers

import (
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
	"github.com/NichtEuler/arbeitszeitapp/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public registration and login routes
	registerAuthRoutes(r, services)

	// Everything else requires a bearer token
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerPlanRoutes(v1, services.Plan, services.Company)
	registerOfferRoutes(v1, services.Purchase)
	registerPayoutRoutes(v1, services.Payout)
	registerCooperationRoutes(v1, services.Pricing)
	RegisterLedgerRoutes(v1, services.Ledger)
}
