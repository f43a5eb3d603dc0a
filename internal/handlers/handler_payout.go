package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// payoutHandler exposes the payout factor.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

func newPayoutHandler(ps portssvc.PayoutSvcFacade) *payoutHandler {
	return &payoutHandler{payoutService: ps}
}

// registerPayoutRoutes registers payout-factor routes.
func registerPayoutRoutes(rg *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade) {
	h := newPayoutHandler(payoutService)

	payout := rg.Group("/payout-factor")
	{
		payout.GET("", h.latestFactor)
		payout.POST("/run", h.runPayout)
	}
}

func (h *payoutHandler) latestFactor(c *gin.Context) {
	factor, err := h.payoutService.LatestPayoutFactor(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No payout factor has been calculated yet"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get payout factor", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get payout factor"})
		return
	}
	c.JSON(http.StatusOK, dto.PayoutFactorResponse{
		CalculationDate: factor.CalculationDate,
		Value:           factor.Value,
	})
}

// runPayout triggers one payout cycle on demand, in addition to the
// periodic background run.
func (h *payoutHandler) runPayout(c *gin.Context) {
	factor, err := h.payoutService.RunPayout(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to run payout", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to run payout"})
		return
	}
	c.JSON(http.StatusOK, dto.PayoutFactorResponse{
		CalculationDate: factor.CalculationDate,
		Value:           factor.Value,
	})
}
