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

// cooperationHandler handles cooperation management and price queries.
type cooperationHandler struct {
	pricingService portssvc.PricingSvcFacade
}

func newCooperationHandler(ps portssvc.PricingSvcFacade) *cooperationHandler {
	return &cooperationHandler{pricingService: ps}
}

// registerCooperationRoutes registers cooperation and pricing routes.
func registerCooperationRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade) {
	h := newCooperationHandler(pricingService)

	cooperations := rg.Group("/cooperations")
	{
		cooperations.POST("", h.createCooperation)
		cooperations.POST("/:id/join", h.joinCooperation)
		cooperations.POST("/leave", h.leaveCooperation)
	}
	rg.GET("/plans/:id/price", h.getPrice)
}

func (h *cooperationHandler) createCooperation(c *gin.Context) {
	if _, ok := middleware.GetCompanyFromContext(c); !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can found cooperations"})
		return
	}
	var req dto.CreateCooperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	cooperation, err := h.pricingService.CreateCooperation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Cooperation already exists"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create cooperation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create cooperation"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToCooperationResponse(cooperation))
}

func (h *cooperationHandler) joinCooperation(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can pool plans"})
		return
	}
	var req dto.JoinCooperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	err := h.pricingService.JoinCooperation(c.Request.Context(), companyID, c.Param("id"), req.PlanID)
	if err != nil {
		h.respondCooperationError(c, err, "Failed to join cooperation")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cooperationHandler) leaveCooperation(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can pool plans"})
		return
	}
	var req dto.JoinCooperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	err := h.pricingService.LeaveCooperation(c.Request.Context(), companyID, req.PlanID)
	if err != nil {
		h.respondCooperationError(c, err, "Failed to leave cooperation")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cooperationHandler) getPrice(c *gin.Context) {
	planID := c.Param("id")
	price, err := h.pricingService.CalculatePrice(c.Request.Context(), planID)
	if err != nil {
		h.respondCooperationError(c, err, "Failed to calculate price")
		return
	}
	c.JSON(http.StatusOK, dto.PriceResponse{PlanID: planID, PricePerUnit: price})
}

func (h *cooperationHandler) respondCooperationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
