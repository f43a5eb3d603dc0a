package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// planHandler handles HTTP requests around drafts and the plan lifecycle.
type planHandler struct {
	planService    portssvc.PlanSvcFacade
	companyService portssvc.CompanySvcFacade
}

func newPlanHandler(ps portssvc.PlanSvcFacade, cs portssvc.CompanySvcFacade) *planHandler {
	return &planHandler{planService: ps, companyService: cs}
}

// registerPlanRoutes registers draft, plan and company routes.
func registerPlanRoutes(rg *gin.RouterGroup, planService portssvc.PlanSvcFacade, companyService portssvc.CompanySvcFacade) {
	h := newPlanHandler(planService, companyService)

	drafts := rg.Group("/drafts")
	{
		drafts.POST("", h.createDraft)
		drafts.GET("", h.listDrafts)
		drafts.DELETE("/:id", h.cancelDraft)
		drafts.POST("/:id/submit", h.submitDraft)
	}

	plans := rg.Group("/plans")
	{
		plans.GET("", h.listOwnPlans)
		plans.GET("/query", h.queryPlans)
		plans.GET("/:id", h.getPlan)
		plans.POST("/:id/approve", h.approvePlan)
		plans.POST("/:id/grant-credit", h.grantCredit)
		plans.POST("/:id/hide", h.hidePlan)
		plans.POST("/:id/renew", h.renewPlan)
	}

	companies := rg.Group("/companies")
	{
		companies.GET("/dashboard", h.getDashboard)
		companies.POST("/workers", h.addWorker)
		companies.GET("/workers", h.listWorkers)
	}
}

// respondPlanError maps the common error cases shared by the plan routes.
func (h *planHandler) respondPlanError(c *gin.Context, err error, fallback string) {
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

func (h *planHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can file plans"})
		return
	}
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	draft, err := h.planService.CreateDraft(c.Request.Context(), companyID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create draft", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create draft"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

func (h *planHandler) listDrafts(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can file plans"})
		return
	}
	drafts, err := h.planService.ListDrafts(c.Request.Context(), companyID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list drafts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list drafts"})
		return
	}
	resp := make([]dto.DraftResponse, 0, len(drafts))
	for i := range drafts {
		resp = append(resp, dto.ToDraftResponse(&drafts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *planHandler) cancelDraft(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can file plans"})
		return
	}
	err := h.planService.CancelDraft(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.respondPlanError(c, err, "Failed to cancel draft")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *planHandler) submitDraft(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can file plans"})
		return
	}
	plan, err := h.planService.SubmitDraft(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.respondPlanError(c, err, "Failed to submit draft")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

func (h *planHandler) getPlan(c *gin.Context) {
	plan, err := h.planService.GetPlanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondPlanError(c, err, "Failed to get plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

func (h *planHandler) listOwnPlans(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can file plans"})
		return
	}
	plans, err := h.planService.ListPlansByPlanner(c.Request.Context(), companyID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list plans", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list plans"})
		return
	}
	resp := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		resp = append(resp, dto.ToPlanResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *planHandler) queryPlans(c *gin.Context) {
	var req dto.QueryPlansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	resp, err := h.planService.QueryPlans(c.Request.Context(), req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to query plans", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to query plans"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *planHandler) approvePlan(c *gin.Context) {
	plan, err := h.planService.ApprovePlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPlanAlreadyDecided) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		h.respondPlanError(c, err, "Failed to approve plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

func (h *planHandler) grantCredit(c *gin.Context) {
	plan, err := h.planService.GrantCredit(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlanNotApproved):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrCreditAlreadyGranted):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			h.respondPlanError(c, err, "Failed to grant credit")
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

func (h *planHandler) hidePlan(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the planner can hide a plan"})
		return
	}
	resp, err := h.planService.HidePlan(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.respondPlanError(c, err, "Failed to hide plan")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *planHandler) renewPlan(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the planner can renew a plan"})
		return
	}
	plan, err := h.planService.RenewPlan(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlanNotExpired), errors.Is(err, domain.ErrPlanAlreadyRenewed):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			h.respondPlanError(c, err, "Failed to renew plan")
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

func (h *planHandler) getDashboard(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies have a dashboard"})
		return
	}
	dashboard, err := h.companyService.GetDashboard(c.Request.Context(), companyID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to assemble dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to assemble dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *planHandler) addWorker(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can employ workers"})
		return
	}
	var req dto.AddWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	err := h.companyService.AddWorker(c.Request.Context(), companyID, req.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Member already works here"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Member not found"})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to add worker", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add worker"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *planHandler) listWorkers(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can employ workers"})
		return
	}
	workers, err := h.companyService.ListWorkers(c.Request.Context(), companyID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list workers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list workers"})
		return
	}
	resp := make([]dto.MemberResponse, 0, len(workers))
	for i := range workers {
		resp = append(resp, dto.ToMemberResponse(&workers[i]))
	}
	c.JSON(http.StatusOK, resp)
}
