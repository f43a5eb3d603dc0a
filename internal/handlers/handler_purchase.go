package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// offerHandler handles HTTP requests around offers and purchases.
type offerHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newOfferHandler(ps portssvc.PurchaseSvcFacade) *offerHandler {
	return &offerHandler{purchaseService: ps}
}

// registerOfferRoutes registers offer and purchase routes.
func registerOfferRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newOfferHandler(purchaseService)

	offers := rg.Group("/offers")
	{
		offers.POST("", h.createOffer)
		offers.GET("", h.listOffers)
		offers.POST("/purchase", h.purchaseProduct)
	}
	rg.GET("/purchases", h.listPurchases)
}

// buyerFromContext resolves the authenticated actor into a Buyer.
func buyerFromContext(c *gin.Context) (domain.Buyer, bool) {
	actorID, kind, ok := middleware.GetActorFromContext(c)
	if !ok {
		return domain.Buyer{}, false
	}
	switch kind {
	case portssvc.ActorMember:
		return domain.MemberBuyer(actorID), true
	case portssvc.ActorCompany:
		return domain.CompanyBuyer(actorID), true
	default:
		return domain.Buyer{}, false
	}
}

func (h *offerHandler) createOffer(c *gin.Context) {
	companyID, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only companies can list offers"})
		return
	}
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	offer, err := h.purchaseService.CreateOffer(c.Request.Context(), companyID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Plan not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the planner can offer a plan's product"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to create offer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create offer"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToOfferResponse(offer))
}

func (h *offerHandler) listOffers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	offers, err := h.purchaseService.ListOffers(c.Request.Context(), limit, offset)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list offers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list offers"})
		return
	}
	resp := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		resp = append(resp, dto.ToOfferResponse(&offers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *offerHandler) purchaseProduct(c *gin.Context) {
	buyer, ok := buyerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	var req dto.PurchaseProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	purchase, err := h.purchaseService.PurchaseProduct(c.Request.Context(), buyer, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientInventory):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Amount ordered exceeds available products"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Offer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to purchase product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to purchase product"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

func (h *offerHandler) listPurchases(c *gin.Context) {
	buyer, ok := buyerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), buyer)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list purchases", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list purchases"})
		return
	}
	resp := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		resp = append(resp, dto.ToPurchaseResponse(&purchases[i]))
	}
	c.JSON(http.StatusOK, resp)
}
