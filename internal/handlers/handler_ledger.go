package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler exposes account balances and transaction history.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers account and transaction routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
	}
}

func (h *ledgerHandler) getAccount(c *gin.Context) {
	account, err := h.ledgerService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get account"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *ledgerHandler) listTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	transactions, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}
	resp := make([]dto.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		resp = append(resp, dto.ToTransactionResponse(txn))
	}
	c.JSON(http.StatusOK, resp)
}
