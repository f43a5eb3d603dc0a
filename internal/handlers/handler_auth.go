package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login for both actor kinds.
type AuthHandler struct {
	memberService  portssvc.MemberSvcFacade
	companyService portssvc.CompanySvcFacade
	tokenService   portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		memberService:  services.Member,
		companyService: services.Company,
		tokenService:   services.Token,
	}
}

// registerAuthRoutes sets up the public registration and login routes.
// Logins are rate limited per IP.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services)

	// 5 login attempts per minute and IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/member/register", h.RegisterMember)
		auth.POST("/member/login", limitMiddleware, h.LoginMember)
		auth.POST("/company/register", h.RegisterCompany)
		auth.POST("/company/login", limitMiddleware, h.LoginCompany)
	}
}

// RegisterMember creates a member account.
func (h *AuthHandler) RegisterMember(c *gin.Context) {
	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	member, err := h.memberService.RegisterMember(c.Request.Context(), req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		logger.Error("Failed to register member", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register member"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// LoginMember authenticates a member and returns a bearer token.
func (h *AuthHandler) LoginMember(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	member, err := h.memberService.AuthenticateMember(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}
	h.issueToken(c, member.MemberID, portssvc.ActorMember)
}

// RegisterCompany creates a company together with its four accounts.
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	company, err := h.companyService.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		logger.Error("Failed to register company", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register company"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// LoginCompany authenticates a company and returns a bearer token.
func (h *AuthHandler) LoginCompany(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	company, err := h.companyService.AuthenticateCompany(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}
	h.issueToken(c, company.CompanyID, portssvc.ActorCompany)
}

func (h *AuthHandler) issueToken(c *gin.Context, actorID string, kind portssvc.ActorKind) {
	token, err := h.tokenService.IssueToken(actorID, kind)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
