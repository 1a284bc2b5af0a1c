package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/webshop/backend/internal/application/identity"
	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves registration, login and account endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	protected := rg.Group("/auth", middleware.RequireAuth(h.jwtService))
	{
		protected.GET("/profile", h.Profile)
		protected.PUT("/password", h.ChangePassword)
	}
}

// Register creates a new user account and returns a token
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login authenticates a user and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Profile returns the current user's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), middleware.GetUserCode(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword updates the current user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.GetUserCode(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
