package handler

import (
	"github.com/gin-gonic/gin"

	appadmin "github.com/webshop/backend/internal/application/admin"
	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
)

// AdminHandler serves the admin dashboard endpoints
type AdminHandler struct {
	BaseHandler
	statsService *appadmin.StatsService
	jwtService   *auth.JWTService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(statsService *appadmin.StatsService, jwtService *auth.JWTService) *AdminHandler {
	return &AdminHandler{
		statsService: statsService,
		jwtService:   jwtService,
	}
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.RequireAuth(h.jwtService), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/users", h.Users)
	}
}

// Dashboard returns aggregate store statistics
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Users returns all registered users with their order counts
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.statsService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}
