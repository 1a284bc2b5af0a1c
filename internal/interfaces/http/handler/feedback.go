package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appfeedback "github.com/webshop/backend/internal/application/feedback"
	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
)

// FeedbackHandler serves customer feedback endpoints
type FeedbackHandler struct {
	BaseHandler
	feedbackService *appfeedback.FeedbackService
	jwtService      *auth.JWTService
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackService *appfeedback.FeedbackService, jwtService *auth.JWTService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		jwtService:      jwtService,
	}
}

// RegisterRoutes registers feedback routes. Submission is open to anyone,
// review is admin-only.
func (h *FeedbackHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.Submit)

	admin := rg.Group("/feedback", middleware.RequireAuth(h.jwtService), middleware.RequireAdmin())
	{
		admin.GET("", h.List)
		admin.PUT("/:id/archive", h.Archive)
	}
}

// Submit records a feedback message
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req appfeedback.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, fb)
}

// List returns all feedback messages
func (h *FeedbackHandler) List(c *gin.Context) {
	items, err := h.feedbackService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Archive marks a feedback message as handled
func (h *FeedbackHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid feedback id")
		return
	}

	fb, err := h.feedbackService.Archive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fb)
}
