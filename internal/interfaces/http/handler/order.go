package handler

import (
	"github.com/gin-gonic/gin"

	appordering "github.com/webshop/backend/internal/application/ordering"
	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves order placement and fulfillment endpoints
type OrderHandler struct {
	BaseHandler
	orderService *appordering.OrderService
	jwtService   *auth.JWTService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *appordering.OrderService, jwtService *auth.JWTService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		jwtService:   jwtService,
	}
}

// RegisterRoutes registers order routes. Placement allows guest checkout,
// so it runs with optional auth; fulfillment is admin-only.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", middleware.OptionalAuth(h.jwtService), h.Place)
		orders.GET("/my", middleware.RequireAuth(h.jwtService), h.MyOrders)
		orders.GET("/:orderNumber", middleware.RequireAuth(h.jwtService), h.Get)
	}

	admin := rg.Group("/orders", middleware.RequireAuth(h.jwtService), middleware.RequireAdmin())
	{
		admin.GET("", h.List)
		admin.PUT("/:orderNumber/status", h.UpdateStatus)
	}
}

// Place places a new order
func (h *OrderHandler) Place(c *gin.Context) {
	var req appordering.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), middleware.GetUserCode(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns a single order. Users may only read their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(),
		c.Param("orderNumber"), middleware.GetUserCode(c), middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// MyOrders returns the current user's orders
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orderService.ListByUser(c.Request.Context(), middleware.GetUserCode(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// List returns all orders
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	orders, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, filter.Page, filter.PageSize, len(orders))
}

// UpdateStatus transitions an order's status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req appordering.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("orderNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
