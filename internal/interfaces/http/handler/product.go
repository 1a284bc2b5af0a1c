package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/webshop/backend/internal/application/catalog"
	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
)

// ProductHandler serves catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
	jwtService     *auth.JWTService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService, jwtService *auth.JWTService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		jwtService:     jwtService,
	}
}

// RegisterRoutes registers catalog routes. Browsing is public; catalog
// management and restocking are admin-only.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:code", h.Get)
	}

	admin := rg.Group("/products", middleware.RequireAuth(h.jwtService), middleware.RequireAdmin())
	{
		admin.POST("", h.Create)
		admin.PUT("/:code", h.Update)
		admin.DELETE("/:code", h.Delete)
		admin.POST("/:code/restock", h.Restock)
		admin.POST("/restock", h.BulkRestock)
		admin.GET("/:code/stock-history", h.StockHistory)
		admin.GET("/low-stock", h.LowStock)
	}
}

// List returns products matching the query
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, filter.Page, filter.PageSize, len(products))
}

// Get returns a single product with its restock history
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update replaces a product's fields
func (h *ProductHandler) Update(c *gin.Context) {
	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Restock increases a product's stock
func (h *ProductHandler) Restock(c *gin.Context) {
	var req appcatalog.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Restock(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// BulkRestock increases every product's stock
func (h *ProductHandler) BulkRestock(c *gin.Context) {
	var req appcatalog.BulkRestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.productService.BulkRestock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// StockHistory returns a product's restock history
func (h *ProductHandler) StockHistory(c *gin.Context) {
	history, err := h.productService.StockHistory(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// LowStock returns products at or below their reorder level
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}
