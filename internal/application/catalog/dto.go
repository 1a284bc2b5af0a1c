package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/webshop/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code         string          `json:"code" binding:"omitempty,max=20"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Description  string          `json:"description" binding:"max=2000"`
	ImageURL     string          `json:"image_url" binding:"omitempty,max=500"`
	Category     string          `json:"category" binding:"max=100"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Stock        int             `json:"stock" binding:"min=0"`
	ReorderLevel *int            `json:"reorder_level"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Description  string          `json:"description" binding:"max=2000"`
	ImageURL     string          `json:"image_url" binding:"omitempty,max=500"`
	Category     string          `json:"category" binding:"max=100"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Stock        int             `json:"stock" binding:"min=0"`
	ReorderLevel *int            `json:"reorder_level"`
}

// RestockRequest represents a request to restock a single product
type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Reason   string `json:"reason" binding:"max=200"`
}

// BulkRestockRequest represents a request to restock every product
type BulkRestockRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Reason   string `json:"reason" binding:"max=200"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	ImageURL       string                 `json:"image_url"`
	Category       string                 `json:"category"`
	Price          decimal.Decimal        `json:"price"`
	Stock          int                    `json:"stock"`
	ReorderLevel   int                    `json:"reorder_level"`
	LowStock       bool                   `json:"low_stock"`
	RestockHistory []RestockEntryResponse `json:"restock_history,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// RestockEntryResponse represents a restock history entry in API responses
type RestockEntryResponse struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
	Reason   string    `json:"reason"`
}

// BulkRestockResponse reports the outcome of a bulk restock
type BulkRestockResponse struct {
	ProductsRestocked int64 `json:"products_restocked"`
	Quantity          int   `json:"quantity"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(p *catalog.Product) *ProductResponse {
	resp := &ProductResponse{
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		Category:     p.Category,
		Price:        p.Price,
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, entry := range p.RestockHistory {
		resp.RestockHistory = append(resp.RestockHistory, RestockEntryResponse{
			Date:     entry.Date,
			Quantity: entry.Quantity,
			Reason:   entry.Reason,
		})
	}
	return resp
}

// ToProductListResponse converts products to their API representation,
// without restock history
func ToProductListResponse(products []catalog.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		p := products[i]
		p.RestockHistory = nil
		result = append(result, *ToProductResponse(&p))
	}
	return result
}
