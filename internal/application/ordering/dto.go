package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/webshop/backend/internal/domain/ordering"
)

// OrderItemRequest is one requested line of an order. Any prices sent by
// the client are ignored; every line is re-priced from the catalog.
type OrderItemRequest struct {
	ProductCode string          `json:"product_code" binding:"required,max=20"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"` // ignored
}

// PlaceOrderRequest represents a request to place an order
type PlaceOrderRequest struct {
	CustomerName        string             `json:"customer_name" binding:"required,max=200"`
	Email               string             `json:"email" binding:"required,email,max=200"`
	Phone               string             `json:"phone" binding:"required,max=50"`
	Address             string             `json:"address" binding:"required,max=500"`
	SpecialInstructions string             `json:"special_instructions" binding:"max=2000"`
	Items               []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount         decimal.Decimal    `json:"total_amount"` // ignored
}

// UpdateStatusRequest represents a request to transition an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	OrderNumber         string              `json:"order_number"`
	UserCode            string              `json:"user_code,omitempty"`
	CustomerName        string              `json:"customer_name"`
	Email               string              `json:"email"`
	Phone               string              `json:"phone"`
	Address             string              `json:"address"`
	Items               []OrderItemResponse `json:"items"`
	TotalAmount         decimal.Decimal     `json:"total_amount"`
	OrderDate           time.Time           `json:"order_date"`
	Status              string              `json:"status"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
}

// ToOrderResponse converts an order to its API representation
func ToOrderResponse(o *ordering.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	return &OrderResponse{
		OrderNumber:         o.OrderNumber,
		UserCode:            o.UserCode,
		CustomerName:        o.CustomerName,
		Email:               o.Email,
		Phone:               o.Phone,
		Address:             o.Address,
		Items:               items,
		TotalAmount:         o.TotalAmount,
		OrderDate:           o.OrderDate,
		Status:              o.Status.String(),
		SpecialInstructions: o.SpecialInstructions,
	}
}

// ToOrderListResponse converts orders to their API representation
func ToOrderListResponse(orders []ordering.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, *ToOrderResponse(&orders[i]))
	}
	return result
}
