package ordering

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/webshop/backend/internal/domain/shared"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusApproved  OrderStatus = "Approved"
	OrderStatusRejected  OrderStatus = "Rejected"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected, OrderStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Rejected and Delivered are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusApproved || target == OrderStatusRejected
	case OrderStatusApproved:
		return target == OrderStatusDelivered
	case OrderStatusRejected, OrderStatusDelivered:
		return false
	}
	return false
}

// OrderItem is a line item in an order. Product name and unit price are
// snapshots taken at order time; later catalog changes never alter them.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode string          `gorm:"type:varchar(20);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID uuid.UUID, productCode, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productCode == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product code cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Quantity for product %s must be at least 1", productCode))
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductCode: strings.ToUpper(productCode),
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// CustomerDetails holds the contact snapshot captured with an order.
// It is independent of any live user record.
type CustomerDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Validate checks that all required contact fields are present
func (c CustomerDetails) Validate() error {
	if c.Name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if c.Email == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer email is required")
	}
	if c.Phone == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer phone is required")
	}
	if c.Address == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer address is required")
	}
	return nil
}

// Order represents a placed order aggregate root.
// Orders are immutable snapshots except for their status.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber         string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserCode            string          `gorm:"type:varchar(20);index"` // empty for guest orders
	CustomerName        string          `gorm:"type:varchar(200);not null"`
	Email               string          `gorm:"type:varchar(200);not null"`
	Phone               string          `gorm:"type:varchar(50);not null"`
	Address             string          `gorm:"type:varchar(500);not null"`
	Items               []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OrderDate           time.Time       `gorm:"not null;index"`
	Status              OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'"`
	SpecialInstructions string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order for the given customer.
// userCode may be empty for guest orders.
func NewOrder(orderNumber, userCode string, customer CustomerDetails, specialInstructions string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		OrderNumber:         orderNumber,
		UserCode:            userCode,
		CustomerName:        customer.Name,
		Email:               customer.Email,
		Phone:               customer.Phone,
		Address:             customer.Address,
		Items:               make([]OrderItem, 0),
		TotalAmount:         decimal.Zero,
		OrderDate:           time.Now(),
		Status:              OrderStatusPending,
		SpecialInstructions: specialInstructions,
	}, nil
}

// AddItem appends a line item and recalculates the total.
// Only allowed before the order is persisted, while still Pending.
func (o *Order) AddItem(productCode, productName string, quantity int, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a processed order")
	}

	for _, item := range o.Items {
		if item.ProductCode == strings.ToUpper(productCode) {
			return shared.NewDomainError("DUPLICATE_PRODUCT", fmt.Sprintf("Product %s appears more than once in the order", productCode))
		}
	}

	item, err := NewOrderItem(o.ID, productCode, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return nil
}

// UpdateStatus transitions the order to the target status.
// Invalid targets and forbidden transitions are rejected.
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// BelongsTo reports whether the order was placed by the given user
func (o *Order) BelongsTo(userCode string) bool {
	return o.UserCode != "" && o.UserCode == userCode
}

// IsGuestOrder reports whether the order was placed without a user account
func (o *Order) IsGuestOrder() bool {
	return o.UserCode == ""
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// recalculateTotal recomputes the total from the line items
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
