package ordering

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/webshop/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	// FindByOrderNumber finds an order by its public order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds all orders matching the filter, newest first by default
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByUser finds all orders placed by a user, newest first
	FindByUser(ctx context.Context, userCode string) ([]Order, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock updates an order guarded by its version (optimistic locking)
	SaveWithLock(ctx context.Context, order *Order) error

	// Count counts all orders
	Count(ctx context.Context) (int64, error)

	// CountByUser counts orders placed by a user
	CountByUser(ctx context.Context, userCode string) (int64, error)

	// SumTotalAmount sums total_amount across all orders (zero if none)
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)

	// GenerateOrderNumber generates a unique order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
