package catalog

import (
	"context"

	"github.com/webshop/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByCode finds a product by its public code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindByCodes finds all products matching the given codes in one batch.
	// Codes with no matching product are simply absent from the result.
	FindByCodes(ctx context.Context, codes []string) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindLowStock finds all products with stock at or below their reorder level
	FindLowStock(ctx context.Context) ([]Product, error)

	// Save creates or updates a product together with its restock history
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product guarded by its version (optimistic locking)
	SaveWithLock(ctx context.Context, product *Product) error

	// DeleteByCode deletes a product by its public code
	DeleteByCode(ctx context.Context, code string) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)

	// DecrementStock atomically decrements stock by quantity only if enough
	// stock is available. Returns ErrInsufficientStock when the guard fails
	// and ErrNotFound when the product does not exist.
	DecrementStock(ctx context.Context, code string, quantity int) error

	// IncrementStock atomically increments stock by quantity. Used to
	// compensate decrements of an order that could not be completed.
	IncrementStock(ctx context.Context, code string, quantity int) error

	// BulkRestock increments every product's stock by quantity and appends
	// one restock history entry per product, in a single transaction.
	// Returns the number of products affected.
	BulkRestock(ctx context.Context, quantity int, reason string) (int64, error)

	// GenerateCode generates a unique public product code
	GenerateCode(ctx context.Context) (string, error)
}
