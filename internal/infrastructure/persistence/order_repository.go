package persistence

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/webshop/backend/internal/domain/ordering"
	"github.com/webshop/backend/internal/domain/shared"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByOrderNumber finds an order by its public order number, with items
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", strings.ToUpper(orderNumber)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter, newest first by default
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	if filter.OrderBy == "" || filter.OrderBy == "created_at" {
		filter.OrderBy = "order_date"
	}

	var orders []ordering.Order
	query := applyFilter(r.db.WithContext(ctx).Model(&ordering.Order{}).Preload("Items"), filter)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByUser finds all orders placed by a user, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userCode string) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_code = ?", userCode).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its items in a single
// transaction. Items are immutable after placement, so existing rows are
// left untouched. A generated order number that collides with a concurrent
// placement surfaces as ErrAlreadyExists so the caller can redraw.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&order.Items).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// SaveWithLock updates an order guarded by its version (optimistic locking)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":     order.Status,
			"version":    order.Version,
			"updated_at": order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts all orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ordering.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser counts orders placed by a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userCode string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("user_code = ?", userCode).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalAmount sums total_amount across all orders (zero if none)
func (r *GormOrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("COALESCE(SUM(total_amount), 0) as total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// GenerateOrderNumber generates a unique order number in the ORD series.
// A random six digit suffix is drawn and re-drawn on the rare collision.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		candidate := fmt.Sprintf("ORD%06d", rand.Intn(1000000))

		var count int64
		if err := r.db.WithContext(ctx).
			Model(&ordering.Order{}).
			Where("order_number = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique order number")
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
