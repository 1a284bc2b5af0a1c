package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// restockHistoryOrder preloads restock history newest first
func restockHistoryOrder(db *gorm.DB) *gorm.DB {
	return db.Order("restock_entries.date DESC")
}

// FindByCode finds a product by its public code, with restock history
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("RestockHistory", restockHistoryOrder).
		First(&product, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCodes finds all products matching the given codes in one query.
// Codes with no matching product are absent from the result.
func (r *GormProductRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Product, error) {
	if len(codes) == 0 {
		return []catalog.Product{}, nil
	}

	upper := make([]string, len(codes))
	for i, c := range codes {
		upper[i] = strings.ToUpper(c)
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("code IN ?", upper).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindLowStock finds all products with stock at or below their reorder level
func (r *GormProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("stock <= reorder_level").
		Order("stock ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product together with its restock history in a
// single transaction. History entries are append-only, so existing rows are
// left untouched.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("RestockHistory").Save(product).Error; err != nil {
			return err
		}
		return saveHistory(tx, product)
	})
}

// SaveWithLock updates a product guarded by its version (optimistic locking).
// The versioned update and any new history entries commit together.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(product).
			Where("id = ? AND version = ?", product.ID, product.Version-1).
			Updates(map[string]interface{}{
				"name":          product.Name,
				"description":   product.Description,
				"image_url":     product.ImageURL,
				"category":      product.Category,
				"price":         product.Price,
				"stock":         product.Stock,
				"reorder_level": product.ReorderLevel,
				"version":       product.Version,
				"updated_at":    product.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return saveHistory(tx, product)
	})
}

// saveHistory inserts restock entries that do not exist yet
func saveHistory(tx *gorm.DB, product *catalog.Product) error {
	if len(product.RestockHistory) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&product.RestockHistory).Error
}

// DeleteByCode deletes a product by its public code
func (r *GormProductRepository) DeleteByCode(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "code = ?", strings.ToUpper(code))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock atomically decrements stock only if enough is available.
// The guard and the decrement are a single UPDATE, so two concurrent calls
// can never drive stock negative.
func (r *GormProductRepository) DecrementStock(ctx context.Context, code string, quantity int) error {
	code = strings.ToUpper(code)
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("code = ? AND stock >= ?", code, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.existsByCode(ctx, code)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// IncrementStock atomically increments stock. Used to compensate decrements
// of an order that could not be completed.
func (r *GormProductRepository) IncrementStock(ctx context.Context, code string, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("code = ?", strings.ToUpper(code)).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// BulkRestock increments every product's stock by quantity and appends one
// restock history entry per product, in a single transaction
func (r *GormProductRepository) BulkRestock(ctx context.Context, quantity int, reason string) (int64, error) {
	var affected int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&catalog.Product{}).
			Where("1 = 1").
			Updates(map[string]interface{}{
				"stock":      gorm.Expr("stock + ?", quantity),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		var ids []uuid.UUID
		if err := tx.Model(&catalog.Product{}).Pluck("id", &ids).Error; err != nil {
			return err
		}

		entries := make([]catalog.RestockEntry, 0, len(ids))
		for _, id := range ids {
			entries = append(entries, catalog.NewRestockEntry(id, quantity, reason))
		}
		return tx.Create(&entries).Error
	})

	if err != nil {
		return 0, err
	}
	return affected, nil
}

// GenerateCode generates the next product code in the WB series
func (r *GormProductRepository) GenerateCode(ctx context.Context) (string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("code LIKE 'WB%'").
		Order("LENGTH(code) DESC, code DESC").
		Limit(1).
		Pluck("code", &codes).Error
	if err != nil {
		return "", err
	}

	next := 1001
	if len(codes) > 0 {
		if n, err := strconv.Atoi(strings.TrimPrefix(codes[0], "WB")); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("WB%d", next), nil
}

func (r *GormProductRepository) existsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
