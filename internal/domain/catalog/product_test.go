package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with initial stock history", func(t *testing.T) {
		product, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), 5)
		require.NoError(t, err)

		assert.Equal(t, "WB1001", product.Code)
		assert.Equal(t, "Water Bottle", product.Name)
		assert.Equal(t, 5, product.Stock)
		assert.Equal(t, DefaultReorderLevel, product.ReorderLevel)
		require.Len(t, product.RestockHistory, 1)
		assert.Equal(t, 5, product.RestockHistory[0].Quantity)
		assert.Equal(t, "Initial stock", product.RestockHistory[0].Reason)
	})

	t.Run("uppercases code", func(t *testing.T) {
		product, err := NewProduct("wb1001", "Water Bottle", decimal.NewFromInt(100), 5)
		require.NoError(t, err)
		assert.Equal(t, "WB1001", product.Code)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewProduct("", "Water Bottle", decimal.NewFromInt(100), 5)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(-1), 5)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), -3)
		assert.Error(t, err)
	})
}

func TestProduct_Restock(t *testing.T) {
	t.Run("increases stock and prepends history entry", func(t *testing.T) {
		product, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), 5)
		require.NoError(t, err)

		err = product.Restock(20, "Seasonal reorder")
		require.NoError(t, err)

		assert.Equal(t, 25, product.Stock)
		require.Len(t, product.RestockHistory, 2)
		assert.Equal(t, 20, product.RestockHistory[0].Quantity)
		assert.Equal(t, "Seasonal reorder", product.RestockHistory[0].Reason)
		assert.Equal(t, "Initial stock", product.RestockHistory[1].Reason)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		product, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), 5)
		require.NoError(t, err)

		err = product.Restock(0, "noop")
		require.Error(t, err)
		assert.Equal(t, 5, product.Stock)
		assert.Len(t, product.RestockHistory, 1)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		product, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), 5)
		require.NoError(t, err)

		err = product.Restock(-10, "shrink")
		assert.Error(t, err)
	})
}

func TestProduct_IsLowStock(t *testing.T) {
	product, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), 5)
	require.NoError(t, err)
	require.NoError(t, product.SetReorderLevel(5))

	assert.True(t, product.IsLowStock(), "stock equal to reorder level is low")

	require.NoError(t, product.Restock(1, "top up"))
	assert.False(t, product.IsLowStock())
}

func TestProduct_HasStock(t *testing.T) {
	product, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), 2)
	require.NoError(t, err)

	assert.True(t, product.HasStock(2))
	assert.False(t, product.HasStock(3))
}

func TestProduct_Update(t *testing.T) {
	product, err := NewProduct("WB1001", "Water Bottle", decimal.NewFromInt(100), 5)
	require.NoError(t, err)
	version := product.Version

	err = product.Update("Steel Bottle", "Insulated", "/img/steel.png", "Bottles", decimal.NewFromInt(150), 8)
	require.NoError(t, err)

	assert.Equal(t, "Steel Bottle", product.Name)
	assert.Equal(t, 8, product.Stock)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, version+1, product.Version)
	// Direct stock edits never touch the restock audit trail
	assert.Len(t, product.RestockHistory, 1)
}
