package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/webshop/backend/internal/application/catalog"
	"github.com/webshop/backend/internal/domain/shared"
	"github.com/webshop/backend/internal/infrastructure/persistence"
)

func setupProductService(t *testing.T, tdb *TestDB) (*catalogapp.ProductService, *persistence.GormProductRepository) {
	t.Helper()
	productRepo := persistence.NewGormProductRepository(tdb.DB)
	return catalogapp.NewProductService(productRepo), productRepo
}

func TestProductLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc, _ := setupProductService(t, tdb)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalogapp.CreateProductRequest{
		Name:     "Espresso Beans",
		Category: "Coffee",
		Price:    decimal.RequireFromString("12.50"),
		Stock:    40,
	})
	require.NoError(t, err)
	assert.Equal(t, "WB1001", created.Code, "first generated code starts the WB series")
	require.Len(t, created.RestockHistory, 1)
	assert.Equal(t, "Initial stock", created.RestockHistory[0].Reason)

	// Codes keep incrementing from the highest existing one
	second, err := svc.Create(ctx, catalogapp.CreateProductRequest{
		Name:  "Filter Papers",
		Price: decimal.RequireFromString("3.20"),
		Stock: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "WB1002", second.Code)

	updated, err := svc.Update(ctx, created.Code, catalogapp.UpdateProductRequest{
		Name:  "Espresso Beans 1kg",
		Price: decimal.RequireFromString("13.00"),
		Stock: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, "Espresso Beans 1kg", updated.Name)
	assert.Equal(t, 35, updated.Stock)

	require.NoError(t, svc.Delete(ctx, second.Code))
	_, err = svc.Get(ctx, second.Code)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRestockAppendsAuditHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc, _ := setupProductService(t, tdb)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalogapp.CreateProductRequest{
		Code:  "WB1001",
		Name:  "Espresso Beans",
		Price: decimal.RequireFromString("12.50"),
		Stock: 10,
	})
	require.NoError(t, err)

	restocked, err := svc.Restock(ctx, created.Code, catalogapp.RestockRequest{
		Quantity: 25,
		Reason:   "Weekly delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 35, restocked.Stock)

	history, err := svc.StockHistory(ctx, created.Code)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Weekly delivery", history[0].Reason, "history is newest first")
	assert.Equal(t, 25, history[0].Quantity)
	assert.Equal(t, "Initial stock", history[1].Reason)
}

func TestBulkRestockTouchesEveryProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc, productRepo := setupProductService(t, tdb)
	ctx := context.Background()

	seedProduct(t, productRepo, "WB1001", "12.50", 10)
	seedProduct(t, productRepo, "WB1002", "3.20", 0)
	seedProduct(t, productRepo, "WB1003", "7.00", 5)

	resp, err := svc.BulkRestock(ctx, catalogapp.BulkRestockRequest{
		Quantity: 50,
		Reason:   "Monthly replenishment",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ProductsRestocked)

	for code, want := range map[string]int{"WB1001": 60, "WB1002": 50, "WB1003": 55} {
		product, err := productRepo.FindByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, want, product.Stock, code)
		require.Len(t, product.RestockHistory, 2, code)
		assert.Equal(t, "Monthly replenishment", product.RestockHistory[0].Reason)
	}
}

func TestLowStockReport(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc, productRepo := setupProductService(t, tdb)
	ctx := context.Background()

	seedProduct(t, productRepo, "WB1001", "12.50", 50)
	seedProduct(t, productRepo, "WB1002", "3.20", 10) // at the default threshold
	seedProduct(t, productRepo, "WB1003", "7.00", 2)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "WB1003", low[0].Code, "sorted by stock ascending")
	assert.Equal(t, "WB1002", low[1].Code)
	for _, p := range low {
		assert.True(t, p.LowStock)
	}
}
