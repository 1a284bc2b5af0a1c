package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/ordering"
	"github.com/webshop/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userCode string) ([]ordering.Order, error) {
	args := m.Called(ctx, userCode)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userCode string) (int64, error) {
	args := m.Called(ctx, userCode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Product, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteByCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, code string, quantity int) error {
	args := m.Called(ctx, code, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementStock(ctx context.Context, code string, quantity int) error {
	args := m.Called(ctx, code, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) BulkRestock(ctx context.Context, quantity int, reason string) (int64, error) {
	args := m.Called(ctx, quantity, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GenerateCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func newTestService(t *testing.T) (*OrderService, *MockOrderRepository, *MockProductRepository) {
	t.Helper()
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	return NewOrderService(orderRepo, productRepo, zap.NewNop()), orderRepo, productRepo
}

func catalogProducts(t *testing.T) []catalog.Product {
	t.Helper()
	keyboard, err := catalog.NewProduct("WB1001", "Keyboard", decimal.NewFromInt(50), 10)
	require.NoError(t, err)
	mouse, err := catalog.NewProduct("WB1002", "Mouse", decimal.RequireFromString("19.90"), 4)
	require.NoError(t, err)
	return []catalog.Product{*keyboard, *mouse}
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		CustomerName: "Alice",
		Email:        "alice@example.com",
		Phone:        "555-0100",
		Address:      "1 Main St",
		Items: []OrderItemRequest{
			{ProductCode: "WB1001", Quantity: 2},
			{ProductCode: "wb1002", Quantity: 1},
		},
	}
}

func TestOrderService_Place(t *testing.T) {
	t.Run("places an order priced from the catalog", func(t *testing.T) {
		svc, orderRepo, productRepo := newTestService(t)

		productRepo.On("FindByCodes", mock.Anything, []string{"WB1001", "WB1002"}).
			Return(catalogProducts(t), nil)
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD000123", nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1001", 2).Return(nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1002", 1).Return(nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

		resp, err := svc.Place(context.Background(), "USR1001", validRequest())

		require.NoError(t, err)
		assert.Equal(t, "ORD000123", resp.OrderNumber)
		assert.Equal(t, "Pending", resp.Status)
		assert.Equal(t, "119.9", resp.TotalAmount.String())
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Keyboard", resp.Items[0].ProductName)
		orderRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("ignores prices and totals sent by the client", func(t *testing.T) {
		svc, orderRepo, productRepo := newTestService(t)

		productRepo.On("FindByCodes", mock.Anything, mock.Anything).Return(catalogProducts(t), nil)
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD000124", nil)
		productRepo.On("DecrementStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		req := validRequest()
		req.Items[0].UnitPrice = decimal.RequireFromString("0.01")
		req.TotalAmount = decimal.RequireFromString("0.03")

		resp, err := svc.Place(context.Background(), "USR1001", req)

		require.NoError(t, err)
		assert.Equal(t, "119.9", resp.TotalAmount.String())
		assert.Equal(t, "50", resp.Items[0].UnitPrice.String())
	})

	t.Run("rejects an unknown product naming its code", func(t *testing.T) {
		svc, _, productRepo := newTestService(t)

		productRepo.On("FindByCodes", mock.Anything, mock.Anything).
			Return(catalogProducts(t)[:1], nil)

		req := validRequest()
		_, err := svc.Place(context.Background(), "USR1001", req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, "WB1002")
		productRepo.AssertNotCalled(t, "DecrementStock")
	})

	t.Run("compensates earlier decrements when a line runs out of stock", func(t *testing.T) {
		svc, orderRepo, productRepo := newTestService(t)

		mouse, err := catalog.NewProduct("WB1002", "Mouse", decimal.RequireFromString("19.90"), 0)
		require.NoError(t, err)

		productRepo.On("FindByCodes", mock.Anything, mock.Anything).Return(catalogProducts(t), nil)
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD000125", nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1001", 2).Return(nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1002", 1).Return(shared.ErrInsufficientStock)
		productRepo.On("FindByCode", mock.Anything, "WB1002").Return(mouse, nil)
		productRepo.On("IncrementStock", mock.Anything, "WB1001", 2).Return(nil)

		_, err = svc.Place(context.Background(), "USR1001", validRequest())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "WB1002")
		assert.Contains(t, domainErr.Message, "0 available")
		productRepo.AssertExpectations(t)
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("falls back to the batch-read stock when the re-read fails", func(t *testing.T) {
		svc, orderRepo, productRepo := newTestService(t)

		productRepo.On("FindByCodes", mock.Anything, mock.Anything).Return(catalogProducts(t), nil)
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD000125", nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1001", 2).Return(nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1002", 1).Return(shared.ErrInsufficientStock)
		productRepo.On("FindByCode", mock.Anything, "WB1002").Return(nil, errors.New("connection reset"))
		productRepo.On("IncrementStock", mock.Anything, "WB1001", 2).Return(nil)

		_, err := svc.Place(context.Background(), "USR1001", validRequest())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Message, "4 available")
	})

	t.Run("compensates all decrements when the order cannot be persisted", func(t *testing.T) {
		svc, orderRepo, productRepo := newTestService(t)

		productRepo.On("FindByCodes", mock.Anything, mock.Anything).Return(catalogProducts(t), nil)
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD000126", nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1001", 2).Return(nil)
		productRepo.On("DecrementStock", mock.Anything, "WB1002", 1).Return(nil)
		orderRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
		productRepo.On("IncrementStock", mock.Anything, "WB1001", 2).Return(nil)
		productRepo.On("IncrementStock", mock.Anything, "WB1002", 1).Return(nil)

		_, err := svc.Place(context.Background(), "USR1001", validRequest())

		require.Error(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("redraws the order number when it collides", func(t *testing.T) {
		svc, orderRepo, productRepo := newTestService(t)

		productRepo.On("FindByCodes", mock.Anything, mock.Anything).Return(catalogProducts(t), nil)
		productRepo.On("DecrementStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD000127", nil).Once()
		orderRepo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists).Once()
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD000128", nil).Once()
		orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := svc.Place(context.Background(), "USR1001", validRequest())

		require.NoError(t, err)
		assert.Equal(t, "ORD000128", resp.OrderNumber)
		orderRepo.AssertExpectations(t)
		productRepo.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty order", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Place(context.Background(), "USR1001", PlaceOrderRequest{
			CustomerName: "Alice",
			Email:        "alice@example.com",
			Phone:        "555-0100",
			Address:      "1 Main St",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func placedOrder(t *testing.T, userCode string) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder("ORD000200", userCode, ordering.CustomerDetails{
		Name:    "Alice",
		Email:   "alice@example.com",
		Phone:   "555-0100",
		Address: "1 Main St",
	}, "")
	require.NoError(t, err)
	require.NoError(t, order.AddItem("WB1001", "Keyboard", 1, decimal.NewFromInt(50)))
	return order
}

func TestOrderService_Get(t *testing.T) {
	t.Run("owner can read their order", func(t *testing.T) {
		svc, orderRepo, _ := newTestService(t)
		orderRepo.On("FindByOrderNumber", mock.Anything, "ORD000200").Return(placedOrder(t, "USR1001"), nil)

		resp, err := svc.Get(context.Background(), "ORD000200", "USR1001", false)

		require.NoError(t, err)
		assert.Equal(t, "ORD000200", resp.OrderNumber)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		svc, orderRepo, _ := newTestService(t)
		orderRepo.On("FindByOrderNumber", mock.Anything, "ORD000200").Return(placedOrder(t, "USR1001"), nil)

		_, err := svc.Get(context.Background(), "ORD000200", "USR2002", false)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin can read any order including guest orders", func(t *testing.T) {
		svc, orderRepo, _ := newTestService(t)
		orderRepo.On("FindByOrderNumber", mock.Anything, "ORD000200").Return(placedOrder(t, ""), nil)

		resp, err := svc.Get(context.Background(), "ORD000200", "USR1001", true)

		require.NoError(t, err)
		assert.Empty(t, resp.UserCode)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("approves a pending order", func(t *testing.T) {
		svc, orderRepo, _ := newTestService(t)
		order := placedOrder(t, "USR1001")
		orderRepo.On("FindByOrderNumber", mock.Anything, "ORD000200").Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

		resp, err := svc.UpdateStatus(context.Background(), "ORD000200", UpdateStatusRequest{Status: "Approved"})

		require.NoError(t, err)
		assert.Equal(t, "Approved", resp.Status)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects an invalid transition without saving", func(t *testing.T) {
		svc, orderRepo, _ := newTestService(t)
		order := placedOrder(t, "USR1001")
		orderRepo.On("FindByOrderNumber", mock.Anything, "ORD000200").Return(order, nil)

		_, err := svc.UpdateStatus(context.Background(), "ORD000200", UpdateStatusRequest{Status: "Delivered"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		orderRepo.AssertNotCalled(t, "SaveWithLock")
	})
}
