package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/ordering"
	"github.com/webshop/backend/internal/domain/shared"
)

// OrderService handles order placement and fulfillment
type OrderService struct {
	orderRepo   ordering.OrderRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// appliedDecrement tracks one stock decrement so it can be compensated
type appliedDecrement struct {
	code     string
	quantity int
}

// Place places an order for the given customer. userCode may be empty for
// guest checkout.
//
// Every line is re-priced from the catalog; prices or totals sent by the
// client are ignored. Stock is taken per line with a conditional atomic
// decrement, so concurrent orders can never drive stock negative. When a
// line fails, or the order itself cannot be persisted, all decrements
// applied so far are compensated before returning.
func (s *OrderService) Place(ctx context.Context, userCode string, req PlaceOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}

	codes := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		codes = append(codes, strings.ToUpper(item.ProductCode))
	}

	products, err := s.productRepo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byCode[p.Code] = p
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(orderNumber, userCode, ordering.CustomerDetails{
		Name:    req.CustomerName,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}, req.SpecialInstructions)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		code := strings.ToUpper(item.ProductCode)
		product, ok := byCode[code]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", code))
		}
		if err := order.AddItem(product.Code, product.Name, item.Quantity, product.Price); err != nil {
			return nil, err
		}
	}

	applied := make([]appliedDecrement, 0, len(order.Items))
	for _, item := range order.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductCode, item.Quantity); err != nil {
			s.compensate(ctx, applied)

			if errors.Is(err, shared.ErrInsufficientStock) {
				available := byCode[item.ProductCode].Stock
				if current, lookupErr := s.productRepo.FindByCode(ctx, item.ProductCode); lookupErr == nil {
					available = current.Stock
				}
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for product %s: %d available, %d requested",
						item.ProductCode, available, item.Quantity))
			}
			return nil, err
		}
		applied = append(applied, appliedDecrement{code: item.ProductCode, quantity: item.Quantity})
	}

	if err := s.save(ctx, order); err != nil {
		s.compensate(ctx, applied)
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_code", userCode),
		zap.Int("items", order.ItemCount()),
		zap.String("total", order.TotalAmount.String()),
	)
	return ToOrderResponse(order), nil
}

// save persists the order, redrawing the order number when the generated
// one collides with a concurrent placement.
func (s *OrderService) save(ctx context.Context, order *ordering.Order) error {
	err := s.orderRepo.Save(ctx, order)
	for attempt := 0; attempt < 2 && errors.Is(err, shared.ErrAlreadyExists); attempt++ {
		orderNumber, genErr := s.orderRepo.GenerateOrderNumber(ctx)
		if genErr != nil {
			return genErr
		}
		order.OrderNumber = orderNumber
		err = s.orderRepo.Save(ctx, order)
	}
	return err
}

// compensate returns previously decremented stock. Failures are logged and
// retried once; a decrement that still cannot be returned is logged for
// manual reconciliation.
func (s *OrderService) compensate(ctx context.Context, applied []appliedDecrement) {
	for _, d := range applied {
		err := s.productRepo.IncrementStock(ctx, d.code, d.quantity)
		if err != nil {
			err = s.productRepo.IncrementStock(ctx, d.code, d.quantity)
		}
		if err != nil {
			s.logger.Error("Failed to compensate stock decrement",
				zap.String("product_code", d.code),
				zap.Int("quantity", d.quantity),
				zap.Error(err),
			)
		}
	}
}

// Get returns an order by its number. Non-admin requesters may only read
// their own orders; guest orders are admin-only.
func (s *OrderService) Get(ctx context.Context, orderNumber, requesterCode string, isAdmin bool) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !order.BelongsTo(requesterCode) {
		return nil, shared.ErrForbidden
	}
	return ToOrderResponse(order), nil
}

// ListAll returns all orders matching the filter
func (s *OrderService) ListAll(ctx context.Context, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderListResponse(orders), nil
}

// ListByUser returns all orders placed by a user, newest first
func (s *OrderService) ListByUser(ctx context.Context, userCode string) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userCode)
	if err != nil {
		return nil, err
	}
	return ToOrderListResponse(orders), nil
}

// UpdateStatus transitions an order to the target status
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, req UpdateStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateStatus(ordering.OrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status.String()),
	)
	return ToOrderResponse(order), nil
}
