package admin

import (
	"context"

	"github.com/shopspring/decimal"

	appcatalog "github.com/webshop/backend/internal/application/catalog"
	appidentity "github.com/webshop/backend/internal/application/identity"
	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/identity"
	"github.com/webshop/backend/internal/domain/ordering"
)

// DashboardResponse aggregates shop-wide figures for the admin dashboard
type DashboardResponse struct {
	TotalProducts    int64                        `json:"total_products"`
	TotalOrders      int64                        `json:"total_orders"`
	TotalRevenue     decimal.Decimal              `json:"total_revenue"`
	TotalUsers       int64                        `json:"total_users"`
	LowStockProducts []appcatalog.ProductResponse `json:"low_stock_products"`
}

// UserSummary is one row of the admin user listing
type UserSummary struct {
	appidentity.UserResponse
	OrderCount int64 `json:"order_count"`
}

// StatsService aggregates figures across the catalog, orders, and users
type StatsService struct {
	productRepo catalog.ProductRepository
	orderRepo   ordering.OrderRepository
	userRepo    identity.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(productRepo catalog.ProductRepository, orderRepo ordering.OrderRepository, userRepo identity.UserRepository) *StatsService {
	return &StatsService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

// Dashboard returns shop-wide aggregate figures
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.orderRepo.SumTotalAmount(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.CountByRole(ctx, identity.RoleUser)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalProducts:    totalProducts,
		TotalOrders:      totalOrders,
		TotalRevenue:     totalRevenue,
		TotalUsers:       totalUsers,
		LowStockProducts: appcatalog.ToProductListResponse(lowStock),
	}, nil
}

// ListUsers returns all customer accounts with their order counts
func (s *StatsService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.userRepo.FindByRole(ctx, identity.RoleUser)
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		count, err := s.orderRepo.CountByUser(ctx, users[i].Code)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, UserSummary{
			UserResponse: appidentity.ToUserResponse(&users[i]),
			OrderCount:   count,
		})
	}
	return summaries, nil
}
