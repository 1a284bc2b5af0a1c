package catalog

import (
	"context"
	"errors"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/shared"
)

// DefaultRestockReason is recorded when a restock request carries no reason
const DefaultRestockReason = "Manual restock"

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product. When no code is supplied, the next code
// in the WB series is assigned.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	code := req.Code
	if code == "" {
		generated, err := s.productRepo.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	} else {
		_, err := s.productRepo.FindByCode(ctx, code)
		if err == nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(code, req.Name, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.ImageURL = req.ImageURL
	product.Category = req.Category
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Get returns a product with its restock history
func (s *ProductService) Get(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns products matching the filter, without restock history
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProductListResponse(products), nil
}

// Update replaces a product's descriptive fields, price, and stock
func (s *ProductService) Update(ctx context.Context, code string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.ImageURL, req.Category, req.Price, req.Stock); err != nil {
		return nil, err
	}
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete removes a product and its restock history
func (s *ProductService) Delete(ctx context.Context, code string) error {
	return s.productRepo.DeleteByCode(ctx, code)
}

// Restock increases a product's stock and records an audit entry
func (s *ProductService) Restock(ctx context.Context, code string, req RestockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = DefaultRestockReason
	}
	if err := product.Restock(req.Quantity, reason); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// BulkRestock increases every product's stock by the same quantity
func (s *ProductService) BulkRestock(ctx context.Context, req BulkRestockRequest) (*BulkRestockResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	reason := req.Reason
	if reason == "" {
		reason = DefaultRestockReason
	}

	affected, err := s.productRepo.BulkRestock(ctx, req.Quantity, reason)
	if err != nil {
		return nil, err
	}
	return &BulkRestockResponse{
		ProductsRestocked: affected,
		Quantity:          req.Quantity,
	}, nil
}

// StockHistory returns a product's restock history, newest first
func (s *ProductService) StockHistory(ctx context.Context, code string) ([]RestockEntryResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	history := make([]RestockEntryResponse, 0, len(product.RestockHistory))
	for _, entry := range product.RestockHistory {
		history = append(history, RestockEntryResponse{
			Date:     entry.Date,
			Quantity: entry.Quantity,
			Reason:   entry.Reason,
		})
	}
	return history, nil
}

// LowStock returns all products at or below their reorder level
func (s *ProductService) LowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductListResponse(products), nil
}
