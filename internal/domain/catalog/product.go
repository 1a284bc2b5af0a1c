package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/webshop/backend/internal/domain/shared"
)

// RestockEntry is an audit record for a single stock increase.
// Entries are kept newest first.
type RestockEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Date      time.Time `gorm:"not null;index:idx_restock_entry_date,sort:desc" json:"date"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Reason    string    `gorm:"type:varchar(200);not null" json:"reason"`
}

// TableName returns the table name for GORM
func (RestockEntry) TableName() string {
	return "restock_entries"
}

// NewRestockEntry creates a new restock audit entry for a product
func NewRestockEntry(productID uuid.UUID, quantity int, reason string) RestockEntry {
	return RestockEntry{
		ID:        uuid.New(),
		ProductID: productID,
		Date:      time.Now(),
		Quantity:  quantity,
		Reason:    reason,
	}
}

// DefaultReorderLevel is applied when a product is created without an
// explicit threshold.
const DefaultReorderLevel = 10

// Product represents a sellable item in the catalog
// It is the aggregate root for catalog operations, including stock tracking
type Product struct {
	shared.BaseAggregateRoot
	Code           string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	ImageURL       string          `gorm:"type:varchar(500)"`
	Category       string          `gorm:"type:varchar(100);index"`
	Price          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock          int             `gorm:"not null;default:0"`
	ReorderLevel   int             `gorm:"not null;default:10"`
	RestockHistory []RestockEntry  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with its initial stock.
// The initial stock is recorded as the first restock history entry.
func NewProduct(code, name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Price:             price,
		Stock:             stock,
		ReorderLevel:      DefaultReorderLevel,
	}
	product.RestockHistory = []RestockEntry{
		NewRestockEntry(product.ID, stock, "Initial stock"),
	}

	return product, nil
}

// Update replaces the product's descriptive fields, price, and stock.
// Direct stock edits through Update do not create restock history; only
// Restock does.
func (p *Product) Update(name, description, imageURL, category string, price decimal.Decimal, stock int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.ImageURL = imageURL
	p.Category = category
	p.Price = price
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetReorderLevel sets the stock threshold at or below which the product
// is flagged for restocking
func (p *Product) SetReorderLevel(level int) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Restock increases stock by quantity and prepends an audit entry
func (p *Product) Restock(quantity int, reason string) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	p.Stock += quantity
	p.RestockHistory = append([]RestockEntry{NewRestockEntry(p.ID, quantity, reason)}, p.RestockHistory...)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasStock reports whether at least quantity units are available
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// IsLowStock reports whether the product is at or below its reorder level
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.ReorderLevel
}

// validateCode validates the public product code
func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 20 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 20 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, and hyphens")
		}
	}
	return nil
}

// validateName validates the product name
func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
