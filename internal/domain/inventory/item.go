package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// StockStatus is derived from quantity and the item's min_stock threshold
type StockStatus string

const (
	StockStatusOut StockStatus = "Out of Stock"
	StockStatusLow StockStatus = "Low Stock"
	StockStatusIn  StockStatus = "In Stock"
)

// DefaultMinStock is the reorder threshold used when none is given
const DefaultMinStock = 5

// Item is a stocked material or tool, optionally held for a specific project
type Item struct {
	shared.BaseEntity
	Name      string          `gorm:"type:varchar(200);not null"`
	Category  string          `gorm:"type:varchar(100);index"`
	Unit      string          `gorm:"type:varchar(50)"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock  int             `gorm:"not null"`
	ProjectID *int64          `gorm:"index"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// ItemPatch carries the editable item fields. Nil fields are left untouched.
type ItemPatch struct {
	Name      *string
	Category  *string
	Unit      *string
	Quantity  *decimal.Decimal
	UnitPrice *decimal.Decimal
	MinStock  *int
	ProjectID *int64
}

// NewItem creates an empty item with the default reorder threshold
func NewItem(name string) (*Item, error) {
	it := &Item{
		BaseEntity: shared.NewBaseEntity(),
		Quantity:   decimal.Zero,
		UnitPrice:  decimal.Zero,
		MinStock:   DefaultMinStock,
	}
	if err := it.Apply(ItemPatch{Name: &name}); err != nil {
		return nil, err
	}
	return it, nil
}

// Apply validates the patch and then mutates the item
func (i *Item) Apply(patch ItemPatch) error {
	next := *i

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if next.Name == "" {
			return shared.NewValidationError("name", "name is required")
		}
		if len(next.Name) > 200 {
			return shared.NewValidationError("name", "name cannot exceed 200 characters")
		}
	}
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Unit != nil {
		next.Unit = strings.TrimSpace(*patch.Unit)
	}
	if patch.Quantity != nil {
		if patch.Quantity.IsNegative() {
			return shared.NewValidationError("quantity", "quantity cannot be negative")
		}
		next.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		if patch.UnitPrice.IsNegative() {
			return shared.NewValidationError("unit_price", "unit_price cannot be negative")
		}
		next.UnitPrice = *patch.UnitPrice
	}
	if patch.MinStock != nil {
		if *patch.MinStock < 0 {
			return shared.NewValidationError("min_stock", "min_stock cannot be negative")
		}
		next.MinStock = *patch.MinStock
	}
	if patch.ProjectID != nil {
		if *patch.ProjectID <= 0 {
			next.ProjectID = nil
		} else {
			id := *patch.ProjectID
			next.ProjectID = &id
		}
	}

	next.Touch()
	*i = next
	return nil
}

// StockStatus classifies the item: zero is out of stock, up to min_stock is low
func (i *Item) StockStatus() StockStatus {
	switch {
	case i.Quantity.IsZero():
		return StockStatusOut
	case i.Quantity.LessThanOrEqual(decimal.NewFromInt(int64(i.MinStock))):
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// Value returns quantity times unit price
func (i *Item) Value() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
