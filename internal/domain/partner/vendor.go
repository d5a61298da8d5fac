package partner

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// Suggested vendor categories. Category is free text, these are just the common ones.
const (
	CategoryMaterials      = "Materials"
	CategoryEquipment      = "Equipment"
	CategoryServices       = "Services"
	CategoryLabor          = "Labor"
	CategoryTransportation = "Transportation"
)

// Rating bounds
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Vendor is a supplier of materials, equipment or services
type Vendor struct {
	shared.BaseEntity
	Name      string          `gorm:"type:varchar(200);not null"`
	Category  string          `gorm:"type:varchar(100);index"`
	Contact   string          `gorm:"type:varchar(200)"`
	Rating    int             `gorm:"not null;default:5;check:rating >= 1 AND rating <= 5"`
	TotalPaid decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// VendorPatch carries the editable vendor fields. Nil fields are left untouched.
type VendorPatch struct {
	Name     *string
	Category *string
	Contact  *string
	Rating   *int
}

// NewVendor creates a vendor rated 5 with nothing paid
func NewVendor(name string) (*Vendor, error) {
	v := &Vendor{
		BaseEntity: shared.NewBaseEntity(),
		Rating:     DefaultRating,
		TotalPaid:  decimal.Zero,
	}
	if err := v.Apply(VendorPatch{Name: &name}); err != nil {
		return nil, err
	}
	return v, nil
}

// Apply validates the patch and then mutates the vendor
func (v *Vendor) Apply(patch VendorPatch) error {
	next := *v

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
		if len(next.Category) > 100 {
			return shared.NewValidationError("category", "category cannot exceed 100 characters")
		}
	}
	if patch.Contact != nil {
		next.Contact = strings.TrimSpace(*patch.Contact)
	}
	if patch.Rating != nil {
		if *patch.Rating < MinRating || *patch.Rating > MaxRating {
			return shared.NewValidationError("rating", "rating must be between 1 and 5")
		}
		next.Rating = *patch.Rating
	}

	next.Touch()
	*v = next
	return nil
}
