package partner

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByID finds a vendor by ID
	FindByID(ctx context.Context, id int64) (*Vendor, error)

	// FindByIDForUpdate finds a vendor and locks its row for the rest of the transaction
	FindByIDForUpdate(ctx context.Context, id int64) (*Vendor, error)

	// FindAll lists vendors
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)

	// Save creates or updates a vendor. Updates never write total_paid.
	Save(ctx context.Context, v *Vendor) error

	// Delete removes a vendor
	Delete(ctx context.Context, id int64) error

	// AddPaid atomically adds delta (which may be negative) to total_paid
	AddPaid(ctx context.Context, id int64, delta decimal.Decimal) error
}
