package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/partner"
	"github.com/sitebuild/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

var _ partner.VendorRepository = (*GormVendorRepository)(nil)

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id int64) (*partner.Vendor, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a vendor with SELECT ... FOR UPDATE
func (r *GormVendorRepository) FindByIDForUpdate(ctx context.Context, id int64) (*partner.Vendor, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormVendorRepository) find(db *gorm.DB, id int64) (*partner.Vendor, error) {
	var v partner.Vendor
	if err := db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("vendor", id)
		}
		return nil, translateError(err)
	}
	return &v, nil
}

// FindAll lists vendors matching the filter
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	vendors := make([]partner.Vendor, 0)
	query := applySearch(r.db.WithContext(ctx).Model(&partner.Vendor{}), filter.Search, "name", "category")
	query = applyFilter(query, filter, VendorSortFields, "created_at")
	if err := query.Find(&vendors).Error; err != nil {
		return nil, translateError(err)
	}
	return vendors, nil
}

// Save creates or updates a vendor. An update leaves total_paid to AddPaid.
func (r *GormVendorRepository) Save(ctx context.Context, v *partner.Vendor) error {
	db := r.db.WithContext(ctx)
	if !v.IsNew() {
		db = db.Omit("total_paid")
	}
	return translateError(db.Save(v).Error)
}

// Delete removes a vendor by ID
func (r *GormVendorRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&partner.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("vendor", id)
	}
	return nil
}

// AddPaid adds delta to total_paid in a single UPDATE, flooring at zero
func (r *GormVendorRepository) AddPaid(ctx context.Context, id int64, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&partner.Vendor{}).
		Where("id = ?", id).
		Update("total_paid", gorm.Expr("CASE WHEN total_paid + ? < 0 THEN 0 ELSE total_paid + ? END", delta, delta))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("vendor", id)
	}
	return nil
}
