package persistence

import (
	"context"
	"errors"

	"github.com/sitebuild/backend/internal/domain/inventory"
	"github.com/sitebuild/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("inventory item", id)
		}
		return nil, translateError(err)
	}
	return &item, nil
}

// FindAll lists items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	items := make([]inventory.Item, 0)
	query := applySearch(r.db.WithContext(ctx).Model(&inventory.Item{}), filter.Search, "name", "category")
	query = applyFilter(query, filter, InventorySortFields, "created_at")
	if err := query.Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return translateError(r.db.WithContext(ctx).Save(item).Error)
}

// Delete removes an item by ID
func (r *GormItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("inventory item", id)
	}
	return nil
}

// DetachProject clears project_id on items held for the project
func (r *GormItemRepository) DetachProject(ctx context.Context, projectID int64) error {
	return translateError(r.db.WithContext(ctx).Model(&inventory.Item{}).
		Where("project_id = ?", projectID).
		Update("project_id", nil).Error)
}
