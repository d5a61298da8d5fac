package persistence

import (
	"context"
	"errors"

	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

var _ project.ExpenseRepository = (*GormExpenseRepository)(nil)

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id int64) (*project.Expense, error) {
	var e project.Expense
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("expense", id)
		}
		return nil, translateError(err)
	}
	return &e, nil
}

// FindByProject lists a project's expenses, most recent date first by default
func (r *GormExpenseRepository) FindByProject(ctx context.Context, projectID int64, filter shared.Filter) ([]project.Expense, error) {
	expenses := make([]project.Expense, 0)
	query := r.db.WithContext(ctx).Model(&project.Expense{}).Where("project_id = ?", projectID)
	query = applyFilter(query, filter, ExpenseSortFields, "date")
	if err := query.Find(&expenses).Error; err != nil {
		return nil, translateError(err)
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *project.Expense) error {
	return translateError(r.db.WithContext(ctx).Save(e).Error)
}

// Delete removes an expense by ID
func (r *GormExpenseRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&project.Expense{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("expense", id)
	}
	return nil
}

// DetachVendor clears vendor_id on the vendor's expenses
func (r *GormExpenseRepository) DetachVendor(ctx context.Context, vendorID int64) error {
	return translateError(r.db.WithContext(ctx).Model(&project.Expense{}).
		Where("vendor_id = ?", vendorID).
		Update("vendor_id", nil).Error)
}
