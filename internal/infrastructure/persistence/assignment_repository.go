package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

var _ workforce.AssignmentRepository = (*GormAssignmentRepository)(nil)

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByID finds an assignment by its ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id int64) (*workforce.Assignment, error) {
	var a workforce.Assignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("assignment", id)
		}
		return nil, translateError(err)
	}
	return &a, nil
}

// FindByWorker lists a worker's assignments in the order they were made
func (r *GormAssignmentRepository) FindByWorker(ctx context.Context, workerID int64) ([]workforce.Assignment, error) {
	assignments := make([]workforce.Assignment, 0)
	if err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("id").
		Find(&assignments).Error; err != nil {
		return nil, translateError(err)
	}
	return assignments, nil
}

// Save creates or updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, a *workforce.Assignment) error {
	return translateError(r.db.WithContext(ctx).Save(a).Error)
}

// Delete removes an assignment by ID
func (r *GormAssignmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&workforce.Assignment{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("assignment", id)
	}
	return nil
}

// DeleteByWorker removes every assignment of the worker
func (r *GormAssignmentRepository) DeleteByWorker(ctx context.Context, workerID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Delete(&workforce.Assignment{})
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// AddHours increments hours_worked in a single UPDATE
func (r *GormAssignmentRepository) AddHours(ctx context.Context, id int64, hours decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&workforce.Assignment{}).
		Where("id = ?", id).
		Update("hours_worked", gorm.Expr("hours_worked + ?", hours))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("assignment", id)
	}
	return nil
}
