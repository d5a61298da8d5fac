package persistence

import (
	"context"

	"github.com/sitebuild/backend/internal/domain/activity"
	"gorm.io/gorm"
)

// GormActivityRepository appends to the activity log
type GormActivityRepository struct {
	db *gorm.DB
}

var _ activity.Repository = (*GormActivityRepository)(nil)

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append inserts an entry
func (r *GormActivityRepository) Append(ctx context.Context, e *activity.Entry) error {
	return translateError(r.db.WithContext(ctx).Create(e).Error)
}
