package persistence

import (
	"context"

	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
// Ledger rows are never updated.
type GormPaymentRepository struct {
	db *gorm.DB
}

var _ workforce.PaymentRepository = (*GormPaymentRepository)(nil)

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Append inserts a ledger row
func (r *GormPaymentRepository) Append(ctx context.Context, p *workforce.Payment) error {
	return translateError(r.db.WithContext(ctx).Create(p).Error)
}

// FindByWorker lists a worker's payments, newest payment date first by default
func (r *GormPaymentRepository) FindByWorker(ctx context.Context, workerID int64, filter shared.Filter) ([]workforce.Payment, error) {
	payments := make([]workforce.Payment, 0)
	query := r.db.WithContext(ctx).Model(&workforce.Payment{}).Where("worker_id = ?", workerID)
	query = applyFilter(query, filter, PaymentSortFields, "payment_date")
	if err := query.Find(&payments).Error; err != nil {
		return nil, translateError(err)
	}
	return payments, nil
}

// DeleteByWorker removes the worker's ledger rows
func (r *GormPaymentRepository) DeleteByWorker(ctx context.Context, workerID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Delete(&workforce.Payment{})
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}
