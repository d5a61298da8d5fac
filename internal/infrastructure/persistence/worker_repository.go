package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkerRepository implements WorkerRepository using GORM
type GormWorkerRepository struct {
	db *gorm.DB
}

var _ workforce.WorkerRepository = (*GormWorkerRepository)(nil)

// NewGormWorkerRepository creates a new GormWorkerRepository
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// FindByID finds a worker by its ID
func (r *GormWorkerRepository) FindByID(ctx context.Context, id int64) (*workforce.Worker, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a worker with SELECT ... FOR UPDATE.
// SQLite has no row locks; its single connection serializes writers instead.
func (r *GormWorkerRepository) FindByIDForUpdate(ctx context.Context, id int64) (*workforce.Worker, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormWorkerRepository) find(db *gorm.DB, id int64) (*workforce.Worker, error) {
	var w workforce.Worker
	if err := db.First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("worker", id)
		}
		return nil, translateError(err)
	}
	return &w, nil
}

// FindAll lists workers matching the filter
func (r *GormWorkerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Worker, error) {
	workers := make([]workforce.Worker, 0)
	query := applySearch(r.db.WithContext(ctx).Model(&workforce.Worker{}), filter.Search, "name", "role")
	query = applyFilter(query, filter, WorkerSortFields, "created_at")
	if err := query.Find(&workers).Error; err != nil {
		return nil, translateError(err)
	}
	return workers, nil
}

// FindRoster lists workers with the distinct projects they are assigned to
func (r *GormWorkerRepository) FindRoster(ctx context.Context, filter shared.Filter) ([]workforce.RosterEntry, error) {
	workers, err := r.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return []workforce.RosterEntry{}, nil
	}

	ids := make([]int64, len(workers))
	for i, w := range workers {
		ids[i] = w.ID
	}

	var links []workforce.AssignmentLink
	err = r.db.WithContext(ctx).
		Table("project_worker_assignments AS a").
		Select("a.worker_id, p.id AS project_id, p.name AS project_name").
		Joins("JOIN projects p ON p.id = a.project_id").
		Where("a.worker_id IN ?", ids).
		Order("a.id").
		Scan(&links).Error
	if err != nil {
		return nil, translateError(err)
	}

	return workforce.BuildRoster(workers, links), nil
}

// Save creates or updates a worker
func (r *GormWorkerRepository) Save(ctx context.Context, w *workforce.Worker) error {
	db := r.db.WithContext(ctx)
	if !w.IsNew() {
		// the payment ledger owns these columns, see ApplyPayment
		db = db.Omit("total_paid", "last_payment_date")
	}
	return translateError(db.Save(w).Error)
}

// Delete removes a worker row
func (r *GormWorkerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&workforce.Worker{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("worker", id)
	}
	return nil
}

// ApplyPayment increments total_paid and stamps last_payment_date in one statement
func (r *GormWorkerRepository) ApplyPayment(ctx context.Context, id int64, amount decimal.Decimal, paidOn time.Time) error {
	result := r.db.WithContext(ctx).Model(&workforce.Worker{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_paid":        gorm.Expr("total_paid + ?", amount),
			"last_payment_date": paidOn,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("worker", id)
	}
	return nil
}
