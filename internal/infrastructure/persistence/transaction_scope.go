package persistence

import (
	"context"

	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/inventory"
	"github.com/sitebuild/backend/internal/domain/partner"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"gorm.io/gorm"
)

// GormTransactionScope implements txn.Scope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back and the error returned.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
	return translateError(err)
}

// gormRepositories hands out repositories bound to one transaction.
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Projects() project.ProjectRepository {
	return NewGormProjectRepository(r.tx)
}

func (r *gormRepositories) Expenses() project.ExpenseRepository {
	return NewGormExpenseRepository(r.tx)
}

func (r *gormRepositories) Workers() workforce.WorkerRepository {
	return NewGormWorkerRepository(r.tx)
}

func (r *gormRepositories) Assignments() workforce.AssignmentRepository {
	return NewGormAssignmentRepository(r.tx)
}

func (r *gormRepositories) Payments() workforce.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormRepositories) Vendors() partner.VendorRepository {
	return NewGormVendorRepository(r.tx)
}

func (r *gormRepositories) Inventory() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormRepositories) Activity() activity.Repository {
	return NewGormActivityRepository(r.tx)
}

var (
	_ txn.Scope        = (*GormTransactionScope)(nil)
	_ txn.Repositories = (*gormRepositories)(nil)
)
