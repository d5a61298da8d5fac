package workforce

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// WorkerRepository defines the interface for worker persistence
type WorkerRepository interface {
	// FindByID finds a worker by ID
	FindByID(ctx context.Context, id int64) (*Worker, error)

	// FindByIDForUpdate finds a worker and locks its row for the rest of the transaction
	FindByIDForUpdate(ctx context.Context, id int64) (*Worker, error)

	// FindAll lists workers
	FindAll(ctx context.Context, filter shared.Filter) ([]Worker, error)

	// FindRoster lists workers with the distinct projects each is assigned to
	FindRoster(ctx context.Context, filter shared.Filter) ([]RosterEntry, error)

	// Save creates or updates a worker
	Save(ctx context.Context, w *Worker) error

	// Delete removes a worker row
	Delete(ctx context.Context, id int64) error

	// ApplyPayment atomically adds amount to total_paid and sets last_payment_date
	ApplyPayment(ctx context.Context, id int64, amount decimal.Decimal, paidOn time.Time) error
}

// AssignmentRepository defines the interface for assignment persistence
type AssignmentRepository interface {
	FindByID(ctx context.Context, id int64) (*Assignment, error)
	FindByWorker(ctx context.Context, workerID int64) ([]Assignment, error)
	Save(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id int64) error

	// DeleteByWorker removes every assignment of a worker and returns how many were removed
	DeleteByWorker(ctx context.Context, workerID int64) (int64, error)

	// AddHours atomically increments hours_worked
	AddHours(ctx context.Context, id int64, hours decimal.Decimal) error
}

// PaymentRepository defines the interface for the payment ledger
type PaymentRepository interface {
	// Append inserts a ledger row
	Append(ctx context.Context, p *Payment) error

	// FindByWorker lists a worker's payments, newest payment date first
	FindByWorker(ctx context.Context, workerID int64, filter shared.Filter) ([]Payment, error)

	// DeleteByWorker removes a worker's ledger rows
	DeleteByWorker(ctx context.Context, workerID int64) (int64, error)
}
