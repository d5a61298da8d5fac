package project

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// Dependents counts the rows that reference a project and block its deletion
type Dependents struct {
	Assignments int64
	Expenses    int64
}

// Any reports whether anything still references the project
func (d Dependents) Any() bool {
	return d.Assignments > 0 || d.Expenses > 0
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByID finds a project by ID, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, id int64) (*Project, error)

	// FindByIDForUpdate finds a project and locks its row for the rest of the transaction
	FindByIDForUpdate(ctx context.Context, id int64) (*Project, error)

	// FindAll lists projects, newest first unless the filter says otherwise
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, error)

	// Save creates or updates a project. Updates never write spent, which only
	// AddSpent maintains.
	Save(ctx context.Context, p *Project) error

	// Delete removes a project by ID
	Delete(ctx context.Context, id int64) error

	// CountDependents counts assignments and expenses referencing the project
	CountDependents(ctx context.Context, id int64) (Dependents, error)

	// AddSpent atomically adds delta (which may be negative) to the project's spent total
	AddSpent(ctx context.Context, id int64, delta decimal.Decimal) error
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByID(ctx context.Context, id int64) (*Expense, error)
	FindByProject(ctx context.Context, projectID int64, filter shared.Filter) ([]Expense, error)
	Save(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id int64) error
	// DetachVendor clears the vendor reference on every expense booked to vendorID
	DetachVendor(ctx context.Context, vendorID int64) error
}
