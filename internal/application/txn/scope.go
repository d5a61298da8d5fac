// Package txn defines the transactional boundary used by application services.
package txn

import (
	"context"

	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/inventory"
	"github.com/sitebuild/backend/internal/domain/partner"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/workforce"
)

// Repositories exposes every repository bound to one transaction
type Repositories interface {
	Projects() project.ProjectRepository
	Expenses() project.ExpenseRepository
	Workers() workforce.WorkerRepository
	Assignments() workforce.AssignmentRepository
	Payments() workforce.PaymentRepository
	Vendors() partner.VendorRepository
	Inventory() inventory.ItemRepository
	Activity() activity.Repository
}

// Scope runs fn inside a single database transaction. If fn returns an error
// every write made through repos is rolled back.
type Scope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Log appends an activity entry through the transaction's repositories
func Log(ctx context.Context, repos Repositories, entityType string, entityID int64, action, details string) error {
	return repos.Activity().Append(ctx, activity.NewEntry(entityType, entityID, action, details))
}
