package inventory

import (
	"context"

	"github.com/sitebuild/backend/internal/domain/shared"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// FindByID finds an item by ID
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindAll lists items
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete removes an item
	Delete(ctx context.Context, id int64) error

	// DetachProject clears the project reference on items held for projectID
	DetachProject(ctx context.Context, projectID int64) error
}
