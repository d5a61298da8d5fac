package inventory

import (
	"context"

	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/inventory"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// ItemService handles inventory item operations
type ItemService struct {
	itemRepo inventory.ItemRepository
	scope    txn.Scope
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo inventory.ItemRepository, scope txn.Scope) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		scope:    scope,
	}
}

// Create stocks a new item. min_stock defaults to 5.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewItem(req.Name)
	if err != nil {
		return nil, err
	}
	err = item.Apply(inventory.ItemPatch{
		Category:  &req.Category,
		Unit:      &req.Unit,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		MinStock:  req.MinStock,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if err := checkProject(ctx, repos, item.ProjectID); err != nil {
			return err
		}
		if err := repos.Inventory().Save(ctx, item); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityInventory, item.ID, activity.ActionCreated, item.Name)
	})
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id int64) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items
func (s *ItemService) List(ctx context.Context, filter shared.Filter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Update applies a partial update; stock_status follows the new quantity
func (s *ItemService) Update(ctx context.Context, id int64, req UpdateItemRequest) (*ItemResponse, error) {
	var item *inventory.Item
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		found, err := repos.Inventory().FindByID(ctx, id)
		if err != nil {
			return err
		}
		err = found.Apply(inventory.ItemPatch{
			Name:      req.Name,
			Category:  req.Category,
			Unit:      req.Unit,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
			MinStock:  req.MinStock,
			ProjectID: req.ProjectID,
		})
		if err != nil {
			return err
		}
		if req.ProjectID != nil {
			if err := checkProject(ctx, repos, found.ProjectID); err != nil {
				return err
			}
		}
		if err := repos.Inventory().Save(ctx, found); err != nil {
			return err
		}
		item = found
		return txn.Log(ctx, repos, activity.EntityInventory, item.ID, activity.ActionUpdated, string(item.StockStatus()))
	})
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Inventory().Delete(ctx, id); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityInventory, id, activity.ActionDeleted, "")
	})
}

func checkProject(ctx context.Context, repos txn.Repositories, projectID *int64) error {
	if projectID == nil {
		return nil
	}
	_, err := repos.Projects().FindByID(ctx, *projectID)
	return err
}
