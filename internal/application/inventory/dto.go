package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/inventory"
)

// CreateItemRequest represents a request to stock a new item
type CreateItemRequest struct {
	Name      string           `json:"name" binding:"required,max=200"`
	Category  string           `json:"category" binding:"max=100"`
	Unit      string           `json:"unit" binding:"max=50"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	MinStock  *int             `json:"min_stock"`
	ProjectID *int64           `json:"project_id"`
}

// UpdateItemRequest represents a partial update. A project_id of 0 releases
// the item from its project.
type UpdateItemRequest struct {
	Name      *string          `json:"name" binding:"omitempty,max=200"`
	Category  *string          `json:"category" binding:"omitempty,max=100"`
	Unit      *string          `json:"unit" binding:"omitempty,max=50"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	MinStock  *int             `json:"min_stock"`
	ProjectID *int64           `json:"project_id"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	MinStock    int             `json:"min_stock"`
	ProjectID   *int64          `json:"project_id"`
	StockStatus string          `json:"stock_status"`
	TotalValue  decimal.Decimal `json:"total_value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Unit:        i.Unit,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		MinStock:    i.MinStock,
		ProjectID:   i.ProjectID,
		StockStatus: string(i.StockStatus()),
		TotalValue:  i.Value(),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items
func ToItemResponses(items []inventory.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}
