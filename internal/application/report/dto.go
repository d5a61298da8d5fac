package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/report"
)

// ProjectStatsResponse is the project section of the dashboard
type ProjectStatsResponse struct {
	Total             int64            `json:"total"`
	ByStatus          map[string]int64 `json:"by_status"`
	TotalBudget       decimal.Decimal  `json:"total_budget"`
	TotalSpent        decimal.Decimal  `json:"total_spent"`
	BudgetUtilization decimal.Decimal  `json:"budget_utilization"`
}

// WorkerStatsResponse is the workforce section of the dashboard
type WorkerStatsResponse struct {
	Total         int64           `json:"total"`
	DistinctRoles int64           `json:"distinct_roles"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// CategoryCountResponse is one vendor category bucket
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// VendorStatsResponse is the vendor section of the dashboard
type VendorStatsResponse struct {
	Total         int64                   `json:"total"`
	AverageRating decimal.Decimal         `json:"average_rating"`
	ByCategory    []CategoryCountResponse `json:"by_category"`
}

// InventoryStatsResponse is the stock section of the dashboard
type InventoryStatsResponse struct {
	TotalItems int64           `json:"total_items"`
	LowStock   int64           `json:"low_stock"`
	OutOfStock int64           `json:"out_of_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// DashboardResponse is the analytics payload
type DashboardResponse struct {
	Projects    ProjectStatsResponse   `json:"projects"`
	Workers     WorkerStatsResponse    `json:"workers"`
	Vendors     VendorStatsResponse    `json:"vendors"`
	Inventory   InventoryStatsResponse `json:"inventory"`
	Currency    string                 `json:"currency"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// ToDashboardResponse converts a snapshot to its response DTO
func ToDashboardResponse(s report.DashboardSnapshot) DashboardResponse {
	byStatus := make(map[string]int64, len(s.Projects.ByStatus))
	for _, st := range project.Statuses {
		byStatus[string(st)] = s.Projects.ByStatus[st]
	}
	categories := make([]CategoryCountResponse, len(s.Vendors.ByCategory))
	for i, c := range s.Vendors.ByCategory {
		categories[i] = CategoryCountResponse{Category: c.Category, Count: c.Count}
	}

	return DashboardResponse{
		Projects: ProjectStatsResponse{
			Total:             s.Projects.Total,
			ByStatus:          byStatus,
			TotalBudget:       s.Projects.TotalBudget,
			TotalSpent:        s.Projects.TotalSpent,
			BudgetUtilization: s.Projects.BudgetUtilization,
		},
		Workers: WorkerStatsResponse{
			Total:         s.Workers.Total,
			DistinctRoles: s.Workers.DistinctRoles,
			TotalPaid:     s.Workers.TotalPaid,
		},
		Vendors: VendorStatsResponse{
			Total:         s.Vendors.Total,
			AverageRating: s.Vendors.AverageRating,
			ByCategory:    categories,
		},
		Inventory: InventoryStatsResponse{
			TotalItems: s.Inventory.TotalItems,
			LowStock:   s.Inventory.LowStock,
			OutOfStock: s.Inventory.OutOfStock,
			TotalValue: s.Inventory.TotalValue,
		},
		Currency:    s.Currency,
		GeneratedAt: s.GeneratedAt,
	}
}
