package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/project"
)

// UncategorizedLabel groups vendors with no category
const UncategorizedLabel = "Uncategorized"

// StatusTotals is one GROUP BY status row over projects
type StatusTotals struct {
	Status project.Status
	Count  int64
	Budget decimal.Decimal
	Spent  decimal.Decimal
}

// WorkerTotals aggregates the workers table
type WorkerTotals struct {
	Count         int64
	DistinctRoles int64
	TotalPaid     decimal.Decimal
}

// VendorTotals aggregates the vendors table
type VendorTotals struct {
	Count         int64
	AverageRating decimal.Decimal
}

// CategoryCount is one GROUP BY category row over vendors
type CategoryCount struct {
	Category string
	Count    int64
}

// InventoryTotals aggregates the inventory_items table
type InventoryTotals struct {
	Count      int64
	LowStock   int64
	OutOfStock int64
	TotalValue decimal.Decimal
}

// Figures are the raw aggregates read from the store in one consistent pass
type Figures struct {
	Statuses         []StatusTotals
	Workers          WorkerTotals
	Vendors          VendorTotals
	VendorCategories []CategoryCount
	Inventory        InventoryTotals
}

// FiguresRepository reads dashboard aggregates
type FiguresRepository interface {
	// LoadFigures runs every aggregate inside a single read-only transaction
	LoadFigures(ctx context.Context) (*Figures, error)
}

// ProjectSummary rolls up every project
type ProjectSummary struct {
	Total             int64
	ByStatus          map[project.Status]int64
	TotalBudget       decimal.Decimal
	TotalSpent        decimal.Decimal
	BudgetUtilization decimal.Decimal
}

// WorkerSummary rolls up every worker
type WorkerSummary struct {
	Total         int64
	DistinctRoles int64
	TotalPaid     decimal.Decimal
}

// VendorSummary rolls up every vendor
type VendorSummary struct {
	Total         int64
	AverageRating decimal.Decimal
	ByCategory    []CategoryCount
}

// InventorySummary rolls up every stocked item
type InventorySummary struct {
	TotalItems int64
	LowStock   int64
	OutOfStock int64
	TotalValue decimal.Decimal
}

// DashboardSnapshot is recomputed on every request and never cached
type DashboardSnapshot struct {
	Projects    ProjectSummary
	Workers     WorkerSummary
	Vendors     VendorSummary
	Inventory   InventorySummary
	Currency    string
	GeneratedAt time.Time
}

// BuildDashboard derives the snapshot from raw figures. Every project status
// is present in ByStatus, averages and ratios are 0 rather than undefined on
// an empty store.
func BuildDashboard(f Figures, currency string, now time.Time) DashboardSnapshot {
	projects := ProjectSummary{
		ByStatus:    make(map[project.Status]int64, len(project.Statuses)),
		TotalBudget: decimal.Zero,
		TotalSpent:  decimal.Zero,
	}
	for _, st := range project.Statuses {
		projects.ByStatus[st] = 0
	}
	for _, row := range f.Statuses {
		projects.ByStatus[row.Status] += row.Count
		projects.Total += row.Count
		projects.TotalBudget = projects.TotalBudget.Add(row.Budget)
		projects.TotalSpent = projects.TotalSpent.Add(row.Spent)
	}
	projects.BudgetUtilization = Utilization(projects.TotalSpent, projects.TotalBudget)

	return DashboardSnapshot{
		Projects: projects,
		Workers: WorkerSummary{
			Total:         f.Workers.Count,
			DistinctRoles: f.Workers.DistinctRoles,
			TotalPaid:     f.Workers.TotalPaid,
		},
		Vendors: VendorSummary{
			Total:         f.Vendors.Count,
			AverageRating: averageRating(f.Vendors),
			ByCategory:    mergeCategories(f.VendorCategories),
		},
		Inventory: InventorySummary{
			TotalItems: f.Inventory.Count,
			LowStock:   f.Inventory.LowStock,
			OutOfStock: f.Inventory.OutOfStock,
			TotalValue: f.Inventory.TotalValue,
		},
		Currency:    currency,
		GeneratedAt: now,
	}
}

// Utilization returns spent as a percentage of budget to 2 dp, 0 when budget is 0
func Utilization(spent, budget decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(budget).Mul(decimal.NewFromInt(100)).Round(2)
}

func averageRating(v VendorTotals) decimal.Decimal {
	if v.Count == 0 {
		return decimal.Zero
	}
	return v.AverageRating.Round(2)
}

// mergeCategories folds blank categories into one bucket and sorts by count desc, then name
func mergeCategories(rows []CategoryCount) []CategoryCount {
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Category)
		if name == "" {
			name = UncategorizedLabel
		}
		counts[name] += r.Count
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Category: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
