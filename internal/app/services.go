// Package app wires repositories into application services. The server and
// the migrate/seed CLI share it so both write through the same rules.
package app

import (
	inventoryapp "github.com/sitebuild/backend/internal/application/inventory"
	partnerapp "github.com/sitebuild/backend/internal/application/partner"
	projectapp "github.com/sitebuild/backend/internal/application/project"
	reportapp "github.com/sitebuild/backend/internal/application/report"
	"github.com/sitebuild/backend/internal/application/seed"
	workforceapp "github.com/sitebuild/backend/internal/application/workforce"
	"github.com/sitebuild/backend/internal/infrastructure/metrics"
	"github.com/sitebuild/backend/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// Services bundles every application service over one database
type Services struct {
	Projects  *projectapp.ProjectService
	Expenses  *projectapp.ExpenseService
	Workers   *workforceapp.WorkerService
	Ledger    *workforceapp.LedgerService
	Vendors   *partnerapp.VendorService
	Inventory *inventoryapp.ItemService
	Dashboard *reportapp.DashboardService
}

// NewServices builds the services. m may be nil, in which case ledger and
// expense counters are not recorded.
func NewServices(db *gorm.DB, m *metrics.Metrics, currency string) *Services {
	scope := persistence.NewGormTransactionScope(db)
	projects := persistence.NewGormProjectRepository(db)
	workers := persistence.NewGormWorkerRepository(db)

	var ledgerRecorder workforceapp.LedgerRecorder
	var expenseRecorder projectapp.ExpenseRecorder
	if m != nil {
		ledgerRecorder = m
		expenseRecorder = m
	}

	return &Services{
		Projects: projectapp.NewProjectService(projects, scope),
		Expenses: projectapp.NewExpenseService(persistence.NewGormExpenseRepository(db), projects, scope, expenseRecorder),
		Workers:  workforceapp.NewWorkerService(workers, scope),
		Ledger: workforceapp.NewLedgerService(
			workers,
			persistence.NewGormAssignmentRepository(db),
			persistence.NewGormPaymentRepository(db),
			scope,
			ledgerRecorder,
		),
		Vendors:   partnerapp.NewVendorService(persistence.NewGormVendorRepository(db), scope),
		Inventory: inventoryapp.NewItemService(persistence.NewGormItemRepository(db), scope),
		Dashboard: reportapp.NewDashboardService(persistence.NewGormFiguresRepository(db), currency),
	}
}

// Seed returns the subset of services the seeder writes through
func (s *Services) Seed() seed.Services {
	return seed.Services{
		Projects:  s.Projects,
		Workers:   s.Workers,
		Ledger:    s.Ledger,
		Vendors:   s.Vendors,
		Inventory: s.Inventory,
	}
}
