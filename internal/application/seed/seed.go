// Package seed loads the sample data set through the application services,
// so seeded rows pass the same validation as API input.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/application/inventory"
	"github.com/sitebuild/backend/internal/application/partner"
	"github.com/sitebuild/backend/internal/application/project"
	"github.com/sitebuild/backend/internal/application/workforce"
	"github.com/sitebuild/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Services are the application services the seeder writes through
type Services struct {
	Projects  *project.ProjectService
	Workers   *workforce.WorkerService
	Ledger    *workforce.LedgerService
	Vendors   *partner.VendorService
	Inventory *inventory.ItemService
}

// Summary counts what a run inserted
type Summary struct {
	Projects    int
	Workers     int
	Assignments int
	Vendors     int
	Items       int
}

// Seeder inserts sample data into empty tables
type Seeder struct {
	svc    Services
	logger *zap.Logger
}

// New creates a Seeder
func New(svc Services, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{svc: svc, logger: logger}
}

type sampleProject struct {
	name     string
	location string
	budget   string
	status   string
	progress int
}

type sampleWorker struct {
	name    string
	role    string
	rate    string
	contact string
	project string
	hours   string
}

type sampleVendor struct {
	name     string
	category string
	contact  string
	rating   int
}

type sampleItem struct {
	name     string
	category string
	unit     string
	quantity string
	price    string
	minStock int
}

var sampleProjects = []sampleProject{
	{"Lagos Luxury Apartments", "Lekki, Lagos", "25000000", "Active", 35},
	{"Abuja Commercial Complex", "Wuse II, Abuja", "50000000", "Planning", 0},
	{"Port Harcourt Residential", "GRA, Port Harcourt", "15000000", "Active", 65},
}

var sampleWorkers = []sampleWorker{
	{"Chinedu Okoro", "Site Manager", "8500", "08031234567", "Lagos Luxury Apartments", "40"},
	{"Amina Bello", "Architect", "6500", "amina@construction.com", "Abuja Commercial Complex", "12"},
	{"Emeka Nwosu", "Civil Engineer", "7200", "08039876543", "Port Harcourt Residential", "24"},
}

var sampleVendors = []sampleVendor{
	{"Dangote Cement", "Materials", "orders@dangote.com", 5},
	{"Julius Berger", "Contractors", "info@juliusberger.com", 4},
	{"CCECC Nigeria", "Engineering", "contact@ccecc.com", 4},
}

var sampleItems = []sampleItem{
	{"Portland Cement", "Materials", "bag", "500", "4500", 100},
	{"Steel Reinforcement", "Materials", "ton", "200", "8500", 50},
	{"Electrical Wires", "Electrical", "roll", "150", "3200", 30},
	{"PVC Pipes", "Plumbing", "piece", "300", "2800", 40},
	{"Paint (20L)", "Finishing", "bucket", "25", "18500", 10},
}

// Run seeds every section whose table is empty. Sections that already hold
// data are left alone, so running twice is harmless.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	all := shared.Filter{PageSize: 1}

	projectIDs := make(map[string]int64, len(sampleProjects))
	existing, err := s.svc.Projects.List(ctx, all)
	if err != nil {
		return sum, err
	}
	if len(existing) == 0 {
		for _, p := range sampleProjects {
			budget := decimal.RequireFromString(p.budget)
			progress := p.progress
			created, err := s.svc.Projects.Create(ctx, project.CreateProjectRequest{
				Name:            p.name,
				Location:        p.location,
				Status:          p.status,
				Budget:          &budget,
				ProgressPercent: &progress,
			})
			if err != nil {
				return sum, fmt.Errorf("seed project %q: %w", p.name, err)
			}
			projectIDs[p.name] = created.ID
			sum.Projects++
		}
	}

	workers, err := s.svc.Workers.List(ctx, all)
	if err != nil {
		return sum, err
	}
	if len(workers) == 0 {
		for _, w := range sampleWorkers {
			created, err := s.svc.Workers.Create(ctx, workforce.CreateWorkerRequest{
				Name:       w.name,
				Role:       w.role,
				HourlyRate: decimal.RequireFromString(w.rate),
				Contact:    w.contact,
			})
			if err != nil {
				return sum, fmt.Errorf("seed worker %q: %w", w.name, err)
			}
			sum.Workers++

			// only link to projects this run created
			pid, ok := projectIDs[w.project]
			if !ok {
				continue
			}
			hours := decimal.RequireFromString(w.hours)
			if _, err := s.svc.Ledger.Assign(ctx, created.ID, workforce.AssignWorkerRequest{ProjectID: pid, HoursWorked: &hours}); err != nil {
				return sum, fmt.Errorf("seed assignment for %q: %w", w.name, err)
			}
			sum.Assignments++
		}
	}

	vendors, err := s.svc.Vendors.List(ctx, all)
	if err != nil {
		return sum, err
	}
	if len(vendors) == 0 {
		for _, v := range sampleVendors {
			rating := v.rating
			if _, err := s.svc.Vendors.Create(ctx, partner.CreateVendorRequest{
				Name:     v.name,
				Category: v.category,
				Contact:  v.contact,
				Rating:   &rating,
			}); err != nil {
				return sum, fmt.Errorf("seed vendor %q: %w", v.name, err)
			}
			sum.Vendors++
		}
	}

	items, err := s.svc.Inventory.List(ctx, all)
	if err != nil {
		return sum, err
	}
	if len(items) == 0 {
		for _, it := range sampleItems {
			qty := decimal.RequireFromString(it.quantity)
			price := decimal.RequireFromString(it.price)
			minStock := it.minStock
			if _, err := s.svc.Inventory.Create(ctx, inventory.CreateItemRequest{
				Name:      it.name,
				Category:  it.category,
				Unit:      it.unit,
				Quantity:  &qty,
				UnitPrice: &price,
				MinStock:  &minStock,
			}); err != nil {
				return sum, fmt.Errorf("seed item %q: %w", it.name, err)
			}
			sum.Items++
		}
	}

	s.logger.Info("Sample data seeded",
		zap.Int("projects", sum.Projects),
		zap.Int("workers", sum.Workers),
		zap.Int("assignments", sum.Assignments),
		zap.Int("vendors", sum.Vendors),
		zap.Int("inventory_items", sum.Items),
	)
	return sum, nil
}
