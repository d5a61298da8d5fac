package project

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// Status represents the lifecycle stage of a project
type Status string

const (
	StatusPlanning  Status = "Planning"
	StatusActive    Status = "Active"
	StatusOnHold    Status = "On Hold"
	StatusCompleted Status = "Completed"
)

// Statuses lists every project status in lifecycle order
var Statuses = []Status{StatusPlanning, StatusActive, StatusOnHold, StatusCompleted}

// ParseStatus accepts the canonical label in any case, with "_" or "-" standing in for the space
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, st := range Statuses {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return "", shared.NewValidationError("status", "status must be one of Planning, Active, On Hold, Completed")
}

// Project is a construction or real-estate project that workers, expenses and stock are booked against
type Project struct {
	shared.BaseEntity
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Location        string          `gorm:"type:varchar(200)"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'Planning';index"`
	Budget          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Spent           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // expense ledger total, moved only by AddSpent
	ProgressPercent int             `gorm:"not null;default:0"`
	Units           int             `gorm:"not null;default:0"`
	StartDate       *time.Time      `gorm:"type:date"`
	EndDate         *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// Patch carries the fields of a create or partial update. Nil fields are left untouched.
type Patch struct {
	Name            *string
	Description     *string
	Location        *string
	Status          *Status
	Budget          *decimal.Decimal
	ProgressPercent *int
	Units           *int
	StartDate       *time.Time
	EndDate         *time.Time
}

// NewProject creates a project in the Planning state with zero budget, spend and progress
func NewProject(name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Project{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     StatusPlanning,
		Budget:     decimal.Zero,
		Spent:      decimal.Zero,
	}, nil
}

// Apply validates the patched state as a whole and only then mutates the project
func (p *Project) Apply(patch Patch) error {
	next := *p

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if err := validateName(next.Name); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Location != nil {
		next.Location = strings.TrimSpace(*patch.Location)
		if len(next.Location) > 200 {
			return shared.NewValidationError("location", "location cannot exceed 200 characters")
		}
	}
	if patch.Status != nil {
		st, err := ParseStatus(string(*patch.Status))
		if err != nil {
			return err
		}
		next.Status = st
	}
	if patch.Budget != nil {
		if !patch.Budget.IsPositive() {
			return shared.NewValidationError("budget", "budget must be greater than 0")
		}
		next.Budget = *patch.Budget
	}
	if patch.ProgressPercent != nil {
		if *patch.ProgressPercent < 0 || *patch.ProgressPercent > 100 {
			return shared.NewValidationError("progress_percent", "progress_percent must be between 0 and 100")
		}
		next.ProgressPercent = *patch.ProgressPercent
	}
	if patch.Units != nil {
		if *patch.Units < 0 {
			return shared.NewValidationError("units", "units cannot be negative")
		}
		next.Units = *patch.Units
	}
	if patch.StartDate != nil {
		d := truncateToDate(*patch.StartDate)
		next.StartDate = &d
	}
	if patch.EndDate != nil {
		d := truncateToDate(*patch.EndDate)
		next.EndDate = &d
	}
	if next.StartDate != nil && next.EndDate != nil && next.EndDate.Before(*next.StartDate) {
		return shared.NewValidationError("end_date", "end_date cannot be before start_date")
	}

	next.Touch()
	*p = next
	return nil
}

// IsActive reports whether work is currently under way
func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

// RemainingBudget returns budget minus spent, negative when over budget
func (p *Project) RemainingBudget() decimal.Decimal {
	return p.Budget.Sub(p.Spent)
}

func validateName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "name cannot exceed 200 characters")
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
