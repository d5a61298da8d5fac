package workforce

import (
	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// Assignment links a worker to a project. AssignedRate is the worker's hourly
// rate captured when the assignment was made and never follows later rate changes.
type Assignment struct {
	shared.BaseEntity
	ProjectID    int64           `gorm:"not null;index"`
	WorkerID     int64           `gorm:"not null;index"`
	HoursWorked  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AssignedRate decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Assignment) TableName() string {
	return "project_worker_assignments"
}

// NewAssignment snapshots the worker's current hourly rate
func NewAssignment(worker *Worker, projectID int64, initialHours decimal.Decimal) (*Assignment, error) {
	if initialHours.IsNegative() {
		return nil, shared.NewValidationError("hours_worked", "hours_worked cannot be negative")
	}
	return &Assignment{
		BaseEntity:   shared.NewBaseEntity(),
		ProjectID:    projectID,
		WorkerID:     worker.ID,
		HoursWorked:  initialHours,
		AssignedRate: worker.HourlyRate,
	}, nil
}

// LabourCost is hours worked priced at the frozen rate
func (a *Assignment) LabourCost() decimal.Decimal {
	return a.HoursWorked.Mul(a.AssignedRate)
}

// ValidateHours checks an increment to the hours accumulator
func ValidateHours(hours decimal.Decimal) error {
	if !hours.IsPositive() {
		return shared.NewValidationError("hours", "hours must be greater than 0")
	}
	return nil
}
