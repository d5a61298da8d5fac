package workforce

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// Worker is a site worker paid at an hourly rate.
// TotalPaid and LastPaymentDate are maintained only by the payment ledger.
type Worker struct {
	shared.BaseEntity
	Name            string          `gorm:"type:varchar(200);not null"`
	Role            string          `gorm:"type:varchar(100);not null;index"`
	HourlyRate      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Contact         string          `gorm:"type:varchar(200)"`
	TotalPaid       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastPaymentDate *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (Worker) TableName() string {
	return "workers"
}

// WorkerPatch carries the editable worker fields. Nil fields are left untouched.
type WorkerPatch struct {
	Name       *string
	Role       *string
	HourlyRate *decimal.Decimal
	Contact    *string
}

// NewWorker creates a worker with no payment history
func NewWorker(name, role string, hourlyRate decimal.Decimal, contact string) (*Worker, error) {
	w := &Worker{
		BaseEntity: shared.NewBaseEntity(),
		TotalPaid:  decimal.Zero,
	}
	err := w.Apply(WorkerPatch{
		Name:       &name,
		Role:       &role,
		HourlyRate: &hourlyRate,
		Contact:    &contact,
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Apply validates the patch and then mutates the worker
func (w *Worker) Apply(patch WorkerPatch) error {
	next := *w

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if next.Name == "" {
			return shared.NewValidationError("name", "name is required")
		}
		if len(next.Name) > 200 {
			return shared.NewValidationError("name", "name cannot exceed 200 characters")
		}
	}
	if patch.Role != nil {
		next.Role = strings.TrimSpace(*patch.Role)
		if next.Role == "" {
			return shared.NewValidationError("role", "role is required")
		}
		if len(next.Role) > 100 {
			return shared.NewValidationError("role", "role cannot exceed 100 characters")
		}
	}
	if patch.HourlyRate != nil {
		if !patch.HourlyRate.IsPositive() {
			return shared.NewValidationError("hourly_rate", "hourly_rate must be greater than 0")
		}
		next.HourlyRate = *patch.HourlyRate
	}
	if patch.Contact != nil {
		next.Contact = strings.TrimSpace(*patch.Contact)
		if len(next.Contact) > 200 {
			return shared.NewValidationError("contact", "contact cannot exceed 200 characters")
		}
	}

	next.Touch()
	*w = next
	return nil
}
