package workforce

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
)

// =============================================================================
// Worker DTOs
// =============================================================================

// CreateWorkerRequest represents a request to create a new worker
type CreateWorkerRequest struct {
	Name       string          `json:"name" binding:"required,max=200"`
	Role       string          `json:"role" binding:"required,max=100"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Contact    string          `json:"contact" binding:"max=200"`
}

// UpdateWorkerRequest represents a partial update. Payment totals are not editable.
type UpdateWorkerRequest struct {
	Name       *string          `json:"name" binding:"omitempty,max=200"`
	Role       *string          `json:"role" binding:"omitempty,max=100"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	Contact    *string          `json:"contact" binding:"omitempty,max=200"`
}

// WorkerResponse represents a worker in API responses
type WorkerResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Role            string          `json:"role"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	Contact         string          `json:"contact"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	LastPaymentDate *string         `json:"last_payment_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProjectRefResponse names a project a worker is assigned to
type ProjectRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RosterResponse is a worker with the distinct projects it is assigned to
type RosterResponse struct {
	WorkerResponse
	Projects []ProjectRefResponse `json:"projects"`
}

// ToWorkerResponse converts a domain worker to a response DTO
func ToWorkerResponse(w *workforce.Worker) WorkerResponse {
	return WorkerResponse{
		ID:              w.ID,
		Name:            w.Name,
		Role:            w.Role,
		HourlyRate:      w.HourlyRate,
		Contact:         w.Contact,
		TotalPaid:       w.TotalPaid,
		LastPaymentDate: shared.FormatDate(w.LastPaymentDate),
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

// ToRosterResponses converts roster entries, keeping empty project lists as []
func ToRosterResponses(entries []workforce.RosterEntry) []RosterResponse {
	out := make([]RosterResponse, len(entries))
	for i := range entries {
		refs := make([]ProjectRefResponse, len(entries[i].Projects))
		for j, p := range entries[i].Projects {
			refs[j] = ProjectRefResponse{ID: p.ID, Name: p.Name}
		}
		out[i] = RosterResponse{
			WorkerResponse: ToWorkerResponse(&entries[i].Worker),
			Projects:       refs,
		}
	}
	return out
}

// =============================================================================
// Assignment DTOs
// =============================================================================

// AssignWorkerRequest assigns a worker to a project
type AssignWorkerRequest struct {
	ProjectID   int64            `json:"project_id" binding:"required,min=1"`
	HoursWorked *decimal.Decimal `json:"hours_worked"`
}

// AddHoursRequest adds worked hours to an assignment
type AddHoursRequest struct {
	Hours decimal.Decimal `json:"hours"`
}

// AssignmentResponse represents an assignment in API responses
type AssignmentResponse struct {
	ID           int64           `json:"id"`
	WorkerID     int64           `json:"worker_id"`
	ProjectID    int64           `json:"project_id"`
	HoursWorked  decimal.Decimal `json:"hours_worked"`
	AssignedRate decimal.Decimal `json:"assigned_rate"`
	LabourCost   decimal.Decimal `json:"labour_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToAssignmentResponse converts a domain assignment to a response DTO
func ToAssignmentResponse(a *workforce.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:           a.ID,
		WorkerID:     a.WorkerID,
		ProjectID:    a.ProjectID,
		HoursWorked:  a.HoursWorked,
		AssignedRate: a.AssignedRate,
		LabourCost:   a.LabourCost(),
		CreatedAt:    a.CreatedAt,
	}
}

// =============================================================================
// Payment DTOs
// =============================================================================

// RecordPaymentRequest records a payment to a worker
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *string         `json:"payment_date"`
	Description string          `json:"description"`
}

// PaymentResponse represents a ledger row in API responses
type PaymentResponse struct {
	ID          int64           `json:"id"`
	WorkerID    int64           `json:"worker_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentReceipt is the ledger row plus the worker's balance after it was applied
type PaymentReceipt struct {
	Payment         PaymentResponse `json:"payment"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	LastPaymentDate string          `json:"last_payment_date"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *workforce.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		WorkerID:    p.WorkerID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.UTC().Format(shared.DateLayout),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
