package project

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// =============================================================================
// Project DTOs
// =============================================================================

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Name            string           `json:"name" binding:"required,max=200"`
	Description     string           `json:"description"`
	Location        string           `json:"location" binding:"max=200"`
	Status          string           `json:"status"`
	Budget          *decimal.Decimal `json:"budget"`
	ProgressPercent *int             `json:"progress_percent" binding:"omitempty,min=0,max=100"`
	Units           *int             `json:"units" binding:"omitempty,min=0"`
	StartDate       *string          `json:"start_date"`
	EndDate         *string          `json:"end_date"`
}

// UpdateProjectRequest represents a partial update. Absent fields are left untouched.
type UpdateProjectRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=200"`
	Description     *string          `json:"description"`
	Location        *string          `json:"location" binding:"omitempty,max=200"`
	Status          *string          `json:"status"`
	Budget          *decimal.Decimal `json:"budget"`
	ProgressPercent *int             `json:"progress_percent" binding:"omitempty,min=0,max=100"`
	Units           *int             `json:"units" binding:"omitempty,min=0"`
	StartDate       *string          `json:"start_date"`
	EndDate         *string          `json:"end_date"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Location        string          `json:"location"`
	Status          string          `json:"status"`
	Budget          decimal.Decimal `json:"budget"`
	Spent           decimal.Decimal `json:"spent"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	ProgressPercent int             `json:"progress_percent"`
	Units           int             `json:"units"`
	StartDate       *string         `json:"start_date"`
	EndDate         *string         `json:"end_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToProjectResponse converts a domain project to a response DTO
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Location:        p.Location,
		Status:          string(p.Status),
		Budget:          p.Budget,
		Spent:           p.Spent,
		RemainingBudget: p.RemainingBudget(),
		ProgressPercent: p.ProgressPercent,
		Units:           p.Units,
		StartDate:       shared.FormatDate(p.StartDate),
		EndDate:         shared.FormatDate(p.EndDate),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProjectResponses converts a slice of projects
func ToProjectResponses(projects []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out
}

// toPatch turns request fields into a domain patch, parsing enum and date values
func toPatch(name, description, location, status *string, budget *decimal.Decimal, progress, units *int, start, end *string) (project.Patch, error) {
	patch := project.Patch{
		Name:            name,
		Description:     description,
		Location:        location,
		Budget:          budget,
		ProgressPercent: progress,
		Units:           units,
	}
	if status != nil && *status != "" {
		s, err := project.ParseStatus(*status)
		if err != nil {
			return patch, err
		}
		patch.Status = &s
	}
	var err error
	if patch.StartDate, err = shared.ParseDate("start_date", start); err != nil {
		return patch, err
	}
	if patch.EndDate, err = shared.ParseDate("end_date", end); err != nil {
		return patch, err
	}
	return patch, nil
}

// =============================================================================
// Expense DTOs
// =============================================================================

// RecordExpenseRequest represents a request to book an expense against a project
type RecordExpenseRequest struct {
	VendorID *int64          `json:"vendor_id" binding:"omitempty,min=1"`
	Category string          `json:"category" binding:"required,max=100"`
	Amount   decimal.Decimal `json:"amount"`
	Date     *string         `json:"date"`
	Notes    string          `json:"notes"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"project_id"`
	VendorID  *int64          `json:"vendor_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToExpenseResponse converts a domain expense to a response DTO
func ToExpenseResponse(e *project.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		VendorID:  e.VendorID,
		Category:  e.Category,
		Amount:    e.Amount,
		Date:      e.Date.UTC().Format(shared.DateLayout),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}
