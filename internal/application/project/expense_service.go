package project

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/infrastructure/telemetry"
)

// ExpenseRecorder observes booked expenses. Implemented by the metrics package.
type ExpenseRecorder interface {
	ExpenseRecorded(amount decimal.Decimal)
}

// ExpenseService books expenses against projects and keeps project spend
// and vendor totals in step with the expense rows.
type ExpenseService struct {
	expenseRepo project.ExpenseRepository
	projectRepo project.ProjectRepository
	scope       txn.Scope
	recorder    ExpenseRecorder
}

// NewExpenseService creates a new ExpenseService. recorder may be nil.
func NewExpenseService(expenseRepo project.ExpenseRepository, projectRepo project.ProjectRepository, scope txn.Scope, recorder ExpenseRecorder) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		scope:       scope,
		recorder:    recorder,
	}
}

// Record inserts the expense and increments the project's spent (and the vendor's
// total_paid when a vendor is named) in one transaction.
func (s *ExpenseService) Record(ctx context.Context, projectID int64, req RecordExpenseRequest) (_ *ExpenseResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "expense", "record",
		telemetry.SpanAttrProjectID, projectID,
		telemetry.SpanAttrAmount, req.Amount.String(),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()
	if req.VendorID != nil {
		telemetry.SetAttributes(span, telemetry.SpanAttrVendorID, *req.VendorID)
	}

	date, err := shared.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	var on time.Time
	if date != nil {
		on = *date
	}
	e, err := project.NewExpense(projectID, req.VendorID, req.Category, req.Amount, on, req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Projects().FindByID(ctx, projectID); err != nil {
			return err
		}
		if e.VendorID != nil {
			if _, err := repos.Vendors().FindByID(ctx, *e.VendorID); err != nil {
				return err
			}
		}
		if err := repos.Expenses().Save(ctx, e); err != nil {
			return err
		}
		if err := repos.Projects().AddSpent(ctx, projectID, e.Amount); err != nil {
			return err
		}
		if e.VendorID != nil {
			if err := repos.Vendors().AddPaid(ctx, *e.VendorID, e.Amount); err != nil {
				return err
			}
		}
		return txn.Log(ctx, repos, activity.EntityExpense, e.ID, activity.ActionCreated,
			e.Category+" "+e.Amount.StringFixed(2))
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.ExpenseRecorded(e.Amount)
	}
	response := ToExpenseResponse(e)
	return &response, nil
}

// ListByProject lists a project's expenses, newest first
func (s *ExpenseService) ListByProject(ctx context.Context, projectID int64, filter shared.Filter) ([]ExpenseResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByProject(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out, nil
}

// Delete removes an expense and reverses its increments
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		e, err := repos.Expenses().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Expenses().Delete(ctx, id); err != nil {
			return err
		}
		if err := repos.Projects().AddSpent(ctx, e.ProjectID, e.Amount.Neg()); err != nil {
			return err
		}
		if e.VendorID != nil {
			if err := repos.Vendors().AddPaid(ctx, *e.VendorID, e.Amount.Neg()); err != nil {
				return err
			}
		}
		return txn.Log(ctx, repos, activity.EntityExpense, id, activity.ActionDeleted, "")
	})
}
