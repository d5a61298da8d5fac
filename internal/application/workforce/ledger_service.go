package workforce

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"github.com/sitebuild/backend/internal/infrastructure/telemetry"
)

// LedgerRecorder observes ledger writes. Implemented by the metrics package.
type LedgerRecorder interface {
	PaymentRecorded(amount decimal.Decimal)
	AssignmentCreated()
}

// LedgerService owns assignments (with their frozen rate) and the payment
// ledger that drives a worker's running total.
type LedgerService struct {
	workerRepo     workforce.WorkerRepository
	assignmentRepo workforce.AssignmentRepository
	paymentRepo    workforce.PaymentRepository
	scope          txn.Scope
	recorder       LedgerRecorder
}

// NewLedgerService creates a new LedgerService. recorder may be nil.
func NewLedgerService(
	workerRepo workforce.WorkerRepository,
	assignmentRepo workforce.AssignmentRepository,
	paymentRepo workforce.PaymentRepository,
	scope txn.Scope,
	recorder LedgerRecorder,
) *LedgerService {
	return &LedgerService{
		workerRepo:     workerRepo,
		assignmentRepo: assignmentRepo,
		paymentRepo:    paymentRepo,
		scope:          scope,
		recorder:       recorder,
	}
}

// Assign assigns a worker to a project, copying the worker's hourly rate as
// it stands right now into the assignment.
func (s *LedgerService) Assign(ctx context.Context, workerID int64, req AssignWorkerRequest) (*AssignmentResponse, error) {
	hours := decimal.Zero
	if req.HoursWorked != nil {
		hours = *req.HoursWorked
	}

	var assignment *workforce.Assignment
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		w, err := repos.Workers().FindByIDForUpdate(ctx, workerID)
		if err != nil {
			return err
		}
		p, err := repos.Projects().FindByID(ctx, req.ProjectID)
		if err != nil {
			return err
		}
		a, err := workforce.NewAssignment(w, p.ID, hours)
		if err != nil {
			return err
		}
		if err := repos.Assignments().Save(ctx, a); err != nil {
			return err
		}
		assignment = a
		return txn.Log(ctx, repos, activity.EntityAssignment, a.ID, activity.ActionAssigned,
			fmt.Sprintf("worker %d to project %d at %s", w.ID, p.ID, a.AssignedRate.StringFixed(2)))
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.AssignmentCreated()
	}
	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// AddHours increments an assignment's hours accumulator
func (s *LedgerService) AddHours(ctx context.Context, assignmentID int64, req AddHoursRequest) (*AssignmentResponse, error) {
	if err := workforce.ValidateHours(req.Hours); err != nil {
		return nil, err
	}

	var assignment *workforce.Assignment
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Assignments().AddHours(ctx, assignmentID, req.Hours); err != nil {
			return err
		}
		a, err := repos.Assignments().FindByID(ctx, assignmentID)
		if err != nil {
			return err
		}
		assignment = a
		return txn.Log(ctx, repos, activity.EntityAssignment, a.ID, activity.ActionHours, req.Hours.String())
	})
	if err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// ListAssignments lists a worker's assignments in the order they were made
func (s *LedgerService) ListAssignments(ctx context.Context, workerID int64) ([]AssignmentResponse, error) {
	if _, err := s.workerRepo.FindByID(ctx, workerID); err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.FindByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	out := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		out[i] = ToAssignmentResponse(&assignments[i])
	}
	return out, nil
}

// Unassign removes one assignment
func (s *LedgerService) Unassign(ctx context.Context, assignmentID int64) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Assignments().Delete(ctx, assignmentID); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityAssignment, assignmentID, activity.ActionDeleted, "")
	})
}

// RecordPayment appends a ledger row and moves the worker's total_paid and
// last_payment_date in the same transaction. The worker row is locked first so
// concurrent payments to one worker apply one after another.
func (s *LedgerService) RecordPayment(ctx context.Context, workerID int64, req RecordPaymentRequest) (_ *PaymentReceipt, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "record_payment",
		telemetry.SpanAttrWorkerID, workerID,
		telemetry.SpanAttrAmount, req.Amount.String(),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	date, err := shared.ParseDate("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}
	var on time.Time
	if date != nil {
		on = *date
	}
	payment, err := workforce.NewPayment(workerID, req.Amount, on, req.Description)
	if err != nil {
		return nil, err
	}

	var worker *workforce.Worker
	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Workers().FindByIDForUpdate(ctx, workerID); err != nil {
			return err
		}
		if err := repos.Payments().Append(ctx, payment); err != nil {
			return err
		}
		if err := repos.Workers().ApplyPayment(ctx, workerID, payment.Amount, payment.PaymentDate); err != nil {
			return err
		}
		w, err := repos.Workers().FindByID(ctx, workerID)
		if err != nil {
			return err
		}
		worker = w
		return txn.Log(ctx, repos, activity.EntityPayment, payment.ID, activity.ActionPaid,
			fmt.Sprintf("worker %d paid %s", workerID, payment.Amount.StringFixed(2)))
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.PaymentRecorded(payment.Amount)
	}
	return &PaymentReceipt{
		Payment:         ToPaymentResponse(payment),
		TotalPaid:       worker.TotalPaid,
		LastPaymentDate: payment.PaymentDate.Format(shared.DateLayout),
	}, nil
}

// ListPayments lists a worker's payments, newest payment date first
func (s *LedgerService) ListPayments(ctx context.Context, workerID int64, filter shared.Filter) ([]PaymentResponse, error) {
	if _, err := s.workerRepo.FindByID(ctx, workerID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByWorker(ctx, workerID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out, nil
}
