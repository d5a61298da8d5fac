package workforce

import (
	"context"
	"fmt"

	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
)

// WorkerService handles worker records and the enriched roster
type WorkerService struct {
	workerRepo workforce.WorkerRepository
	scope      txn.Scope
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(workerRepo workforce.WorkerRepository, scope txn.Scope) *WorkerService {
	return &WorkerService{
		workerRepo: workerRepo,
		scope:      scope,
	}
}

// Create creates a worker with no payment history
func (s *WorkerService) Create(ctx context.Context, req CreateWorkerRequest) (*WorkerResponse, error) {
	w, err := workforce.NewWorker(req.Name, req.Role, req.HourlyRate, req.Contact)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Workers().Save(ctx, w); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityWorker, w.ID, activity.ActionCreated, w.Name)
	})
	if err != nil {
		return nil, err
	}

	response := ToWorkerResponse(w)
	return &response, nil
}

// GetByID retrieves a worker by ID
func (s *WorkerService) GetByID(ctx context.Context, id int64) (*WorkerResponse, error) {
	w, err := s.workerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWorkerResponse(w)
	return &response, nil
}

// List returns the roster: every worker with the distinct projects it is assigned to
func (s *WorkerService) List(ctx context.Context, filter shared.Filter) ([]RosterResponse, error) {
	roster, err := s.workerRepo.FindRoster(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToRosterResponses(roster), nil
}

// Update applies a partial update. Existing assignments keep their snapshot rate.
func (s *WorkerService) Update(ctx context.Context, id int64, req UpdateWorkerRequest) (*WorkerResponse, error) {
	var updated *workforce.Worker
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		w, err := repos.Workers().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		err = w.Apply(workforce.WorkerPatch{
			Name:       req.Name,
			Role:       req.Role,
			HourlyRate: req.HourlyRate,
			Contact:    req.Contact,
		})
		if err != nil {
			return err
		}
		if err := repos.Workers().Save(ctx, w); err != nil {
			return err
		}
		updated = w
		return txn.Log(ctx, repos, activity.EntityWorker, w.ID, activity.ActionUpdated, "")
	})
	if err != nil {
		return nil, err
	}

	response := ToWorkerResponse(updated)
	return &response, nil
}

// Delete removes the worker together with its assignments and payment ledger
func (s *WorkerService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Workers().FindByIDForUpdate(ctx, id); err != nil {
			return err
		}
		assignments, err := repos.Assignments().DeleteByWorker(ctx, id)
		if err != nil {
			return err
		}
		payments, err := repos.Payments().DeleteByWorker(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Workers().Delete(ctx, id); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityWorker, id, activity.ActionDeleted,
			fmt.Sprintf("removed %d assignment(s) and %d payment(s)", assignments, payments))
	})
}
