package project

import (
	"context"
	"fmt"

	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// ProjectService handles project lifecycle operations
type ProjectService struct {
	projectRepo project.ProjectRepository
	scope       txn.Scope
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo project.ProjectRepository, scope txn.Scope) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		scope:       scope,
	}
}

// Create creates a new project. Status defaults to Planning, spend and progress to zero.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	p, err := project.NewProject(req.Name)
	if err != nil {
		return nil, err
	}
	patch, err := toPatch(nil, &req.Description, &req.Location, &req.Status,
		req.Budget, req.ProgressPercent, req.Units, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(patch); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Projects().Save(ctx, p); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityProject, p.ID, activity.ActionCreated, p.Name)
	})
	if err != nil {
		return nil, err
	}

	response := ToProjectResponse(p)
	return &response, nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(ctx context.Context, id int64) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProjectResponse(p)
	return &response, nil
}

// List retrieves projects, newest first unless the filter says otherwise
func (s *ProjectService) List(ctx context.Context, filter shared.Filter) ([]ProjectResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProjectResponses(projects), nil
}

// Update applies a partial update. The whole patch is validated before anything is written.
func (s *ProjectService) Update(ctx context.Context, id int64, req UpdateProjectRequest) (*ProjectResponse, error) {
	patch, err := toPatch(req.Name, req.Description, req.Location, req.Status,
		req.Budget, req.ProgressPercent, req.Units, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var updated *project.Project
	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		p, err := repos.Projects().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Apply(patch); err != nil {
			return err
		}
		if err := repos.Projects().Save(ctx, p); err != nil {
			return err
		}
		updated = p
		return txn.Log(ctx, repos, activity.EntityProject, p.ID, activity.ActionUpdated, "")
	})
	if err != nil {
		return nil, err
	}

	response := ToProjectResponse(updated)
	return &response, nil
}

// Delete removes a project. It is rejected while assignments or expenses reference it;
// stock held for the project is released back to general inventory.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Projects().FindByID(ctx, id); err != nil {
			return err
		}
		deps, err := repos.Projects().CountDependents(ctx, id)
		if err != nil {
			return err
		}
		if deps.Any() {
			return shared.NewConflictError(fmt.Sprintf(
				"project %d still has %d assignment(s) and %d expense(s)", id, deps.Assignments, deps.Expenses))
		}
		if err := repos.Inventory().DetachProject(ctx, id); err != nil {
			return err
		}
		if err := repos.Projects().Delete(ctx, id); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityProject, id, activity.ActionDeleted, "")
	})
}
