package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

var _ project.ProjectRepository = (*GormProjectRepository)(nil)

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id int64) (*project.Project, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a project with SELECT ... FOR UPDATE
func (r *GormProjectRepository) FindByIDForUpdate(ctx context.Context, id int64) (*project.Project, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormProjectRepository) find(db *gorm.DB, id int64) (*project.Project, error) {
	var p project.Project
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("project", id)
		}
		return nil, translateError(err)
	}
	return &p, nil
}

// FindAll lists projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	projects := make([]project.Project, 0)
	query := applySearch(r.db.WithContext(ctx).Model(&project.Project{}), filter.Search, "name", "location")
	query = applyFilter(query, filter, ProjectSortFields, "created_at")
	if err := query.Find(&projects).Error; err != nil {
		return nil, translateError(err)
	}
	return projects, nil
}

// Save creates or updates a project. An update leaves spent alone so it cannot
// undo an AddSpent that committed after p was read.
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	db := r.db.WithContext(ctx)
	if !p.IsNew() {
		db = db.Omit("spent")
	}
	return translateError(db.Save(p).Error)
}

// Delete removes a project by ID
func (r *GormProjectRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&project.Project{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("project", id)
	}
	return nil
}

// CountDependents counts assignments and expenses that reference the project
func (r *GormProjectRepository) CountDependents(ctx context.Context, id int64) (project.Dependents, error) {
	var deps project.Dependents
	db := r.db.WithContext(ctx)
	if err := db.Model(&workforce.Assignment{}).Where("project_id = ?", id).Count(&deps.Assignments).Error; err != nil {
		return deps, translateError(err)
	}
	if err := db.Model(&project.Expense{}).Where("project_id = ?", id).Count(&deps.Expenses).Error; err != nil {
		return deps, translateError(err)
	}
	return deps, nil
}

// AddSpent adds delta to spent in a single UPDATE so concurrent writers never lose
// increments. The total never drops below zero.
func (r *GormProjectRepository) AddSpent(ctx context.Context, id int64, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&project.Project{}).
		Where("id = ?", id).
		Update("spent", gorm.Expr("CASE WHEN spent + ? < 0 THEN 0 ELSE spent + ? END", delta, delta))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("project", id)
	}
	return nil
}

// applySearch filters rows whose columns contain term, case-insensitively
func applySearch(db *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + term + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}
