package persistence

import (
	"fmt"

	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/inventory"
	"github.com/sitebuild/backend/internal/domain/partner"
	"github.com/sitebuild/backend/internal/domain/project"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order
func Models() []any {
	return []any{
		&project.Project{},
		&partner.Vendor{},
		&workforce.Worker{},
		&workforce.Assignment{},
		&workforce.Payment{},
		&project.Expense{},
		&inventory.Item{},
		&activity.Entry{},
	}
}

// AutoMigrate creates or updates the schema from the entity definitions.
// Used for SQLite and tests; Postgres deployments run the SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate schema: %w", err)
	}
	return nil
}
