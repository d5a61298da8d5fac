package persistence

import (
	"context"
	"database/sql"

	"github.com/sitebuild/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormFiguresRepository reads the dashboard aggregates with SQL GROUP BY queries
type GormFiguresRepository struct {
	db *gorm.DB
}

var _ report.FiguresRepository = (*GormFiguresRepository)(nil)

// NewGormFiguresRepository creates a new GormFiguresRepository
func NewGormFiguresRepository(db *gorm.DB) *GormFiguresRepository {
	return &GormFiguresRepository{db: db}
}

// LoadFigures runs every aggregate inside one transaction so the totals
// describe a single snapshot. Postgres gets a read-only repeatable-read
// transaction; SQLite transactions are already serializable.
func (r *GormFiguresRepository) LoadFigures(ctx context.Context) (*report.Figures, error) {
	var opts []*sql.TxOptions
	if r.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}

	figures := &report.Figures{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`SELECT status, COUNT(*) AS count,
				COALESCE(SUM(budget), 0) AS budget,
				COALESCE(SUM(spent), 0) AS spent
			FROM projects GROUP BY status`).Scan(&figures.Statuses).Error; err != nil {
			return err
		}

		if err := tx.Raw(`SELECT COUNT(*) AS count,
				COUNT(DISTINCT role) AS distinct_roles,
				COALESCE(SUM(total_paid), 0) AS total_paid
			FROM workers`).Scan(&figures.Workers).Error; err != nil {
			return err
		}

		if err := tx.Raw(`SELECT COUNT(*) AS count,
				COALESCE(AVG(rating), 0) AS average_rating
			FROM vendors`).Scan(&figures.Vendors).Error; err != nil {
			return err
		}

		if err := tx.Raw(`SELECT COALESCE(category, '') AS category, COUNT(*) AS count
			FROM vendors GROUP BY COALESCE(category, '')`).Scan(&figures.VendorCategories).Error; err != nil {
			return err
		}

		return tx.Raw(`SELECT COUNT(*) AS count,
				COALESCE(SUM(CASE WHEN quantity > 0 AND quantity <= min_stock THEN 1 ELSE 0 END), 0) AS low_stock,
				COALESCE(SUM(CASE WHEN quantity <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock,
				COALESCE(SUM(quantity * unit_price), 0) AS total_value
			FROM inventory_items`).Scan(&figures.Inventory).Error
	}, opts...)
	if err != nil {
		return nil, translateError(err)
	}
	return figures, nil
}
