// Package testutil provides common test utilities for the sitebuild backend.
// It contains helpers for opening disposable databases, building mock
// connections and driving gin handlers.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sitebuild/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a postgres-dialect mock database.
// The caller is responsible for calling Close() when done.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open GORM connection")

	return &MockDB{
		DB:    gormDB,
		Mock:  mock,
		SqlDB: mockDB,
	}
}

// Close closes the mock database connection.
func (m *MockDB) Close() error {
	return m.SqlDB.Close()
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	err := m.Mock.ExpectationsWereMet()
	require.NoError(t, err, "Unmet database expectations")
}

// NewSQLiteDB opens a migrated SQLite database in a per-test temp dir.
// It is closed automatically when the test ends.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "sitebuild.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err, "Failed to open SQLite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, persistence.AutoMigrate(db), "Failed to migrate schema")
	return db
}

// Store bundles the GORM repositories and transaction scope over one database.
type Store struct {
	DB          *gorm.DB
	Scope       *persistence.GormTransactionScope
	Projects    *persistence.GormProjectRepository
	Expenses    *persistence.GormExpenseRepository
	Workers     *persistence.GormWorkerRepository
	Assignments *persistence.GormAssignmentRepository
	Payments    *persistence.GormPaymentRepository
	Vendors     *persistence.GormVendorRepository
	Inventory   *persistence.GormItemRepository
	Figures     *persistence.GormFiguresRepository
}

// NewStore wires every repository against db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:          db,
		Scope:       persistence.NewGormTransactionScope(db),
		Projects:    persistence.NewGormProjectRepository(db),
		Expenses:    persistence.NewGormExpenseRepository(db),
		Workers:     persistence.NewGormWorkerRepository(db),
		Assignments: persistence.NewGormAssignmentRepository(db),
		Payments:    persistence.NewGormPaymentRepository(db),
		Vendors:     persistence.NewGormVendorRepository(db),
		Inventory:   persistence.NewGormItemRepository(db),
		Figures:     persistence.NewGormFiguresRepository(db),
	}
}

// NewSQLiteStore is NewStore over a fresh SQLite database.
func NewSQLiteStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewSQLiteDB(t))
}

// CountRows counts the rows of a table, optionally filtered.
func CountRows(t *testing.T, db *gorm.DB, table string, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Table(table)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// ContextWithTimeout creates a context with a timeout for tests.
func ContextWithTimeout(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}
