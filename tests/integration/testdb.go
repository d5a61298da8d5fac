//go:build integration

// Package integration runs the repositories and services against a real
// PostgreSQL started with testcontainers, migrated with the SQL files.
package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sitebuild/backend/internal/infrastructure/migration"
	"github.com/sitebuild/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated Postgres database owned by one test
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
	Store *testutil.Store
}

// NewTestDB starts a fresh PostgreSQL container, applies every migration and
// returns the repositories over it. The container is removed when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests need docker; skipped with -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("sitebuild_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err, "Failed to connect to PostgreSQL")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tdb := &TestDB{
		DB:    db,
		SqlDB: sqlDB,
		DSN:   dsn,
		Store: testutil.NewStore(db),
	}
	require.NoError(t, tdb.Migrator(t).Up(), "Failed to run migrations")
	return tdb
}

// Migrator returns a migrator over a separate connection, so closing it does
// not close the test's pool
func (tdb *TestDB) Migrator(t *testing.T) *migration.Migrator {
	t.Helper()
	conn, err := sql.Open("pgx", tdb.DSN)
	require.NoError(t, err)
	m, err := migration.New(conn, "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}
