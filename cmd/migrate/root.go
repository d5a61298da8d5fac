package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/sitebuild/backend/internal/infrastructure/config"
	"github.com/sitebuild/backend/internal/infrastructure/logger"
	"github.com/sitebuild/backend/internal/infrastructure/migration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

// cli carries state shared by every subcommand
type cli struct {
	migrationsPath string
	logLevel       string

	log *zap.Logger
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Site build database migration tool",
		SilenceUsage: true,
		Long: `Applies the versioned Postgres schema, scaffolds new migrations and
loads the sample data set.

With database.driver=sqlite, "up" creates the schema from the entity
definitions instead of the SQL files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = logger.Sync(c.log)
			}
		},
	}

	root.PersistentFlags().StringVar(&c.migrationsPath, "path", "",
		"Directory of .sql migrations (default: the copy compiled into this binary; create/list use ./migrations)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(
		c.upCmd(),
		c.downCmd(),
		c.stepsCmd(),
		c.versionCmd(),
		c.forceCmd(),
		c.createCmd(),
		c.listCmd(),
		c.seedCmd(),
	)

	root.SetErrPrefix("migrate:")
	root.SetOut(os.Stdout)
	return root
}

func (c *cli) init() error {
	log, err := logger.New(&logger.Config{
		Level:      c.logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.log = log

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.cfg = cfg
	return nil
}

// scaffoldDir resolves the directory create/list work on
func (c *cli) scaffoldDir() (string, error) {
	dir := c.migrationsPath
	if dir == "" {
		dir = defaultMigrationsDir
	}
	return filepath.Abs(dir)
}

// withMigrator opens a Postgres connection and runs fn with a migrator over it
func (c *cli) withMigrator(fn func(m *migration.Migrator) error) error {
	if c.cfg.Database.Driver == config.DriverSQLite {
		return errors.New("SQL migrations target postgres; with sqlite only \"up\" and \"seed\" are supported")
	}

	path := c.migrationsPath
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}

	db, err := sql.Open("postgres", c.cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, path, c.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			c.log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	return fn(m)
}
