package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sitebuild/backend/internal/app"
	"github.com/sitebuild/backend/internal/application/seed"
	"github.com/sitebuild/backend/internal/infrastructure/config"
	"github.com/sitebuild/backend/internal/infrastructure/logger"
	"github.com/sitebuild/backend/internal/infrastructure/migration"
	"github.com/sitebuild/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Database.Driver == config.DriverSQLite {
				return c.withDatabase(func(db *persistence.Database) error {
					if err := persistence.AutoMigrate(db.DB); err != nil {
						return err
					}
					c.log.Info("SQLite schema is up to date", zap.String("path", c.cfg.Database.SQLitePath))
					return nil
				})
			}
			return c.withMigrator(func(m *migration.Migrator) error {
				return m.Up()
			})
		},
	}
}

func (c *cli) downCmd() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration (drops all data)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("down drops every table; rerun with --confirm")
			}
			return c.withMigrator(func(m *migration.Migrator) error {
				return m.Down()
			})
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm rolling back all migrations")
	return cmd
}

func (c *cli) stepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps <n>",
		Short: "Apply n migrations (positive = up, negative = down)",
		Example: `  migrate steps 1
  migrate steps -- -1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n == 0 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error {
				return m.Steps(n)
			})
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					c.log.Info("No migrations applied")
					return nil
				}
				c.log.Info("Current migration version",
					zap.Uint("version", version),
					zap.Bool("dirty", dirty),
				)
				return nil
			})
		},
	}
}

func (c *cli) forceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Mark a version as applied without running it (clears a dirty state)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error {
				return m.Force(version)
			})
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create a new numbered up/down migration pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.scaffoldDir()
			if err != nil {
				return err
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}

			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			c.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the migrations in the migrations directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.scaffoldDir()
			if err != nil {
				return err
			}
			migrations, err := migration.ListMigrations(dir)
			if err != nil {
				return err
			}
			if len(migrations) == 0 {
				c.log.Info("No migrations found", zap.String("dir", dir))
				return nil
			}
			for _, m := range migrations {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", m)
			}
			return nil
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample projects, workers, vendors and inventory into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDatabase(func(db *persistence.Database) error {
				if c.cfg.Database.Driver == config.DriverSQLite || c.cfg.Database.AutoMigrate {
					if err := persistence.AutoMigrate(db.DB); err != nil {
						return err
					}
				}

				services := app.NewServices(db.DB, nil, c.cfg.App.Currency)
				summary, err := seed.New(services.Seed(), c.log).Run(context.Background())
				if err != nil {
					return err
				}
				c.log.Info("Seed completed",
					zap.Int("projects", summary.Projects),
					zap.Int("workers", summary.Workers),
					zap.Int("assignments", summary.Assignments),
					zap.Int("vendors", summary.Vendors),
					zap.Int("items", summary.Items),
				)
				return nil
			})
		},
	}
}

// withDatabase opens the configured database through gorm
func (c *cli) withDatabase(fn func(db *persistence.Database) error) error {
	gormLogger := logger.NewGormLogger(c.log, logger.MapGormLogLevel(c.logLevel),
		logger.WithSlowThreshold(c.cfg.Database.SlowQueryThreshold()))
	db, err := persistence.NewDatabaseWithCustomLogger(&c.cfg.Database, gormLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			c.log.Warn("Failed to close database", zap.Error(err))
		}
	}()
	return fn(db)
}
