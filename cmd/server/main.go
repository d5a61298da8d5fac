// Command server runs the site-build HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitebuild/backend/internal/app"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/infrastructure/cache"
	"github.com/sitebuild/backend/internal/infrastructure/config"
	"github.com/sitebuild/backend/internal/infrastructure/logger"
	"github.com/sitebuild/backend/internal/infrastructure/metrics"
	"github.com/sitebuild/backend/internal/infrastructure/persistence"
	"github.com/sitebuild/backend/internal/infrastructure/telemetry"
	"github.com/sitebuild/backend/internal/interfaces/http/handler"
	"github.com/sitebuild/backend/internal/interfaces/http/middleware"
	"github.com/sitebuild/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting site build backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer provider shutdown failed", zap.Error(err))
		}
	}()

	var m *metrics.Metrics
	gormOpts := []logger.GormLoggerOption{logger.WithSlowThreshold(cfg.Database.SlowQueryThreshold())}
	if cfg.Metrics.Enabled {
		m = metrics.New()
		gormOpts = append(gormOpts, logger.WithSlowQueryHook(m.SlowQuery))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), gormOpts...)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("dialect", db.Dialect()))

	if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DriverSQLite {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			return err
		}
	}

	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Database.SlowQueryThreshold(),
		DBSystem:        dbSystem,
	}, log)
	if err := plugin.Register(db.DB); err != nil {
		return err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	if m != nil {
		if err := m.RegisterDB(sqlDB); err != nil {
			return err
		}
	}

	var store shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		store, err = cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(cfg.App.Env != "production"),
		).CreateStore(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Warn("Failed to close idempotency store", zap.Error(err))
			}
		}()
	}
	idempotency := middleware.Idempotency(store, cfg.Idempotency.TTL)

	services := app.NewServices(db.DB, m, cfg.App.Currency)

	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		HTTP:   cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
		Production:  cfg.App.Env == "production",
	})
	if err != nil {
		return err
	}

	router.NewRouter(engine).
		RegisterRoot(handler.NewHealthHandler(sqlDB)).
		Register(
			handler.NewProjectHandler(services.Projects),
			handler.NewExpenseHandler(services.Expenses, idempotency),
			handler.NewWorkerHandler(services.Workers),
			handler.NewLedgerHandler(services.Ledger, idempotency),
			handler.NewVendorHandler(services.Vendors),
			handler.NewInventoryHandler(services.Inventory),
			handler.NewAnalyticsHandler(services.Dashboard),
		).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server exited gracefully")
	return nil
}
