package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hubertnosek100/hmediator/internal/adapters/metrics"
	"github.com/hubertnosek100/hmediator/internal/adapters/persistence"
	applog "github.com/hubertnosek100/hmediator/internal/application/logging"
	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/application/ping"
	"github.com/hubertnosek100/hmediator/internal/application/users"
	"github.com/hubertnosek100/hmediator/internal/domain/user"
	"github.com/hubertnosek100/hmediator/internal/infrastructure/config"
	"github.com/hubertnosek100/hmediator/internal/infrastructure/container"
	"github.com/hubertnosek100/hmediator/internal/infrastructure/database"
	"github.com/hubertnosek100/hmediator/internal/infrastructure/logging"
)

// App holds the wired mediator and the resources behind it
type App struct {
	Config   *config.Config
	Mediator *mediator.Mediator
	Logger   *logging.ZapLogger

	db *gorm.DB
}

// NewApp wires config → logger → database → service container → registry → mediator
func NewApp(cfg *config.Config) (*App, error) {
	logger, err := logging.NewZapLogger(&cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	services := container.New()
	container.Provide[user.Store](services, persistence.NewGormUserRepository(db))
	container.Provide[user.Clock](services, user.SystemClock{})

	registry, err := NewRegistry(&cfg.Mediator)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	opts := []mediator.Option{mediator.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewDispatchMetricsCollector(cfg.Metrics.Namespace)
		if err := collector.Register(); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to register dispatch metrics: %w", err)
		}
		opts = append(opts, mediator.WithObserver(collector))
	}

	med := mediator.New(registry, mediator.NewServiceLocator(services.Lookup), opts...)

	logger.Log(applog.LevelDebug, "[App] Mediator initialized", map[string]interface{}{
		"scope":     registry.Scope().String(),
		"contracts": len(registry.Contracts()),
		"services":  services.Len(),
	})

	return &App{
		Config:   cfg,
		Mediator: med,
		Logger:   logger,
		db:       db,
	}, nil
}

// NewRegistry builds the handler registry from the mediator configuration
// and registers every handler the CLI exposes.
func NewRegistry(cfg *config.MediatorConfig) (*mediator.Registry, error) {
	scope, err := mediator.ParseScope(cfg.Scope)
	if err != nil {
		return nil, err
	}

	opts := []mediator.RegistryOption{mediator.WithScope(scope)}
	if cfg.EagerAmbiguityCheck {
		opts = append(opts, mediator.WithEagerAmbiguityCheck())
	}
	registry := mediator.NewRegistry(opts...)

	if err := ping.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register Ping handler: %w", err)
	}
	if err := users.Register(registry); err != nil {
		return nil, err
	}

	if cfg.ValidateOnStartup {
		if err := registry.Validate(); err != nil {
			return nil, fmt.Errorf("handler registry is inconsistent: %w", err)
		}
	}

	return registry, nil
}

// Context returns a background context carrying the application logger
func (a *App) Context() context.Context {
	return applog.WithLogger(context.Background(), a.Logger)
}

// Close releases the database and flushes the logger
func (a *App) Close() error {
	_ = a.Logger.Sync()
	if a.db == nil {
		return nil
	}
	return database.Close(a.db)
}
