package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"tempus/internal/config"
	"tempus/internal/logging"
	"tempus/internal/services"
)

// App holds the configured store and the resources the commands share
type App struct {
	config  *config.Config
	store   services.RecordStore
	closers []io.Closer
}

// NewApp sets up logging and opens the configured database
func NewApp(cfg *config.Config) (*App, error) {
	level := logging.ParseLevel(cfg.Logging.Level)
	if cfg.Application.Verbose {
		level = slog.LevelDebug
	}
	logCloser, err := logging.Setup(cfg.Logging.File, level)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	logging.Logger().Info("database opened", slog.String("path", cfg.GetDatabasePath()))

	app := NewAppWithStore(cfg, services.NewEntryService(repo, cfg))
	app.closers = append(app.closers, repo, logCloser)
	return app, nil
}

// NewAppWithStore creates an App over an existing store
func NewAppWithStore(cfg *config.Config, store services.RecordStore) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{config: cfg, store: store}
}

// Container returns the services the screens depend on
func (a *App) Container() services.ServiceContainer {
	return services.ServiceContainer{Store: a.store, Location: time.Local}
}

// Config returns the effective configuration
func (a *App) Config() *config.Config {
	return a.config
}

// Close releases the database and the log file, in that order
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
