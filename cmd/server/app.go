package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/config"
	"github.com/phrazzld/task-tracker/internal/events"
	"github.com/phrazzld/task-tracker/internal/platform/memory"
	"github.com/phrazzld/task-tracker/internal/platform/metrics"
	"github.com/phrazzld/task-tracker/internal/view"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore    *memory.MemoryTaskStore
	renderer     *view.Renderer
	eventEmitter *events.InMemoryEventEmitter

	// nil when metrics are disabled
	metrics *metrics.Metrics
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	if cfg.Tasks.TemplatePath != "" {
		app.renderer, err = view.NewRendererFromFile(cfg.Tasks.TemplatePath)
	} else {
		app.renderer, err = view.NewRenderer()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditLogHandler(logger))

	app.taskStore = memory.NewMemoryTaskStore(app.eventEmitter, logger)

	if cfg.Metrics.Enabled {
		app.metrics = metrics.New(metrics.NewRegistry(), app.taskStore.Len)
		app.eventEmitter.RegisterHandler(app.metrics)
		logger.Info("Metrics enabled", "path", cfg.Metrics.Path)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed", "tasks_in_memory", app.taskStore.Len())
}
