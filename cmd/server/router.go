package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-tracker/internal/api"
	apiMiddleware "github.com/phrazzld/task-tracker/internal/api/middleware"
)

const (
	tasksPath   = "/tasks"
	newTaskPath = "/tasks/new"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}

	taskHandler := api.NewTaskHandler(
		app.taskStore,
		app.renderer,
		api.TaskHandlerConfig{
			RedirectPath: app.config.Tasks.RedirectPath,
			ListPath:     tasksPath,
			NewTaskPath:  newTaskPath,
		},
		app.logger,
	)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, tasksPath, http.StatusFound)
	})

	r.Get(tasksPath, taskHandler.ListTasks)
	r.Post(tasksPath, taskHandler.CreateTask)
	r.Get(newTaskPath, taskHandler.NewTaskForm)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	if app.metrics != nil {
		r.Method(http.MethodGet, app.config.Metrics.Path, app.metrics.Handler())
	}

	return r
}
