package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/redact"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/phrazzld/task-tracker/internal/view"
)

// PageRenderer renders the HTML task pages.
type PageRenderer interface {
	RenderList(w io.Writer, page view.Page) error
	RenderForm(w io.Writer, page view.Page) error
}

// TaskListResponse is the JSON representation of the task list.
type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// TaskHandlerConfig holds the paths the handler links and redirects to.
type TaskHandlerConfig struct {
	// RedirectPath is the Location sent after a successful create.
	RedirectPath string
	// ListPath is the path of the list view and the create form's action.
	ListPath string
	// NewTaskPath is the path of the create form.
	NewTaskPath string
}

// TaskHandler handles the task list and create requests.
type TaskHandler struct {
	store    store.TaskStore
	renderer PageRenderer
	cfg      TaskHandlerConfig
	logger   *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// Panics if taskStore, renderer or logger is nil.
func NewTaskHandler(
	taskStore store.TaskStore,
	renderer PageRenderer,
	cfg TaskHandlerConfig,
	logger *slog.Logger,
) *TaskHandler {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	if cfg.ListPath == "" {
		cfg.ListPath = "/tasks"
	}
	if cfg.RedirectPath == "" {
		cfg.RedirectPath = cfg.ListPath
	}
	if cfg.NewTaskPath == "" {
		cfg.NewTaskPath = cfg.ListPath + "/new"
	}

	return &TaskHandler{
		store:    taskStore,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger.With("component", "task_handler"),
	}
}

// ListTasks handles GET /tasks.
// It renders every stored task, as HTML by default or as JSON when the
// client asks for it.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	tasks := h.store.List(r.Context())

	if wantsJSON(r) {
		shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks})
		return
	}

	h.renderHTML(w, r, log, func(out io.Writer) error {
		return h.renderer.RenderList(out, view.Page{
			Title:       "Tasks",
			Tasks:       tasks,
			FormAction:  h.cfg.ListPath,
			NewTaskPath: h.cfg.NewTaskPath,
		})
	})
}

// CreateTask handles POST /tasks.
// It appends a task built from the submitted fields and redirects to the
// list view. Input is never rejected: absent or unparseable fields are
// stored as empty strings.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := ParseTaskForm(w, r)
	if err != nil {
		log.Debug("request body could not be parsed, storing empty task",
			slog.String("error", err.Error()))
	}
	if missing := form.Missing(); len(missing) > 0 {
		log.Debug("task fields missing, defaulting to empty", slog.Any("fields", missing))
	}

	h.store.Append(r.Context(), form.Task())

	http.Redirect(w, r, h.cfg.RedirectPath, http.StatusFound)
}

// NewTaskForm handles GET /tasks/new.
func (h *TaskHandler) NewTaskForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	h.renderHTML(w, r, log, func(out io.Writer) error {
		return h.renderer.RenderForm(out, view.Page{
			Title:      "New task",
			FormAction: h.cfg.ListPath,
		})
	})
}

// renderHTML runs render and writes the page, or a 500 if rendering fails
// before anything reached the client.
func (h *TaskHandler) renderHTML(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	render func(io.Writer) error,
) {
	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
	ww.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := render(ww)
	if err == nil {
		return
	}

	if ww.Status() != 0 {
		// Headers are gone; the response can only be abandoned.
		log.Error("page write failed after response started",
			slog.String("path", r.URL.Path),
			slog.Int("bytes_written", ww.BytesWritten()),
			slog.String("error", redact.Error(err)))
		return
	}

	w.Header().Del("Content-Type")
	log.Debug("page render failed", slog.String("path", r.URL.Path))
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to render page", err)
}
