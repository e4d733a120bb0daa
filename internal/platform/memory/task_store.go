package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/events"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
)

// MemoryTaskStore implements the store.TaskStore interface with a slice
// guarded by a read/write mutex.
type MemoryTaskStore struct {
	mu      sync.RWMutex
	tasks   []domain.Task
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewMemoryTaskStore creates an empty task store.
// If emitter is nil, appends are not published. If logger is nil, the
// default logger is used.
func NewMemoryTaskStore(emitter events.EventEmitter, logger *slog.Logger) *MemoryTaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryTaskStore{
		tasks:   make([]domain.Task, 0),
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

// Ensure MemoryTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// Append implements store.TaskStore.Append.
// The event is emitted after the lock is released; emitter failures are
// logged and otherwise ignored.
func (s *MemoryTaskStore) Append(ctx context.Context, task domain.Task) {
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	position := len(s.tasks) - 1
	s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("task stored", slog.Int("position", position))

	if s.emitter == nil {
		return
	}
	if err := s.emitter.EmitEvent(ctx, events.NewTaskAppendedEvent(task, position)); err != nil {
		log.Warn("task appended event not fully handled",
			slog.Int("position", position),
			slog.String("error", err.Error()))
	}
}

// List implements store.TaskStore.List.
func (s *MemoryTaskStore) List(ctx context.Context) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of stored tasks.
func (s *MemoryTaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
