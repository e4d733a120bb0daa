package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-tracker/internal/domain"
)

// TaskAppendedEvent is emitted after a task has been added to the store.
type TaskAppendedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Task is a copy of the appended task
	Task domain.Task `json:"task"`

	// Position is the zero-based index of the task in the store
	Position int `json:"position"`

	// OccurredAt is the timestamp when the task was appended
	OccurredAt time.Time `json:"occurred_at"`
}

// NewTaskAppendedEvent creates an event for a task stored at the given position.
func NewTaskAppendedEvent(task domain.Task, position int) *TaskAppendedEvent {
	return &TaskAppendedEvent{
		ID:         uuid.New(),
		Task:       task,
		Position:   position,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskAppendedEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the store to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskAppendedEvent) error
}

// EventHandlerFunc adapts an ordinary function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *TaskAppendedEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *TaskAppendedEvent) error {
	return f(ctx, event)
}
