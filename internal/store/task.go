package store

import (
	"context"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// TaskStore defines the interface for the ordered task collection.
// Neither operation can fail.
type TaskStore interface {
	// Append adds the task to the end of the sequence.
	Append(ctx context.Context, task domain.Task)

	// List returns every stored task in insertion order.
	// Returns an empty, non-nil slice when no tasks have been appended.
	// The returned slice is owned by the caller.
	List(ctx context.Context) []domain.Task
}
