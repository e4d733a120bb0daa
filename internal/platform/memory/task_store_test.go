package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryTaskStore_Empty(t *testing.T) {
	s := NewMemoryTaskStore(nil, discardLogger())

	tasks := s.List(context.Background())
	require.NotNil(t, tasks, "List should return an empty slice, not nil")
	assert.Empty(t, tasks)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryTaskStore_AppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore(nil, discardLogger())

	want := make([]domain.Task, 0, 10)
	for i := 0; i < 10; i++ {
		task := domain.NewTask(fmt.Sprintf("task-%d", i), "desc", "2024-01-01")
		want = append(want, task)
		s.Append(ctx, task)
	}

	assert.Equal(t, want, s.List(ctx))
	assert.Equal(t, 10, s.Len())
}

func TestMemoryTaskStore_NoDeduplication(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore(nil, discardLogger())
	task := domain.NewTask("Buy milk", "2% milk", "2024-01-01")

	s.Append(ctx, task)
	s.Append(ctx, task)

	tasks := s.List(ctx)
	require.Len(t, tasks, 2)
	assert.Equal(t, task, tasks[0])
	assert.Equal(t, task, tasks[1])
}

func TestMemoryTaskStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore(nil, discardLogger())
	s.Append(ctx, domain.NewTask("original", "", ""))

	tasks := s.List(ctx)
	tasks[0].Name = "changed"

	assert.Equal(t, "original", s.List(ctx)[0].Name)
}

func TestMemoryTaskStore_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore(nil, discardLogger())

	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Append(ctx, domain.NewTask(fmt.Sprintf("w%d-%d", w, i), "", ""))
				_ = s.List(ctx)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, s.Len())

	// Each writer's tasks keep their relative order.
	next := make(map[int]int)
	for _, task := range s.List(ctx) {
		var w, i int
		_, err := fmt.Sscanf(task.Name, "w%d-%d", &w, &i)
		require.NoError(t, err)
		assert.Equal(t, next[w], i, "writer %d out of order", w)
		next[w] = i + 1
	}
}

func TestMemoryTaskStore_EmitsEvents(t *testing.T) {
	ctx := context.Background()
	emitter := events.NewInMemoryEventEmitter(discardLogger())

	var received []*events.TaskAppendedEvent
	emitter.RegisterHandler(events.EventHandlerFunc(func(ctx context.Context, event *events.TaskAppendedEvent) error {
		received = append(received, event)
		return nil
	}))

	s := NewMemoryTaskStore(emitter, discardLogger())
	s.Append(ctx, domain.NewTask("first", "", ""))
	s.Append(ctx, domain.NewTask("second", "", ""))

	require.Len(t, received, 2)
	assert.Equal(t, "first", received[0].Task.Name)
	assert.Equal(t, 0, received[0].Position)
	assert.Equal(t, "second", received[1].Task.Name)
	assert.Equal(t, 1, received[1].Position)
}

func TestMemoryTaskStore_EmitterErrorDoesNotFailAppend(t *testing.T) {
	ctx := context.Background()
	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(events.EventHandlerFunc(func(ctx context.Context, event *events.TaskAppendedEvent) error {
		return errors.New("boom")
	}))

	s := NewMemoryTaskStore(emitter, discardLogger())
	s.Append(ctx, domain.NewTask("kept", "", ""))

	assert.Equal(t, 1, s.Len())
}

func TestNewMemoryTaskStore_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		s := NewMemoryTaskStore(nil, nil)
		s.Append(context.Background(), domain.Task{})
	})
}
