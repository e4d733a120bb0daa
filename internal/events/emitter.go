package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter dispatches events synchronously to its handlers, in
// registration order, on the caller's goroutine.
type InMemoryEventEmitter struct {
	mu sync.RWMutex
	// replaced wholesale on registration so EmitEvent can iterate without
	// holding the lock
	handlers []EventHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler adds handler to the end of the dispatch list.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := make([]EventHandler, len(e.handlers), len(e.handlers)+1)
	copy(next, e.handlers)
	e.handlers = append(next, handler)
}

// HandlerCount returns the number of registered handlers.
func (e *InMemoryEventEmitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// EmitEvent delivers event to every handler. A failing or panicking
// handler does not stop delivery to the rest; all failures are joined into
// the returned error.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *TaskAppendedEvent) error {
	e.mu.RLock()
	handlers := e.handlers
	e.mu.RUnlock()

	var errs []error
	for i, handler := range handlers {
		if err := e.dispatch(ctx, handler, event); err != nil {
			errs = append(errs, fmt.Errorf("handler %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (e *InMemoryEventEmitter) dispatch(ctx context.Context, handler EventHandler, event *TaskAppendedEvent) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("event handler panicked",
				"event_id", event.ID,
				"panic", rec)
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return handler.HandleEvent(ctx, event)
}
