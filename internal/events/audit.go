package events

import (
	"context"
	"log/slog"
)

// AuditLogHandler writes one log line for every appended task.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler that logs through logger.
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		logger: logger.With("component", "task_audit"),
	}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *TaskAppendedEvent) error {
	h.logger.InfoContext(ctx, "task appended",
		"event_id", event.ID,
		"position", event.Position,
		"name", event.Task.Name,
		"due_date", event.Task.DueDate,
		"blank", event.Task.IsBlank())
	return nil
}
