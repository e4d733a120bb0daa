// Package events provides in-process notification of task store changes.
//
// The store emits a TaskAppendedEvent after every append. Handlers such as
// the audit logger and the metrics collector subscribe through an
// EventEmitter, so the store never depends on them directly.
package events
