// Package store defines interfaces for task storage operations.
// These interfaces abstract the underlying storage mechanism from the
// HTTP layer, so handlers depend only on the append/list contract.
package store
