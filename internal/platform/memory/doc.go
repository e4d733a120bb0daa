// Package memory provides process-local implementations of the store
// interfaces. Data held here is lost when the process exits.
package memory
