// Package api handles incoming HTTP requests for the task tracker: it
// extracts form input, calls the task store, and renders or redirects.
// It acts as an adapter between HTTP clients and the store and view
// packages.
package api
