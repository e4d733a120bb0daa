// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides
// type-safe access to the settings needed by the server, the task
// handlers, and the metrics endpoint.
package config
