// Package domain contains the core business entities of the application.
// It represents the heart of the system, independent of any specific
// infrastructure or delivery mechanism.
package domain
