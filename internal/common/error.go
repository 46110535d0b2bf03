// Package common defines sentinel errors shared by the store, the service
// layer and both presentation layers. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorValidation = errors.New("validation error")

	// Store lifecycle errors.
	ErrorUnsupportedDSN = errors.New("unsupported database dsn")
)
