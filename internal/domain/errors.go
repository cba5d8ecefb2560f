package domain

import "github.com/pkg/errors"

// Error kinds surfaced to the presentation layer. Persistence failures are
// never surfaced; the storage layer falls back to defaults instead.
var (
	// ErrInvalidInput indicates bad or missing user input, such as a
	// non-numeric weight or a zero price at the daily gate.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates an operation on an unknown wage id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation indicates an operation that is never allowed,
	// such as deleting the last remaining wage entry.
	ErrInvalidOperation = errors.New("invalid operation")
)
