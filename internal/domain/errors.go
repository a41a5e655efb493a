package domain

import "errors"

// Domain errors represent fatal configuration conditions. They are raised
// before any chunk is dispatched and can be checked with errors.Is.
var (
	// ErrUnknownBackend is returned when a backend name does not match a
	// supported ingestion backend.
	ErrUnknownBackend = errors.New("tsload: unknown backend")

	// ErrChunkSize is returned when the configured chunk size is not positive.
	ErrChunkSize = errors.New("tsload: chunk size must be positive")

	// ErrWorkerCount is returned when the configured worker count is below one.
	ErrWorkerCount = errors.New("tsload: worker count must be at least one")
)
