package store

import "errors"

var (
	// ErrNotFound is returned when a query matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("already exists")
	// ErrUnavailable is returned by the null store family for writes that
	// cannot degrade to a no-op.
	ErrUnavailable = errors.New("store unavailable")
	// ErrInvalidInput is returned when a write is missing a required key.
	ErrInvalidInput = errors.New("invalid input")
)
