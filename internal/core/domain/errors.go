package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a draft failed validation before any
	// store write. The wrapped message names the failing field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSource indicates a source identifier with no registered adapter.
	ErrUnknownSource = errors.New("unknown source")
)
