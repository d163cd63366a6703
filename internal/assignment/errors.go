package assignment

import "errors"

// Engine failure taxonomy. Every failure is per-request; nothing here is
// fatal to the process. Handlers map these onto HTTP status codes with
// errors.Is.
var (
	// ErrValidation marks a rejected operation: bad status value, unknown
	// category, worker lacking the required skill. No state is mutated.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an id that did not resolve to a complaint or user.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
)
