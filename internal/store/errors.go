package store

import "errors"

var (
	// ErrValidation covers required fields missing from a create payload.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by every update or delete whose filter
	// matched no document. No write here no-ops silently.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned when a create would collide with an
	// already stored id or email.
	ErrDuplicate = errors.New("document already exists")
)
