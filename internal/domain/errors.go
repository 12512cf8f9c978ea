package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no entity matched the id/slug (and active filter).
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a unique index rejects a write.
	ErrConflict = errors.New("conflict")
	// ErrSlugTaken is the conflict reported when another hotel already owns the slug.
	ErrSlugTaken = fmt.Errorf("%w: slug already taken", ErrConflict)
)

// Invalid wraps ErrValidation with a client-facing detail.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
