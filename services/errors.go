package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced across the service boundary. Controllers map them
// to HTTP statuses; services never panic or leak raw gorm errors for these
// cases.
var (
	// ErrForbidden: the acting account may not mutate reservations.
	ErrForbidden = errors.New("forbidden")

	// ErrOverlap: the requested dates collide with a non-cancelled
	// reservation on the same unit, or the overlap check itself failed and
	// was treated as a collision.
	ErrOverlap = errors.New("reservation_overlap")

	ErrNotFound = errors.New("not_found")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
