package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrJobNotFound is returned when no job exists for an id.
	ErrJobNotFound = errors.New("ingestion job not found")

	// ErrInvalidTransition is returned when a status change is not allowed from the job's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrFailFast aborts a job after the first unrecoverable record on a fail-fast job.
	ErrFailFast = errors.New("fail fast")
)

// FailFast wraps ErrFailFast with the reason that triggered it.
func FailFast(kind EntityKind, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrFailFast, kind, reason)
}

// ValidationError describes a record or request that failed validation.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation error: " + strings.Join(parts, "; ")
}
