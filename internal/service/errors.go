// Package service composes the store into the cohort operations: sprint
// registry, submission tracker, pairing matcher and task board. Services
// never call each other; callers compose them through sprint and member ids.
package service

import (
	"errors"
	"fmt"

	"github.com/akyairhashvil/cohortops/internal/database"
)

// Store-level sentinels, re-exported so callers need not import database.
var (
	ErrNotFound            = database.ErrNotFound
	ErrConstraintViolation = database.ErrConstraintViolation
	ErrInvalidTransition   = database.ErrInvalidTransition
	ErrNoAvailablePartner  = database.ErrNoAvailablePartner
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports an input that fails a length or shape rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
