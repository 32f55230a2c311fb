package services

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/samedayramps/app-samedayramps/pkg/errors"
)

// ValidationError carries per-field, human-readable validation messages.
// It is returned to the caller before any side effect happens.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for a field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field failed validation
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Err returns e as an error when any field failed, nil otherwise.
// Returning a plain nil avoids the typed-nil error pitfall.
func (e *ValidationError) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AsValidationError returns the *ValidationError inside err, if any
func AsValidationError(err error) (*ValidationError, bool) {
	ve, ok := err.(*ValidationError)
	return ve, ok
}

// Shared repository error constructors. Persistence failures are logged with
// detail at the call site and converted into these generic, user-safe errors.

func notFound(what string) error {
	return apperrors.New(apperrors.ErrCodeNotFound, what+" not found")
}

func conflict(message string) error {
	return apperrors.New(apperrors.ErrCodeConflict, message)
}

func internal(message string, err error) error {
	return apperrors.Wrap(apperrors.ErrCodeInternalError, message, err)
}

func unauthorized(message string) error {
	return apperrors.New(apperrors.ErrCodeUnauthorized, message)
}
