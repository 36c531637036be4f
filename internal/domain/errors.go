package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is always reachable through errors.Is on a *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when no authenticated identity is available.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError reports one or more invalid fields. Fields maps a field
// path (e.g. "name", "categories[1].name") to a human-readable message.
type ValidationError struct {
	Fields map[string]string
	Err    error
}

// NewValidationError creates a ValidationError for a single field.
// err narrows the cause (e.g. ErrInvalidID); nil means plain ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Fields: map[string]string{field: message},
		Err:    err,
	}
}

// ValidationErrorFromFields returns nil when fields is empty, otherwise a
// *ValidationError wrapping ErrValidation.
func ValidationErrorFromFields(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Error implements the error interface. Fields are listed in sorted order so
// that messages are stable.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Unwrap exposes both ErrValidation and the narrower cause to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || errors.Is(e.Err, ErrValidation) {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}
