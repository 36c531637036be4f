package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service/auth"
	"github.com/phrazzld/catalog-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in a *ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrMissingOwner indicates a call without an authenticated owner.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrMissingOwner = errors.New("owner is required")
)

// ServiceError wraps an unexpected failure with the service and operation
// that produced it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}

// wrapError returns expected errors unchanged so that callers can map them
// directly, and wraps everything else in a *ServiceError.
func wrapError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	if isExpected(err) {
		return err
	}
	return NewServiceError(service, op, err)
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		store.IsNotFoundError(err) ||
		store.IsDuplicateError(err) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, auth.ErrInvalidCredentials) ||
		errors.Is(err, ErrMissingOwner)
}
