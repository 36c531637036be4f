package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every store implementation. The entity-specific
// variants wrap one of the generic ones so callers can match either.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrInvalidEntity is a row rejected before storage or by a foreign key,
	// check or not-null constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// Not found, or owned by another user.
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrStockNotFound    = fmt.Errorf("%w: stock", ErrNotFound)

	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrCategoryExists = fmt.Errorf("%w: category name", ErrDuplicate)
	ErrStockExists    = fmt.Errorf("%w: product stock", ErrDuplicate)
)

// IsNotFoundError reports whether err wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err wraps ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "product")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
