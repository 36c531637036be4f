package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service/auth"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "user",
			op:       "register",
			err:      errors.New("database connection failed"),
			expected: "user service register operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "product",
			op:       "delete",
			err:      nil,
			expected: "product service delete operation failed",
		},
		{
			name:     "empty operation name",
			service:  "stock",
			op:       "",
			err:      errors.New("invalid input"),
			expected: "stock service  operation failed: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceErr := &ServiceError{
				Service: tt.service,
				Op:      tt.op,
				Err:     tt.err,
			}

			assert.Equal(t, tt.expected, serviceErr.Error())
		})
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	dbErr := errors.New("database error")
	serviceErr := NewServiceError("category", "list", dbErr)

	assert.Same(t, dbErr, serviceErr.Unwrap())
	assert.True(t, errors.Is(serviceErr, dbErr))
	assert.Nil(t, NewServiceError("category", "list", nil).Unwrap())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError("product", "get", nil))

	passThrough := []error{
		domain.NewValidationError("name", "is required", nil),
		store.ErrProductNotFound,
		fmt.Errorf("lookup: %w", store.ErrCategoryNotFound),
		store.ErrCategoryExists,
		fmt.Errorf("%w: foreign key violation (products_created_by_fkey)", store.ErrInvalidEntity),
		auth.ErrInvalidCredentials,
		ErrMissingOwner,
	}
	for _, err := range passThrough {
		t.Run(err.Error(), func(t *testing.T) {
			assert.Same(t, err, wrapError("product", "get", err))
		})
	}

	unexpected := errors.New("connection reset")
	wrapped := wrapError("product", "get", unexpected)
	var serviceErr *ServiceError
	assert.ErrorAs(t, wrapped, &serviceErr)
	assert.Equal(t, "product", serviceErr.Service)
	assert.Equal(t, "get", serviceErr.Op)
	assert.ErrorIs(t, wrapped, unexpected)
}
