package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/service/auth"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped invalid token", fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken), http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"missing owner", service.ErrMissingOwner, http.StatusUnauthorized},
		{"product not found", store.ErrProductNotFound, http.StatusNotFound},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"validation error", domain.NewValidationError("name", "is required", nil), http.StatusBadRequest},
		{"invalid body", fmt.Errorf("%w: eof", shared.ErrInvalidRequestBody), http.StatusBadRequest},
		{"category conflict", store.ErrCategoryExists, http.StatusBadRequest},
		{"email conflict", store.ErrEmailExists, http.StatusBadRequest},
		{"foreign key violation", fmt.Errorf("%w: foreign key violation (products_created_by_fkey)", store.ErrInvalidEntity), http.StatusBadRequest},
		{"value out of range", fmt.Errorf("%w: numeric value out of range (quantity)", store.ErrInvalidEntity), http.StatusBadRequest},
		{"service error wrapping unknown", service.NewServiceError("product", "list", errors.New("boom")), http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Product not found", GetSafeErrorMessage(store.ErrProductNotFound))
	assert.Equal(t, "A category with this name already exists", GetSafeErrorMessage(store.ErrCategoryExists))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, "Invalid data", GetSafeErrorMessage(fmt.Errorf("%w: invalid character (name)", store.ErrInvalidEntity)))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("pq: relation \"products\" does not exist")))
}

func TestHandleAPIError(t *testing.T) {
	t.Run("validation error carries fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)

		HandleAPIError(w, r, domain.ValidationErrorFromFields(map[string]string{
			"categories[0].name": "is required",
		}), "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Validation failed", resp.Error)
		assert.Equal(t, "is required", resp.Fields["categories[0].name"])
	})

	t.Run("internal error uses fallback and hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(w, r, errors.New("connection to 10.0.0.5 refused"), "Failed to list products")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to list products")
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
	})

	t.Run("fallback ignored for client errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(w, r, store.ErrStockNotFound, "Failed to update stock")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Stock not found")
	})
}
