package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Quantity *int   `json:"quantity" validate:"required,min=0"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body ignores unknown fields", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","quantity":3,"created_by":"x"}`))
		var req testRequest
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &req))
		assert.Equal(t, "a@b.co", req.Email)
		assert.Equal(t, 3, *req.Quantity)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))
		var req testRequest
		assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &req), ErrInvalidRequestBody)
	})

	t.Run("wrong type is a field error", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":"lots"}`))
		var req testRequest
		err := DecodeJSON(httptest.NewRecorder(), r, &req)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "quantity")
	})
}

func TestValidateRequest(t *testing.T) {
	qty := -1
	err := ValidateRequest(testRequest{Email: "nope", Quantity: &qty})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "is not a valid email address", validationErr.Fields["email"])
	assert.Equal(t, "is too small", validationErr.Fields["quantity"])

	err = ValidateRequest(testRequest{})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "is required", validationErr.Fields["email"])
	assert.Equal(t, "is required", validationErr.Fields["quantity"])

	qty = 0
	assert.NoError(t, ValidateRequest(testRequest{Email: "a@b.co", Quantity: &qty}))
}
