package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/service/auth"
	"github.com/phrazzld/catalog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, service.ErrMissingOwner):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Validation and integrity conflicts are both client errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidRequestBody),
		errors.Is(err, store.ErrInvalidEntity),
		store.IsDuplicateError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, service.ErrMissingOwner):
		return "Authentication required"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, store.ErrStockNotFound):
		return "Stock not found"
	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "A user with this email already exists"
	case errors.Is(err, store.ErrCategoryExists):
		return "A category with this name already exists"
	case errors.Is(err, store.ErrStockExists):
		return "This product already has a stock entry"
	case store.IsDuplicateError(err):
		return "Entity already exists"

	case errors.Is(err, shared.ErrInvalidRequestBody):
		return "Invalid request format"
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err: status and message come
// from MapErrorToStatusCode and GetSafeErrorMessage, validation errors add
// their field messages. A non-empty fallbackMsg replaces the generic message
// of unexpected (500) errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMsg != "" {
		message = fallbackMsg
	}

	var opts []shared.ResponseOption
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		opts = append(opts, shared.WithFields(validationErr.Fields))
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
