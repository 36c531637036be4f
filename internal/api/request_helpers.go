package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
)

// getUserIDFromContext extracts the authenticated user's UUID from the request context.
// The user ID is expected to be placed in the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.GetUserID(r.Context())
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// requireUserID writes a 401 response and returns false when the request
// carries no authenticated user.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, false
	}
	return userID, true
}

// handleUserIDAndPathID is a composite helper that extracts both the user ID
// from context and the integer "id" path parameter. It writes an error
// response if either extraction fails. A malformed id cannot name an
// existing row and is answered like a missing one.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	notFound error,
) (uuid.UUID, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return uuid.Nil, 0, false
	}

	id, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid path id", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, notFound, "")
		return uuid.Nil, 0, false
	}

	return userID, id, true
}

// parseCategoryIDs parses the comma-separated "categories" query parameter.
// An absent or blank value means no filter. Empty items are skipped, but a
// value must name at least one id; anything that is not a positive integer
// is a validation error.
func parseCategoryIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	invalid := domain.NewValidationError("categories", "must be a comma-separated list of ids", domain.ErrInvalidID)
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, invalid
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, invalid
	}
	return ids, nil
}

// parseAssignedOnly parses the "assigned_only" query parameter, which must be
// absent, "0" or "1".
func parseAssignedOnly(raw string) (bool, error) {
	switch raw {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, domain.NewValidationError("assigned_only", "must be 0 or 1", nil)
	}
}
