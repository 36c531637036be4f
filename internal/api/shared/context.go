package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey namespaces values this package stores in a request context.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the per-request trace ID echoed in error responses.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the length of a trace ID in hex characters.
	TraceIDLength = 32
)

// SetTraceID returns ctx carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the trace ID carried by ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// GetUserID returns the authenticated user ID, or false when the context
// carries none (or only uuid.Nil).
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// newTraceID is a random UUID in compact hex form.
func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
