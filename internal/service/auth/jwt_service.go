package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and verifies the bearer tokens returned by the token
// endpoint.
type JWTService interface {
	// GenerateToken signs an access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies signature, type and validity window of
	// tokenString. Failures wrap one of the sentinel errors in this package.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of an access token.
type Claims struct {
	UserID    uuid.UUID
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
