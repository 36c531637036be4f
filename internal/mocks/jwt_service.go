package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/service/auth"
)

// MockJWTService is a configurable auth.JWTService. The Fn fields win over
// the canned values when set.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	IssuedToken string
	IssueErr    error
	Claims      *auth.Claims
	ValidateErr error

	// ValidatedTokens records every token passed to ValidateToken.
	ValidatedTokens []string
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.IssuedToken, m.IssueErr
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	m.ValidatedTokens = append(m.ValidatedTokens, tokenString)
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
