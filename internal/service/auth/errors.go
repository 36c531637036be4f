package auth

import "errors"

var (
	// ErrInvalidToken covers malformed tokens, bad signatures, foreign
	// issuers and incomplete claims.
	ErrInvalidToken = errors.New("invalid authentication token")

	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")

	// ErrWrongTokenType is a correctly signed token that is not an access token.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidCredentials is returned for an unknown email, a wrong
	// password and an inactive account alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
