// Package auth issues and validates HMAC-signed JWT access tokens and hashes
// and verifies passwords with bcrypt.
package auth
