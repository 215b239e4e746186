// Package common defines shared constants and sentinel errors used across
// the client and server layers of the cadastral lookup service. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration / login errors.
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserInactive       = errors.New("inactive user")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// External provider errors.
	ErrExternalUnavailable = errors.New("external service unavailable")
)
