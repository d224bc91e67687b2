// Package common defines shared constants and sentinel errors used across
// the ufind server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Authentication errors. ErrInvalidCredentials is returned for both
	// unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("bad credentials")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")

	// Token errors.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("invalid token")
	ErrUnknownSubject = errors.New("user not found")

	// Authorization errors.
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
)
