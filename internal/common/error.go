// Package common defines shared constants and sentinel errors used across
// client and server layers of Authgate. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Transient store failures (timeouts, lost connections). Safe to retry;
	// never a statement about credential validity.
	ErrorTransient = errors.New("temporary storage error")

	// ErrorUnauthorized is the single opaque rejection for every
	// authentication failure: unknown secret, expired, revoked, wrong
	// password, absent user. Callers must not be able to tell these apart.
	ErrorUnauthorized = errors.New("unauthorized")
)
