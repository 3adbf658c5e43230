// Package common defines shared constants and sentinel errors used across
// client and server layers of cipherdrop. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Challenge/response authentication errors.
	ErrMissingChallenge = errors.New("missing challenge")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAddressMismatch  = errors.New("address mismatch")

	// Session credential errors.
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")

	// Access token lifecycle errors. Reported distinctly only at
	// validation time; issuance conceals ownership behind ErrorNotFound.
	ErrTokenRevoked = errors.New("token revoked")
	ErrTokenExpired = errors.New("token expired")

	// Key-material configuration errors.
	ErrRawKeysNotAllowed = errors.New("raw key storage not allowed")

	// Size ceiling violations, both declared and actual.
	ErrFileTooLarge = errors.New("file too large")

	// Client-local crypto error. Wrong passphrase and tampered ciphertext
	// are both reported as this single value.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// ValidationError reports a caller-fixable problem with a single named field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError constructs a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
