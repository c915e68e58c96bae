// Package common defines shared sentinel errors used across the adapter.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Credential-format errors. Stored or supplied data that does not match
	// the expected hash shape is treated as "credential invalid", never fatal.
	ErrMalformedCredential = errors.New("malformed credential")
	ErrMalformedEncoding   = errors.New("malformed encoding")

	// Hasher misconfiguration. Unlike the errors above this one means the
	// system cannot function, so it is surfaced to callers instead of being
	// swallowed.
	ErrInvalidHashParams = errors.New("invalid hash parameters")

	// An externally supplied composite identifier could not be decomposed.
	ErrMalformedID = errors.New("malformed id")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
