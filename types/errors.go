// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
)

// UnsupportedSchemeError reports a scheme variant that has no registered
// refresher or exchanger. Detected before any network call.
type UnsupportedSchemeError string

// NewUnsupportedSchemeError returns the new [UnsupportedSchemeError] error.
func NewUnsupportedSchemeError(format string, a ...any) error {
	return UnsupportedSchemeError(fmt.Sprintf(format, a...))
}

// Error returns a string representation of the [UnsupportedSchemeError].
func (e UnsupportedSchemeError) Error() string {
	return string(e)
}

// IncompleteCredentialError reports required credential fields (client
// id/secret, key material, tokens) missing for the declared scheme. Detected
// before any network call.
type IncompleteCredentialError string

// NewIncompleteCredentialError returns the new [IncompleteCredentialError] error.
func NewIncompleteCredentialError(format string, a ...any) error {
	return IncompleteCredentialError(fmt.Sprintf(format, a...))
}

// Error returns a string representation of the [IncompleteCredentialError].
func (e IncompleteCredentialError) Error() string {
	return string(e)
}

// ExchangeError reports a failed credential exchange, wrapping the underlying
// cause (network failure, malformed key, provider rejection).
type ExchangeError struct {
	Reason string
	Cause  error
}

// NewExchangeError returns the new [ExchangeError] wrapping cause.
func NewExchangeError(cause error, format string, a ...any) error {
	return &ExchangeError{Reason: fmt.Sprintf(format, a...), Cause: cause}
}

// Error returns a string representation of the [ExchangeError].
func (e *ExchangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

// Unwrap returns the underlying cause of the exchange failure.
func (e *ExchangeError) Unwrap() error {
	return e.Cause
}

// RefreshError reports a failed credential refresh, wrapping the underlying
// cause. Distinct from [ExchangeError] even when both share root network
// causes.
type RefreshError struct {
	Reason string
	Cause  error
}

// NewRefreshError returns the new [RefreshError] wrapping cause.
func NewRefreshError(cause error, format string, a ...any) error {
	return &RefreshError{Reason: fmt.Sprintf(format, a...), Cause: cause}
}

// Error returns a string representation of the [RefreshError].
func (e *RefreshError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

// Unwrap returns the underlying cause of the refresh failure.
func (e *RefreshError) Unwrap() error {
	return e.Cause
}
