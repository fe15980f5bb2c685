// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
)

// CredentialRefresher represents an interface for credential refreshers.
//
// Credential refreshers are responsible for checking if a credential is
// stale, and for refreshing it if necessary.
type CredentialRefresher interface {
	// IsRefreshNeeded reports whether a credential needs to be refreshed.
	// Pure predicate, no side effects.
	IsRefreshNeeded(ctx context.Context, authCredential *AuthCredential, authScheme AuthScheme) bool

	// Refresh refreshes a credential and returns the new credential value.
	// Fails with [RefreshError] when the refresh token is missing, the token
	// endpoint cannot be resolved from the scheme, or the underlying token
	// call fails; it never silently returns the stale credential.
	Refresh(ctx context.Context, authCredential *AuthCredential, authScheme AuthScheme) (*AuthCredential, error)
}
