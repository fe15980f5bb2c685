// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
)

// ScopeKey is the (application, end-user, credential key) triple that
// isolates stored credentials. One user's tokens are never visible under
// another user's or application's scope.
type ScopeKey struct {
	AppName       string
	UserID        string
	CredentialKey string
}

// CredentialService loads and saves tool credentials from and to a backend
// credential store, keyed by [ScopeKey].
//
// Implementations must be safe under concurrent calls for different scope
// keys. Calls for the same scope key may race; last write wins.
type CredentialService interface {
	// LoadCredential loads the credential stored under scope. A never-written
	// scope yields (nil, nil), not an error.
	LoadCredential(ctx context.Context, scope ScopeKey) (*AuthCredential, error)

	// SaveCredential stores credential under scope, replacing any previous
	// entry.
	SaveCredential(ctx context.Context, scope ScopeKey, credential *AuthCredential) error
}
