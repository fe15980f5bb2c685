// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package credentialservice

import (
	"context"
	"fmt"

	"github.com/go-a2a/authkit/types"
)

// SessionState is a [types.CredentialService] backed by the session [types.State].
//
// Credentials live only as long as the session does and are stored under the
// temporary-state prefix, so they are never committed to persistent session
// storage. The application and user scope is the session's own; the scope
// key's credential key selects the entry.
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type SessionState struct {
	state *types.State
}

var _ types.CredentialService = (*SessionState)(nil)

// NewSessionState returns a [SessionState] storing credentials in state.
func NewSessionState(state *types.State) *SessionState {
	return &SessionState{state: state}
}

// LoadCredential implements [types.CredentialService].
func (c *SessionState) LoadCredential(ctx context.Context, scope types.ScopeKey) (*types.AuthCredential, error) {
	creds, ok := c.state.Get(stateKey(scope))
	if !ok {
		return nil, nil
	}
	credential, ok := creds.(*types.AuthCredential)
	if !ok {
		return nil, fmt.Errorf("session state entry for %s is not a credential", scope.CredentialKey)
	}

	return credential, nil
}

// SaveCredential implements [types.CredentialService].
func (c *SessionState) SaveCredential(ctx context.Context, scope types.ScopeKey, credential *types.AuthCredential) error {
	c.state.Set(stateKey(scope), credential)
	return nil
}

func stateKey(scope types.ScopeKey) string {
	return types.TempPrefix + scope.CredentialKey
}
