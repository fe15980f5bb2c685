// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package credentialservice

import (
	"context"
	"sync"

	"github.com/go-a2a/authkit/types"
)

type (
	// userCredentials represents a map of credential keys to their respective
	// authentication credentials.
	userCredentials map[string]*types.AuthCredential // credential key -> *types.AuthCredential

	// appCredentials represents a map of user IDs to their respective user
	// credentials.
	appCredentials map[string]userCredentials // userID -> userCredentials
)

// InMemory represents an in memory implementation of [types.CredentialService].
//
// Suitable for development use. There is no eviction, TTL or capacity policy;
// substitute a persistent implementation of [types.CredentialService] in
// production.
type InMemory struct {
	mu          sync.RWMutex
	credentials map[string]appCredentials // appName -> appCredentials
}

var _ types.CredentialService = (*InMemory)(nil)

// NewInMemory returns the new [InMemory].
func NewInMemory() *InMemory {
	return &InMemory{
		credentials: make(map[string]appCredentials),
	}
}

// LoadCredential implements [types.CredentialService].
//
// A scope that was never written yields (nil, nil).
func (c *InMemory) LoadCredential(ctx context.Context, scope types.ScopeKey) (*types.AuthCredential, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	users, ok := c.credentials[scope.AppName]
	if !ok {
		return nil, nil
	}
	bucket, ok := users[scope.UserID]
	if !ok {
		return nil, nil
	}

	return bucket[scope.CredentialKey], nil
}

// SaveCredential implements [types.CredentialService].
//
// Concurrent saves for the same scope key race; last write wins.
func (c *InMemory) SaveCredential(ctx context.Context, scope types.ScopeKey, credential *types.AuthCredential) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	users, ok := c.credentials[scope.AppName]
	if !ok {
		users = make(appCredentials)
		c.credentials[scope.AppName] = users
	}
	bucket, ok := users[scope.UserID]
	if !ok {
		bucket = make(userCredentials)
		users[scope.UserID] = bucket
	}
	bucket[scope.CredentialKey] = credential

	return nil
}
