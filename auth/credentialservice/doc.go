// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package credentialservice provides storage of authentication credentials
// for tools that call external APIs on a user's behalf.
//
// Credentials are organized in a three-tier hierarchy:
//
//	{appName} -> {userID} -> {credentialKey} -> AuthCredential
//
// This structure ensures:
//   - Application isolation: each app has separate credential storage
//   - User isolation: each user's credentials are kept separate
//   - Credential isolation: multiple credential types per user (API keys,
//     OAuth tokens, etc.)
//
// The package implements the types.CredentialService interface. The InMemory
// backend is intended for development and testing; additional backends
// (database, secret manager) can be supplied by satisfying the same
// interface, keyed by the (app, user, credential key) scope triple.
//
// A credential service is constructed once at service startup and handed to
// the credential manager:
//
//	service := credentialservice.NewInMemory()
//	manager := auth.NewCredentialManager(service)
//
// All operations accept context.Context for cancellation and timeout
// handling. The InMemory implementation is safe for concurrent access across
// goroutines; concurrent writes to the same scope key resolve to the last
// write.
package credentialservice
