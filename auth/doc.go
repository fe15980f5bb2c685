// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth orchestrates the credential lifecycle for authenticated
// tools: stored credentials are looked up per (app, user, credential key)
// scope, refreshed or exchanged per scheme family, persisted, and returned
// to the caller — or an authorization request is generated when end-user
// consent is required first.
//
// The per-scheme logic lives in the exchanger and refresher subpackages;
// storage backends live in credentialservice.
package auth
