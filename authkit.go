// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package authkit grants tools controlled, scoped access to third-party
// credentials (OAuth2, OpenID Connect, service account, API key) needed to
// call external APIs on a user's behalf, without requiring tool authors to
// implement token storage, refresh, or interactive-consent handling.
package authkit

// Version is the version of the credential lifecycle toolkit.
var Version = "v0.0.0"
