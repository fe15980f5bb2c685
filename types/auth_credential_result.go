// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// CredentialResultStatus is the terminal state of a credential request.
type CredentialResultStatus int

const (
	// CredentialReady means a usable credential is available.
	CredentialReady CredentialResultStatus = iota

	// CredentialPending means no credential is available yet; the caller must
	// surface an authorization request to the end user and retry the
	// invocation once consent is granted. Pending is not an error.
	CredentialPending

	// CredentialFailed means a refresh or exchange attempt failed. Failures
	// are never downgraded to pending.
	CredentialFailed
)

// CredentialResult is the outcome of a credential request: exactly one of
// Credential (ready), Request (pending) or Err (failed) is set, selected by
// Status.
type CredentialResult struct {
	Status CredentialResultStatus

	// Credential is the usable credential when Status is [CredentialReady].
	Credential *AuthCredential

	// Request describes the authorization the end user must complete when
	// Status is [CredentialPending]. It carries the auth scheme plus the
	// generated authorization uri and state when the scheme supports them.
	Request *AuthConfig

	// Err is the refresh or exchange failure when Status is [CredentialFailed].
	Err error
}

// ReadyCredentialResult returns a [CredentialReady] result carrying credential.
func ReadyCredentialResult(credential *AuthCredential) *CredentialResult {
	return &CredentialResult{Status: CredentialReady, Credential: credential}
}

// PendingCredentialResult returns a [CredentialPending] result carrying the
// authorization request.
func PendingCredentialResult(request *AuthConfig) *CredentialResult {
	return &CredentialResult{Status: CredentialPending, Request: request}
}

// FailedCredentialResult returns a [CredentialFailed] result carrying err.
func FailedCredentialResult(err error) *CredentialResult {
	return &CredentialResult{Status: CredentialFailed, Err: err}
}
