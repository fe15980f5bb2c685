// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/go-json-experiment/json"
)

// AuthConfig pairs the auth scheme of a tool with the raw credential supplied
// by the tool author, and carries the most recently obtained usable
// credential.
type AuthConfig struct {
	// The auth scheme used to collect credentials.
	AuthScheme AuthScheme

	// The raw auth credential used to collect credentials. The raw auth
	// credentials are used in some auth scheme that needs to exchange auth
	// credentials. e.g. OAuth2 and OIDC. For other auth scheme, it could be nil.
	RawAuthCredential *AuthCredential

	// The exchanged auth credential. For auth schemes that don't need to
	// exchange auth credentials (API key, HTTP) the client fills it directly.
	// For OAuth2 and OIDC the framework fills it on the generated auth
	// request: if the raw credential only has client id and secret, the
	// request copy carries the corresponding authorization uri and state, and
	// the client guides the user through the flow and fills the auth response
	// back in. A config shared across users is never written with per-user
	// tokens; those travel through the credential service and the result.
	ExchangedAuthCredential *AuthCredential

	// A user specified key used to load and save this credential in a
	// credential service. Computed from the scheme and raw credential when
	// empty.
	credentialKey string
	keyOnce       sync.Once
}

// CredentialKey returns a deterministic key derived from the auth scheme and
// the raw credential, used to save and load the credential from a credential
// service. Two configs with equal schemes and raw credentials yield the same
// key and collapse to one stored entry. Safe for concurrent use; the key is
// computed once.
func (ac *AuthConfig) CredentialKey() string {
	ac.keyOnce.Do(func() {
		if ac.credentialKey == "" {
			ac.credentialKey = generateCredentialKey(ac.AuthScheme, ac.RawAuthCredential)
		}
	})
	return ac.credentialKey
}

// WithCredentialKey overrides the derived credential key.
func (ac *AuthConfig) WithCredentialKey(key string) *AuthConfig {
	ac.credentialKey = key
	return ac
}

// generateCredentialKey builds a hash key based on authScheme and
// rawCredential.
func generateCredentialKey(authScheme AuthScheme, rawCredential *AuthCredential) string {
	var schemeName string
	if authScheme != nil {
		schemeJSON, err := json.Marshal(authScheme)
		if err != nil {
			panic(fmt.Errorf("marshal authScheme: %w", err))
		}
		hash := sha256.Sum256(schemeJSON)
		schemeName = fmt.Sprintf("%s_%x", GetAuthSchemeType(authScheme), hash[:4])
	}

	var credentialName string
	if rawCredential != nil {
		credJSON, err := json.Marshal(rawCredential)
		if err != nil {
			panic(fmt.Errorf("marshal rawCredential: %w", err))
		}
		hash := sha256.Sum256(credJSON)
		credentialName = fmt.Sprintf("%s_%x", rawCredential.AuthType, hash[:4])
	}

	return fmt.Sprintf("adk_%s_%s", schemeName, credentialName)
}

// AuthToolArguments is the arguments for the special long running function
// call that is used to request end user credentials.
type AuthToolArguments struct {
	// FunctionCallID is the ID of the function call requesting authentication.
	FunctionCallID string `json:"function_call_id"`

	// AuthConfig is the authentication configuration requested.
	AuthConfig *AuthConfig `json:"auth_config"`
}
