// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package exchanger

import (
	"context"
	"net/url"

	"github.com/go-a2a/authkit/types"
)

// OAuth2CredentialExchanger exchanges an OAuth2 authorization response for a
// bearer token at the scheme's token endpoint.
type OAuth2CredentialExchanger struct{}

var _ types.CredentialExchanger = (*OAuth2CredentialExchanger)(nil)

// Exchange implements [types.CredentialExchanger].
func (e *OAuth2CredentialExchanger) Exchange(ctx context.Context, authCredential *types.AuthCredential, authScheme types.AuthScheme) (*types.AuthCredential, error) {
	if authScheme == nil {
		return nil, types.NewIncompleteCredentialError("authScheme is required for OAuth2 credential exchange")
	}
	if authCredential == nil || authCredential.OAuth2 == nil {
		return nil, types.NewIncompleteCredentialError("credential has no oauth2 payload")
	}

	// Already a usable bearer credential.
	if authCredential.OAuth2.AccessToken != "" {
		return authCredential, nil
	}

	session := types.CreateOAuth2Session(ctx, authScheme, authCredential)
	if session == nil {
		return nil, types.NewExchangeError(nil, "token endpoint cannot be resolved from auth scheme %T", authScheme)
	}

	// Use the code from the credential if provided, otherwise extract it from
	// the auth response uri, validating the state parameter (CSRF protection).
	code := authCredential.OAuth2.AuthCode
	if code == "" {
		authURL, err := url.Parse(authCredential.OAuth2.AuthResponseURI)
		if err != nil {
			return nil, types.NewExchangeError(err, "invalid auth response URI")
		}
		if receivedState := authURL.Query().Get("state"); receivedState != session.State {
			return nil, types.NewExchangeError(nil, "state mismatch: expected %s, got %s", session.State, receivedState)
		}
		code = authURL.Query().Get("code")
		if code == "" {
			return nil, types.NewIncompleteCredentialError("authorization code not found in auth response")
		}
	}

	token, err := session.Config.Exchange(ctx, code)
	if err != nil {
		return nil, types.NewExchangeError(err, "exchange authorization code for token")
	}

	return types.UpdateCredentialWithTokens(authCredential, token), nil
}
