// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package refresher

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/go-a2a/authkit/types"
)

// refreshSafetyMargin is how close to expiry a token may get before it is
// treated as stale.
const refreshSafetyMargin = 30 * time.Second

// OAuth2CredentialRefresher refreshes OAuth2 and OpenID Connect credentials
// through the refresh-token grant.
type OAuth2CredentialRefresher struct{}

var _ types.CredentialRefresher = (*OAuth2CredentialRefresher)(nil)

// IsRefreshNeeded implements [types.CredentialRefresher].
//
// A credential with no expiry information needs a refresh only when it
// carries a refresh token: unknown freshness is treated conservatively, but
// a credential that could never be refreshed is left alone.
func (r *OAuth2CredentialRefresher) IsRefreshNeeded(ctx context.Context, authCredential *types.AuthCredential, authScheme types.AuthScheme) bool {
	if authCredential == nil || authCredential.OAuth2 == nil {
		return false
	}

	oauth2Auth := authCredential.OAuth2
	if oauth2Auth.ExpiresAt.IsZero() {
		return oauth2Auth.RefreshToken != ""
	}

	return time.Until(oauth2Auth.ExpiresAt) <= refreshSafetyMargin
}

// Refresh implements [types.CredentialRefresher].
func (r *OAuth2CredentialRefresher) Refresh(ctx context.Context, authCredential *types.AuthCredential, authScheme types.AuthScheme) (*types.AuthCredential, error) {
	if authCredential == nil || authCredential.OAuth2 == nil {
		return nil, types.NewRefreshError(nil, "credential has no oauth2 payload")
	}

	if authCredential.OAuth2.RefreshToken == "" {
		return nil, types.NewRefreshError(nil, "credential has no refresh token")
	}

	session := types.CreateOAuth2Session(ctx, authScheme, authCredential)
	if session == nil {
		return nil, types.NewRefreshError(nil, "token endpoint cannot be resolved from auth scheme %T", authScheme)
	}

	// A token with an expiry in the past forces the token source to use the
	// refresh-token grant.
	currentToken := &oauth2.Token{
		RefreshToken: authCredential.OAuth2.RefreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	newToken, err := session.TokenSource(ctx, currentToken).Token()
	if err != nil {
		return nil, types.NewRefreshError(err, "refresh token grant failed")
	}

	return types.UpdateCredentialWithTokens(authCredential, newToken), nil
}
