// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"maps"
	"slices"
	"time"

	"golang.org/x/oauth2"
)

// OAuth2Session represents a new OAuth 2 client requests session.
type OAuth2Session struct {
	*oauth2.Config
	State string
}

// CreateOAuth2Session creates an OAuth2 session for token operations.
//
// The token endpoint and scopes come from the scheme's discovery metadata for
// [OpenIDConnectWithConfig], and from the static authorization-code flow
// descriptor for [OAuth2SecurityScheme]. Any other scheme variant is not
// refreshable via an OAuth2 session and yields nil.
func CreateOAuth2Session(ctx context.Context, authScheme AuthScheme, authCredential *AuthCredential) *OAuth2Session {
	var (
		tokenEndpoint string
		scopes        []string
	)

	switch authScheme := authScheme.(type) {
	case *OpenIDConnectWithConfig:
		if authScheme.TokenEndpoint == "" {
			return nil
		}
		tokenEndpoint = authScheme.TokenEndpoint
		scopes = authScheme.Scopes

	case *OAuth2SecurityScheme:
		if authScheme.Flows == nil || authScheme.Flows.AuthorizationCode == nil || authScheme.Flows.AuthorizationCode.TokenURL == "" {
			return nil
		}
		tokenEndpoint = authScheme.Flows.AuthorizationCode.TokenURL
		scopes = slices.Sorted(maps.Keys(authScheme.Flows.AuthorizationCode.Scopes))

	default:
		return nil
	}

	if authCredential == nil || authCredential.OAuth2 == nil || authCredential.OAuth2.ClientID == "" || authCredential.OAuth2.ClientSecret == "" {
		return nil
	}

	return &OAuth2Session{
		Config: &oauth2.Config{
			ClientID:     authCredential.OAuth2.ClientID,
			ClientSecret: authCredential.OAuth2.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: tokenEndpoint,
			},
			Scopes:      scopes,
			RedirectURL: authCredential.OAuth2.RedirectURI,
		},
		State: authCredential.OAuth2.State,
	}
}

// UpdateCredentialWithTokens returns a copy of authCredential with the access
// token, refresh token and expiry fields replaced from token. The refresh
// token is carried over when the token response omits one.
func UpdateCredentialWithTokens(authCredential *AuthCredential, token *oauth2.Token) *AuthCredential {
	updated := *authCredential
	oauth2Auth := OAuth2Auth{}
	if authCredential.OAuth2 != nil {
		oauth2Auth = *authCredential.OAuth2
	}

	oauth2Auth.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		oauth2Auth.RefreshToken = token.RefreshToken
	}
	oauth2Auth.ExpiresAt = token.Expiry
	if !token.Expiry.IsZero() {
		oauth2Auth.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	updated.OAuth2 = &oauth2Auth
	return &updated
}
