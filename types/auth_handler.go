// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	deepcopy "github.com/tiendc/go-deepcopy"
	"golang.org/x/oauth2"
)

// AuthHandler generates authorization requests for an [AuthConfig] and moves
// completed auth responses between the tool-calling loop and the session
// state.
type AuthHandler struct {
	authConfig *AuthConfig
}

// NewAuthHandler creates a new AuthHandler with the given authConfig.
func NewAuthHandler(authConfig *AuthConfig) *AuthHandler {
	return &AuthHandler{
		authConfig: authConfig,
	}
}

// ParseAndStoreAuthResponse stores the exchanged auth credential filled in by
// the client under the config's credential key, making it visible to the next
// credential lookup for the same scope.
func (h *AuthHandler) ParseAndStoreAuthResponse(state *State) {
	state.Set(h.authConfig.CredentialKey(), h.authConfig.ExchangedAuthCredential)
}

// GetAuthResponse returns the auth credential a completed consent flow
// delivered for this config, or nil.
func (h *AuthHandler) GetAuthResponse(state *State) *AuthCredential {
	creds, ok := state.Get(h.authConfig.CredentialKey())
	if !ok {
		return nil
	}
	credential, ok := creds.(*AuthCredential)
	if !ok {
		return nil
	}
	return credential
}

// GenerateAuthRequest returns the auth config the client should surface to
// the end user. For OAuth2 and OIDC schemes missing an authorization uri, it
// generates one (with a fresh CSRF state) from the raw client id and secret.
func (h *AuthHandler) GenerateAuthRequest() (*AuthConfig, error) {
	schemeType := GetAuthSchemeType(h.authConfig.AuthScheme)
	if schemeType != OAuth2CredentialTypes && schemeType != OpenIDConnectCredentialTypes {
		return h.copyConfig()
	}

	// auth_uri already in exchanged credential
	if exchanged := h.authConfig.ExchangedAuthCredential; exchanged != nil && exchanged.OAuth2 != nil && exchanged.OAuth2.AuthURI != "" {
		return h.copyConfig()
	}

	if h.authConfig.RawAuthCredential == nil {
		return nil, NewIncompleteCredentialError("auth scheme %s requires auth_credential", schemeType)
	}

	if h.authConfig.RawAuthCredential.OAuth2 == nil {
		return nil, NewIncompleteCredentialError("auth scheme %s requires oauth2 in auth_credential", schemeType)
	}

	// auth_uri in raw credential
	if h.authConfig.RawAuthCredential.OAuth2.AuthURI != "" {
		var exchanged AuthCredential
		if err := deepcopy.Copy(&exchanged, h.authConfig.RawAuthCredential); err != nil {
			return nil, err
		}
		return &AuthConfig{
			AuthScheme:              h.authConfig.AuthScheme,
			RawAuthCredential:       h.authConfig.RawAuthCredential,
			ExchangedAuthCredential: &exchanged,
			credentialKey:           h.authConfig.CredentialKey(),
		}, nil
	}

	if h.authConfig.RawAuthCredential.OAuth2.ClientID == "" || h.authConfig.RawAuthCredential.OAuth2.ClientSecret == "" {
		return nil, NewIncompleteCredentialError("auth scheme %s requires both client_id and client_secret in auth_credential.oauth2", schemeType)
	}

	exchanged, err := h.GenerateAuthURI()
	if err != nil {
		return nil, err
	}
	return &AuthConfig{
		AuthScheme:              h.authConfig.AuthScheme,
		RawAuthCredential:       h.authConfig.RawAuthCredential,
		ExchangedAuthCredential: exchanged,
		credentialKey:           h.authConfig.CredentialKey(),
	}, nil
}

// GenerateAuthURI generates a credential carrying the authorization uri the
// end user must visit to sign in, plus the CSRF state the client verifies on
// the way back.
func (h *AuthHandler) GenerateAuthURI() (*AuthCredential, error) {
	authScheme := h.authConfig.AuthScheme
	authCredential := h.authConfig.RawAuthCredential

	var authorizationEndpoint string
	var scopes []string
	switch authScheme := authScheme.(type) {
	case *OpenIDConnectWithConfig:
		authorizationEndpoint = authScheme.AuthorizationEndpoint
		scopes = authScheme.Scopes

	case *OAuth2SecurityScheme:
		if authScheme.Flows == nil {
			return nil, errors.New("oauth flows not defined in security scheme")
		}

		// The grant type selects the flow; code and implicit grants send the
		// user to the authorization endpoint, the direct grants use the token
		// endpoint.
		var flow *OAuthFlow
		switch FromOAuthFlows(authScheme.Flows) {
		case ClientCredentialsGrant:
			flow = authScheme.Flows.ClientCredentials
			authorizationEndpoint = flow.TokenURL
		case AuthorizationCodeGrant:
			flow = authScheme.Flows.AuthorizationCode
			authorizationEndpoint = flow.AuthorizationURL
		case ImplicitGrant:
			flow = authScheme.Flows.Implicit
			authorizationEndpoint = flow.AuthorizationURL
		case PasswordGrant:
			flow = authScheme.Flows.Password
			authorizationEndpoint = flow.TokenURL
		default:
			return nil, errors.New("no oauth flow defined in security scheme")
		}
		if authorizationEndpoint == "" {
			return nil, errors.New("no valid authorization URL found in security scheme")
		}
		scopes = scopeNames(flow.Scopes)

	default:
		return nil, NewUnsupportedSchemeError("auth scheme %T cannot generate an authorization uri", authScheme)
	}

	conf := &oauth2.Config{
		ClientID:     authCredential.OAuth2.ClientID,
		ClientSecret: authCredential.OAuth2.ClientSecret,
		Scopes:       scopes,
		RedirectURL:  authCredential.OAuth2.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL: authorizationEndpoint,
		},
	}
	state := generateState()
	uri := conf.AuthCodeURL(state, oauth2.ApprovalForce)

	var exchanged AuthCredential
	if err := deepcopy.Copy(&exchanged, authCredential); err != nil {
		return nil, err
	}
	exchanged.OAuth2.AuthURI = uri
	exchanged.OAuth2.State = state

	return &exchanged, nil
}

func (h *AuthHandler) copyConfig() (*AuthConfig, error) {
	copied := &AuthConfig{
		AuthScheme:    h.authConfig.AuthScheme,
		credentialKey: h.authConfig.CredentialKey(),
	}
	if err := deepcopy.Copy(&copied.RawAuthCredential, &h.authConfig.RawAuthCredential); err != nil {
		return nil, err
	}
	if err := deepcopy.Copy(&copied.ExchangedAuthCredential, &h.authConfig.ExchangedAuthCredential); err != nil {
		return nil, err
	}
	return copied, nil
}

func scopeNames(scopes map[string]string) []string {
	if len(scopes) == 0 {
		return nil
	}
	names := make([]string, 0, len(scopes))
	for scope := range scopes {
		names = append(names, scope)
	}
	return names
}

func generateState() string {
	data := make([]byte, 30)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}
