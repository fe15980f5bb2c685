// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package discovery resolves OpenID Connect security schemes into fully
// configured schemes by fetching the provider's discovery document.
package discovery

import (
	"context"
	"fmt"
	"strings"

	oidc "github.com/coreos/go-oidc/v3/oidc"

	"github.com/go-a2a/authkit/types"
)

// wellKnownPath is the discovery document suffix defined by OpenID Connect
// Discovery 1.0.
const wellKnownPath = "/.well-known/openid-configuration"

// providerClaims is the subset of the discovery document the credential
// subsystem needs beyond the endpoints go-oidc exposes directly.
type providerClaims struct {
	UserinfoEndpoint                  string   `json:"userinfo_endpoint"`
	RevocationEndpoint                string   `json:"revocation_endpoint"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	ScopesSupported                   []string `json:"scopes_supported"`
}

// Resolve fetches the discovery document referenced by scheme and returns an
// [types.OpenIDConnectWithConfig] carrying the resolved endpoints. scopes, if
// non-empty, overrides the provider's advertised scope list with the scopes
// the tool actually requests.
func Resolve(ctx context.Context, scheme *types.OpenIdConnectSecurityScheme, scopes []string) (*types.OpenIDConnectWithConfig, error) {
	if scheme == nil || scheme.OpenIDConnectURL == "" {
		return nil, types.NewIncompleteCredentialError("openIdConnectUrl is required for discovery")
	}

	issuer := strings.TrimSuffix(strings.TrimRight(scheme.OpenIDConnectURL, "/"), wellKnownPath)
	issuer = strings.TrimRight(issuer, "/")

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("fetch discovery document for %s: %w", issuer, err)
	}

	var claims providerClaims
	if err := provider.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode discovery document for %s: %w", issuer, err)
	}

	if len(scopes) == 0 {
		scopes = claims.ScopesSupported
	}

	endpoint := provider.Endpoint()
	return &types.OpenIDConnectWithConfig{
		Type:                              types.OpenIDConnectCredentialTypes,
		AuthorizationEndpoint:             endpoint.AuthURL,
		TokenEndpoint:                     endpoint.TokenURL,
		UserinfoEndpoint:                  claims.UserinfoEndpoint,
		RevocationEndpoint:                claims.RevocationEndpoint,
		TokenEndpointAuthMethodsSupported: claims.TokenEndpointAuthMethodsSupported,
		GrantTypesSupported:               claims.GrantTypesSupported,
		Scopes:                            scopes,
	}, nil
}
