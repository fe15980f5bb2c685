// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package exchanger

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth/credentials"
	"golang.org/x/oauth2"
)

// cloudPlatformScope is requested when the service account declares no scopes.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// GoogleDefaultCredentials is the [TokenProvider] backed by Google's
// credential detection: an embedded key document when credentialsJSON is
// present, the application default credential chain otherwise.
type GoogleDefaultCredentials struct{}

var _ TokenProvider = (*GoogleDefaultCredentials)(nil)

// Token implements [TokenProvider].
func (p *GoogleDefaultCredentials) Token(ctx context.Context, credentialsJSON []byte, scopes []string) (*oauth2.Token, error) {
	if len(scopes) == 0 {
		scopes = []string{cloudPlatformScope}
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          scopes,
		CredentialsJSON: credentialsJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}

	// Force a token acquisition so the caller always gets a live bearer token.
	token, err := creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}

	return &oauth2.Token{
		AccessToken: token.Value,
		TokenType:   token.Type,
		Expiry:      token.Expiry,
	}, nil
}
