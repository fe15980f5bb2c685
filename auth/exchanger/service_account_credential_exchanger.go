// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package exchanger

import (
	"context"

	"github.com/bytedance/sonic"
	"golang.org/x/oauth2"

	"github.com/go-a2a/authkit/types"
)

// TokenProvider resolves a bearer token for service account credentials.
//
// credentialsJSON carries the embedded key document when present; a nil
// credentialsJSON selects the execution environment's default credential
// chain. The host environment supplies the implementation; the default is
// [GoogleDefaultCredentials].
type TokenProvider interface {
	Token(ctx context.Context, credentialsJSON []byte, scopes []string) (*oauth2.Token, error)
}

// ServiceAccountCredentialExchanger exchanges service account credentials for
// an access token.
//
// Uses the environment's default credential chain if UseDefaultCredential is
// set. Otherwise, uses the key document embedded in the auth credential.
type ServiceAccountCredentialExchanger struct {
	provider TokenProvider
}

var _ types.CredentialExchanger = (*ServiceAccountCredentialExchanger)(nil)

// ServiceAccountCredentialExchangerOption configures a [ServiceAccountCredentialExchanger].
type ServiceAccountCredentialExchangerOption func(*ServiceAccountCredentialExchanger)

// WithTokenProvider replaces the default Google token provider.
func WithTokenProvider(provider TokenProvider) ServiceAccountCredentialExchangerOption {
	return func(e *ServiceAccountCredentialExchanger) {
		e.provider = provider
	}
}

// NewServiceAccountCredentialExchanger creates a new service account
// credential exchanger.
func NewServiceAccountCredentialExchanger(opts ...ServiceAccountCredentialExchangerOption) *ServiceAccountCredentialExchanger {
	e := &ServiceAccountCredentialExchanger{
		provider: &GoogleDefaultCredentials{},
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Exchange implements [types.CredentialExchanger].
//
// Returns an OAuth2-tagged credential containing the exchanged bearer token,
// or an error: the missing-input cases are diagnosable
// [types.IncompleteCredentialError] values raised before any network call,
// and any failure of the token acquisition itself is a single
// [types.ExchangeError] wrapping the cause.
func (e *ServiceAccountCredentialExchanger) Exchange(ctx context.Context, authCredential *types.AuthCredential, authScheme types.AuthScheme) (*types.AuthCredential, error) {
	if authCredential == nil {
		return nil, types.NewIncompleteCredentialError("credential cannot be nil")
	}

	if authCredential.AuthType != types.ServiceAccountCredentialTypes {
		return nil, types.NewIncompleteCredentialError("credential is not a service account credential")
	}

	if authCredential.ServiceAccount == nil {
		return nil, types.NewIncompleteCredentialError("service account credentials are missing, please provide them")
	}

	serviceAccount := authCredential.ServiceAccount
	if serviceAccount.ServiceAccountCredential == nil && !serviceAccount.UseDefaultCredential {
		return nil, types.NewIncompleteCredentialError("service account credentials are invalid, please set the service_account_credential field or set use_default_credential to use the application default credential in a hosted environment")
	}

	var credentialsJSON []byte
	if !serviceAccount.UseDefaultCredential {
		var err error
		credentialsJSON, err = sonic.Marshal(serviceAccount.ServiceAccountCredential)
		if err != nil {
			return nil, types.NewExchangeError(err, "serialize service account key")
		}
	}

	token, err := e.provider.Token(ctx, credentialsJSON, serviceAccount.Scopes)
	if err != nil {
		return nil, types.NewExchangeError(err, "exchange service account token")
	}

	return &types.AuthCredential{
		AuthType: types.OAuth2CredentialTypes,
		OAuth2: &types.OAuth2Auth{
			AccessToken: token.AccessToken,
			ExpiresAt:   token.Expiry,
		},
	}, nil
}
