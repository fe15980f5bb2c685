// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
)

// CredentialExchanger represents an interface for credential exchangers.
//
// Credential exchangers are responsible for converting a raw, unexchanged
// credential (client id and secret, service account key) into a directly
// usable bearer credential.
type CredentialExchanger interface {
	// Exchange exchanges credential. Failures surface as [ExchangeError]
	// (after the underlying call was attempted) or [IncompleteCredentialError]
	// (detected before any network call); the result is never partially
	// populated.
	Exchange(ctx context.Context, authCredential *AuthCredential, authScheme AuthScheme) (*AuthCredential, error)
}
