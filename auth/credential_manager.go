// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"time"

	"github.com/go-a2a/authkit/auth/exchanger"
	"github.com/go-a2a/authkit/auth/refresher"
	"github.com/go-a2a/authkit/pkg/logging"
	"github.com/go-a2a/authkit/types"
)

// RetryPolicy bounds how often a failed refresh or exchange network call is
// reattempted before the failure is returned to the caller. The default is a
// single attempt: one failed call is final, the caller decides whether to
// retry.
type RetryPolicy struct {
	// Attempts is the total number of attempts. Values below 1 mean 1.
	Attempts int

	// Backoff is the fixed delay between attempts.
	Backoff time.Duration
}

// CredentialManager manages authentication credentials through a structured
// workflow: look up the stored credential for the current scope, refresh or
// exchange it when needed, persist the result, and hand a usable credential
// to the caller — or an authorization request when end-user consent is
// required first.
//
// A manager is constructed once at service startup with the backing
// [types.CredentialService] and shared by all tools; per-invocation data
// arrives through the [types.ToolContext].
type CredentialManager struct {
	service           types.CredentialService
	exchangerRegistry *exchanger.CredentialExchangerRegistry
	refresherRegistry *refresher.CredentialRefresherRegistry

	callTimeout time.Duration
	retry       RetryPolicy
}

// CredentialManagerOption configures a [CredentialManager].
type CredentialManagerOption func(*CredentialManager)

// WithCallTimeout bounds each token-endpoint call. A call exceeding the
// timeout fails like any other refresh or exchange failure.
func WithCallTimeout(timeout time.Duration) CredentialManagerOption {
	return func(cm *CredentialManager) {
		cm.callTimeout = timeout
	}
}

// WithRetryPolicy replaces the default single-attempt policy for refresh and
// exchange calls.
func WithRetryPolicy(policy RetryPolicy) CredentialManagerOption {
	return func(cm *CredentialManager) {
		cm.retry = policy
	}
}

// NewCredentialManager creates a new CredentialManager backed by service,
// with the default refreshers and exchangers registered.
func NewCredentialManager(service types.CredentialService, opts ...CredentialManagerOption) *CredentialManager {
	cm := &CredentialManager{
		service:           service,
		exchangerRegistry: exchanger.NewCredentialExchangerRegistry(),
		refresherRegistry: refresher.NewCredentialRefresherRegistry(),
		retry:             RetryPolicy{Attempts: 1},
	}
	for _, opt := range opts {
		opt(cm)
	}

	oauth2Refresher := &refresher.OAuth2CredentialRefresher{}
	cm.refresherRegistry.Register(types.OAuth2CredentialTypes, oauth2Refresher)
	cm.refresherRegistry.Register(types.OpenIDConnectCredentialTypes, oauth2Refresher)

	oauth2Exchanger := &exchanger.OAuth2CredentialExchanger{}
	cm.exchangerRegistry.Register(types.OAuth2CredentialTypes, oauth2Exchanger)
	cm.exchangerRegistry.Register(types.OpenIDConnectCredentialTypes, oauth2Exchanger)
	cm.exchangerRegistry.Register(types.ServiceAccountCredentialTypes, exchanger.NewServiceAccountCredentialExchanger())

	return cm
}

// RegisterCredentialExchanger registers a credential exchanger for a credential type.
func (cm *CredentialManager) RegisterCredentialExchanger(credentialType types.AuthCredentialTypes, ex types.CredentialExchanger) {
	cm.exchangerRegistry.Register(credentialType, ex)
}

// RegisterCredentialRefresher registers a credential refresher for a credential type.
func (cm *CredentialManager) RegisterCredentialRefresher(credentialType types.AuthCredentialTypes, re types.CredentialRefresher) {
	cm.refresherRegistry.Register(credentialType, re)
}

// GetAuthCredential loads and prepares the authentication credential for the
// invocation's (app, user, credential key) scope.
//
// The result is exactly one of ready (a usable credential), pending (end-user
// authorization required; the request to surface is attached) or failed (a
// refresh or exchange error; never downgraded to pending).
func (cm *CredentialManager) GetAuthCredential(ctx context.Context, toolCtx *types.ToolContext, authConfig *types.AuthConfig) *types.CredentialResult {
	logger := logging.FromContext(ctx)

	if err := validateConfig(authConfig); err != nil {
		return types.FailedCredentialResult(err)
	}

	// Simple credentials need no exchange or refresh.
	if raw := authConfig.RawAuthCredential; raw != nil && (raw.AuthType == types.APIKeyCredentialTypes || raw.AuthType == types.HTTPCredentialTypes) {
		return types.ReadyCredentialResult(raw)
	}

	scope := types.ScopeKey{
		AppName:       toolCtx.InvocationContext().AppName(),
		UserID:        toolCtx.InvocationContext().UserID(),
		CredentialKey: authConfig.CredentialKey(),
	}

	service := cm.credentialService(toolCtx)

	stored, err := loadExistingCredential(ctx, service, scope)
	if err != nil {
		return types.FailedCredentialResult(err)
	}

	if stored != nil {
		re, ok := cm.refresherRegistry.GetRefresher(stored.AuthType)
		if !ok || !re.IsRefreshNeeded(ctx, stored, authConfig.AuthScheme) {
			return types.ReadyCredentialResult(stored)
		}

		refreshed, err := cm.attempt(ctx, func(callCtx context.Context) (*types.AuthCredential, error) {
			return re.Refresh(callCtx, stored, authConfig.AuthScheme)
		})
		if err != nil {
			return types.FailedCredentialResult(err)
		}
		logger.DebugContext(ctx, "credential refreshed",
			"session_id", toolCtx.InvocationContext().Session.ID(),
			"credential_key", scope.CredentialKey)
		saveCredential(ctx, service, scope, refreshed)
		return types.ReadyCredentialResult(refreshed)
	}

	// Store miss: a completed consent flow may have delivered a credential via
	// the session state; otherwise fall back to the tool author's raw
	// credential.
	candidate := toolCtx.GetAuthResponse(authConfig)
	if candidate == nil {
		candidate = authConfig.RawAuthCredential
	}

	if isExchangeable(candidate) {
		ex, ok := cm.exchangerRegistry.GetExchanger(candidate.AuthType)
		if !ok {
			return types.FailedCredentialResult(types.NewUnsupportedSchemeError("no exchanger registered for credential type %s", candidate.AuthType))
		}

		exchanged, err := cm.attempt(ctx, func(callCtx context.Context) (*types.AuthCredential, error) {
			return ex.Exchange(callCtx, candidate, authConfig.AuthScheme)
		})
		if err != nil {
			return types.FailedCredentialResult(err)
		}
		logger.DebugContext(ctx, "credential exchanged",
			"session_id", toolCtx.InvocationContext().Session.ID(),
			"credential_key", scope.CredentialKey)
		saveCredential(ctx, service, scope, exchanged)
		return types.ReadyCredentialResult(exchanged)
	}

	request, err := types.NewAuthHandler(authConfig).GenerateAuthRequest()
	if err != nil {
		return types.FailedCredentialResult(err)
	}
	return types.PendingCredentialResult(request)
}

// credentialService resolves the backing store: the one the manager was
// constructed with, or the invocation's when the manager carries none.
func (cm *CredentialManager) credentialService(toolCtx *types.ToolContext) types.CredentialService {
	if cm.service != nil {
		return cm.service
	}
	return toolCtx.InvocationContext().CredentialService
}

// loadExistingCredential loads the stored credential for scope. The store is
// the only lookup source: the config is shared by every user of a tool, so
// nothing on it may ever stand in for a per-scope credential.
func loadExistingCredential(ctx context.Context, service types.CredentialService, scope types.ScopeKey) (*types.AuthCredential, error) {
	if service == nil {
		return nil, nil
	}
	return service.LoadCredential(ctx, scope)
}

// saveCredential persists credential under scope.
func saveCredential(ctx context.Context, service types.CredentialService, scope types.ScopeKey, credential *types.AuthCredential) {
	if service == nil {
		return
	}
	if err := service.SaveCredential(ctx, scope, credential); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "save credential", "credential_key", scope.CredentialKey, "error", err)
	}
}

// attempt runs fn under the configured per-call timeout and retry policy.
func (cm *CredentialManager) attempt(ctx context.Context, fn func(context.Context) (*types.AuthCredential, error)) (*types.AuthCredential, error) {
	attempts := max(cm.retry.Attempts, 1)

	var lastErr error
	for i := range attempts {
		if i > 0 && cm.retry.Backoff > 0 {
			timer := time.NewTimer(cm.retry.Backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if cm.callTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, cm.callTimeout)
		}
		credential, err := fn(callCtx)
		cancel()
		if err == nil {
			return credential, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// validateConfig rejects misconfigured auth configs before any network call.
func validateConfig(authConfig *types.AuthConfig) error {
	if authConfig == nil {
		return types.NewIncompleteCredentialError("auth config is required")
	}
	if authConfig.AuthScheme == nil {
		return types.NewIncompleteCredentialError("auth scheme is required")
	}

	schemeType := types.GetAuthSchemeType(authConfig.AuthScheme)
	switch schemeType {
	case types.APIKeyCredentialTypes, types.HTTPCredentialTypes, types.OAuth2CredentialTypes, types.OpenIDConnectCredentialTypes, types.ServiceAccountCredentialTypes:
	default:
		return types.NewUnsupportedSchemeError("unsupported auth scheme type %q", schemeType)
	}

	if raw := authConfig.RawAuthCredential; raw != nil {
		switch schemeType {
		case types.OAuth2CredentialTypes, types.OpenIDConnectCredentialTypes:
			if raw.AuthType == types.OAuth2CredentialTypes && raw.OAuth2 == nil {
				return types.NewIncompleteCredentialError("oauth2 credential is missing its oauth2 payload")
			}
		}
	}

	return nil
}

// isExchangeable reports whether credential can be exchanged for a usable
// bearer credential right now. OAuth2-family credentials qualify only once an
// authorization response (or a token) is present; before that, end-user
// consent is required.
func isExchangeable(credential *types.AuthCredential) bool {
	if credential == nil {
		return false
	}

	switch credential.AuthType {
	case types.ServiceAccountCredentialTypes:
		return true
	case types.OAuth2CredentialTypes, types.OpenIDConnectCredentialTypes:
		oauth2Auth := credential.OAuth2
		if oauth2Auth == nil {
			return false
		}
		return oauth2Auth.AccessToken != "" || oauth2Auth.AuthResponseURI != "" || oauth2Auth.AuthCode != ""
	default:
		return false
	}
}
