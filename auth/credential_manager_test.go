// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package auth_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-a2a/authkit/auth"
	"github.com/go-a2a/authkit/auth/credentialservice"
	"github.com/go-a2a/authkit/types"
)

func newToolContext(service types.CredentialService) *types.ToolContext {
	return newToolContextForUser("test-user", service)
}

func newToolContextForUser(userID string, service types.CredentialService) *types.ToolContext {
	session := types.NewSession("test-app", userID, "session-"+userID, nil)
	ictx := types.NewInvocationContext(session).WithCredentialService(service)
	return types.NewToolContext(ictx).WithFunctionCallID("fc-1")
}

func oidcScheme(tokenEndpoint string) *types.OpenIDConnectWithConfig {
	return &types.OpenIDConnectWithConfig{
		Type:                  types.OpenIDConnectCredentialTypes,
		AuthorizationEndpoint: "https://example.com/authorize",
		TokenEndpoint:         tokenEndpoint,
		Scopes:                []string{"openid", "profile"},
	}
}

// countingRefresher wraps another refresher and records how often Refresh runs.
type countingRefresher struct {
	inner        types.CredentialRefresher
	refreshCalls int
}

func (r *countingRefresher) IsRefreshNeeded(ctx context.Context, credential *types.AuthCredential, scheme types.AuthScheme) bool {
	return r.inner.IsRefreshNeeded(ctx, credential, scheme)
}

func (r *countingRefresher) Refresh(ctx context.Context, credential *types.AuthCredential, scheme types.AuthScheme) (*types.AuthCredential, error) {
	r.refreshCalls++
	return r.inner.Refresh(ctx, credential, scheme)
}

type staticRefresher struct {
	needed     bool
	credential *types.AuthCredential
	err        error
	calls      int
}

func (r *staticRefresher) IsRefreshNeeded(ctx context.Context, credential *types.AuthCredential, scheme types.AuthScheme) bool {
	return r.needed
}

func (r *staticRefresher) Refresh(ctx context.Context, credential *types.AuthCredential, scheme types.AuthScheme) (*types.AuthCredential, error) {
	r.calls++
	return r.credential, r.err
}

type staticExchanger struct {
	credential *types.AuthCredential
	err        error
	calls      int
}

func (e *staticExchanger) Exchange(ctx context.Context, credential *types.AuthCredential, scheme types.AuthScheme) (*types.AuthCredential, error) {
	e.calls++
	return e.credential, e.err
}

func TestCredentialManager_APIKeyPassthrough(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)
	toolCtx := newToolContext(nil)

	authConfig := &types.AuthConfig{
		AuthScheme:        &types.APIKeySecurityScheme{Type: types.APIKeyCredentialTypes, In: "header", Name: "X-API-Key"},
		RawAuthCredential: &types.AuthCredential{AuthType: types.APIKeyCredentialTypes, APIKey: "secret-key"},
	}

	result := cm.GetAuthCredential(ctx, toolCtx, authConfig)
	if result.Status != types.CredentialReady {
		t.Fatalf("status = %v, want ready (err: %v)", result.Status, result.Err)
	}
	if result.Credential.APIKey != "secret-key" {
		t.Errorf("api key = %q, want %q", result.Credential.APIKey, "secret-key")
	}
}

func TestCredentialManager_PendingWhenConsentRequired(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)
	toolCtx := newToolContext(nil)

	// Raw client id and secret only: not exchangeable, needs end-user consent.
	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme("https://example.com/token"),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2: &types.OAuth2Auth{
				ClientID:     "client",
				ClientSecret: "secret",
			},
		},
	}

	result := cm.GetAuthCredential(ctx, toolCtx, authConfig)
	if result.Status != types.CredentialPending {
		t.Fatalf("status = %v, want pending (err: %v)", result.Status, result.Err)
	}
	exchanged := result.Request.ExchangedAuthCredential
	if exchanged == nil || exchanged.OAuth2 == nil {
		t.Fatal("pending request carries no generated oauth2 credential")
	}
	if exchanged.OAuth2.AuthURI == "" {
		t.Error("authorization uri not generated")
	}
	if exchanged.OAuth2.State == "" {
		t.Error("csrf state not generated")
	}

	// Nothing is persisted until a credential actually exists.
	stored, err := service.LoadCredential(ctx, types.ScopeKey{
		AppName:       "test-app",
		UserID:        "test-user",
		CredentialKey: authConfig.CredentialKey(),
	})
	if err != nil {
		t.Fatalf("LoadCredential returned error: %v", err)
	}
	if stored != nil {
		t.Errorf("store written during a pending flow: %+v", stored)
	}
}

func TestCredentialManager_StoredUnexpiredCredentialSkipsRefresh(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)

	refresher := &countingRefresher{inner: &staticRefresher{needed: false}}
	cm.RegisterCredentialRefresher(types.OpenIDConnectCredentialTypes, refresher)

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme("https://example.com/token"),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}
	scope := types.ScopeKey{AppName: "test-app", UserID: "test-user", CredentialKey: authConfig.CredentialKey()}
	stored := &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			AccessToken: "fresh-token",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}
	if err := service.SaveCredential(ctx, scope, stored); err != nil {
		t.Fatalf("SaveCredential returned error: %v", err)
	}

	result := cm.GetAuthCredential(ctx, newToolContext(nil), authConfig)
	if result.Status != types.CredentialReady {
		t.Fatalf("status = %v, want ready (err: %v)", result.Status, result.Err)
	}
	if result.Credential.OAuth2.AccessToken != "fresh-token" {
		t.Errorf("access token = %q, want the stored one", result.Credential.OAuth2.AccessToken)
	}
	if refresher.refreshCalls != 0 {
		t.Errorf("refresh called %d times for an unexpired credential", refresher.refreshCalls)
	}
}

func TestCredentialManager_ExpiredCredentialIsRefreshedAndPersisted(t *testing.T) {
	ctx := t.Context()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"refreshed-token","refresh_token":"next-refresh","token_type":"Bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme(srv.URL),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}
	scope := types.ScopeKey{AppName: "test-app", UserID: "test-user", CredentialKey: authConfig.CredentialKey()}
	expired := &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			ClientID:     "client",
			ClientSecret: "secret",
			AccessToken:  "stale-token",
			RefreshToken: "refresh-token",
			ExpiresAt:    time.Now().Add(-time.Minute),
		},
	}
	if err := service.SaveCredential(ctx, scope, expired); err != nil {
		t.Fatalf("SaveCredential returned error: %v", err)
	}

	result := cm.GetAuthCredential(ctx, newToolContext(nil), authConfig)
	if result.Status != types.CredentialReady {
		t.Fatalf("status = %v, want ready (err: %v)", result.Status, result.Err)
	}
	if result.Credential.OAuth2.AccessToken != "refreshed-token" {
		t.Errorf("access token = %q, want %q", result.Credential.OAuth2.AccessToken, "refreshed-token")
	}

	persisted, err := service.LoadCredential(ctx, scope)
	if err != nil {
		t.Fatalf("LoadCredential returned error: %v", err)
	}
	if persisted == nil || persisted.OAuth2.AccessToken != "refreshed-token" {
		t.Errorf("refreshed credential not persisted: %+v", persisted)
	}
	// the shared tool config is never written with per-user tokens
	if authConfig.ExchangedAuthCredential != nil {
		t.Errorf("per-user credential written to the shared config: %+v", authConfig.ExchangedAuthCredential)
	}
}

func TestCredentialManager_RefreshFailureIsFailedNotPending(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)

	cause := types.NewRefreshError(errors.New("invalid_grant"), "refresh access token")
	cm.RegisterCredentialRefresher(types.OpenIDConnectCredentialTypes, &staticRefresher{needed: true, err: cause})

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme("https://example.com/token"),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}
	scope := types.ScopeKey{AppName: "test-app", UserID: "test-user", CredentialKey: authConfig.CredentialKey()}
	if err := service.SaveCredential(ctx, scope, &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			AccessToken:  "stale",
			RefreshToken: "revoked",
			ExpiresAt:    time.Now().Add(-time.Minute),
		},
	}); err != nil {
		t.Fatalf("SaveCredential returned error: %v", err)
	}

	result := cm.GetAuthCredential(ctx, newToolContext(nil), authConfig)
	if result.Status != types.CredentialFailed {
		t.Fatalf("status = %v, want failed", result.Status)
	}
	var refreshErr *types.RefreshError
	if !errors.As(result.Err, &refreshErr) {
		t.Errorf("expected RefreshError, got %T: %v", result.Err, result.Err)
	}
}

func TestCredentialManager_ServiceAccountExchange(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)

	exchanged := &types.AuthCredential{
		AuthType: types.OAuth2CredentialTypes,
		OAuth2: &types.OAuth2Auth{
			AccessToken: "sa-bearer",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}
	ex := &staticExchanger{credential: exchanged}
	cm.RegisterCredentialExchanger(types.ServiceAccountCredentialTypes, ex)

	authConfig := &types.AuthConfig{
		AuthScheme: &types.HTTPBaseSecurityScheme{Type: types.HTTPCredentialTypes, Scheme: "bearer"},
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.ServiceAccountCredentialTypes,
			ServiceAccount: &types.ServiceAccount{
				UseDefaultCredential: true,
			},
		},
	}

	result := cm.GetAuthCredential(ctx, newToolContext(nil), authConfig)
	if result.Status != types.CredentialReady {
		t.Fatalf("status = %v, want ready (err: %v)", result.Status, result.Err)
	}
	if result.Credential.OAuth2.AccessToken != "sa-bearer" {
		t.Errorf("access token = %q, want %q", result.Credential.OAuth2.AccessToken, "sa-bearer")
	}
	if ex.calls != 1 {
		t.Errorf("exchanger called %d times, want 1", ex.calls)
	}

	persisted, err := service.LoadCredential(ctx, types.ScopeKey{
		AppName:       "test-app",
		UserID:        "test-user",
		CredentialKey: authConfig.CredentialKey(),
	})
	if err != nil {
		t.Fatalf("LoadCredential returned error: %v", err)
	}
	if persisted == nil || persisted.OAuth2.AccessToken != "sa-bearer" {
		t.Errorf("exchanged credential not persisted: %+v", persisted)
	}
}

func TestCredentialManager_ConsentResponsePickedUpFromSession(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)
	toolCtx := newToolContext(nil)

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme("https://example.com/token"),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}

	// A completed consent flow comes back as an event whose state delta
	// carries the credential; the loop commits it to the session before the
	// tool runs again.
	delivered := &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			ClientID:     "client",
			ClientSecret: "secret",
			AccessToken:  "consented-token",
		},
	}
	actions := types.NewEventActions().WithStateDelta(map[string]any{
		authConfig.CredentialKey(): delivered,
	})
	toolCtx.InvocationContext().Session.CommitActions(actions)

	result := cm.GetAuthCredential(ctx, toolCtx, authConfig)
	if result.Status != types.CredentialReady {
		t.Fatalf("status = %v, want ready (err: %v)", result.Status, result.Err)
	}
	if result.Credential.OAuth2.AccessToken != "consented-token" {
		t.Errorf("access token = %q, want the consented one", result.Credential.OAuth2.AccessToken)
	}
}

func TestCredentialManager_UnsupportedScheme(t *testing.T) {
	ctx := t.Context()

	cm := auth.NewCredentialManager(credentialservice.NewInMemory())

	authConfig := &types.AuthConfig{
		AuthScheme: &types.HTTPBaseSecurityScheme{Type: "mutualTLS", Scheme: "mutual"},
	}

	result := cm.GetAuthCredential(ctx, newToolContext(nil), authConfig)
	if result.Status != types.CredentialFailed {
		t.Fatalf("status = %v, want failed", result.Status)
	}
	var unsupported types.UnsupportedSchemeError
	if !errors.As(result.Err, &unsupported) {
		t.Errorf("expected UnsupportedSchemeError, got %T: %v", result.Err, result.Err)
	}
}

func TestCredentialManager_NilConfig(t *testing.T) {
	ctx := t.Context()

	cm := auth.NewCredentialManager(credentialservice.NewInMemory())

	result := cm.GetAuthCredential(ctx, newToolContext(nil), nil)
	if result.Status != types.CredentialFailed {
		t.Fatalf("status = %v, want failed", result.Status)
	}
	var incomplete types.IncompleteCredentialError
	if !errors.As(result.Err, &incomplete) {
		t.Errorf("expected IncompleteCredentialError, got %T: %v", result.Err, result.Err)
	}
}

func TestCredentialManager_FallsBackToInvocationService(t *testing.T) {
	ctx := t.Context()

	invocationService := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(nil)
	toolCtx := newToolContext(invocationService)

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme("https://example.com/token"),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}
	scope := types.ScopeKey{AppName: "test-app", UserID: "test-user", CredentialKey: authConfig.CredentialKey()}
	if err := invocationService.SaveCredential(ctx, scope, &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			AccessToken: "from-invocation-store",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}); err != nil {
		t.Fatalf("SaveCredential returned error: %v", err)
	}

	result := cm.GetAuthCredential(ctx, toolCtx, authConfig)
	if result.Status != types.CredentialReady {
		t.Fatalf("status = %v, want ready (err: %v)", result.Status, result.Err)
	}
	if result.Credential.OAuth2.AccessToken != "from-invocation-store" {
		t.Errorf("access token = %q, want the invocation store's", result.Credential.OAuth2.AccessToken)
	}
}

func TestCredentialManager_CallTimeoutBoundsTokenCalls(t *testing.T) {
	ctx := t.Context()

	// Stall until the client gives up. The handler blocks on a test-scoped
	// channel rather than r.Context().Done(): the unread POST body keeps the
	// server from watching the connection, so the request context is never
	// canceled on client disconnect and srv.Close would deadlock.
	unblock := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-unblock
	}))
	defer srv.Close()
	defer close(unblock)

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service, auth.WithCallTimeout(50*time.Millisecond))

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme(srv.URL),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}
	scope := types.ScopeKey{AppName: "test-app", UserID: "test-user", CredentialKey: authConfig.CredentialKey()}
	if err := service.SaveCredential(ctx, scope, &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			ClientID:     "client",
			ClientSecret: "secret",
			AccessToken:  "stale",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(-time.Minute),
		},
	}); err != nil {
		t.Fatalf("SaveCredential returned error: %v", err)
	}

	start := time.Now()
	result := cm.GetAuthCredential(ctx, newToolContext(nil), authConfig)
	if result.Status != types.CredentialFailed {
		t.Fatalf("status = %v, want failed for a hung token endpoint", result.Status)
	}
	var refreshErr *types.RefreshError
	if !errors.As(result.Err, &refreshErr) {
		t.Fatalf("expected RefreshError, got %T: %v", result.Err, result.Err)
	}
	if !errors.Is(result.Err, context.DeadlineExceeded) {
		t.Errorf("failure does not carry the timeout cause: %v", result.Err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("call not bounded by the configured timeout, took %v", elapsed)
	}
}

func TestCredentialManager_CredentialsDoNotLeakAcrossUsers(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)

	// One config per tool, shared by every user of that tool.
	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme("https://example.com/token"),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}

	// User A completed the consent flow; the token arrives via A's session.
	toolCtxA := newToolContextForUser("user-a", nil)
	toolCtxA.State().Set(authConfig.CredentialKey(), &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			ClientID:     "client",
			ClientSecret: "secret",
			AccessToken:  "user-a-token",
		},
	})

	resultA := cm.GetAuthCredential(ctx, toolCtxA, authConfig)
	if resultA.Status != types.CredentialReady {
		t.Fatalf("user A status = %v, want ready (err: %v)", resultA.Status, resultA.Err)
	}
	if resultA.Credential.OAuth2.AccessToken != "user-a-token" {
		t.Fatalf("user A access token = %q", resultA.Credential.OAuth2.AccessToken)
	}

	// User B never authorized: B must be asked for consent, never handed A's
	// token through the shared config.
	toolCtxB := newToolContextForUser("user-b", nil)
	resultB := cm.GetAuthCredential(ctx, toolCtxB, authConfig)
	if resultB.Status != types.CredentialPending {
		t.Fatalf("user B status = %v, want pending (credential: %+v, err: %v)",
			resultB.Status, resultB.Credential, resultB.Err)
	}

	storedB, err := service.LoadCredential(ctx, types.ScopeKey{
		AppName:       "test-app",
		UserID:        "user-b",
		CredentialKey: authConfig.CredentialKey(),
	})
	if err != nil {
		t.Fatalf("LoadCredential returned error: %v", err)
	}
	if storedB != nil {
		t.Errorf("credential stored under user B's scope: %+v", storedB)
	}
	if authConfig.ExchangedAuthCredential != nil {
		t.Errorf("per-user credential written to the shared config: %+v", authConfig.ExchangedAuthCredential)
	}
}

func TestCredentialManager_ParallelInvocationsShareConfig(t *testing.T) {
	ctx := t.Context()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service)

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme("https://example.com/token"),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			toolCtx := newToolContextForUser(userID, nil)
			toolCtx.State().Set(authConfig.CredentialKey(), &types.AuthCredential{
				AuthType: types.OpenIDConnectCredentialTypes,
				OAuth2: &types.OAuth2Auth{
					ClientID:     "client",
					ClientSecret: "secret",
					AccessToken:  "token-" + userID,
				},
			})

			result := cm.GetAuthCredential(ctx, toolCtx, authConfig)
			if result.Status != types.CredentialReady {
				t.Errorf("%s: status = %v, want ready (err: %v)", userID, result.Status, result.Err)
				return
			}
			if got := result.Credential.OAuth2.AccessToken; got != "token-"+userID {
				t.Errorf("%s: received another user's token %q", userID, got)
			}
		}()
	}
	wg.Wait()

	for i := range 8 {
		userID := fmt.Sprintf("user-%d", i)
		stored, err := service.LoadCredential(ctx, types.ScopeKey{
			AppName:       "test-app",
			UserID:        userID,
			CredentialKey: authConfig.CredentialKey(),
		})
		if err != nil {
			t.Fatalf("LoadCredential returned error: %v", err)
		}
		if stored == nil || stored.OAuth2.AccessToken != "token-"+userID {
			t.Errorf("%s: stored credential %+v", userID, stored)
		}
	}
}

func TestCredentialManager_RetryPolicyRetriesTransientFailures(t *testing.T) {
	ctx := t.Context()

	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, `{"error":"temporarily_unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"second-try","token_type":"Bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	service := credentialservice.NewInMemory()
	cm := auth.NewCredentialManager(service, auth.WithRetryPolicy(auth.RetryPolicy{Attempts: 2, Backoff: time.Millisecond}))

	authConfig := &types.AuthConfig{
		AuthScheme: oidcScheme(srv.URL),
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OpenIDConnectCredentialTypes,
			OAuth2:   &types.OAuth2Auth{ClientID: "client", ClientSecret: "secret"},
		},
	}
	scope := types.ScopeKey{AppName: "test-app", UserID: "test-user", CredentialKey: authConfig.CredentialKey()}
	if err := service.SaveCredential(ctx, scope, &types.AuthCredential{
		AuthType: types.OpenIDConnectCredentialTypes,
		OAuth2: &types.OAuth2Auth{
			ClientID:     "client",
			ClientSecret: "secret",
			AccessToken:  "stale",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(-time.Minute),
		},
	}); err != nil {
		t.Fatalf("SaveCredential returned error: %v", err)
	}

	result := cm.GetAuthCredential(ctx, newToolContext(nil), authConfig)
	if result.Status != types.CredentialReady {
		t.Fatalf("status = %v, want ready after retry (err: %v)", result.Status, result.Err)
	}
	if result.Credential.OAuth2.AccessToken != "second-try" {
		t.Errorf("access token = %q, want %q", result.Credential.OAuth2.AccessToken, "second-try")
	}
	if attempts != 2 {
		t.Errorf("token endpoint hit %d times, want 2", attempts)
	}
}
