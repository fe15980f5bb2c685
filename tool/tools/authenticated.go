// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-a2a/authkit/auth"
	"github.com/go-a2a/authkit/tool"
	"github.com/go-a2a/authkit/types"
)

// DefaultPendingAuthorizationResponse is returned by an [AuthenticatedTool]
// whose credential request is pending end-user authorization, unless the tool
// configures its own response.
const DefaultPendingAuthorizationResponse = "Pending User Authorization."

// Func is a tool body that does not accept a credential. The credential is
// withheld from it, never force-injected.
type Func func(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error)

// AuthenticatedFunc is a tool body that accepts the credential ready for use.
type AuthenticatedFunc func(ctx context.Context, args map[string]any, toolCtx *types.ToolContext, credential *types.AuthCredential) (any, error)

// AuthenticatedTool handles authentication before the actual tool logic gets
// called.
//
// When the credential manager reports that end-user authorization is still
// pending, the tool records the authorization request in the invocation's
// actions and returns its pending response instead of invoking the body.
// Refresh and exchange failures propagate as errors; they are never masked as
// pending.
type AuthenticatedTool struct {
	*tool.Tool

	Logger *slog.Logger

	credentialsManager      *auth.CredentialManager
	authConfig              *types.AuthConfig
	run                     AuthenticatedFunc
	runWithoutCredential    Func
	responseForAuthRequired any
}

var _ types.AuthenticatedTool = (*AuthenticatedTool)(nil)

// AuthenticatedToolOption configures an [AuthenticatedTool].
type AuthenticatedToolOption func(*AuthenticatedTool)

// WithResponseForAuthRequired sets the response returned while end-user
// authorization is pending.
func WithResponseForAuthRequired(response any) AuthenticatedToolOption {
	return func(t *AuthenticatedTool) {
		t.responseForAuthRequired = response
	}
}

// WithLogger sets the logger for the [AuthenticatedTool].
func WithLogger(logger *slog.Logger) AuthenticatedToolOption {
	return func(t *AuthenticatedTool) {
		t.Logger = logger
	}
}

// NewAuthenticatedTool creates a new authenticated tool wrapping fn.
//
// fn must be a [Func] or an [AuthenticatedFunc]; the credential is passed
// only to the latter. When authConfig or its scheme is missing the tool skips
// authentication and invokes fn unconditionally.
func NewAuthenticatedTool(name, description string, fn any, manager *auth.CredentialManager, authConfig *types.AuthConfig, opts ...AuthenticatedToolOption) (*AuthenticatedTool, error) {
	at := &AuthenticatedTool{
		Tool:   tool.NewTool(name, description, false),
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(at)
	}

	switch fn := fn.(type) {
	case AuthenticatedFunc:
		at.run = fn
	case func(ctx context.Context, args map[string]any, toolCtx *types.ToolContext, credential *types.AuthCredential) (any, error):
		at.run = fn
	case Func:
		at.runWithoutCredential = fn
	case func(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error):
		at.runWithoutCredential = fn
	default:
		return nil, fmt.Errorf("unsupported tool function type %T", fn)
	}

	if authConfig != nil && authConfig.AuthScheme != nil && manager != nil {
		at.credentialsManager = manager
		at.authConfig = authConfig
	} else {
		at.Logger.Warn("authConfig, authConfig.AuthScheme or manager is missing; skipping authentication for tool", "tool", name)
	}

	return at, nil
}

// Run implements [types.Tool].
func (t *AuthenticatedTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	var credential *types.AuthCredential
	if t.credentialsManager != nil {
		result := t.credentialsManager.GetAuthCredential(ctx, toolCtx, t.authConfig)
		switch result.Status {
		case types.CredentialPending:
			if err := toolCtx.RequestCredential(result.Request); err != nil {
				return nil, err
			}
			if t.responseForAuthRequired != nil {
				return t.responseForAuthRequired, nil
			}
			return DefaultPendingAuthorizationResponse, nil

		case types.CredentialFailed:
			return nil, result.Err

		case types.CredentialReady:
			credential = result.Credential
		}
	}

	return t.Execute(ctx, args, toolCtx, credential)
}

// Execute implements [types.AuthenticatedTool].
func (t *AuthenticatedTool) Execute(ctx context.Context, args map[string]any, toolCtx *types.ToolContext, credential *types.AuthCredential) (any, error) {
	switch {
	case t.run != nil:
		return t.run(ctx, args, toolCtx, credential)
	case t.runWithoutCredential != nil:
		return t.runWithoutCredential(ctx, args, toolCtx)
	default:
		return nil, errors.New("no tool function configured")
	}
}
