// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
)

// ToolContext represents a context of the tool.
//
// This type provides the context for a tool invocation, including access to
// the invocation context, function call ID, event actions, and authentication
// response.
type ToolContext struct {
	invocationContext *InvocationContext
	functionCallID    string
	eventActions      *EventActions
}

// NewToolContext creates a new [ToolContext] with the given invocation context.
func NewToolContext(ictx *InvocationContext) *ToolContext {
	return &ToolContext{
		invocationContext: ictx,
		eventActions:      NewEventActions(),
	}
}

// WithFunctionCallID sets the function call ID for the [*ToolContext].
func (tc *ToolContext) WithFunctionCallID(funcCallID string) *ToolContext {
	tc.functionCallID = funcCallID
	return tc
}

// WithEventActions sets the [*EventActions] for the [*ToolContext].
func (tc *ToolContext) WithEventActions(eventActions *EventActions) *ToolContext {
	tc.eventActions = eventActions
	return tc
}

// InvocationContext returns the invocation context for the tool context.
func (tc *ToolContext) InvocationContext() *InvocationContext {
	return tc.invocationContext
}

// FunctionCallID returns the function call ID for the tool context.
func (tc *ToolContext) FunctionCallID() string {
	return tc.functionCallID
}

// Actions returns the event actions for the tool context.
func (tc *ToolContext) Actions() *EventActions {
	return tc.eventActions
}

// State returns the session state of the current invocation.
func (tc *ToolContext) State() *State {
	return tc.invocationContext.Session.State()
}

// RequestCredential records an authorization request for authConfig in the
// current invocation's actions, keyed by the function call id, so the
// tool-calling loop can surface the authorization uri to the end user and
// supply the completed credential back on a subsequent turn.
func (tc *ToolContext) RequestCredential(authConfig *AuthConfig) error {
	if tc.functionCallID == "" {
		return errors.New("functionCallID is not set")
	}

	tc.eventActions.RequestedAuthConfigs[tc.functionCallID] = authConfig

	return nil
}

// GetAuthResponse returns the auth credential a completed consent flow
// delivered for the given authConfig, or nil.
func (tc *ToolContext) GetAuthResponse(authConfig *AuthConfig) *AuthCredential {
	return NewAuthHandler(authConfig).GetAuthResponse(tc.State())
}
