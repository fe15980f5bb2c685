// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// EventActions represents the actions attached to a tool response event.
// The tool-calling loop applies them to the session with
// [Session.CommitActions].
type EventActions struct {
	// StateDelta indicates that the event is updating the state with the given delta.
	StateDelta map[string]any

	// RequestedAuthConfigs authentication configurations requested by tool responses.
	//
	// This field will only be set by a tool response event indicating tool request
	// auth credential.
	//
	// Keys:
	// The function call id. Since one function response event could contain
	// multiple function responses that correspond to multiple function calls. Each
	// function call could request different auth configs. This id is used to
	// identify the function call.
	//
	// Values:
	// The requested auth config.
	RequestedAuthConfigs map[string]*AuthConfig
}

// WithStateDelta configures the stateDelta to the [EventActions].
func (ea *EventActions) WithStateDelta(stateDelta map[string]any) *EventActions {
	ea.StateDelta = stateDelta
	return ea
}

// NewEventActions creates a new [EventActions] instance with default values.
func NewEventActions() *EventActions {
	return &EventActions{
		StateDelta:           make(map[string]any),
		RequestedAuthConfigs: make(map[string]*AuthConfig),
	}
}
