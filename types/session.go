// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"
)

// Session holds the per-conversation data a tool invocation runs against:
// the owning application, the end user, and the mutable session [State].
type Session struct {
	appName string
	userID  string
	id      string

	state *State

	lastUpdateTime time.Time
}

// NewSession creates a new [Session] for the given application, user and
// session id.
func NewSession(appName, userID, id string, state map[string]any) *Session {
	return &Session{
		appName:        appName,
		userID:         userID,
		id:             id,
		state:          NewState(state, nil),
		lastUpdateTime: time.Now(),
	}
}

// AppName returns the name of the application owning the session.
func (s *Session) AppName() string {
	return s.appName
}

// UserID returns the id of the end user owning the session.
func (s *Session) UserID() string {
	return s.userID
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns the session state.
func (s *Session) State() *State {
	return s.state
}

// LastUpdateTime returns the time the session was last updated.
func (s *Session) LastUpdateTime() time.Time {
	return s.lastUpdateTime
}

// CommitActions applies a processed event's actions to the session: the
// event's state delta is merged into the state, and pending local changes are
// marked committed. This is how a completed consent flow delivers an auth
// response for the next credential lookup.
func (s *Session) CommitActions(actions *EventActions) {
	if len(actions.StateDelta) > 0 {
		s.state.Update(actions.StateDelta)
	}
	if s.state.HasDelta() {
		s.state.ClearDelta()
	}
	s.lastUpdateTime = time.Now()
}
