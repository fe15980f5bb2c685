// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"github.com/google/uuid"
)

// InvocationContext represents the data of a single tool invocation.
//
// An invocation starts with a user message, may contain one or multiple tool
// calls, and ends with a final response. The credential service reference is
// set once at service startup and shared by every invocation.
type InvocationContext struct {
	// CredentialService is the backend credential store for this service.
	CredentialService CredentialService

	// InvocationID is the id of this invocation context. Readonly.
	InvocationID string

	// Session is the current session of this invocation context. Readonly.
	Session *Session

	// EndInvocation terminates this invocation when set by callbacks or tools.
	EndInvocation bool
}

// NewInvocationContext creates a new [InvocationContext] for the session with
// a generated invocation id.
func NewInvocationContext(session *Session) *InvocationContext {
	return &InvocationContext{
		InvocationID: NewInvocationContextID(),
		Session:      session,
	}
}

// WithCredentialService sets the credential service for the [*InvocationContext].
func (ic *InvocationContext) WithCredentialService(service CredentialService) *InvocationContext {
	ic.CredentialService = service
	return ic
}

// AppName returns the name of the application of this invocation.
func (ic *InvocationContext) AppName() string {
	return ic.Session.AppName()
}

// UserID returns the id of the end user of this invocation.
func (ic *InvocationContext) UserID() string {
	return ic.Session.UserID()
}

// NewInvocationContextID generates a new invocation context ID.
func NewInvocationContextID() string {
	return "e-" + uuid.NewString()
}
