// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types defines the value types and interfaces shared by the
// credential lifecycle subsystem: authentication schemes and credentials,
// the credential service, exchanger and refresher contracts, and the tool
// invocation context through which tools request and receive credentials.
package types
