// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tool provides the base type all tools embed. Concrete tools,
// including the authenticated wrapper, live in the tools subpackage.
package tool
