// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools provides concrete tool implementations, including the
// authenticated tool wrapper that gates a tool body on credential
// availability.
package tools
