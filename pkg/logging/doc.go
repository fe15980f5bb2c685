// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging using Go's
// standard slog package.
//
// Loggers are stored in and retrieved from context.Context values so the
// credential manager and tools log consistently without explicit plumbing:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
//		Level: slog.LevelInfo,
//	}))
//	ctx := logging.NewContext(ctx, logger)
//
//	logger = logging.FromContext(ctx)
//	logger.Info("credential refreshed", "credential_key", key)
//
// When no logger is found in the context, FromContext returns a default JSON
// logger writing to stdout at INFO level.
package logging
