// Copyright (c) 2026 Plume. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// Using a private, unexported key type prevents collisions with third-party
// packages that also store per-request values in the context.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the authenticated user claims.
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
