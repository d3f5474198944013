// Copyright (c) 2026 Plume. All rights reserved.

/*
Package constants provides centralized, immutable values shared across layers.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and per-IP tracking TTLs.
  - Security: JWT issuer and refresh-token cookie configuration.

Keeping these here removes magic numbers and strings from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "plume-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out response writes.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often idle IP entries are evicted from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "plume.blog"

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refresh_token"

	// RefreshTokenCookiePath scopes the refresh token cookie to the auth endpoints.
	RefreshTokenCookiePath = "/api"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes

const (
	RedisPrefixSession = "auth:session:"
)
