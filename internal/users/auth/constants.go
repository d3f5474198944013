// Copyright (c) 2026 Plume. All rights reserved.

package auth

import "time"

const (
	// AccessTokenTTL is the lifetime of a JWT access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime of a refresh session. It also bounds
	// the Redis TTL on the stored session record.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// RefreshTokenLength is the entropy, in bytes, of a refresh token.
	RefreshTokenLength = 32

	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 8
)
