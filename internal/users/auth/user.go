// Copyright (c) 2026 Plume. All rights reserved.

/*
Package auth implements user identity for the blog platform: registration,
login, logout, and refresh-token session rotation.

# Architecture

  - Service: business logic (credential checks, token issuance, rotation).
  - UserRepository: Postgres-backed account storage.
  - SessionRepository: Redis-backed refresh sessions, keyed by token hash.

Access tokens are short-lived RS256 JWTs; refresh tokens are opaque random
strings delivered in an HttpOnly cookie and stored server-side only as
SHA-256 hashes.
*/
package auth

import "time"

// User is a registered account. The password hash never serializes.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the server-side record of an issued refresh token.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)
