// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository is the account storage contract.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// SessionRepository stores refresh sessions keyed by the SHA-256 hash of the
// refresh token. Expiry is enforced by the store (Redis TTL), so a found
// session is a live session.
type SessionRepository interface {
	Save(ctx context.Context, tokenHash string, session *Session, ttl time.Duration) error
	Find(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// TokenProvider generates signed access tokens. Satisfied by
// [sec.TokenService]; declared here so tests can stub it.
type TokenProvider interface {
	GenerateAccessToken(userID int64, name string, timeToLive time.Duration) (string, error)
}
