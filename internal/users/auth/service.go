// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/sec"
	"github.com/plumehq/plume/pkg/uuidv7"
)

// Service implements the authentication use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput holds the credentials of an authentication attempt, plus the
// client fingerprint recorded on the session.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a freshly established session: the access token for the
// Authorization header and the refresh token destined for the cookie.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// CurrentUser loads the profile of an authenticated user.
func (service *Service) CurrentUser(ctx context.Context, userID int64) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// Register hashes the password and persists a new account. A duplicate email
// is a 409 regardless of whether it is caught by the pre-check or by the
// unique constraint.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password return the same message to prevent account enumeration.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.openSession(ctx, user, input.UserAgent, input.IPAddress)
}

// Logout revokes the session behind the given refresh token. An unknown or
// already-expired token is a successful logout.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	return service.sessions.Delete(ctx, sec.HashToken(refreshToken))
}

// Refresh rotates a refresh session: the presented token is revoked before
// the replacement pair is issued, so a replayed token dies with its session.
func (service *Service) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessions.Find(ctx, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessions.Delete(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("auth: revoke session: %w", err)
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	return service.openSession(ctx, user, userAgent, ipAddress)
}

func (service *Service) openSession(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Name, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: generate access token: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth: generate refresh token: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Save(ctx, sec.HashToken(refreshToken), session, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth: save session: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
