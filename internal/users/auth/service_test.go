// Copyright (c) 2026 Plume. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/sec"
	"github.com/plumehq/plume/internal/users/auth"
)

type fakeUserRepo struct {
	nextID  int64
	byID    map[int64]auth.User
	byEmail map[string]int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[int64]auth.User),
		byEmail: make(map[string]int64),
	}
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id int64) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	id, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user := repo.byID[id]
	return &user, nil
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	if _, ok := repo.byEmail[user.Email]; ok {
		return apperr.Conflict("User already exists")
	}
	repo.nextID++
	user.ID = repo.nextID
	repo.byID[user.ID] = *user
	repo.byEmail[user.Email] = user.ID
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]auth.Session)}
}

func (repo *fakeSessionRepo) Save(_ context.Context, tokenHash string, session *auth.Session, _ time.Duration) error {
	repo.sessions[tokenHash] = *session
	return nil
}

func (repo *fakeSessionRepo) Find(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := repo.sessions[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return &session, nil
}

func (repo *fakeSessionRepo) Delete(_ context.Context, tokenHash string) error {
	delete(repo.sessions, tokenHash)
	return nil
}

type fakeTokenProvider struct {
	issued int
}

func (provider *fakeTokenProvider) GenerateAccessToken(userID int64, _ string, _ time.Duration) (string, error) {
	provider.issued++
	return fmt.Sprintf("access-token-%d-%d", userID, provider.issued), nil
}

func newTestService(users auth.UserRepository, sessions auth.SessionRepository) *auth.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(users, sessions, &fakeTokenProvider{}, logger)
}

func register(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Ada",
		Email:    "ada@plume.blog",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestService(users, newFakeSessionRepo())

	user := register(t, service)

	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse", user.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := newTestService(newFakeUserRepo(), newFakeSessionRepo())
	register(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Also Ada",
		Email:    "ada@plume.blog",
		Password: "different pass",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestLoginIssuesTokensAndSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	service := newTestService(users, sessions)
	user := register(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "ada@plume.blog",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, user.ID, session.User.ID)

	stored, err := sessions.Find(context.Background(), sec.HashToken(session.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := newTestService(newFakeUserRepo(), newFakeSessionRepo())
	register(t, service)

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"unknown email", auth.LoginInput{Email: "nobody@plume.blog", Password: "correct horse"}},
		{"wrong password", auth.LoginInput{Email: "ada@plume.blog", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "UNAUTHORIZED", appError.Code)
			// Same message either way: no account enumeration.
			assert.Equal(t, "Invalid login credentials", appError.Message)
		})
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	service := newTestService(newFakeUserRepo(), sessions)
	register(t, service)

	login, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "ada@plume.blog",
		Password: "correct horse",
	})
	require.NoError(t, err)

	rotated, err := service.Refresh(context.Background(), login.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The presented token died with the rotation; replay must fail.
	_, err = service.Refresh(context.Background(), login.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token is live.
	_, err = sessions.Find(context.Background(), sec.HashToken(rotated.RefreshToken))
	assert.NoError(t, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	service := newTestService(newFakeUserRepo(), newFakeSessionRepo())

	assert.NoError(t, service.Logout(context.Background(), "never-issued-token"))
}
