// Copyright (c) 2026 Plume. All rights reserved.

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/internal/blog/comment"
	"github.com/plumehq/plume/internal/platform/apperr"
)

type fakeRepo struct {
	nextID   int64
	comments map[int64]comment.Comment
	posts    map[int64]struct{}
	users    map[int64]struct{}
}

func newFakeRepo(postIDs, userIDs []int64) *fakeRepo {
	repo := &fakeRepo{
		comments: make(map[int64]comment.Comment),
		posts:    make(map[int64]struct{}),
		users:    make(map[int64]struct{}),
	}
	for _, id := range postIDs {
		repo.posts[id] = struct{}{}
	}
	for _, id := range userIDs {
		repo.users[id] = struct{}{}
	}
	return repo
}

func (repo *fakeRepo) List(_ context.Context) ([]comment.Comment, error) {
	comments := make([]comment.Comment, 0, len(repo.comments))
	for _, c := range repo.comments {
		comments = append(comments, c)
	}
	return comments, nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id int64) (*comment.Comment, error) {
	c, ok := repo.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return &c, nil
}

func (repo *fakeRepo) ListByPost(_ context.Context, postID int64) ([]comment.Comment, error) {
	comments := make([]comment.Comment, 0)
	for _, c := range repo.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (repo *fakeRepo) Insert(_ context.Context, c *comment.Comment) error {
	repo.nextID++
	c.ID = repo.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	repo.comments[c.ID] = *c
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, c *comment.Comment) error {
	if _, ok := repo.comments[c.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	c.UpdatedAt = time.Now()
	repo.comments[c.ID] = *c
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

func (repo *fakeRepo) PostExists(_ context.Context, postID int64) (bool, error) {
	_, ok := repo.posts[postID]
	return ok, nil
}

func (repo *fakeRepo) UserExists(_ context.Context, userID int64) (bool, error) {
	_, ok := repo.users[userID]
	return ok, nil
}

func newTestService(repo comment.Repository) *comment.Service {
	return comment.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceCreate(t *testing.T) {
	repo := newFakeRepo([]int64{1}, []int64{7})
	service := newTestService(repo)

	created, err := service.Create(context.Background(), comment.Input{
		Content: "Nice write-up",
		PostID:  1,
		UserID:  7,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Nice write-up", created.Content)
}

func TestServiceCreateMissingParents(t *testing.T) {
	service := newTestService(newFakeRepo([]int64{1}, []int64{7}))

	tests := []struct {
		name    string
		input   comment.Input
		message string
	}{
		{"missing post", comment.Input{Content: "hi", PostID: 99, UserID: 7}, "Post not found"},
		{"missing user", comment.Input{Content: "hi", PostID: 1, UserID: 99}, "User not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "NOT_FOUND", appError.Code)
			assert.Equal(t, tt.message, appError.Message)
		})
	}
}

func TestServiceCreateValidation(t *testing.T) {
	service := newTestService(newFakeRepo([]int64{1}, []int64{7}))

	_, err := service.Create(context.Background(), comment.Input{PostID: -1})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)
}

func TestServiceListByPostMissingPost(t *testing.T) {
	service := newTestService(newFakeRepo([]int64{1}, []int64{7}))

	_, err := service.ListByPost(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestServiceUpdateReassignsPost(t *testing.T) {
	repo := newFakeRepo([]int64{1, 2}, []int64{7})
	service := newTestService(repo)

	created, err := service.Create(context.Background(), comment.Input{Content: "first", PostID: 1, UserID: 7})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, comment.Input{Content: "edited", PostID: 2, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, int64(2), updated.PostID)
}
