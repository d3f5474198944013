// Copyright (c) 2026 Plume. All rights reserved.

package post_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/internal/blog/category"
	"github.com/plumehq/plume/internal/blog/post"
	"github.com/plumehq/plume/internal/blog/tag"
	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/pkg/pointer"
)

// fakeLabelStore is an in-memory label.Store that records how many rows it
// created.
type fakeLabelStore struct {
	nextID  int64
	byName  map[string]int64
	slugs   map[string]string
	creates int
}

func newFakeLabelStore() *fakeLabelStore {
	return &fakeLabelStore{
		nextID: 100,
		byName: make(map[string]int64),
		slugs:  make(map[string]string),
	}
}

func (store *fakeLabelStore) FindOrCreate(_ context.Context, name, slugValue string) (int64, error) {
	if id, ok := store.byName[name]; ok {
		return id, nil
	}
	store.nextID++
	store.byName[name] = store.nextID
	store.slugs[name] = slugValue
	store.creates++
	return store.nextID, nil
}

// fakeRepo is an in-memory post.Repository tracking junction state per post.
type fakeRepo struct {
	nextID       int64
	posts        map[int64]post.Post
	categoryRows map[int64][]int64
	tagRows      map[int64][]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts:        make(map[int64]post.Post),
		categoryRows: make(map[int64][]int64),
		tagRows:      make(map[int64][]int64),
	}
}

func (repo *fakeRepo) FindAll(_ context.Context) ([]post.Post, error) {
	posts := make([]post.Post, 0, len(repo.posts))
	for _, p := range repo.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id int64) (*post.Post, error) {
	p, ok := repo.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return &p, nil
}

func (repo *fakeRepo) FindByUser(_ context.Context, userID int64) ([]post.Post, error) {
	posts := make([]post.Post, 0)
	for _, p := range repo.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (repo *fakeRepo) FindByCategory(_ context.Context, categoryID int64) ([]post.Post, error) {
	posts := make([]post.Post, 0)
	for id, links := range repo.categoryRows {
		for _, link := range links {
			if link == categoryID {
				posts = append(posts, repo.posts[id])
				break
			}
		}
	}
	return posts, nil
}

func (repo *fakeRepo) FindByTag(_ context.Context, tagID int64) ([]post.Post, error) {
	posts := make([]post.Post, 0)
	for id, links := range repo.tagRows {
		for _, link := range links {
			if link == tagID {
				posts = append(posts, repo.posts[id])
				break
			}
		}
	}
	return posts, nil
}

func (repo *fakeRepo) FindCategories(_ context.Context, postID int64) ([]category.Category, error) {
	categories := make([]category.Category, 0)
	for _, id := range repo.categoryRows[postID] {
		categories = append(categories, category.Category{ID: id})
	}
	return categories, nil
}

func (repo *fakeRepo) FindTags(_ context.Context, postID int64) ([]tag.Tag, error) {
	tags := make([]tag.Tag, 0)
	for _, id := range repo.tagRows[postID] {
		tags = append(tags, tag.Tag{ID: id})
	}
	return tags, nil
}

func (repo *fakeRepo) Create(_ context.Context, p *post.Post, categoryIDs, tagIDs []int64) error {
	repo.nextID++
	p.ID = repo.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	repo.posts[p.ID] = *p
	repo.categoryRows[p.ID] = append(repo.categoryRows[p.ID], categoryIDs...)
	repo.tagRows[p.ID] = append(repo.tagRows[p.ID], tagIDs...)
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, p *post.Post, categoryIDs, tagIDs []int64) error {
	if _, ok := repo.posts[p.ID]; !ok {
		return apperr.NotFound("Post")
	}
	p.UpdatedAt = time.Now()
	repo.posts[p.ID] = *p
	repo.categoryRows[p.ID] = categoryIDs
	repo.tagRows[p.ID] = tagIDs
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repo.posts, id)
	delete(repo.categoryRows, id)
	delete(repo.tagRows, id)
	return nil
}

func newTestService(repo post.Repository, categories, tags *fakeLabelStore) *post.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return post.NewService(repo, categories, tags, logger)
}

func validInput() post.Input {
	return post.Input{
		Title:   "Hello, World!",
		Content: "First post body",
		Status:  post.StatusPublished,
		UserID:  1,
	}
}

func TestServiceCreateDerivesSlugFromTitle(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, newFakeLabelStore(), newFakeLabelStore())

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "hello-world", created.Slug)
	assert.Equal(t, post.StatusPublished, created.Status)
}

func TestServiceCreateAttachesNewLabelOnce(t *testing.T) {
	repo := newFakeRepo()
	categories := newFakeLabelStore()
	service := newTestService(repo, categories, newFakeLabelStore())

	input := validInput()
	input.NewCategories = post.StringList{"Music", "Music"}

	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, categories.creates, "duplicate name in one request resolves to one row")
	assert.Equal(t, "music", categories.slugs["Music"])
	assert.Len(t, repo.categoryRows[created.ID], 1)
}

func TestServiceCreateIgnoresBlankLabelNames(t *testing.T) {
	repo := newFakeRepo()
	tags := newFakeLabelStore()
	service := newTestService(repo, newFakeLabelStore(), tags)

	input := validInput()
	input.NewTags = post.StringList{"  ", "", " jazz "}

	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, tags.creates)
	assert.Contains(t, tags.byName, "jazz", "names are trimmed before resolution")
	assert.Len(t, repo.tagRows[created.ID], 1)
}

func TestServiceCreateMixesExistingAndNewLabels(t *testing.T) {
	repo := newFakeRepo()
	tags := newFakeLabelStore()
	existingID, _ := tags.FindOrCreate(context.Background(), "go", "go")
	service := newTestService(repo, newFakeLabelStore(), tags)

	input := validInput()
	input.TagIDs = []int64{existingID}
	input.NewTags = post.StringList{"testing"}

	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, repo.tagRows[created.ID], 2)
	assert.Equal(t, existingID, repo.tagRows[created.ID][0], "existing IDs come first")
}

func TestServiceCreateValidation(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeLabelStore(), newFakeLabelStore())

	tests := []struct {
		name   string
		mutate func(*post.Input)
		field  string
	}{
		{"missing title", func(in *post.Input) { in.Title = "" }, "title"},
		{"missing content", func(in *post.Input) { in.Content = "   " }, "content"},
		{"unknown status", func(in *post.Input) { in.Status = "archived" }, "status"},
		{"zero user id", func(in *post.Input) { in.UserID = 0 }, "user_id"},
		{"bad image url", func(in *post.Input) { in.FeaturedImage = pointer.To("not a url") }, "featured_image"},
		{"bad publish date", func(in *post.Input) { in.PublishedAt = pointer.To("someday") }, "published_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := service.Create(context.Background(), input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			require.Len(t, appError.Details, 1)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

func TestServiceCreateParsesPublishedAt(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, newFakeLabelStore(), newFakeLabelStore())

	input := validInput()
	input.PublishedAt = pointer.To("2026-08-01")

	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, created.PublishedAt)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), created.PublishedAt.UTC())
}

func TestServiceUpdateSyncsTags(t *testing.T) {
	repo := newFakeRepo()
	tags := newFakeLabelStore()
	service := newTestService(repo, newFakeLabelStore(), tags)

	input := validInput()
	input.NewTags = post.StringList{"alpha", "beta"}
	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, repo.tagRows[created.ID], 2)
	betaID := tags.byName["beta"]

	update := validInput()
	update.Title = "Hello again"
	update.TagIDs = []int64{betaID}
	update.NewTags = post.StringList{"gamma"}

	updated, err := service.Update(context.Background(), created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, "hello-again", updated.Slug, "slug recomputed on update")
	assert.Equal(t, []int64{betaID, tags.byName["gamma"]}, repo.tagRows[created.ID],
		"stored set replaced by the resolved set")
	assert.Contains(t, tags.byName, "alpha", "detached label row still exists")
}

func TestServiceUpdateMissingPost(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeLabelStore(), newFakeLabelStore())

	_, err := service.Update(context.Background(), 999, validInput())
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestServiceDeleteMissingPost(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeLabelStore(), newFakeLabelStore())

	err := service.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
