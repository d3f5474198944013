// Copyright (c) 2026 Plume. All rights reserved.

package post

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/plumehq/plume/internal/blog/category"
	"github.com/plumehq/plume/internal/blog/label"
	"github.com/plumehq/plume/internal/blog/tag"
	"github.com/plumehq/plume/internal/platform/validate"
	"github.com/plumehq/plume/pkg/slice"
	"github.com/plumehq/plume/pkg/slug"
)

// Service owns post business logic: validation, slug derivation, label
// resolution, and the attach-versus-sync split between create and update.
type Service struct {
	repo       Repository
	categories label.Store
	tags       label.Store
	logger     *slog.Logger
}

func NewService(repo Repository, categories, tags label.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		tags:       tags,
		logger:     logger,
	}
}

func (service *Service) List(ctx context.Context) ([]Post, error) {
	return service.repo.FindAll(ctx)
}

func (service *Service) Get(ctx context.Context, id int64) (*Post, error) {
	return service.repo.FindByID(ctx, id)
}

func (service *Service) ListByUser(ctx context.Context, userID int64) ([]Post, error) {
	return service.repo.FindByUser(ctx, userID)
}

func (service *Service) ListByCategory(ctx context.Context, categoryID int64) ([]Post, error) {
	return service.repo.FindByCategory(ctx, categoryID)
}

func (service *Service) ListByTag(ctx context.Context, tagID int64) ([]Post, error) {
	return service.repo.FindByTag(ctx, tagID)
}

func (service *Service) Categories(ctx context.Context, postID int64) ([]category.Category, error) {
	if _, err := service.repo.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return service.repo.FindCategories(ctx, postID)
}

func (service *Service) Tags(ctx context.Context, postID int64) ([]tag.Tag, error) {
	if _, err := service.repo.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return service.repo.FindTags(ctx, postID)
}

// Create validates the input, persists the post, and attaches the resolved
// category and tag sets.
func (service *Service) Create(ctx context.Context, input Input) (*Post, error) {
	publishedAt, err := service.validate(input)
	if err != nil {
		return nil, err
	}

	categoryIDs, tagIDs, err := service.resolveLabels(ctx, input)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Title:         input.Title,
		Slug:          slug.From(input.Title),
		Content:       input.Content,
		FeaturedImage: input.FeaturedImage,
		Status:        input.Status,
		PublishedAt:   publishedAt,
		UserID:        input.UserID,
	}

	if err := service.repo.Create(ctx, post, categoryIDs, tagIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "post_created",
		slog.Int64("post_id", post.ID),
		slog.String("slug", post.Slug),
	)

	return service.repo.FindByID(ctx, post.ID)
}

// Update validates the input, overwrites the post's scalar fields, recomputes
// the slug, and syncs the associations: the stored label sets are replaced by
// the resolved ones.
func (service *Service) Update(ctx context.Context, id int64, input Input) (*Post, error) {
	publishedAt, err := service.validate(input)
	if err != nil {
		return nil, err
	}

	post, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categoryIDs, tagIDs, err := service.resolveLabels(ctx, input)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Slug = slug.From(input.Title)
	post.Content = input.Content
	post.FeaturedImage = input.FeaturedImage
	post.Status = input.Status
	post.PublishedAt = publishedAt
	post.UserID = input.UserID

	if err := service.repo.Update(ctx, post, categoryIDs, tagIDs); err != nil {
		return nil, err
	}

	return service.repo.FindByID(ctx, id)
}

func (service *Service) Delete(ctx context.Context, id int64) error {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return service.repo.Delete(ctx, id)
}

func (service *Service) validate(input Input) (*time.Time, error) {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 255)
	v.Required(FieldContent, input.Content)
	v.Required(FieldStatus, input.Status)
	if input.Status != "" {
		v.OneOf(FieldStatus, input.Status, StatusDraft, StatusPublished)
	}
	v.PositiveID(FieldUserID, input.UserID)
	if input.FeaturedImage != nil {
		v.URL(FieldFeaturedImage, *input.FeaturedImage)
	}
	if input.PublishedAt != nil {
		v.Date(FieldPublishedAt, *input.PublishedAt)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.PublishedAt == nil {
		return nil, nil
	}
	return parseDate(*input.PublishedAt), nil
}

// resolveLabels turns the ID-plus-name label inputs into final ID sets,
// creating missing labels by name as a side effect. Names are trimmed and
// blank entries dropped before resolution.
func (service *Service) resolveLabels(ctx context.Context, input Input) (categoryIDs, tagIDs []int64, err error) {
	categoryIDs, err = label.Resolve(ctx, service.categories, input.CategoryIDs, cleanNames(input.NewCategories))
	if err != nil {
		return nil, nil, err
	}

	tagIDs, err = label.Resolve(ctx, service.tags, input.TagIDs, cleanNames(input.NewTags))
	if err != nil {
		return nil, nil, err
	}

	return categoryIDs, tagIDs, nil
}

func cleanNames(names []string) []string {
	trimmed := slice.Map(names, strings.TrimSpace)
	return slice.Filter(trimmed, func(name string) bool { return name != "" })
}

// parseDate assumes the value already passed the Date validation rule.
func parseDate(value string) *time.Time {
	for _, layout := range validate.DateFormats {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}
