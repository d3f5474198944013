// Copyright (c) 2026 Plume. All rights reserved.

package category

import (
	"context"
	"log/slog"

	"github.com/plumehq/plume/internal/platform/validate"
	"github.com/plumehq/plume/pkg/slug"
)

// Service implements category use cases on top of a [Repository].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(ctx context.Context) ([]Category, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return service.repo.FindByID(ctx, id)
}

// Create validates the name, derives the slug, and persists a new category.
func (service *Service) Create(ctx context.Context, name string) (*Category, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldName, name).MaxLen(FieldName, name, 255).Err(); err != nil {
		return nil, err
	}

	category := &Category{
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.repo.Insert(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Update overwrites the name and recomputes the slug.
func (service *Service) Update(ctx context.Context, id int64, name string) (*Category, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldName, name).MaxLen(FieldName, name, 255).Err(); err != nil {
		return nil, err
	}

	category, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug.From(name)

	if err := service.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes the category. Join rows to posts are removed by the
// storage layer's ON DELETE CASCADE; the posts themselves are untouched.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return service.repo.Delete(ctx, id)
}

// FindOrCreate exposes the label resolution primitive for the post service.
func (service *Service) FindOrCreate(ctx context.Context, name, slugValue string) (int64, error) {
	return service.repo.FindOrCreate(ctx, name, slugValue)
}
