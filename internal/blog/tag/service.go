// Copyright (c) 2026 Plume. All rights reserved.

package tag

import (
	"context"
	"log/slog"

	"github.com/plumehq/plume/internal/platform/validate"
	"github.com/plumehq/plume/pkg/slug"
)

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

func (service *Service) List(ctx context.Context) ([]Tag, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, id int64) (*Tag, error) {
	return service.repo.FindByID(ctx, id)
}

func (service *Service) Create(ctx context.Context, name string) (*Tag, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldName, name).MaxLen(FieldName, name, 255).Err(); err != nil {
		return nil, err
	}

	tag := &Tag{
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.repo.Insert(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

func (service *Service) Update(ctx context.Context, id int64, name string) (*Tag, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldName, name).MaxLen(FieldName, name, 255).Err(); err != nil {
		return nil, err
	}

	tag, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	tag.Slug = slug.From(name)

	if err := service.repo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// Delete removes the tag; posts keep their other associations.
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
