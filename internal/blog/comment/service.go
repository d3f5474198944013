// Copyright (c) 2026 Plume. All rights reserved.

package comment

import (
	"context"
	"log/slog"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/validate"
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

func (service *Service) List(ctx context.Context) ([]Comment, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, id int64) (*Comment, error) {
	return service.repo.FindByID(ctx, id)
}

// ListByPost returns the comments of a post, oldest first. A missing post is
// a 404, not an empty list.
func (service *Service) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	exists, err := service.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Post")
	}
	return service.repo.ListByPost(ctx, postID)
}

func (service *Service) Create(ctx context.Context, input Input) (*Comment, error) {
	if err := service.validate(ctx, input); err != nil {
		return nil, err
	}

	comment := &Comment{
		Content: input.Content,
		PostID:  input.PostID,
		UserID:  input.UserID,
	}

	if err := service.repo.Insert(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Comment, error) {
	if err := service.validate(ctx, input); err != nil {
		return nil, err
	}

	comment, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.Content = input.Content
	comment.PostID = input.PostID
	comment.UserID = input.UserID

	if err := service.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return service.repo.Delete(ctx, id)
}

// validate checks the scalar fields, then that both referenced parents exist.
func (service *Service) validate(ctx context.Context, input Input) error {
	v := &validate.Validator{}
	v.Required(FieldContent, input.Content)
	v.PositiveID(FieldPostID, input.PostID)
	v.PositiveID(FieldUserID, input.UserID)
	if err := v.Err(); err != nil {
		return err
	}

	exists, err := service.repo.PostExists(ctx, input.PostID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Post")
	}

	exists, err = service.repo.UserExists(ctx, input.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("User")
	}

	return nil
}
