// Copyright (c) 2026 Plume. All rights reserved.

package post

import (
	"context"

	"github.com/plumehq/plume/internal/blog/category"
	"github.com/plumehq/plume/internal/blog/tag"
)

// Repository is the data access contract for posts.
//
// Create and Update receive the fully resolved label ID sets and are expected
// to run the row write and the association write in one transaction. Create
// attaches; Update replaces the stored set with the given one.
type Repository interface {
	FindAll(ctx context.Context) ([]Post, error)
	FindByID(ctx context.Context, id int64) (*Post, error)
	FindByUser(ctx context.Context, userID int64) ([]Post, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]Post, error)
	FindByTag(ctx context.Context, tagID int64) ([]Post, error)
	FindCategories(ctx context.Context, postID int64) ([]category.Category, error)
	FindTags(ctx context.Context, postID int64) ([]tag.Tag, error)
	Create(ctx context.Context, post *Post, categoryIDs, tagIDs []int64) error
	Update(ctx context.Context, post *Post, categoryIDs, tagIDs []int64) error
	Delete(ctx context.Context, id int64) error
}
