// Copyright (c) 2026 Plume. All rights reserved.

package comment

import "context"

// Repository is the data access contract for comments.
//
// PostExists and UserExists back the service-level referential checks: a
// missing parent is reported as a 404 before the write is attempted, instead
// of surfacing as a foreign key violation.
type Repository interface {
	List(ctx context.Context) ([]Comment, error)
	FindByID(ctx context.Context, id int64) (*Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	Insert(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id int64) error
	PostExists(ctx context.Context, postID int64) (bool, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
}
