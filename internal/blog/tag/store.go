// Copyright (c) 2026 Plume. All rights reserved.

package tag

import "context"

// Repository is the data access contract for tags. FindOrCreate doubles as
// the label.Store implementation used when posts reference tags by name.
type Repository interface {
	List(ctx context.Context) ([]Tag, error)
	FindByID(ctx context.Context, id int64) (*Tag, error)
	Insert(ctx context.Context, tag *Tag) error
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id int64) error
	FindOrCreate(ctx context.Context, name, slug string) (int64, error)
}
