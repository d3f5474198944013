// Copyright (c) 2026 Plume. All rights reserved.

package category

import "context"

// Repository is the data access contract for categories.
//
// FindOrCreate doubles as the [label.Store] implementation used when posts
// reference categories by name.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id int64) (*Category, error)
	Insert(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error

	// FindOrCreate returns the ID of the category with exactly the given
	// name, creating it with the given slug when absent. Must be atomic
	// per name.
	FindOrCreate(ctx context.Context, name, slug string) (int64, error)
}
