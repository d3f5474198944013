// Copyright (c) 2026 Plume. All rights reserved.

/*
Package category manages the category taxonomy for blog posts.

Categories are the "leaf" side of a many-to-many relation with posts: they
carry only a name and a derived slug, and can be created implicitly when a
post names a category that does not exist yet (see the label package).
*/
package category

import "time"

// Category is a broad editorial grouping applied to posts.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Field names used in validation errors.
const (
	FieldName = "name"
)
