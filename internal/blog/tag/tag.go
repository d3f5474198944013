// Copyright (c) 2026 Plume. All rights reserved.

// Package tag manages the free-form tag taxonomy for blog posts.
package tag

import "time"

// Tag is a fine-grained keyword applied to posts.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	FieldName = "name"
)
