// Copyright (c) 2026 Plume. All rights reserved.

/*
Package post implements blog post management: CRUD, slug generation, and the
many-to-many association of posts with categories and tags.

# Association semantics

Creating a post ATTACHES the resolved label set (additive). Updating a post
SYNCS it: the stored set is replaced by the resolved set, removed links are
deleted, and the label rows themselves are never touched. Labels can be
referenced by existing ID or by new name; new names go through
find-or-create resolution in the label package.
*/
package post

import (
	"encoding/json"
	"time"

	"github.com/plumehq/plume/internal/blog/category"
	"github.com/plumehq/plume/internal/blog/tag"
)

// Post is a blog entry hydrated with its author and label associations.
type Post struct {
	ID            int64               `json:"id"`
	Title         string              `json:"title"`
	Slug          string              `json:"slug"`
	Content       string              `json:"content"`
	FeaturedImage *string             `json:"featured_image"`
	Status        string              `json:"status"`
	PublishedAt   *time.Time          `json:"published_at"`
	UserID        int64               `json:"user_id"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	User          *Author             `json:"user,omitempty"`
	Categories    []category.Category `json:"categories"`
	Tags          []tag.Tag           `json:"tags"`
}

// Author is the post owner projection embedded in hydrated posts.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Input carries the client payload for creating or updating a post.
//
// Labels arrive in two forms: lists of existing IDs (categorie_id, tag_id)
// and lists of new names (new_categorie, new_tag). The legacy field names are
// kept for compatibility with the SPA client.
type Input struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	UserID        int64      `json:"user_id"`
	FeaturedImage *string    `json:"featured_image"`
	PublishedAt   *string    `json:"published_at"`
	CategoryIDs   []int64    `json:"categorie_id"`
	NewCategories StringList `json:"new_categorie"`
	TagIDs        []int64    `json:"tag_id"`
	NewTags       StringList `json:"new_tag"`
}

// StringList decodes from either a single JSON string or an array of
// strings. The SPA sends a bare string when only one new label is typed.
type StringList []string

func (list *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*list = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*list = StringList(many)
	return nil
}

const (
	FieldTitle         = "title"
	FieldContent       = "content"
	FieldStatus        = "status"
	FieldUserID        = "user_id"
	FieldFeaturedImage = "featured_image"
	FieldPublishedAt   = "published_at"
)

// Statuses accepted for the status field.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)
