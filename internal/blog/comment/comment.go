// Copyright (c) 2026 Plume. All rights reserved.

// Package comment implements reader comments on blog posts.
package comment

import "time"

// Comment is a reader response attached to a post.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	FieldContent = "content"
	FieldPostID  = "post_id"
	FieldUserID  = "user_id"
)

// Input carries the client payload for creating or updating a comment.
type Input struct {
	Content string `json:"content"`
	PostID  int64  `json:"post_id"`
	UserID  int64  `json:"user_id"`
}
