// Copyright (c) 2026 Plume. All rights reserved.

/*
Package client is the Go data layer for the Plume API.

It pairs a thin HTTP wrapper ([API]) with a fetch view model ([Resource])
that tracks the lifecycle of a remote read: idle until first requested,
pending while a request is in flight, then succeeded or failed. UI code
renders off the state; it never touches the transport.
*/
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds every API request. The view model has no retry; a
// hung request would otherwise pin a resource in the pending state.
const DefaultTimeout = 10 * time.Second

// Post mirrors the API's hydrated post payload.
type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at"`
	UserID        int64      `json:"user_id"`
	User          *Author    `json:"user"`
	Categories    []Label    `json:"categories"`
	Tags          []Label    `json:"tags"`
}

// Author is the post owner projection.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Label is the shared shape of categories and tags.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (%d %s)", e.Message, e.StatusCode, e.Code)
}

// API is the HTTP client for the Plume backend.
type API struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an [API] rooted at baseURL (e.g. "https://plume.blog/api").
func New(baseURL string) *API {
	return &API{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Posts fetches the post listing.
func (api *API) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := api.get(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post by ID.
func (api *API) Post(ctx context.Context, id int64) (*Post, error) {
	post := &Post{}
	if err := api.get(ctx, fmt.Sprintf("/posts/%d", id), post); err != nil {
		return nil, err
	}
	return post, nil
}

// get performs a GET request and unwraps the {"data": ...} envelope into out.
func (api *API) get(ctx context.Context, path string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, api.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := api.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s: %w", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiError := &APIError{StatusCode: response.StatusCode}
		if err := json.NewDecoder(response.Body).Decode(apiError); err != nil {
			apiError.Message = response.Status
		}
		return apiError
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("client: decode %s payload: %w", path, err)
	}

	return nil
}
