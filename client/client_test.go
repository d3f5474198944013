// Copyright (c) 2026 Plume. All rights reserved.

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/client"
)

func TestAPIPostsUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/posts", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"data": [
				{"id": 1, "title": "Hello", "slug": "hello", "categories": [{"id": 3, "name": "Music", "slug": "music"}]}
			],
			"meta": {"page": 1, "limit": 20, "total": 1, "total_pages": 1}
		}`))
	}))
	defer server.Close()

	api := client.New(server.URL)
	posts, err := api.Posts(context.Background())
	require.NoError(t, err)

	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Slug)
	require.Len(t, posts[0].Categories, 1)
	assert.Equal(t, "Music", posts[0].Categories[0].Name)
}

func TestAPIPostNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"error": "Post not found", "code": "NOT_FOUND"}`))
	}))
	defer server.Close()

	api := client.New(server.URL)
	_, err := api.Post(context.Background(), 99)
	require.Error(t, err)

	apiError := &client.APIError{}
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusNotFound, apiError.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiError.Code)
	assert.Equal(t, "Post not found", apiError.Message)
}

func TestAPIResourceIntegration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"data": [{"id": 7, "title": "Wired", "slug": "wired"}]}`))
	}))
	defer server.Close()

	api := client.New(server.URL)
	posts := client.NewResource(api.Posts)

	require.True(t, posts.Fetch(context.Background()))
	posts.Wait()

	require.Equal(t, client.StateSucceeded, posts.State())
	value, ok := posts.Value()
	require.True(t, ok)
	require.Len(t, value, 1)
	assert.Equal(t, int64(7), value[0].ID)
}
