// Copyright (c) 2026 Plume. All rights reserved.

package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/client"
)

func TestResourceStartsIdle(t *testing.T) {
	resource := client.NewResource(func(context.Context) ([]string, error) {
		return nil, nil
	})

	assert.Equal(t, client.StateIdle, resource.State())

	_, ok := resource.Value()
	assert.False(t, ok)
}

func TestResourceSuccessExposesPayload(t *testing.T) {
	resource := client.NewResource(func(context.Context) ([]string, error) {
		return []string{"first", "second"}, nil
	})

	require.True(t, resource.Fetch(context.Background()))
	resource.Wait()

	assert.Equal(t, client.StateSucceeded, resource.State())
	value, ok := resource.Value()
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, value)
	assert.Empty(t, resource.Err())
}

func TestResourceSingleInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	calls := 0

	resource := client.NewResource(func(context.Context) (int, error) {
		calls++
		<-release
		return 42, nil
	})

	require.True(t, resource.Fetch(context.Background()))
	assert.Equal(t, client.StatePending, resource.State())

	// A second fetch while pending must not start another request.
	assert.False(t, resource.Fetch(context.Background()))

	close(release)
	resource.Wait()

	assert.Equal(t, 1, calls)
	assert.Equal(t, client.StateSucceeded, resource.State())
}

func TestResourceFailureHidesStalePayload(t *testing.T) {
	shouldFail := false
	resource := client.NewResource(func(context.Context) ([]string, error) {
		if shouldFail {
			return nil, errors.New("connection refused")
		}
		return []string{"cached"}, nil
	})

	require.True(t, resource.Fetch(context.Background()))
	resource.Wait()
	require.Equal(t, client.StateSucceeded, resource.State())

	shouldFail = true
	require.True(t, resource.Fetch(context.Background()))
	resource.Wait()

	assert.Equal(t, client.StateFailed, resource.State())
	assert.Equal(t, "connection refused", resource.Err())

	// The old payload is no longer displayed...
	_, ok := resource.Value()
	assert.False(t, ok)

	// ...but survives internally for a later recovery.
	cached, ok := resource.Cached()
	require.True(t, ok)
	assert.Equal(t, []string{"cached"}, cached)
}

func TestResourceRecoversAfterFailure(t *testing.T) {
	shouldFail := true
	resource := client.NewResource(func(context.Context) (string, error) {
		if shouldFail {
			return "", errors.New("boom")
		}
		return "fresh", nil
	})

	require.True(t, resource.Fetch(context.Background()))
	resource.Wait()
	require.Equal(t, client.StateFailed, resource.State())

	shouldFail = false
	require.True(t, resource.Fetch(context.Background()), "failed state allows a new fetch")
	resource.Wait()

	assert.Equal(t, client.StateSucceeded, resource.State())
	value, ok := resource.Value()
	require.True(t, ok)
	assert.Equal(t, "fresh", value)
	assert.Empty(t, resource.Err())
}
