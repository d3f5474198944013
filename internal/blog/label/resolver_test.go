// Copyright (c) 2026 Plume. All rights reserved.

package label_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/internal/blog/label"
)

// fakeStore is an in-memory label.Store that records creations.
type fakeStore struct {
	nextID  int64
	byName  map[string]int64
	slugs   map[string]string
	creates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 100, byName: map[string]int64{}, slugs: map[string]string{}}
}

func (s *fakeStore) FindOrCreate(_ context.Context, name, slugValue string) (int64, error) {
	if id, ok := s.byName[name]; ok {
		return id, nil
	}
	s.nextID++
	s.byName[name] = s.nextID
	s.slugs[name] = slugValue
	s.creates++
	return s.nextID, nil
}

func TestResolve_CreatesMissingLabels(t *testing.T) {
	store := newFakeStore()

	ids, err := label.Resolve(context.Background(), store, nil, []string{"Music"})
	require.NoError(t, err)

	require.Len(t, ids, 1)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, "music", store.slugs["Music"])
}

func TestResolve_ReusesExistingByExactName(t *testing.T) {
	store := newFakeStore()
	existing, err := store.FindOrCreate(context.Background(), "Music", "music")
	require.NoError(t, err)

	ids, err := label.Resolve(context.Background(), store, nil, []string{"Music"})
	require.NoError(t, err)

	assert.Equal(t, []int64{existing}, ids)
	assert.Equal(t, 1, store.creates)
}

func TestResolve_UnionOfExistingAndNew(t *testing.T) {
	store := newFakeStore()

	ids, err := label.Resolve(context.Background(), store, []int64{7, 9}, []string{"Jazz", "Blues"})
	require.NoError(t, err)

	require.Len(t, ids, 4)
	assert.Equal(t, int64(7), ids[0])
	assert.Equal(t, int64(9), ids[1])
	assert.Equal(t, 2, store.creates)
}

func TestResolve_DuplicateNamesResolveOnce(t *testing.T) {
	store := newFakeStore()

	ids, err := label.Resolve(context.Background(), store, nil, []string{"Rock", "Rock", "Rock"})
	require.NoError(t, err)

	assert.Len(t, ids, 1)
	assert.Equal(t, 1, store.creates)
}

func TestResolve_DedupsOverlapBetweenIDsAndNames(t *testing.T) {
	store := newFakeStore()
	existing, err := store.FindOrCreate(context.Background(), "Rock", "rock")
	require.NoError(t, err)

	// The caller passed the label both as an existing ID and as a "new" name.
	ids, err := label.Resolve(context.Background(), store, []int64{existing}, []string{"Rock"})
	require.NoError(t, err)

	assert.Equal(t, []int64{existing}, ids)
}

func TestResolve_EmptyInputs(t *testing.T) {
	store := newFakeStore()

	ids, err := label.Resolve(context.Background(), store, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, ids)
	assert.Zero(t, store.creates)
}
