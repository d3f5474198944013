// Copyright (c) 2026 Plume. All rights reserved.

/*
Package label implements find-or-create resolution for post labels.

Categories and tags behave identically when attached to a post: the request
carries a list of existing label IDs plus a list of brand-new label names, and
the final association set is the union of both. This package owns that
resolution step; the category and tag repositories plug in via [Store].
*/
package label

import (
	"context"

	"github.com/plumehq/plume/pkg/slug"
)

// Store is the contract a label repository must satisfy to participate in
// resolution.
//
// # Concurrency
//
// FindOrCreate must be atomic per name: two concurrent requests naming the
// same new label must converge on a single row. The PostgreSQL
// implementations use a unique constraint on name plus an upsert
// (INSERT ... ON CONFLICT ... RETURNING id), never a check-then-insert.
type Store interface {
	// FindOrCreate returns the ID of the label with exactly the given name,
	// creating it with the given slug if absent.
	FindOrCreate(ctx context.Context, name, slugValue string) (int64, error)
}

// Resolve turns a set of existing label IDs and a list of new label names
// into the final, deduplicated ID set.
//
// # Semantics
//
//   - Names are processed in the supplied order; a name repeated within one
//     call is created (or found) once and reused.
//   - Existing labels are never mutated or deleted.
//   - Result order: existing IDs first, then newly resolved IDs.
//
// The slug for a created label is derived from its name via [slug.From].
func Resolve(ctx context.Context, store Store, existingIDs []int64, newNames []string) ([]int64, error) {
	resolved := make([]int64, 0, len(existingIDs)+len(newNames))
	seen := make(map[int64]struct{}, len(existingIDs)+len(newNames))

	for _, id := range existingIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}

	// Each distinct name hits the store once per call.
	byName := make(map[string]int64, len(newNames))
	for _, name := range newNames {
		id, ok := byName[name]
		if !ok {
			var err error
			id, err = store.FindOrCreate(ctx, name, slug.From(name))
			if err != nil {
				return nil, err
			}
			byName[name] = id
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}

	return resolved, nil
}
