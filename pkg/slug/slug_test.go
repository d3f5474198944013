// Copyright (c) 2026 Plume. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plumehq/plume/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Hello, World!", "hello-world"},
		{"already_slug", "hello-world", "hello-world"},
		{"accents", "Éléphant rosé", "elephant-rose"},
		{"punctuation_runs", "C++ & Go: a (biased) comparison!!", "c-go-a-biased-comparison"},
		{"digits", "Top 10 posts of 2024", "top-10-posts-of-2024"},
		{"leading_trailing_junk", "  --Hello--  ", "hello"},
		{"uppercase", "MUSIC", "music"},
		{"empty", "", ""},
		{"whitespace_only", "  ", ""},
		{"symbols_only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

func TestFrom_Deterministic(t *testing.T) {
	// The same title must always map to the same slug: it is recomputed on
	// every create and update of the owning entity.
	for i := 0; i < 3; i++ {
		assert.Equal(t, "les-vacances-d-ete", slug.From("Les vacances d'été"))
	}
}
