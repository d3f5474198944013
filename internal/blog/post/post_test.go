// Copyright (c) 2026 Plume. All rights reserved.

package post_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/internal/blog/post"
)

func TestStringListAcceptsStringOrArray(t *testing.T) {
	tests := []struct {
		name string
		body string
		want post.StringList
	}{
		{"bare string", `{"new_categorie": "Music"}`, post.StringList{"Music"}},
		{"array", `{"new_categorie": ["Music", "Movies"]}`, post.StringList{"Music", "Movies"}},
		{"empty array", `{"new_categorie": []}`, post.StringList{}},
		{"absent", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input post.Input
			require.NoError(t, json.Unmarshal([]byte(tt.body), &input))
			assert.Equal(t, tt.want, input.NewCategories)
		})
	}
}

func TestStringListRejectsMixedTypes(t *testing.T) {
	var input post.Input
	err := json.Unmarshal([]byte(`{"new_tag": 7}`), &input)
	assert.Error(t, err)
}
