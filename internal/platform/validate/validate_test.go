// Copyright (c) 2026 Plume. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/validate"
)

func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "My first post", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://cdn.plume.blog/cover.png", true},
		{"http", "http://example.com/a.jpg", true},
		{"relative_path", "/images/a.jpg", false},
		{"no_scheme", "example.com/a.jpg", false},
		{"garbage", "::not-a-url::", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("featured_image", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

func TestValidator_Date(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"rfc3339", "2024-06-01T10:00:00Z", true},
		{"date_only", "2024-06-01", true},
		{"french_format", "01/06/2024", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("published_at", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

func TestValidator_PositiveID(t *testing.T) {
	v := &validate.Validator{}
	v.PositiveID("user_id", 7)
	assert.False(t, v.HasErrors())

	v.PositiveID("user_id", 0)
	assert.True(t, v.HasErrors())
}

func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").
		Required("content", "").
		PositiveID("user_id", -1)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}
