// Copyright (c) 2026 Plume. All rights reserved.

// Package slug derives ASCII URL slugs from arbitrary Unicode text.
//
// # Usage
//
// Slugs are the human-readable identifiers for posts, categories, and tags
// (e.g., "hello-world"). The transform is deterministic and locale-agnostic:
// the same title always yields the same slug.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// hyphenRuns collapses consecutive hyphens left over after sanitization.
var hyphenRuns = regexp.MustCompile(`-{2,}`)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Decompose to NFD and strip combining marks (é → e).
//  2. Lowercase.
//  3. Replace every non-alphanumeric rune with a hyphen.
//  4. Collapse hyphen runs and trim leading/trailing hyphens.
//
// Empty or whitespace-only input produces an empty string; callers that
// need a non-empty identifier must check for that themselves.
func From(text string) string {
	// Accent removal: NFD decomposition followed by dropping the
	// non-spacing marks.
	stripped, _, _ := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), text)

	lowered := strings.ToLower(stripped)

	sanitized := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}, lowered)

	return strings.Trim(hyphenRuns.ReplaceAllString(sanitized, "-"), "-")
}
