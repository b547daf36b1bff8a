// Copyright (c) 2026 Raytha. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RaythaHQ/raytha-sub000/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Hello World", "hello-world"},
		{"accents_removed", "Crème Brûlée", "creme-brulee"},
		{"punctuation_collapsed", "What's new?? (2026)", "what-s-new-2026"},
		{"leading_trailing_trimmed", "  --Blog Post-- ", "blog-post"},
		{"already_slug", "blog-post", "blog-post"},
		{"uppercase", "BLOG", "blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestIsValid checks the developer-name acceptance rule.
*/
func TestIsValid(t *testing.T) {
	assert.True(t, slug.IsValid("blog-post"))
	assert.True(t, slug.IsValid("page2"))
	assert.False(t, slug.IsValid(""))
	assert.False(t, slug.IsValid("Blog Post"))
	assert.False(t, slug.IsValid("-leading"))
	assert.False(t, slug.IsValid("double--hyphen"))
}
