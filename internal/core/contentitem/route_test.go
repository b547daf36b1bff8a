// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
)

func TestExpandRoute(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)

	rc := contentitem.RouteContext{
		ContentTypeDeveloperName: "blog-post",
		PrimaryFieldValue:        "Hello, World!",
		ItemID:                   "0195a1e2-0000-7000-8000-000000000001",
		Now:                      now,
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "type and primary field",
			template: "{ContentTypeDeveloperName}/{PrimaryField}",
			want:     "blog-post/hello-world",
		},
		{
			name:     "placeholders are case insensitive",
			template: "{contenttypedevelopername}/{PRIMARYFIELD}",
			want:     "blog-post/hello-world",
		},
		{
			name:     "date components are zero padded",
			template: "{CurrentYear}/{CurrentMonth}/{CurrentDay}/{PrimaryField}",
			want:     "2026/03/07/hello-world",
		},
		{
			name:     "item id",
			template: "posts/{Id}",
			want:     "posts/0195a1e2-0000-7000-8000-000000000001",
		},
		{
			name:     "unknown placeholders pass through",
			template: "{Mystery}/{PrimaryField}",
			want:     "{Mystery}/hello-world",
		},
		{
			name:     "surrounding slashes are trimmed",
			template: "/{ContentTypeDeveloperName}//{PrimaryField}/",
			want:     "blog-post/hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentitem.ExpandRoute(tt.template, rc))
		})
	}
}

func TestNormalizeRoutePath(t *testing.T) {
	assert.Equal(t, "a/b/c", contentitem.NormalizeRoutePath("/a//b/c/"))
	assert.Equal(t, "a/b", contentitem.NormalizeRoutePath("a/ /b"))
	assert.Equal(t, "", contentitem.NormalizeRoutePath("///"))
	assert.Equal(t, "", contentitem.NormalizeRoutePath(""))
}
