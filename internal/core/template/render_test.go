// Copyright (c) 2026 Raytha. All rights reserved.

package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/template"
)

func TestRenderWebSubstitutesVariables(t *testing.T) {
	data := map[string]any{
		"CurrentOrganization": map[string]any{
			"OrganizationName": "Acme Publishing",
		},
		"ContentItem": map[string]any{
			"PublishedContent": map[string]any{
				"title":      "Hello World",
				"page-views": "42",
			},
		},
	}

	rendered, err := template.RenderWeb(
		"<h1>{{ ContentItem.PublishedContent.title }}</h1>"+
			"<p>{{ ContentItem.PublishedContent.page-views }} views at {{ CurrentOrganization.OrganizationName }}</p>",
		data,
	)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hello World</h1><p>42 views at Acme Publishing</p>", rendered)
}

func TestRenderWebUnknownPathsRenderEmpty(t *testing.T) {
	rendered, err := template.RenderWeb(
		"before [{{ ContentItem.PublishedContent.missing }}] after",
		map[string]any{},
	)
	require.NoError(t, err)
	assert.Equal(t, "before [] after", rendered)
}

func TestRenderWebUnwrapsValueTextPairs(t *testing.T) {
	data := map[string]any{
		"ContentItem": map[string]any{
			"PublishedContent": map[string]any{
				"category": map[string]any{
					"Value": "tech",
					"Text":  "Technology",
				},
			},
		},
	}

	rendered, err := template.RenderWeb(
		"{{ ContentItem.PublishedContent.category }}|{{ ContentItem.PublishedContent.category.Text }}",
		data,
	)
	require.NoError(t, err)
	assert.Equal(t, "tech|Technology", rendered)
}

func TestRenderWebEscapesHTML(t *testing.T) {
	data := map[string]any{
		"ContentItem": map[string]any{
			"PublishedContent": map[string]any{
				"title": `<script>alert("x")</script>`,
			},
		},
	}

	rendered, err := template.RenderWeb("{{ ContentItem.PublishedContent.title }}", data)
	require.NoError(t, err)
	assert.NotContains(t, rendered, "<script>")
	assert.Contains(t, rendered, "&lt;script&gt;")
}

func TestRenderWebRejectsBrokenSyntax(t *testing.T) {
	_, err := template.RenderWeb("unclosed {{ action", map[string]any{})
	assert.Error(t, err)
}

func TestRenderEmailRendersSubjectAndBody(t *testing.T) {
	data := map[string]any{
		"CurrentUser": map[string]any{
			"Email": "editor@acme.test",
		},
	}

	subject, content, err := template.RenderEmail(
		"Welcome {{ CurrentUser.Email }}",
		"Hi {{ CurrentUser.Email }}, your account is <b>ready</b>.",
		data,
	)
	require.NoError(t, err)
	assert.Equal(t, "Welcome editor@acme.test", subject)
	assert.Equal(t, "Hi editor@acme.test, your account is <b>ready</b>.", content)
}
