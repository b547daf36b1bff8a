// Copyright (c) 2026 Raytha. All rights reserved.

package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/core/template"
)

func articleType() *contenttype.ContentType {
	return &contenttype.ContentType{
		ID:            "type-1",
		LabelSingular: "Article",
		DeveloperName: "article",
		Fields: []field.Definition{
			{
				ID: "f-title", ContentTypeID: "type-1", Label: "Title",
				DeveloperName: "title", FieldType: field.TypeSingleLineText, FieldOrder: 0,
			},
			{
				ID: "f-category", ContentTypeID: "type-1", Label: "Category",
				DeveloperName: "category", FieldType: field.TypeSingleSelect, FieldOrder: 1,
				Choices: []field.Choice{
					{Label: "Technology", DeveloperName: "tech"},
					{Label: "Travel", DeveloperName: "travel"},
				},
			},
			{
				ID: "f-author", ContentTypeID: "type-1", Label: "Author",
				DeveloperName: "author", FieldType: field.TypeOneToOne, FieldOrder: 2,
			},
			{
				ID: "f-legacy", ContentTypeID: "type-1", Label: "Legacy",
				DeveloperName: "legacy", FieldType: field.TypeSingleLineText, FieldOrder: 3,
				IsDeleted: true,
			},
		},
	}
}

func variablePaths(variables []template.InsertVariable) []string {
	paths := make([]string, 0, len(variables))
	for _, variable := range variables {
		paths = append(paths, variable.TemplateVariable)
	}
	return paths
}

func TestInsertVariablesForNilTypeIsBuiltInOnly(t *testing.T) {
	paths := variablePaths(template.InsertVariablesFor(nil))

	assert.Contains(t, paths, "CurrentOrganization.OrganizationName")
	assert.Contains(t, paths, "ContentItem.PrimaryField")
	for _, path := range paths {
		assert.NotContains(t, path, "PublishedContent")
	}
}

func TestInsertVariablesForIncludesActiveFields(t *testing.T) {
	paths := variablePaths(template.InsertVariablesFor(articleType()))

	assert.Contains(t, paths, "ContentItem.PublishedContent.title")
	assert.Contains(t, paths, "ContentItem.PublishedContent.category")
	assert.Contains(t, paths, "ContentItem.PublishedContent.category.Text")
	assert.Contains(t, paths, "ContentItem.PublishedContent.author")
	assert.Contains(t, paths, "ContentItem.PublishedContent.author.Text")

	// Plain text fields get no .Text path and deleted fields are absent.
	assert.NotContains(t, paths, "ContentItem.PublishedContent.title.Text")
	assert.NotContains(t, paths, "ContentItem.PublishedContent.legacy")
}

func TestFieldVariableData(t *testing.T) {
	contentType := articleType()

	title, err := field.ValueFrom(field.TypeSingleLineText, "Hello World")
	require.NoError(t, err)
	category, err := field.ValueFrom(field.TypeSingleSelect, "tech")
	require.NoError(t, err)

	document := field.Document{"title": title, "category": category}

	renderContext := field.RenderContext{
		ChoiceLabel: func(developerName string) string {
			if developerName == "tech" {
				return "Technology"
			}
			return ""
		},
	}

	data := template.FieldVariableData(document, contentType, renderContext)

	assert.Equal(t, "Hello World", data["title"])
	assert.Equal(t, map[string]any{"Value": "tech", "Text": "Technology"}, data["category"])

	// Fields without a stored value render empty rather than vanishing.
	assert.Equal(t, "", data["author"])

	_, hasLegacy := data["legacy"]
	assert.False(t, hasLegacy)
}
