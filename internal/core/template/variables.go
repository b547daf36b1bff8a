// Copyright (c) 2026 Raytha. All rights reserved.

package template

import (
	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
)

// Variable categories exposed to templates.
const (
	CategoryCurrentOrganization   = "CurrentOrganization"
	CategoryCurrentUser           = "CurrentUser"
	CategoryRequest               = "Request"
	CategoryNavigationMenu        = "NavigationMenu"
	CategoryContentItem           = "ContentItem"
	CategoryContentItemListResult = "ContentItemListResult"
)

// InsertVariable is one template variable offered to the editor: the full
// path usable inside {{ }} and the developer name it derives from (empty
// for built-in variables).
type InsertVariable struct {
	TemplateVariable string `json:"template_variable"`
	DeveloperName    string `json:"developer_name,omitempty"`
}

// builtInVariables is the fixed variable surface, grouped by category.
var builtInVariables = map[string][]string{
	CategoryCurrentOrganization: {
		"CurrentOrganization.OrganizationName",
		"CurrentOrganization.WebsiteUrl",
		"CurrentOrganization.TimeZone",
		"CurrentOrganization.DateFormat",
	},
	CategoryCurrentUser: {
		"CurrentUser.Id",
		"CurrentUser.Email",
		"CurrentUser.IsAuthenticated",
	},
	CategoryRequest: {
		"Request.Path",
		"Request.Query",
		"Request.Url",
	},
	CategoryNavigationMenu: {
		"NavigationMenu.Label",
		"NavigationMenu.MenuItems",
	},
	CategoryContentItem: {
		"ContentItem.Id",
		"ContentItem.RoutePath",
		"ContentItem.IsPublished",
		"ContentItem.CreatedAt",
		"ContentItem.PrimaryField",
	},
	CategoryContentItemListResult: {
		"ContentItemListResult.Items",
		"ContentItemListResult.TotalCount",
		"ContentItemListResult.PageNumber",
		"ContentItemListResult.PageSize",
	},
}

/*
InsertVariablesFor lists every variable a template bound to the given
content type may reference.

Description: The list is the built-in categories plus one entry per ACTIVE
schema field under ContentItem.PublishedContent. Choice and relationship
fields additionally expose a ".Text" path that renders the display label
(choice label, or the related item's primary field) instead of the raw
stored value. Built-in templates have no bound content type; passing nil
returns the reduced built-in-only surface.

Parameters:
  - contentType: *contenttype.ContentType (nil for built-in templates)

Returns:
  - []InsertVariable: Stable order — built-ins first, then fields in
    FieldOrder
*/
func InsertVariablesFor(contentType *contenttype.ContentType) []InsertVariable {
	variables := make([]InsertVariable, 0, 32)

	categories := []string{
		CategoryCurrentOrganization, CategoryCurrentUser, CategoryRequest,
		CategoryNavigationMenu, CategoryContentItem, CategoryContentItemListResult,
	}
	for _, category := range categories {
		for _, path := range builtInVariables[category] {
			variables = append(variables, InsertVariable{TemplateVariable: path})
		}
	}

	if contentType == nil {
		return variables
	}

	for _, definition := range contentType.ActiveFields() {
		base := "ContentItem.PublishedContent." + definition.DeveloperName
		variables = append(variables, InsertVariable{
			TemplateVariable: base,
			DeveloperName:    definition.DeveloperName,
		})

		if definition.FieldType.HasChoices() || definition.FieldType.IsRelationship() {
			variables = append(variables, InsertVariable{
				TemplateVariable: base + ".Text",
				DeveloperName:    definition.DeveloperName,
			})
		}
	}

	return variables
}

// FieldVariableData builds the ContentItem.PublishedContent subtree of a
// render payload from a published document: each field's raw value plus,
// for choice and relationship fields, a "Text" sibling with the rendered
// display string.
func FieldVariableData(document field.Document, contentType *contenttype.ContentType, renderContext field.RenderContext) map[string]any {
	data := make(map[string]any, len(document))

	for _, definition := range contentType.ActiveFields() {
		value := document.Get(definition.DeveloperName)
		if value == nil {
			data[definition.DeveloperName] = ""
			continue
		}

		if definition.FieldType.HasChoices() || definition.FieldType.IsRelationship() {
			data[definition.DeveloperName] = map[string]any{
				"Value": value.Raw(),
				"Text":  value.Render(renderContext),
			}
			continue
		}
		data[definition.DeveloperName] = value.Render(renderContext)
	}

	return data
}
