// Copyright (c) 2026 Raytha. All rights reserved.

package template

import "time"

// BuiltInWebTemplateDeveloperName is the seeded fallback web template used
// when a public surface has no template of its own, such as a published
// view listing.
const BuiltInWebTemplateDeveloperName = "html-empty"

// WebTemplate is a page template for the public content surface.
//
// Content holds the template source with {{ Variable.Path }} placeholders.
// Built-in templates ship with the system: they can be edited but not
// deleted, and they expose a reduced variable surface because no content
// type is bound to them.
type WebTemplate struct {
	ID               string  `json:"id"`
	Label            string  `json:"label"`
	DeveloperName    string  `json:"developer_name"`
	Content          string  `json:"content"`
	IsBuiltIn        bool    `json:"is_built_in"`
	ParentTemplateID *string `json:"parent_template_id,omitempty"`

	CreatorUserID      string    `json:"creator_user_id,omitempty"`
	LastModifierUserID string    `json:"last_modifier_user_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EmailTemplate is a system notification template. The set is fixed:
// email templates are edited and revisioned but never created or deleted
// through the API.
type EmailTemplate struct {
	ID            string `json:"id"`
	DeveloperName string `json:"developer_name"`
	Subject       string `json:"subject"`
	Content       string `json:"content"`
	Cc            string `json:"cc,omitempty"`
	Bcc           string `json:"bcc,omitempty"`
	IsBuiltIn     bool   `json:"is_built_in"`

	CreatorUserID      string    `json:"creator_user_id,omitempty"`
	LastModifierUserID string    `json:"last_modifier_user_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
