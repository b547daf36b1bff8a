// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem

import (
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
)

// ContentItem is one record of a content type, with separate draft and
// published bodies.
//
// IsDraft marks unsaved divergence: edits land in DraftContent and the
// published body stays untouched until the next publish. RoutePath is
// globally unique across all items.
type ContentItem struct {
	ID                 string         `json:"id"`
	ContentTypeID      string         `json:"content_type_id"`
	IsPublished        bool           `json:"is_published"`
	IsDraft            bool           `json:"is_draft"`
	DraftContent       field.Document `json:"draft_content"`
	PublishedContent   field.Document `json:"published_content"`
	RoutePath          string         `json:"route_path"`
	WebTemplateID      *string        `json:"web_template_id,omitempty"`
	CreatorUserID      string         `json:"creator_user_id,omitempty"`
	LastModifierUserID string         `json:"last_modifier_user_id,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// DeletedContentItem is a trashed item: a resolved snapshot that survives
// in its own table after the live row is removed.
//
// PrimaryFieldValue is resolved at deletion time so the trash listing can
// label entries even if the schema changes afterwards. Restore recreates
// the live row under the original item id and route path.
type DeletedContentItem struct {
	ID                string         `json:"id"`
	OriginalItemID    string         `json:"original_item_id"`
	ContentTypeID     string         `json:"content_type_id"`
	PrimaryFieldValue string         `json:"primary_field_value"`
	PublishedContent  field.Document `json:"published_content"`
	RoutePath         string         `json:"route_path"`
	WebTemplateID     *string        `json:"web_template_id,omitempty"`
	DeleterUserID     string         `json:"deleter_user_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}
