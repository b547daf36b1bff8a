// Copyright (c) 2026 Raytha. All rights reserved.

package revision

import (
	"encoding/json"
	"time"
)

// ParentType names the kind of entity a revision snapshot belongs to.
type ParentType string

const (
	ParentContentItem    ParentType = "content_item"
	ParentWebTemplate    ParentType = "web_template"
	ParentEmailTemplate  ParentType = "email_template"
	ParentNavigationMenu ParentType = "navigation_menu"
)

// IsValid reports whether the parent type is one of the revisioned kinds.
func (p ParentType) IsValid() bool {
	switch p {
	case ParentContentItem, ParentWebTemplate, ParentEmailTemplate, ParentNavigationMenu:
		return true
	}
	return false
}

// Revision is one append-only snapshot of a parent entity. Rows are never
// updated or deleted; reverting appends a new revision instead.
type Revision struct {
	ID            string          `json:"id"`
	ParentType    ParentType      `json:"parent_type"`
	ParentID      string          `json:"parent_id"`
	Snapshot      json.RawMessage `json:"snapshot"`
	CreatorUserID string          `json:"creator_user_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
