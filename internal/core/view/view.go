// Copyright (c) 2026 Raytha. All rights reserved.

package view

import (
	"time"
)

// Sort directions.
const (
	DirectionAscending  = "asc"
	DirectionDescending = "desc"
)

// Sort is one entry of a view's ordered sort specification. The first entry
// is the primary sort key.
type Sort struct {
	DeveloperName string `json:"developer_name"`
	Direction     string `json:"direction"`
}

// IsValidDirection reports whether the direction is one of the two allowed
// values.
func IsValidDirection(direction string) bool {
	return direction == DirectionAscending || direction == DirectionDescending
}

// View is a saved, named query over one content type: a filter tree, an
// ordered sort specification, and a column projection list.
//
// RoutePath is unique among views. Columns, Filter, and Sorts reference
// fields by developer name; entries are validated against the schema when
// saved, and entries whose field was deleted later are skipped at query
// time rather than failing the whole view.
type View struct {
	ID            string `json:"id"`
	ContentTypeID string `json:"content_type_id"`
	Label         string `json:"label"`
	DeveloperName string `json:"developer_name"`
	Description   string `json:"description,omitempty"`
	RoutePath     string `json:"route_path"`

	Columns []string    `json:"columns"`
	Filter  *FilterNode `json:"filter,omitempty"`
	Sorts   []Sort      `json:"sorts"`

	IsPublished bool `json:"is_published"`

	// DefaultItemsPerPage applies when the caller omits a page size;
	// MaxItemsPerPage is a hard ceiling regardless of what the caller asks.
	DefaultItemsPerPage int `json:"default_items_per_page"`
	MaxItemsPerPage     int `json:"max_items_per_page"`

	// IgnoreClientFilterSort rejects query-string filter/sort overrides on
	// public listings, leaving only the server-stored Filter and Sorts.
	IgnoreClientFilterSort bool `json:"ignore_client_filter_sort"`

	// FavoritedBy holds the admin user ids that pinned this view.
	FavoritedBy []string `json:"favorited_by,omitempty"`

	CreatorUserID      string    `json:"creator_user_id,omitempty"`
	LastModifierUserID string    `json:"last_modifier_user_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsFavoritedBy reports whether the given admin pinned this view.
func (v *View) IsFavoritedBy(userID string) bool {
	for _, id := range v.FavoritedBy {
		if id == userID {
			return true
		}
	}
	return false
}
