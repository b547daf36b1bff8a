// Copyright (c) 2026 Raytha. All rights reserved.

package field

import (
	"strconv"
	"strings"
	"time"
)

// # Display Rendering

// MultipleSelectDelimiter separates entries when a multi-select value is
// rendered as a single display string.
const MultipleSelectDelimiter = ", "

// RenderContext carries the organization-level settings and lookups a value
// needs to turn itself into a display string.
//
// The lookup funcs are optional. When nil, choice values fall back to their
// developer names and relationship values to the raw item id.
type RenderContext struct {
	// Location is the organization's IANA timezone for date display.
	Location *time.Location

	// DateFormat is a Go reference-time layout, e.g. "Jan 2, 2006".
	DateFormat string

	// ChoiceLabel resolves a choice developer name to its display label.
	ChoiceLabel func(developerName string) string

	// RelatedTitle resolves a related content item id to its primary
	// field's display string.
	RelatedTitle func(contentItemID string) string
}

func (rc RenderContext) location() *time.Location {
	if rc.Location == nil {
		return time.UTC
	}
	return rc.Location
}

func (rc RenderContext) dateFormat() string {
	if rc.DateFormat == "" {
		return DateWireFormat
	}
	return rc.DateFormat
}

func (v TextValue) Render(rc RenderContext) string     { return v.Text }
func (v LongTextValue) Render(rc RenderContext) string { return v.Text }

func (v NumberValue) Render(rc RenderContext) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

func (v DateValue) Render(rc RenderContext) string {
	if !v.Valid {
		return ""
	}
	return v.Date.In(rc.location()).Format(rc.dateFormat())
}

func (v CheckboxValue) Render(rc RenderContext) string {
	if !v.HasValue {
		return ""
	}
	if v.Checked {
		return "Yes"
	}
	return "No"
}

func (v SingleSelectValue) Render(rc RenderContext) string {
	if v.DeveloperName == "" {
		return ""
	}
	if rc.ChoiceLabel != nil {
		if label := rc.ChoiceLabel(v.DeveloperName); label != "" {
			return label
		}
	}
	return v.DeveloperName
}

func (v MultipleSelectValue) Render(rc RenderContext) string {
	if len(v.DeveloperNames) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(v.DeveloperNames))
	for _, developerName := range v.DeveloperNames {
		entry := developerName
		if rc.ChoiceLabel != nil {
			if label := rc.ChoiceLabel(developerName); label != "" {
				entry = label
			}
		}
		rendered = append(rendered, entry)
	}
	return strings.Join(rendered, MultipleSelectDelimiter)
}

func (v RelationshipValue) Render(rc RenderContext) string {
	if v.ContentItemID == "" {
		return ""
	}
	if rc.RelatedTitle != nil {
		if title := rc.RelatedTitle(v.ContentItemID); title != "" {
			return title
		}
	}
	return v.ContentItemID
}
