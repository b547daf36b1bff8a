// Copyright (c) 2026 Raytha. All rights reserved.

package contenttype

import (
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
)

// ContentType is an editor-defined content schema: a named, ordered
// collection of field definitions plus routing defaults.
//
// DeveloperName is immutable after creation and unique among non-deleted
// content types. PrimaryFieldID points at the field whose value titles a
// content item (route substitution, relationship display).
type ContentType struct {
	ID                   string    `json:"id"`
	LabelSingular        string    `json:"label_singular"`
	LabelPlural          string    `json:"label_plural"`
	DeveloperName        string    `json:"developer_name"`
	Description          string    `json:"description,omitempty"`
	DefaultRouteTemplate string    `json:"default_route_template"`
	PrimaryFieldID       string    `json:"primary_field_id"`
	IsDeleted            bool      `json:"-"`
	CreatorUserID        string    `json:"creator_user_id,omitempty"`
	LastModifierUserID   string    `json:"last_modifier_user_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Fields holds every field row including logically deleted ones,
	// ordered by FieldOrder. Use [ContentType.ActiveFields] for the
	// working schema.
	Fields []field.Definition `json:"fields"`
}

// ActiveFields returns the non-deleted fields in FieldOrder.
func (ct *ContentType) ActiveFields() []field.Definition {
	active := make([]field.Definition, 0, len(ct.Fields))
	for _, definition := range ct.Fields {
		if !definition.IsDeleted {
			active = append(active, definition)
		}
	}
	return active
}

// FieldByID returns the field with the given id, deleted or not.
func (ct *ContentType) FieldByID(id string) (*field.Definition, bool) {
	for index := range ct.Fields {
		if ct.Fields[index].ID == id {
			return &ct.Fields[index], true
		}
	}
	return nil, false
}

// FieldByDeveloperName returns the active field with the given developer name.
func (ct *ContentType) FieldByDeveloperName(developerName string) (*field.Definition, bool) {
	for index := range ct.Fields {
		if ct.Fields[index].DeveloperName == developerName && !ct.Fields[index].IsDeleted {
			return &ct.Fields[index], true
		}
	}
	return nil, false
}

// PrimaryField returns the field designated as the item title.
func (ct *ContentType) PrimaryField() (*field.Definition, bool) {
	return ct.FieldByID(ct.PrimaryFieldID)
}
