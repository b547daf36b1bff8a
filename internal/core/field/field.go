// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package field implements the closed set of content field types and their values.

Every piece of content stored by the platform is a flat document mapping a
field developer name to a typed value. This package owns that vocabulary:
the [FieldType] enumeration, the [Value] variants, coercion from untyped
JSON input, schema-driven validation, and display rendering.

The variant set is deliberately closed. Adding a field type means touching
this package and nothing else; stores and templates only ever speak in
[Value] and [Document].
*/
package field

import "time"

// # Field Types

// FieldType identifies the data shape of a content type field.
type FieldType string

const (
	TypeSingleLineText FieldType = "single_line_text"
	TypeLongText       FieldType = "long_text"
	TypeNumber         FieldType = "number"
	TypeDate           FieldType = "date"
	TypeCheckbox       FieldType = "checkbox"
	TypeSingleSelect   FieldType = "single_select"
	TypeMultipleSelect FieldType = "multiple_select"
	TypeOneToOne       FieldType = "one_to_one_relationship"
)

// AllTypes returns every supported field type in display order.
func AllTypes() []FieldType {
	return []FieldType{
		TypeSingleLineText,
		TypeLongText,
		TypeNumber,
		TypeDate,
		TypeCheckbox,
		TypeSingleSelect,
		TypeMultipleSelect,
		TypeOneToOne,
	}
}

// IsValid reports whether the field type is a member of the closed set.
func (t FieldType) IsValid() bool {
	switch t {
	case TypeSingleLineText, TypeLongText, TypeNumber, TypeDate,
		TypeCheckbox, TypeSingleSelect, TypeMultipleSelect, TypeOneToOne:
		return true
	}
	return false
}

// HasChoices reports whether the field type carries a choice list.
func (t FieldType) HasChoices() bool {
	return t == TypeSingleSelect || t == TypeMultipleSelect
}

// IsRelationship reports whether the field type references another content item.
func (t FieldType) IsRelationship() bool {
	return t == TypeOneToOne
}

// # Field Definitions

// Choice is one selectable option of a single or multiple select field.
type Choice struct {
	Label         string `json:"label"`
	DeveloperName string `json:"developer_name"`
	Disabled      bool   `json:"disabled"`
}

// Definition describes one field of a content type's schema.
//
// DeveloperName is immutable after creation and unique among the content
// type's non-deleted fields. FieldOrder is kept dense (0..n-1) by the
// schema service.
type Definition struct {
	ID                   string    `json:"id"`
	ContentTypeID        string    `json:"content_type_id"`
	Label                string    `json:"label"`
	DeveloperName        string    `json:"developer_name"`
	Description          string    `json:"description,omitempty"`
	FieldType            FieldType `json:"field_type"`
	FieldOrder           int       `json:"field_order"`
	IsRequired           bool      `json:"is_required"`
	Choices              []Choice  `json:"choices,omitempty"`
	RelatedContentTypeID *string   `json:"related_content_type_id,omitempty"`
	IsDeleted            bool      `json:"-"`
	CreatedAt            time.Time `json:"-"`
	UpdatedAt            time.Time `json:"-"`
}

// ChoiceByDeveloperName looks up a choice option by its developer name.
func (d *Definition) ChoiceByDeveloperName(developerName string) (Choice, bool) {
	for _, choice := range d.Choices {
		if choice.DeveloperName == developerName {
			return choice, true
		}
	}
	return Choice{}, false
}
