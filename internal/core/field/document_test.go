// Copyright (c) 2026 Raytha. All rights reserved.

package field_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
)

/*
TestDocument_RoundTrip verifies the tagged JSON form survives a full cycle.
*/
func TestDocument_RoundTrip(t *testing.T) {
	original := field.Document{
		"title":    field.TextValue{Text: "Launch Day"},
		"body":     field.LongTextValue{Text: "Line one.\nLine two."},
		"views":    field.NumberValue{Number: 1250, Valid: true},
		"date":     field.DateValue{Date: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), Valid: true},
		"featured": field.CheckboxValue{Checked: true, HasValue: true},
		"category": field.SingleSelectValue{DeveloperName: "tech"},
		"tags":     field.MultipleSelectValue{DeveloperNames: []string{"go", "cms"}},
		"author":   field.RelationshipValue{ContentItemID: "0191e9f0-0000-7000-8000-000000000001"},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded field.Document
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, original, decoded)
}

/*
TestDocument_UnknownKindTolerated checks that a snapshot written by a newer
schema version still loads; unrecognized entries are simply dropped.
*/
func TestDocument_UnknownKindTolerated(t *testing.T) {
	raw := `{
		"title": {"kind": "single_line_text", "value": "Hello"},
		"location": {"kind": "geo_point", "value": {"lat": 1, "lng": 2}}
	}`

	var decoded field.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	assert.Len(t, decoded, 1)
	assert.Equal(t, field.TextValue{Text: "Hello"}, decoded.Get("title"))
	assert.Nil(t, decoded.Get("location"))
}

func TestDocument_Clone(t *testing.T) {
	original := field.Document{
		"title": field.TextValue{Text: "Original"},
	}

	clone := original.Clone()
	clone["title"] = field.TextValue{Text: "Changed"}

	assert.Equal(t, field.TextValue{Text: "Original"}, original.Get("title"))
	assert.Equal(t, field.TextValue{Text: "Changed"}, clone.Get("title"))
}

/*
TestValidateDocument_SchemaDriven checks required enforcement for absent
entries and tolerance of entries whose field left the schema.
*/
func TestValidateDocument_SchemaDriven(t *testing.T) {
	definitions := []field.Definition{
		{DeveloperName: "title", FieldType: field.TypeSingleLineText, IsRequired: true},
		{DeveloperName: "summary", FieldType: field.TypeSingleLineText},
		{DeveloperName: "legacy", FieldType: field.TypeSingleLineText, IsRequired: true, IsDeleted: true},
	}

	document := field.Document{
		// No "title" entry at all.
		"orphaned": field.TextValue{Text: "my field was deleted"},
	}

	errs := field.ValidateDocument(document, definitions)
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
}
