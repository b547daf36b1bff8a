// Copyright (c) 2026 Raytha. All rights reserved.

package field_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
)

/*
TestValueFrom_Coercion checks JSON-decoded input turns into the right variant.
*/
func TestValueFrom_Coercion(t *testing.T) {
	tests := []struct {
		name      string
		fieldType field.FieldType
		raw       any
		want      field.Value
		wantErr   bool
	}{
		{"text", field.TypeSingleLineText, "Hello", field.TextValue{Text: "Hello"}, false},
		{"text_nil", field.TypeSingleLineText, nil, field.TextValue{}, false},
		{"text_wrong_shape", field.TypeSingleLineText, 42.0, nil, true},
		{"long_text", field.TypeLongText, "Body", field.LongTextValue{Text: "Body"}, false},
		{"number_float", field.TypeNumber, 3.5, field.NumberValue{Number: 3.5, Valid: true}, false},
		{"number_string", field.TypeNumber, "10", field.NumberValue{Number: 10, Valid: true}, false},
		{"number_garbage", field.TypeNumber, "ten", nil, true},
		{"number_nil", field.TypeNumber, nil, field.NumberValue{}, false},
		{"checkbox_true", field.TypeCheckbox, true, field.CheckboxValue{Checked: true, HasValue: true}, false},
		{"checkbox_nil", field.TypeCheckbox, nil, field.CheckboxValue{}, false},
		{"checkbox_wrong_shape", field.TypeCheckbox, "yes", nil, true},
		{"single_select", field.TypeSingleSelect, "tech", field.SingleSelectValue{DeveloperName: "tech"}, false},
		{"multi_select", field.TypeMultipleSelect, []any{"a", "b"}, field.MultipleSelectValue{DeveloperNames: []string{"a", "b"}}, false},
		{"multi_select_wrong_shape", field.TypeMultipleSelect, "a", nil, true},
		{"unknown_type", field.FieldType("geo_point"), "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := field.ValueFrom(tt.fieldType, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueFrom_Date(t *testing.T) {
	value, err := field.ValueFrom(field.TypeDate, "2026-03-15")
	require.NoError(t, err)

	dateValue, ok := value.(field.DateValue)
	require.True(t, ok)
	assert.True(t, dateValue.Valid)
	assert.Equal(t, 2026, dateValue.Date.Year())
	assert.Equal(t, time.March, dateValue.Date.Month())

	_, err = field.ValueFrom(field.TypeDate, "15/03/2026")
	assert.Error(t, err)
}

/*
TestValidate_Required verifies the required flag across empty value shapes.
*/
func TestValidate_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    field.Value
		hasError bool
	}{
		{"missing", nil, true},
		{"blank_text", field.TextValue{Text: "   "}, true},
		{"unanswered_checkbox", field.CheckboxValue{}, true},
		{"unchecked_checkbox", field.CheckboxValue{Checked: false, HasValue: true}, false},
		{"zero_number", field.NumberValue{Number: 0, Valid: true}, false},
		{"present_text", field.TextValue{Text: "ok"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldType := field.TypeSingleLineText
			if tt.value != nil {
				fieldType = tt.value.Kind()
			}
			definition := field.Definition{
				DeveloperName: "title",
				FieldType:     fieldType,
				IsRequired:    true,
			}
			errs := field.Validate(tt.value, definition)
			if tt.hasError {
				require.Len(t, errs, 1)
				assert.Equal(t, "title", errs[0].Field)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

/*
TestValidate_Choices verifies choice membership and disabled-choice rejection.
*/
func TestValidate_Choices(t *testing.T) {
	definition := field.Definition{
		DeveloperName: "category",
		FieldType:     field.TypeSingleSelect,
		Choices: []field.Choice{
			{Label: "Technology", DeveloperName: "tech"},
			{Label: "Archived", DeveloperName: "archived", Disabled: true},
		},
	}

	assert.Empty(t, field.Validate(field.SingleSelectValue{DeveloperName: "tech"}, definition))

	errs := field.Validate(field.SingleSelectValue{DeveloperName: "sports"}, definition)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "not an available choice")

	errs = field.Validate(field.SingleSelectValue{DeveloperName: "archived"}, definition)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "disabled")
}

func TestValidate_MultipleSelect(t *testing.T) {
	definition := field.Definition{
		DeveloperName: "tags",
		FieldType:     field.TypeMultipleSelect,
		Choices: []field.Choice{
			{Label: "A", DeveloperName: "a"},
			{Label: "B", DeveloperName: "b"},
		},
	}

	assert.Empty(t, field.Validate(field.MultipleSelectValue{DeveloperNames: []string{"a", "b"}}, definition))

	// Duplicate selection plus an unknown choice accumulate separately.
	errs := field.Validate(field.MultipleSelectValue{DeveloperNames: []string{"a", "a", "zzz"}}, definition)
	assert.Len(t, errs, 2)
}

func TestValidate_TypeMismatch(t *testing.T) {
	definition := field.Definition{
		DeveloperName: "count",
		FieldType:     field.TypeNumber,
	}
	errs := field.Validate(field.TextValue{Text: "nope"}, definition)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "number")
}

/*
TestRender covers display strings for every variant.
*/
func TestRender(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	renderContext := field.RenderContext{
		Location:   tokyo,
		DateFormat: "Jan 2, 2006",
		ChoiceLabel: func(developerName string) string {
			if developerName == "tech" {
				return "Technology"
			}
			return ""
		},
		RelatedTitle: func(contentItemID string) string {
			return "Related Post"
		},
	}

	// Midnight UTC on the 15th is already the 15th (09:00) in Tokyo.
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value field.Value
		want  string
	}{
		{"text", field.TextValue{Text: "Hello"}, "Hello"},
		{"number_trims_zeroes", field.NumberValue{Number: 2.50, Valid: true}, "2.5"},
		{"number_empty", field.NumberValue{}, ""},
		{"date", field.DateValue{Date: date, Valid: true}, "Mar 15, 2026"},
		{"checkbox_yes", field.CheckboxValue{Checked: true, HasValue: true}, "Yes"},
		{"checkbox_no", field.CheckboxValue{Checked: false, HasValue: true}, "No"},
		{"checkbox_unanswered", field.CheckboxValue{}, ""},
		{"select_labelled", field.SingleSelectValue{DeveloperName: "tech"}, "Technology"},
		{"select_fallback", field.SingleSelectValue{DeveloperName: "misc"}, "misc"},
		{"multi_select", field.MultipleSelectValue{DeveloperNames: []string{"tech", "misc"}}, "Technology, misc"},
		{"relationship", field.RelationshipValue{ContentItemID: "some-id"}, "Related Post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Render(renderContext))
		})
	}
}
