// Copyright (c) 2026 Raytha. All rights reserved.

package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// # Value Variants

// Value is one typed field value inside a content document.
//
// The set of implementations is closed: the sealed() method prevents
// packages outside this one from adding variants, so stores and renderers
// can exhaustively switch on the concrete types.
type Value interface {
	// Kind returns the field type this value belongs to.
	Kind() FieldType

	// IsEmpty reports whether the value counts as "not provided" for
	// required-field validation.
	IsEmpty() bool

	// Render produces the display string for template output.
	Render(rc RenderContext) string

	// Raw returns the plain JSON-compatible representation (string,
	// float64, bool, []string or nil) used for tagged serialization.
	Raw() any

	sealed()
}

// DateWireFormat is the canonical serialization layout for date values.
const DateWireFormat = "2006-01-02"

// TextValue is a single_line_text value.
type TextValue struct {
	Text string
}

func (v TextValue) Kind() FieldType { return TypeSingleLineText }
func (v TextValue) IsEmpty() bool   { return strings.TrimSpace(v.Text) == "" }
func (v TextValue) Raw() any        { return v.Text }
func (v TextValue) sealed()         {}

// LongTextValue is a long_text value (multi-line, may contain markup).
type LongTextValue struct {
	Text string
}

func (v LongTextValue) Kind() FieldType { return TypeLongText }
func (v LongTextValue) IsEmpty() bool   { return strings.TrimSpace(v.Text) == "" }
func (v LongTextValue) Raw() any        { return v.Text }
func (v LongTextValue) sealed()         {}

// NumberValue is a number value. Valid distinguishes zero from absent.
type NumberValue struct {
	Number float64
	Valid  bool
}

func (v NumberValue) Kind() FieldType { return TypeNumber }
func (v NumberValue) IsEmpty() bool   { return !v.Valid }
func (v NumberValue) sealed()         {}

func (v NumberValue) Raw() any {
	if !v.Valid {
		return nil
	}
	return v.Number
}

// DateValue is a date value. Valid distinguishes the zero time from absent.
type DateValue struct {
	Date  time.Time
	Valid bool
}

func (v DateValue) Kind() FieldType { return TypeDate }
func (v DateValue) IsEmpty() bool   { return !v.Valid }
func (v DateValue) sealed()         {}

func (v DateValue) Raw() any {
	if !v.Valid {
		return nil
	}
	return v.Date.Format(DateWireFormat)
}

// CheckboxValue is a checkbox value.
//
// HasValue makes "unchecked" and "never answered" distinct states, which
// matters for required-checkbox validation.
type CheckboxValue struct {
	Checked  bool
	HasValue bool
}

func (v CheckboxValue) Kind() FieldType { return TypeCheckbox }
func (v CheckboxValue) IsEmpty() bool   { return !v.HasValue }
func (v CheckboxValue) sealed()         {}

func (v CheckboxValue) Raw() any {
	if !v.HasValue {
		return nil
	}
	return v.Checked
}

// SingleSelectValue holds the developer name of the chosen option.
type SingleSelectValue struct {
	DeveloperName string
}

func (v SingleSelectValue) Kind() FieldType { return TypeSingleSelect }
func (v SingleSelectValue) IsEmpty() bool   { return v.DeveloperName == "" }
func (v SingleSelectValue) Raw() any        { return v.DeveloperName }
func (v SingleSelectValue) sealed()         {}

// MultipleSelectValue holds the developer names of the chosen options, in
// selection order.
type MultipleSelectValue struct {
	DeveloperNames []string
}

func (v MultipleSelectValue) Kind() FieldType { return TypeMultipleSelect }
func (v MultipleSelectValue) IsEmpty() bool   { return len(v.DeveloperNames) == 0 }
func (v MultipleSelectValue) sealed()         {}

func (v MultipleSelectValue) Raw() any {
	// Never serialize nil; an empty selection is an empty array.
	if v.DeveloperNames == nil {
		return []string{}
	}
	return v.DeveloperNames
}

// RelationshipValue holds the id of the related content item.
type RelationshipValue struct {
	ContentItemID string
}

func (v RelationshipValue) Kind() FieldType { return TypeOneToOne }
func (v RelationshipValue) IsEmpty() bool   { return v.ContentItemID == "" }
func (v RelationshipValue) Raw() any        { return v.ContentItemID }
func (v RelationshipValue) sealed()         {}

// # Coercion

/*
ValueFrom coerces an untyped JSON-decoded value into the [Value] variant
for the given field type.

Description: API payloads and stored documents arrive as interface{} after
json.Unmarshal. This is the single choke point that turns those loose
shapes (string, float64, bool, []any, nil) into typed variants. A nil raw
always produces the empty value of the requested type.

Parameters:
  - fieldType: FieldType (Must be a member of the closed set)
  - raw: any (JSON-decoded input)

Returns:
  - Value: The typed variant
  - error: apperr.ValidationError when the shape does not fit the type
*/
func ValueFrom(fieldType FieldType, raw any) (Value, error) {
	switch fieldType {

	case TypeSingleLineText:
		text, err := coerceString(raw)
		if err != nil {
			return nil, err
		}
		return TextValue{Text: text}, nil

	case TypeLongText:
		text, err := coerceString(raw)
		if err != nil {
			return nil, err
		}
		return LongTextValue{Text: text}, nil

	case TypeNumber:
		if raw == nil {
			return NumberValue{}, nil
		}
		switch number := raw.(type) {
		case float64:
			return NumberValue{Number: number, Valid: true}, nil
		case int:
			return NumberValue{Number: float64(number), Valid: true}, nil
		case string:
			if strings.TrimSpace(number) == "" {
				return NumberValue{}, nil
			}
			parsed, err := strconv.ParseFloat(number, 64)
			if err != nil {
				return nil, apperr.ValidationError(fmt.Sprintf("Value %q is not a valid number", number))
			}
			return NumberValue{Number: parsed, Valid: true}, nil
		}
		return nil, apperr.ValidationError("Number field expects a numeric value")

	case TypeDate:
		if raw == nil {
			return DateValue{}, nil
		}
		text, ok := raw.(string)
		if !ok {
			return nil, apperr.ValidationError("Date field expects a string value")
		}
		if strings.TrimSpace(text) == "" {
			return DateValue{}, nil
		}
		parsed, err := parseDate(text)
		if err != nil {
			return nil, apperr.ValidationError(fmt.Sprintf("Value %q is not a valid date", text))
		}
		return DateValue{Date: parsed, Valid: true}, nil

	case TypeCheckbox:
		if raw == nil {
			return CheckboxValue{}, nil
		}
		checked, ok := raw.(bool)
		if !ok {
			return nil, apperr.ValidationError("Checkbox field expects a boolean value")
		}
		return CheckboxValue{Checked: checked, HasValue: true}, nil

	case TypeSingleSelect:
		choice, err := coerceString(raw)
		if err != nil {
			return nil, err
		}
		return SingleSelectValue{DeveloperName: choice}, nil

	case TypeMultipleSelect:
		if raw == nil {
			return MultipleSelectValue{DeveloperNames: []string{}}, nil
		}
		items, ok := raw.([]any)
		if !ok {
			// Tolerate already-typed slices from internal callers.
			if typed, isTyped := raw.([]string); isTyped {
				return MultipleSelectValue{DeveloperNames: typed}, nil
			}
			return nil, apperr.ValidationError("Multiple select field expects an array of strings")
		}
		choices := make([]string, 0, len(items))
		for _, item := range items {
			choice, isString := item.(string)
			if !isString {
				return nil, apperr.ValidationError("Multiple select field expects an array of strings")
			}
			choices = append(choices, choice)
		}
		return MultipleSelectValue{DeveloperNames: choices}, nil

	case TypeOneToOne:
		id, err := coerceString(raw)
		if err != nil {
			return nil, err
		}
		return RelationshipValue{ContentItemID: id}, nil
	}

	return nil, apperr.ValidationError(fmt.Sprintf("Unknown field type %q", fieldType))
}

// coerceString accepts a string or nil, rejecting everything else.
func coerceString(raw any) (string, error) {
	if raw == nil {
		return "", nil
	}
	text, ok := raw.(string)
	if !ok {
		return "", apperr.ValidationError("Field expects a string value")
	}
	return text, nil
}

// parseDate accepts the wire format first, then full RFC3339 timestamps.
func parseDate(text string) (time.Time, error) {
	if parsed, err := time.Parse(DateWireFormat, text); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, text)
}

// # Validation

/*
Validate checks a value against its field definition.

Description: This is the schema-driven validation executed on publish.
It verifies the required flag, choice membership for select fields, and
identifier format for relationships. Disabled choices are rejected on
write even though historical documents may still carry them.

Parameters:
  - value: Value (May be nil when the document has no entry for the field)
  - definition: Definition (The active schema entry)

Returns:
  - []apperr.FieldError: Empty when the value is acceptable
*/
func Validate(value Value, definition Definition) []apperr.FieldError {
	var fieldErrors []apperr.FieldError

	fail := func(message string) {
		fieldErrors = append(fieldErrors, apperr.FieldError{
			Field:   definition.DeveloperName,
			Message: message,
		})
	}

	// Absent or empty values only violate the required flag.
	if value == nil || value.IsEmpty() {
		if definition.IsRequired {
			fail("This field is required")
		}
		return fieldErrors
	}

	// A present value must match the declared type.
	if value.Kind() != definition.FieldType {
		fail(fmt.Sprintf("Expected a %s value", definition.FieldType))
		return fieldErrors
	}

	switch typed := value.(type) {

	case SingleSelectValue:
		choice, found := definition.ChoiceByDeveloperName(typed.DeveloperName)
		if !found {
			fail(fmt.Sprintf("%q is not an available choice", typed.DeveloperName))
		} else if choice.Disabled {
			fail(fmt.Sprintf("Choice %q is disabled", typed.DeveloperName))
		}

	case MultipleSelectValue:
		seen := make(map[string]bool, len(typed.DeveloperNames))
		for _, developerName := range typed.DeveloperNames {
			if seen[developerName] {
				fail(fmt.Sprintf("Choice %q is selected more than once", developerName))
				continue
			}
			seen[developerName] = true

			choice, found := definition.ChoiceByDeveloperName(developerName)
			if !found {
				fail(fmt.Sprintf("%q is not an available choice", developerName))
			} else if choice.Disabled {
				fail(fmt.Sprintf("Choice %q is disabled", developerName))
			}
		}

	case RelationshipValue:
		if !uuidv7.IsValid(typed.ContentItemID) {
			fail("Related content item id must be a valid UUID")
		}
	}

	return fieldErrors
}
