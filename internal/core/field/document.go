// Copyright (c) 2026 Raytha. All rights reserved.

package field

import (
	"encoding/json"
	"fmt"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
)

// # Content Documents

// Document is the flat content body of a content item: field developer name
// to typed value. It serializes to a stable tagged JSON form,
//
//	{"title": {"kind": "single_line_text", "value": "Hello"}, ...}
//
// so that stored documents remain self-describing even after schema fields
// are deleted or added.
type Document map[string]Value

// taggedValue is the wire shape of one document entry.
type taggedValue struct {
	Kind  FieldType       `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON implements json.Marshaler using the tagged representation.
func (d Document) MarshalJSON() ([]byte, error) {
	wire := make(map[string]taggedValue, len(d))
	for developerName, value := range d {
		if value == nil {
			continue
		}
		rawJSON, err := json.Marshal(value.Raw())
		if err != nil {
			return nil, fmt.Errorf("field: marshal %q: %w", developerName, err)
		}
		wire[developerName] = taggedValue{Kind: value.Kind(), Value: rawJSON}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Entries with an unrecognized kind are dropped rather than failing the
// whole document: a stored snapshot must stay readable across upgrades.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire map[string]taggedValue
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("field: unmarshal document: %w", err)
	}

	document := make(Document, len(wire))
	for developerName, entry := range wire {
		if !entry.Kind.IsValid() {
			continue
		}

		var raw any
		if len(entry.Value) > 0 {
			if err := json.Unmarshal(entry.Value, &raw); err != nil {
				return fmt.Errorf("field: unmarshal %q: %w", developerName, err)
			}
		}

		value, err := ValueFrom(entry.Kind, raw)
		if err != nil {
			return fmt.Errorf("field: decode %q: %w", developerName, err)
		}
		document[developerName] = value
	}

	*d = document
	return nil
}

// Get returns the value stored under the developer name, or nil.
func (d Document) Get(developerName string) Value {
	return d[developerName]
}

// Clone returns a shallow copy of the document. Values are immutable
// structs, so a shallow copy is a safe snapshot.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	clone := make(Document, len(d))
	for developerName, value := range d {
		clone[developerName] = value
	}
	return clone
}

/*
ValidateDocument checks a whole document against the active field schema.

Description: Runs [Validate] for every active field definition, including
fields the document has no entry for (to enforce the required flag).
Document entries whose field no longer exists in the schema are ignored;
they linger harmlessly until the next successful write rebuilds the body.

Parameters:
  - document: Document
  - definitions: []Definition (The content type's active fields)

Returns:
  - []apperr.FieldError: Accumulated across all fields, empty on success
*/
func ValidateDocument(document Document, definitions []Definition) []apperr.FieldError {
	var accumulated []apperr.FieldError
	for _, definition := range definitions {
		if definition.IsDeleted {
			continue
		}
		accumulated = append(accumulated, Validate(document.Get(definition.DeveloperName), definition)...)
	}
	return accumulated
}
