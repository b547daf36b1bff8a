// Copyright (c) 2026 Raytha. All rights reserved.

package view_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/core/view"
)

func blogSchema() *contenttype.ContentType {
	return &contenttype.ContentType{
		ID:             "type-1",
		DeveloperName:  "blog-post",
		PrimaryFieldID: "f-title",
		Fields: []field.Definition{
			{ID: "f-title", DeveloperName: "title", FieldType: field.TypeSingleLineText, FieldOrder: 0},
			{ID: "f-views", DeveloperName: "page-views", FieldType: field.TypeNumber, FieldOrder: 1},
			{ID: "f-date", DeveloperName: "published-on", FieldType: field.TypeDate, FieldOrder: 2},
			{ID: "f-cat", DeveloperName: "category", FieldType: field.TypeSingleSelect, FieldOrder: 3,
				Choices: []field.Choice{{Label: "Technology", DeveloperName: "tech"}, {Label: "Travel", DeveloperName: "travel"}}},
			{ID: "f-gone", DeveloperName: "legacy", FieldType: field.TypeSingleLineText, FieldOrder: 4, IsDeleted: true},
		},
	}
}

func TestFilterTreeRoundTrip(t *testing.T) {
	original := &view.FilterNode{
		Join: view.JoinAnd,
		Nodes: []view.FilterNode{
			{Field: "title", Operator: view.OpContains, Value: "go"},
			{
				Join: view.JoinOr,
				Nodes: []view.FilterNode{
					{Field: "category", Operator: view.OpEquals, Value: "tech"},
					{Field: "page-views", Operator: view.OpGreaterThan, Value: float64(100)},
				},
			},
		},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	decoded := &view.FilterNode{}
	require.NoError(t, json.Unmarshal(encoded, decoded))

	assert.Equal(t, original, decoded)
}

func TestValidateFilter(t *testing.T) {
	schema := blogSchema()

	tests := []struct {
		name      string
		node      *view.FilterNode
		wantField string
	}{
		{
			name: "valid tree",
			node: &view.FilterNode{Join: view.JoinAnd, Nodes: []view.FilterNode{
				{Field: "title", Operator: view.OpStartsWith, Value: "How"},
				{Field: "is_published", Operator: view.OpEquals, Value: true},
			}},
		},
		{
			name:      "unknown field",
			node:      &view.FilterNode{Field: "nonexistent", Operator: view.OpEquals, Value: "x"},
			wantField: "nonexistent",
		},
		{
			name:      "deleted field rejected at save time",
			node:      &view.FilterNode{Field: "legacy", Operator: view.OpEquals, Value: "x"},
			wantField: "legacy",
		},
		{
			name:      "operator not valid for type",
			node:      &view.FilterNode{Field: "title", Operator: view.OpGreaterThan, Value: "x"},
			wantField: "title",
		},
		{
			name:      "unknown join",
			node:      &view.FilterNode{Join: "xor", Nodes: []view.FilterNode{{Field: "title", Operator: view.OpEquals, Value: "x"}}},
			wantField: "filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := view.ValidateFilter(tt.node, schema)
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestCompileFilterBindsValuesPositionally(t *testing.T) {
	schema := blogSchema()

	node := &view.FilterNode{
		Join: view.JoinAnd,
		Nodes: []view.FilterNode{
			{Field: "title", Operator: view.OpContains, Value: "go"},
			{Field: "page-views", Operator: view.OpGreaterThanOrEqual, Value: float64(100)},
		},
	}

	where, args, err := view.CompileFilter(node, schema, 2)
	require.NoError(t, err)

	assert.Contains(t, where, "$2")
	assert.Contains(t, where, "$3")
	assert.Contains(t, where, "ILIKE")
	assert.Contains(t, where, "::numeric")
	require.Len(t, args, 2)
	assert.Equal(t, "%go%", args[0])
	assert.Equal(t, float64(100), args[1])
}

func TestCompileFilterDegradesOnDeletedField(t *testing.T) {
	schema := blogSchema()

	// "vanished" was never saved against this schema; a stored filter can
	// still reference it after a later field delete.
	node := &view.FilterNode{
		Join: view.JoinAnd,
		Nodes: []view.FilterNode{
			{Field: "vanished", Operator: view.OpEquals, Value: "x"},
			{Field: "title", Operator: view.OpEquals, Value: "keep"},
		},
	}

	where, args, err := view.CompileFilter(node, schema, 1)
	require.NoError(t, err)

	assert.Contains(t, where, "TRUE")
	require.Len(t, args, 1)
	assert.Equal(t, "keep", args[0])
}

func TestCompileFilterOrGroup(t *testing.T) {
	schema := blogSchema()

	node := &view.FilterNode{
		Join: view.JoinOr,
		Nodes: []view.FilterNode{
			{Field: "category", Operator: view.OpEquals, Value: "tech"},
			{Field: "category", Operator: view.OpEquals, Value: "travel"},
		},
	}

	where, _, err := view.CompileFilter(node, schema, 1)
	require.NoError(t, err)
	assert.Contains(t, where, " OR ")
}

func TestCompileFilterEmptyTree(t *testing.T) {
	where, args, err := view.CompileFilter(nil, blogSchema(), 1)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestCompileSorts(t *testing.T) {
	schema := blogSchema()

	orderBy := view.CompileSorts([]view.Sort{
		{DeveloperName: "page-views", Direction: view.DirectionDescending},
		{DeveloperName: "vanished", Direction: view.DirectionAscending},
		{DeveloperName: "created_at", Direction: view.DirectionAscending},
	}, schema)

	// The deleted field is skipped; the others survive in order.
	assert.Contains(t, orderBy, "::numeric DESC")
	assert.Contains(t, orderBy, "createdat ASC")
	assert.NotContains(t, orderBy, "vanished")
}

func TestOperatorsVaryByFieldType(t *testing.T) {
	assert.Contains(t, view.OperatorsFor(field.TypeSingleLineText), view.OpContains)
	assert.NotContains(t, view.OperatorsFor(field.TypeSingleLineText), view.OpGreaterThan)
	assert.Contains(t, view.OperatorsFor(field.TypeNumber), view.OpLessThanOrEqual)
	assert.Contains(t, view.OperatorsFor(field.TypeSingleSelect), view.OpIn)
	assert.NotContains(t, view.OperatorsFor(field.TypeCheckbox), view.OpContains)
}
