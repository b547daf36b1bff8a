// Copyright (c) 2026 Raytha. All rights reserved.

package view

import (
	"fmt"
	"strings"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/database/schema"
)

// Boolean joins for filter groups.
const (
	JoinAnd = "and"
	JoinOr  = "or"
)

// Filter operators. Which operators apply depends on the field type.
const (
	OpEquals             = "equals"
	OpNotEquals          = "not_equals"
	OpContains           = "contains"
	OpStartsWith         = "starts_with"
	OpGreaterThan        = "greater_than"
	OpGreaterThanOrEqual = "greater_than_or_equal"
	OpLessThan           = "less_than"
	OpLessThanOrEqual    = "less_than_or_equal"
	OpIn                 = "in"
)

// FilterNode is one node of a view's condition tree.
//
// A node is either a group (Join + Nodes) or a leaf condition (Field +
// Operator + Value); the two forms are mutually exclusive. The tree
// serializes to JSON and deserializes back to an equal tree, preserving
// AND/OR structure and condition order.
type FilterNode struct {
	Join  string       `json:"join,omitempty"`
	Nodes []FilterNode `json:"nodes,omitempty"`

	Field    string `json:"field,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// IsGroup reports whether the node combines child conditions.
func (n *FilterNode) IsGroup() bool {
	return n.Join != ""
}

// # Field Surface

// comparable built-in columns addressable alongside schema fields in
// filters, sorts, and column projections.
type builtInField struct {
	column    string
	fieldType field.FieldType
}

var builtInFields = map[string]builtInField{
	"id":           {column: schema.CMSContentItem.ID, fieldType: field.TypeSingleLineText},
	"route_path":   {column: schema.CMSContentItem.RoutePath, fieldType: field.TypeSingleLineText},
	"is_published": {column: schema.CMSContentItem.IsPublished, fieldType: field.TypeCheckbox},
	"created_at":   {column: schema.CMSContentItem.CreatedAt, fieldType: field.TypeDate},
	"updated_at":   {column: schema.CMSContentItem.UpdatedAt, fieldType: field.TypeDate},
}

// IsBuiltInField reports whether the developer name addresses a built-in
// item column rather than a schema field.
func IsBuiltInField(developerName string) bool {
	_, ok := builtInFields[developerName]
	return ok
}

// OperatorsFor returns the operators a field type supports in filters.
func OperatorsFor(fieldType field.FieldType) []string {
	switch fieldType {
	case field.TypeSingleLineText, field.TypeLongText:
		return []string{OpEquals, OpNotEquals, OpContains, OpStartsWith}
	case field.TypeNumber, field.TypeDate:
		return []string{OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual}
	case field.TypeCheckbox:
		return []string{OpEquals, OpNotEquals}
	case field.TypeSingleSelect:
		return []string{OpEquals, OpNotEquals, OpIn}
	case field.TypeMultipleSelect:
		return []string{OpContains, OpIn}
	case field.TypeOneToOne:
		return []string{OpEquals, OpNotEquals}
	}
	return nil
}

func operatorAllowed(fieldType field.FieldType, operator string) bool {
	for _, allowed := range OperatorsFor(fieldType) {
		if allowed == operator {
			return true
		}
	}
	return false
}

// resolveFieldType looks up the field type for a developer name, checking
// built-ins first, then the content type's ACTIVE fields.
func resolveFieldType(contentType *contenttype.ContentType, developerName string) (field.FieldType, bool) {
	if builtin, ok := builtInFields[developerName]; ok {
		return builtin.fieldType, true
	}
	if definition, ok := contentType.FieldByDeveloperName(developerName); ok {
		return definition.FieldType, true
	}
	return "", false
}

// # Validation

/*
ValidateFilter checks every leaf of a condition tree against the schema.

Description: Saving a filter that references a missing or deleted field is
rejected; only stale references that appear AFTER a save degrade at query
time. Group nodes must carry a known join and may not double as leaves.

Parameters:
  - node: *FilterNode (nil is a valid empty filter)
  - contentType: *contenttype.ContentType

Returns:
  - []apperr.FieldError: One entry per offending node, empty when valid
*/
func ValidateFilter(node *FilterNode, contentType *contenttype.ContentType) []apperr.FieldError {
	if node == nil {
		return nil
	}

	var errs []apperr.FieldError
	validateFilterNode(node, contentType, &errs)
	return errs
}

func validateFilterNode(node *FilterNode, contentType *contenttype.ContentType, errs *[]apperr.FieldError) {
	if node.IsGroup() {
		if node.Join != JoinAnd && node.Join != JoinOr {
			*errs = append(*errs, apperr.FieldError{Field: "filter", Message: fmt.Sprintf("Unknown join %q", node.Join)})
			return
		}
		if node.Field != "" || node.Operator != "" {
			*errs = append(*errs, apperr.FieldError{Field: "filter", Message: "A group node cannot also be a condition"})
			return
		}
		for index := range node.Nodes {
			validateFilterNode(&node.Nodes[index], contentType, errs)
		}
		return
	}

	fieldType, found := resolveFieldType(contentType, node.Field)
	if !found {
		*errs = append(*errs, apperr.FieldError{Field: node.Field, Message: "No such field on this content type"})
		return
	}
	if !operatorAllowed(fieldType, node.Operator) {
		*errs = append(*errs, apperr.FieldError{
			Field:   node.Field,
			Message: fmt.Sprintf("Operator %q is not valid for %s fields", node.Operator, fieldType),
		})
	}
}

// # SQL Compilation

// compiler accumulates positional arguments while walking the tree.
type compiler struct {
	contentType *contenttype.ContentType
	args        []any
	nextArg     int
}

/*
CompileFilter translates a condition tree into a parameterized WHERE fragment.

Description: Leaf conditions become comparisons over the published JSONB
document (or a built-in column); groups become parenthesized AND/OR chains.
Field values are always bound as positional arguments, never interpolated.
Conditions whose field no longer exists on the schema compile to TRUE so a
deleted field degrades a stored filter instead of breaking the view.

Parameters:
  - node: *FilterNode (nil compiles to no constraint)
  - contentType: *contenttype.ContentType (Schema at query time)
  - firstArg: int (Positional index of the first bound argument)

Returns:
  - string: The WHERE fragment, "" when the filter is empty
  - []any: Arguments to append to the enclosing query
  - error: Unsupported operator/value combinations
*/
func CompileFilter(node *FilterNode, contentType *contenttype.ContentType, firstArg int) (string, []any, error) {
	if node == nil {
		return "", nil, nil
	}

	c := &compiler{contentType: contentType, nextArg: firstArg}
	clause, err := c.compileNode(node)
	if err != nil {
		return "", nil, err
	}
	return clause, c.args, nil
}

func (c *compiler) compileNode(node *FilterNode) (string, error) {
	if node.IsGroup() {
		return c.compileGroup(node)
	}
	return c.compileLeaf(node)
}

func (c *compiler) compileGroup(node *FilterNode) (string, error) {
	if len(node.Nodes) == 0 {
		return "TRUE", nil
	}

	operator := " AND "
	if node.Join == JoinOr {
		operator = " OR "
	}

	parts := make([]string, 0, len(node.Nodes))
	for index := range node.Nodes {
		part, err := c.compileNode(&node.Nodes[index])
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, operator) + ")", nil
}

func (c *compiler) compileLeaf(node *FilterNode) (string, error) {
	if builtin, ok := builtInFields[node.Field]; ok {
		return c.compileComparison(builtin.column, builtin.fieldType, node)
	}

	definition, ok := c.contentType.FieldByDeveloperName(node.Field)
	if !ok {
		// Field deleted since the filter was saved: degrade, don't fail.
		return "TRUE", nil
	}
	return c.compileComparison(documentPath(node.Field), definition.FieldType, node)
}

// documentPath addresses a field's value inside the published document.
// Developer names are slug-validated at save time, so embedding them in the
// path literal is safe.
func documentPath(developerName string) string {
	return fmt.Sprintf("%s #>> '{%s,value}'", schema.CMSContentItem.PublishedContent, developerName)
}

func (c *compiler) bind(value any) string {
	c.args = append(c.args, value)
	placeholder := fmt.Sprintf("$%d", c.nextArg)
	c.nextArg++
	return placeholder
}

func (c *compiler) compileComparison(expr string, fieldType field.FieldType, node *FilterNode) (string, error) {
	switch fieldType {
	case field.TypeSingleLineText, field.TypeLongText, field.TypeOneToOne:
		return c.compileTextComparison(expr, node)

	case field.TypeNumber:
		return c.compileOrderedComparison("("+expr+")::numeric", node, numericValue(node.Value))

	case field.TypeDate:
		return c.compileOrderedComparison("("+expr+")::timestamptz", node, fmt.Sprintf("%v", node.Value))

	case field.TypeCheckbox:
		operator := "="
		if node.Operator == OpNotEquals {
			operator = "<>"
		}
		return fmt.Sprintf("COALESCE((%s)::boolean, FALSE) %s %s", expr, operator, c.bind(node.Value == true)), nil

	case field.TypeSingleSelect:
		if node.Operator == OpIn {
			return fmt.Sprintf("%s = ANY(%s)", expr, c.bind(stringSliceValue(node.Value))), nil
		}
		return c.compileTextComparison(expr, node)

	case field.TypeMultipleSelect:
		// The stored value is a JSON array; containment checks membership.
		arrayExpr := fmt.Sprintf("%s #> '{%s,value}'",
			schema.CMSContentItem.PublishedContent, node.Field)
		switch node.Operator {
		case OpContains:
			return fmt.Sprintf("%s @> to_jsonb(%s::text)", arrayExpr, c.bind(fmt.Sprintf("%v", node.Value))), nil
		case OpIn:
			parts := make([]string, 0)
			for _, choice := range stringSliceValue(node.Value) {
				parts = append(parts, fmt.Sprintf("%s @> to_jsonb(%s::text)", arrayExpr, c.bind(choice)))
			}
			if len(parts) == 0 {
				return "FALSE", nil
			}
			return "(" + strings.Join(parts, " OR ") + ")", nil
		}
		return "", fmt.Errorf("view: operator %q is not valid for multiple-select fields", node.Operator)
	}

	return "", fmt.Errorf("view: cannot compile field type %q", fieldType)
}

func (c *compiler) compileTextComparison(expr string, node *FilterNode) (string, error) {
	value := fmt.Sprintf("%v", node.Value)

	switch node.Operator {
	case OpEquals:
		return fmt.Sprintf("%s = %s", expr, c.bind(value)), nil
	case OpNotEquals:
		return fmt.Sprintf("COALESCE(%s, '') <> %s", expr, c.bind(value)), nil
	case OpContains:
		return fmt.Sprintf("%s ILIKE %s", expr, c.bind("%"+escapeLike(value)+"%")), nil
	case OpStartsWith:
		return fmt.Sprintf("%s ILIKE %s", expr, c.bind(escapeLike(value)+"%")), nil
	}
	return "", fmt.Errorf("view: operator %q is not valid for text fields", node.Operator)
}

func (c *compiler) compileOrderedComparison(expr string, node *FilterNode, value any) (string, error) {
	operators := map[string]string{
		OpEquals:             "=",
		OpNotEquals:          "<>",
		OpGreaterThan:        ">",
		OpGreaterThanOrEqual: ">=",
		OpLessThan:           "<",
		OpLessThanOrEqual:    "<=",
	}

	operator, ok := operators[node.Operator]
	if !ok {
		return "", fmt.Errorf("view: operator %q is not valid for ordered fields", node.Operator)
	}
	return fmt.Sprintf("%s %s %s", expr, operator, c.bind(value)), nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func numericValue(value any) any {
	switch v := value.(type) {
	case float64, int, int64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stringSliceValue(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			out = append(out, fmt.Sprintf("%v", entry))
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

// # Sort Compilation

/*
CompileSorts translates a sort specification into an ORDER BY clause.

Description: Entries are applied in list order; the first entry is the
primary sort key. Entries whose field was deleted since the sort was saved
are skipped. Text sorts order by the raw document value; number and date
sorts cast first so "10" sorts after "9".

Parameters:
  - sorts: []Sort
  - contentType: *contenttype.ContentType

Returns:
  - string: ORDER BY expression list, "" when nothing survives
*/
func CompileSorts(sorts []Sort, contentType *contenttype.ContentType) string {
	parts := make([]string, 0, len(sorts))

	for _, entry := range sorts {
		direction := "ASC"
		if entry.Direction == DirectionDescending {
			direction = "DESC"
		}

		if builtin, ok := builtInFields[entry.DeveloperName]; ok {
			parts = append(parts, builtin.column+" "+direction)
			continue
		}

		definition, ok := contentType.FieldByDeveloperName(entry.DeveloperName)
		if !ok {
			continue
		}

		expr := documentPath(entry.DeveloperName)
		switch definition.FieldType {
		case field.TypeNumber:
			expr = "(" + expr + ")::numeric"
		case field.TypeDate:
			expr = "(" + expr + ")::timestamptz"
		}
		parts = append(parts, expr+" "+direction+" NULLS LAST")
	}

	return strings.Join(parts, ", ")
}
