// Copyright (c) 2026 Raytha. All rights reserved.

package contenttype

import (
	"context"
	"fmt"

	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/slug"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// Validation field identifiers surfaced in error details.
const (
	FieldLabelSingular = "label_singular"
	FieldLabelPlural   = "label_plural"
	FieldDeveloperName = "developer_name"
	FieldFieldType     = "field_type"
	FieldLabel         = "label"
	FieldChoices       = "choices"
	FieldRelatedType   = "related_content_type_id"
	FieldPrimaryField  = "primary_field"
)

// DefaultRouteTemplate is applied when a content type is created without an
// explicit route template.
const DefaultRouteTemplate = "{ContentTypeDeveloperName}/{PrimaryField}"

// # Service Layer

// Service orchestrates the business logic for content type schemas.
// It owns every invariant around developer names, field ordering, and the
// primary field designation.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Inputs

// FieldInput carries the editable attributes of a field definition.
type FieldInput struct {
	Label                string         `json:"label"`
	DeveloperName        string         `json:"developer_name"`
	Description          string         `json:"description"`
	FieldType            field.FieldType `json:"field_type"`
	IsRequired           bool           `json:"is_required"`
	Choices              []field.Choice `json:"choices"`
	RelatedContentTypeID *string        `json:"related_content_type_id"`
}

// CreateInput carries everything needed to create a content type with its
// initial schema.
type CreateInput struct {
	LabelSingular             string       `json:"label_singular"`
	LabelPlural               string       `json:"label_plural"`
	DeveloperName             string       `json:"developer_name"`
	Description               string       `json:"description"`
	DefaultRouteTemplate      string       `json:"default_route_template"`
	Fields                    []FieldInput `json:"fields"`
	PrimaryFieldDeveloperName string       `json:"primary_field_developer_name"`
}

// EditInput carries the mutable attributes of an existing content type.
// DeveloperName is deliberately absent: it is immutable.
type EditInput struct {
	LabelSingular        string `json:"label_singular"`
	LabelPlural          string `json:"label_plural"`
	Description          string `json:"description"`
	DefaultRouteTemplate string `json:"default_route_template"`
	PrimaryFieldID       string `json:"primary_field_id"`
}

// EditFieldInput carries the mutable attributes of an existing field.
// DeveloperName and FieldType are deliberately absent: both are immutable.
type EditFieldInput struct {
	Label       string         `json:"label"`
	Description string         `json:"description"`
	IsRequired  bool           `json:"is_required"`
	Choices     []field.Choice `json:"choices"`
}

// # Content Type Lookups

// ListContentTypes retrieves a paginated collection of non-deleted content types.
func (service *Service) ListContentTypes(context context.Context, limit, offset int) ([]*ContentType, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
GetContentType fetches a single content type by UUID or developer name.

Description: The service determines the lookup strategy from the identifier
format. A UUID performs a primary key lookup; anything else resolves via
the unique developer name.

Parameters:
  - context: context.Context
  - identifier: string (UUID or developer name)

Returns:
  - *ContentType: The hydrated schema including all field rows
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetContentType(context context.Context, identifier string) (*ContentType, error) {
	if uuidv7.IsValid(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindByDeveloperName(context, identifier)
}

// # Content Type Management

/*
CreateContentType creates a new content type together with its initial fields.

Description: Validates labels and the developer name (generated from the
singular label when omitted), checks uniqueness among non-deleted types,
validates every initial field, and designates the primary field. Field
order follows the input order, numbered densely from zero.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *ContentType: The persisted schema
  - error: Validation or persistence errors
*/
func (service *Service) CreateContentType(context context.Context, input CreateInput) (*ContentType, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLabelSingular, input.LabelSingular).MaxLen(FieldLabelSingular, input.LabelSingular, 100)
	validator.Required(FieldLabelPlural, input.LabelPlural).MaxLen(FieldLabelPlural, input.LabelPlural, 100)

	// Developer name: generated from the label when omitted, immutable after.
	developerName := input.DeveloperName
	if developerName == "" {
		developerName = slug.From(input.LabelSingular)
	}
	validator.DeveloperName(FieldDeveloperName, developerName)

	if len(input.Fields) == 0 {
		validator.Fail(FieldPrimaryField, "A content type needs at least one field")
	}

	// Validate the initial field set and find the primary field.
	seenNames := make(map[string]bool, len(input.Fields))
	definitions := make([]field.Definition, 0, len(input.Fields))
	primaryFieldIndex := -1

	for index, fieldInput := range input.Fields {
		fieldErrors := validateFieldInput(fieldInput, seenNames)
		validator.Merge(fieldErrors)
		seenNames[fieldInput.DeveloperName] = true

		if fieldInput.DeveloperName == input.PrimaryFieldDeveloperName {
			primaryFieldIndex = index
			if fieldInput.FieldType != field.TypeSingleLineText {
				validator.Fail(FieldPrimaryField, "The primary field must be a single line text field")
			}
		}

		definitions = append(definitions, field.Definition{
			ID:                   uuidv7.New(),
			Label:                fieldInput.Label,
			DeveloperName:        fieldInput.DeveloperName,
			Description:          fieldInput.Description,
			FieldType:            fieldInput.FieldType,
			FieldOrder:           index,
			IsRequired:           fieldInput.IsRequired,
			Choices:              fieldInput.Choices,
			RelatedContentTypeID: fieldInput.RelatedContentTypeID,
		})
	}

	if primaryFieldIndex < 0 && len(input.Fields) > 0 {
		validator.Fail(FieldPrimaryField,
			fmt.Sprintf("Primary field %q is not part of the field list", input.PrimaryFieldDeveloperName))
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Uniqueness among non-deleted content types.
	exists, err := service.repo.ExistsByDeveloperName(context, developerName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(fmt.Sprintf("A content type named %q already exists", developerName))
	}

	routeTemplate := input.DefaultRouteTemplate
	if routeTemplate == "" {
		routeTemplate = DefaultRouteTemplate
	}

	contentType := &ContentType{
		ID:                   uuidv7.New(),
		LabelSingular:        input.LabelSingular,
		LabelPlural:          input.LabelPlural,
		DeveloperName:        developerName,
		Description:          input.Description,
		DefaultRouteTemplate: routeTemplate,
		PrimaryFieldID:       definitions[primaryFieldIndex].ID,
		CreatorUserID:        ctxutil.GetActorID(context),
		LastModifierUserID:   ctxutil.GetActorID(context),
		Fields:               definitions,
	}

	for index := range contentType.Fields {
		contentType.Fields[index].ContentTypeID = contentType.ID
	}

	if err := service.repo.Create(context, contentType); err != nil {
		return nil, err
	}

	return contentType, nil
}

/*
EditContentType updates the mutable attributes of a content type.

Description: Labels, description, route template, and the primary field
designation may change; the developer name never does. A new primary
field must be an active single line text field of this type.

Parameters:
  - context: context.Context
  - identifier: string (UUID or developer name)
  - input: EditInput

Returns:
  - *ContentType: The updated schema
  - error: apperr.NotFound or validation errors
*/
func (service *Service) EditContentType(context context.Context, identifier string, input EditInput) (*ContentType, error) {
	contentType, err := service.GetContentType(context, identifier)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabelSingular, input.LabelSingular).MaxLen(FieldLabelSingular, input.LabelSingular, 100)
	validator.Required(FieldLabelPlural, input.LabelPlural).MaxLen(FieldLabelPlural, input.LabelPlural, 100)

	if input.PrimaryFieldID != "" && input.PrimaryFieldID != contentType.PrimaryFieldID {
		newPrimary, found := contentType.FieldByID(input.PrimaryFieldID)
		switch {
		case !found || newPrimary.IsDeleted:
			validator.Fail(FieldPrimaryField, "The primary field must be an active field of this content type")
		case newPrimary.FieldType != field.TypeSingleLineText:
			validator.Fail(FieldPrimaryField, "The primary field must be a single line text field")
		default:
			contentType.PrimaryFieldID = input.PrimaryFieldID
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	contentType.LabelSingular = input.LabelSingular
	contentType.LabelPlural = input.LabelPlural
	contentType.Description = input.Description
	if input.DefaultRouteTemplate != "" {
		contentType.DefaultRouteTemplate = input.DefaultRouteTemplate
	}
	contentType.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, contentType); err != nil {
		return nil, err
	}

	return contentType, nil
}

// DeleteContentType logically deletes a content type. Its developer name
// becomes available for reuse; existing items and revisions are untouched.
func (service *Service) DeleteContentType(context context.Context, identifier string) error {
	contentType, err := service.GetContentType(context, identifier)
	if err != nil {
		return err
	}
	return service.repo.SoftDelete(context, contentType.ID, ctxutil.GetActorID(context))
}

// # Field Management

/*
CreateField appends a new field to a content type's schema.

Description: The developer name (generated from the label when omitted)
must be unique among the type's non-deleted fields and is immutable after
creation. Choice fields need at least one choice; relationship fields need
an existing related content type. The new field takes the next dense
order position.

Parameters:
  - context: context.Context
  - typeIdentifier: string (UUID or developer name)
  - input: FieldInput

Returns:
  - *field.Definition: The persisted field
  - error: Validation or persistence errors
*/
func (service *Service) CreateField(context context.Context, typeIdentifier string, input FieldInput) (*field.Definition, error) {
	contentType, err := service.GetContentType(context, typeIdentifier)
	if err != nil {
		return nil, err
	}

	if input.DeveloperName == "" {
		input.DeveloperName = slug.From(input.Label)
	}

	activeNames := make(map[string]bool)
	for _, existing := range contentType.ActiveFields() {
		activeNames[existing.DeveloperName] = true
	}

	validator := &validate.Validator{}
	validator.Merge(validateFieldInput(input, activeNames))

	if input.FieldType.IsRelationship() && input.RelatedContentTypeID != nil {
		if _, err := service.repo.FindByID(context, *input.RelatedContentTypeID); err != nil {
			validator.Fail(FieldRelatedType, "Related content type does not exist")
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	definition := &field.Definition{
		ID:                   uuidv7.New(),
		ContentTypeID:        contentType.ID,
		Label:                input.Label,
		DeveloperName:        input.DeveloperName,
		Description:          input.Description,
		FieldType:            input.FieldType,
		FieldOrder:           len(contentType.ActiveFields()),
		IsRequired:           input.IsRequired,
		Choices:              input.Choices,
		RelatedContentTypeID: input.RelatedContentTypeID,
	}

	if err := service.repo.CreateField(context, definition); err != nil {
		return nil, err
	}

	return definition, nil
}

/*
EditField updates the mutable attributes of a field definition.

Description: Label, description, the required flag, and (for choice
fields) the choice list may change. Developer name and field type are
immutable; changing either would silently orphan every stored document
entry written under the old identity.

Parameters:
  - context: context.Context
  - typeIdentifier: string (UUID or developer name)
  - fieldID: string
  - input: EditFieldInput

Returns:
  - *field.Definition: The updated field
  - error: apperr.NotFound or validation errors
*/
func (service *Service) EditField(context context.Context, typeIdentifier, fieldID string, input EditFieldInput) (*field.Definition, error) {
	contentType, err := service.GetContentType(context, typeIdentifier)
	if err != nil {
		return nil, err
	}

	definition, found := contentType.FieldByID(fieldID)
	if !found || definition.IsDeleted {
		return nil, apperr.NotFound("Field")
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 100)

	if definition.FieldType.HasChoices() {
		if len(input.Choices) == 0 {
			validator.Fail(FieldChoices, "Choice fields need at least one choice")
		}
		validator.Merge(validateChoices(input.Choices))
	} else if len(input.Choices) > 0 {
		validator.Fail(FieldChoices, fmt.Sprintf("A %s field does not accept choices", definition.FieldType))
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	definition.Label = input.Label
	definition.Description = input.Description
	definition.IsRequired = input.IsRequired
	if definition.FieldType.HasChoices() {
		definition.Choices = input.Choices
	}

	if err := service.repo.UpdateField(context, definition); err != nil {
		return nil, err
	}

	return definition, nil
}

/*
DeleteField logically deletes a field and renumbers the remainder densely.

Description: Deleting the primary field is rejected; it anchors routing
and item display. Stored documents keep their entries for the deleted
field; views and templates referencing it degrade gracefully.

Parameters:
  - context: context.Context
  - typeIdentifier: string (UUID or developer name)
  - fieldID: string

Returns:
  - error: apperr.NotFound, validation, or persistence errors
*/
func (service *Service) DeleteField(context context.Context, typeIdentifier, fieldID string) error {
	contentType, err := service.GetContentType(context, typeIdentifier)
	if err != nil {
		return err
	}

	definition, found := contentType.FieldByID(fieldID)
	if !found || definition.IsDeleted {
		return apperr.NotFound("Field")
	}

	if fieldID == contentType.PrimaryFieldID {
		return apperr.ValidationError("The primary field cannot be deleted")
	}

	if err := service.repo.SoftDeleteField(context, fieldID); err != nil {
		return err
	}

	// Close the gap left by the deleted field.
	remaining := make([]string, 0, len(contentType.Fields))
	for _, active := range contentType.ActiveFields() {
		if active.ID != fieldID {
			remaining = append(remaining, active.ID)
		}
	}

	return service.repo.SaveFieldOrder(context, contentType.ID, remaining)
}

/*
ReorderField moves a field to a new position in the schema.

Description: The target position is clamped to [0, n-1] over the active
fields. The whole order is rewritten atomically so FieldOrder stays a
dense permutation no matter how the sequence of moves interleaves.

Parameters:
  - context: context.Context
  - typeIdentifier: string (UUID or developer name)
  - fieldID: string
  - newPosition: int (Clamped, so out-of-range values are acceptable)

Returns:
  - []field.Definition: The active fields in their new order
  - error: apperr.NotFound or persistence errors
*/
func (service *Service) ReorderField(context context.Context, typeIdentifier, fieldID string, newPosition int) ([]field.Definition, error) {
	contentType, err := service.GetContentType(context, typeIdentifier)
	if err != nil {
		return nil, err
	}

	active := contentType.ActiveFields()
	currentIndex := -1
	for index, definition := range active {
		if definition.ID == fieldID {
			currentIndex = index
			break
		}
	}
	if currentIndex < 0 {
		return nil, apperr.NotFound("Field")
	}

	// Clamp the target into the valid range.
	if newPosition < 0 {
		newPosition = 0
	}
	if newPosition > len(active)-1 {
		newPosition = len(active) - 1
	}

	// Remove then reinsert at the target index.
	moved := active[currentIndex]
	active = append(active[:currentIndex], active[currentIndex+1:]...)
	active = append(active[:newPosition], append([]field.Definition{moved}, active[newPosition:]...)...)

	orderedIDs := make([]string, len(active))
	for index := range active {
		active[index].FieldOrder = index
		orderedIDs[index] = active[index].ID
	}

	if err := service.repo.SaveFieldOrder(context, contentType.ID, orderedIDs); err != nil {
		return nil, err
	}

	return active, nil
}

// # Field Input Validation

// validateFieldInput checks a new field's attributes. takenNames holds the
// developer names already in use within the content type.
func validateFieldInput(input FieldInput, takenNames map[string]bool) []apperr.FieldError {
	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 100)
	validator.DeveloperName(FieldDeveloperName, input.DeveloperName)

	if takenNames[input.DeveloperName] {
		validator.Fail(FieldDeveloperName,
			fmt.Sprintf("A field named %q already exists on this content type", input.DeveloperName))
	}

	if !input.FieldType.IsValid() {
		validator.Fail(FieldFieldType, fmt.Sprintf("Unknown field type %q", input.FieldType))
		return validator.Errors()
	}

	if input.FieldType.HasChoices() {
		if len(input.Choices) == 0 {
			validator.Fail(FieldChoices, "Choice fields need at least one choice")
		}
		validator.Merge(validateChoices(input.Choices))
	} else if len(input.Choices) > 0 {
		validator.Fail(FieldChoices, fmt.Sprintf("A %s field does not accept choices", input.FieldType))
	}

	if input.FieldType.IsRelationship() && input.RelatedContentTypeID == nil {
		validator.Fail(FieldRelatedType, "Relationship fields need a related content type")
	}

	return validator.Errors()
}

// validateChoices checks choice developer names for format and duplicates.
func validateChoices(choices []field.Choice) []apperr.FieldError {
	validator := &validate.Validator{}
	seen := make(map[string]bool, len(choices))

	for _, choice := range choices {
		validator.Required(FieldChoices, choice.Label)
		validator.DeveloperName(FieldChoices, choice.DeveloperName)
		if seen[choice.DeveloperName] {
			validator.Fail(FieldChoices, fmt.Sprintf("Duplicate choice %q", choice.DeveloperName))
		}
		seen[choice.DeveloperName] = true
	}

	return validator.Errors()
}
