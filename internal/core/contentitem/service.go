// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/core/revision"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// Validation field identifiers surfaced in error details.
const (
	FieldRoutePath = "route_path"
	FieldContent   = "content"
)

// # Service Layer

// RouteTakenFunc reports whether a route path is already owned outside
// the content item table. Route paths are one global namespace shared
// with saved views, so both surfaces consult the other before claiming
// one. May be nil when no other surface exists.
type RouteTakenFunc func(context context.Context, routePath string) (bool, error)

// Service orchestrates the content item lifecycle: draft, publish,
// unpublish, trash, restore, and revert.
type Service struct {
	repo       Repository
	typeRepo   contenttype.Repository
	revisions  revision.Repository
	cache      RouteCache
	routeTaken RouteTakenFunc
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, typeRepo contenttype.Repository, revisions revision.Repository, cache RouteCache, routeTaken RouteTakenFunc) *Service {
	return &Service{
		repo:       repo,
		typeRepo:   typeRepo,
		revisions:  revisions,
		cache:      cache,
		routeTaken: routeTaken,
	}
}

// # Inputs

// CreateInput carries a new item's raw content and placement.
type CreateInput struct {
	// Content maps field developer names to raw JSON-decoded values.
	Content map[string]any `json:"content"`

	// SaveAsDraft keeps the item unpublished; false publishes immediately.
	SaveAsDraft bool `json:"save_as_draft"`

	// RoutePath overrides the route computed from the content type's
	// template when non-empty.
	RoutePath string `json:"route_path"`

	WebTemplateID *string `json:"web_template_id"`
}

// EditInput carries a content edit. Only the listed fields change; absent
// keys keep their draft values.
type EditInput struct {
	Content map[string]any `json:"content"`
}

// SettingsInput carries placement changes that do not touch content.
type SettingsInput struct {
	RoutePath     string  `json:"route_path"`
	WebTemplateID *string `json:"web_template_id"`
}

// # Lookups

// GetContentItem fetches a single item by id.
func (service *Service) GetContentItem(context context.Context, id string) (*ContentItem, error) {
	return service.repo.FindByID(context, id)
}

/*
GetByRoutePath resolves a public route to its content item.

Description: The hot path for public page serving. The route cache is
consulted first; a hit turns the lookup into a primary key fetch. Misses
fall through to the route index and warm the cache. Cache failures are
invisible to callers.

Parameters:
  - context: context.Context
  - routePath: string (Normalized, no surrounding slashes)

Returns:
  - *ContentItem: The resolved item
  - error: apperr.NotFound when no item owns the route
*/
func (service *Service) GetByRoutePath(context context.Context, routePath string) (*ContentItem, error) {
	routePath = NormalizeRoutePath(routePath)

	if itemID, hit := service.cache.GetItemID(context, routePath); hit {
		item, err := service.repo.FindByID(context, itemID)
		if err == nil {
			return item, nil
		}
		// Stale cache entry: drop it and fall through.
		service.cache.Invalidate(context, routePath)
	}

	item, err := service.repo.FindByRoutePath(context, routePath)
	if err != nil {
		return nil, err
	}

	service.cache.SetItemID(context, routePath, item.ID)
	return item, nil
}

// PrimaryDisplayValue resolves an item id to its primary field's display
// string. Relationship fields and view columns use this to label related
// items.
func (service *Service) PrimaryDisplayValue(context context.Context, id string) (string, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return "", err
	}
	contentType, err := service.typeRepo.FindByID(context, item.ContentTypeID)
	if err != nil {
		return "", err
	}
	return primaryFieldValue(contentType, item), nil
}

// ListContentItems retrieves a paginated collection of a type's items.
func (service *Service) ListContentItems(context context.Context, contentTypeID string, limit, offset int) ([]*ContentItem, int, error) {
	return service.repo.List(context, contentTypeID, limit, offset)
}

// ListDeletedItems retrieves a paginated collection of a type's trash.
func (service *Service) ListDeletedItems(context context.Context, contentTypeID string, limit, offset int) ([]*DeletedContentItem, int, error) {
	return service.repo.ListDeleted(context, contentTypeID, limit, offset)
}

// ListRevisions retrieves an item's revision history, newest first.
func (service *Service) ListRevisions(context context.Context, itemID string, limit, offset int) ([]*revision.Revision, int, error) {
	if _, err := service.repo.FindByID(context, itemID); err != nil {
		return nil, 0, err
	}
	return service.revisions.ListByParent(context, revision.ParentContentItem, itemID, limit, offset)
}

// # Lifecycle

/*
CreateContentItem creates a new item of the given content type.

Description: Raw content is coerced against the type's active schema;
keys that match no active field are rejected. The route path comes from
the explicit override or the type's route template with slugified
substitution. A route collision is a validation error, not a silent
suffix. When SaveAsDraft is false the item is validated against required
fields and published immediately, appending its first revision.

Parameters:
  - context: context.Context
  - contentTypeIdentifier: string (UUID or developer name)
  - input: CreateInput

Returns:
  - *ContentItem: The persisted item
  - error: Validation, collision, or persistence errors
*/
func (service *Service) CreateContentItem(context context.Context, contentTypeIdentifier string, input CreateInput) (*ContentItem, error) {
	contentType, err := service.findContentType(context, contentTypeIdentifier)
	if err != nil {
		return nil, err
	}

	document, err := service.coerceContent(contentType, input.Content, field.Document{})
	if err != nil {
		return nil, err
	}

	item := &ContentItem{
		ID:                 uuidv7.New(),
		ContentTypeID:      contentType.ID,
		IsDraft:            true,
		DraftContent:       document,
		PublishedContent:   field.Document{},
		WebTemplateID:      input.WebTemplateID,
		CreatorUserID:      ctxutil.GetActorID(context),
		LastModifierUserID: ctxutil.GetActorID(context),
	}

	routePath, err := service.resolveRoutePath(context, contentType, item, input.RoutePath)
	if err != nil {
		return nil, err
	}
	item.RoutePath = routePath

	if input.SaveAsDraft {
		if err := service.repo.Create(context, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	// Immediate publish: required-field validation happens here, not on
	// draft save.
	if fieldErrors := field.ValidateDocument(item.DraftContent, contentType.ActiveFields()); len(fieldErrors) > 0 {
		return nil, apperr.ValidationError("Validation failed", fieldErrors...)
	}

	item.PublishedContent = item.DraftContent.Clone()
	item.IsPublished = true
	item.IsDraft = false

	snapshot, err := json.Marshal(item.PublishedContent)
	if err != nil {
		return nil, fmt.Errorf("contentitem: marshal snapshot: %w", err)
	}

	// Item and first revision land together or not at all: a published
	// item must never exist with an empty revision log.
	if err := service.repo.CreateWithRevision(context, item, snapshot, ctxutil.GetActorID(context)); err != nil {
		return nil, err
	}

	return item, nil
}

/*
EditContentItem applies a content edit to the draft body.

Description: Edits never touch the published body. Listed fields are
coerced and written into DraftContent; absent keys keep their current
draft values. The item is marked IsDraft until the next publish or
discard.

Parameters:
  - context: context.Context
  - id: string (Item UUID)
  - input: EditInput

Returns:
  - *ContentItem: The updated item
  - error: apperr.NotFound, validation, or persistence errors
*/
func (service *Service) EditContentItem(context context.Context, id string, input EditInput) (*ContentItem, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	contentType, err := service.typeRepo.FindByID(context, item.ContentTypeID)
	if err != nil {
		return nil, err
	}

	document, err := service.coerceContent(contentType, input.Content, item.DraftContent)
	if err != nil {
		return nil, err
	}

	item.DraftContent = document
	item.IsDraft = true
	item.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}
	return item, nil
}

/*
EditContentItemSettings changes an item's route path or web template.

Description: An explicit route path is normalized and checked for
collisions; the route cache entry for the old path is invalidated so
stale lookups cannot resolve to this item.

Parameters:
  - context: context.Context
  - id: string (Item UUID)
  - input: SettingsInput

Returns:
  - *ContentItem: The updated item
  - error: apperr.NotFound, validation, or persistence errors
*/
func (service *Service) EditContentItemSettings(context context.Context, id string, input SettingsInput) (*ContentItem, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	previousRoute := item.RoutePath

	if input.RoutePath != "" {
		newRoute := NormalizeRoutePath(input.RoutePath)
		if newRoute != item.RoutePath {
			taken, err := service.routePathTaken(context, newRoute)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, validate.RequiredError(FieldRoutePath,
					fmt.Sprintf("Route path %q is already in use", newRoute))
			}
			item.RoutePath = newRoute
		}
	}

	item.WebTemplateID = input.WebTemplateID
	item.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}

	if previousRoute != item.RoutePath {
		service.cache.Invalidate(context, previousRoute)
	}
	return item, nil
}

/*
PublishContentItem validates the draft and makes it the published body.

Description: The draft is validated against the type's ACTIVE schema at
publish time, so fields deleted since the last edit no longer block
publishing and newly required fields do. On success the draft is copied
to the published body and a revision snapshot is appended in the same
transaction.

Parameters:
  - context: context.Context
  - id: string (Item UUID)

Returns:
  - *ContentItem: The published item
  - error: apperr.NotFound, validation, or persistence errors
*/
func (service *Service) PublishContentItem(context context.Context, id string) (*ContentItem, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	contentType, err := service.typeRepo.FindByID(context, item.ContentTypeID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := field.ValidateDocument(item.DraftContent, contentType.ActiveFields()); len(fieldErrors) > 0 {
		return nil, apperr.ValidationError("Validation failed", fieldErrors...)
	}

	item.PublishedContent = item.DraftContent.Clone()
	item.IsPublished = true
	item.IsDraft = false
	item.LastModifierUserID = ctxutil.GetActorID(context)

	snapshot, err := json.Marshal(item.PublishedContent)
	if err != nil {
		return nil, fmt.Errorf("contentitem: marshal snapshot: %w", err)
	}

	if err := service.repo.UpdateWithRevision(context, item, snapshot, ctxutil.GetActorID(context)); err != nil {
		return nil, err
	}
	return item, nil
}

// UnpublishContentItem takes an item off the public surface. The published
// body is kept so republishing needs no new validation pass.
func (service *Service) UnpublishContentItem(context context.Context, id string) (*ContentItem, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !item.IsPublished {
		return nil, validate.RequiredError(FieldContent, "This item is not published")
	}

	item.IsPublished = false
	item.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, item.RoutePath)
	return item, nil
}

/*
DiscardDraftContentItem throws away unsaved draft changes.

Description: The draft body is reset to a copy of the published body.
An item that has never been published has nothing to fall back to, so
discarding its draft is a validation error rather than silent data loss.

Parameters:
  - context: context.Context
  - id: string (Item UUID)

Returns:
  - *ContentItem: The item with its draft reset
  - error: apperr.NotFound, validation, or persistence errors
*/
func (service *Service) DiscardDraftContentItem(context context.Context, id string) (*ContentItem, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !item.IsPublished {
		return nil, validate.RequiredError(FieldContent,
			"Cannot discard the draft of an item that has never been published")
	}

	item.DraftContent = item.PublishedContent.Clone()
	item.IsDraft = false
	item.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}
	return item, nil
}

/*
RevertContentItem adopts a revision's content as the current body.

Description: The snapshot becomes both the draft and published body, and
a NEW revision recording the revert is appended. History is append-only:
reverting never rewrites or removes earlier revisions, it adds to them.

Parameters:
  - context: context.Context
  - id: string (Item UUID)
  - revisionID: string

Returns:
  - *ContentItem: The reverted item
  - error: apperr.NotFound, validation, or persistence errors
*/
func (service *Service) RevertContentItem(context context.Context, id, revisionID string) (*ContentItem, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	record, err := service.revisions.GetByID(context, revisionID)
	if err != nil {
		return nil, err
	}
	if record.ParentType != revision.ParentContentItem || record.ParentID != item.ID {
		return nil, apperr.NotFound("Revision for this item")
	}

	var snapshotContent field.Document
	if err := json.Unmarshal(record.Snapshot, &snapshotContent); err != nil {
		return nil, fmt.Errorf("contentitem: decode revision snapshot: %w", err)
	}

	item.DraftContent = snapshotContent
	item.PublishedContent = snapshotContent.Clone()
	item.IsPublished = true
	item.IsDraft = false
	item.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.UpdateWithRevision(context, item, record.Snapshot, ctxutil.GetActorID(context)); err != nil {
		return nil, err
	}
	return item, nil
}

// # Trash

/*
DeleteContentItem moves an item to the trash.

Description: A resolved snapshot (primary field display value, published
body, route path) is written to the trash table and the live row is
removed in one transaction. The route cache entry is invalidated so the
route stops resolving immediately.

Parameters:
  - context: context.Context
  - id: string (Item UUID)

Returns:
  - *DeletedContentItem: The trash entry
  - error: apperr.NotFound or persistence errors
*/
func (service *Service) DeleteContentItem(context context.Context, id string) (*DeletedContentItem, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	contentType, err := service.typeRepo.FindByID(context, item.ContentTypeID)
	if err != nil {
		return nil, err
	}

	deleted := &DeletedContentItem{
		ID:                uuidv7.New(),
		OriginalItemID:    item.ID,
		ContentTypeID:     item.ContentTypeID,
		PrimaryFieldValue: primaryFieldValue(contentType, item),
		PublishedContent:  item.PublishedContent.Clone(),
		RoutePath:         item.RoutePath,
		WebTemplateID:     item.WebTemplateID,
		DeleterUserID:     ctxutil.GetActorID(context),
	}

	if err := service.repo.MoveToTrash(context, item.ID, deleted); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, item.RoutePath)
	return deleted, nil
}

/*
RestoreContentItem brings a trashed item back to life.

Description: The restored item keeps its original id, route path, and
published content; it comes back published with a clean draft. If the
route path was claimed by another item while this one sat in the trash,
the restore is rejected with a conflict.

Parameters:
  - context: context.Context
  - deletedID: string (Trash entry UUID)

Returns:
  - *ContentItem: The restored item
  - error: apperr.NotFound, apperr.Conflict, or persistence errors
*/
func (service *Service) RestoreContentItem(context context.Context, deletedID string) (*ContentItem, error) {
	deleted, err := service.repo.FindDeletedByID(context, deletedID)
	if err != nil {
		return nil, err
	}

	taken, err := service.routePathTaken(context, deleted.RoutePath)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(
			fmt.Sprintf("Route path %q was claimed while this item was in the trash", deleted.RoutePath))
	}

	item := &ContentItem{
		ID:                 deleted.OriginalItemID,
		ContentTypeID:      deleted.ContentTypeID,
		IsPublished:        true,
		IsDraft:            false,
		DraftContent:       deleted.PublishedContent.Clone(),
		PublishedContent:   deleted.PublishedContent.Clone(),
		RoutePath:          deleted.RoutePath,
		WebTemplateID:      deleted.WebTemplateID,
		LastModifierUserID: ctxutil.GetActorID(context),
	}

	if err := service.repo.RestoreFromTrash(context, deleted.ID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// PurgeDeletedContentItem permanently removes a trash entry.
func (service *Service) PurgeDeletedContentItem(context context.Context, deletedID string) error {
	if _, err := service.repo.FindDeletedByID(context, deletedID); err != nil {
		return err
	}
	return service.repo.PurgeDeleted(context, deletedID)
}

// # Internals

func (service *Service) findContentType(context context.Context, identifier string) (*contenttype.ContentType, error) {
	if uuidv7.IsValid(identifier) {
		return service.typeRepo.FindByID(context, identifier)
	}
	return service.typeRepo.FindByDeveloperName(context, identifier)
}

// coerceContent merges raw input over a base document, coercing each value
// against the active schema. Keys matching no active field are rejected.
func (service *Service) coerceContent(contentType *contenttype.ContentType, raw map[string]any, base field.Document) (field.Document, error) {
	document := base.Clone()
	if document == nil {
		document = field.Document{}
	}

	validator := &validate.Validator{}

	for developerName, rawValue := range raw {
		definition, found := contentType.FieldByDeveloperName(developerName)
		if !found {
			validator.Fail(developerName, "No such field on this content type")
			continue
		}

		value, err := field.ValueFrom(definition.FieldType, rawValue)
		if err != nil {
			if appError := apperr.As(err); appError != nil {
				validator.Fail(developerName, appError.Message)
				continue
			}
			return nil, err
		}
		document[developerName] = value
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return document, nil
}

// resolveRoutePath picks the explicit override or expands the type's
// template, then enforces global route uniqueness.
func (service *Service) resolveRoutePath(context context.Context, contentType *contenttype.ContentType, item *ContentItem, override string) (string, error) {
	routePath := NormalizeRoutePath(override)
	if routePath == "" {
		routePath = ExpandRoute(contentType.DefaultRouteTemplate, RouteContext{
			ContentTypeDeveloperName: contentType.DeveloperName,
			PrimaryFieldValue:        primaryFieldValue(contentType, item),
			ItemID:                   item.ID,
			Now:                      time.Now().UTC(),
		})
	}

	if routePath == "" {
		return "", validate.RequiredError(FieldRoutePath, "Route path resolved to an empty string")
	}

	taken, err := service.routePathTaken(context, routePath)
	if err != nil {
		return "", err
	}
	if taken {
		return "", validate.RequiredError(FieldRoutePath,
			fmt.Sprintf("Route path %q is already in use", routePath))
	}

	return routePath, nil
}

// routePathTaken checks the item table first, then any other surface that
// shares the route namespace.
func (service *Service) routePathTaken(context context.Context, routePath string) (bool, error) {
	taken, err := service.repo.ExistsByRoutePath(context, routePath)
	if err != nil || taken {
		return taken, err
	}
	if service.routeTaken != nil {
		return service.routeTaken(context, routePath)
	}
	return false, nil
}

// primaryFieldValue renders the item's primary field from the draft body,
// falling back to the published body, then the item id.
func primaryFieldValue(contentType *contenttype.ContentType, item *ContentItem) string {
	primary, found := contentType.PrimaryField()
	if !found {
		return item.ID
	}

	renderContext := field.RenderContext{}
	if value := item.DraftContent.Get(primary.DeveloperName); value != nil && !value.IsEmpty() {
		return value.Render(renderContext)
	}
	if value := item.PublishedContent.Get(primary.DeveloperName); value != nil && !value.IsEmpty() {
		return value.Render(renderContext)
	}
	return item.ID
}
