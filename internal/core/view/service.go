// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package view implements saved, named queries over a content type's items.

A view bundles a filter condition tree, an ordered sort specification, and a
column projection list, plus per-view pagination policy. Views power both
the admin listing surface and the public content delivery surface.
*/
package view

import (
	"context"
	"fmt"
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
	"github.com/RaythaHQ/raytha-sub000/pkg/slug"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// Pagination policy applied when a new view does not specify its own.
const (
	DefaultItemsPerPage = 25
	MaxItemsPerPage     = 250
)

// Validation field identifiers surfaced in error details.
const (
	FieldLabel         = "label"
	FieldDeveloperName = "developer_name"
	FieldRoutePath     = "route_path"
	FieldColumns       = "columns"
	FieldSorts         = "sorts"
	FieldFilter        = "filter"
)

// RenderSettings carries the organization-level display settings used when
// projecting item values into view columns.
type RenderSettings struct {
	Location   *time.Location
	DateFormat string
}

// RelatedTitleFunc resolves a related content item id to its primary field
// display value. May be nil; relationship columns then show the raw id.
type RelatedTitleFunc func(context context.Context, contentItemID string) string

// Service orchestrates view management and view-driven item listings.
type Service struct {
	repo         Repository
	typeRepo     contenttype.Repository
	settings     RenderSettings
	relatedTitle RelatedTitleFunc
	routeTaken   contentitem.RouteTakenFunc
}

// NewService constructs a new [Service] with its required collaborators.
// routeTaken consults the content item table: views and items share one
// route namespace.
func NewService(repo Repository, typeRepo contenttype.Repository, settings RenderSettings, relatedTitle RelatedTitleFunc, routeTaken contentitem.RouteTakenFunc) *Service {
	return &Service{
		repo:         repo,
		typeRepo:     typeRepo,
		settings:     settings,
		relatedTitle: relatedTitle,
		routeTaken:   routeTaken,
	}
}

// routePathTaken checks the view table first, then the content item table.
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

// # Inputs

// CreateInput carries a new view's identity and projection.
type CreateInput struct {
	Label         string   `json:"label"`
	DeveloperName string   `json:"developer_name"`
	Description   string   `json:"description"`
	RoutePath     string   `json:"route_path"`
	Columns       []string `json:"columns"`
}

// EditInput carries label-level changes. Developer names are immutable.
type EditInput struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// PublicSettingsInput carries the public delivery settings of a view.
type PublicSettingsInput struct {
	RoutePath              string `json:"route_path"`
	IsPublished            bool   `json:"is_published"`
	DefaultItemsPerPage    int    `json:"default_items_per_page"`
	MaxItemsPerPage        int    `json:"max_items_per_page"`
	IgnoreClientFilterSort bool   `json:"ignore_client_filter_sort"`
}

// # View Management

// GetView fetches a single view by id.
func (service *Service) GetView(context context.Context, id string) (*View, error) {
	return service.repo.FindByID(context, id)
}

// GetViewByRoutePath resolves a public route to its view.
func (service *Service) GetViewByRoutePath(context context.Context, routePath string) (*View, error) {
	return service.repo.FindByRoutePath(context, contentitem.NormalizeRoutePath(routePath))
}

// ListViews retrieves a content type's views.
func (service *Service) ListViews(context context.Context, contentTypeIdentifier string, limit, offset int) ([]*View, int, error) {
	contentType, err := service.findContentType(context, contentTypeIdentifier)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, contentType.ID, limit, offset)
}

// CreateView creates a saved query over the given content type. The
// developer name is generated from the label when omitted, and the route
// path defaults to "<type>/<view>".
func (service *Service) CreateView(context context.Context, contentTypeIdentifier string, input CreateInput) (*View, error) {
	contentType, err := service.findContentType(context, contentTypeIdentifier)
	if err != nil {
		return nil, err
	}

	developerName := input.DeveloperName
	if developerName == "" {
		developerName = slug.From(input.Label)
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 120)
	validator.DeveloperName(FieldDeveloperName, developerName)
	service.validateColumnsAgainst(validator, contentType, input.Columns)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.repo.ExistsByDeveloperName(context, contentType.ID, developerName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(fmt.Sprintf("A view named %q already exists on this content type", developerName))
	}

	routePath := contentitem.NormalizeRoutePath(input.RoutePath)
	if routePath == "" {
		routePath = contentType.DeveloperName + "/" + developerName
	}
	routeTaken, err := service.routePathTaken(context, routePath)
	if err != nil {
		return nil, err
	}
	if routeTaken {
		return nil, validate.RequiredError(FieldRoutePath,
			fmt.Sprintf("Route path %q is already in use", routePath))
	}

	columns := input.Columns
	if len(columns) == 0 {
		columns = defaultColumns(contentType)
	}

	created := &View{
		ID:                  uuidv7.New(),
		ContentTypeID:       contentType.ID,
		Label:               input.Label,
		DeveloperName:       developerName,
		Description:         input.Description,
		RoutePath:           routePath,
		Columns:             columns,
		Sorts:               []Sort{},
		DefaultItemsPerPage: DefaultItemsPerPage,
		MaxItemsPerPage:     MaxItemsPerPage,
		CreatorUserID:       ctxutil.GetActorID(context),
		LastModifierUserID:  ctxutil.GetActorID(context),
	}

	if err := service.repo.Create(context, created); err != nil {
		return nil, err
	}
	return created, nil
}

// EditView updates a view's label and description.
func (service *Service) EditView(context context.Context, id string, input EditInput) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 120)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.Label = input.Label
	current.Description = input.Description
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// EditPublicSettings updates a view's public delivery settings: route path,
// publication flag, pagination policy, and the client override lock.
func (service *Service) EditPublicSettings(context context.Context, id string, input PublicSettingsInput) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Range("default_items_per_page", input.DefaultItemsPerPage, 1, pagination.MaxLimit)
	validator.Range("max_items_per_page", input.MaxItemsPerPage, 1, pagination.MaxLimit)
	validator.Custom("max_items_per_page",
		input.DefaultItemsPerPage > input.MaxItemsPerPage,
		"Must be greater than or equal to the default page size")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if routePath := contentitem.NormalizeRoutePath(input.RoutePath); routePath != "" && routePath != current.RoutePath {
		taken, err := service.routePathTaken(context, routePath)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, validate.RequiredError(FieldRoutePath,
				fmt.Sprintf("Route path %q is already in use", routePath))
		}
		current.RoutePath = routePath
	}

	current.IsPublished = input.IsPublished
	current.DefaultItemsPerPage = input.DefaultItemsPerPage
	current.MaxItemsPerPage = input.MaxItemsPerPage
	current.IgnoreClientFilterSort = input.IgnoreClientFilterSort
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteView removes a view. Items are untouched.
func (service *Service) DeleteView(context context.Context, id string) error {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return err
	}
	return service.repo.Delete(context, id)
}

// ToggleFavorite flips whether the calling admin has this view pinned.
func (service *Service) ToggleFavorite(context context.Context, id string) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	actorID := ctxutil.GetActorID(context)
	if actorID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if current.IsFavoritedBy(actorID) {
		kept := make([]string, 0, len(current.FavoritedBy))
		for _, userID := range current.FavoritedBy {
			if userID != actorID {
				kept = append(kept, userID)
			}
		}
		current.FavoritedBy = kept
	} else {
		current.FavoritedBy = append(current.FavoritedBy, actorID)
	}

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// # Filter, Columns, Sorts

// EditFilter replaces the view's condition tree. Every leaf must reference
// an active or built-in field with an operator valid for its type.
func (service *Service) EditFilter(context context.Context, id string, filter *FilterNode) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	contentType, err := service.typeRepo.FindByID(context, current.ContentTypeID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := ValidateFilter(filter, contentType); len(fieldErrors) > 0 {
		return nil, apperr.ValidationError("Validation failed", fieldErrors...)
	}

	current.Filter = filter
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// EditColumns replaces the view's column projection list.
func (service *Service) EditColumns(context context.Context, id string, columns []string) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	contentType, err := service.typeRepo.FindByID(context, current.ContentTypeID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	service.validateColumnsAgainst(validator, contentType, columns)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.Columns = columns
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// ReorderColumn moves one column to a new position, clamped to the list
// bounds. The relative order of the other columns is preserved.
func (service *Service) ReorderColumn(context context.Context, id, developerName string, newPosition int) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	reordered, found := reorderEntry(current.Columns, developerName, newPosition, func(column string) string { return column })
	if !found {
		return nil, apperr.NotFound("Column")
	}

	current.Columns = reordered
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// EditSort replaces the view's sort specification. Entries are applied in
// list order; the first entry is the primary sort key.
func (service *Service) EditSort(context context.Context, id string, sorts []Sort) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	contentType, err := service.typeRepo.FindByID(context, current.ContentTypeID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	for _, entry := range sorts {
		if _, ok := resolveFieldType(contentType, entry.DeveloperName); !ok {
			validator.Fail(entry.DeveloperName, "No such field on this content type")
		}
		if !IsValidDirection(entry.Direction) {
			validator.Fail(entry.DeveloperName,
				fmt.Sprintf("Direction must be %q or %q", DirectionAscending, DirectionDescending))
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.Sorts = sorts
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// ReorderSort moves one sort entry to a new position, clamped to the list
// bounds.
func (service *Service) ReorderSort(context context.Context, id, developerName string, newPosition int) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	reordered, found := reorderEntry(current.Sorts, developerName, newPosition, func(entry Sort) string { return entry.DeveloperName })
	if !found {
		return nil, apperr.NotFound("Sort entry")
	}

	current.Sorts = reordered
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// RemoveSort removes exactly the named entry, leaving the relative order of
// the remaining entries unchanged.
func (service *Service) RemoveSort(context context.Context, id, developerName string) (*View, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	kept := make([]Sort, 0, len(current.Sorts))
	removed := false
	for _, entry := range current.Sorts {
		if entry.DeveloperName == developerName && !removed {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return nil, apperr.NotFound("Sort entry")
	}

	current.Sorts = kept
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// # Item Listing

// ItemRow is one projected row of a view listing: item identity plus the
// rendered display string of every view column.
type ItemRow struct {
	ID          string            `json:"id"`
	RoutePath   string            `json:"route_path"`
	IsPublished bool              `json:"is_published"`
	IsDraft     bool              `json:"is_draft"`
	CreatedAt   time.Time         `json:"created_at"`
	Fields      map[string]string `json:"fields"`
}

// ListResult is the outcome of executing a view.
type ListResult struct {
	View  *View     `json:"view"`
	Items []ItemRow `json:"items"`
	Total int       `json:"total"`
}

/*
ListItems executes a view against the content item store.

Description: The stored filter tree is compiled to a parameterized WHERE
fragment over the published JSONB document and the sort list to an ORDER BY
clause, both against the schema as it exists NOW — stored entries whose
field was deleted degrade by being skipped. The page size is clamped to the
view's MaxItemsPerPage ceiling. Client filter/sort overrides are combined
with the stored ones unless IgnoreClientFilterSort is set, in which case
any override attempt is rejected.

Parameters:
  - context: context.Context
  - id: string (View UUID)
  - params: pagination.Params
  - clientFilter: *FilterNode (nil when the caller sent none)
  - clientSorts: []Sort (nil when the caller sent none)

Returns:
  - *ListResult: The view, projected rows, and total match count
  - error: apperr.NotFound, validation, or persistence errors
*/
func (service *Service) ListItems(context context.Context, id string, params pagination.Params, clientFilter *FilterNode, clientSorts []Sort) (*ListResult, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	contentType, err := service.typeRepo.FindByID(context, current.ContentTypeID)
	if err != nil {
		return nil, err
	}

	if current.IgnoreClientFilterSort && (clientFilter != nil || len(clientSorts) > 0) {
		return nil, validate.RequiredError(FieldFilter,
			"This view does not accept client filter or sort overrides")
	}

	effectiveFilter := current.Filter
	if clientFilter != nil {
		if fieldErrors := ValidateFilter(clientFilter, contentType); len(fieldErrors) > 0 {
			return nil, apperr.ValidationError("Validation failed", fieldErrors...)
		}
		if effectiveFilter == nil {
			effectiveFilter = clientFilter
		} else {
			effectiveFilter = &FilterNode{Join: JoinAnd, Nodes: []FilterNode{*current.Filter, *clientFilter}}
		}
	}

	effectiveSorts := current.Sorts
	if len(clientSorts) > 0 {
		for _, entry := range clientSorts {
			if !IsValidDirection(entry.Direction) {
				return nil, validate.RequiredError(FieldSorts,
					fmt.Sprintf("Direction must be %q or %q", DirectionAscending, DirectionDescending))
			}
		}
		effectiveSorts = clientSorts
	}

	params = params.ClampTo(current.DefaultItemsPerPage, current.MaxItemsPerPage)

	where, args, err := CompileFilter(effectiveFilter, contentType, 2)
	if err != nil {
		return nil, err
	}
	orderBy := CompileSorts(effectiveSorts, contentType)

	items, total, err := service.repo.ListItems(context, contentType.ID, where, args, orderBy, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	rows := make([]ItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, service.projectItem(context, contentType, current.Columns, item))
	}

	return &ListResult{View: current, Items: rows, Total: total}, nil
}

// projectItem renders one item's values for the view's column list.
func (service *Service) projectItem(context context.Context, contentType *contenttype.ContentType, columns []string, item *contentitem.ContentItem) ItemRow {
	row := ItemRow{
		ID:          item.ID,
		RoutePath:   item.RoutePath,
		IsPublished: item.IsPublished,
		IsDraft:     item.IsDraft,
		CreatedAt:   item.CreatedAt,
		Fields:      make(map[string]string, len(columns)),
	}

	for _, column := range columns {
		row.Fields[column] = service.renderColumn(context, contentType, column, item)
	}
	return row
}

func (service *Service) renderColumn(context context.Context, contentType *contenttype.ContentType, column string, item *contentitem.ContentItem) string {
	switch column {
	case "id":
		return item.ID
	case "route_path":
		return item.RoutePath
	case "is_published":
		if item.IsPublished {
			return "Yes"
		}
		return "No"
	case "created_at":
		return item.CreatedAt.In(service.location()).Format(service.dateFormat())
	case "updated_at":
		return item.UpdatedAt.In(service.location()).Format(service.dateFormat())
	}

	definition, ok := contentType.FieldByDeveloperName(column)
	if !ok {
		// Column references a deleted field: render blank, don't fail.
		return ""
	}

	value := item.PublishedContent.Get(column)
	if value == nil {
		return ""
	}

	renderContext := field.RenderContext{
		Location:   service.settings.Location,
		DateFormat: service.settings.DateFormat,
		ChoiceLabel: func(developerName string) string {
			if choice, found := definition.ChoiceByDeveloperName(developerName); found {
				return choice.Label
			}
			return ""
		},
	}
	if service.relatedTitle != nil {
		renderContext.RelatedTitle = func(contentItemID string) string {
			return service.relatedTitle(context, contentItemID)
		}
	}

	return value.Render(renderContext)
}

// # Internals

func (service *Service) location() *time.Location {
	if service.settings.Location == nil {
		return time.UTC
	}
	return service.settings.Location
}

func (service *Service) dateFormat() string {
	if service.settings.DateFormat == "" {
		return field.DateWireFormat
	}
	return service.settings.DateFormat
}

func (service *Service) findContentType(context context.Context, identifier string) (*contenttype.ContentType, error) {
	if uuidv7.IsValid(identifier) {
		return service.typeRepo.FindByID(context, identifier)
	}
	return service.typeRepo.FindByDeveloperName(context, identifier)
}

func (service *Service) validateColumnsAgainst(validator *validate.Validator, contentType *contenttype.ContentType, columns []string) {
	seen := make(map[string]bool, len(columns))
	for _, column := range columns {
		if _, ok := resolveFieldType(contentType, column); !ok {
			validator.Fail(column, "No such field on this content type")
		}
		if seen[column] {
			validator.Fail(column, "Duplicate column")
		}
		seen[column] = true
	}
}

// defaultColumns projects the primary field plus the built-in audit columns.
func defaultColumns(contentType *contenttype.ContentType) []string {
	columns := make([]string, 0, 3)
	if primary, found := contentType.PrimaryField(); found {
		columns = append(columns, primary.DeveloperName)
	}
	return append(columns, "created_at", "is_published")
}

// reorderEntry splices the entry with the given key to a new clamped
// position, preserving the relative order of everything else.
func reorderEntry[T any](entries []T, key string, newPosition int, keyOf func(T) string) ([]T, bool) {
	index := -1
	for i, entry := range entries {
		if keyOf(entry) == key {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, false
	}

	if newPosition < 0 {
		newPosition = 0
	}
	if newPosition > len(entries)-1 {
		newPosition = len(entries) - 1
	}

	moved := entries[index]
	without := append(append([]T(nil), entries[:index]...), entries[index+1:]...)
	reordered := append(append(append([]T(nil), without[:newPosition]...), moved), without[newPosition:]...)
	return reordered, true
}
