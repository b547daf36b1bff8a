// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package view provides the HTTP interface for saved view management.

# Routing Strategy

  - Read (Editor): Listing views and executing them requires an
    authenticated editor; favorites are a per-user toggle.
  - Mutative (Admin): Changing a view's definition (filter, columns, sorts,
    public settings) requires [sec.RoleAdmin].
*/
package view

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/middleware"
	requestutil "github.com/RaythaHQ/raytha-sub000/internal/platform/request"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/respond"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
	"github.com/RaythaHQ/raytha-sub000/pkg/query"
)

// Handler implements the HTTP layer for view management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new view [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the view endpoints. The
// router is mounted under a content type scope.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## View Execution (Editor)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/", handler.listViews)
		editor.Get("/{id}", handler.getView)
		editor.Get("/{id}/items", handler.listItems)
		editor.Post("/{id}/favorite", handler.toggleFavorite)
	})

	// ## View Definition (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createView)
		admin.Patch("/{id}", handler.editView)
		admin.Delete("/{id}", handler.deleteView)
		admin.Patch("/{id}/public-settings", handler.editPublicSettings)

		admin.Put("/{id}/filter", handler.editFilter)
		admin.Put("/{id}/columns", handler.editColumns)
		admin.Post("/{id}/columns/{developerName}/reorder", handler.reorderColumn)
		admin.Put("/{id}/sorts", handler.editSort)
		admin.Post("/{id}/sorts/{developerName}/reorder", handler.reorderSort)
		admin.Delete("/{id}/sorts/{developerName}", handler.removeSort)
	})

	return router
}

func (handler *Handler) listViews(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	views, total, err := handler.service.ListViews(request.Context(),
		requestutil.Param(request, "typeIdentifier"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, views, pagination.NewMeta(params, total))
}

func (handler *Handler) getView(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.service.GetView(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, current)
}

func (handler *Handler) createView(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateView(request.Context(),
		requestutil.Param(request, "typeIdentifier"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) editView(writer http.ResponseWriter, request *http.Request) {
	var input EditInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edited, err := handler.service.EditView(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) deleteView(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteView(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) editPublicSettings(writer http.ResponseWriter, request *http.Request) {
	var input PublicSettingsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edited, err := handler.service.EditPublicSettings(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) editFilter(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Filter *FilterNode `json:"filter"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edited, err := handler.service.EditFilter(request.Context(), requestutil.ID(request, "id"), input.Filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) editColumns(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Columns []string `json:"columns"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edited, err := handler.service.EditColumns(request.Context(), requestutil.ID(request, "id"), input.Columns)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) reorderColumn(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		NewPosition int `json:"new_position"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edited, err := handler.service.ReorderColumn(request.Context(),
		requestutil.ID(request, "id"), requestutil.Param(request, "developerName"), input.NewPosition)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) editSort(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Sorts []Sort `json:"sorts"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edited, err := handler.service.EditSort(request.Context(), requestutil.ID(request, "id"), input.Sorts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) reorderSort(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		NewPosition int `json:"new_position"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edited, err := handler.service.ReorderSort(request.Context(),
		requestutil.ID(request, "id"), requestutil.Param(request, "developerName"), input.NewPosition)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) removeSort(writer http.ResponseWriter, request *http.Request) {
	edited, err := handler.service.RemoveSort(request.Context(),
		requestutil.ID(request, "id"), requestutil.Param(request, "developerName"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	edited, err := handler.service.ToggleFavorite(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edited)
}

func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	clientFilter, err := parseClientFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	clientSorts, err := parseClientSorts(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListItems(request.Context(),
		requestutil.ID(request, "id"), params, clientFilter, clientSorts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clamped := params.ClampTo(result.View.DefaultItemsPerPage, result.View.MaxItemsPerPage)
	respond.Paginated(writer, result.Items, pagination.NewMeta(clamped, result.Total))
}

// parseClientFilter decodes the optional "filter" query parameter, a
// JSON-encoded condition tree.
func parseClientFilter(request *http.Request) (*FilterNode, error) {
	raw := request.URL.Query().Get("filter")
	if raw == "" {
		return nil, nil
	}

	node := &FilterNode{}
	if err := json.Unmarshal([]byte(raw), node); err != nil {
		return nil, validate.RequiredError("filter", "Must be a valid JSON condition tree")
	}
	return node, nil
}

// parseClientSorts decodes the optional "sort" query parameter, a
// comma-separated list of "<developer-name>.<direction>" entries.
func parseClientSorts(request *http.Request) ([]Sort, error) {
	raw := request.URL.Query().Get("sort")
	if raw == "" {
		return nil, nil
	}

	entries := query.StringSlice(raw)
	sorts := make([]Sort, 0, len(entries))
	for _, entry := range entries {
		name, direction, found := strings.Cut(entry, ".")
		if !found || name == "" {
			return nil, validate.RequiredError("sort", "Entries must look like <field>.<asc|desc>")
		}
		sorts = append(sorts, Sort{DeveloperName: name, Direction: direction})
	}
	return sorts, nil
}
