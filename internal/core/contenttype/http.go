// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package contenttype provides the HTTP interface for schema management.

# Routing Strategy

  - Read (Editor): Listing and inspecting schemas requires an authenticated editor.
  - Mutative (Admin): Creating and changing schemas requires [sec.RoleAdmin].

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package contenttype

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/middleware"
	requestutil "github.com/RaythaHQ/raytha-sub000/internal/platform/request"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/respond"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
)

// Handler implements the HTTP layer for content type schema management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content type [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the schema endpoints.
//
// The item and view routers are mounted under the same {typeIdentifier}
// scope so every item and view URL names its owning content type by UUID
// or developer name.
func (handler *Handler) Routes(items, views chi.Router) chi.Router {
	router := chi.NewRouter()

	// ## Schema Inspection (Editor)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/", handler.listContentTypes)
		editor.Get("/{typeIdentifier}", handler.getContentType)
	})

	// ## Schema Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createContentType)
		admin.Patch("/{typeIdentifier}", handler.editContentType)
		admin.Delete("/{typeIdentifier}", handler.deleteContentType)

		// Fields
		admin.Post("/{typeIdentifier}/fields", handler.createField)
		admin.Patch("/{typeIdentifier}/fields/{fieldID}", handler.editField)
		admin.Delete("/{typeIdentifier}/fields/{fieldID}", handler.deleteField)
		admin.Post("/{typeIdentifier}/fields/{fieldID}/reorder", handler.reorderField)
	})

	// ## Scoped Subresources
	router.Mount("/{typeIdentifier}/items", items)
	router.Mount("/{typeIdentifier}/views", views)

	return router
}

func (handler *Handler) listContentTypes(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	contentTypes, total, err := handler.service.ListContentTypes(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, contentTypes, pagination.NewMeta(params, total))
}

func (handler *Handler) getContentType(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "typeIdentifier")

	contentType, err := handler.service.GetContentType(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contentType)
}

func (handler *Handler) createContentType(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contentType, err := handler.service.CreateContentType(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, contentType)
}

func (handler *Handler) editContentType(writer http.ResponseWriter, request *http.Request) {
	var input EditInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contentType, err := handler.service.EditContentType(request.Context(), requestutil.ID(request, "typeIdentifier"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contentType)
}

func (handler *Handler) deleteContentType(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteContentType(request.Context(), requestutil.ID(request, "typeIdentifier")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) createField(writer http.ResponseWriter, request *http.Request) {
	var input FieldInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	definition, err := handler.service.CreateField(request.Context(), requestutil.ID(request, "typeIdentifier"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, definition)
}

func (handler *Handler) editField(writer http.ResponseWriter, request *http.Request) {
	var input EditFieldInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	definition, err := handler.service.EditField(request.Context(),
		requestutil.ID(request, "typeIdentifier"), requestutil.ID(request, "fieldID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, definition)
}

func (handler *Handler) deleteField(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeleteField(request.Context(),
		requestutil.ID(request, "typeIdentifier"), requestutil.ID(request, "fieldID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) reorderField(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		NewPosition int `json:"new_position"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ordered, err := handler.service.ReorderField(request.Context(),
		requestutil.ID(request, "typeIdentifier"), requestutil.ID(request, "fieldID"), input.NewPosition)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ordered)
}
