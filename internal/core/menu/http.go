// Copyright (c) 2026 Raytha. All rights reserved.

package menu

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/middleware"
	requestutil "github.com/RaythaHQ/raytha-sub000/internal/platform/request"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/respond"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
)

// Handler implements the HTTP layer for navigation menu management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new menu [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the menu endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Menu Inspection (Editor)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/", handler.listMenus)
		editor.Get("/main", handler.getMainMenu)
		editor.Get("/{identifier}", handler.getMenu)
		editor.Get("/{id}/revisions", handler.listRevisions)
	})

	// ## Menu Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createMenu)
		admin.Patch("/{id}", handler.editMenu)
		admin.Delete("/{id}", handler.deleteMenu)
		admin.Post("/{id}/set-as-main", handler.setAsMainMenu)
		admin.Post("/{id}/revisions/{revisionID}/revert", handler.revert)

		admin.Post("/{id}/items", handler.createItem)
		admin.Patch("/{id}/items/{itemID}", handler.editItem)
		admin.Delete("/{id}/items/{itemID}", handler.deleteItem)
		admin.Post("/{id}/items/{itemID}/reorder", handler.reorderItem)
	})

	return router
}

func (handler *Handler) listMenus(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	menus, total, err := handler.service.ListMenus(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, menus, pagination.NewMeta(params, total))
}

func (handler *Handler) getMenu(writer http.ResponseWriter, request *http.Request) {
	menu, err := handler.service.GetMenu(request.Context(), requestutil.Param(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, menu)
}

func (handler *Handler) getMainMenu(writer http.ResponseWriter, request *http.Request) {
	menu, err := handler.service.GetMainMenu(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, menu)
}

func (handler *Handler) createMenu(writer http.ResponseWriter, request *http.Request) {
	var input CreateMenuInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	menu, err := handler.service.CreateMenu(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, menu)
}

func (handler *Handler) editMenu(writer http.ResponseWriter, request *http.Request) {
	var input EditMenuInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	menu, err := handler.service.EditMenu(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, menu)
}

func (handler *Handler) deleteMenu(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteMenu(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) setAsMainMenu(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.SetAsMainMenu(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	var input ItemInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateItem(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) editItem(writer http.ResponseWriter, request *http.Request) {
	var input ItemInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.EditItem(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "itemID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeleteItem(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "itemID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) reorderItem(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		NewPosition int `json:"new_position"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ordered, err := handler.service.ReorderItem(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "itemID"), input.NewPosition)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ordered)
}

func (handler *Handler) revert(writer http.ResponseWriter, request *http.Request) {
	menu, err := handler.service.Revert(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "revisionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, menu)
}

func (handler *Handler) listRevisions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	revisions, total, err := handler.service.ListRevisions(request.Context(),
		requestutil.ID(request, "id"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, revisions, pagination.NewMeta(params, total))
}
