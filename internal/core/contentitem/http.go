// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package contentitem provides the HTTP interface for item lifecycle management.

# Routing Strategy

  - Read (Editor): Listing items, trash, and revision history requires an
    authenticated editor.
  - Mutative (Editor): Creating, editing, and publishing items is editor work.
  - Destructive (Admin): Restoring and purging trash entries requires
    [sec.RoleAdmin].

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package contentitem

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/middleware"
	requestutil "github.com/RaythaHQ/raytha-sub000/internal/platform/request"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/respond"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
)

// Handler implements the HTTP layer for content item management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content item [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the item lifecycle endpoints.
// The router is mounted under a content type scope, so {typeIdentifier} names
// the owning type by UUID or developer name.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Item Lifecycle (Editor)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/", handler.listContentItems)
		editor.Post("/", handler.createContentItem)
		editor.Get("/{id}", handler.getContentItem)
		editor.Patch("/{id}", handler.editContentItem)
		editor.Patch("/{id}/settings", handler.editSettings)

		editor.Post("/{id}/publish", handler.publishContentItem)
		editor.Post("/{id}/unpublish", handler.unpublishContentItem)
		editor.Post("/{id}/discard-draft", handler.discardDraft)

		editor.Get("/{id}/revisions", handler.listRevisions)
		editor.Post("/{id}/revisions/{revisionID}/revert", handler.revertContentItem)

		editor.Delete("/{id}", handler.deleteContentItem)
		editor.Get("/trash", handler.listTrash)
	})

	// ## Trash Recovery (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/trash/{deletedID}/restore", handler.restoreContentItem)
		admin.Delete("/trash/{deletedID}", handler.purgeContentItem)
	})

	return router
}

func (handler *Handler) typeIdentifier(request *http.Request) string {
	return requestutil.Param(request, "typeIdentifier")
}

func (handler *Handler) listContentItems(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	contentType, err := handler.service.findContentType(request.Context(), handler.typeIdentifier(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListContentItems(request.Context(), contentType.ID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(params, total))
}

func (handler *Handler) getContentItem(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetContentItem(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) createContentItem(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateContentItem(request.Context(), handler.typeIdentifier(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) editContentItem(writer http.ResponseWriter, request *http.Request) {
	var input EditInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.EditContentItem(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) editSettings(writer http.ResponseWriter, request *http.Request) {
	var input SettingsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.EditContentItemSettings(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) publishContentItem(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.PublishContentItem(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) unpublishContentItem(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.UnpublishContentItem(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) discardDraft(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.DiscardDraftContentItem(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) listRevisions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	revisions, total, err := handler.service.ListRevisions(request.Context(), requestutil.ID(request, "id"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, revisions, pagination.NewMeta(params, total))
}

func (handler *Handler) revertContentItem(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.RevertContentItem(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "revisionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteContentItem(writer http.ResponseWriter, request *http.Request) {
	deleted, err := handler.service.DeleteContentItem(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleted)
}

func (handler *Handler) listTrash(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	contentType, err := handler.service.findContentType(request.Context(), handler.typeIdentifier(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, total, err := handler.service.ListDeletedItems(request.Context(), contentType.ID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params, total))
}

func (handler *Handler) restoreContentItem(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.RestoreContentItem(request.Context(), requestutil.ID(request, "deletedID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) purgeContentItem(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.PurgeDeletedContentItem(request.Context(), requestutil.ID(request, "deletedID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
