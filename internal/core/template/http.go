// Copyright (c) 2026 Raytha. All rights reserved.

package template

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/middleware"
	requestutil "github.com/RaythaHQ/raytha-sub000/internal/platform/request"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/respond"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
)

// Handler implements the HTTP layer for template management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new template [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the template endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Template Inspection (Editor)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/web", handler.listWebTemplates)
		editor.Get("/web/{id}", handler.getWebTemplate)
		editor.Get("/web/{id}/revisions", handler.listWebTemplateRevisions)
		editor.Get("/email", handler.listEmailTemplates)
		editor.Get("/email/{id}", handler.getEmailTemplate)
		editor.Get("/email/{id}/revisions", handler.listEmailTemplateRevisions)
		editor.Get("/variables", handler.insertVariables)
	})

	// ## Template Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/web", handler.createWebTemplate)
		admin.Patch("/web/{id}", handler.editWebTemplate)
		admin.Delete("/web/{id}", handler.deleteWebTemplate)
		admin.Post("/web/{id}/revisions/{revisionID}/revert", handler.revertWebTemplate)

		admin.Patch("/email/{id}", handler.editEmailTemplate)
		admin.Post("/email/{id}/revisions/{revisionID}/revert", handler.revertEmailTemplate)
	})

	return router
}

// # Web Templates

func (handler *Handler) listWebTemplates(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	templates, total, err := handler.service.ListWebTemplates(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, templates, pagination.NewMeta(params, total))
}

func (handler *Handler) getWebTemplate(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.GetWebTemplate(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

func (handler *Handler) createWebTemplate(writer http.ResponseWriter, request *http.Request) {
	var input CreateWebTemplateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.CreateWebTemplate(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, template)
}

func (handler *Handler) editWebTemplate(writer http.ResponseWriter, request *http.Request) {
	var input EditWebTemplateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.EditWebTemplate(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

func (handler *Handler) deleteWebTemplate(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteWebTemplate(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) revertWebTemplate(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.RevertWebTemplate(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "revisionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

func (handler *Handler) listWebTemplateRevisions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	revisions, total, err := handler.service.ListWebTemplateRevisions(request.Context(),
		requestutil.ID(request, "id"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, revisions, pagination.NewMeta(params, total))
}

// # Email Templates

func (handler *Handler) listEmailTemplates(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	templates, total, err := handler.service.ListEmailTemplates(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, templates, pagination.NewMeta(params, total))
}

func (handler *Handler) getEmailTemplate(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.GetEmailTemplate(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

func (handler *Handler) editEmailTemplate(writer http.ResponseWriter, request *http.Request) {
	var input EditEmailTemplateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.EditEmailTemplate(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

func (handler *Handler) revertEmailTemplate(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.RevertEmailTemplate(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "revisionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

func (handler *Handler) listEmailTemplateRevisions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	revisions, total, err := handler.service.ListEmailTemplateRevisions(request.Context(),
		requestutil.ID(request, "id"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, revisions, pagination.NewMeta(params, total))
}

// # Variable Surface

func (handler *Handler) insertVariables(writer http.ResponseWriter, request *http.Request) {
	variables, err := handler.service.InsertVariables(request.Context(), request.URL.Query().Get("content_type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, variables)
}
