// Copyright (c) 2026 Raytha. All rights reserved.

package page

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/respond"
)

// Handler implements the public HTML delivery layer.
type Handler struct {
	service *Service
}

// NewHandler constructs a new page [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] serving every route path under its mount
// point. No authentication is required; only published items resolve.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/*", handler.renderPage)
	return router
}

func (handler *Handler) renderPage(writer http.ResponseWriter, request *http.Request) {
	body, err := handler.service.RenderRoute(request.Context(), chi.URLParam(request, "*"), RequestInfo{
		Path:  request.URL.Path,
		Query: request.URL.RawQuery,
		URL:   request.URL.String(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.HTML(writer, http.StatusOK, body)
}
