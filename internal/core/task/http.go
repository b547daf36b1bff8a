// Copyright (c) 2026 Raytha. All rights reserved.

package task

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/middleware"
	requestutil "github.com/RaythaHQ/raytha-sub000/internal/platform/request"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/respond"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
)

// Handler implements the HTTP layer for background task inspection.
type Handler struct {
	service *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the task endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Task Polling (Editor)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/", handler.listTasks)
		editor.Get("/{id}", handler.getTask)
	})

	// ## Manual Enqueue (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.enqueueTask)
	})

	return router
}

func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	tasks, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, pagination.NewMeta(params, total))
}

func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) enqueueTask(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Name string          `json:"name"`
		Args json.RawMessage `json:"args"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	taskID, err := handler.service.Enqueue(request.Context(), input.Name, input.Args)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"task_id": taskID})
}
