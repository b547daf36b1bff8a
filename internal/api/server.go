// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/menu"
	"github.com/RaythaHQ/raytha-sub000/internal/core/page"
	"github.com/RaythaHQ/raytha-sub000/internal/core/task"
	"github.com/RaythaHQ/raytha-sub000/internal/core/template"
	"github.com/RaythaHQ/raytha-sub000/internal/core/view"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/config"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/constants"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/middleware"
	"github.com/RaythaHQ/raytha-sub000/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles sign-in and administrative account management.
	Auth *auth.Handler

	// ContentType manages editor-defined content schemas.
	ContentType *contenttype.Handler

	// ContentItem manages the item lifecycle under a content type scope.
	ContentItem *contentitem.Handler

	// View manages saved list configurations under a content type scope.
	View *view.Handler

	// Template manages web and email templates.
	Template *template.Handler

	// Menu manages navigation menus.
	Menu *menu.Handler

	// Task exposes background task polling.
	Task *task.Handler

	// Page serves published content as public HTML pages.
	Page *page.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix. Items
	// and views live under the content type scope so their URLs always
	// name the owning schema.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/content-types", h.ContentType.Routes(h.ContentItem.Routes(), h.View.Routes()))
		api.Mount("/templates", h.Template.Routes())
		api.Mount("/menus", h.Menu.Routes())
		api.Mount("/tasks", h.Task.Routes())
	})

	// # Public Delivery
	// Published content rendered as HTML for anonymous visitors. Mounted
	// last so the API and health routes always win.
	r.Mount("/", h.Page.Routes())

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
