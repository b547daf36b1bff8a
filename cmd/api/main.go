// Copyright (c) 2026 Raytha. All rights reserved.

// Command api is the entry point for the Raytha HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire domain services and HTTP handlers.
//  7. Start the background task worker pool.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/api"
	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/menu"
	"github.com/RaythaHQ/raytha-sub000/internal/core/page"
	"github.com/RaythaHQ/raytha-sub000/internal/core/revision"
	"github.com/RaythaHQ/raytha-sub000/internal/core/task"
	"github.com/RaythaHQ/raytha-sub000/internal/core/template"
	"github.com/RaythaHQ/raytha-sub000/internal/core/view"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/config"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/constants"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/migration"
	pgstore "github.com/RaythaHQ/raytha-sub000/internal/platform/postgres"
	redisstore "github.com/RaythaHQ/raytha-sub000/internal/platform/redis"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "raytha"))
	slog.SetDefault(log)

	log.Info("[Raytha] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "raytha"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	location, err := time.LoadLocation(cfg.OrgTimeZone)
	must(log, err, "load organization time zone")

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	revisionRepository := revision.NewPostgresRepository(pool)

	typeRepository := contenttype.NewPostgresRepository(pool)
	typeService := contenttype.NewService(typeRepository)
	typeHandler := contenttype.NewHandler(typeService)

	// Items and views share one route namespace, so each route check
	// consults the other table.
	itemRepository := contentitem.NewPostgresRepository(pool)
	viewRepository := view.NewPostgresRepository(pool)

	routeCache := contentitem.NewRedisRouteCache(rdb, log)
	itemService := contentitem.NewService(itemRepository, typeRepository, revisionRepository, routeCache,
		viewRepository.ExistsByRoutePath)
	itemHandler := contentitem.NewHandler(itemService)

	viewService := view.NewService(viewRepository, typeRepository,
		view.RenderSettings{Location: location, DateFormat: cfg.OrgDateFormat},
		func(ctx context.Context, contentItemID string) string {
			title, err := itemService.PrimaryDisplayValue(ctx, contentItemID)
			if err != nil {
				return ""
			}
			return title
		},
		itemRepository.ExistsByRoutePath,
	)
	viewHandler := view.NewHandler(viewService)

	templateRepository := template.NewPostgresRepository(pool)
	templateService := template.NewService(templateRepository, typeRepository, revisionRepository)
	templateHandler := template.NewHandler(templateService)

	menuRepository := menu.NewPostgresRepository(pool)
	menuService := menu.NewService(menuRepository, revisionRepository)
	menuHandler := menu.NewHandler(menuService)

	taskRepository := task.NewPostgresRepository(pool)
	taskService := task.NewService(taskRepository)
	taskHandler := task.NewHandler(taskService)

	pageService := page.NewService(itemService, viewService, templateService, menuService, typeRepository,
		page.Organization{
			Name:       cfg.OrgName,
			WebsiteURL: cfg.OrgWebsiteURL,
			TimeZone:   cfg.OrgTimeZone,
			DateFormat: cfg.OrgDateFormat,
		}, location)
	pageHandler := page.NewHandler(pageService)

	accountRepository := auth.NewPostgresRepository(pool)
	refreshTokenStore := auth.NewRedisTokenStore(rdb)
	authService := auth.NewService(accountRepository, refreshTokenStore, jwtSvc)
	authHandler := auth.NewHandler(authService)

	// ── 9. Background Workers ─────────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	worker := task.NewWorker(taskRepository, log)
	worker.Register(contentitem.EmptyTrashTaskName, contentitem.EmptyTrashTaskHandler(itemService))
	worker.Start(workerCtx)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        authHandler,
		ContentType: typeHandler,
		ContentItem: itemHandler,
		View:        viewHandler,
		Template:    templateHandler,
		Menu:        menuHandler,
		Task:        taskHandler,
		Page:        pageHandler,
	}

	server := api.NewServer(workerCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	// Stop claiming new tasks and wait for in-flight ones.
	workerCancel()
	worker.Drain()

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
