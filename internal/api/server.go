// Copyright (c) 2026 Plume. All rights reserved.

/*
Package api wires the chi router, the middleware chain, and every feature
handler into a runnable [http.Server].

It is the composition root of the HTTP transport: only this package and
cmd/api touch net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/plumehq/plume/internal/platform/config"
	"github.com/plumehq/plume/internal/platform/constants"
	"github.com/plumehq/plume/internal/platform/middleware"
)

// RouteRegistrar is implemented by every feature handler. Handlers register
// absolute paths, which lets a feature own nested routes under another
// feature's prefix (the post handler registers /categories/{id}/posts).
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// Server wraps the chi router and the [http.Server]. Constructed once in
// main with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
}

// Handlers groups the feature handler sets mounted under /api.
// Adding a domain means adding a field here, nothing else.
type Handlers struct {
	// Liveness is the /health handler; 200 whenever the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	// Auth serves register, login, logout, and refresh.
	Auth RouteRegistrar

	// Post serves post CRUD plus the nested post listings.
	Post RouteRegistrar

	// Category and Tag serve label CRUD.
	Category RouteRegistrar
	Tag      RouteRegistrar

	// Comment serves comment CRUD and per-post comment listings.
	Comment RouteRegistrar
}

// NewServer builds the router with the full middleware chain and registers
// all route groups.
func NewServer(appContext context.Context, cfg *config.Config, logger *slog.Logger, verifier middleware.TokenVerifier, handlers Handlers) *Server {
	router := chi.NewRouter()

	// Global middleware, in execution order.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(appContext))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.Authenticate(verifier))
	router.Use(middleware.CORS(cfg))
	router.Use(chimw.CleanPath)

	// Unauthenticated probes for container orchestration.
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)

	router.Route("/api", func(apiRouter chi.Router) {
		handlers.Auth.RegisterRoutes(apiRouter)
		handlers.Post.RegisterRoutes(apiRouter)
		handlers.Category.RegisterRoutes(apiRouter)
		handlers.Tag.RegisterRoutes(apiRouter)
		handlers.Comment.RegisterRoutes(apiRouter)
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe starts the HTTP server and blocks until it is closed.
func (server *Server) ListenAndServe() error {
	server.logger.Info("server_starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(ctx)
}
