// Package server собирает HTTP-маршруты todosync поверх handlers и middleware.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/todosync/internal/server/changelog"
	"github.com/iudanet/todosync/internal/server/handlers"
	"github.com/iudanet/todosync/internal/server/middleware"
	"github.com/iudanet/todosync/internal/server/storage/sqlite"
)

// RouterConfig содержит зависимости HTTP-слоя
type RouterConfig struct {
	Logger      *slog.Logger
	Store       *sqlite.Storage
	CodeSender  handlers.CodeSender
	RateLimiter *middleware.RateLimiter
	Version     string
	CORSOrigins []string
	Auth        handlers.AuthConfig
}

// NewRouter создает chi router со всеми маршрутами API
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger

	authHandler := handlers.NewAuthHandler(logger, cfg.Store, cfg.Store, cfg.Store, cfg.CodeSender, cfg.Auth)
	todoHandler := handlers.NewTodoHandler(logger, cfg.Store)
	syncHandler := handlers.NewSyncHandler(logger, changelog.NewDeriver(cfg.Store, logger))
	healthHandler := handlers.NewHealthHandler(logger, cfg.Store, cfg.Version)

	r := chi.NewRouter()
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger, "/health"))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, logger, http.StatusNotFound, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, logger, http.StatusMethodNotAllowed, http.StatusBadRequest, "method not allowed")
	})

	r.Get("/health", healthHandler.Health)

	r.Route("/auth", func(r chi.Router) {
		// Публичные маршруты под rate limit
		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Middleware)
			}
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/send-code", authHandler.SendCode)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		r.With(middleware.AuthMiddleware(logger, cfg.Auth.JWT)).Post("/logout", authHandler.Logout)
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(logger, cfg.Auth.JWT))

		r.Get("/", todoHandler.List)
		r.Post("/", todoHandler.Create)
		// статические сегменты до /{id}
		r.Get("/sync", syncHandler.Changes)
		r.Post("/clear-completed", todoHandler.ClearCompleted)
		r.Put("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Delete)
	})

	return r
}
