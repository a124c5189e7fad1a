package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the account
// API. It applies JSON content-type enforcement, request logging and panic
// recovery, and mounts the account and health endpoints under /api.
//
// Parameters:
//
//	accountHandler - handler for the account CRUD endpoints
//	logger         - structured logger for request logging middleware
//
// Routes:
//
//	GET    /api/health          → Health
//	GET    /api/accounts        → accountHandler.List
//	POST   /api/accounts        → accountHandler.Create
//	GET    /api/accounts/{id}   → accountHandler.Get
//	PUT    /api/accounts/{id}   → accountHandler.Update
//	DELETE /api/accounts/{id}   → accountHandler.Delete
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") rejects non-JSON bodies
//  2. WithRequestLogging(logger) logs every request
//  3. Recoverer turns handler panics into 500 responses
func NewRouter(accountHandler *AccountHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.List)
			r.Post("/", accountHandler.Create)
			r.Get("/{id}", accountHandler.Get)
			r.Put("/{id}", accountHandler.Update)
			r.Delete("/{id}", accountHandler.Delete)
		})
	})

	return r
}
