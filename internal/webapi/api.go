// Package webapi implements the HTTP surface for single-URL checks.
// It handles routing, request decoding, validation, and response formatting;
// the actual checking lives in the checkweb package.
package webapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rafaeljc/huginn/checkweb"
	"github.com/rafaeljc/huginn/internal/validation"
)

// API holds the router and the checker environment for the check endpoint.
type API struct {
	// Router is the Chi multiplexer that handles HTTP requests.
	Router *chi.Mux

	// env is the capability bundle handed to every check: probe client,
	// extra headers, cache store, freshness window. Built once at startup.
	env checkweb.Env

	logger *slog.Logger
}

// NewAPI creates the API and registers its routes.
// Panics if env or logger are nil, since the service cannot run without them.
func NewAPI(env checkweb.Env, logger *slog.Logger) *API {
	if env == nil {
		panic("webapi: checker env cannot be nil")
	}
	validation.AssertNotNil(logger, "logger")

	a := &API{
		Router: chi.NewRouter(),
		env:    env,
		logger: logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

func (a *API) setupMiddleware() {
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.RealIP)
	a.Router.Use(RequestLogger)
	a.Router.Use(middleware.Recoverer)
}

func (a *API) setupRoutes() {
	a.Router.Route("/api/v1", func(r chi.Router) {
		r.Post("/check", a.handleCheck)
	})
}

// ServeHTTP implements http.Handler by delegating to the router.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Router.ServeHTTP(w, r)
}
