// Package api provides the HTTP API server and handlers for BookCircle.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookcircle/bookcircle-server/internal/config"
	"github.com/bookcircle/bookcircle-server/internal/ratelimit"
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	index    *search.Index
	services *Services
	router   *chi.Mux
	api      huma.API
	limiter  *ratelimit.KeyedRateLimiter
	logger   *slog.Logger
}

// Deps are the collaborators NewServer wires into routes.
type Deps struct {
	Config   *config.Config
	Store    store.Store
	Index    *search.Index
	Services *Services
	Tokens   TokenVerifier
	Logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(deps Deps) *Server {
	cfg := deps.Config
	s := &Server{
		store:    deps.Store,
		index:    deps.Index,
		services: deps.Services,
		router:   chi.NewRouter(),
		limiter:  ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
		logger:   deps.Logger,
	}

	// chi requires middleware before any route is mounted.
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(rateLimitMiddleware(s.limiter, s.logger))
	s.router.Use(authMiddleware(deps.Tokens))

	s.api = humachi.New(s.router, newHumaConfig(cfg.Server.Name))
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerReviewRoutes()
	s.registerRecommendationRoutes()
	s.registerProfileRoutes()
	s.registerShelfRoutes()
	s.registerSearchRoutes()

	return s
}

func newHumaConfig(name string) huma.Config {
	if name == "" {
		name = "BookCircle"
	}
	humaConfig := huma.DefaultConfig(name+" API", apiVersion)
	humaConfig.Info.Description = "Personalized book recommendations scored from peer reviews."
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	return humaConfig
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.limiter.Stop()
}

var bearerAuth = []map[string][]string{{"bearer": {}}}
