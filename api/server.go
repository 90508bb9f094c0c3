// ABOUTME: Huma API server configuration and setup
// ABOUTME: One chi router carries the JSON API, its OpenAPI docs and the server-rendered pages

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mishurahman616/portfolio/api/middleware"
	"github.com/mishurahman616/portfolio/core/interfaces"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger         interfaces.Logger
	AllowedOrigins []string

	// Docs serves /openapi.json and /docs when set
	Docs bool

	// Limiter, when set, limits POSTs to LimitedPaths per client IP
	Limiter      *middleware.RateLimiter
	LimitedPaths []string
}

// NewAPI creates the router and the Huma API mounted on it
func NewAPI(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Limiter != nil && len(cfg.LimitedPaths) > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.Limiter, cfg.LimitedPaths...))
	}

	config := huma.DefaultConfig("Portfolio API", "1.0.0")
	config.Info.Description = "Quest log, coding stats, contact form and navigation for the portfolio site"
	if !cfg.Docs {
		config.OpenAPIPath = ""
		config.DocsPath = ""
		config.SchemasPath = ""
	}

	api := humachi.New(router, config)

	return api, router
}
