// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS, logging, feature flags and rate limiting

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"newsnex-api/api/middleware"
	"newsnex-api/core/interfaces"
	"newsnex-api/pkg/featureflags"
)

const (
	// Title is the OpenAPI title of the service
	Title = "NewsNex API"

	// Version is the OpenAPI version of the service
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger  interfaces.Logger
	Flags   featureflags.Manager
	Limiter *middleware.RateLimiter
}

func corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"*"}, // Allow all origins in development
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Extracts people, roles, companies and quotes from news articles"
	return config
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(cors.Handler(corsOptions()))

	// The OpenAPI document is available at /openapi.json and the docs UI at /docs
	api := humachi.New(router, humaConfig())

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run first so preflight requests are never rate limited
	router.Use(cors.Handler(corsOptions()))

	flags := cfg.Flags
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults())
	}
	router.Use(featureflags.Middleware(flags))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Limiter != nil {
		router.Use(whenEnabled(featureflags.RateLimitEnabled, middleware.RateLimitMiddleware(cfg.Limiter)))
	}

	api := humachi.New(router, humaConfig())

	return api, router
}

// whenEnabled applies mw only to requests whose feature flag is on
func whenEnabled(flag featureflags.FeatureFlag, mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if featureflags.IsEnabled(r.Context(), flag) {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
