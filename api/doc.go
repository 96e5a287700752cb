// Package api provides the HTTP API layer for the NewsNex service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.1 documentation:
// - OpenAPI document available at /openapi.json
// - Interactive docs at /docs
//
// 2. Request/Response Validation
//
// Huma validates bodies and parameters based on struct tags:
//
//	type FeedExtractionRequest struct {
//	    FeedURL string `json:"feedUrl,omitempty"`
//	    Limit   int    `json:"limit,omitempty" minimum:"0" maximum:"50" default:"10"`
//	}
//
// URLs are validated by the extraction service instead, so users see
// "Please enter a URL" rather than a schema error.
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Feature flags attached to each request context
// - Rate limiting per IP address (token bucket, behind a feature flag)
// - CORS handling
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:  logger,
//	    Flags:   featureflags.NewEnvManager(app.FlagPrefix),
//	    Limiter: middleware.NewRateLimiter(5, 10),
//	})
//
//	handlers.NewExtractionHandler(extractions, articles, outreach.NewGenerator()).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 9457:
//
//	{
//	    "status": 502,
//	    "title": "Bad Gateway",
//	    "detail": "Failed to extract profiles. Please try again.",
//	    "errors": [{"location": "reason", "value": "fetch_failed"}]
//	}
//
// Extraction failures map their reason to a status code; the detail is
// always a message that can be shown to the user.
package api
