// Package core contains the business logic for the NewsNex API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Profile, ExtractionResult, Share, etc.)
// - article: Turns URLs and uploaded documents into readable article text
// - profiles: Finds the people quoted or described in article text
// - enrichment: Matches extracted profiles to LinkedIn pages
// - extraction: Orchestrates a single extraction and stores the result
// - export: Renders results as CSV, JSON, YAML or Markdown
// - outreach: Drafts outreach messages for extracted profiles
// - feed: Reads article links from RSS and Atom feeds
// - workers: Runs feed extractions on a bounded worker pool
// - share: Share links for stored extractions
// - errors: Custom error types carrying user-facing messages
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, storage)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No web framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "newsnex-api/core/article"
//	    "newsnex-api/core/domain"
//	    "newsnex-api/core/extraction"
//	    "newsnex-api/core/interfaces"
//	    "newsnex-api/core/profiles"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	svc := extraction.NewService(extraction.Config{
//	    Articles:  article.NewService(deps),
//	    Extractor: profiles.NewExtractor(),
//	    Store:     myStore, // implements interfaces.ExtractionStore
//	    Logger:    myLogger,
//	})
//
//	result, err := svc.Extract(ctx, domain.ExtractionRequest{
//	    URL: "https://example.com/news/article",
//	})
package core
