// ABOUTME: Configuration options for the NewsNex library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package newsnex

import (
	"errors"
	"time"

	"newsnex-api/core/interfaces"
	"newsnex-api/infrastructure/storage/gormstore"
	"newsnex-api/pkg/config"
	"newsnex-api/pkg/featureflags"
)

// Config holds the configuration for the client
type Config struct {
	// Cache stores fetched feeds, metadata and search results
	Cache interfaces.Cache

	// HTTPClient fetches articles and metadata
	HTTPClient interfaces.HTTPClient

	// Renderer fetches pages through a headless browser when set
	Renderer interfaces.PageRenderer

	// Logger receives structured log entries
	Logger interfaces.Logger

	// Store keeps extraction results for Get, Recent and Export
	Store interfaces.ExtractionStore

	// Search holds the credentials used for LinkedIn enrichment
	Search config.SearchConfig

	// Flags gates metadata fallback and enrichment for every extraction
	Flags featureflags.Manager

	closers []func() error
}

func (c *Config) close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithTimeout replaces the HTTP client with one using the given timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return NewError(ErrorTypeConfiguration, "timeout must be positive")
		}
		c.HTTPClient = DefaultHTTPClientWithTimeout(timeout)
		return nil
	}
}

// WithRenderer fetches articles through a headless browser
func WithRenderer(renderer interfaces.PageRenderer) Option {
	return func(c *Config) error {
		c.Renderer = renderer
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// WithExtractionStore sets a custom extraction store
func WithExtractionStore(store interfaces.ExtractionStore) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

// WithFeatureFlags replaces the FEATURE_* environment flags
func WithFeatureFlags(flags featureflags.Manager) Option {
	return func(c *Config) error {
		c.Flags = flags
		return nil
	}
}

// WithStoreDSN keeps extractions in the SQLite database at dsn
func WithStoreDSN(dsn string) Option {
	return func(c *Config) error {
		store, err := gormstore.Open(dsn)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "cannot open extraction store").
				WithCause(err).
				WithContext("dsn", dsn)
		}
		c.Store = store.Extractions()
		c.closers = append(c.closers, store.Close)
		return nil
	}
}

// WithLinkedInSearch enables LinkedIn enrichment through a custom search engine
func WithLinkedInSearch(apiKey, engineID string) Option {
	return func(c *Config) error {
		c.Search.APIKey = apiKey
		c.Search.EngineID = engineID
		if c.Search.Delay == 0 {
			c.Search.Delay = time.Duration(config.DefaultSearchDelayMS) * time.Millisecond
		}
		return nil
	}
}

// ExtractOptions tunes a single extraction
type ExtractOptions struct {
	MinConfidence int
	MaxProfiles   int
	Enrich        bool
}

// ExtractOption is a functional option for one extraction
type ExtractOption func(*ExtractOptions)

// WithMinConfidence drops profiles scoring below min
func WithMinConfidence(min int) ExtractOption {
	return func(o *ExtractOptions) {
		o.MinConfidence = min
	}
}

// WithMaxProfiles limits the number of profiles returned
func WithMaxProfiles(n int) ExtractOption {
	return func(o *ExtractOptions) {
		o.MaxProfiles = n
	}
}

// WithEnrichment looks up LinkedIn URLs for the extracted profiles
func WithEnrichment() ExtractOption {
	return func(o *ExtractOptions) {
		o.Enrich = true
	}
}

func extractOptions(opts []ExtractOption) ExtractOptions {
	var o ExtractOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
