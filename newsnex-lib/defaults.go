// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default service implementations

package newsnex

import (
	"io"
	"time"

	"newsnex-api/core/interfaces"
	"newsnex-api/infrastructure/cache/memory"
	"newsnex-api/infrastructure/cache/sqlite"
	httpInfra "newsnex-api/infrastructure/http/standard"
	loggerInfra "newsnex-api/infrastructure/logger/standard"
	memstore "newsnex-api/infrastructure/storage/memory"
	"newsnex-api/pkg/featureflags"
)

// FlagPrefix matches the environment prefix the server and CLI read flags from
const FlagPrefix = "FEATURE_"

// DefaultTimeout is the HTTP timeout used when none is configured
const DefaultTimeout = 30 * time.Second

// DefaultHTTPClient creates a default HTTP client with sensible timeouts
func DefaultHTTPClient() interfaces.HTTPClient {
	return DefaultHTTPClientWithTimeout(DefaultTimeout)
}

// DefaultHTTPClientWithTimeout creates an HTTP client with the given timeout
func DefaultHTTPClientWithTimeout(timeout time.Duration) interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(timeout).WithUserAgent("NewsNex-Library/1.0")
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache creates a SQLite cache with the given file path
func DefaultSQLiteCache(filePath string) (*sqlite.Client, error) {
	return sqlite.NewSQLiteCache(filePath)
}

// DefaultLogger creates a default logger that writes to stdout
func DefaultLogger() interfaces.Logger {
	return loggerInfra.NewStandardLogger()
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return loggerInfra.NewWithWriter(io.Discard, "error")
}

// CacheOption selects a built-in cache
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
}

// CacheType represents the type of cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// WithCacheOption creates a cache based on the provided options
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			if opt.FilePath == "" {
				opt.FilePath = "newsnex_cache.db"
			}
			cache, err := DefaultSQLiteCache(opt.FilePath)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "cannot open sqlite cache").WithCause(err)
			}
			c.Cache = cache
			c.closers = append(c.closers, cache.Close)
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(opt.Type))
		}
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Cache:      DefaultMemoryCache(),
		HTTPClient: DefaultHTTPClient(),
		Logger:     DefaultLogger(),
		Store:      memstore.NewExtractionStore(),
		Flags:      featureflags.NewEnvManager(FlagPrefix),
	}
}
