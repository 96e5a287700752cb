// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, storage, HTTP communication, page rendering and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: File-backed cache for single-node deployments
// - storage/memory: In-process extraction and share stores
// - storage/gormstore: SQLite extraction and share stores using gorm
// - http/standard: Standard library HTTP client with retry logic
// - render/browser: Headless Chrome page renderer using chromedp
// - logger/standard: logrus structured logger with optional file rotation
// - logger/zaplogger: zap structured logger
// - logger/console: charmbracelet console logger for the CLI
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	    DB:      0,
//	})
//
// # Storage
//
//	store, err := gormstore.Open("file:newsnex.db")
//	defer store.Close()
//	extractions := store.Extractions()
//
// # HTTP Client
//
// The HTTP client includes automatic retry logic for transient failures:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := standard.NewStandardLogger()
//	logger.Info("Extraction completed", map[string]interface{}{
//	    "extraction_id": id,
//	    "profiles":      3,
//	})
package infrastructure
