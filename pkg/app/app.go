// ABOUTME: Application container that builds every service from configuration
// ABOUTME: Shared by the API server and the command line tool

package app

import (
	"errors"
	"fmt"

	"newsnex-api/api/middleware"
	"newsnex-api/core/article"
	"newsnex-api/core/enrichment"
	"newsnex-api/core/extraction"
	"newsnex-api/core/feed"
	"newsnex-api/core/interfaces"
	"newsnex-api/core/outreach"
	"newsnex-api/core/profiles"
	"newsnex-api/core/services"
	"newsnex-api/core/share"
	"newsnex-api/core/workers"
	"newsnex-api/infrastructure/cache/memory"
	"newsnex-api/infrastructure/cache/redis"
	"newsnex-api/infrastructure/cache/sqlite"
	httpclient "newsnex-api/infrastructure/http/standard"
	"newsnex-api/infrastructure/render/browser"
	"newsnex-api/infrastructure/storage/gormstore"
	memstore "newsnex-api/infrastructure/storage/memory"
	"newsnex-api/pkg/config"
	"newsnex-api/pkg/featureflags"
)

// MemoryStoreDSN keeps extractions in process maps instead of a database
const MemoryStoreDSN = "memory"

// FlagPrefix is the environment prefix of feature flags, e.g. FEATURE_SHARE_ENABLED
const FlagPrefix = "FEATURE_"

// App holds the wired services
type App struct {
	Config *config.Config
	Logger interfaces.Logger
	Flags  featureflags.Manager

	Articles    *article.Service
	Metadata    *services.MetadataService
	Feeds       *feed.FeedService
	Extractions *extraction.Service
	Shares      *share.ShareService
	Outreach    *outreach.Generator
	Pool        *workers.ExtractionWorker
	Batch       *workers.BatchExtractor
	Limiter     *middleware.RateLimiter

	closers []func() error
}

// New builds the application from cfg. Close releases everything it opened.
func New(cfg *config.Config, logger interfaces.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		Flags:  featureflags.NewEnvManager(FlagPrefix),
	}

	cache, err := a.newCache()
	if err != nil {
		return nil, err
	}

	client := httpclient.NewStandardHTTPClient(cfg.Fetch.Timeout)
	client.WithTransport(&middleware.LoggingRoundTripper{
		Transport: client.Transport(),
		Logger:    logger,
	})

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: client,
		Logger:     logger,
	}

	if cfg.Fetch.Mode == "browser" {
		opts := browser.DefaultOptions()
		opts.Timeout = cfg.Fetch.Timeout
		renderer := browser.New(opts, logger)
		a.closers = append(a.closers, renderer.Close)
		deps.Renderer = renderer
		logger.Info("Using headless browser for article fetches", nil)
	}

	extractions, shares, err := a.newStores()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Articles = article.NewService(deps)
	a.Metadata = services.NewMetadataService(deps)
	a.Feeds = feed.NewFeedService(deps)
	a.Outreach = outreach.NewGenerator()

	extractionCfg := extraction.Config{
		Articles:  a.Articles,
		Extractor: profiles.NewExtractor(),
		Metadata:  a.Metadata,
		Store:     extractions,
		Logger:    logger,
	}
	matcher := enrichment.NewLinkedInMatcher(deps, cfg.Search)
	if matcher.Enabled() {
		extractionCfg.Enricher = matcher
	} else {
		logger.Info("LinkedIn search credentials not set, enrichment disabled", nil)
	}
	a.Extractions = extraction.NewService(extractionCfg)

	a.Shares = share.NewShareService(shares, a.Extractions, cfg.Share.TTL)

	a.Pool = workers.NewExtractionWorker(a.Extractions, workers.WorkerConfig{MaxWorkers: cfg.Server.Workers})
	a.Batch = workers.NewBatchExtractor(a.Feeds, a.Pool, logger)

	if cfg.RateLimit.RequestsPerSecond > 0 {
		a.Limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	return a, nil
}

func (a *App) newCache() (interfaces.Cache, error) {
	cfg := a.Config.Cache
	switch cfg.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			a.Logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), nil
		}
		a.closers = append(a.closers, redisCache.Close)
		a.Logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, nil
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		a.closers = append(a.closers, sqliteCache.Close)
		a.Logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return sqliteCache, nil
	default:
		a.Logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), nil
	}
}

func (a *App) newStores() (interfaces.ExtractionStore, interfaces.ShareStorage, error) {
	dsn := a.Config.Store.DSN
	if dsn == MemoryStoreDSN {
		return memstore.NewExtractionStore(), memstore.NewShareStore(), nil
	}

	store, err := gormstore.Open(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening extraction store: %w", err)
	}
	a.closers = append(a.closers, store.Close)
	return store.Extractions(), store.Shares(), nil
}

// Close stops the worker pool and releases caches, stores and the browser
func (a *App) Close() error {
	var errs []error
	if a.Pool != nil {
		if err := a.Pool.Stop(); err != nil {
			errs = append(errs, err)
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
