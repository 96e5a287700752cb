// ABOUTME: Main entry point for the NewsNex API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsnex-api/api"
	"newsnex-api/api/handlers"
	"newsnex-api/pkg/app"
	"newsnex-api/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const limiterSweepInterval = time.Minute

func main() {
	configFile := flag.String("config", "", "optional YAML config file; environment variables override it")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, syncLogger, err := app.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer syncLogger()

	logger.Info("Starting NewsNex API", map[string]interface{}{
		"version":    version,
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"fetch_mode": cfg.Fetch.Mode,
		"workers":    cfg.Server.Workers,
	})

	application, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialise services: %v", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Failed to release resources", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	if err := application.Pool.Start(); err != nil {
		log.Fatalf("Failed to start extraction workers: %v", err)
	}

	// Create API with middleware
	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:  logger,
		Flags:   application.Flags,
		Limiter: application.Limiter,
	})

	// Create and register handlers
	handlers.NewHealthHandler(version).RegisterRoutes(humaAPI)
	handlers.NewExtractionHandler(application.Extractions, application.Articles, application.Outreach).RegisterRoutes(humaAPI)
	handlers.NewShareHandler(application.Shares).RegisterRoutes(humaAPI)
	handlers.NewFeedHandler(application.Batch).RegisterRoutes(humaAPI)
	handlers.NewMetadataHandler(application.Metadata).RegisterRoutes(humaAPI)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if application.Limiter != nil {
		go sweepLimiter(ctx, application)
	}

	// Create HTTP server. A URL extraction may need two fetches.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.Fetch.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// sweepLimiter drops idle rate limit visitors until ctx is done
func sweepLimiter(ctx context.Context, application *app.App) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			application.Limiter.Sweep()
		}
	}
}

func init() {
	// Print banner
	fmt.Fprintln(os.Stderr, `
    _   __                   _   __
   / | / /__ _      _______/ | / /__  _  __
  /  |/ / _ \ | /| / / ___/  |/ / _ \| |/_/
 / /|  /  __/ |/ |/ (__  ) /|  /  __/>  <
/_/ |_/\___/|__/|__/____/_/ |_/\___/_/|_|
	`)
}
