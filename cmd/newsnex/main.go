// Package main is the entry point for the newsnex CLI.
// It runs the same extraction workflow as the API server against a URL, a
// local document or the articles of a feed.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsnex-api/core/interfaces"
	"newsnex-api/infrastructure/logger/console"
	"newsnex-api/pkg/app"
	"newsnex-api/pkg/config"
	"newsnex-api/pkg/featureflags"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the newsnex CLI.
var rootCmd = &cobra.Command{
	Use:   "newsnex",
	Short: "Extract people, roles and quotes from news articles",
	Long: `newsnex reads a news article and lists the people it mentions with
their roles, companies, quotes and a confidence score.

Results are stored in the configured extraction store (STORE_DSN), so
"newsnex recent" lists earlier runs when the store is a file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file; environment variables override it")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
}

// newApp loads configuration and wires the services for one command run. The
// command's context carries the FEATURE_* flags from then on.
func newApp(cmd *cobra.Command) (*app.App, interfaces.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cmd.Flags().GetString("log-level")
	logger := console.NewWithWriter(os.Stderr, level)

	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(featureflags.WithManager(ctx, a.Flags))
	return a, logger, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
