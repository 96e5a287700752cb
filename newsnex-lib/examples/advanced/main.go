// ABOUTME: Advanced example showing custom configuration of the NewsNex library
// ABOUTME: Demonstrates persistent storage, SQLite caching, enrichment and filtering

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	newsnex "newsnex-api/newsnex-lib"
)

func main() {
	opts := []newsnex.Option{
		newsnex.WithCacheOption(newsnex.CacheOption{
			Type:     newsnex.CacheTypeSQLite,
			FilePath: "./newsnex_cache.db",
		}),
		newsnex.WithStoreDSN("./newsnex.db"),
		newsnex.WithTimeout(15 * time.Second),
	}
	if key, engine := os.Getenv("SEARCH_API_KEY"), os.Getenv("SEARCH_ENGINE_ID"); key != "" && engine != "" {
		opts = append(opts, newsnex.WithLinkedInSearch(key, engine))
	}

	client, err := newsnex.NewClient(opts...)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := client.ExtractURL(ctx,
		"https://www.theverge.com/2024/1/10/example-interview",
		newsnex.WithMinConfidence(60),
		newsnex.WithMaxProfiles(5),
		newsnex.WithEnrichment(),
	)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Printf("%s (%d profiles)\n", result.Title, len(result.Profiles))
	for _, p := range result.Profiles {
		fmt.Printf("- %s [%s] %s\n", p.Name, p.ConfidenceLevel, p.LinkedInURL)
	}

	fmt.Println("\n=== Recent extractions ===")
	recent, err := client.Recent(ctx, 5)
	if err != nil {
		log.Fatalf("Recent failed: %v", err)
	}
	for _, s := range recent {
		fmt.Printf("%s  %-40s %d profiles\n", s.CreatedAt.Format(time.RFC3339), s.Title, s.ProfileCount)
	}

	fmt.Println("\n=== Markdown export ===")
	if err := client.Export(ctx, result.ID, "markdown", os.Stdout); err != nil {
		log.Printf("Export failed: %v", err)
	}
}
