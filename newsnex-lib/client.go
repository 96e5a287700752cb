// ABOUTME: Main client for the NewsNex library providing in-process profile extraction
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package newsnex

import (
	"context"
	"io"
	"sync"

	"newsnex-api/core/article"
	"newsnex-api/core/domain"
	"newsnex-api/core/enrichment"
	"newsnex-api/core/export"
	"newsnex-api/core/extraction"
	"newsnex-api/core/interfaces"
	"newsnex-api/core/profiles"
	"newsnex-api/core/services"
	"newsnex-api/pkg/featureflags"
)

// Client is the main entry point for the NewsNex library
type Client struct {
	extractions *extraction.Service

	config Config

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new NewsNex client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			config.close()
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		config.close()
		return nil, err
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Cache:      config.Cache,
		Renderer:   config.Renderer,
		Logger:     config.Logger,
	}

	extractionCfg := extraction.Config{
		Articles:  article.NewService(deps),
		Extractor: profiles.NewExtractor(),
		Metadata:  services.NewMetadataService(deps),
		Store:     config.Store,
		Logger:    config.Logger,
	}
	if config.Search.Enabled() {
		extractionCfg.Enricher = enrichment.NewLinkedInMatcher(deps, config.Search)
	}

	return &Client{
		extractions: extraction.NewService(extractionCfg),
		config:      config,
	}, nil
}

// Close releases caches and stores opened by the client's options
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.config.close()
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Extract runs an extraction for a URL or document request
func (c *Client) Extract(ctx context.Context, req Request) (*Extraction, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	ctx = featureflags.WithManager(ctx, c.config.Flags)
	result, err := c.extractions.Extract(ctx, req.toDomain())
	if err != nil {
		return nil, wrapError(err)
	}
	return extractionToPublic(result), nil
}

// ExtractURL extracts profiles from the article at url
func (c *Client) ExtractURL(ctx context.Context, url string, opts ...ExtractOption) (*Extraction, error) {
	return c.Extract(ctx, Request{URL: url, Options: extractOptions(opts)})
}

// ExtractDocument extracts profiles from an HTML, Markdown or plain text document
func (c *Client) ExtractDocument(ctx context.Context, data []byte, contentType, filename string, opts ...ExtractOption) (*Extraction, error) {
	return c.Extract(ctx, Request{
		Document:    data,
		ContentType: contentType,
		Filename:    filename,
		Options:     extractOptions(opts),
	})
}

// Get returns a stored extraction
func (c *Client) Get(ctx context.Context, id string) (*Extraction, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	result, err := c.extractions.Get(ctx, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return extractionToPublic(result), nil
}

// Recent lists the newest extractions, newest first
func (c *Client) Recent(ctx context.Context, limit int) ([]Summary, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	summaries, err := c.extractions.Recent(ctx, limit)
	if err != nil {
		return nil, wrapError(err)
	}

	out := make([]Summary, len(summaries))
	for i, s := range summaries {
		out[i] = Summary{
			ID:           s.ID,
			Title:        s.Title,
			ProfileCount: s.ProfileCount,
			CreatedAt:    s.CreatedAt,
		}
	}
	return out, nil
}

// Export writes a stored extraction to w as csv, json, yaml or markdown
func (c *Client) Export(ctx context.Context, id, format string, w io.Writer) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return wrapError(err)
	}

	result, err := c.extractions.Get(ctx, id)
	if err != nil {
		return wrapError(err)
	}

	if err := export.Write(w, result, f); err != nil {
		return NewError(ErrorTypeInternal, "export failed").WithCause(err)
	}
	return nil
}

func validateConfig(c *Config) error {
	if c.HTTPClient == nil {
		return NewError(ErrorTypeConfiguration, "HTTP client is required")
	}
	if c.Cache == nil {
		return ErrNoCache
	}
	if c.Store == nil {
		return ErrNoStorage
	}
	if c.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}
	if c.Flags == nil {
		return NewError(ErrorTypeConfiguration, "feature flags are required")
	}
	return nil
}

func (r Request) toDomain() domain.ExtractionRequest {
	return domain.ExtractionRequest{
		URL:         r.URL,
		Document:    r.Document,
		ContentType: r.ContentType,
		Filename:    r.Filename,
		Options: domain.ExtractionOptions{
			MinConfidence: r.Options.MinConfidence,
			MaxProfiles:   r.Options.MaxProfiles,
			Enrich:        r.Options.Enrich,
		},
	}
}
