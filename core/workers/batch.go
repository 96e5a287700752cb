// ABOUTME: Batch extraction runs the extraction workflow for every article in a feed
// ABOUTME: Collects per-article summaries or user messages in feed order

package workers

import (
	"context"
	"time"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
)

// LinkSource lists the article links of a feed
type LinkSource interface {
	ArticleLinks(ctx context.Context, feedURL string, limit int) ([]domain.FeedItem, error)
}

// BatchExtractor extracts profiles from the articles of a feed
type BatchExtractor struct {
	feeds  LinkSource
	pool   *ExtractionWorker
	logger interfaces.Logger
}

// NewBatchExtractor creates a batch extractor that runs jobs on pool
func NewBatchExtractor(feeds LinkSource, pool *ExtractionWorker, logger interfaces.Logger) *BatchExtractor {
	return &BatchExtractor{
		feeds:  feeds,
		pool:   pool,
		logger: logger,
	}
}

// BatchExtract extracts up to limit articles of the feed at feedURL. Article
// failures are reported per item; only feed failures return an error.
func (b *BatchExtractor) BatchExtract(ctx context.Context, feedURL string, limit int, opts domain.ExtractionOptions) (*domain.BatchResult, error) {
	start := time.Now()

	items, err := b.feeds.ArticleLinks(ctx, feedURL, limit)
	if err != nil {
		return nil, err
	}

	reqs := make([]domain.ExtractionRequest, len(items))
	for i, item := range items {
		reqs[i] = domain.ExtractionRequest{URL: item.Link, Options: opts}
	}

	outcomes := b.pool.ExtractAll(ctx, reqs)

	batch := &domain.BatchResult{
		FeedURL: feedURL,
		Items:   make([]domain.BatchItem, len(items)),
	}
	for i, item := range items {
		out := outcomes[i]
		entry := domain.BatchItem{URL: item.Link, Title: item.Title}

		if out.Err != nil {
			entry.Status = domain.BatchFailed
			entry.Reason = string(reasonOf(out.Err))
			entry.Message = coreerrors.UserMessage(out.Err)
			batch.Failed++
		} else {
			summary := out.Result.Summary()
			entry.Status = domain.BatchSucceeded
			entry.Summary = &summary
			if entry.Title == "" {
				entry.Title = summary.Title
			}
			batch.Succeeded++
		}
		batch.Items[i] = entry
	}

	b.logger.Info("Batch extraction completed", map[string]interface{}{
		"feed_url":    feedURL,
		"articles":    len(items),
		"succeeded":   batch.Succeeded,
		"failed":      batch.Failed,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return batch, nil
}

// reasonOf classifies pool errors as internal failures
func reasonOf(err error) coreerrors.Reason {
	if _, ok := err.(*WorkerError); ok {
		return coreerrors.ReasonInternal
	}
	return coreerrors.ReasonOf(err)
}
