// ABOUTME: Feed service handles RSS/Atom feed parsing and caching
// ABOUTME: Lists the article links of a feed for batch profile extraction

package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
	"newsnex-api/pkg/featureflags"
	htmlutil "newsnex-api/pkg/utils/html"
	timeutil "newsnex-api/pkg/utils/time"
)

const (
	// DefaultLinkLimit is used when ArticleLinks is called without a limit
	DefaultLinkLimit = 10

	// MaxLinkLimit caps the number of links returned by ArticleLinks
	MaxLinkLimit = 50

	// MaxFeedSize limits the feed document read from the network
	MaxFeedSize = 10 << 20

	feedCacheTTL      = 15 * time.Minute
	maxDescriptionLen = 280
)

// FeedService handles feed parsing
type FeedService struct {
	deps interfaces.Dependencies
}

// NewFeedService creates a new feed service instance
func NewFeedService(deps interfaces.Dependencies) *FeedService {
	return &FeedService{
		deps: deps,
	}
}

// ParseFeed fetches and parses the feed at feedURL
func (s *FeedService) ParseFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, &coreerrors.ValidationError{Field: "feedUrl", Message: "Please enter a feed URL"}
	}
	if !domain.IsValidURL(feedURL) {
		return nil, &coreerrors.ValidationError{Field: "feedUrl", Message: "Please enter a valid feed URL"}
	}

	useCache := featureflags.IsEnabled(ctx, featureflags.CacheEnabled)
	if useCache {
		if cached := s.getCachedFeed(ctx, feedURL); cached != nil {
			return cached, nil
		}
	}

	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		resp.Body().Close()
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "feed returned non-200 status code",
			API:        "feed",
		}
	}

	body, err := interfaces.ReadBody(resp, MaxFeedSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	feed, err := parseFeedContent(body, feedURL)
	if err != nil {
		return nil, err
	}

	if useCache {
		s.cacheFeed(ctx, feedURL, feed)
	}

	return feed, nil
}

// ArticleLinks returns up to limit distinct article links from a feed, in
// feed order
func (s *FeedService) ArticleLinks(ctx context.Context, feedURL string, limit int) ([]domain.FeedItem, error) {
	if limit <= 0 {
		limit = DefaultLinkLimit
	}
	if limit > MaxLinkLimit {
		limit = MaxLinkLimit
	}

	feed, err := s.ParseFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(feed.Items))
	items := make([]domain.FeedItem, 0, limit)
	for _, item := range feed.Items {
		if len(items) == limit {
			break
		}
		if item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		items = append(items, item)
	}

	s.deps.Logger.Debug("Feed article links", map[string]interface{}{
		"feed_url": feedURL,
		"items":    len(feed.Items),
		"links":    len(items),
	})

	return items, nil
}

// parseFeedContent parses feed content from bytes
func parseFeedContent(content []byte, feedURL string) (*domain.Feed, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errors.New("empty feed content")
	}

	parser := gofeed.NewParser()
	parsedFeed, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	feed := &domain.Feed{
		Title:    parsedFeed.Title,
		URL:      feedURL,
		Link:     parsedFeed.Link,
		FeedType: parsedFeed.FeedType,
		Items:    make([]domain.FeedItem, 0, len(parsedFeed.Items)),
	}

	base, _ := url.Parse(feedURL)
	for _, item := range parsedFeed.Items {
		feed.Items = append(feed.Items, convertItemToDomain(item, base))
	}

	return feed, nil
}

// convertItemToDomain converts a gofeed item to domain item
func convertItemToDomain(item *gofeed.Item, base *url.URL) domain.FeedItem {
	feedItem := domain.FeedItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        resolveLink(strings.TrimSpace(item.Link), base),
		Description: htmlutil.Truncate(htmlutil.StripHTML(item.Description), maxDescriptionLen),
	}

	// Some feeds only carry the article URL in the GUID
	if feedItem.Link == "" && domain.IsValidURL(item.GUID) {
		feedItem.Link = item.GUID
	}

	if item.PublishedParsed != nil {
		feedItem.Published = *item.PublishedParsed
	} else if item.Published != "" {
		feedItem.Published = timeutil.ParseFlexibleTime(item.Published)
	}

	if item.Author != nil && item.Author.Name != "" {
		feedItem.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		feedItem.Author = item.Authors[0].Name
	}

	return feedItem
}

// resolveLink makes relative item links absolute against the feed URL
func resolveLink(link string, base *url.URL) string {
	if link == "" || base == nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref).String()
	if !domain.IsValidURL(resolved) {
		return ""
	}
	return resolved
}

// getCachedFeed retrieves a feed from cache
func (s *FeedService) getCachedFeed(ctx context.Context, feedURL string) *domain.Feed {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := s.deps.Cache.Get(ctx, "feed:"+feedURL)
	if err != nil || data == nil {
		return nil
	}

	var feed domain.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil
	}
	return &feed
}

// cacheFeed stores a feed in cache, ignoring cache errors
func (s *FeedService) cacheFeed(ctx context.Context, feedURL string, feed *domain.Feed) {
	if s.deps.Cache == nil {
		return
	}

	data, err := json.Marshal(feed)
	if err != nil {
		return
	}

	if err := s.deps.Cache.Set(ctx, "feed:"+feedURL, data, feedCacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache feed", map[string]interface{}{
			"feed_url": feedURL,
			"error":    err.Error(),
		})
	}
}
