// ABOUTME: LinkedIn enrichment looks up public profile URLs through a custom search API
// ABOUTME: Attaches the best match and alternates to profiles that have none

package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
	"newsnex-api/pkg/config"
)

// DefaultSearchEndpoint is the Google Custom Search JSON API
const DefaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

const (
	searchCachePrefix = "linkedin:"
	searchCacheTTL    = 24 * time.Hour
	maxSearchBody     = 1 << 20
)

// LinkedInMatcher finds LinkedIn URLs for profiles. Without a search API key
// and engine ID it is disabled and Enrich returns the profiles unchanged.
type LinkedInMatcher struct {
	client   interfaces.HTTPClient
	cache    interfaces.Cache
	logger   interfaces.Logger
	endpoint string
	apiKey   string
	engineID string
	delay    time.Duration
}

// Option configures a LinkedInMatcher
type Option func(*LinkedInMatcher)

// WithEndpoint overrides the search API endpoint
func WithEndpoint(endpoint string) Option {
	return func(m *LinkedInMatcher) {
		m.endpoint = endpoint
	}
}

// NewLinkedInMatcher creates a matcher from the search configuration
func NewLinkedInMatcher(deps interfaces.Dependencies, cfg config.SearchConfig, opts ...Option) *LinkedInMatcher {
	m := &LinkedInMatcher{
		client:   deps.HTTPClient,
		cache:    deps.Cache,
		logger:   deps.Logger,
		endpoint: DefaultSearchEndpoint,
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		delay:    cfg.Delay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enabled reports whether search credentials are configured
func (m *LinkedInMatcher) Enabled() bool {
	return m.apiKey != "" && m.engineID != ""
}

// Enrich attaches LinkedIn URLs to profiles where possible. It stops on the
// first search error and returns the profiles enriched so far with the error.
func (m *LinkedInMatcher) Enrich(ctx context.Context, profiles []domain.Profile) ([]domain.Profile, error) {
	out := make([]domain.Profile, len(profiles))
	copy(out, profiles)

	if !m.Enabled() {
		m.logger.Debug("LinkedIn search not configured, skipping enrichment", nil)
		return out, nil
	}

	searched := 0
	for i, p := range out {
		if p.LinkedInURL != "" || strings.TrimSpace(p.Name) == "" {
			continue
		}

		if searched > 0 && m.delay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(m.delay):
			}
		}
		searched++

		urls, err := m.candidates(ctx, p)
		if err != nil {
			return out, fmt.Errorf("search error for %q: %w", p.Name, err)
		}
		if len(urls) == 0 {
			m.logger.Debug("No LinkedIn results", map[string]interface{}{"name": p.Name})
			continue
		}

		out[i].LinkedInURL = urls[0]
		if len(urls) > 1 {
			out[i].PossibleLinkedInURLs = urls[1:]
		}
		m.logger.Debug("LinkedIn profile matched", map[string]interface{}{
			"name":         p.Name,
			"url":          urls[0],
			"alternatives": len(urls) - 1,
		})
	}

	return out, nil
}

// Queries returns the search variants tried for a profile, most specific first
func Queries(p domain.Profile) []string {
	name := strings.TrimSpace(p.Name)
	company := strings.TrimSpace(p.Company)

	var queries []string
	if name != "" && company != "" {
		queries = append(queries, fmt.Sprintf("%q %q site:linkedin.com", name, company))
	}
	if name != "" {
		queries = append(queries, fmt.Sprintf("%q site:linkedin.com", name))
		queries = append(queries, fmt.Sprintf("%s site:linkedin.com", name))
	}
	return queries
}

func (m *LinkedInMatcher) candidates(ctx context.Context, p domain.Profile) ([]string, error) {
	for idx, query := range Queries(p) {
		urls, err := m.search(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(urls) > 0 {
			if idx > 0 {
				m.logger.Debug("LinkedIn match came from fallback query", map[string]interface{}{
					"name":    p.Name,
					"variant": idx + 1,
				})
			}
			return urls, nil
		}
	}
	return nil, nil
}

// searchResponse is the subset of the custom search response we read
type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

func (m *LinkedInMatcher) search(ctx context.Context, query string) ([]string, error) {
	if m.cache != nil {
		if data, err := m.cache.Get(ctx, searchCachePrefix+query); err == nil && data != nil {
			var urls []string
			if err := json.Unmarshal(data, &urls); err == nil {
				return urls, nil
			}
		}
	}

	u, err := url.Parse(m.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("key", m.apiKey)
	q.Set("cx", m.engineID)
	q.Set("q", query)
	q.Set("num", "10")
	u.RawQuery = q.Encode()

	resp, err := m.client.Get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		body, _ := interfaces.ReadBody(resp, 1024)
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(body)),
			API:        "linkedin-search",
		}
	}

	body, err := interfaces.ReadBody(resp, maxSearchBody)
	if err != nil {
		return nil, err
	}
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	urls := rankLinks(sr)
	if m.cache != nil {
		if data, err := json.Marshal(urls); err == nil {
			_ = m.cache.Set(ctx, searchCachePrefix+query, data, searchCacheTTL)
		}
	}
	return urls, nil
}

// rankLinks keeps linkedin.com links, personal /in/ profiles first
func rankLinks(sr searchResponse) []string {
	var personal, other []string
	for _, item := range sr.Items {
		link := strings.TrimSpace(item.Link)
		switch {
		case link == "":
		case strings.Contains(link, "linkedin.com/in/"):
			personal = append(personal, link)
		case strings.Contains(link, "linkedin.com/"):
			other = append(other, link)
		}
	}
	return append(personal, other...)
}
