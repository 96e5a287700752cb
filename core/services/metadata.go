// ABOUTME: Metadata extraction service for article title, site, author and publication time
// ABOUTME: Uses colly to scrape Open Graph tags, JSON-LD and standard meta tags

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"newsnex-api/core/interfaces"
	timeutil "newsnex-api/pkg/utils/time"
)

const (
	collyUserAgent   = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	metadataCacheTTL = 24 * time.Hour
	metadataTimeout  = 10 * time.Second
)

// MetadataService handles metadata extraction from URLs
type MetadataService struct {
	deps interfaces.Dependencies
}

// NewMetadataService creates a new metadata service
func NewMetadataService(deps interfaces.Dependencies) *MetadataService {
	return &MetadataService{
		deps: deps,
	}
}

// ExtractMetadata extracts metadata from a single URL
func (s *MetadataService) ExtractMetadata(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	if targetURL == "" || targetURL == "about:blank" {
		return nil, errors.New("metadata: empty url")
	}

	cacheKey := "metadata:" + targetURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var result interfaces.MetadataResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	result, err := s.extractFromURL(ctx, targetURL)
	if err != nil {
		return nil, err
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}

	return result, nil
}

// contextTransport ties colly's requests to the caller's context
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// extractFromURL performs the actual metadata extraction
func (s *MetadataService) extractFromURL(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	c := colly.NewCollector(
		colly.UserAgent(collyUserAgent),
		colly.MaxBodySize(5*1024*1024),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(metadataTimeout)
	c.WithTransport(&contextTransport{ctx: ctx, base: http.DefaultTransport})

	result := &interfaces.MetadataResult{}

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		content := strings.TrimSpace(e.Attr("content"))
		if content == "" {
			return
		}
		key := e.Attr("property")
		if key == "" {
			key = e.Attr("name")
		}
		if key == "" {
			key = e.Attr("itemprop")
		}

		switch strings.ToLower(key) {
		case "og:title", "twitter:title":
			setOnce(&result.Title, content)
		case "og:description", "description", "twitter:description":
			setOnce(&result.Description, content)
		case "og:site_name", "application-name":
			setOnce(&result.SiteName, content)
		case "og:image", "twitter:image":
			setOnce(&result.Thumbnail, e.Request.AbsoluteURL(content))
		case "og:url":
			setOnce(&result.CanonicalURL, content)
		case "author", "article:author", "byl":
			if !strings.HasPrefix(content, "http") {
				setOnce(&result.Author, strings.TrimPrefix(content, "By "))
			}
		case "article:published_time", "datepublished", "pubdate", "date", "parsely-pub-date":
			if result.PublishedAt.IsZero() {
				result.PublishedAt = timeutil.ParseFlexibleTime(content)
			}
		}
	})

	c.OnHTML("head", func(e *colly.HTMLElement) {
		if result.Title == "" {
			result.Title = strings.TrimSpace(e.DOM.Find("title").First().Text())
		}
		e.DOM.Find("link[rel='canonical']").Each(func(_ int, sel *goquery.Selection) {
			if href := sel.AttrOr("href", ""); href != "" {
				setOnce(&result.CanonicalURL, e.Request.AbsoluteURL(href))
			}
		})
	})

	c.OnHTML("time[datetime]", func(e *colly.HTMLElement) {
		if result.PublishedAt.IsZero() {
			result.PublishedAt = timeutil.ParseFlexibleTime(e.Attr("datetime"))
		}
	})

	c.OnHTML("script[type='application/ld+json']", func(e *colly.HTMLElement) {
		var data interface{}
		if err := json.Unmarshal([]byte(e.Text), &data); err != nil {
			return
		}
		applyLinkedData(result, data)
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("metadata: status %d: %w", r.StatusCode, err)
		s.deps.Logger.Debug("Error visiting URL for metadata", map[string]interface{}{
			"url":    targetURL,
			"error":  err.Error(),
			"status": r.StatusCode,
		})
	})

	if err := c.Visit(targetURL); err != nil {
		return nil, fmt.Errorf("metadata: visit %s: %w", targetURL, err)
	}
	if visitErr != nil {
		return nil, visitErr
	}
	return result, nil
}

// applyLinkedData fills missing fields from a JSON-LD document, walking
// arrays and @graph containers
func applyLinkedData(result *interfaces.MetadataResult, data interface{}) {
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			applyLinkedData(result, item)
		}
	case map[string]interface{}:
		if graph, ok := v["@graph"]; ok {
			applyLinkedData(result, graph)
		}
		if headline, ok := v["headline"].(string); ok {
			setOnce(&result.Title, headline)
		}
		if published, ok := v["datePublished"].(string); ok && result.PublishedAt.IsZero() {
			result.PublishedAt = timeutil.ParseFlexibleTime(published)
		}
		if result.Author == "" {
			result.Author = linkedDataName(v["author"])
		}
		if publisher := linkedDataName(v["publisher"]); publisher != "" {
			setOnce(&result.SiteName, publisher)
		}
		switch img := v["image"].(type) {
		case string:
			setOnce(&result.Thumbnail, img)
		case map[string]interface{}:
			if u, ok := img["url"].(string); ok {
				setOnce(&result.Thumbnail, u)
			}
		}
	}
}

// linkedDataName reads a name from a string, an object with "name", or a list
func linkedDataName(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		if name, ok := t["name"].(string); ok {
			return name
		}
	case []interface{}:
		var names []string
		for _, item := range t {
			if n := linkedDataName(item); n != "" {
				names = append(names, n)
			}
		}
		return strings.Join(names, ", ")
	}
	return ""
}

func setOnce(dst *string, value string) {
	if *dst == "" {
		*dst = strings.TrimSpace(value)
	}
}
