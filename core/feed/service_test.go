package feed

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
	"newsnex-api/pkg/featureflags"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Business Desk</title>
    <link>https://news.example.com</link>
    <item>
      <title>TechCorp Expands</title>
      <link>https://news.example.com/techcorp</link>
      <description>&lt;p&gt;Sarah Johnson &amp;amp; the board&lt;/p&gt;</description>
      <pubDate>Tue, 05 Mar 2024 09:30:00 +0000</pubDate>
    </item>
    <item>
      <title>Duplicate</title>
      <link>https://news.example.com/techcorp</link>
    </item>
    <item>
      <title>Relative</title>
      <link>/markets/northwind</link>
    </item>
    <item>
      <title>No link</title>
    </item>
    <item>
      <title>GUID only</title>
      <guid>https://news.example.com/guid-only</guid>
    </item>
  </channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Desk</title>
  <entry>
    <title>Atom Story</title>
    <link href="https://atom.example.com/story"/>
    <author><name>Maria Lopez</name></author>
    <updated>2024-03-05T09:30:00Z</updated>
  </entry>
</feed>`

func newTestService(body string, status int, calls *int) *FeedService {
	return NewFeedService(interfaces.Dependencies{
		HTTPClient: &mockHTTPClient{
			getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				if calls != nil {
					*calls++
				}
				return &mockResponse{statusCode: status, body: body}, nil
			},
		},
		Logger: &mockLogger{},
	})
}

func TestParseFeed_Validation(t *testing.T) {
	service := newTestService(rssFeed, 200, nil)

	tests := []string{"", "   ", "not a url", "ftp://example.com/feed"}
	for _, in := range tests {
		_, err := service.ParseFeed(context.Background(), in)
		if !coreerrors.IsValidation(err) {
			t.Errorf("ParseFeed(%q): expected validation error, got %v", in, err)
		}
	}
}

func TestParseFeed_RSS(t *testing.T) {
	service := newTestService(rssFeed, 200, nil)

	feed, err := service.ParseFeed(context.Background(), "https://news.example.com/rss")
	if err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}
	if feed.Title != "Business Desk" {
		t.Errorf("unexpected title %q", feed.Title)
	}
	if feed.FeedType != "rss" {
		t.Errorf("unexpected feed type %q", feed.FeedType)
	}
	if len(feed.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(feed.Items))
	}

	first := feed.Items[0]
	if first.Description != "Sarah Johnson & the board" {
		t.Errorf("description not stripped: %q", first.Description)
	}
	if !first.Published.Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected published time %v", first.Published)
	}
	if feed.Items[2].Link != "https://news.example.com/markets/northwind" {
		t.Errorf("relative link not resolved: %q", feed.Items[2].Link)
	}
	if feed.Items[4].Link != "https://news.example.com/guid-only" {
		t.Errorf("GUID link not used: %q", feed.Items[4].Link)
	}
}

func TestParseFeed_Atom(t *testing.T) {
	service := newTestService(atomFeed, 200, nil)

	feed, err := service.ParseFeed(context.Background(), "https://atom.example.com/feed")
	if err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}
	if feed.FeedType != "atom" {
		t.Errorf("unexpected feed type %q", feed.FeedType)
	}
	if len(feed.Items) != 1 || feed.Items[0].Author != "Maria Lopez" {
		t.Errorf("unexpected items %+v", feed.Items)
	}
}

func TestParseFeed_Errors(t *testing.T) {
	tests := []struct {
		name    string
		client  *mockHTTPClient
		wantAPI bool
	}{
		{
			name: "http error",
			client: &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return nil, errors.New("network error")
			}},
		},
		{
			name: "non-200",
			client: &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return &mockResponse{statusCode: 404}, nil
			}},
			wantAPI: true,
		},
		{
			name: "empty body",
			client: &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return &mockResponse{statusCode: 200, body: "  "}, nil
			}},
		},
		{
			name: "invalid xml",
			client: &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return &mockResponse{statusCode: 200, body: "<html><body>not a feed"}, nil
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewFeedService(interfaces.Dependencies{HTTPClient: tt.client, Logger: &mockLogger{}})
			_, err := service.ParseFeed(context.Background(), "https://news.example.com/rss")
			if err == nil {
				t.Fatal("expected error")
			}
			if coreerrors.IsExternalAPI(err) != tt.wantAPI {
				t.Errorf("IsExternalAPI = %v for %v", !tt.wantAPI, err)
			}
		})
	}
}

func TestParseFeed_UsesCache(t *testing.T) {
	store := map[string][]byte{}
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			if data, ok := store[key]; ok {
				return data, nil
			}
			return nil, interfaces.ErrCacheMiss
		},
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			if !strings.HasPrefix(key, "feed:") {
				t.Errorf("unexpected cache key %q", key)
			}
			store[key] = value
			return nil
		},
	}

	calls := 0
	service := newTestService(rssFeed, 200, &calls)
	service.deps.Cache = cache

	for i := 0; i < 2; i++ {
		if _, err := service.ParseFeed(context.Background(), "https://news.example.com/rss"); err != nil {
			t.Fatalf("ParseFeed returned error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected one fetch with cache, got %d", calls)
	}

	// Cache disabled by flag
	ctx := featureflags.WithManager(context.Background(), featureflags.NewStaticManager(nil))
	if _, err := service.ParseFeed(ctx, "https://news.example.com/rss"); err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected cache bypass when flag is off, got %d fetches", calls)
	}
}

func TestArticleLinks(t *testing.T) {
	service := newTestService(rssFeed, 200, nil)

	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{
			"https://news.example.com/techcorp",
			"https://news.example.com/markets/northwind",
			"https://news.example.com/guid-only",
		}},
		{2, []string{
			"https://news.example.com/techcorp",
			"https://news.example.com/markets/northwind",
		}},
	}

	for _, tt := range tests {
		items, err := service.ArticleLinks(context.Background(), "https://news.example.com/rss", tt.limit)
		if err != nil {
			t.Fatalf("ArticleLinks returned error: %v", err)
		}
		got := make([]string, len(items))
		for i, item := range items {
			got[i] = item.Link
		}
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("limit %d: got %v, want %v", tt.limit, got, tt.want)
		}
	}
}

func TestArticleLinks_PropagatesErrors(t *testing.T) {
	service := newTestService(rssFeed, 200, nil)

	_, err := service.ArticleLinks(context.Background(), "", 5)
	if !coreerrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestResolveLink(t *testing.T) {
	base, _ := url.Parse("https://news.example.com/feeds/rss")

	tests := map[string]string{
		"":                             "",
		"https://other.example.com/a":  "https://other.example.com/a",
		"/markets/a":                   "https://news.example.com/markets/a",
		"story":                        "https://news.example.com/feeds/story",
		"javascript:alert(1)":          "",
		"mailto:desk@news.example.com": "",
	}
	for in, want := range tests {
		if got := resolveLink(in, base); got != want {
			t.Errorf("resolveLink(%q) = %q, want %q", in, got, want)
		}
	}
}
