package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnex-api/core/interfaces"
	"newsnex-api/infrastructure/cache/memory"
	logger "newsnex-api/infrastructure/logger/standard"
)

const metadataPage = `<!DOCTYPE html>
<html>
<head>
  <title>Fallback Title</title>
  <meta property="og:title" content="TechCorp Expands Into Europe">
  <meta property="og:site_name" content="Daily Ledger">
  <meta property="og:image" content="/images/lead.jpg">
  <meta name="description" content="Three new offices.">
  <link rel="canonical" href="https://ledger.example.com/techcorp">
  <script type="application/ld+json">
  {"@context":"https://schema.org","@graph":[
    {"@type":"NewsArticle","headline":"Ignored Headline","datePublished":"2024-03-05T09:30:00Z",
     "author":[{"@type":"Person","name":"Maria Lopez"}]}
  ]}
  </script>
</head>
<body><p>Body</p></body>
</html>`

func newMetadataService(cache interfaces.Cache) *MetadataService {
	return NewMetadataService(interfaces.Dependencies{
		Cache:  cache,
		Logger: logger.NewWithWriter(io.Discard, "debug"),
	})
}

func TestExtractMetadata(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, metadataPage)
	}))
	defer ts.Close()

	result, err := newMetadataService(nil).ExtractMetadata(context.Background(), ts.URL+"/article")
	require.NoError(t, err)

	assert.Equal(t, "TechCorp Expands Into Europe", result.Title)
	assert.Equal(t, "Daily Ledger", result.SiteName)
	assert.Equal(t, "Three new offices.", result.Description)
	assert.Equal(t, ts.URL+"/images/lead.jpg", result.Thumbnail)
	assert.Equal(t, "https://ledger.example.com/techcorp", result.CanonicalURL)
	assert.Equal(t, "Maria Lopez", result.Author)
	assert.Equal(t, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC), result.PublishedAt.UTC())
}

func TestExtractMetadata_Cached(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, metadataPage)
	}))
	defer ts.Close()

	svc := newMetadataService(memory.NewMemoryCache())
	ctx := context.Background()

	_, err := svc.ExtractMetadata(ctx, ts.URL)
	require.NoError(t, err)
	second, err := svc.ExtractMetadata(ctx, ts.URL)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, "Daily Ledger", second.SiteName)
}

func TestExtractMetadata_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	svc := newMetadataService(nil)
	_, err := svc.ExtractMetadata(context.Background(), ts.URL)
	assert.Error(t, err)

	_, err = svc.ExtractMetadata(context.Background(), "")
	assert.Error(t, err)
}
