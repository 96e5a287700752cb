package enrichment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
	"newsnex-api/infrastructure/cache/memory"
	httpclient "newsnex-api/infrastructure/http/standard"
	logger "newsnex-api/infrastructure/logger/standard"
	"newsnex-api/pkg/config"
)

type searchServer struct {
	mu      sync.Mutex
	queries []string
	results map[string][]string
	status  int
}

func (s *searchServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query().Get("q")
	s.queries = append(s.queries, q)
	if s.status != 0 {
		w.WriteHeader(s.status)
		io.WriteString(w, "quota exceeded")
		return
	}

	var resp searchResponse
	for _, link := range s.results[q] {
		resp.Items = append(resp.Items, struct {
			Link string `json:"link"`
		}{Link: link})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func newMatcher(t *testing.T, srv *searchServer, cfg config.SearchConfig, cache interfaces.Cache) *LinkedInMatcher {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	deps := interfaces.Dependencies{
		HTTPClient: httpclient.NewStandardHTTPClient(5 * time.Second),
		Cache:      cache,
		Logger:     logger.NewWithWriter(io.Discard, "debug"),
	}
	return NewLinkedInMatcher(deps, cfg, WithEndpoint(ts.URL))
}

var enabledConfig = config.SearchConfig{APIKey: "key", EngineID: "engine"}

func TestEnrich_Disabled(t *testing.T) {
	srv := &searchServer{}
	m := newMatcher(t, srv, config.SearchConfig{}, nil)
	in := []domain.Profile{{ID: 1, Name: "Jane Doe"}}

	out, err := m.Enrich(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, m.Enabled())
	assert.Equal(t, in, out)
	assert.Empty(t, srv.queries)
}

func TestEnrich_PrefersPersonalProfiles(t *testing.T) {
	srv := &searchServer{results: map[string][]string{
		`"Jane Doe" "Acme" site:linkedin.com`: {
			"https://www.linkedin.com/company/acme",
			"https://example.com/jane",
			"https://www.linkedin.com/in/janedoe",
			"https://www.linkedin.com/in/jane-doe-2",
		},
	}}
	m := newMatcher(t, srv, enabledConfig, nil)

	out, err := m.Enrich(context.Background(), []domain.Profile{{ID: 1, Name: "Jane Doe", Company: "Acme"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", out[0].LinkedInURL)
	assert.Equal(t, []string{
		"https://www.linkedin.com/in/jane-doe-2",
		"https://www.linkedin.com/company/acme",
	}, out[0].PossibleLinkedInURLs)
}

func TestEnrich_FallsBackToNameQueries(t *testing.T) {
	srv := &searchServer{results: map[string][]string{
		`Bob Stone site:linkedin.com`: {"https://www.linkedin.com/in/bobstone"},
	}}
	m := newMatcher(t, srv, enabledConfig, nil)

	out, err := m.Enrich(context.Background(), []domain.Profile{
		{ID: 1, Name: "Bob Stone", Company: "Widgets"},
		{ID: 2, Name: "Known Person", LinkedInURL: "https://www.linkedin.com/in/known"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.linkedin.com/in/bobstone", out[0].LinkedInURL)
	assert.Equal(t, "https://www.linkedin.com/in/known", out[1].LinkedInURL)
	assert.Len(t, srv.queries, 3, "profiles that already have a URL are skipped")
}

func TestEnrich_StopsOnSearchError(t *testing.T) {
	srv := &searchServer{status: http.StatusForbidden}
	m := newMatcher(t, srv, enabledConfig, nil)
	in := []domain.Profile{{ID: 1, Name: "Jane Doe"}, {ID: 2, Name: "Bob Stone"}}

	out, err := m.Enrich(context.Background(), in)
	require.Error(t, err)
	assert.True(t, coreerrors.IsExternalAPI(err))
	assert.Len(t, out, 2, "partial results are returned")
	assert.Len(t, srv.queries, 1)
}

func TestEnrich_CachesSearches(t *testing.T) {
	srv := &searchServer{results: map[string][]string{
		`"Jane Doe" site:linkedin.com`: {"https://www.linkedin.com/in/janedoe"},
	}}
	m := newMatcher(t, srv, enabledConfig, memory.NewMemoryCache())
	ctx := context.Background()
	in := []domain.Profile{{ID: 1, Name: "Jane Doe"}}

	_, err := m.Enrich(ctx, in)
	require.NoError(t, err)
	first := len(srv.queries)

	out, err := m.Enrich(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first, len(srv.queries))
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", out[0].LinkedInURL)
}

func TestEnrich_DelayHonorsCancellation(t *testing.T) {
	srv := &searchServer{}
	cfg := enabledConfig
	cfg.Delay = time.Hour
	m := newMatcher(t, srv, cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := m.Enrich(ctx, []domain.Profile{{Name: "Jane Doe"}, {Name: "Bob Stone"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueries(t *testing.T) {
	assert.Equal(t, []string{
		`"Jane Doe" "Acme" site:linkedin.com`,
		`"Jane Doe" site:linkedin.com`,
		`Jane Doe site:linkedin.com`,
	}, Queries(domain.Profile{Name: "Jane Doe", Company: "Acme"}))

	assert.Len(t, Queries(domain.Profile{Name: "Jane Doe"}), 2)
	assert.Empty(t, Queries(domain.Profile{Name: "  "}))
	assert.False(t, strings.Contains(Queries(domain.Profile{Name: "Jane Doe"})[0], `""`))
}
