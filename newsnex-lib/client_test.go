package newsnex

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "newsnex-api/core/errors"
	"newsnex-api/pkg/featureflags"
)

const sampleDocument = "Acme CEO Jane Doe said the deal would close in March."

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(append([]Option{WithQuietMode()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client := newTestClient(t)
	assert.NotNil(t, client.config.Cache)
	assert.NotNil(t, client.config.Store)
	assert.NotNil(t, client.config.HTTPClient)
}

func TestNewClient_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"nil cache", WithCache(nil), ErrNoCache},
		{"nil store", WithExtractionStore(nil), ErrNoStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opt)
			assert.Nil(t, client)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestNewClient_OptionErrors(t *testing.T) {
	_, err := NewClient(WithCacheOption(CacheOption{Type: "disk"}))
	require.Error(t, err)

	var libErr *Error
	require.True(t, errors.As(err, &libErr))
	assert.Equal(t, ErrorTypeConfiguration, libErr.Type)
	assert.Equal(t, "disk", libErr.Context["type"])

	_, err = NewClient(WithTimeout(0))
	require.Error(t, err)
}

func TestClient_ExtractDocument(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	result, err := client.ExtractDocument(ctx, []byte(sampleDocument), "text/plain", "note.txt")
	require.NoError(t, err)

	require.Len(t, result.Profiles, 1)
	assert.Equal(t, 1, result.Profiles[0].ID)
	assert.Equal(t, "Jane Doe", result.Profiles[0].Name)
	assert.Equal(t, "note.txt", result.SourceFile)
	assert.NotEmpty(t, result.ID)

	stored, err := client.Get(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Profiles, stored.Profiles)

	recent, err := client.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, result.ID, recent[0].ID)
	assert.Equal(t, 1, recent[0].ProfileCount)
}

func TestClient_ExtractRejectsInvalidOptions(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ExtractDocument(context.Background(), []byte(sampleDocument), "text/plain", "",
		WithMinConfidence(101))
	assert.True(t, IsValidationError(err))

	_, err = client.ExtractDocument(context.Background(), []byte(sampleDocument), "text/plain", "",
		WithMaxProfiles(-1))
	assert.True(t, IsValidationError(err))
}

func TestClient_Export(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	result, err := client.ExtractDocument(ctx, []byte(sampleDocument), "text/plain", "note.txt")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, client.Export(ctx, result.ID, "csv", &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "id,name,role,company,quote,confidence,linkedInUrl"))
	assert.Contains(t, buf.String(), "Jane Doe")

	err = client.Export(ctx, result.ID, "pdf", &buf)
	assert.True(t, IsValidationError(err))

	err = client.Export(ctx, "missing", "json", &buf)
	assert.True(t, IsNotFoundError(err))
}

func TestClient_ExtractErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    Request
		check  func(error) bool
		reason coreerrors.Reason
	}{
		{
			name:   "missing url",
			req:    Request{},
			check:  IsValidationError,
			reason: coreerrors.ReasonInvalidInput,
		},
		{
			name:   "invalid url",
			req:    Request{URL: "not a url"},
			check:  IsValidationError,
			reason: coreerrors.ReasonInvalidInput,
		},
		{
			name:   "unreachable article",
			req:    Request{URL: server.URL + "/article"},
			check:  IsNetworkError,
			reason: coreerrors.ReasonFetchFailed,
		},
		{
			name:   "unsupported document",
			req:    Request{Document: []byte{0x00, 0x01, 0x02}, ContentType: "application/octet-stream"},
			check:  IsValidationError,
			reason: coreerrors.ReasonUnsupportedContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Extract(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type: %v", err)

			var libErr *Error
			require.True(t, errors.As(err, &libErr))
			assert.Equal(t, string(tt.reason), libErr.Reason)
			assert.NotEmpty(t, libErr.Message)
		})
	}
}

func TestClient_Closed(t *testing.T) {
	client, err := NewClient(WithQuietMode())
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, err = client.ExtractURL(context.Background(), "https://example.com")
	assert.Equal(t, ErrClientClosed, err)

	_, err = client.Recent(context.Background(), 5)
	assert.Equal(t, ErrClientClosed, err)
}

func TestClient_SQLiteCacheClosedWithClient(t *testing.T) {
	path := t.TempDir() + "/cache.db"
	client, err := NewClient(WithQuietMode(), WithCacheOption(CacheOption{Type: CacheTypeSQLite, FilePath: path}))
	require.NoError(t, err)
	require.Len(t, client.config.closers, 1)
	assert.NoError(t, client.Close())
	assert.Empty(t, client.config.closers)
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, wrapError(nil))

	err := wrapError(&coreerrors.NotFoundError{Resource: "Extraction", ID: "abc"})
	assert.True(t, IsNotFoundError(err))

	err = wrapError(coreerrors.NewExtractionError(coreerrors.ReasonNoContent, errors.New("empty")))
	assert.True(t, IsParsingError(err))

	err = wrapError(coreerrors.NewExtractionError(coreerrors.ReasonTooLarge, errors.New("document exceeds limit")))
	assert.True(t, IsValidationError(err))

	err = wrapError(errors.New("boom"))
	var libErr *Error
	require.True(t, errors.As(err, &libErr))
	assert.Equal(t, ErrorTypeInternal, libErr.Type)
	assert.Equal(t, coreerrors.MessageExtractionFailed, libErr.Message)
}

type recordingFlags struct {
	*featureflags.StaticManager
	mu      sync.Mutex
	checked []featureflags.FeatureFlag
}

func (r *recordingFlags) IsEnabled(ctx context.Context, flag featureflags.FeatureFlag) bool {
	r.mu.Lock()
	r.checked = append(r.checked, flag)
	r.mu.Unlock()
	return r.StaticManager.IsEnabled(ctx, flag)
}

func TestClient_ExtractUsesFeatureFlags(t *testing.T) {
	flags := &recordingFlags{StaticManager: featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.LinkedInEnrichment: false,
	})}
	client := newTestClient(t,
		WithFeatureFlags(flags),
		WithLinkedInSearch("test-key", "test-engine"))

	result, err := client.ExtractDocument(context.Background(), []byte(sampleDocument), "text/plain", "",
		WithEnrichment())
	require.NoError(t, err)
	require.Len(t, result.Profiles, 1)
	assert.Empty(t, result.Profiles[0].LinkedInURL)
	assert.Contains(t, flags.checked, featureflags.LinkedInEnrichment)
}

func TestClient_DefaultFlagsReadEnvironment(t *testing.T) {
	t.Setenv("FEATURE_LINKEDIN_ENRICHMENT", "false")
	client := newTestClient(t)
	assert.False(t, client.config.Flags.IsEnabled(context.Background(), featureflags.LinkedInEnrichment))

	_, err := NewClient(WithQuietMode(), WithFeatureFlags(nil))
	var libErr *Error
	require.True(t, errors.As(err, &libErr))
	assert.Equal(t, ErrorTypeConfiguration, libErr.Type)
}
