package workers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	logger "newsnex-api/infrastructure/logger/standard"
)

// fakeExtractor returns a result per URL, failing URLs listed in fail
type fakeExtractor struct {
	fail    map[string]error
	delay   time.Duration
	calls   int32
	active  int32
	maxSeen int32
	mu      sync.Mutex
}

func (f *fakeExtractor) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	atomic.AddInt32(&f.calls, 1)
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)

	f.mu.Lock()
	if n > f.maxSeen {
		f.maxSeen = n
	}
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, coreerrors.NewExtractionError(coreerrors.ReasonCanceled, ctx.Err())
		}
	}

	if err, ok := f.fail[req.URL]; ok {
		return nil, err
	}
	result := domain.NewExtractionResult(domain.Source{Kind: domain.SourceURL, URL: req.URL}, []domain.Profile{
		{Name: "Sarah Johnson", Confidence: 90, Mentions: 1},
	})
	result.Title = "Title of " + req.URL
	return result, nil
}

func TestExtractionWorker_StartStop(t *testing.T) {
	w := NewExtractionWorker(&fakeExtractor{}, WorkerConfig{})

	assert.False(t, w.Running())
	assert.Equal(t, ErrWorkerNotRunning, w.SubmitJob(&ExtractionJob{}))

	require.NoError(t, w.Start())
	require.NoError(t, w.Start())
	assert.True(t, w.Running())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.False(t, w.Running())

	// A stopped pool can be restarted
	require.NoError(t, w.Start())
	defer w.Stop()
	results := w.ExtractAll(context.Background(), []domain.ExtractionRequest{{URL: "https://a.example.com"}})
	require.NoError(t, results[0].Err)
}

func TestExtractionWorker_ExtractAllKeepsOrder(t *testing.T) {
	fx := &fakeExtractor{
		fail:  map[string]error{"https://news.example.com/2": errors.New("boom")},
		delay: 5 * time.Millisecond,
	}
	w := NewExtractionWorker(fx, WorkerConfig{MaxWorkers: 3, QueueSize: 2})
	require.NoError(t, w.Start())
	defer w.Stop()

	reqs := make([]domain.ExtractionRequest, 10)
	for i := range reqs {
		reqs[i] = domain.ExtractionRequest{URL: fmt.Sprintf("https://news.example.com/%d", i)}
	}

	results := w.ExtractAll(context.Background(), reqs)
	require.Len(t, results, 10)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		if i == 2 {
			assert.Error(t, res.Err)
			continue
		}
		require.NoError(t, res.Err)
		assert.Equal(t, reqs[i].URL, res.Result.Source.URL)
	}

	assert.Equal(t, int32(10), atomic.LoadInt32(&fx.calls))
	assert.LessOrEqual(t, fx.maxSeen, int32(3))
}

func TestExtractionWorker_StopCancelsInFlight(t *testing.T) {
	fx := &fakeExtractor{delay: 10 * time.Second}
	w := NewExtractionWorker(fx, WorkerConfig{MaxWorkers: 1, QueueSize: 5})
	require.NoError(t, w.Start())

	done := make(chan []JobResult)
	go func() {
		done <- w.ExtractAll(context.Background(), []domain.ExtractionRequest{
			{URL: "https://news.example.com/1"},
			{URL: "https://news.example.com/2"},
		})
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&fx.active) == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case results := <-done:
		for _, res := range results {
			assert.Error(t, res.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ExtractAll did not return after Stop")
	}
}

func TestExtractionWorker_ContextCancel(t *testing.T) {
	fx := &fakeExtractor{delay: 10 * time.Second}
	w := NewExtractionWorker(fx, WorkerConfig{MaxWorkers: 2})
	require.NoError(t, w.Start())
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	results := w.ExtractAll(ctx, []domain.ExtractionRequest{{URL: "https://news.example.com/1"}})
	assert.Equal(t, coreerrors.ReasonCanceled, coreerrors.ReasonOf(results[0].Err))
}

type fakeLinks struct {
	items []domain.FeedItem
	err   error
}

func (f *fakeLinks) ArticleLinks(ctx context.Context, feedURL string, limit int) ([]domain.FeedItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.items) {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func TestBatchExtract(t *testing.T) {
	fx := &fakeExtractor{fail: map[string]error{
		"https://news.example.com/b": coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, errors.New("502")),
	}}
	w := NewExtractionWorker(fx, WorkerConfig{MaxWorkers: 2})
	require.NoError(t, w.Start())
	defer w.Stop()

	links := &fakeLinks{items: []domain.FeedItem{
		{Title: "A", Link: "https://news.example.com/a"},
		{Title: "B", Link: "https://news.example.com/b"},
		{Link: "https://news.example.com/c"},
	}}
	batch := NewBatchExtractor(links, w, logger.NewWithWriter(io.Discard, "info"))

	result, err := batch.BatchExtract(context.Background(), "https://news.example.com/rss", 0, domain.ExtractionOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://news.example.com/rss", result.FeedURL)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 3)

	assert.Equal(t, domain.BatchSucceeded, result.Items[0].Status)
	assert.Equal(t, 1, result.Items[0].Summary.ProfileCount)
	assert.Equal(t, "A", result.Items[0].Title)

	assert.Equal(t, domain.BatchFailed, result.Items[1].Status)
	assert.Equal(t, "fetch_failed", result.Items[1].Reason)
	assert.Equal(t, coreerrors.MessageExtractionFailed, result.Items[1].Message)

	assert.Equal(t, "Title of https://news.example.com/c", result.Items[2].Title)
}

func TestBatchExtract_FeedError(t *testing.T) {
	w := NewExtractionWorker(&fakeExtractor{}, WorkerConfig{})
	require.NoError(t, w.Start())
	defer w.Stop()

	batch := NewBatchExtractor(&fakeLinks{err: errors.New("feed down")}, w, logger.NewWithWriter(io.Discard, "info"))
	_, err := batch.BatchExtract(context.Background(), "https://news.example.com/rss", 5, domain.ExtractionOptions{})
	assert.Error(t, err)
}

func TestBatchExtract_PoolNotRunning(t *testing.T) {
	w := NewExtractionWorker(&fakeExtractor{}, WorkerConfig{})
	links := &fakeLinks{items: []domain.FeedItem{{Link: "https://news.example.com/a"}}}
	batch := NewBatchExtractor(links, w, logger.NewWithWriter(io.Discard, "info"))

	result, err := batch.BatchExtract(context.Background(), "https://news.example.com/rss", 5, domain.ExtractionOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "internal", result.Items[0].Reason)
}
