// ABOUTME: Extraction worker runs profile extractions on a bounded worker pool
// ABOUTME: Provides managed start/stop, a job queue and ordered batch results

package workers

import (
	"context"
	"sync"
	"time"

	"newsnex-api/core/domain"
)

// Extractor runs one extraction
type Extractor interface {
	Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error)
}

// ExtractionJob represents one extraction to run on the pool
type ExtractionJob struct {
	Index    int
	Request  domain.ExtractionRequest
	Context  context.Context
	ResultCh chan<- JobResult
}

// JobResult is the outcome of an ExtractionJob
type JobResult struct {
	Index  int
	Result *domain.ExtractionResult
	Err    error
}

// ExtractionWorker manages a pool of extraction goroutines
type ExtractionWorker struct {
	extractor  Extractor
	jobQueue   chan *ExtractionJob
	maxWorkers int
	queueSize  int
	submitWait time.Duration
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	running    bool
}

// WorkerConfig holds configuration for the extraction worker
type WorkerConfig struct {
	MaxWorkers    int
	QueueSize     int
	SubmitTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:    4,
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
	}
}

// NewExtractionWorker creates a new extraction worker
func NewExtractionWorker(extractor Extractor, config WorkerConfig) *ExtractionWorker {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}

	return &ExtractionWorker{
		extractor:  extractor,
		maxWorkers: config.MaxWorkers,
		queueSize:  config.QueueSize,
		submitWait: submitTimeout(config.SubmitTimeout),
	}
}

func submitTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultWorkerConfig().SubmitTimeout
	}
	return d
}

// Start starts the worker pool. A stopped pool can be started again.
func (ew *ExtractionWorker) Start() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if ew.running {
		return nil
	}

	ew.ctx, ew.cancel = context.WithCancel(context.Background())
	ew.jobQueue = make(chan *ExtractionJob, ew.queueSize)

	for i := 0; i < ew.maxWorkers; i++ {
		ew.wg.Add(1)
		go ew.run(ew.ctx, ew.jobQueue)
	}

	ew.running = true
	return nil
}

// Stop stops the worker pool. In-flight extractions are canceled and queued
// jobs are answered with ErrWorkerStopped.
func (ew *ExtractionWorker) Stop() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if !ew.running {
		return nil
	}

	// Cancel context to signal workers to stop
	ew.cancel()

	// Close job queue
	close(ew.jobQueue)

	// Wait for all workers to finish
	ew.wg.Wait()

	ew.running = false
	return nil
}

// Running reports whether the pool accepts jobs
func (ew *ExtractionWorker) Running() bool {
	ew.mu.RLock()
	defer ew.mu.RUnlock()
	return ew.running
}

// SubmitJob queues a job, waiting up to the submit timeout for room. The
// worker sends exactly one JobResult on ResultCh, which must have room for it.
func (ew *ExtractionWorker) SubmitJob(job *ExtractionJob) error {
	ew.mu.RLock()
	defer ew.mu.RUnlock()

	if !ew.running {
		return ErrWorkerNotRunning
	}
	if job.Context == nil {
		job.Context = context.Background()
	}

	timer := time.NewTimer(ew.submitWait)
	defer timer.Stop()

	select {
	case ew.jobQueue <- job:
		return nil
	case <-job.Context.Done():
		return job.Context.Err()
	case <-timer.C:
		return ErrQueueFull
	}
}

// ExtractAll runs every request on the pool and returns the outcomes in
// request order
func (ew *ExtractionWorker) ExtractAll(ctx context.Context, reqs []domain.ExtractionRequest) []JobResult {
	results := make([]JobResult, len(reqs))
	resultCh := make(chan JobResult, len(reqs))

	pending := 0
	for i, req := range reqs {
		results[i].Index = i
		err := ew.SubmitJob(&ExtractionJob{
			Index:    i,
			Request:  req,
			Context:  ctx,
			ResultCh: resultCh,
		})
		if err != nil {
			results[i].Err = err
			continue
		}
		pending++
	}

	// Every queued job answers exactly once, even when the pool stops
	for ; pending > 0; pending-- {
		res := <-resultCh
		results[res.Index] = res
	}

	return results
}

// run is the main loop for each worker
func (ew *ExtractionWorker) run(ctx context.Context, jobs <-chan *ExtractionJob) {
	defer ew.wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			ew.processJob(ctx, job)
		case <-ctx.Done():
			// Answer whatever is still queued; Stop closes the queue
			for job := range jobs {
				reply(job, JobResult{Index: job.Index, Err: ErrWorkerStopped})
			}
			return
		}
	}
}

// processJob runs a single extraction, canceling it when the pool stops
func (ew *ExtractionWorker) processJob(poolCtx context.Context, job *ExtractionJob) {
	if poolCtx.Err() != nil {
		reply(job, JobResult{Index: job.Index, Err: ErrWorkerStopped})
		return
	}

	ctx, cancel := context.WithCancel(job.Context)
	defer cancel()
	stop := context.AfterFunc(poolCtx, cancel)
	defer stop()

	result, err := ew.extractor.Extract(ctx, job.Request)
	reply(job, JobResult{Index: job.Index, Result: result, Err: err})
}

func reply(job *ExtractionJob, res JobResult) {
	if job.ResultCh != nil {
		job.ResultCh <- res
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
	ErrWorkerStopped    = &WorkerError{Message: "worker pool stopped"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
