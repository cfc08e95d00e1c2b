package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/poiesic/policyatlas/ai"
	"github.com/poiesic/policyatlas/chunker"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

const defaultQueueCapacity = 64

// Job describes one document waiting to be ingested. Either Buffer or
// FilePath must be set; Buffer wins when both are present. Jobs live only
// in process memory, so a restart drops anything not yet started.
type Job struct {
	DocumentId      core.ID
	Buffer          []byte
	FilePath        string
	DeleteFileAfter bool
}

// FactExtractor derives structured facts from an already-ingested document.
type FactExtractor interface {
	ExtractFacts(ctx context.Context, documentID core.ID) error
}

// Option configures a Queue.
type Option func(*Queue) error

// WithCapacity sets the bounded queue capacity.
func WithCapacity(n int) Option {
	return func(q *Queue) error {
		if n < 1 {
			return fmt.Errorf("queue capacity must be positive, got %d", n)
		}
		q.capacity = n
		return nil
	}
}

// WithTextExtractor replaces the default plain-text extractor.
func WithTextExtractor(extractor TextExtractor) Option {
	return func(q *Queue) error {
		if extractor == nil {
			return fmt.Errorf("%w: text extractor", ErrMissingDependency)
		}
		q.extractor = extractor
		return nil
	}
}

// Queue serializes document ingestion. Enqueue never blocks; exactly one
// worker goroutine drains jobs in FIFO order, so two documents are never
// processed concurrently.
type Queue struct {
	logger    *slog.Logger
	documents storage.DocumentRepository
	chunks    storage.ChunkRepository
	embedder  ai.Embedder
	facts     FactExtractor
	extractor TextExtractor

	capacity int
	jobs     chan *Job
	pending  sync.WaitGroup

	mu       sync.Mutex
	started  bool
	closed   bool
	workerEx chan struct{}
}

// NewQueue creates an ingestion queue. Call Start before enqueuing.
func NewQueue(documents storage.DocumentRepository, chunks storage.ChunkRepository, embedder ai.Embedder, facts FactExtractor, opts ...Option) (*Queue, error) {
	if documents == nil {
		return nil, fmt.Errorf("%w: document repository", ErrMissingDependency)
	}
	if chunks == nil {
		return nil, fmt.Errorf("%w: chunk repository", ErrMissingDependency)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder", ErrMissingDependency)
	}
	if facts == nil {
		return nil, fmt.Errorf("%w: fact extractor", ErrMissingDependency)
	}

	q := &Queue{
		logger:    slog.Default().With("component", "ingestion"),
		documents: documents,
		chunks:    chunks,
		embedder:  embedder,
		facts:     facts,
		extractor: PlainText{},
		capacity:  defaultQueueCapacity,
		workerEx:  make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}

	q.jobs = make(chan *Job, q.capacity)
	return q, nil
}

// Start launches the single worker goroutine. Calling Start twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.run(ctx)
}

// Enqueue adds a job without blocking. Returns ErrQueueFull when the queue
// is saturated and ErrQueueClosed after Close.
func (q *Queue) Enqueue(job *Job) error {
	if len(job.Buffer) == 0 && job.FilePath == "" {
		return ErrNoJobSource
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}

	q.pending.Add(1)
	select {
	case q.jobs <- job:
		return nil
	default:
		q.pending.Done()
		return ErrQueueFull
	}
}

// Wait blocks until every job enqueued so far has finished.
func (q *Queue) Wait() {
	q.pending.Wait()
}

// Close stops accepting jobs, waits for in-flight work to drain, and stops
// the worker.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.jobs)
	q.mu.Unlock()

	if started {
		<-q.workerEx
	}
	return nil
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.workerEx)

	for job := range q.jobs {
		q.process(ctx, job)
		q.pending.Done()
	}
}

// process runs the full pipeline for one job. Any failure before the final
// status update flips the document to failed; there is no automatic retry.
func (q *Queue) process(ctx context.Context, job *Job) {
	logger := q.logger.With("document_id", uint64(job.DocumentId))
	defer q.cleanupFile(job, logger)

	if err := q.ingest(ctx, job); err != nil {
		logger.Error("Ingestion failed", "error", err)
		// Failed documents keep a zero ProcessedAt; only completion stamps it.
		if statusErr := q.documents.UpdateDocumentStatus(ctx, job.DocumentId, core.StatusFailed, time.Time{}); statusErr != nil {
			logger.Error("Failed to mark document failed", "error", statusErr)
		}
		return
	}

	if err := q.documents.UpdateDocumentStatus(ctx, job.DocumentId, core.StatusCompleted, time.Now().UTC()); err != nil {
		logger.Error("Failed to mark document completed", "error", err)
		return
	}
	logger.Info("Document ingested")
}

func (q *Queue) ingest(ctx context.Context, job *Job) error {
	data, err := q.resolveBuffer(job)
	if err != nil {
		return err
	}

	text, pageCount, err := q.extractor.Extract(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTextExtraction, err)
	}

	windows := chunker.Split(text, pageCount)

	// Windows trim surrounding whitespace, so a window over a whitespace run
	// comes back empty. Those carry nothing worth embedding; drop them. A
	// document whose text produces no usable windows completes with zero
	// chunks.
	kept := windows[:0]
	for _, window := range windows {
		if window.Content != "" {
			kept = append(kept, window)
		}
	}
	windows = kept
	if len(windows) == 0 {
		return nil
	}

	texts := make([]string, len(windows))
	for i, window := range windows {
		texts[i] = window.Content
	}

	vectors, err := q.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}

	chunks := make([]*core.Chunk, len(windows))
	for i, window := range windows {
		chunks[i] = &core.Chunk{
			DocumentId: job.DocumentId,
			Content:    window.Content,
			PageNumber: window.PageNumber,
			Index:      window.Index,
			Vector:     vectors[i],
		}
	}

	if _, err := q.chunks.AddChunks(ctx, chunks...); err != nil {
		return err
	}

	return q.facts.ExtractFacts(ctx, job.DocumentId)
}

func (q *Queue) resolveBuffer(job *Job) ([]byte, error) {
	if len(job.Buffer) > 0 {
		return job.Buffer, nil
	}
	if job.FilePath == "" {
		return nil, ErrNoJobSource
	}
	data, err := os.ReadFile(job.FilePath)
	if err != nil {
		return nil, fmt.Errorf("reading staged file: %w", err)
	}
	return data, nil
}

func (q *Queue) cleanupFile(job *Job, logger *slog.Logger) {
	if job.FilePath == "" || !job.DeleteFileAfter {
		return
	}
	if err := os.Remove(job.FilePath); err != nil {
		logger.Warn("Failed to delete staged file", "path", job.FilePath, "error", err)
	}
}
