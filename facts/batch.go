package facts

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

const (
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 2 * time.Second
	defaultReportInterval = 5
)

// BatchExtractor re-runs fact extraction over many documents at once, for
// example after a taxonomy prompt change. Documents are extracted
// concurrently on a worker pool; each extraction appends rows, so the run
// is safe to repeat after a partial failure.
type BatchExtractor struct {
	logger    *slog.Logger
	extractor *Extractor
	documents storage.DocumentRepository
	pool      *ants.Pool

	maxRetries     int
	retryBaseDelay time.Duration
	progressWriter io.Writer
}

// BatchOption configures a BatchExtractor.
type BatchOption func(*BatchExtractor) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BatchOption {
	return func(b *BatchExtractor) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithRetry sets retry behavior for provider calls.
func WithRetry(maxRetries int, baseDelay time.Duration) BatchOption {
	return func(b *BatchExtractor) error {
		if maxRetries <= 0 {
			return ErrInvalidMaxAttempts
		}
		b.maxRetries = maxRetries
		b.retryBaseDelay = baseDelay
		return nil
	}
}

// WithProgressWriter enables progress reporting to the given writer.
func WithProgressWriter(w io.Writer) BatchOption {
	return func(b *BatchExtractor) error {
		b.progressWriter = w
		return nil
	}
}

// NewBatchExtractor creates a batch extractor over an existing Extractor.
func NewBatchExtractor(extractor *Extractor, documents storage.DocumentRepository, opts ...BatchOption) (*BatchExtractor, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &BatchExtractor{
		logger:         slog.Default().With("component", "facts"),
		extractor:      extractor,
		documents:      documents,
		pool:           pool,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		progressWriter: io.Discard,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.pool.Release()
			return nil, err
		}
	}

	return b, nil
}

// Release shuts down the worker pool.
func (b *BatchExtractor) Release() {
	b.pool.Release()
}

// ExtractAllCompleted re-extracts facts for every completed document.
// Returns the number of documents processed and the number that failed
// after retries.
func (b *BatchExtractor) ExtractAllCompleted(ctx context.Context) (processed, failed int, err error) {
	documents, err := b.documents.ListDocumentsByStatus(ctx, core.StatusCompleted)
	if err != nil {
		return 0, 0, err
	}
	return b.ExtractDocuments(ctx, documents)
}

// ExtractDocuments re-extracts facts for the given documents on the pool.
func (b *BatchExtractor) ExtractDocuments(ctx context.Context, documents []*core.Document) (processed, failed int, err error) {
	if len(documents) == 0 {
		return 0, 0, nil
	}

	progress := NewProgressTracker(b.progressWriter, len(documents), defaultReportInterval)
	progress.Start()

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, document := range documents {
		doc := document
		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()
			defer progress.Increment(1)

			retryErr := RetryWithBackoff(ctx, func() error {
				return b.extractor.ExtractFacts(ctx, doc.Id)
			}, b.maxRetries, b.retryBaseDelay)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if retryErr != nil {
				failed++
				b.logger.Error("Batch extraction failed for document", "document_id", uint64(doc.Id), "error", retryErr)
			}
		})
		if submitErr != nil {
			wg.Done()
			progress.Increment(1)
			mu.Lock()
			processed++
			failed++
			mu.Unlock()
			b.logger.Error("Failed to submit document to pool", "document_id", uint64(doc.Id), "error", submitErr)
		}
	}

	wg.Wait()
	progress.Finish()
	b.logger.Info("Batch extraction finished", "processed", processed, "failed", failed, "elapsed", progress.Elapsed())

	return processed, failed, nil
}
