// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package policyatlas

import (
	"context"
	"log/slog"

	"github.com/poiesic/policyatlas/ai"
	"github.com/poiesic/policyatlas/ai/ollama"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/facts"
	"github.com/poiesic/policyatlas/ingestion"
	"github.com/poiesic/policyatlas/rag"
	"github.com/poiesic/policyatlas/search"
	"github.com/poiesic/policyatlas/storage"
	"github.com/poiesic/policyatlas/storage/badger"
)

// Atlas is the composition root. It owns the store, the AI provider, the
// ingestion queue, and the query surfaces, and is what an HTTP layer or
// the CLI talks to.
type Atlas struct {
	logger    *slog.Logger
	store     *badger.Store
	provider  ai.Provider
	queue     *ingestion.Queue
	searcher  *search.Searcher
	answerer  *rag.Answerer
	extractor *facts.Extractor
}

// Option configures an Atlas.
type Option func(*atlasOptions)

type atlasOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	queue    []ingestion.Option
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(config *ai.Config) Option {
	return func(o *atlasOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, primarily for tests.
func WithProvider(provider ai.Provider) Option {
	return func(o *atlasOptions) {
		o.provider = provider
	}
}

// WithQueueOptions passes options through to the ingestion queue.
func WithQueueOptions(opts ...ingestion.Option) Option {
	return func(o *atlasOptions) {
		o.queue = opts
	}
}

// Open builds an Atlas over the database at filePath and starts the
// ingestion worker.
func Open(ctx context.Context, filePath string, opts ...Option) (*Atlas, error) {
	options := &atlasOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.NewStore(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = ollama.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	extractor := facts.NewExtractor(provider.Generator(), store.Documents, store.Chunks, store.Facts, store.Regions)

	queue, err := ingestion.NewQueue(store.Documents, store.Chunks, provider.Embedder(), extractor, options.queue...)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	searcher := search.NewSearcher(provider.Embedder(), store.Chunks)
	answerer := rag.NewAnswerer(searcher, provider.Generator())

	atlas := &Atlas{
		logger:    slog.Default(),
		store:     store,
		provider:  provider,
		queue:     queue,
		searcher:  searcher,
		answerer:  answerer,
		extractor: extractor,
	}
	queue.Start(ctx)

	return atlas, nil
}

// Close drains the ingestion queue, then shuts down the provider and store.
func (a *Atlas) Close() error {
	if err := a.queue.Close(); err != nil {
		a.logger.Error("error closing ingestion queue", "err", err)
	}
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

// EnqueueIngestion queues a document for background processing. The
// document row must already exist with status processing. Fire and forget;
// completion is observed by polling document status.
func (a *Atlas) EnqueueIngestion(job *ingestion.Job) error {
	return a.queue.Enqueue(job)
}

// WaitForIngestion blocks until every queued job has finished.
func (a *Atlas) WaitForIngestion() {
	a.queue.Wait()
}

// HybridSearch returns the chunks most similar to the query, optionally
// restricted to the named regions.
func (a *Atlas) HybridSearch(ctx context.Context, query string, regionFilter []string, topK int) ([]*core.SearchResult, error) {
	return a.searcher.Search(ctx, query, regionFilter, topK)
}

// Answer runs retrieval-augmented question answering over the stored
// documents.
func (a *Atlas) Answer(ctx context.Context, query string, regionFilter []string, history []rag.HistoryMessage) (*rag.Response, error) {
	return a.answerer.Answer(ctx, query, regionFilter, history)
}

// ExtractFacts synchronously re-runs fact extraction for one document.
func (a *Atlas) ExtractFacts(ctx context.Context, documentID core.ID) error {
	return a.extractor.ExtractFacts(ctx, documentID)
}

// NewBatchExtractor builds a batch fact extractor sharing this Atlas's
// store and provider.
func (a *Atlas) NewBatchExtractor(opts ...facts.BatchOption) (*facts.BatchExtractor, error) {
	return facts.NewBatchExtractor(a.extractor, a.store.Documents, opts...)
}

// Documents exposes the document repository.
func (a *Atlas) Documents() storage.DocumentRepository {
	return a.store.Documents
}

// Regions exposes the region repository.
func (a *Atlas) Regions() storage.RegionRepository {
	return a.store.Regions
}

// Facts exposes the fact repository.
func (a *Atlas) Facts() storage.FactRepository {
	return a.store.Facts
}

// Chunks exposes the chunk repository.
func (a *Atlas) Chunks() storage.ChunkRepository {
	return a.store.Chunks
}
