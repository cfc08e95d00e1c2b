package facts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/policyatlas/ai"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

const (
	// maxExtractionChars guards the generation provider's context window.
	maxExtractionChars = 12000

	extractionTemperature = 0.1
	extractionMaxTokens   = 1024

	defaultConfidence = 0.5
)

// Extractor derives structured facts from an ingested document by running
// its reconstructed text through the generation provider.
type Extractor struct {
	logger    *slog.Logger
	generator ai.Generator
	documents storage.DocumentRepository
	chunks    storage.ChunkRepository
	facts     storage.FactRepository
	regions   storage.RegionRepository
}

// NewExtractor creates a fact extractor.
func NewExtractor(generator ai.Generator, documents storage.DocumentRepository, chunks storage.ChunkRepository, facts storage.FactRepository, regions storage.RegionRepository) *Extractor {
	return &Extractor{
		logger:    slog.Default().With("component", "facts"),
		generator: generator,
		documents: documents,
		chunks:    chunks,
		facts:     facts,
		regions:   regions,
	}
}

// ExtractFacts reconstructs the document text from its stored chunks, asks
// the generation provider for taxonomy facts, and persists whatever parses.
// Extraction is best effort: an unparseable response yields zero facts and
// a warning, not an error. Re-running extraction appends new rows; old
// rows are never replaced.
func (e *Extractor) ExtractFacts(ctx context.Context, documentID core.ID) error {
	logger := e.logger.With("document_id", uint64(documentID))

	document, err := e.documents.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrDocumentNotFound, documentID)
		}
		return err
	}

	region, err := e.regions.GetRegion(ctx, document.RegionId)
	if err != nil {
		return err
	}

	chunks, err := e.chunks.GetChunksByDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		logger.Warn("No chunks to extract facts from")
		return nil
	}

	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		contents[i] = chunk.Content
	}
	fullText := truncateText(strings.Join(contents, "\n"), maxExtractionChars)

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: extractionSystemPrompt},
		{Role: ai.RoleUser, Content: fmt.Sprintf("Extract facts from this %s policy:\n\n%s", region.Name, fullText)},
	}

	raw, err := e.generator.Complete(ctx, messages, extractionTemperature, extractionMaxTokens)
	if err != nil {
		return err
	}

	var payload factPayload
	if err := ExtractJSONObject(raw, &payload); err != nil {
		logger.Warn("Failed to parse extracted facts", "error", err)
		return nil
	}

	rows := e.buildFacts(logger, document, payload.Facts)
	if len(rows) == 0 {
		logger.Info("No facts extracted")
		return nil
	}

	if _, err := e.facts.AddFacts(ctx, rows...); err != nil {
		return err
	}

	logger.Info("Facts extracted", "count", len(rows))
	return nil
}

// truncateText cuts text to at most limit bytes, backing off to the nearest
// rune boundary so the cut never leaves a partial multibyte sequence.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func (e *Extractor) buildFacts(logger *slog.Logger, document *core.Document, entries []factEntry) []*core.Fact {
	var rows []*core.Fact
	for _, entry := range entries {
		category := core.FactCategory(strings.ToLower(strings.TrimSpace(entry.Category)))
		if !core.IsValidFactCategory(category) {
			logger.Warn("Skipping fact with unknown category", "category", entry.Category)
			continue
		}
		if entry.Field == "" || entry.Value == "" {
			logger.Warn("Skipping fact with empty field or value", "category", entry.Category)
			continue
		}

		confidence := float32(defaultConfidence)
		if v, err := entry.Confidence.Float64(); err == nil && v >= 0 && v <= 1 {
			confidence = float32(v)
		}

		page := 0
		if v, err := entry.Page.Int64(); err == nil && v > 0 {
			page = int(v)
		}

		rows = append(rows, &core.Fact{
			DocumentId: document.Id,
			RegionId:   document.RegionId,
			Category:   category,
			Field:      entry.Field,
			Value:      entry.Value,
			Confidence: confidence,
			PageNumber: page,
		})
	}
	return rows
}
