// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateStatus checks that s is one of the known lifecycle states.
func ValidateStatus(s DocumentStatus) error {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Status must be a known lifecycle state
//   - Filename must not be empty
//
// NOT validated:
//   - ProcessedAt (zero until the worker completes the document)
//   - ID (0 is valid before the database sequence assigns one)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Filename == "" {
		return fmt.Errorf("%w: filename is empty", ErrInvalidDocument)
	}
	if err := ValidateStatus(doc.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - DocumentId must be set
//   - Index must not be negative
//
// NOT validated (populated during ingestion):
//   - Vector (attached by the embedding step)
//   - ID (0 is valid before the database sequence assigns one)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}
	if chunk.DocumentId == 0 {
		return fmt.Errorf("%w: document reference is missing", ErrInvalidChunk)
	}
	if chunk.Index < 0 {
		return fmt.Errorf("%w: negative sequence index %d", ErrInvalidChunk, chunk.Index)
	}
	return nil
}

// ValidateFact validates a Fact according to domain rules.
//
// Validation rules:
//   - Category must be one of the eight taxonomy values
//   - Confidence must be in [0, 1]
//   - Field and Value must not be empty
func ValidateFact(fact *Fact) error {
	if fact == nil {
		return fmt.Errorf("%w: fact is nil", ErrInvalidFact)
	}
	if !IsValidFactCategory(fact.Category) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidFact, ErrInvalidCategory, fact.Category)
	}
	if fact.Confidence < 0 || fact.Confidence > 1 {
		return fmt.Errorf("%w: %w: %g", ErrInvalidFact, ErrInvalidConfidence, fact.Confidence)
	}
	if fact.Field == "" || fact.Value == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFact, ErrEmptyContent)
	}
	return nil
}

// ValidateRegion validates a Region according to domain rules.
func ValidateRegion(region *Region) error {
	if region == nil {
		return fmt.Errorf("%w: region is nil", ErrInvalidRegion)
	}
	if region.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRegion, ErrEmptyRegionName)
	}
	return nil
}
