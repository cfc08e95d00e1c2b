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


// Package ai provides abstractions for the AI services used in policyatlas.
//
// This package defines interfaces for text embedding and text generation.
// It follows the dependency inversion principle, allowing the core domain
// and business logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces free text from an ordered message list
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/ollama: Production implementation speaking to a local Ollama server
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Production constructors (ollama.NewProvider, ollama.NewEmbedder, etc.)
// return interface types to enforce abstraction. Mock constructors return
// concrete types to enable behavior injection and call-count assertions.
//
// # Failure Model
//
// Both providers sit across a local network boundary and are fallible and
// slow. Every provider error is wrapped in ErrEmbeddingProvider or
// ErrGenerationProvider so callers can classify failures without coupling
// to the underlying client library.
package ai
