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


// Package storage provides the record store abstraction for policyatlas.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, plus the MUS serialization used to
// persist domain entities. The badger sub-package provides the production
// backend; tests use its in-memory mode.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and keep
// alternative backends swappable:
//
//	repo, err := badger.NewDocumentRepository(backend) // storage.DocumentRepository
//
// # Write Discipline
//
// The ingestion worker is the only writer of Document, Chunk, and Fact rows,
// and it writes chunks in single all-or-nothing batches. Search never
// mutates state, so readers need no coordination beyond badger's snapshot
// transactions.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
