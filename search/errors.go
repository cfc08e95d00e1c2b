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

package search

import "errors"

var (
	// ErrVectorDimensionMismatch indicates a query vector and a stored chunk
	// vector have different lengths. This points at mixed embedding models
	// and is never silently skipped.
	ErrVectorDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyQuery indicates a search was issued with no query text.
	ErrEmptyQuery = errors.New("query must not be empty")
)
