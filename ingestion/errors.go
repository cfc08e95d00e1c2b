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

package ingestion

import "errors"

var (
	// ErrTextExtraction indicates the raw document could not be turned into text.
	ErrTextExtraction = errors.New("text extraction failed")

	// ErrNoJobSource indicates a job carried neither a buffer nor a file path.
	ErrNoJobSource = errors.New("job has no buffer or file path")

	// ErrQueueFull indicates the job queue is saturated.
	ErrQueueFull = errors.New("ingestion queue is full")

	// ErrQueueClosed indicates the queue no longer accepts jobs.
	ErrQueueClosed = errors.New("ingestion queue is closed")

	// ErrMissingDependency indicates a required collaborator was not provided.
	ErrMissingDependency = errors.New("missing required dependency")
)
