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

package badger

import (
	"encoding/binary"

	"github.com/poiesic/policyatlas/core"
)

// Key prefixes. Primary records carry the serialized entity as the value;
// index keys carry the primary ID (or nothing when the key itself encodes
// the target) and exist for ordered prefix scans.
const (
	prefixDocument = "doc:"
	prefixChunk    = "chu:"
	prefixFact     = "fac:"
	prefixRegion   = "reg:"

	// Composite indexes. IDs inside composite keys are big-endian so that
	// a prefix scan yields entries in numeric order.
	prefixChunkByDocument = "chud:"
	prefixFactByDocument  = "facd:"
	prefixFactByRegion    = "facr:"
)

// Sequence names for ID generation. Regions need none: their IDs derive
// from the region name.
const (
	seqDocument = "docseq"
	seqChunk    = "chuseq"
	seqFact     = "facseq"
)

func appendID(key []byte, id core.ID) []byte {
	return binary.BigEndian.AppendUint64(key, uint64(id))
}

func documentKey(id core.ID) []byte {
	return appendID([]byte(prefixDocument), id)
}

func chunkKey(id core.ID) []byte {
	return appendID([]byte(prefixChunk), id)
}

func factKey(id core.ID) []byte {
	return appendID([]byte(prefixFact), id)
}

func regionKey(id core.ID) []byte {
	return appendID([]byte(prefixRegion), id)
}

// chunkByDocumentKey orders chunks within a document by their index, so a
// prefix scan over a document returns chunks in sequence order.
func chunkByDocumentKey(documentID core.ID, index int, chunkID core.ID) []byte {
	key := appendID([]byte(prefixChunkByDocument), documentID)
	key = binary.BigEndian.AppendUint64(key, uint64(index))
	return appendID(key, chunkID)
}

func chunkByDocumentPrefix(documentID core.ID) []byte {
	return appendID([]byte(prefixChunkByDocument), documentID)
}

func factByDocumentKey(documentID, factID core.ID) []byte {
	return appendID(appendID([]byte(prefixFactByDocument), documentID), factID)
}

func factByDocumentPrefix(documentID core.ID) []byte {
	return appendID([]byte(prefixFactByDocument), documentID)
}

func factByRegionKey(regionID, factID core.ID) []byte {
	return appendID(appendID([]byte(prefixFactByRegion), regionID), factID)
}

func factByRegionPrefix(regionID core.ID) []byte {
	return appendID([]byte(prefixFactByRegion), regionID)
}
