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


// Hand-written MUS serializers for the domain entities. The shapes are small
// and stable enough that generated code is not worth the build step.

package storage

import (
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/policyatlas/core"
)

// timeZeroSentinel encodes the zero time.Time, which is otherwise not
// representable as a meaningful microsecond offset.
const timeZeroSentinel = math.MinInt64

func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return timeZeroSentinel
	}
	return t.UnixMicro()
}

func decodeTime(v int64) time.Time {
	if v == timeZeroSentinel {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(encodeTime(t))
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(encodeTime(t), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return decodeTime(v), n, nil
}

func sizeVector(v []float32) int {
	size := varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

func marshalVector(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func unmarshalVector(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil || length == 0 {
		return nil, n, err
	}
	v = make([]float32, length)
	for i := 0; i < length; i++ {
		var n1 int
		v[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	return core.ID(v), err
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	size := varint.Uint64.Size(uint64(doc.Id)) +
		varint.Uint64.Size(uint64(doc.RegionId)) +
		ord.String.Size(doc.Title) +
		ord.String.Size(doc.Filename) +
		varint.Int64.Size(doc.SizeBytes) +
		ord.String.Size(string(doc.Status)) +
		sizeTime(doc.UploadedAt) +
		sizeTime(doc.ProcessedAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(doc.Id), buf)
	n += varint.Uint64.Marshal(uint64(doc.RegionId), buf[n:])
	n += ord.String.Marshal(doc.Title, buf[n:])
	n += ord.String.Marshal(doc.Filename, buf[n:])
	n += varint.Int64.Marshal(doc.SizeBytes, buf[n:])
	n += ord.String.Marshal(string(doc.Status), buf[n:])
	n += marshalTime(doc.UploadedAt, buf[n:])
	marshalTime(doc.ProcessedAt, buf[n:])
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc := &core.Document{}

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	doc.Id = core.ID(id)

	regionID, n1, err := varint.Uint64.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}
	doc.RegionId = core.ID(regionID)

	doc.Title, n1, err = ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	doc.Filename, n1, err = ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	doc.SizeBytes, n1, err = varint.Int64.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	status, n1, err := ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}
	doc.Status = core.DocumentStatus(status)

	doc.UploadedAt, n1, err = unmarshalTime(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	doc.ProcessedAt, _, err = unmarshalTime(data[n:])
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	size := varint.Uint64.Size(uint64(chunk.Id)) +
		varint.Uint64.Size(uint64(chunk.DocumentId)) +
		ord.String.Size(chunk.Content) +
		varint.Int.Size(chunk.PageNumber) +
		varint.Int.Size(chunk.Index) +
		sizeVector(chunk.Vector)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(chunk.Id), buf)
	n += varint.Uint64.Marshal(uint64(chunk.DocumentId), buf[n:])
	n += ord.String.Marshal(chunk.Content, buf[n:])
	n += varint.Int.Marshal(chunk.PageNumber, buf[n:])
	n += varint.Int.Marshal(chunk.Index, buf[n:])
	marshalVector(chunk.Vector, buf[n:])
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk := &core.Chunk{}

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	chunk.Id = core.ID(id)

	docID, n1, err := varint.Uint64.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}
	chunk.DocumentId = core.ID(docID)

	chunk.Content, n1, err = ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	chunk.PageNumber, n1, err = varint.Int.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	chunk.Index, n1, err = varint.Int.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	chunk.Vector, _, err = unmarshalVector(data[n:])
	if err != nil {
		return nil, err
	}

	return chunk, nil
}

// MarshalFact serializes a Fact to bytes.
func MarshalFact(fact *core.Fact) []byte {
	size := varint.Uint64.Size(uint64(fact.Id)) +
		varint.Uint64.Size(uint64(fact.DocumentId)) +
		varint.Uint64.Size(uint64(fact.RegionId)) +
		ord.String.Size(string(fact.Category)) +
		ord.String.Size(fact.Field) +
		ord.String.Size(fact.Value) +
		raw.Float32.Size(fact.Confidence) +
		varint.Int.Size(fact.PageNumber) +
		sizeTime(fact.InsertedAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(fact.Id), buf)
	n += varint.Uint64.Marshal(uint64(fact.DocumentId), buf[n:])
	n += varint.Uint64.Marshal(uint64(fact.RegionId), buf[n:])
	n += ord.String.Marshal(string(fact.Category), buf[n:])
	n += ord.String.Marshal(fact.Field, buf[n:])
	n += ord.String.Marshal(fact.Value, buf[n:])
	n += raw.Float32.Marshal(fact.Confidence, buf[n:])
	n += varint.Int.Marshal(fact.PageNumber, buf[n:])
	marshalTime(fact.InsertedAt, buf[n:])
	return buf
}

// UnmarshalFact deserializes a Fact from bytes.
func UnmarshalFact(data []byte) (*core.Fact, error) {
	fact := &core.Fact{}

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	fact.Id = core.ID(id)

	docID, n1, err := varint.Uint64.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}
	fact.DocumentId = core.ID(docID)

	regionID, n1, err := varint.Uint64.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}
	fact.RegionId = core.ID(regionID)

	category, n1, err := ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}
	fact.Category = core.FactCategory(category)

	fact.Field, n1, err = ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	fact.Value, n1, err = ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	fact.Confidence, n1, err = raw.Float32.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	fact.PageNumber, n1, err = varint.Int.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	fact.InsertedAt, _, err = unmarshalTime(data[n:])
	if err != nil {
		return nil, err
	}

	return fact, nil
}

// MarshalRegion serializes a Region to bytes.
func MarshalRegion(region *core.Region) []byte {
	size := varint.Uint64.Size(uint64(region.Id)) +
		ord.String.Size(region.Name) +
		ord.String.Size(region.Code) +
		sizeTime(region.InsertedAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(region.Id), buf)
	n += ord.String.Marshal(region.Name, buf[n:])
	n += ord.String.Marshal(region.Code, buf[n:])
	marshalTime(region.InsertedAt, buf[n:])
	return buf
}

// UnmarshalRegion deserializes a Region from bytes.
func UnmarshalRegion(data []byte) (*core.Region, error) {
	region := &core.Region{}

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	region.Id = core.ID(id)

	var n1 int
	region.Name, n1, err = ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	region.Code, n1, err = ord.String.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, err
	}

	region.InsertedAt, _, err = unmarshalTime(data[n:])
	if err != nil {
		return nil, err
	}

	return region, nil
}
