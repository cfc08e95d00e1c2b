package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/policyatlas/core"
)

func TestIDRoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 42, core.IDFromName("California")} {
		data := MarshalID(id)
		got, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	uploaded := time.Date(2025, 7, 18, 9, 30, 0, 0, time.UTC)

	t.Run("processing document with zero ProcessedAt", func(t *testing.T) {
		doc := &core.Document{
			Id:         7,
			RegionId:   core.IDFromName("California"),
			Title:      "California Telehealth Laws",
			Filename:   "CCHP California Telehealth Laws Report.pdf",
			SizeBytes:  204800,
			Status:     core.StatusProcessing,
			UploadedAt: uploaded,
		}

		got, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Equal(t, doc, got)
		assert.True(t, got.ProcessedAt.IsZero())
	})

	t.Run("completed document", func(t *testing.T) {
		doc := &core.Document{
			Id:          8,
			RegionId:    core.IDFromName("Nevada"),
			Title:       "Nevada Telehealth Laws",
			Filename:    "nv.pdf",
			SizeBytes:   1,
			Status:      core.StatusCompleted,
			UploadedAt:  uploaded,
			ProcessedAt: uploaded.Add(3 * time.Minute),
		}

		got, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})
}

func TestChunkRoundTrip(t *testing.T) {
	t.Run("chunk with vector", func(t *testing.T) {
		chunk := &core.Chunk{
			Id:         11,
			DocumentId: 7,
			Content:    "Live video telehealth is reimbursed at parity with in-person care.",
			PageNumber: 4,
			Index:      2,
			Vector:     []float32{0.25, -0.5, 0.125, 1},
		}

		got, err := UnmarshalChunk(MarshalChunk(chunk))
		require.NoError(t, err)
		assert.Equal(t, chunk, got)
	})

	t.Run("chunk without vector", func(t *testing.T) {
		chunk := &core.Chunk{
			Id:         12,
			DocumentId: 7,
			Content:    "Consent must be documented before the first visit.",
			Index:      3,
		}

		got, err := UnmarshalChunk(MarshalChunk(chunk))
		require.NoError(t, err)
		assert.Equal(t, chunk, got)
		assert.Nil(t, got.Vector)
	})
}

func TestFactRoundTrip(t *testing.T) {
	fact := &core.Fact{
		Id:         3,
		DocumentId: 7,
		RegionId:   core.IDFromName("California"),
		Category:   core.CategoryBilling,
		Field:      "facility_fee",
		Value:      "Originating site facility fee allowed with modifier 95",
		Confidence: 0.95,
		PageNumber: 12,
		InsertedAt: time.Date(2025, 7, 18, 10, 0, 0, 0, time.UTC),
	}

	got, err := UnmarshalFact(MarshalFact(fact))
	require.NoError(t, err)
	assert.Equal(t, fact, got)
}

func TestRegionRoundTrip(t *testing.T) {
	region := &core.Region{
		Id:         core.IDFromName("District of Columbia"),
		Name:       "District of Columbia",
		Code:       "DC",
		InsertedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	got, err := UnmarshalRegion(MarshalRegion(region))
	require.NoError(t, err)
	assert.Equal(t, region, got)
}

func TestUnmarshalTruncatedData(t *testing.T) {
	chunk := &core.Chunk{Id: 1, DocumentId: 2, Content: "some content", Index: 0}
	data := MarshalChunk(chunk)

	_, err := UnmarshalChunk(data[:3])
	assert.Error(t, err)
}
