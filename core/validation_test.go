package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocument(t *testing.T) {
	valid := func() *Document {
		return &Document{
			RegionId:  IDFromName("California"),
			Title:     "California Telehealth Laws",
			Filename:  "ca-telehealth.pdf",
			SizeBytes: 1024,
			Status:    StatusProcessing,
		}
	}

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(valid()))
	})

	t.Run("nil document", func(t *testing.T) {
		err := ValidateDocument(nil)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("empty filename", func(t *testing.T) {
		doc := valid()
		doc.Filename = ""
		assert.ErrorIs(t, ValidateDocument(doc), ErrInvalidDocument)
	})

	t.Run("unknown status", func(t *testing.T) {
		doc := valid()
		doc.Status = "pending"
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestValidateChunk(t *testing.T) {
	valid := func() *Chunk {
		return &Chunk{
			DocumentId: 42,
			Content:    "Live video is reimbursed at parity.",
			PageNumber: 3,
			Index:      0,
		}
	}

	t.Run("valid chunk", func(t *testing.T) {
		assert.NoError(t, ValidateChunk(valid()))
	})

	t.Run("valid chunk without vector", func(t *testing.T) {
		chunk := valid()
		chunk.Vector = nil
		assert.NoError(t, ValidateChunk(chunk))
	})

	t.Run("nil chunk", func(t *testing.T) {
		assert.ErrorIs(t, ValidateChunk(nil), ErrInvalidChunk)
	})

	t.Run("empty content", func(t *testing.T) {
		chunk := valid()
		chunk.Content = ""
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("missing document reference", func(t *testing.T) {
		chunk := valid()
		chunk.DocumentId = 0
		assert.ErrorIs(t, ValidateChunk(chunk), ErrInvalidChunk)
	})

	t.Run("negative index", func(t *testing.T) {
		chunk := valid()
		chunk.Index = -1
		assert.ErrorIs(t, ValidateChunk(chunk), ErrInvalidChunk)
	})
}

func TestValidateFact(t *testing.T) {
	valid := func() *Fact {
		return &Fact{
			DocumentId: 42,
			RegionId:   IDFromName("California"),
			Category:   CategoryBilling,
			Field:      "facility_fee",
			Value:      "Originating site facility fee allowed",
			Confidence: 0.9,
			PageNumber: 12,
		}
	}

	t.Run("valid fact", func(t *testing.T) {
		assert.NoError(t, ValidateFact(valid()))
	})

	t.Run("nil fact", func(t *testing.T) {
		assert.ErrorIs(t, ValidateFact(nil), ErrInvalidFact)
	})

	t.Run("category outside taxonomy", func(t *testing.T) {
		fact := valid()
		fact.Category = "reimbursement"
		err := ValidateFact(fact)
		assert.ErrorIs(t, err, ErrInvalidFact)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("confidence bounds", func(t *testing.T) {
		for _, conf := range []float32{-0.1, 1.1, 2} {
			fact := valid()
			fact.Confidence = conf
			assert.ErrorIs(t, ValidateFact(fact), ErrInvalidConfidence)
		}
		for _, conf := range []float32{0, 0.5, 1} {
			fact := valid()
			fact.Confidence = conf
			assert.NoError(t, ValidateFact(fact))
		}
	})

	t.Run("empty field or value", func(t *testing.T) {
		fact := valid()
		fact.Field = ""
		assert.ErrorIs(t, ValidateFact(fact), ErrEmptyContent)

		fact = valid()
		fact.Value = ""
		assert.ErrorIs(t, ValidateFact(fact), ErrEmptyContent)
	})
}

func TestValidateRegion(t *testing.T) {
	t.Run("valid region", func(t *testing.T) {
		assert.NoError(t, ValidateRegion(&Region{Id: IDFromName("Texas"), Name: "Texas", Code: "TX"}))
	})

	t.Run("nil region", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRegion(nil), ErrInvalidRegion)
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateRegion(&Region{Code: "TX"})
		assert.ErrorIs(t, err, ErrEmptyRegionName)
	})
}
