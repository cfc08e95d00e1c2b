package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextExtractor(t *testing.T) {
	extractor := PlainText{}

	t.Run("single page", func(t *testing.T) {
		text, pages, err := extractor.Extract([]byte("telehealth is covered"))
		require.NoError(t, err)
		assert.Equal(t, "telehealth is covered", text)
		assert.Equal(t, 1, pages)
	})

	t.Run("form feeds mark page boundaries", func(t *testing.T) {
		text, pages, err := extractor.Extract([]byte("page one\fpage two\fpage three"))
		require.NoError(t, err)
		assert.Equal(t, 3, pages)
		assert.NotContains(t, text, "\f")
	})

	t.Run("empty payload", func(t *testing.T) {
		text, pages, err := extractor.Extract(nil)
		require.NoError(t, err)
		assert.Empty(t, text)
		assert.Equal(t, 1, pages)
	})

	t.Run("invalid utf-8 rejected", func(t *testing.T) {
		_, _, err := extractor.Extract([]byte{0xff, 0xfe, 0xfd})
		assert.Error(t, err)
	})
}
