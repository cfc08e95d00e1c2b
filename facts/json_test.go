package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		var payload factPayload
		err := ExtractJSONObject(`{"facts": [{"category": "billing", "field": "parity", "value": "required"}]}`, &payload)
		require.NoError(t, err)
		require.Len(t, payload.Facts, 1)
		assert.Equal(t, "billing", payload.Facts[0].Category)
	})

	t.Run("object surrounded by prose", func(t *testing.T) {
		raw := `Here are the extracted facts:

{"facts": [{"category": "consent", "field": "written", "value": "yes", "confidence": 0.9, "page": 4}]}

Let me know if you need more.`
		var payload factPayload
		err := ExtractJSONObject(raw, &payload)
		require.NoError(t, err)
		require.Len(t, payload.Facts, 1)
		assert.Equal(t, "written", payload.Facts[0].Field)
	})

	t.Run("object inside code fence", func(t *testing.T) {
		raw := "```json\n{\"facts\": [{\"category\": \"modality\", \"field\": \"audio_only\", \"value\": \"covered\"}]}\n```"
		var payload factPayload
		err := ExtractJSONObject(raw, &payload)
		require.NoError(t, err)
		require.Len(t, payload.Facts, 1)
	})

	t.Run("no braces", func(t *testing.T) {
		var payload factPayload
		err := ExtractJSONObject("I could not find any facts in this document.", &payload)
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})

	t.Run("malformed json inside braces", func(t *testing.T) {
		var payload factPayload
		err := ExtractJSONObject(`{"facts": [`+"\n"+`}`, &payload)
		assert.Error(t, err)
	})

	t.Run("empty response", func(t *testing.T) {
		var payload factPayload
		err := ExtractJSONObject("", &payload)
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})
}
