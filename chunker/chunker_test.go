package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repeatTo builds a deterministic test string of exactly n characters with
// no whitespace, so window trimming cannot hide coverage gaps.
func repeatTo(n int) string {
	var b strings.Builder
	alphabet := "abcdefghijklmnopqrstuvwxyz0123456789"
	for b.Len() < n {
		b.WriteString(alphabet)
	}
	return b.String()[:n]
}

func TestSplit_EmptyText(t *testing.T) {
	assert.Nil(t, Split("", 10))
}

func TestSplit_ShortText(t *testing.T) {
	windows := Split("short policy text", 1)
	require.Len(t, windows, 1)
	assert.Equal(t, "short policy text", windows[0].Content)
	assert.Equal(t, 0, windows[0].Index)
	assert.Equal(t, 0, windows[0].PageNumber)
}

func TestSplit_ExactWindowSize(t *testing.T) {
	text := repeatTo(WindowSize)
	windows := Split(text, 1)

	// Offset 800 is still < len(text), so a trailing overlap-only window
	// is emitted after the full one.
	require.Len(t, windows, 2)
	assert.Equal(t, text, windows[0].Content)
	assert.Equal(t, text[WindowSize-Overlap:], windows[1].Content)
}

func TestSplit_WindowAndStrideGeometry(t *testing.T) {
	text := repeatTo(5000)
	windows := Split(text, 10)

	stride := WindowSize - Overlap
	for i, w := range windows {
		assert.Equal(t, i, w.Index, "indices increment from zero")
		assert.LessOrEqual(t, len(w.Content), WindowSize)

		offset := i * stride
		end := offset + WindowSize
		if end > len(text) {
			end = len(text)
		}
		assert.Equal(t, text[offset:end], w.Content)
	}

	// Last window must reach the end of the text.
	last := windows[len(windows)-1]
	assert.True(t, strings.HasSuffix(text, last.Content))
}

func TestSplit_FullCoverage(t *testing.T) {
	// Every character of the input must appear in at least one window.
	// With stride 800 and window 1000 the windows overlap, so concatenating
	// each window's fresh portion reconstructs the original text.
	text := repeatTo(3777)
	windows := Split(text, 4)

	var rebuilt strings.Builder
	for i, w := range windows {
		if i == 0 {
			rebuilt.WriteString(w.Content)
			continue
		}
		if len(w.Content) > Overlap {
			rebuilt.WriteString(w.Content[Overlap:])
		}
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplit_Deterministic(t *testing.T) {
	text := repeatTo(2400)
	first := Split(text, 7)
	second := Split(text, 7)
	assert.Equal(t, first, second)
}

func TestSplit_PageEstimation(t *testing.T) {
	text := repeatTo(4000)
	windows := Split(text, 10)

	prev := 0
	for _, w := range windows {
		assert.GreaterOrEqual(t, w.PageNumber, prev, "page estimates never decrease")
		assert.LessOrEqual(t, w.PageNumber, 10)
		prev = w.PageNumber
	}

	// ceil(offset/len * pages) for the second window: ceil(800/4000*10) = 2.
	assert.Equal(t, 2, windows[1].PageNumber)
}

func TestSplit_TrimsWhitespace(t *testing.T) {
	windows := Split("   surrounded by spaces   ", 1)
	require.Len(t, windows, 1)
	assert.Equal(t, "surrounded by spaces", windows[0].Content)
}

func TestSplit_PageCountFloor(t *testing.T) {
	// A non-positive page count is treated as a single page.
	windows := Split(repeatTo(1500), 0)
	for _, w := range windows {
		assert.LessOrEqual(t, w.PageNumber, 1)
	}
}
