package chunker

import (
	"math"
	"strings"
)

// Fixed windowing configuration. The stride is WindowSize - Overlap, so
// consecutive windows share 200 characters of context.
const (
	// WindowSize is the length of each text window in characters.
	WindowSize = 1000
	// Overlap is the number of characters shared between adjacent windows.
	Overlap = 200
)

// Window is one ordered text window emitted by Split.
type Window struct {
	Content    string
	PageNumber int // estimated, see Split
	Index      int // zero-based, strictly increasing
}

// Split cuts raw extracted text into fixed-size overlapping windows.
//
// Starting at offset 0, each window covers text[offset : offset+WindowSize]
// (trimmed of surrounding whitespace) and the offset advances by
// WindowSize-Overlap until it passes the end of the text. The final window
// may be shorter than WindowSize; empty text yields no windows.
//
// The page number is a linear interpolation over the character offset:
// ceil(offset/len(text) * pageCount). It is an approximation, not true
// pagination, and citations built from it carry approximate page numbers.
//
// Split is pure and deterministic: identical input always yields an
// identical window list.
func Split(text string, pageCount int) []Window {
	if len(text) == 0 {
		return nil
	}
	if pageCount < 1 {
		pageCount = 1
	}

	var windows []Window
	index := 0
	for offset := 0; offset < len(text); offset += WindowSize - Overlap {
		end := offset + WindowSize
		if end > len(text) {
			end = len(text)
		}

		page := int(math.Ceil(float64(offset) / float64(len(text)) * float64(pageCount)))

		windows = append(windows, Window{
			Content:    strings.TrimSpace(text[offset:end]),
			PageNumber: page,
			Index:      index,
		})
		index++
	}

	return windows
}
