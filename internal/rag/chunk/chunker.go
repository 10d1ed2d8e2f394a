// Package chunk splits normalized text into bounded word windows.
package chunk

import (
	"iter"
	"strings"

	"github.com/nsharath/TravelRAG/internal/domain/commonModels"
)

// Split cuts text into contiguous, non-overlapping windows of up to size
// words each, preserving the original word order. The final window may be
// shorter. The sequence is lazy and restartable; ranging over it twice
// produces the same chunks. Empty input yields no chunks.
//
// Invariant: joining every chunk's words in order reproduces the word
// sequence of text exactly.
func Split(text string, size int) iter.Seq[commonModels.Chunk] {
	return func(yield func(commonModels.Chunk) bool) {
		if size <= 0 {
			return
		}
		words := strings.Fields(text)
		order := 0
		for i := 0; i < len(words); i += size {
			end := i + size
			if end > len(words) {
				end = len(words)
			}
			c := commonModels.Chunk{
				Text:  strings.Join(words[i:end], " "),
				Order: order,
			}
			if !yield(c) {
				return
			}
			order++
		}
	}
}

// Count returns the number of chunks Split would produce.
func Count(text string, size int) int {
	if size <= 0 {
		return 0
	}
	n := len(strings.Fields(text))
	return (n + size - 1) / size
}
