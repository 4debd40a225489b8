package indexer

import (
	"errors"
	"fmt"

	"concierge-ai/internal/corpus"
)

// ErrInvalidConfiguration is returned for chunking parameters that cannot
// terminate or degenerate (overlap >= size, non-positive size).
var ErrInvalidConfiguration = errors.New("invalid chunking configuration")

const (
	// DefaultChunkSize is the target fragment size in runes.
	DefaultChunkSize = 800
	// DefaultChunkOverlap is the number of runes shared between consecutive fragments.
	DefaultChunkOverlap = 80
)

// Split cuts each document's text into overlapping rune windows of the given
// size, preserving source and page metadata per fragment. Splitting is
// deterministic: identical input always yields identical fragments.
//
// Windows advance by size-overlap runes, so consecutive fragments share
// exactly overlap runes. Concatenating each fragment's leading size-overlap
// runes (the whole text for the final fragment) reconstructs the source text.
func Split(docs []corpus.Document, size, overlap int) ([]Fragment, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfiguration, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", ErrInvalidConfiguration, overlap, size)
	}

	var fragments []Fragment
	for _, doc := range docs {
		for _, text := range splitText(doc.Text, size, overlap) {
			fragments = append(fragments, Fragment{
				Text:       text,
				SourcePath: doc.SourcePath,
				Page:       doc.Page,
			})
		}
	}
	return fragments, nil
}

// splitText windows a single text. Empty text yields no fragments.
func splitText(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := size - overlap
	var out []string
	for start := 0; ; start += step {
		end := start + size
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			return out
		}
		out = append(out, string(runes[start:end]))
	}
}
