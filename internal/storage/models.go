package storage

import "time"

// FragmentRecord is a stored document fragment, keyed by its stable id.
// The text lives here; the embedding vector lives in the vector store under
// a point id derived from the same stable id.
type FragmentRecord struct {
	StableID   string
	SourcePath string
	// Page is nil for unpaged sources.
	Page      *int
	SeqInPage int
	Text      string
	CreatedAt time.Time
}
