package indexer

// Fragment is a bounded slice of a document's text, with overlap to preserve
// context across fragment boundaries.
type Fragment struct {
	Text       string
	SourcePath string
	// Page is the zero-based page number, nil for unpaged sources.
	Page *int
	// SeqInPage is the fragment's position within its (source, page) group.
	SeqInPage int
	// StableID is "source_path:page:seq". It is the persisted key for the
	// fragment in both SQLite and the vector store payload, so its format
	// must never change.
	StableID string
}

// Stats reports the outcome of an upsert batch.
type Stats struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}
