package corpus

// Document is a raw source unit loaded from the corpus directory.
// It is immutable once loaded; the indexer splits it into fragments.
type Document struct {
	// SourcePath is the path relative to the corpus root, with forward slashes.
	SourcePath string
	// Page is the zero-based page number for paged formats (PDF).
	// It is nil for single-body formats (markdown, plain text).
	Page *int
	// Text is the extracted plain text of the document unit.
	Text string
}
