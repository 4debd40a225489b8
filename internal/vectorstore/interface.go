package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks concierge-ai/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a single nearest-neighbor hit.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// EnsureCollection creates the collection if missing and validates the
	// vector size if it already exists.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Upsert inserts or updates points in the collection. Point ids are
	// deterministic, so re-upserting the same points is idempotent.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to k nearest points ordered by descending similarity.
	// An empty collection yields an empty result, not an error; k larger than
	// the collection returns everything.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)
}
