package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks concierge-ai/internal/indexer Embedder,Loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"concierge-ai/internal/contextutil"
	"concierge-ai/internal/corpus"
	"concierge-ai/internal/storage"
	"concierge-ai/internal/vectorstore"
)

// ErrEmbeddingFailure is returned when the embedding capability fails for a
// batch. The whole batch is abandoned; nothing is inserted.
var ErrEmbeddingFailure = errors.New("embedding failure")

// Embedder is the embedding capability consumed by the pipeline.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Loader yields documents from the configured source.
type Loader interface {
	Load(ctx context.Context) ([]corpus.Document, error)
}

// Pipeline orchestrates incremental indexing of the corpus into SQLite and
// the vector store.
type Pipeline struct {
	loader       Loader
	fragmentRepo storage.FragmentStore
	embedder     Embedder
	vectorStore  vectorstore.VectorStore
	collection   string
	chunkSize    int
	chunkOverlap int
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	loader Loader,
	fragmentRepo storage.FragmentStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunkSize, chunkOverlap int,
) *Pipeline {
	return &Pipeline{
		loader:       loader,
		fragmentRepo: fragmentRepo,
		embedder:     embedder,
		vectorStore:  vectorStore,
		collection:   collection,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Reindex loads the corpus, splits it, and upserts the fragments.
func (p *Pipeline) Reindex(ctx context.Context) (Stats, error) {
	docs, err := p.loader.Load(ctx)
	if err != nil {
		return Stats{}, err
	}

	fragments, err := Split(docs, p.chunkSize, p.chunkOverlap)
	if err != nil {
		return Stats{}, err
	}

	return p.Upsert(ctx, fragments)
}

// Upsert assigns stable ids, diffs them against the store, embeds only the
// new fragments, and inserts them as one batch. Fragments whose id already
// exists are skipped untouched; even if their text changed upstream, the
// stored entry is never re-embedded (ids encode position, not content).
func (p *Pipeline) Upsert(ctx context.Context, fragments []Fragment) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	fragments = AssignIDs(fragments)

	existing, err := p.fragmentRepo.ExistingIDs(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load existing ids: %w", err)
	}
	logger.InfoContext(ctx, "existing fragments in store", "count", len(existing))

	var newFragments []Fragment
	for _, frag := range fragments {
		if _, ok := existing[frag.StableID]; !ok {
			newFragments = append(newFragments, frag)
		}
	}

	stats := Stats{Skipped: len(fragments) - len(newFragments)}
	if len(newFragments) == 0 {
		logger.InfoContext(ctx, "no new fragments to index", "skipped", stats.Skipped)
		return stats, nil
	}

	texts := make([]string, len(newFragments))
	for i, frag := range newFragments {
		texts[i] = frag.Text
	}

	// All embeddings happen before any write: an embedding error anywhere in
	// the batch aborts the whole upsert with zero inserts.
	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return Stats{Skipped: stats.Skipped}, fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}
	if len(embeddings) != len(newFragments) {
		return Stats{Skipped: stats.Skipped}, fmt.Errorf("%w: expected %d embeddings, got %d",
			ErrEmbeddingFailure, len(newFragments), len(embeddings))
	}

	points := make([]vectorstore.Point, len(newFragments))
	records := make([]*storage.FragmentRecord, len(newFragments))
	for i, frag := range newFragments {
		points[i] = vectorstore.Point{
			ID:  PointID(frag.StableID),
			Vec: embeddings[i],
			Meta: map[string]any{
				"stable_id":   frag.StableID,
				"source_path": frag.SourcePath,
				"seq_in_page": frag.SeqInPage,
			},
		}
		if frag.Page != nil {
			points[i].Meta["page"] = *frag.Page
		}

		records[i] = &storage.FragmentRecord{
			StableID:   frag.StableID,
			SourcePath: frag.SourcePath,
			Page:       frag.Page,
			SeqInPage:  frag.SeqInPage,
			Text:       frag.Text,
		}
	}

	// Vectors go first: point ids are deterministic, so if the SQLite batch
	// below fails, a retry re-upserts the same points idempotently. Writing
	// SQLite first would leave ids that the diff skips forever without
	// vectors behind them.
	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return Stats{Skipped: stats.Skipped}, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	if err := p.fragmentRepo.InsertBatch(ctx, records); err != nil {
		return Stats{Skipped: stats.Skipped}, fmt.Errorf("failed to insert fragments: %w", err)
	}

	stats.Inserted = len(newFragments)
	logger.InfoContext(ctx, "upsert completed", "inserted", stats.Inserted, "skipped", stats.Skipped)
	return stats, nil
}

// PointID derives the vector store point id for a stable fragment id.
// Qdrant point ids must be UUIDs, so the stable id is hashed into a
// name-based UUID, which keeps re-upserts idempotent.
func PointID(stableID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(stableID)).String()
}
