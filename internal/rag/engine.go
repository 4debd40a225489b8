package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks concierge-ai/internal/rag Engine,Embedder,Generator

import (
	"context"
	"errors"
	"fmt"

	"concierge-ai/internal/contextutil"
	"concierge-ai/internal/storage"
	"concierge-ai/internal/vectorstore"
)

// ErrGenerationFailure is returned when the generation capability errors.
var ErrGenerationFailure = errors.New("generation failure")

const (
	// DefaultK is the fragment count used when the request does not set one.
	DefaultK = 5
	// MaxK caps the fragment count per request.
	MaxK = 20
)

// Embedder is the embedding capability used for queries. It must be the same
// capability used at index time or similarity ranking is meaningless.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator is the text generation capability.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine answers questions over the indexed corpus.
type Engine interface {
	// Search returns up to k fragments most similar to the query, ordered by
	// descending similarity. An empty index yields an empty slice, not an error.
	Search(ctx context.Context, query string, k int) ([]Scored, error)
	// Ask retrieves relevant fragments and generates an answer.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

type ragEngine struct {
	embedder     Embedder
	vectorStore  vectorstore.VectorStore
	collection   string
	fragmentRepo storage.FragmentStore
	generator    Generator
}

// NewEngine creates a new retrieval engine.
func NewEngine(
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	fragmentRepo storage.FragmentStore,
	generator Generator,
) Engine {
	return &ragEngine{
		embedder:     embedder,
		vectorStore:  vectorStore,
		collection:   collection,
		fragmentRepo: fragmentRepo,
		generator:    generator,
	}
}

// Search embeds the query and resolves the nearest points back to stored
// fragments, preserving the store's descending-similarity order.
func (e *ragEngine) Search(ctx context.Context, query string, k int) ([]Scored, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		k = DefaultK
	}
	if k > MaxK {
		k = MaxK
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := e.vectorStore.Search(ctx, e.collection, embeddings[0], k)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search vector store", "error", err)
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}
	logger.InfoContext(ctx, "vector search completed", "results_count", len(results), "k", k)

	if len(results) == 0 {
		return []Scored{}, nil
	}

	stableIDs := make([]string, 0, len(results))
	for _, result := range results {
		id, ok := result.Meta["stable_id"].(string)
		if !ok {
			logger.WarnContext(ctx, "search result without stable_id payload", "point_id", result.PointID)
			continue
		}
		stableIDs = append(stableIDs, id)
	}

	fragments, err := e.fragmentRepo.GetByStableIDs(ctx, stableIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fragments: %w", err)
	}

	scored := make([]Scored, 0, len(results))
	for _, result := range results {
		id, ok := result.Meta["stable_id"].(string)
		if !ok {
			continue
		}
		frag, ok := fragments[id]
		if !ok {
			// Vector exists without a row. A crashed upsert can leave this;
			// the next reindex heals it.
			logger.WarnContext(ctx, "fragment missing from store", "stable_id", id)
			continue
		}
		scored = append(scored, Scored{Fragment: frag, Score: result.Score})
	}
	return scored, nil
}

// Ask retrieves relevant fragments, composes the prompt, and generates an answer.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "question received", "question", req.Question, "k", req.K)

	scored, err := e.Search(ctx, req.Question, req.K)
	if err != nil {
		return AskResponse{}, err
	}

	if len(scored) == 0 {
		logger.InfoContext(ctx, "no relevant fragments found")
		return AskResponse{
			Answer:     "I couldn't find any relevant information in the documents to answer this question.",
			References: []Reference{},
		}, nil
	}

	texts := make([]string, len(scored))
	references := make([]Reference, len(scored))
	for i, s := range scored {
		texts[i] = s.Fragment.Text
		references[i] = Reference{
			SourcePath: s.Fragment.SourcePath,
			Page:       s.Fragment.Page,
			StableID:   s.Fragment.StableID,
			Score:      s.Score,
		}
	}

	prompt := Compose(req.Question, texts)
	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return AskResponse{}, fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}

	return AskResponse{Answer: answer, References: references}, nil
}
