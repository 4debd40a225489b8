package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"concierge-ai/internal/contextutil"
	"concierge-ai/internal/corpus"
	"concierge-ai/internal/indexer"
)

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	pipeline *indexer.Pipeline
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(pipeline *indexer.Pipeline) *IndexHandler {
	return &IndexHandler{pipeline: pipeline}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string         `json:"message"`
	Status  string         `json:"status"`
	Stats   *indexer.Stats `json:"stats,omitempty"`
}

// ServeHTTP handles HTTP requests for triggering re-indexing. By default the
// run happens in the background; pass ?wait=true to block and get the stats.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		stats, err := h.pipeline.Reindex(ctx)
		if err != nil {
			h.writeReindexError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, IndexResponse{
			Message: "Re-indexing completed",
			Status:  "done",
			Stats:   &stats,
		})
		return
	}

	logger.InfoContext(ctx, "re-indexing triggered via API")

	// Background context so indexing survives the HTTP request.
	go func() {
		indexCtx := contextutil.WithLogger(context.Background(), logger)
		stats, err := h.pipeline.Reindex(indexCtx)
		if err != nil {
			logger.ErrorContext(indexCtx, "re-indexing failed", "error", err)
			return
		}
		logger.InfoContext(indexCtx, "re-indexing completed", "inserted", stats.Inserted, "skipped", stats.Skipped)
	}()

	writeJSON(w, http.StatusAccepted, IndexResponse{
		Message: "Re-indexing started",
		Status:  "accepted",
	})
}

func (h *IndexHandler) writeReindexError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("re-indexing failed", "error", err)
	switch {
	case errors.Is(err, corpus.ErrSourceUnavailable):
		writeError(w, http.StatusNotFound, "Corpus directory is unavailable")
	case errors.Is(err, indexer.ErrEmbeddingFailure):
		writeError(w, http.StatusBadGateway, "Embedding service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "Re-indexing failed")
	}
}
