package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"concierge-ai/internal/contextutil"
	"concierge-ai/internal/rag"
)

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{ragEngine: ragEngine}
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

// AskResponse represents the HTTP response payload for questions.
type AskResponse struct {
	Answer     string          `json:"answer"`
	References []rag.Reference `json:"references"`
}

// ServeHTTP handles HTTP requests for question answering.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if req.K < 0 {
		req.K = 0
	}

	resp, err := h.ragEngine.Ask(ctx, rag.AskRequest{Question: req.Question, K: req.K})
	if err != nil {
		if errors.Is(err, rag.ErrGenerationFailure) {
			logger.ErrorContext(ctx, "generation failed", "error", err)
			writeError(w, http.StatusBadGateway, "Generation service unavailable")
			return
		}
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{Answer: resp.Answer, References: resp.References})
}
