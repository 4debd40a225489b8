package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	rag_mocks "concierge-ai/internal/rag/mocks"
	vectorstore_mocks "concierge-ai/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

func testDeps(ctrl *gomock.Controller) *Deps {
	return &Deps{
		VectorStore: vectorstore_mocks.NewMockVectorStore(ctrl),
		Collection:  "test-collection",
		RAGEngine:   rag_mocks.NewMockEngine(ctrl),
	}
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(testDeps(ctrl))
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := testDeps(ctrl)
	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
		{"ask rejects GET", http.MethodGet, "/api/ask", http.StatusMethodNotAllowed},
		{"appointments rejects GET", http.MethodGet, "/api/appointments", http.StatusMethodNotAllowed},
		{"chat rejects GET", http.MethodGet, "/api/chat", http.StatusMethodNotAllowed},
		{"index rejects GET", http.MethodGet, "/api/index", http.StatusMethodNotAllowed},
		{"preflight handled", http.MethodOptions, "/api/chat", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}
