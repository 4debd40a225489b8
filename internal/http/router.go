package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"concierge-ai/internal/handlers"
	"concierge-ai/internal/indexer"
	"concierge-ai/internal/notify"
	"concierge-ai/internal/rag"
	"concierge-ai/internal/schedule"
	"concierge-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB          *sql.DB
	VectorStore vectorstore.VectorStore
	Collection  string
	RAGEngine   rag.Engine
	Pipeline    *indexer.Pipeline
	Booking     *schedule.Engine
	Notifier    notify.Sender
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.RAGEngine)
	appointmentsHandler := handlers.NewAppointmentsHandler(deps.Booking, deps.Notifier)
	chatHandler := handlers.NewChatHandler(deps.RAGEngine, deps.Booking, deps.Notifier)
	indexHandler := handlers.NewIndexHandler(deps.Pipeline)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/appointments", appointmentsHandler)
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodPost, "/index", indexHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
