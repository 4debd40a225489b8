package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"concierge-ai/internal/calendar"
	"concierge-ai/internal/config"
	"concierge-ai/internal/corpus"
	"concierge-ai/internal/http"
	"concierge-ai/internal/indexer"
	"concierge-ai/internal/llm"
	"concierge-ai/internal/notify"
	"concierge-ai/internal/rag"
	"concierge-ai/internal/schedule"
	"concierge-ai/internal/storage"
	"concierge-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	fragmentRepo := storage.NewFragmentRepo(db)
	metaRepo := storage.NewMetaRepo(db)

	ctx := context.Background()

	// Refuse to run against an index built with a different embedding model
	if err := metaRepo.PinEmbeddingModel(ctx, cfg.EmbeddingModelName); err != nil {
		log.Fatalf("Embedding model check failed: %v", err)
	}

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize, cfg.EmbeddingTimeout)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.QdrantVectorSize)

	// Create indexing pipeline over the document corpus
	loader := corpus.NewLoader(cfg.CorpusPath)
	pipeline := indexer.NewPipeline(
		loader,
		fragmentRepo,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		cfg.ChunkSize,
		cfg.ChunkOverlap,
	)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout)

	// Create RAG engine
	ragEngine := rag.NewEngine(
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		fragmentRepo,
		llmClient,
	)
	slog.Info("RAG engine initialized")

	// Create booking engine over Google Calendar
	calendarService, err := calendar.NewService(ctx, cfg.CredentialsPath, cfg.TokenPath, cfg.CalendarID, cfg.CalendarTimeout)
	if err != nil {
		log.Fatalf("Failed to create calendar service: %v", err)
	}
	bookingEngine := schedule.NewEngine(calendarService)
	slog.Info("Booking engine initialized", "calendar", cfg.CalendarID)

	notifier := notify.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword)

	// Create router with dependencies
	deps := &http.Deps{
		DB:          db,
		VectorStore: vectorStore,
		Collection:  cfg.QdrantCollection,
		RAGEngine:   ragEngine,
		Pipeline:    pipeline,
		Booking:     bookingEngine,
		Notifier:    notifier,
	}
	router := http.NewRouter(deps)

	// Start indexing in background after router is ready
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing of corpus", "path", cfg.CorpusPath)
		stats, err := pipeline.Reindex(indexCtx)
		if err != nil {
			slog.Error("Indexing completed with errors", "error", err)
			return
		}
		slog.Info("Indexing completed", "inserted", stats.Inserted, "skipped", stats.Skipped)
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
