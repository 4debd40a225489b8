package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel  slog.Level
	LogFormat string

	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string
	LLMTimeout   time.Duration

	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingTimeout   time.Duration

	CorpusPath   string
	ChunkSize    int
	ChunkOverlap int

	DBPath string

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	CalendarID      string
	CredentialsPath string
	TokenPath       string
	CalendarTimeout time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPPassword string

	APIPort string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it is loaded
// first; environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up toward the project root looking for a .env file.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:11434"),
		LLMModelName:       getEnv("LLM_MODEL", "mistral"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:11434"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "nomic-embed-text"),
		CorpusPath:         getEnv("CORPUS_PATH", ""),
		DBPath:             getEnv("DB_PATH", "./data/concierge-ai.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "fragments"),
		CalendarID:         getEnv("CALENDAR_ID", "primary"),
		CredentialsPath:    getEnv("GOOGLE_CREDENTIALS_PATH", "credentials.json"),
		TokenPath:          getEnv("GOOGLE_TOKEN_PATH", "token.json"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPFrom:           getEnv("SMTP_FROM", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		APIPort:            getEnv("API_PORT", "9000"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// QDRANT_VECTOR_SIZE must match the output size of the embedding model.
	// If the model changes, the Qdrant collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 800)
	if err != nil {
		return nil, err
	}
	cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 80)
	if err != nil {
		return nil, err
	}

	cfg.LLMTimeout, err = getEnvDuration("LLM_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.EmbeddingTimeout, err = getEnvDuration("EMBEDDING_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.CalendarTimeout, err = getEnvDuration("CALENDAR_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	if cfg.CorpusPath == "" {
		return nil, fmt.Errorf("CORPUS_PATH is required")
	}

	// Create the data directory for the SQLite file if needed.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// getEnvDuration gets a duration environment variable or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}
