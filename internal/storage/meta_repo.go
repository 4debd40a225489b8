package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const embeddingModelKey = "embedding_model"

// MetaRepo stores index-level metadata as key/value pairs.
type MetaRepo struct {
	db *sql.DB
}

// NewMetaRepo creates a new MetaRepo.
func NewMetaRepo(db *sql.DB) *MetaRepo {
	return &MetaRepo{db: db}
}

// Get returns the value for a key, or ErrNotFound.
func (r *MetaRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM index_meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query meta key %s: %w", key, err)
	}
	return value, nil
}

// Set writes a key/value pair, replacing any existing value.
func (r *MetaRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO index_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set meta key %s: %w", key, err)
	}
	return nil
}

// PinEmbeddingModel records the embedding model the index is built with.
// On first call the model is stored; afterwards a different model is refused
// with ErrModelMismatch. An index must only ever be written and queried with
// the one model it was created with.
func (r *MetaRepo) PinEmbeddingModel(ctx context.Context, model string) error {
	stored, err := r.Get(ctx, embeddingModelKey)
	if err == ErrNotFound {
		return r.Set(ctx, embeddingModelKey, model)
	}
	if err != nil {
		return err
	}
	if stored != model {
		return fmt.Errorf("%w: index built with %q, configured %q", ErrModelMismatch, stored, model)
	}
	return nil
}
