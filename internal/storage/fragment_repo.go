package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_fragment_store.go -package=mocks concierge-ai/internal/storage FragmentStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// FragmentStore defines the interface for fragment storage operations.
type FragmentStore interface {
	// ExistingIDs returns the set of all stable ids currently stored.
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)
	// InsertBatch inserts fragments in a single transaction. Any failure
	// rolls the whole batch back; no partial insert is ever visible.
	InsertBatch(ctx context.Context, fragments []*FragmentRecord) error
	// GetByStableID gets a fragment by its stable id. Returns ErrNotFound if absent.
	GetByStableID(ctx context.Context, stableID string) (*FragmentRecord, error)
	// GetByStableIDs fetches multiple fragments, keyed by stable id.
	// Missing ids are simply absent from the result, not an error.
	GetByStableIDs(ctx context.Context, stableIDs []string) (map[string]*FragmentRecord, error)
}

// FragmentRepo provides methods for fragment operations.
// It implements the FragmentStore interface.
type FragmentRepo struct {
	db *sql.DB
}

// NewFragmentRepo creates a new FragmentRepo.
func NewFragmentRepo(db *sql.DB) *FragmentRepo {
	return &FragmentRepo{db: db}
}

// ExistingIDs returns the set of all stable ids currently stored.
// Re-indexing uses this for the set-difference: only fragments whose id is
// absent here get embedded and inserted.
func (r *FragmentRepo) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT stable_id FROM fragments")
	if err != nil {
		return nil, fmt.Errorf("failed to query stable ids: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan stable id: %w", err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// InsertBatch inserts fragments in a single transaction.
func (r *FragmentRepo) InsertBatch(ctx context.Context, fragments []*FragmentRecord) error {
	if len(fragments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO fragments (stable_id, source_path, page, seq_in_page, text) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, frag := range fragments {
		var page sql.NullInt64
		if frag.Page != nil {
			page = sql.NullInt64{Int64: int64(*frag.Page), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, frag.StableID, frag.SourcePath, page, frag.SeqInPage, frag.Text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert fragment %s: %w", frag.StableID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// GetByStableID gets a fragment by its stable id. Returns ErrNotFound if absent.
func (r *FragmentRepo) GetByStableID(ctx context.Context, stableID string) (*FragmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT stable_id, source_path, page, seq_in_page, text FROM fragments WHERE stable_id = ?",
		stableID,
	)

	frag, err := scanFragment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fragment: %w", err)
	}
	return frag, nil
}

// GetByStableIDs fetches multiple fragments, keyed by stable id.
func (r *FragmentRepo) GetByStableIDs(ctx context.Context, stableIDs []string) (map[string]*FragmentRecord, error) {
	result := make(map[string]*FragmentRecord, len(stableIDs))
	if len(stableIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(stableIDs)), ",")
	args := make([]any, len(stableIDs))
	for i, id := range stableIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT stable_id, source_path, page, seq_in_page, text FROM fragments WHERE stable_id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fragments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		frag, err := scanFragment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fragment: %w", err)
		}
		result[frag.StableID] = frag
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

func scanFragment(scan func(dest ...any) error) (*FragmentRecord, error) {
	var frag FragmentRecord
	var page sql.NullInt64
	if err := scan(&frag.StableID, &frag.SourcePath, &page, &frag.SeqInPage, &frag.Text); err != nil {
		return nil, err
	}
	if page.Valid {
		p := int(page.Int64)
		frag.Page = &p
	}
	return &frag, nil
}
