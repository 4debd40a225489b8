package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *FragmentRepo {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return NewFragmentRepo(db)
}

func fragment(stableID, sourcePath string, page *int, seq int, text string) *FragmentRecord {
	return &FragmentRecord{
		StableID:   stableID,
		SourcePath: sourcePath,
		Page:       page,
		SeqInPage:  seq,
		Text:       text,
	}
}

func TestFragmentRepo_InsertAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	page := 2
	if err := repo.InsertBatch(ctx, []*FragmentRecord{
		fragment("doc.pdf:2:0", "doc.pdf", &page, 0, "paged text"),
		fragment("notes.md:None:0", "notes.md", nil, 0, "unpaged text"),
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	got, err := repo.GetByStableID(ctx, "doc.pdf:2:0")
	if err != nil {
		t.Fatalf("GetByStableID() error = %v", err)
	}
	if got.Text != "paged text" || got.Page == nil || *got.Page != 2 {
		t.Errorf("GetByStableID() = %+v", got)
	}

	got, err = repo.GetByStableID(ctx, "notes.md:None:0")
	if err != nil {
		t.Fatalf("GetByStableID() error = %v", err)
	}
	if got.Page != nil {
		t.Errorf("unpaged fragment Page = %v, want nil", got.Page)
	}
}

func TestFragmentRepo_GetByStableID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByStableID(context.Background(), "missing:None:0")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByStableID() error = %v, want ErrNotFound", err)
	}
}

func TestFragmentRepo_ExistingIDs(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	ids, err := repo.ExistingIDs(ctx)
	if err != nil {
		t.Fatalf("ExistingIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ExistingIDs() on empty store = %v, want empty", ids)
	}

	if err := repo.InsertBatch(ctx, []*FragmentRecord{
		fragment("a.txt:None:0", "a.txt", nil, 0, "a"),
		fragment("a.txt:None:1", "a.txt", nil, 1, "b"),
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	ids, err = repo.ExistingIDs(ctx)
	if err != nil {
		t.Fatalf("ExistingIDs() error = %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ExistingIDs() = %v, want 2 entries", ids)
	}
	if _, ok := ids["a.txt:None:1"]; !ok {
		t.Error("ExistingIDs() missing a.txt:None:1")
	}
}

func TestFragmentRepo_InsertBatch_RollsBackOnDuplicate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, []*FragmentRecord{
		fragment("a.txt:None:0", "a.txt", nil, 0, "a"),
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	// The second record collides, so the whole batch must roll back.
	err := repo.InsertBatch(ctx, []*FragmentRecord{
		fragment("b.txt:None:0", "b.txt", nil, 0, "b"),
		fragment("a.txt:None:0", "a.txt", nil, 0, "dup"),
	})
	if err == nil {
		t.Fatal("InsertBatch() with duplicate should fail")
	}

	if _, err := repo.GetByStableID(ctx, "b.txt:None:0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("partial insert visible after rollback: %v", err)
	}
}

func TestFragmentRepo_GetByStableIDs(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, []*FragmentRecord{
		fragment("a.txt:None:0", "a.txt", nil, 0, "a"),
		fragment("b.txt:None:0", "b.txt", nil, 0, "b"),
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	got, err := repo.GetByStableIDs(ctx, []string{"a.txt:None:0", "missing:None:0", "b.txt:None:0"})
	if err != nil {
		t.Fatalf("GetByStableIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByStableIDs() returned %d records, want 2", len(got))
	}
	if got["a.txt:None:0"].Text != "a" {
		t.Errorf("GetByStableIDs()[a.txt:None:0] = %+v", got["a.txt:None:0"])
	}
	if _, ok := got["missing:None:0"]; ok {
		t.Error("missing id should be absent, not present")
	}

	empty, err := repo.GetByStableIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetByStableIDs(nil) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("GetByStableIDs(nil) = %v, want empty", empty)
	}
}
