package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_Load_MissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := loader.Load(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Load() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestLoader_Load_EmptyDirectory(t *testing.T) {
	loader := NewLoader(t.TempDir())

	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Load() returned %d documents, want 0", len(docs))
	}
}

func TestLoader_Load_TextAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "plain text body")
	writeFile(t, dir, "a.md", "# Title\n\nSome *emphasized* content.")
	writeFile(t, dir, "ignored.bin", "binary junk")

	loader := NewLoader(dir)
	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("Load() returned %d documents, want 2", len(docs))
	}

	// filepath.Walk is lexical, so a.md comes first
	if docs[0].SourcePath != "a.md" {
		t.Errorf("docs[0].SourcePath = %q, want a.md", docs[0].SourcePath)
	}
	if docs[0].Page != nil {
		t.Errorf("markdown document should have nil Page, got %v", *docs[0].Page)
	}
	if docs[1].Text != "plain text body" {
		t.Errorf("docs[1].Text = %q", docs[1].Text)
	}
}

func TestLoader_Load_StableOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.txt", "c")
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "nested/b.txt", "b")

	loader := NewLoader(dir)

	first, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].SourcePath != second[i].SourcePath {
			t.Errorf("order differs at %d: %q vs %q", i, first[i].SourcePath, second[i].SourcePath)
		}
	}
}

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", ""},
		{"plain paragraph", "hello world", "hello world"},
		{"strips emphasis", "some *bold* claim", "some bold claim"},
		{"heading becomes line", "# Title\n\nBody text", "Title\nBody text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markdownToText([]byte(tt.content))
			if got != tt.want {
				t.Errorf("markdownToText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}
