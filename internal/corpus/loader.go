package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"concierge-ai/internal/contextutil"
)

// ErrSourceUnavailable is returned when the corpus directory is missing or unreadable.
var ErrSourceUnavailable = errors.New("document source unavailable")

// Loader reads documents from a corpus directory.
// Supported formats: .pdf (one Document per page), .md and .txt (one Document per file).
type Loader struct {
	root string
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Load walks the corpus directory and returns all documents in lexical path
// order. The order is stable across runs, which the stable fragment IDs
// downstream depend on.
func (l *Loader) Load(ctx context.Context) ([]Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	info, err := os.Stat(l.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, l.root)
	}

	var docs []Document
	err = filepath.Walk(l.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("%w: failed to access %s", ErrSourceUnavailable, path)
		}
		if info.IsDir() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(l.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			pages, err := loadPDF(path, relPath)
			if err != nil {
				// A single corrupt PDF should not abort the whole load.
				logger.WarnContext(ctx, "skipping unreadable PDF", "path", relPath, "error", err)
				return nil
			}
			docs = append(docs, pages...)
		case ".md":
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%w: failed to read %s", ErrSourceUnavailable, relPath)
			}
			docs = append(docs, Document{
				SourcePath: relPath,
				Text:       markdownToText(content),
			})
		case ".txt":
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%w: failed to read %s", ErrSourceUnavailable, relPath)
			}
			docs = append(docs, Document{
				SourcePath: relPath,
				Text:       string(content),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "corpus loaded", "root", l.root, "documents", len(docs))
	return docs, nil
}

// loadPDF extracts one Document per page. Page numbers are zero-based; they
// become part of the persisted fragment IDs, so the numbering must not change.
func loadPDF(path, relPath string) ([]Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var docs []Document
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		page := i - 1
		docs = append(docs, Document{
			SourcePath: relPath,
			Page:       &page,
			Text:       text,
		})
	}
	return docs, nil
}
