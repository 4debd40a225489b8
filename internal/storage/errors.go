package storage

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrModelMismatch is returned when the configured embedding model does
	// not match the model the index was built with. Querying across models
	// silently corrupts relevance ranking, so this is fatal.
	ErrModelMismatch = errors.New("embedding model mismatch")
)
