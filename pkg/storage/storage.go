// Package storage provides keyed document storage with local filesystem,
// in-memory, Azure Blob Storage, and PostgreSQL implementations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Supported backend names.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendAzure    = "azure"
	BackendPostgres = "postgres"
)

// System stores opaque documents under string keys.
type System interface {
	// Prepare ensures the backing location exists: a directory, a container, or a table.
	Prepare(ctx context.Context) error
	// Upload replaces the document at key with the contents of reader.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the document at key. The caller must close the reader.
	// Returns ErrNotFound if the document does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the document at key. Returns ErrNotFound if the document does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a document exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Location describes where documents are kept, for logs and diagnostics.
	Location() string
}

// New creates the storage system selected by cfg.Backend. db is only
// consulted by the postgres backend and may be nil otherwise.
func New(cfg *Config, db *sql.DB, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendFile:
		return NewFile(cfg.Dir, logger), nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendAzure:
		return NewAzure(&cfg.Azure, logger)
	case BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres backend requires a database connection")
		}
		return NewPostgres(db, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ReadAll downloads the document at key and returns its bytes.
func ReadAll(ctx context.Context, s System, key string) ([]byte, error) {
	rc, err := s.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
