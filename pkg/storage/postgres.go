package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/sysprompts/pkg/repository"
)

// Upserts never raise a unique violation; MapError still needs a target.
var errDuplicateKey = errors.New("duplicate document key")

type postgres struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgres creates a storage system that keeps documents as rows of the
// documents table. The table is created by the migrations in cmd/migrate.
func NewPostgres(db *sql.DB, logger *slog.Logger) System {
	return &postgres{
		db:     db,
		logger: logger.With("system", "storage", "backend", BackendPostgres),
	}
}

func (p *postgres) Location() string {
	return "postgres:documents"
}

func (p *postgres) Prepare(ctx context.Context) error {
	var n int
	if err := p.db.QueryRowContext(ctx, "SELECT count(*) FROM documents").Scan(&n); err != nil {
		return fmt.Errorf("documents table unavailable (run migrations): %w", err)
	}
	return nil
}

func (p *postgres) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read upload %s: %w", key, err)
	}

	q := `
		INSERT INTO documents(key, content, content_type, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
		SET content = EXCLUDED.content,
			content_type = EXCLUDED.content_type,
			updated_at = now()`

	_, err = repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, key, data, contentType)
	})
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", key, err)
	}

	p.logger.Debug("document written", "key", key, "bytes", len(data))
	return nil
}

func (p *postgres) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := repository.QueryOne(
		ctx, p.db,
		"SELECT content FROM documents WHERE key = $1",
		[]any{key},
		scanContent,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, errDuplicateKey)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (p *postgres) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM documents WHERE key = $1", key)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, errDuplicateKey)
	}
	return nil
}

func (p *postgres) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	var exists bool
	err := p.db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM documents WHERE key = $1)",
		key,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check document existence %s: %w", key, err)
	}
	return exists, nil
}

func scanContent(s repository.Scanner) ([]byte, error) {
	var data []byte
	err := s.Scan(&data)
	return data, err
}
