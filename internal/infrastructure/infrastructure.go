// Package infrastructure assembles the systems shared by the server and the
// CLI: logging, lifecycle coordination, the optional database, document
// storage, and the system prompt store.
package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/sysprompts/internal/config"
	"github.com/JaimeStill/sysprompts/internal/sysprompts"
	"github.com/JaimeStill/sysprompts/pkg/database"
	"github.com/JaimeStill/sysprompts/pkg/lifecycle"
	"github.com/JaimeStill/sysprompts/pkg/storage"
)

// Infrastructure holds the core systems required by the API and the CLI.
// Database is nil unless the storage backend is postgres.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Prompts   sysprompts.System
}

// NewLogger builds the process logger from the logging config, writing to w.
func NewLogger(cfg *config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: config.ReplaceLogLevelNames,
	}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// New creates an Infrastructure from the application configuration, logging
// to w. It initializes all systems but does not start them; call Start or
// Initialize separately.
func New(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	logger := NewLogger(&cfg.Logging, w)

	var (
		db   database.System
		conn *sql.DB
	)
	if cfg.UsesDatabase() {
		var err error
		db, err = database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		conn = db.Connection()
	}

	store, err := storage.New(&cfg.Storage, conn, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	infra := NewWithStorage(cfg, logger, store)
	infra.Database = db
	return infra, nil
}

// NewWithStorage creates an Infrastructure over an existing storage system.
func NewWithStorage(cfg *config.Config, logger *slog.Logger, store storage.System) *Infrastructure {
	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Storage:   store,
		Prompts:   sysprompts.NewSystem(store, logger, cfg.API.MaxBodySizeBytes()),
	}
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The prompt store is initialized as a startup hook, so readiness waits for
// the collection to exist.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}

	i.Lifecycle.OnStartup(func() error {
		if err := i.Prompts.Initialize(i.Lifecycle.Context()); err != nil {
			i.Logger.Error("system prompt store initialization failed", "error", err)
			return err
		}
		return nil
	})

	return nil
}

// Initialize prepares the systems for one-shot use outside the lifecycle,
// as the CLI does: the database is pinged and the prompt store seeded.
func (i *Infrastructure) Initialize(ctx context.Context) error {
	if i.Database != nil {
		if err := i.Database.Ping(ctx); err != nil {
			return err
		}
	}
	return i.Prompts.Initialize(ctx)
}

// Close releases the database connection, if any.
func (i *Infrastructure) Close() error {
	if i.Database != nil {
		return i.Database.Connection().Close()
	}
	return nil
}
