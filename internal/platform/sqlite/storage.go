// Package sqlite provides the durable state backend. All vocabulary state
// lives in a single local database file; each logical key ("library",
// "history", "missed_words") maps to one row holding a JSON blob, which
// keeps the persistence contract identical to the in-memory storage used
// in tests.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/finchley/lexi/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Storage implements store.Storage on top of a local SQLite database.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (or creates) the database at path, applies pending migrations,
// and returns a ready Storage. The parent directory is created if missing.
func New(path string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The driver is in-process; a single writer avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := migrate(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("sqlite storage ready", slog.String("path", path))

	return &Storage{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_storage")),
	}, nil
}

func migrate(db *sql.DB, logger *slog.Logger) error {
	goose.SetLogger(&gooseSlogAdapter{logger: logger})
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Get retrieves the blob stored under key. Returns store.ErrKeyNotFound if
// the key has never been written.
func (s *Storage) Get(ctx context.Context, key store.Key) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM state_blobs WHERE key = ?`, string(key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("state_blob", "get", err)
	}
	return value, nil
}

// Set writes the blob under key, replacing any previous value.
func (s *Storage) Set(ctx context.Context, key store.Key, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state_blobs (key, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(key), value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return store.NewStoreError("state_blob", "set", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

// gooseSlogAdapter forwards goose's log output to slog.
type gooseSlogAdapter struct {
	logger *slog.Logger
}

func (a *gooseSlogAdapter) Printf(format string, v ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, v...))
}

func (a *gooseSlogAdapter) Fatalf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
