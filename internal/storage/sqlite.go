// Package storage provides the data persistence layer: a small SQLite
// key/value primitive and the fraud record store built on top of it.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteKV is a single-key-at-a-time key/value table backed by SQLite.
// Each open handle carries a unique instance id recorded alongside every
// write, so a watcher observing the file can tell its own writes apart
// from another process's.
type SQLiteKV struct {
	db         *sql.DB
	dbPath     string
	instanceID string
}

// NewSQLiteKV opens (creating if necessary) the key/value database at
// dbPath. Pass ":memory:" for an ephemeral store in tests.
func NewSQLiteKV(dbPath string) (*SQLiteKV, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	kv := &SQLiteKV{
		db:         db,
		dbPath:     dbPath,
		instanceID: uuid.NewString(),
	}

	if err := kv.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return kv, nil
}

func (s *SQLiteKV) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_by TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

// Get returns the value stored under key and whether the key exists.
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value and stamping
// the row with this handle's instance id.
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_by, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at
	`, key, value, s.instanceID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// LastWriter returns the instance id that last wrote key, or the empty
// string when the key has never been written.
func (s *SQLiteKV) LastWriter(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var writer string
	err := s.db.QueryRowContext(ctx, "SELECT updated_by FROM kv WHERE key = ?", key).Scan(&writer)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read writer for key %s: %w", key, err)
	}
	return writer, nil
}

// Path returns the filesystem path backing this database.
func (s *SQLiteKV) Path() string {
	return s.dbPath
}

// InstanceID identifies this handle in updated_by stamps.
func (s *SQLiteKV) InstanceID() string {
	return s.instanceID
}

// Close closes the database connection.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
