// Package storage persists the application's three logical records
// (app_data, users_db, user_session) as rows of a SQLite-backed key-value
// table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Keys of the persisted logical records.
const (
	KeyAppData     = "app_data"
	KeyUsersDB     = "users_db"
	KeyUserSession = "user_session"
)

type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV opens (creating if needed) the database at dbPath and runs
// pending migrations.
func NewSQLiteKV(dbPath string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

func (r *SQLiteKV) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Get reads one logical record. The second return reports whether the key
// exists.
func (r *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes one logical record, replacing any prior value (last write
// wins).
func (r *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set record %s: %w", key, err)
	}

	slog.DebugContext(ctx, "Record persisted", "key", key, "bytes", len(value))
	return nil
}

// Delete removes one logical record. Deleting a missing key is a no-op.
func (r *SQLiteKV) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	return nil
}
