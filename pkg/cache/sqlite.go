package cache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore is the default persistent Store backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path and
// initialises the schema. Use ":memory:" for an in-memory database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache/sqlite: open: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fetch_cache (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache/sqlite: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the record for key, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*Record, error) {
	rec := Record{Key: key}

	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM fetch_cache WHERE key = ?`, key,
	).Scan(&rec.Value, &rec.ExpiresAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache/sqlite: get: %w", err)
	}

	return &rec, nil
}

// Put inserts or replaces the record for rec.Key.
func (s *SQLiteStore) Put(ctx context.Context, rec *Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fetch_cache (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		rec.Key, rec.Value, rec.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache/sqlite: put: %w", err)
	}
	return nil
}

// Delete removes the record for key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM fetch_cache WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("cache/sqlite: delete: %w", err)
	}
	return nil
}

// DeleteExpired removes every record with expires_at <= now in one statement.
func (s *SQLiteStore) DeleteExpired(ctx context.Context, now int64) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM fetch_cache WHERE expires_at <= ?`, now,
	)
	if err != nil {
		return 0, fmt.Errorf("cache/sqlite: delete expired: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// DeleteContaining removes every record whose key contains fragment. It walks
// an ordered cursor over all keys inside a single transaction so the match is
// a plain substring test, with no LIKE-pattern escaping concerns.
func (s *SQLiteStore) DeleteContaining(ctx context.Context, fragment string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cache/sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT key FROM fetch_cache ORDER BY key`)
	if err != nil {
		return 0, fmt.Errorf("cache/sqlite: scan keys: %w", err)
	}

	var matched []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return 0, fmt.Errorf("cache/sqlite: scan key: %w", err)
		}
		if strings.Contains(key, fragment) {
			matched = append(matched, key)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("cache/sqlite: cursor: %w", err)
	}
	rows.Close()

	for _, key := range matched {
		if _, err := tx.ExecContext(ctx, `DELETE FROM fetch_cache WHERE key = ?`, key); err != nil {
			return 0, fmt.Errorf("cache/sqlite: delete matched: %w", err)
		}
	}

	return len(matched), tx.Commit()
}

// Clear removes all records.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM fetch_cache`)
	if err != nil {
		return fmt.Errorf("cache/sqlite: clear: %w", err)
	}
	return nil
}

// Name implements Store.
func (s *SQLiteStore) Name() string { return "sqlite" }

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
