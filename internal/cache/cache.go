package cache

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"golang.org/x/crypto/sha3"
)

// dbFileName is the cache database file name inside the cache directory.
const dbFileName = "explanations.db"

// ErrMiss is returned by Get when no entry exists for the key.
var ErrMiss = errors.New("cache miss")

// Store is an SQLite-backed explanation cache.
//
// Design decision: We use a single database file in the user's data
// directory rather than per-notebook files. Explanations are keyed by
// model+prompt, so one store naturally deduplicates identical cells
// across notebooks as well as across runs.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Open opens or creates the cache database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under the concurrent explanation pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the cache schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS explanations (
		key TEXT PRIMARY KEY,
		model TEXT NOT NULL,
		explanation TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_explanations_model ON explanations(model);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Key derives the cache key for a model/prompt pair.
// SHA3-256 keeps keys fixed-size and collision-safe regardless of how
// large the prompt is.
func Key(model, prompt string) string {
	h := sha3.New256()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached explanation for the key, or ErrMiss.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var explanation string
	err := s.db.QueryRowContext(ctx,
		"SELECT explanation FROM explanations WHERE key = ?", key,
	).Scan(&explanation)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("cache lookup failed: %w", err)
	}
	return explanation, nil
}

// Put stores an explanation under the key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key, model, explanation string) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO explanations (key, model, explanation)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		model = excluded.model,
		explanation = excluded.explanation,
		created_at = CURRENT_TIMESTAMP`,
		key, model, explanation,
	)
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}

// Purge removes every cached entry. Used by the CLI's cache-clearing flag.
func (s *Store) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM explanations"); err != nil {
		return fmt.Errorf("cache purge failed: %w", err)
	}
	return nil
}
