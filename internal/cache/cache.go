// Package cache stores lint results in SQLite so unchanged files are not re-linted.
//
// An entry is reused only when both the file content hash and the configuration hash
// match what was stored.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leapstack-labs/jsxlint/pkg/lint"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrNotOpen is returned when the cache is used before Open.
var ErrNotOpen = errors.New("cache not opened")

// Cache is a SQLite-backed lint result cache. It is safe for concurrent use.
type Cache struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// New creates a closed cache. A nil logger discards log output.
func New(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{logger: logger}
}

// Open connects to the database at path, creating parent directories as needed.
func (c *Cache) Open(path string) error {
	dsn := MemoryPath
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection serializes writers and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	c.db = db
	c.path = path
	c.logger.Debug("opened lint cache", "path", path)
	return nil
}

// OpenAndMigrate opens the database and brings the schema up to date.
func OpenAndMigrate(path string, logger *slog.Logger) (*Cache, error) {
	c := New(logger)
	if err := c.Open(path); err != nil {
		return nil, err
	}
	if err := c.Migrate(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Path returns the database location passed to Open.
func (c *Cache) Path() string {
	return c.path
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Get returns the stored diagnostics for path when both hashes match.
func (c *Cache) Get(ctx context.Context, path, contentHash, configHash string) ([]lint.Diagnostic, bool, error) {
	if c.db == nil {
		return nil, false, ErrNotOpen
	}

	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT diagnostics FROM lint_results
		 WHERE file_path = ? AND content_hash = ? AND config_hash = ?`,
		path, contentHash, configHash,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry for %s: %w", path, err)
	}

	var diags []lint.Diagnostic
	if err := json.Unmarshal([]byte(raw), &diags); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry for %s: %w", path, err)
	}
	return diags, true, nil
}

// Put stores diagnostics for path, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, path, contentHash, configHash string, diags []lint.Diagnostic) error {
	if c.db == nil {
		return ErrNotOpen
	}
	if diags == nil {
		diags = []lint.Diagnostic{}
	}

	raw, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics for %s: %w", path, err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO lint_results (file_path, content_hash, config_hash, diagnostics, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(file_path) DO UPDATE SET
		     content_hash = excluded.content_hash,
		     config_hash  = excluded.config_hash,
		     diagnostics  = excluded.diagnostics,
		     updated_at   = excluded.updated_at`,
		path, contentHash, configHash, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry for %s: %w", path, err)
	}
	return nil
}

// Prune deletes entries whose path is not in keep and returns how many were removed.
// An empty keep list clears the cache.
func (c *Cache) Prune(ctx context.Context, keep []string) (int64, error) {
	if c.db == nil {
		return 0, ErrNotOpen
	}

	query := `DELETE FROM lint_results`
	args := make([]any, 0, len(keep))
	if len(keep) > 0 {
		query += ` WHERE file_path NOT IN (?` + strings.Repeat(`, ?`, len(keep)-1) + `)`
		for _, p := range keep {
			args = append(args, p)
		}
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	if n > 0 {
		c.logger.Debug("pruned lint cache", "removed", n)
	}
	return n, nil
}

// Count returns the number of stored entries.
func (c *Cache) Count(ctx context.Context) (int, error) {
	if c.db == nil {
		return 0, ErrNotOpen
	}
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lint_results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// HashContent returns the hex SHA-256 of content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
