package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"fwtranscribe/internal/transcribe"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store is a SQLite-backed transcript cache.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Stats summarizes the cache contents.
type Stats struct {
	Path    string
	Entries int64
	Hits    int64
	Bytes   int64
	Oldest  time.Time
	Newest  time.Time
}

// Open initializes or connects to the cache database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete the database to reset the cache)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Lookup returns the cached result for opts, if any.
func (s *Store) Lookup(ctx context.Context, opts transcribe.Options) (transcribe.Result, bool, error) {
	key, err := Key(opts)
	if err != nil {
		return transcribe.Result{}, false, err
	}

	var result transcribe.Result
	err = retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT text, language FROM transcripts WHERE key = ?", key,
		).Scan(&result.Text, &result.Language)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return transcribe.Result{}, false, nil
	}
	if err != nil {
		return transcribe.Result{}, false, fmt.Errorf("lookup transcript: %w", err)
	}

	if err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, "UPDATE transcripts SET hits = hits + 1 WHERE key = ?", key)
		return execErr
	}); err != nil {
		return transcribe.Result{}, false, fmt.Errorf("record cache hit: %w", err)
	}
	return result, true, nil
}

// Store records result for opts, replacing any previous entry.
func (s *Store) Store(ctx context.Context, opts transcribe.Options, result transcribe.Result) error {
	opts = opts.Normalized()
	key, err := Key(opts)
	if err != nil {
		return err
	}

	created := s.now().UTC().Format(time.RFC3339Nano)
	err = retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `
INSERT INTO transcripts (key, audio_path, model, text, language, created_at, hits)
VALUES (?, ?, ?, ?, ?, ?, 0)
ON CONFLICT(key) DO UPDATE SET
    audio_path = excluded.audio_path,
    text = excluded.text,
    language = excluded.language,
    created_at = excluded.created_at`,
			key, opts.AudioPath, opts.Model, result.Text, result.Language, created)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}

// Stats reports entry counts and the on-disk size.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Path: s.path}

	var oldest, newest sql.NullString
	var hits sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1), SUM(hits), MIN(created_at), MAX(created_at) FROM transcripts",
	).Scan(&stats.Entries, &hits, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("query cache stats: %w", err)
	}
	stats.Hits = hits.Int64
	if oldest.Valid {
		stats.Oldest, _ = time.Parse(time.RFC3339Nano, oldest.String)
	}
	if newest.Valid {
		stats.Newest, _ = time.Parse(time.RFC3339Nano, newest.String)
	}
	if info, err := os.Stat(s.path); err == nil {
		stats.Bytes = info.Size()
	}
	return stats, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, execErr := s.db.ExecContext(ctx, "DELETE FROM transcripts")
		if execErr != nil {
			return execErr
		}
		removed, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("clear transcripts: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return removed, fmt.Errorf("vacuum cache: %w", err)
	}
	return removed, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
