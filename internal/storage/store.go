package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmhodges/clock"
	_ "modernc.org/sqlite"
)

const (
	pragmaJournalModeWAL = `PRAGMA journal_mode=WAL`
	pragmaBusyTimeout    = `PRAGMA busy_timeout=5000`
)

// Document keys. One JSON document per key; each repository owns exactly one.
const (
	KeyReminders = "protouch.reminders"
	KeySavedTips = "protouch.saved.tips"
	KeySettings  = "protouch.settings"
)

// Store is the durable key-value document adapter plus the repositories
// built on top of it. Concurrent writes to different keys are independent;
// writes to the same key resolve last-write-wins, which is why each
// repository serializes its own mutations.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger

	Reminders ReminderRepository
	Settings  SettingsRepository
	SavedTips SavedTipRepository
}

func Open(path string, clk clock.Clock, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("open storage: empty path")
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("open storage: create parent dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if err := configureSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := RunMigrations(db, DefaultMigrations()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureDBPermissions(path); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{
		db:     db,
		path:   path,
		logger: logger,
	}
	store.Reminders = &reminderRepository{kv: store, clk: clk, logger: logger}
	store.Settings = &settingsRepository{kv: store, logger: logger}
	store.SavedTips = &savedTipRepository{kv: store, logger: logger}

	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Get returns the document stored under key, or ok=false when the key has
// never been written.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get document %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set overwrites the document stored under key.
func (s *Store) Set(ctx context.Context, key string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO app_store(key, value, updated_at) VALUES(?, ?, ?)`, key, string(doc), nowUTCString())
	if err != nil {
		return fmt.Errorf("set document %q: %w", key, err)
	}
	return nil
}

// Remove deletes the given keys, one statement per key and no transaction
// across them. A crash mid-call may leave some keys cleared and others not;
// callers accept that (each key is independently recoverable).
func (s *Store) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM app_store WHERE key = ?`, key); err != nil {
			return fmt.Errorf("remove document %q: %w", key, err)
		}
	}
	return nil
}

// Wipe clears all three app documents. Best-effort: a failed remove is
// logged and dropped, matching the write policy of the repositories.
func (s *Store) Wipe(ctx context.Context) {
	if err := s.Remove(ctx, KeyReminders, KeySavedTips, KeySettings); err != nil {
		s.logger.Warn("wipe app data", "error", err)
	}
}

func configureSQLite(db *sql.DB) error {
	pragmas := []string{pragmaJournalModeWAL, pragmaBusyTimeout}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("configure sqlite %q: %w", stmt, err)
		}
	}
	return nil
}

func ensureDBPermissions(path string) error {
	if err := os.Chmod(path, 0o600); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("set db file permissions: %w", err)
		}
	}

	walPath := path + "-wal"
	if err := os.Chmod(walPath, 0o600); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("set wal file permissions: %w", err)
		}
	}
	return nil
}
