// Package journal implements the durable mood entry log for MoodFlow.
//
// Entries live in a local SQLite database (pure-Go driver, no cgo). The
// store is append-only from the caller's point of view: entries are
// inserted and read back, never edited in place. Alongside the entry log
// the same database carries the richer relational tables (users, goals,
// the mood and tag lookups, a per-user stats cache).
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Sentinel errors. Returned errors wrap one of these so callers can use errors.Is.
var (
	// ErrStorageUnavailable means the database could not be opened or migrated.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrWrite means an insert or update could not be committed.
	ErrWrite = errors.New("write failed")
	// ErrInvalidEntry means the entry failed validation before touching storage.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")
)

// ─── Config ──────────────────────────────────────────────────────────────────

// DefaultFileName is the database file created inside Config.DataDir.
const DefaultFileName = "moodflow.db"

// Config holds entry store configuration.
type Config struct {
	DataDir       string
	FileName      string
	RecentLimit   int
	BusyTimeoutMS int
	Logger        *slog.Logger
}

// DefaultConfig returns the default configuration: moodflow.db in the
// process working directory.
func DefaultConfig() Config {
	return Config{
		DataDir:       ".",
		FileName:      DefaultFileName,
		RecentLimit:   20,
		BusyTimeoutMS: 5000,
	}
}

// Path returns the full database path for the configuration. An absolute
// FileName is used as is.
func (c Config) Path() string {
	name := c.FileName
	if name == "" {
		name = DefaultFileName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the entry log backed by SQLite.
type Store struct {
	db    *sql.DB
	cfg   Config
	log   *slog.Logger
	hooks storeHooks
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

type storeHooks struct {
	exec    func(db execer, query string, args ...any) (sql.Result, error)
	query   func(db queryer, query string, args ...any) (*sql.Rows, error)
	beginTx func(db *sql.DB) (*sql.Tx, error)
	commit  func(tx *sql.Tx) error
}

func defaultStoreHooks() storeHooks {
	return storeHooks{
		exec: func(db execer, query string, args ...any) (sql.Result, error) {
			return db.Exec(query, args...)
		},
		query: func(db queryer, query string, args ...any) (*sql.Rows, error) {
			return db.Query(query, args...)
		},
		beginTx: func(db *sql.DB) (*sql.Tx, error) {
			return db.Begin()
		},
		commit: func(tx *sql.Tx) error {
			return tx.Commit()
		},
	}
}

func (s *Store) execHook(db execer, query string, args ...any) (sql.Result, error) {
	if s.hooks.exec != nil {
		return s.hooks.exec(db, query, args...)
	}
	return db.Exec(query, args...)
}

func (s *Store) queryHook(db queryer, query string, args ...any) (*sql.Rows, error) {
	if s.hooks.query != nil {
		return s.hooks.query(db, query, args...)
	}
	return db.Query(query, args...)
}

func (s *Store) beginTxHook() (*sql.Tx, error) {
	if s.hooks.beginTx != nil {
		return s.hooks.beginTx(s.db)
	}
	return s.db.Begin()
}

func (s *Store) commitHook(tx *sql.Tx) error {
	if s.hooks.commit != nil {
		return s.hooks.commit(tx)
	}
	return tx.Commit()
}

// New opens or creates the database described by cfg and makes sure the
// schema exists. It is safe to call on an already initialized file.
// Every failure wraps ErrStorageUnavailable.
func New(cfg Config) (*Store, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 20
	}
	if cfg.BusyTimeoutMS <= 0 {
		cfg.BusyTimeoutMS = 5000
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dbPath, err := filepath.Abs(cfg.Path())
	if err != nil {
		return nil, fmt.Errorf("journal: resolve path: %w: %w", ErrStorageUnavailable, err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w: %w", ErrStorageUnavailable, err)
	}

	// Pragmas travel in the DSN so every pooled connection gets them.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		dbPath, cfg.BusyTimeoutMS,
	)
	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w: %w", ErrStorageUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: ping database: %w: %w", ErrStorageUnavailable, err)
	}

	s := &Store{db: db, cfg: cfg, log: logger, hooks: defaultStoreHooks()}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration: %w: %w", ErrStorageUnavailable, err)
	}

	logger.Debug("entry store ready", "path", dbPath)
	return s, nil
}

// RecentLimit returns the default page size used by Recent.
func (s *Store) RecentLimit() int {
	return s.cfg.RecentLimit
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	// Lookup tables and users first; entries references them.
	if _, err := s.execHook(s.db, `
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			pin_hash   TEXT,
			created_at TEXT DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS moods (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT UNIQUE NOT NULL,
			color TEXT DEFAULT '#999999'
		);

		CREATE TABLE IF NOT EXISTS tags (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS goals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL,
			title       TEXT NOT NULL,
			description TEXT,
			created_at  TEXT DEFAULT (datetime('now')),
			completed   INTEGER DEFAULT 0,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);
	`); err != nil {
		return err
	}

	if err := s.dropEmptyNormalizedEntries(); err != nil {
		return err
	}

	if _, err := s.execHook(s.db, `
		CREATE TABLE IF NOT EXISTS entries (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			date    TEXT NOT NULL,
			mood    TEXT NOT NULL,
			note    TEXT,
			goal_id INTEGER,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE SET NULL
		);
	`); err != nil {
		return err
	}

	// Files written by the minimal variant only have (id, date, mood, note).
	for _, col := range []struct{ name, def string }{
		{"user_id", "INTEGER REFERENCES users(id) ON DELETE CASCADE"},
		{"goal_id", "INTEGER REFERENCES goals(id) ON DELETE SET NULL"},
	} {
		var count int
		if err := s.db.QueryRow(
			"SELECT COUNT(*) FROM pragma_table_info('entries') WHERE name = ?", col.name,
		).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := s.execHook(s.db, "ALTER TABLE entries ADD COLUMN "+col.name+" "+col.def); err != nil {
			return fmt.Errorf("add entries.%s: %w", col.name, err)
		}
		s.log.Info("upgraded legacy entries table", "column", col.name)
	}

	if _, err := s.execHook(s.db, `
		CREATE TABLE IF NOT EXISTS entry_tags (
			entry_id INTEGER NOT NULL,
			tag_id   INTEGER NOT NULL,
			PRIMARY KEY (entry_id, tag_id),
			FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id)   REFERENCES tags(id)    ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS stats_cache (
			user_id    INTEGER NOT NULL,
			metric     TEXT    NOT NULL,
			value      REAL,
			updated_at TEXT DEFAULT (datetime('now')),
			PRIMARY KEY (user_id, metric),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_entries_user_date ON entries (user_id, date);
		CREATE INDEX IF NOT EXISTS idx_entry_tags_tag    ON entry_tags (tag_id);
		CREATE INDEX IF NOT EXISTS idx_goals_user        ON goals (user_id);
	`); err != nil {
		return err
	}

	return nil
}

// dropEmptyNormalizedEntries removes an entries table that uses the
// mood_id foreign-key layout instead of the free-text mood column. Only an
// empty table is dropped; a populated one is reported as an error.
func (s *Store) dropEmptyNormalizedEntries() error {
	var tables int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'entries'",
	).Scan(&tables); err != nil {
		return err
	}
	if tables == 0 {
		return nil
	}

	var moodCols int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('entries') WHERE name = 'mood'",
	).Scan(&moodCols); err != nil {
		return err
	}
	if moodCols > 0 {
		return nil
	}

	var rows int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&rows); err != nil {
		return err
	}
	if rows > 0 {
		return fmt.Errorf("entries table has no mood column and holds %d rows", rows)
	}

	if _, err := s.execHook(s.db, "DROP TABLE IF EXISTS entry_tags; DROP TABLE entries"); err != nil {
		return fmt.Errorf("drop normalized entries table: %w", err)
	}
	s.log.Info("rebuilt empty entries table with free-text mood column")
	return nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// Truncate shortens a string to at most max bytes with an ellipsis. The
// cut backs off to a rune boundary.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "..."
}
