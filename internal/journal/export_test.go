package journal

import (
	"database/sql"
	"strings"
	"time"
)

// DB exposes the internal *sql.DB for test helpers in journal_test.
// This file only compiles during `go test`.
func (s *Store) DB() *sql.DB {
	return s.db
}

// FailCommit makes every later commit roll back and return err.
func (s *Store) FailCommit(err error) {
	s.hooks.commit = func(tx *sql.Tx) error {
		_ = tx.Rollback()
		return err
	}
}

// FailExecContaining makes exec calls whose SQL contains fragment return err.
func (s *Store) FailExecContaining(fragment string, err error) {
	s.hooks.exec = func(db execer, query string, args ...any) (sql.Result, error) {
		if strings.Contains(query, fragment) {
			return nil, err
		}
		return db.Exec(query, args...)
	}
}

// SetTimeNow swaps the package clock and returns a restore func.
func SetTimeNow(fn func() time.Time) func() {
	prev := timeNow
	timeNow = fn
	return func() { timeNow = prev }
}
