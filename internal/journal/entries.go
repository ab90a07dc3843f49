package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Entry is one journaled mood observation.
type Entry struct {
	ID        int64     `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Mood      string    `json:"mood"`
	Note      *string   `json:"note,omitempty"`
	Tags      []string  `json:"tags"`
	GoalID    int64     `json:"goal_id,omitempty"`
	UserID    int64     `json:"user_id,omitempty"`
}

// Mood is a label recorded in the mood lookup table.
type Mood struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const entryColumns = `id, ifnull(user_id, 0), date, mood, note, ifnull(goal_id, 0)`

// Append persists a new entry and returns its assigned id. The mood label
// is required; a zero timestamp is replaced with the current time. The
// entry, its tags and the mood lookup row are written in one transaction,
// so a failed append leaves nothing behind. Failures are never retried.
func (s *Store) Append(e Entry) (int64, error) {
	mood := strings.TrimSpace(e.Mood)
	if mood == "" {
		return 0, fmt.Errorf("journal: append: %w: mood is required", ErrInvalidEntry)
	}
	ts := e.Timestamp
	if ts.IsZero() {
		ts = timeNow()
	}
	tags := normalizeTags(e.Tags)

	if e.GoalID > 0 {
		if err := s.checkGoalOwner(e.GoalID, e.UserID); err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, errGoalOwner) {
				return 0, fmt.Errorf("journal: append: %w: %w", ErrInvalidEntry, err)
			}
			return 0, fmt.Errorf("journal: append: %w: %w", ErrWrite, err)
		}
	}

	tx, err := s.beginTxHook()
	if err != nil {
		return 0, fmt.Errorf("journal: append: begin tx: %w: %w", ErrWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := s.execHook(tx,
		`INSERT INTO entries (user_id, date, mood, note, goal_id) VALUES (?, ?, ?, ?, ?)`,
		nullableID(e.UserID), formatTime(ts), mood, normalizeNote(e.Note), nullableID(e.GoalID),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: append: insert entry: %w: %w", ErrWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: append: last insert id: %w: %w", ErrWrite, err)
	}

	if err := s.linkLabels(tx, id, mood, tags); err != nil {
		return 0, fmt.Errorf("journal: append: %w: %w", ErrWrite, err)
	}

	if err := s.commitHook(tx); err != nil {
		return 0, fmt.Errorf("journal: append: commit: %w: %w", ErrWrite, err)
	}

	s.log.Debug("entry appended", "id", id, "mood", mood, "tags", len(tags))
	return id, nil
}

// ListAll returns every persisted entry in insertion order. An empty store
// yields an empty slice.
func (s *Store) ListAll() ([]Entry, error) {
	entries, err := s.queryEntries(`SELECT ` + entryColumns + ` FROM entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("journal: list entries: %w", err)
	}
	return entries, nil
}

// Recent returns the newest entries first, at most limit of them. A
// non-positive limit uses the configured default.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.cfg.RecentLimit
	}
	// Stored offsets can differ across a DST change, so ordering happens on
	// parsed times rather than in SQL.
	entries, err := s.scanEntries(`SELECT ` + entryColumns + ` FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("journal: recent entries: %w", err)
	}
	sortChronological(entries)
	slices.Reverse(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	if err := s.attachTags(entries); err != nil {
		return nil, fmt.Errorf("journal: recent entries: %w", err)
	}
	return entries, nil
}

// ListByUser returns the entries owned by a user in chronological order.
func (s *Store) ListByUser(userID int64) ([]Entry, error) {
	entries, err := s.queryEntries(
		`SELECT `+entryColumns+` FROM entries WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: list user entries: %w", err)
	}
	sortChronological(entries)
	return entries, nil
}

// Get retrieves a single entry by id.
func (s *Store) Get(id int64) (*Entry, error) {
	entries, err := s.queryEntries(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("journal: get entry %d: %w", id, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("journal: get entry %d: %w", id, ErrNotFound)
	}
	return &entries[0], nil
}

// ListMoods returns the mood labels recorded so far, alphabetically.
func (s *Store) ListMoods() ([]Mood, error) {
	rows, err := s.queryHook(s.db, `SELECT id, name, ifnull(color, '') FROM moods ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("journal: list moods: %w", err)
	}
	defer func() { _ = rows.Close() }()

	moods := []Mood{}
	for rows.Next() {
		var m Mood
		if err := rows.Scan(&m.ID, &m.Name, &m.Color); err != nil {
			return nil, fmt.Errorf("journal: scan mood: %w", err)
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// linkLabels records the mood in the lookup table and attaches tags to an
// entry, creating tag rows as needed.
func (s *Store) linkLabels(tx execer, entryID int64, mood string, tags []string) error {
	if _, err := s.execHook(tx, `INSERT OR IGNORE INTO moods (name) VALUES (?)`, mood); err != nil {
		return fmt.Errorf("register mood: %w", err)
	}
	for _, tag := range tags {
		if _, err := s.execHook(tx, `INSERT OR IGNORE INTO tags (name) VALUES (?)`, tag); err != nil {
			return fmt.Errorf("register tag %q: %w", tag, err)
		}
		if _, err := s.execHook(tx,
			`INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) SELECT ?, id FROM tags WHERE name = ?`,
			entryID, tag,
		); err != nil {
			return fmt.Errorf("link tag %q: %w", tag, err)
		}
	}
	return nil
}

// queryEntries runs an entry SELECT and attaches tags. Rows are fully read
// and closed before the tag query runs.
func (s *Store) queryEntries(query string, args ...any) ([]Entry, error) {
	entries, err := s.scanEntries(query, args...)
	if err != nil {
		return nil, err
	}
	if err := s.attachTags(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// scanEntries reads entry rows without tags. Rows whose date cannot be
// parsed are skipped with a warning, the same as Stats does.
func (s *Store) scanEntries(query string, args ...any) ([]Entry, error) {
	rows, err := s.queryHook(s.db, query, args...)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for rows.Next() {
		var (
			e    Entry
			date string
			note sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &date, &e.Mood, &note, &e.GoalID); err != nil {
			_ = rows.Close()
			return nil, err
		}
		ts, err := parseTime(date)
		if err != nil {
			s.log.Warn("skipping entry with unparseable date", "id", e.ID, "date", date)
			continue
		}
		e.Timestamp = ts
		if note.Valid {
			n := note.String
			e.Note = &n
		}
		e.Tags = []string{}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()
	return entries, nil
}

// tagBatchSize keeps each tag lookup well under SQLite's bound variable limit.
const tagBatchSize = 500

// attachTags loads tags for entries in batches of ids.
func (s *Store) attachTags(entries []Entry) error {
	index := make(map[int64]int, len(entries))
	for i, e := range entries {
		index[e.ID] = i
	}

	for start := 0; start < len(entries); start += tagBatchSize {
		end := min(start+tagBatchSize, len(entries))
		args := make([]any, 0, end-start)
		for _, e := range entries[start:end] {
			args = append(args, e.ID)
		}
		if err := s.loadTagBatch(entries, index, args); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadTagBatch(entries []Entry, index map[int64]int, ids []any) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	rows, err := s.queryHook(s.db,
		`SELECT et.entry_id, t.name
		 FROM entry_tags et JOIN tags t ON t.id = et.tag_id
		 WHERE et.entry_id IN (`+placeholders+`)
		 ORDER BY et.entry_id, t.name`,
		ids...,
	)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			entryID int64
			name    string
		)
		if err := rows.Scan(&entryID, &name); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if i, ok := index[entryID]; ok {
			entries[i].Tags = append(entries[i].Tags, name)
		}
	}
	return rows.Err()
}

// sortChronological orders entries by time, then by id for equal times.
func sortChronological(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})
}

// normalizeTags trims labels, drops empties and duplicates, and sorts the
// result. Tag order carries no meaning.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func normalizeNote(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}
	return note
}

// IsNotFound reports whether err means a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
