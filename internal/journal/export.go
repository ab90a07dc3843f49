package journal

import (
	"fmt"
	"strings"
)

// ExportVersion identifies the layout of ExportData.
const ExportVersion = "1"

// ExportData is a serializable dump of the journal.
type ExportData struct {
	Version    string  `json:"version"`
	ExportedAt string  `json:"exported_at"`
	Users      []User  `json:"users"`
	Goals      []Goal  `json:"goals"`
	Entries    []Entry `json:"entries"`
}

// ImportResult holds counts of imported records.
type ImportResult struct {
	UsersImported   int `json:"users_imported"`
	GoalsImported   int `json:"goals_imported"`
	EntriesImported int `json:"entries_imported"`
}

// Export dumps users, goals and entries. PIN hashes are not exported.
func (s *Store) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: formatTime(timeNow()),
		Users:      []User{},
		Goals:      []Goal{},
	}

	rows, err := s.queryHook(s.db, `SELECT id, name, ifnull(created_at, '') FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("journal: export users: %w", err)
	}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("journal: export users: %w", err)
		}
		data.Users = append(data.Users, u)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("journal: export users: %w", err)
	}
	_ = rows.Close()

	for _, u := range data.Users {
		goals, err := s.ListGoals(u.ID)
		if err != nil {
			return nil, fmt.Errorf("journal: export goals: %w", err)
		}
		data.Goals = append(data.Goals, goals...)
	}

	entries, err := s.ListAll()
	if err != nil {
		return nil, fmt.Errorf("journal: export entries: %w", err)
	}
	data.Entries = entries

	return data, nil
}

// Import loads exported data in a single transaction. Users and goals get
// fresh ids; entries are re-linked to them. PIN protection does not travel
// with an export, so imported users have no PIN.
func (s *Store) Import(data *ExportData) (*ImportResult, error) {
	if data == nil {
		return &ImportResult{}, nil
	}

	tx, err := s.beginTxHook()
	if err != nil {
		return nil, fmt.Errorf("journal: import: begin tx: %w: %w", ErrWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &ImportResult{}
	userIDs := make(map[int64]int64, len(data.Users))
	goalIDs := make(map[int64]int64, len(data.Goals))

	for _, u := range data.Users {
		res, err := s.execHook(tx,
			`INSERT INTO users (name, created_at) VALUES (?, ?)`,
			u.Name, nullableString(u.CreatedAt),
		)
		if err != nil {
			return nil, fmt.Errorf("journal: import user %d: %w: %w", u.ID, ErrWrite, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("journal: import user %d: %w: %w", u.ID, ErrWrite, err)
		}
		userIDs[u.ID] = id
		result.UsersImported++
	}

	for _, g := range data.Goals {
		owner, ok := userIDs[g.UserID]
		if !ok {
			return nil, fmt.Errorf("journal: import goal %d: %w: unknown user %d", g.ID, ErrInvalidEntry, g.UserID)
		}
		completed := 0
		if g.Completed {
			completed = 1
		}
		res, err := s.execHook(tx,
			`INSERT INTO goals (user_id, title, description, created_at, completed) VALUES (?, ?, ?, ?, ?)`,
			owner, g.Title, g.Description, nullableString(g.CreatedAt), completed,
		)
		if err != nil {
			return nil, fmt.Errorf("journal: import goal %d: %w: %w", g.ID, ErrWrite, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("journal: import goal %d: %w: %w", g.ID, ErrWrite, err)
		}
		goalIDs[g.ID] = id
		result.GoalsImported++
	}

	for _, e := range data.Entries {
		mood := strings.TrimSpace(e.Mood)
		if mood == "" || e.Timestamp.IsZero() {
			return nil, fmt.Errorf("journal: import entry %d: %w: mood and timestamp are required", e.ID, ErrInvalidEntry)
		}
		res, err := s.execHook(tx,
			`INSERT INTO entries (user_id, date, mood, note, goal_id) VALUES (?, ?, ?, ?, ?)`,
			nullableID(userIDs[e.UserID]), formatTime(e.Timestamp), mood,
			normalizeNote(e.Note), nullableID(goalIDs[e.GoalID]),
		)
		if err != nil {
			return nil, fmt.Errorf("journal: import entry %d: %w: %w", e.ID, ErrWrite, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("journal: import entry %d: %w: %w", e.ID, ErrWrite, err)
		}
		if err := s.linkLabels(tx, id, mood, normalizeTags(e.Tags)); err != nil {
			return nil, fmt.Errorf("journal: import entry %d: %w: %w", e.ID, ErrWrite, err)
		}
		result.EntriesImported++
	}

	if err := s.commitHook(tx); err != nil {
		return nil, fmt.Errorf("journal: import: commit: %w: %w", ErrWrite, err)
	}
	return result, nil
}
