package journal

import (
	"errors"
	"fmt"
	"strings"
)

// Goal is a user's habit goal that entries may link to.
type Goal struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	Completed   bool    `json:"completed"`
}

// AddGoal creates a goal owned by userID.
func (s *Store) AddGoal(userID int64, title, description string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("journal: add goal: %w: title is required", ErrInvalidEntry)
	}
	res, err := s.execHook(s.db,
		`INSERT INTO goals (user_id, title, description) VALUES (?, ?, ?)`,
		userID, title, nullableString(strings.TrimSpace(description)),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: add goal: %w: %w", ErrWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: add goal: %w: %w", ErrWrite, err)
	}
	return id, nil
}

// ListGoals returns a user's goals, oldest first.
func (s *Store) ListGoals(userID int64) ([]Goal, error) {
	rows, err := s.queryHook(s.db,
		`SELECT id, user_id, title, description, ifnull(created_at, ''), ifnull(completed, 0)
		 FROM goals WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: list goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	goals := []Goal{}
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.CreatedAt, &g.Completed); err != nil {
			return nil, fmt.Errorf("journal: scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// CompleteGoal marks a goal as completed.
func (s *Store) CompleteGoal(id int64) error {
	res, err := s.execHook(s.db, `UPDATE goals SET completed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("journal: complete goal %d: %w: %w", id, ErrWrite, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("journal: complete goal %d: %w: %w", id, ErrWrite, err)
	}
	if n == 0 {
		return fmt.Errorf("journal: complete goal %d: %w", id, ErrNotFound)
	}
	return nil
}

// errGoalOwner means an entry tried to link a goal owned by another user.
var errGoalOwner = errors.New("goal belongs to another user")

// checkGoalOwner verifies that a goal exists and, when userID is set,
// belongs to that user.
func (s *Store) checkGoalOwner(goalID, userID int64) error {
	var owner int64
	if err := s.db.QueryRow(`SELECT user_id FROM goals WHERE id = ?`, goalID).Scan(&owner); err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("goal %d: %w", goalID, ErrNotFound)
		}
		return err
	}
	if userID > 0 && owner != userID {
		return fmt.Errorf("goal %d: %w", goalID, errGoalOwner)
	}
	return nil
}
