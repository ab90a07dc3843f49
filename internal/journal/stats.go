package journal

import (
	"fmt"
	"time"
)

// Stats holds aggregate journal statistics.
type Stats struct {
	TotalEntries  int        `json:"total_entries"`
	TotalUsers    int        `json:"total_users"`
	TotalGoals    int        `json:"total_goals"`
	DistinctMoods int        `json:"distinct_moods"`
	FirstEntryAt  *time.Time `json:"first_entry_at,omitempty"`
	LastEntryAt   *time.Time `json:"last_entry_at,omitempty"`
}

// Metric names written to stats_cache. Per-mood counts use moodMetricPrefix
// followed by the label.
const (
	MetricEntriesTotal = "entries_total"
	moodMetricPrefix   = "mood:"
)

// Stats returns journal-wide totals.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM entries", &stats.TotalEntries},
		{"SELECT COUNT(*) FROM users", &stats.TotalUsers},
		{"SELECT COUNT(*) FROM goals", &stats.TotalGoals},
		{"SELECT COUNT(DISTINCT mood) FROM entries", &stats.DistinctMoods},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("journal: stats: %w", err)
		}
	}

	if stats.TotalEntries == 0 {
		return stats, nil
	}

	// Dates may carry different offsets, so the bounds are computed on
	// parsed values rather than by text comparison.
	rows, err := s.queryHook(s.db, "SELECT date FROM entries")
	if err != nil {
		return nil, fmt.Errorf("journal: stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("journal: stats: %w", err)
		}
		ts, err := parseTime(raw)
		if err != nil {
			s.log.Warn("skipping unparseable entry date", "date", raw)
			continue
		}
		if stats.FirstEntryAt == nil || ts.Before(*stats.FirstEntryAt) {
			first := ts
			stats.FirstEntryAt = &first
		}
		if stats.LastEntryAt == nil || ts.After(*stats.LastEntryAt) {
			last := ts
			stats.LastEntryAt = &last
		}
	}
	return stats, rows.Err()
}

// RefreshStatsCache recomputes a user's cached metrics: the total entry
// count and one count per mood label. Old metrics for the user are
// replaced in one transaction.
func (s *Store) RefreshStatsCache(userID int64) error {
	if _, err := s.GetUser(userID); err != nil {
		return err
	}

	entries, err := s.ListByUser(userID)
	if err != nil {
		return err
	}
	summary := SummarizeByMood(entries)

	tx, err := s.beginTxHook()
	if err != nil {
		return fmt.Errorf("journal: refresh stats: begin tx: %w: %w", ErrWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.execHook(tx, `DELETE FROM stats_cache WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("journal: refresh stats: clear: %w: %w", ErrWrite, err)
	}

	upsert := `INSERT INTO stats_cache (user_id, metric, value, updated_at)
	           VALUES (?, ?, ?, datetime('now'))
	           ON CONFLICT (user_id, metric) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.execHook(tx, upsert, userID, MetricEntriesTotal, float64(len(entries))); err != nil {
		return fmt.Errorf("journal: refresh stats: %s: %w: %w", MetricEntriesTotal, ErrWrite, err)
	}
	for mood, n := range summary {
		if _, err := s.execHook(tx, upsert, userID, moodMetricPrefix+mood, float64(n)); err != nil {
			return fmt.Errorf("journal: refresh stats: mood %q: %w: %w", mood, ErrWrite, err)
		}
	}

	if err := s.commitHook(tx); err != nil {
		return fmt.Errorf("journal: refresh stats: commit: %w: %w", ErrWrite, err)
	}
	return nil
}

// CachedStats returns the cached metrics for a user. A user whose cache
// was never refreshed gets an empty map.
func (s *Store) CachedStats(userID int64) (map[string]float64, error) {
	rows, err := s.queryHook(s.db,
		`SELECT metric, ifnull(value, 0) FROM stats_cache WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cached stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	metrics := make(map[string]float64)
	for rows.Next() {
		var (
			name  string
			value float64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("journal: cached stats: %w", err)
		}
		metrics[name] = value
	}
	return metrics, rows.Err()
}

// MoodMetric returns the stats_cache metric name for a mood label.
func MoodMetric(mood string) string {
	return moodMetricPrefix + mood
}
