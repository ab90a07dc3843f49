// Package settings holds the user's vocabulary: the mood labels, tags and
// goals offered as choices when journaling. The document is a small JSON
// file; loading never fails and always yields usable lists.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Settings is the persisted vocabulary document.
type Settings struct {
	AvailableMoods []string `json:"available_moods"`
	Tags           []string `json:"tags"`
	Goals          []string `json:"goals"`
}

// UnmarshalJSON accepts the camelCase availableMoods key written by older
// builds in addition to available_moods.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	var doc struct {
		plain
		LegacyMoods []string `json:"availableMoods"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = Settings(doc.plain)
	if len(s.AvailableMoods) == 0 && len(doc.LegacyMoods) > 0 {
		s.AvailableMoods = doc.LegacyMoods
	}
	return nil
}

// Default vocabularies. "Exited" keeps the spelling found in existing files.
var (
	DefaultMoods = []string{"Happy", "Calm", "Tired", "Sad", "Motivated", "Exited"}
	DefaultTags  = []string{"#thinking", "#stressed", "#relaxed", "#unsure", "#angry"}
	DefaultGoals = []string{"No Alcohol", "No Cigarettes"}
)

// Defaults returns a document with every list set to its default.
func Defaults() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills each empty list with its default, independently of
// the others. It reports whether anything was filled.
func (s *Settings) ApplyDefaults() bool {
	filled := false
	if len(s.AvailableMoods) == 0 {
		s.AvailableMoods = clone(DefaultMoods)
		filled = true
	}
	if len(s.Tags) == 0 {
		s.Tags = clone(DefaultTags)
		filled = true
	}
	if len(s.Goals) == 0 {
		s.Goals = clone(DefaultGoals)
		filled = true
	}
	return filled
}

// ─── Categories ──────────────────────────────────────────────────────────────

// Category names one of the three vocabulary lists.
type Category string

const (
	CategoryMoods Category = "moods"
	CategoryTags  Category = "tags"
	CategoryGoals Category = "goals"
)

// Categories lists every category in document order.
var Categories = []Category{CategoryMoods, CategoryTags, CategoryGoals}

// ParseCategory converts a string to a Category. The JSON field name
// available_moods is accepted for moods.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moods", "mood", "available_moods":
		return CategoryMoods, nil
	case "tags", "tag":
		return CategoryTags, nil
	case "goals", "goal":
		return CategoryGoals, nil
	default:
		return "", fmt.Errorf("unknown settings category %q (valid: moods, tags, goals)", s)
	}
}

// List returns a copy of the list for c.
func (s *Settings) List(c Category) []string {
	switch c {
	case CategoryMoods:
		return clone(s.AvailableMoods)
	case CategoryTags:
		return clone(s.Tags)
	case CategoryGoals:
		return clone(s.Goals)
	}
	return nil
}

// Set replaces the list for c. Values are trimmed; empties and duplicates
// are dropped and the first occurrence order is kept.
func (s *Settings) Set(c Category, values []string) {
	cleaned := dedupe(values)
	switch c {
	case CategoryMoods:
		s.AvailableMoods = cleaned
	case CategoryTags:
		s.Tags = cleaned
	case CategoryGoals:
		s.Goals = cleaned
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func clone(v []string) []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}
