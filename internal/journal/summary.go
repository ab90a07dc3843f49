package journal

import "sort"

// SummarizeByMood counts entries per mood label. It works on entries that
// are already loaded and never touches storage. An empty input gives an
// empty, non-nil map.
func SummarizeByMood(entries []Entry) map[string]int {
	summary := make(map[string]int)
	for _, e := range entries {
		summary[e.Mood]++
	}
	return summary
}

// MoodCount is one row of a ranked mood summary.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// RankMoods orders a summary by count, highest first, then by label.
// The summary itself carries no order; this is for display only.
func RankMoods(summary map[string]int) []MoodCount {
	ranked := make([]MoodCount, 0, len(summary))
	for mood, n := range summary {
		ranked = append(ranked, MoodCount{Mood: mood, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Mood < ranked[j].Mood
	})
	return ranked
}
