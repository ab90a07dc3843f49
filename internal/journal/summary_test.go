package journal_test

import (
	"reflect"
	"testing"

	"github.com/HendryAvila/moodflow/internal/journal"
)

func TestSummarizeByMood(t *testing.T) {
	tests := []struct {
		name  string
		moods []string
		want  map[string]int
	}{
		{"empty", nil, map[string]int{}},
		{"single", []string{"Calm"}, map[string]int{"Calm": 1}},
		{"repeated", []string{"Happy", "Sad", "Happy"}, map[string]int{"Happy": 2, "Sad": 1}},
		{"case sensitive", []string{"happy", "Happy"}, map[string]int{"happy": 1, "Happy": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]journal.Entry, 0, len(tt.moods))
			for _, m := range tt.moods {
				entries = append(entries, journal.Entry{Mood: m})
			}
			got := journal.SummarizeByMood(entries)
			if got == nil {
				t.Fatal("expected non-nil map")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarizeByMood_CountsAddUp(t *testing.T) {
	moods := []string{"Happy", "Calm", "Happy", "Tired", "Calm", "Happy"}
	entries := make([]journal.Entry, 0, len(moods))
	for _, m := range moods {
		entries = append(entries, journal.Entry{Mood: m})
	}

	total := 0
	for _, n := range journal.SummarizeByMood(entries) {
		total += n
	}
	if total != len(entries) {
		t.Errorf("counts sum to %d, want %d", total, len(entries))
	}
}

func TestRankMoods(t *testing.T) {
	got := journal.RankMoods(map[string]int{"Sad": 1, "Happy": 3, "Calm": 1})
	want := []journal.MoodCount{
		{Mood: "Happy", Count: 3},
		{Mood: "Calm", Count: 1},
		{Mood: "Sad", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankMoods = %+v, want %+v", got, want)
	}

	if empty := journal.RankMoods(nil); len(empty) != 0 {
		t.Errorf("RankMoods(nil) = %+v, want empty", empty)
	}
}
