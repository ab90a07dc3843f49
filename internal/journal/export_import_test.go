package journal_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/HendryAvila/moodflow/internal/journal"
)

func TestExportImport_PreservesData(t *testing.T) {
	src := newTestStore(t)
	uid, err := src.CreateUser("Ana", "9999")
	if err != nil {
		t.Fatal(err)
	}
	gid, err := src.AddGoal(uid, "No Cigarettes", "")
	if err != nil {
		t.Fatal(err)
	}
	ts := time.Date(2025, 4, 4, 10, 0, 0, 0, time.UTC)
	mustAppend(t, src, journal.Entry{Mood: "Happy", Timestamp: ts, Tags: []string{"#relaxed"}, UserID: uid, GoalID: gid})
	mustAppend(t, src, journal.Entry{Mood: "Sad", Timestamp: ts.Add(time.Hour), Note: strPtr("rain")})

	data, err := src.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if data.Version != journal.ExportVersion || len(data.Users) != 1 || len(data.Goals) != 1 || len(data.Entries) != 2 {
		t.Fatalf("unexpected export: %+v", data)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	var decoded journal.ExportData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}

	dst := newTestStore(t)
	// Occupy id 1 so remapping is observable.
	mustUser(t, dst, "placeholder")

	res, err := dst.Import(&decoded)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.UsersImported != 1 || res.GoalsImported != 1 || res.EntriesImported != 2 {
		t.Errorf("unexpected import counts: %+v", res)
	}

	entries, err := dst.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if first.Mood != "Happy" || !first.Timestamp.Equal(ts) || !reflect.DeepEqual(first.Tags, []string{"#relaxed"}) {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.UserID == 0 || first.UserID == uid {
		t.Errorf("expected user id to be remapped, got %d", first.UserID)
	}
	u, err := dst.GetUser(first.UserID)
	if err != nil || u.Name != "Ana" {
		t.Errorf("remapped user = %+v, %v", u, err)
	}
	if u != nil && u.HasPIN() {
		t.Error("PIN hash should not travel with an export")
	}
	goals, _ := dst.ListGoals(first.UserID)
	if len(goals) != 1 || goals[0].ID != first.GoalID {
		t.Errorf("goal link not remapped: goals=%+v entry goal=%d", goals, first.GoalID)
	}
	if second := entries[1]; second.UserID != 0 || second.Note == nil || *second.Note != "rain" {
		t.Errorf("unexpected second entry: %+v", second)
	}
}

func TestImport_InvalidEntryRollsBack(t *testing.T) {
	s := newTestStore(t)
	data := &journal.ExportData{
		Version: journal.ExportVersion,
		Users:   []journal.User{{ID: 1, Name: "Ana"}},
		Entries: []journal.Entry{
			{ID: 1, Mood: "Happy", Timestamp: time.Now()},
			{ID: 2, Mood: "", Timestamp: time.Now()},
		},
	}

	_, err := s.Import(data)
	if !errors.Is(err, journal.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
	if entries, _ := s.ListAll(); len(entries) != 0 {
		t.Errorf("partial import left %d entries", len(entries))
	}
	if st, _ := s.Stats(); st.TotalUsers != 0 {
		t.Errorf("partial import left %d users", st.TotalUsers)
	}
}

func TestImport_WhitespaceMoodRejected(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Import(&journal.ExportData{
		Version: journal.ExportVersion,
		Entries: []journal.Entry{{ID: 1, Mood: "   ", Timestamp: time.Now()}},
	})
	if !errors.Is(err, journal.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
	if entries, _ := s.ListAll(); len(entries) != 0 {
		t.Errorf("import stored %d entries", len(entries))
	}
}

func TestImport_TrimsMood(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Import(&journal.ExportData{
		Version: journal.ExportVersion,
		Entries: []journal.Entry{{ID: 1, Mood: "  Calm ", Timestamp: time.Now()}},
	}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	entries, err := s.ListAll()
	if err != nil || len(entries) != 1 || entries[0].Mood != "Calm" {
		t.Fatalf("ListAll = %+v, %v", entries, err)
	}
	moods, _ := s.ListMoods()
	if len(moods) != 1 || moods[0].Name != "Calm" {
		t.Errorf("ListMoods = %+v", moods)
	}
}

func TestImport_Nil(t *testing.T) {
	s := newTestStore(t)
	res, err := s.Import(nil)
	if err != nil || res.EntriesImported != 0 {
		t.Errorf("Import(nil) = %+v, %v", res, err)
	}
}
