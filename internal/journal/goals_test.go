package journal_test

import (
	"errors"
	"testing"

	"github.com/HendryAvila/moodflow/internal/journal"
)

func mustUser(t *testing.T, s *journal.Store, name string) int64 {
	t.Helper()
	id, err := s.CreateUser(name, "")
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", name, err)
	}
	return id
}

func TestGoals_AddListComplete(t *testing.T) {
	s := newTestStore(t)
	uid := mustUser(t, s, "Ana")

	g1, err := s.AddGoal(uid, "No Alcohol", "")
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if _, err := s.AddGoal(uid, "No Cigarettes", "thirty days"); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	goals, err := s.ListGoals(uid)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}
	if goals[0].Title != "No Alcohol" || goals[0].Description != nil || goals[0].Completed {
		t.Errorf("unexpected first goal: %+v", goals[0])
	}
	if goals[1].Description == nil || *goals[1].Description != "thirty days" {
		t.Errorf("unexpected second goal: %+v", goals[1])
	}

	if err := s.CompleteGoal(g1); err != nil {
		t.Fatalf("CompleteGoal: %v", err)
	}
	goals, _ = s.ListGoals(uid)
	if !goals[0].Completed {
		t.Error("expected goal to be completed")
	}
}

func TestAddGoal_EmptyTitle(t *testing.T) {
	s := newTestStore(t)
	uid := mustUser(t, s, "Ana")
	if _, err := s.AddGoal(uid, "", ""); !errors.Is(err, journal.ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestAddGoal_UnknownUser(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddGoal(77, "Walk", ""); !errors.Is(err, journal.ErrWrite) {
		t.Errorf("expected ErrWrite from foreign key, got %v", err)
	}
}

func TestCompleteGoal_NotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.CompleteGoal(5); !errors.Is(err, journal.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAppend_LinkedGoal(t *testing.T) {
	s := newTestStore(t)
	uid := mustUser(t, s, "Ana")
	gid, err := s.AddGoal(uid, "No Alcohol", "")
	if err != nil {
		t.Fatal(err)
	}

	id := mustAppend(t, s, journal.Entry{Mood: "Motivated", UserID: uid, GoalID: gid})
	e, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e.UserID != uid || e.GoalID != gid {
		t.Errorf("links = user %d goal %d, want %d %d", e.UserID, e.GoalID, uid, gid)
	}

	byUser, err := s.ListByUser(uid)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(byUser) != 1 || byUser[0].ID != id {
		t.Errorf("ListByUser = %+v", byUser)
	}
}

func TestAppend_GoalOwnedByOtherUser(t *testing.T) {
	s := newTestStore(t)
	ana := mustUser(t, s, "Ana")
	ben := mustUser(t, s, "Ben")
	gid, err := s.AddGoal(ana, "No Alcohol", "")
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Append(journal.Entry{Mood: "Sad", UserID: ben, GoalID: gid})
	if !errors.Is(err, journal.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
	if entries, _ := s.ListAll(); len(entries) != 0 {
		t.Errorf("rejected append wrote %d entries", len(entries))
	}
}

func TestAppend_UnknownGoal(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Append(journal.Entry{Mood: "Sad", GoalID: 404})
	if !errors.Is(err, journal.ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestDeleteUser_Cascades(t *testing.T) {
	s := newTestStore(t)
	uid := mustUser(t, s, "Ana")
	gid, _ := s.AddGoal(uid, "Walk", "")
	mustAppend(t, s, journal.Entry{Mood: "Calm", UserID: uid, GoalID: gid, Tags: []string{"#relaxed"}})
	mustAppend(t, s, journal.Entry{Mood: "Happy"})

	if _, err := s.DB().Exec(`DELETE FROM users WHERE id = ?`, uid); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	entries, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != "Happy" {
		t.Errorf("expected only the unowned entry to remain, got %+v", entries)
	}
	goals, _ := s.ListGoals(uid)
	if len(goals) != 0 {
		t.Errorf("expected goals to cascade, got %d", len(goals))
	}
}
