package server

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/HendryAvila/moodflow/internal/config"
	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/HendryAvila/moodflow/internal/settings"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		DataDir:      dir,
		DBFile:       "moodflow.db",
		SettingsFile: "settings.json",
		LogLevel:     "info",
		RecentLimit:  20,
	}
}

func TestNew_CreatesServer(t *testing.T) {
	dir := t.TempDir()
	s, cleanup, err := New(testConfig(dir), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	if s == nil {
		t.Fatal("expected a server")
	}
	if _, err := os.Stat(filepath.Join(dir, "moodflow.db")); err != nil {
		t.Errorf("journal database not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "settings.json")); !os.IsNotExist(err) {
		t.Error("settings must not be written at startup")
	}
}

func TestNew_JournalUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, cleanup, err := New(testConfig(filepath.Join(blocker, "data")), nil)
	if !errors.Is(err, journal.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if cleanup == nil {
		t.Fatal("cleanup must never be nil")
	}
	cleanup()
}

func TestBuildTools_UniqueNames(t *testing.T) {
	store, err := journal.New(journal.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	want := []string{
		"mood_add", "mood_history", "mood_summary", "mood_stats", "mood_export", "mood_import",
		"settings_show", "settings_update", "user_create", "goal_add", "goal_list", "goal_complete",
	}
	tools := buildTools(store, settings.NewFileStore(filepath.Join(t.TempDir(), "s.json"), nil))
	if len(tools) != len(want) {
		t.Fatalf("got %d tools, want %d", len(tools), len(want))
	}
	seen := make(map[string]bool)
	for i, tl := range tools {
		name := tl.Definition().Name
		if seen[name] {
			t.Errorf("duplicate tool %q", name)
		}
		seen[name] = true
		if name != want[i] {
			t.Errorf("tools[%d] = %q, want %q", i, name, want[i])
		}
	}
}
