package resources

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/HendryAvila/moodflow/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestHandler(t *testing.T) (*Handler, *journal.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := journal.New(journal.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	prefs := settings.NewFileStore(filepath.Join(dir, settings.DefaultFileName), nil)
	return NewHandler(store, prefs), store
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func singleText(t *testing.T, contents []mcp.ResourceContents) mcp.TextResourceContents {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	return tc
}

func TestResourceDefinitions(t *testing.T) {
	h, _ := newTestHandler(t)
	if r := h.SettingsResource(); r.URI != SettingsURI || r.MIMEType != "application/json" {
		t.Errorf("unexpected settings resource: %+v", r)
	}
	if r := h.SummaryResource(); r.URI != SummaryURI || r.MIMEType != "application/json" {
		t.Errorf("unexpected summary resource: %+v", r)
	}
}

func TestHandleSettings_Defaults(t *testing.T) {
	h, _ := newTestHandler(t)

	contents, err := h.HandleSettings(context.Background(), readReq(SettingsURI))
	if err != nil {
		t.Fatalf("HandleSettings: %v", err)
	}
	tc := singleText(t, contents)
	if tc.URI != SettingsURI {
		t.Errorf("URI = %q", tc.URI)
	}

	var got settings.Settings
	if err := json.Unmarshal([]byte(tc.Text), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.AvailableMoods) != len(settings.DefaultMoods) {
		t.Errorf("AvailableMoods = %v", got.AvailableMoods)
	}
}

func TestHandleSummary(t *testing.T) {
	h, store := newTestHandler(t)
	for _, m := range []string{"Happy", "Sad", "Happy"} {
		if _, err := store.Append(journal.Entry{Mood: m}); err != nil {
			t.Fatal(err)
		}
	}

	contents, err := h.HandleSummary(context.Background(), readReq(SummaryURI))
	if err != nil {
		t.Fatalf("HandleSummary: %v", err)
	}
	var doc summaryDoc
	if err := json.Unmarshal([]byte(singleText(t, contents).Text), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.TotalEntries != 3 || len(doc.Moods) != 2 {
		t.Fatalf("unexpected summary: %+v", doc)
	}
	if doc.Moods[0] != (journal.MoodCount{Mood: "Happy", Count: 2}) {
		t.Errorf("first mood = %+v", doc.Moods[0])
	}
}

func TestHandleSummary_StorageError(t *testing.T) {
	h, store := newTestHandler(t)
	_ = store.Close()

	contents, err := h.HandleSummary(context.Background(), readReq(SummaryURI))
	if err != nil {
		t.Fatalf("expected error inside resource, got Go error: %v", err)
	}
	tc := singleText(t, contents)
	if tc.MIMEType != "text/plain" || !strings.HasPrefix(tc.Text, "Error:") {
		t.Errorf("unexpected error resource: %+v", tc)
	}
}
