// Package moodtools provides MCP tool handlers for the mood journal.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (journal.Store, settings.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Handlers never fail the call with a Go error; storage problems come back
// as tool errors so the host can show them to the user.
package moodtools

import (
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// listArg splits a comma-separated argument into trimmed, non-empty values.
func listArg(req mcp.CallToolRequest, key string) []string {
	raw := req.GetString(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// checkUserPIN verifies the pin argument for a call scoped to userID. It
// returns a tool error result when the call must not proceed.
func checkUserPIN(store *journal.Store, req mcp.CallToolRequest, userID int64) *mcp.CallToolResult {
	ok, err := store.VerifyPIN(userID, req.GetString("pin", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to check user: %v", err))
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid PIN for user %d", userID))
	}
	return nil
}

// timestampLayouts are accepted for user-supplied entry times. Layouts
// without an offset are read in the local time zone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (use RFC 3339 or YYYY-MM-DD HH:MM)", v)
}

// ─── Detail levels ──────────────────────────────────────────────────────────

// Detail level constants.
const (
	DetailSummary  = "summary"
	DetailStandard = "standard"
	DetailFull     = "full"
)

// DetailLevelValues returns the enum values for MCP tool definitions.
func DetailLevelValues() []string {
	return []string{DetailSummary, DetailStandard, DetailFull}
}

// ParseDetailLevel normalizes a detail_level string, defaulting to "standard"
// for empty or unrecognized values.
func ParseDetailLevel(s string) string {
	switch s {
	case DetailSummary, DetailFull:
		return s
	default:
		return DetailStandard
	}
}

// noteSnippetLen caps notes in standard detail.
const noteSnippetLen = 200

// navigationHint returns a one-line footer when results are capped by a
// limit, or "" when everything fits.
func navigationHint(showing, total int, hint string) string {
	if total <= 0 || showing >= total {
		return ""
	}
	if hint != "" {
		return fmt.Sprintf("\nShowing %d of %d. %s", showing, total, hint)
	}
	return fmt.Sprintf("\nShowing %d of %d.", showing, total)
}

// writeEntry renders one entry as a markdown list item.
func writeEntry(b *strings.Builder, e journal.Entry, detail string) {
	fmt.Fprintf(b, "- #%d %s **%s**", e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Mood)
	if detail == DetailSummary {
		b.WriteString("\n")
		return
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(b, " %s", strings.Join(e.Tags, " "))
	}
	if e.GoalID > 0 {
		fmt.Fprintf(b, " (goal %d)", e.GoalID)
	}
	b.WriteString("\n")
	if e.Note != nil {
		note := *e.Note
		if detail == DetailStandard {
			note = journal.Truncate(note, noteSnippetLen)
		}
		fmt.Fprintf(b, "  %s\n", note)
	}
}
