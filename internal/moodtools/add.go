package moodtools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/HendryAvila/moodflow/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddTool handles the mood_add MCP tool.
type AddTool struct {
	store    *journal.Store
	settings settings.Store
}

// NewAddTool creates an AddTool. The settings store is only consulted to
// flag labels that are not in the user's vocabulary.
func NewAddTool(store *journal.Store, prefs settings.Store) *AddTool {
	return &AddTool{store: store, settings: prefs}
}

// Definition returns the MCP tool definition for mood_add.
func (t *AddTool) Definition() mcp.Tool {
	return mcp.NewTool("mood_add",
		mcp.WithDescription(
			"Record how the user feels right now (or at a given time). Any mood label is accepted; "+
				"the settings vocabulary is only a suggestion list.",
		),
		mcp.WithString("mood",
			mcp.Required(),
			mcp.Description("Mood label, e.g. Happy, Calm, Tired"),
		),
		mcp.WithString("note",
			mcp.Description("Optional free-text note"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags, e.g. '#relaxed, #thinking'"),
		),
		mcp.WithString("timestamp",
			mcp.Description("When the mood was felt (RFC 3339 or 'YYYY-MM-DD HH:MM', default: now)"),
		),
		mcp.WithNumber("user_id",
			mcp.Description("Owner of the entry (optional)"),
		),
		mcp.WithString("pin",
			mcp.Description("PIN of the user, required when the user has one"),
		),
		mcp.WithNumber("goal_id",
			mcp.Description("Goal this entry relates to (optional, must belong to the user)"),
		),
	)
}

// Handle processes the mood_add tool call.
func (t *AddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mood := strings.TrimSpace(req.GetString("mood", ""))
	if mood == "" {
		return mcp.NewToolResultError("'mood' is required"), nil
	}

	entry := journal.Entry{
		Mood:   mood,
		Tags:   listArg(req, "tags"),
		UserID: int64(intArg(req, "user_id", 0)),
		GoalID: int64(intArg(req, "goal_id", 0)),
	}
	if note := req.GetString("note", ""); note != "" {
		entry.Note = &note
	}
	if ts := req.GetString("timestamp", ""); ts != "" {
		parsed, err := parseTimestamp(ts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		entry.Timestamp = parsed
	}

	if entry.UserID > 0 {
		if denied := checkUserPIN(t.store, req, entry.UserID); denied != nil {
			return denied, nil
		}
	}

	id, err := t.store.Append(entry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save entry: %v", err)), nil
	}

	response := fmt.Sprintf("Mood saved: %q\nID: %d", entry.Mood, id)
	if t.settings != nil {
		known := t.settings.Load().AvailableMoods
		if !slices.Contains(known, entry.Mood) {
			response += fmt.Sprintf("\nNote: %q is not in the mood list. Add it with settings_update if it should be offered next time.", entry.Mood)
		}
	}
	return mcp.NewToolResultText(response), nil
}
