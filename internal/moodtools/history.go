package moodtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryTool handles the mood_history MCP tool.
type HistoryTool struct {
	store *journal.Store
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(store *journal.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for mood_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("mood_history",
		mcp.WithDescription(
			"List journal entries, newest first.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to show (default: 20)"),
		),
		mcp.WithNumber("user_id",
			mcp.Description("Only show entries of this user"),
		),
		mcp.WithString("pin",
			mcp.Description("PIN of the user, required when the user has one"),
		),
		mcp.WithString("detail_level",
			mcp.Description(
				"Level of detail: 'summary' (id, time and mood only), "+
					"'standard' (default, adds tags and a 200-char note snippet), "+
					"'full' (complete notes).",
			),
			mcp.Enum(DetailLevelValues()...),
		),
	)
}

// Handle processes the mood_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 0)
	userID := int64(intArg(req, "user_id", 0))
	detail := ParseDetailLevel(req.GetString("detail_level", ""))

	var (
		entries []journal.Entry
		total   int
		err     error
	)
	if userID > 0 {
		if denied := checkUserPIN(t.store, req, userID); denied != nil {
			return denied, nil
		}
		entries, total, err = t.userHistory(userID, limit)
	} else {
		entries, total, err = t.allHistory(limit)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No mood entries yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Mood History (%d)\n\n", len(entries))
	for _, e := range entries {
		writeEntry(&b, e, detail)
	}
	b.WriteString(navigationHint(len(entries), total, "Raise limit to see older entries."))

	return mcp.NewToolResultText(b.String()), nil
}

func (t *HistoryTool) allHistory(limit int) ([]journal.Entry, int, error) {
	entries, err := t.store.Recent(limit)
	if err != nil {
		return nil, 0, err
	}
	stats, err := t.store.Stats()
	if err != nil {
		return nil, 0, err
	}
	return entries, stats.TotalEntries, nil
}

// userHistory reverses the chronological user listing and applies limit.
func (t *HistoryTool) userHistory(userID int64, limit int) ([]journal.Entry, int, error) {
	entries, err := t.store.ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = t.store.RecentLimit()
	}
	total := len(entries)
	newest := make([]journal.Entry, 0, min(limit, total))
	for i := total - 1; i >= 0 && len(newest) < limit; i-- {
		newest = append(newest, entries[i])
	}
	return newest, total, nil
}
