package moodtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// SummaryTool handles the mood_summary MCP tool.
type SummaryTool struct {
	store *journal.Store
}

// NewSummaryTool creates a SummaryTool.
func NewSummaryTool(store *journal.Store) *SummaryTool {
	return &SummaryTool{store: store}
}

// Definition returns the MCP tool definition for mood_summary.
func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("mood_summary",
		mcp.WithDescription(
			"Count journal entries per mood label, most frequent first.",
		),
		mcp.WithNumber("user_id",
			mcp.Description("Only count entries of this user"),
		),
		mcp.WithString("pin",
			mcp.Description("PIN of the user, required when the user has one"),
		),
	)
}

// Handle processes the mood_summary tool call.
func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(intArg(req, "user_id", 0))

	var (
		entries []journal.Entry
		err     error
	)
	if userID > 0 {
		if denied := checkUserPIN(t.store, req, userID); denied != nil {
			return denied, nil
		}
		entries, err = t.store.ListByUser(userID)
	} else {
		entries, err = t.store.ListAll()
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}

	return mcp.NewToolResultText(FormatSummary(journal.SummarizeByMood(entries))), nil
}

// FormatSummary renders a mood summary as a markdown list with shares.
func FormatSummary(summary map[string]int) string {
	if len(summary) == 0 {
		return "No mood entries yet."
	}

	total := 0
	for _, n := range summary {
		total += n
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Mood Summary (%d entries)\n\n", total)
	for _, mc := range journal.RankMoods(summary) {
		fmt.Fprintf(&b, "- **%s**: %d (%.0f%%)\n", mc.Mood, mc.Count, 100*float64(mc.Count)/float64(total))
	}
	return b.String()
}
