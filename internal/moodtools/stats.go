package moodtools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsTool handles the mood_stats MCP tool.
type StatsTool struct {
	store *journal.Store
}

// NewStatsTool creates a StatsTool with the given journal store.
func NewStatsTool(store *journal.Store) *StatsTool {
	return &StatsTool{store: store}
}

// Definition returns the MCP tool definition for mood_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("mood_stats",
		mcp.WithDescription(
			"Show journal statistics: entries, users, goals and the covered time span. "+
				"With user_id, also refreshes and shows that user's cached metrics.",
		),
		mcp.WithNumber("user_id",
			mcp.Description("Refresh and show cached metrics for this user"),
		),
		mcp.WithString("pin",
			mcp.Description("PIN of the user, required when the user has one"),
		),
	)
}

// Handle processes the mood_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(intArg(req, "user_id", 0))
	if userID > 0 {
		if denied := checkUserPIN(t.store, req, userID); denied != nil {
			return denied, nil
		}
	}

	stats, err := t.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Journal Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Entries**: %d\n", stats.TotalEntries))
	sb.WriteString(fmt.Sprintf("- **Distinct moods**: %d\n", stats.DistinctMoods))
	sb.WriteString(fmt.Sprintf("- **Users**: %d\n", stats.TotalUsers))
	sb.WriteString(fmt.Sprintf("- **Goals**: %d\n", stats.TotalGoals))
	if stats.FirstEntryAt != nil && stats.LastEntryAt != nil {
		sb.WriteString(fmt.Sprintf("- **Span**: %s to %s\n",
			stats.FirstEntryAt.Format("2006-01-02"), stats.LastEntryAt.Format("2006-01-02")))
	}

	if userID <= 0 {
		return mcp.NewToolResultText(sb.String()), nil
	}

	if err := t.store.RefreshStatsCache(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to refresh stats for user %d: %v", userID, err)), nil
	}
	metrics, err := t.store.CachedStats(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read stats for user %d: %v", userID, err)), nil
	}

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString(fmt.Sprintf("\n### User %d\n\n", userID))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("- %s: %g\n", name, metrics[name]))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
