package moodtools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/HendryAvila/moodflow/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── SettingsShowTool ───────────────────────────────────────────────────────

// SettingsShowTool handles the settings_show MCP tool.
type SettingsShowTool struct {
	store settings.Store
}

// NewSettingsShowTool creates a SettingsShowTool.
func NewSettingsShowTool(store settings.Store) *SettingsShowTool {
	return &SettingsShowTool{store: store}
}

// Definition returns the MCP tool definition for settings_show.
func (t *SettingsShowTool) Definition() mcp.Tool {
	return mcp.NewTool("settings_show",
		mcp.WithDescription(
			"Show the mood labels, tags and goals offered as choices when journaling.",
		),
	)
}

// Handle processes the settings_show tool call.
func (t *SettingsShowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FormatSettings(t.store.Load())), nil
}

// FormatSettings renders the vocabulary as markdown.
func FormatSettings(s *settings.Settings) string {
	var b strings.Builder
	b.WriteString("## Settings\n\n")
	for _, c := range settings.Categories {
		fmt.Fprintf(&b, "- **%s**: %s\n", c, strings.Join(s.List(c), ", "))
	}
	return b.String()
}

// ─── SettingsUpdateTool ─────────────────────────────────────────────────────

// Update modes for settings_update.
const (
	modeReplace = "replace"
	modeAdd     = "add"
	modeRemove  = "remove"
)

// SettingsUpdateTool handles the settings_update MCP tool.
type SettingsUpdateTool struct {
	store settings.Store
}

// NewSettingsUpdateTool creates a SettingsUpdateTool.
func NewSettingsUpdateTool(store settings.Store) *SettingsUpdateTool {
	return &SettingsUpdateTool{store: store}
}

// Definition returns the MCP tool definition for settings_update.
func (t *SettingsUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("settings_update",
		mcp.WithDescription(
			"Change one vocabulary list and save the settings document. "+
				"A list emptied by this call falls back to its defaults on the next load.",
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Which list to change"),
			mcp.Enum("moods", "tags", "goals"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("Comma-separated values"),
		),
		mcp.WithString("mode",
			mcp.Description("replace (default), add or remove"),
			mcp.Enum(modeReplace, modeAdd, modeRemove),
			mcp.DefaultString(modeReplace),
		),
	)
}

// Handle processes the settings_update tool call.
func (t *SettingsUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := settings.ParseCategory(req.GetString("category", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	values := listArg(req, "values")
	if len(values) == 0 {
		return mcp.NewToolResultError("'values' is required"), nil
	}

	s := t.store.Load()
	current := s.List(category)

	switch mode := req.GetString("mode", modeReplace); mode {
	case modeReplace:
		current = values
	case modeAdd:
		current = append(current, values...)
	case modeRemove:
		current = slices.DeleteFunc(current, func(v string) bool {
			return slices.Contains(values, v)
		})
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q (valid: replace, add, remove)", mode)), nil
	}
	s.Set(category, current)

	if err := t.store.Save(s); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save settings: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Settings saved. %s: %s", category, strings.Join(s.List(category), ", "),
	)), nil
}
