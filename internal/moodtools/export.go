package moodtools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExportTool handles the mood_export MCP tool.
type ExportTool struct {
	store *journal.Store
}

// NewExportTool creates an ExportTool.
func NewExportTool(store *journal.Store) *ExportTool {
	return &ExportTool{store: store}
}

// Definition returns the MCP tool definition for mood_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("mood_export",
		mcp.WithDescription(
			"Export users, goals and all entries as JSON. PINs are not included.",
		),
	)
}

// Handle processes the mood_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := t.store.Export()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// ─── ImportTool ─────────────────────────────────────────────────────────────

// ImportTool handles the mood_import MCP tool.
type ImportTool struct {
	store *journal.Store
}

// NewImportTool creates an ImportTool.
func NewImportTool(store *journal.Store) *ImportTool {
	return &ImportTool{store: store}
}

// Definition returns the MCP tool definition for mood_import.
func (t *ImportTool) Definition() mcp.Tool {
	return mcp.NewTool("mood_import",
		mcp.WithDescription(
			"Import a document produced by mood_export. Records get new ids; the import is all or nothing.",
		),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description("The JSON document returned by mood_export"),
		),
	)
}

// Handle processes the mood_import tool call.
func (t *ImportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("data", "")
	if raw == "" {
		return mcp.NewToolResultError("'data' is required"), nil
	}

	var data journal.ExportData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid export document: %v", err)), nil
	}
	if data.Version != journal.ExportVersion {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported export version %q (want %s)", data.Version, journal.ExportVersion)), nil
	}

	res, err := t.store.Import(&data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Imported %d users, %d goals, %d entries",
		res.UsersImported, res.GoalsImported, res.EntriesImported,
	)), nil
}
