package moodtools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// UserCreateTool handles the user_create MCP tool.
type UserCreateTool struct {
	store *journal.Store
}

// NewUserCreateTool creates a UserCreateTool.
func NewUserCreateTool(store *journal.Store) *UserCreateTool {
	return &UserCreateTool{store: store}
}

// Definition returns the MCP tool definition for user_create.
func (t *UserCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("user_create",
		mcp.WithDescription(
			"Create a journal user. An optional PIN is then required to add entries for the user "+
				"and to read the user's history, summary or stats.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name"),
		),
		mcp.WithString("pin",
			mcp.Description("Optional PIN, stored only as a hash"),
		),
	)
}

// Handle processes the user_create tool call.
func (t *UserCreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	pin := req.GetString("pin", "")

	id, err := t.store.CreateUser(name, pin)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create user: %v", err)), nil
	}

	protected := "without PIN"
	if pin != "" {
		protected = "PIN protected"
	}
	return mcp.NewToolResultText(fmt.Sprintf("User %q created (%s)\nID: %d", name, protected, id)), nil
}
