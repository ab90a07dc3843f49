package moodtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── GoalAddTool ────────────────────────────────────────────────────────────

// GoalAddTool handles the goal_add MCP tool.
type GoalAddTool struct {
	store *journal.Store
}

// NewGoalAddTool creates a GoalAddTool.
func NewGoalAddTool(store *journal.Store) *GoalAddTool {
	return &GoalAddTool{store: store}
}

// Definition returns the MCP tool definition for goal_add.
func (t *GoalAddTool) Definition() mcp.Tool {
	return mcp.NewTool("goal_add",
		mcp.WithDescription("Add a habit goal for a user. Entries can link to it with goal_id."),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Owner of the goal"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short goal title, e.g. 'No Alcohol'"),
		),
		mcp.WithString("description",
			mcp.Description("Optional details"),
		),
	)
}

// Handle processes the goal_add tool call.
func (t *GoalAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := intArg(req, "user_id", 0)
	if userID <= 0 {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	if _, err := t.store.GetUser(int64(userID)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add goal: %v", err)), nil
	}
	id, err := t.store.AddGoal(int64(userID), title, req.GetString("description", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add goal: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Goal %q added\nID: %d", title, id)), nil
}

// ─── GoalListTool ───────────────────────────────────────────────────────────

// GoalListTool handles the goal_list MCP tool.
type GoalListTool struct {
	store *journal.Store
}

// NewGoalListTool creates a GoalListTool.
func NewGoalListTool(store *journal.Store) *GoalListTool {
	return &GoalListTool{store: store}
}

// Definition returns the MCP tool definition for goal_list.
func (t *GoalListTool) Definition() mcp.Tool {
	return mcp.NewTool("goal_list",
		mcp.WithDescription("List a user's goals."),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Owner of the goals"),
		),
		mcp.WithBoolean("open_only",
			mcp.Description("Hide completed goals"),
		),
	)
}

// Handle processes the goal_list tool call.
func (t *GoalListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := intArg(req, "user_id", 0)
	if userID <= 0 {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}
	openOnly := boolArg(req, "open_only", false)

	goals, err := t.store.ListGoals(int64(userID))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list goals: %v", err)), nil
	}

	var b strings.Builder
	shown := 0
	for _, g := range goals {
		if openOnly && g.Completed {
			continue
		}
		mark := " "
		if g.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] #%d %s", mark, g.ID, g.Title)
		if g.Description != nil {
			fmt.Fprintf(&b, ": %s", *g.Description)
		}
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No goals for user %d.", userID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("## Goals (%d)\n\n%s", shown, b.String())), nil
}

// ─── GoalCompleteTool ───────────────────────────────────────────────────────

// GoalCompleteTool handles the goal_complete MCP tool.
type GoalCompleteTool struct {
	store *journal.Store
}

// NewGoalCompleteTool creates a GoalCompleteTool.
func NewGoalCompleteTool(store *journal.Store) *GoalCompleteTool {
	return &GoalCompleteTool{store: store}
}

// Definition returns the MCP tool definition for goal_complete.
func (t *GoalCompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("goal_complete",
		mcp.WithDescription("Mark a goal as completed."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Goal ID"),
		),
	)
}

// Handle processes the goal_complete tool call.
func (t *GoalCompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	if err := t.store.CompleteGoal(int64(id)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete goal: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Goal %d completed", id)), nil
}
