// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HendryAvila/moodflow/internal/config"
	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/HendryAvila/moodflow/internal/moodtools"
	"github.com/HendryAvila/moodflow/internal/prompts"
	"github.com/HendryAvila/moodflow/internal/resources"
	"github.com/HendryAvila/moodflow/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// tool is the shape shared by every moodtools handler.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the journal database and must be
// called on shutdown (typically via defer). It is always non-nil.
func New(cfg *config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// --- Create shared dependencies ---

	store, err := journal.New(journal.Config{
		DataDir:     cfg.DataDir,
		FileName:    cfg.DBFile,
		RecentLimit: cfg.RecentLimit,
		Logger:      logger.With("store", "journal"),
	})
	if err != nil {
		return nil, noop, fmt.Errorf("opening journal: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("journal close failed", "error", err)
		}
	}

	prefs := settings.NewFileStore(cfg.SettingsPath(), logger.With("store", "settings"))

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"moodflow",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	for _, t := range buildTools(store, prefs) {
		s.AddTool(t.Definition(), t.Handle)
	}

	// --- Register prompts ---

	checkin := prompts.NewCheckinPrompt(prefs)
	s.AddPrompt(checkin.Definition(), checkin.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store, prefs)
	s.AddResource(resourceHandler.SettingsResource(), resourceHandler.HandleSettings)
	s.AddResource(resourceHandler.SummaryResource(), resourceHandler.HandleSummary)

	logger.Info("server ready",
		"db", cfg.DBPath(),
		"settings", prefs.Path(),
		"version", Version,
	)
	return s, cleanup, nil
}

// buildTools creates every MoodFlow tool in registration order.
func buildTools(store *journal.Store, prefs settings.Store) []tool {
	return []tool{
		// --- Journal ---
		moodtools.NewAddTool(store, prefs),
		moodtools.NewHistoryTool(store),
		moodtools.NewSummaryTool(store),
		moodtools.NewStatsTool(store),
		moodtools.NewExportTool(store),
		moodtools.NewImportTool(store),

		// --- Vocabulary ---
		moodtools.NewSettingsShowTool(prefs),
		moodtools.NewSettingsUpdateTool(prefs),

		// --- Users & goals ---
		moodtools.NewUserCreateTool(store),
		moodtools.NewGoalAddTool(store),
		moodtools.NewGoalListTool(store),
		moodtools.NewGoalCompleteTool(store),
	}
}

// noop is the cleanup returned when nothing was opened.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use MoodFlow.
func serverInstructions() string {
	return `You have access to MoodFlow, a private mood journal stored on this machine.

## What it does
MoodFlow records how the user feels over time. Each entry has a mood label,
a timestamp, optional tags and an optional note. Entries are never edited or
deleted through these tools.

## Recording
- Use mood_add when the user tells you how they feel. Keep the user's own
  word for the mood; the settings list is a suggestion, not a constraint.
- Tags are comma-separated. Goals and users are optional.
- If the user has a PIN, ask for it and pass it along. Never store or repeat it.

## Reviewing
- mood_history shows recent entries (detail_level=summary for a compact view).
- mood_summary counts entries per mood. mood_stats shows totals and time span.
- The moodflow://summary and moodflow://settings resources expose the same
  data as JSON.

## Vocabulary
- settings_show lists the moods, tags and goals offered as choices.
- settings_update changes one list. Only change it when the user asks.

## Tone
Be warm and brief. Do not diagnose. If the user describes a crisis, suggest
contacting local emergency services or a trusted person.`
}
