// Package resources implements MCP resource handlers for MoodFlow.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (moodflow://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/moodflow/internal/journal"
	"github.com/HendryAvila/moodflow/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	SettingsURI = "moodflow://settings"
	SummaryURI  = "moodflow://summary"
)

// Handler manages MoodFlow resource endpoints.
type Handler struct {
	journal  *journal.Store
	settings settings.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *journal.Store, prefs settings.Store) *Handler {
	return &Handler{journal: store, settings: prefs}
}

// SettingsResource returns the MCP resource definition for the vocabulary.
func (h *Handler) SettingsResource() mcp.Resource {
	return mcp.NewResource(
		SettingsURI,
		"MoodFlow Settings",
		mcp.WithResourceDescription("Mood labels, tags and goals offered when journaling"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSettings returns the loaded settings document as JSON.
func (h *Handler) HandleSettings(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.settings.Load())
}

// SummaryResource returns the MCP resource definition for the mood summary.
func (h *Handler) SummaryResource() mcp.Resource {
	return mcp.NewResource(
		SummaryURI,
		"MoodFlow Mood Summary",
		mcp.WithResourceDescription("Entry count per mood label across the whole journal"),
		mcp.WithMIMEType("application/json"),
	)
}

// summaryDoc is the JSON body of the summary resource.
type summaryDoc struct {
	TotalEntries int                 `json:"total_entries"`
	Moods        []journal.MoodCount `json:"moods"`
}

// HandleSummary returns the mood summary as JSON. Storage errors are
// reported inside the resource body.
func (h *Handler) HandleSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	entries, err := h.journal.ListAll()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, summaryDoc{
		TotalEntries: len(entries),
		Moods:        journal.RankMoods(journal.SummarizeByMood(entries)),
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
