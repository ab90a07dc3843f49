// Package prompts implements MCP prompt handlers for MoodFlow.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/moodflow/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
)

// CheckinPrompt handles the mood-checkin MCP prompt.
// It guides the AI through a short daily check-in that ends in mood_add.
type CheckinPrompt struct {
	settings settings.Store
}

// NewCheckinPrompt creates a CheckinPrompt. The vocabulary is read on every
// request so edits made through settings_update show up immediately.
func NewCheckinPrompt(prefs settings.Store) *CheckinPrompt {
	return &CheckinPrompt{settings: prefs}
}

// Definition returns the MCP prompt definition for registration.
func (p *CheckinPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("mood-checkin",
		mcp.WithPromptDescription(
			"Run a short mood check-in: pick a mood, optional tags and a note, then save it to the journal.",
		),
		mcp.WithArgument("user_id",
			mcp.ArgumentDescription("Journal user to record the entry for (optional)"),
		),
	)
}

// Handle processes the mood-checkin prompt request.
func (p *CheckinPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s := p.settings.Load()

	userLine := "Do not pass user_id."
	if args := req.Params.Arguments; args != nil {
		if id, ok := args["user_id"]; ok && id != "" {
			userLine = fmt.Sprintf("Pass user_id=%s to each call, with the PIN if the user has one.", id)
		}
	}

	return &mcp.GetPromptResult{
		Description: "MoodFlow daily check-in",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Let's do my mood check-in.\n\n"+
						"1. Ask how I feel. Offer these moods: %s. Any other word is fine too.\n"+
						"2. Offer these tags (optional, pick any): %s\n"+
						"3. Ask whether today relates to one of my goals: %s\n"+
						"4. Ask for a short note (optional)\n"+
						"5. Call `mood_add` with what I chose. %s\n"+
						"6. Finish with `mood_summary` and one encouraging sentence.",
					strings.Join(s.AvailableMoods, ", "),
					strings.Join(s.Tags, " "),
					strings.Join(s.Goals, ", "),
					userLine,
				)),
			},
		},
	}, nil
}
