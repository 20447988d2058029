// Package prompts implements MCP prompt handlers for the interview.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a sequence of tool calls. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/HendryAvila/hoofy-interview/internal/tier"
	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the interview-start MCP prompt.
// It walks the AI through the resolve, answer, expand, validate loop.
type StartPrompt struct {
	defaultTier string
}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt(defaultTier string) *StartPrompt {
	return &StartPrompt{defaultTier: defaultTier}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("interview-start",
		mcp.WithPromptDescription(
			"Start a requirements interview. The assistant asks the questions for your "+
				"complexity tier, follows up where your answers call for it, and validates "+
				"the result before any document is written.",
		),
		mcp.WithArgument("tier",
			mcp.ArgumentDescription("Complexity tier: simple, startup, enterprise (or base, minimal, mcp). Default: "+p.defaultTier),
		),
		mcp.WithArgument("tags",
			mcp.ArgumentDescription("Optional comma-separated tags to narrow the interview"),
		),
	)
}

// Handle processes the interview-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	label := p.defaultTier
	tags := ""
	if args := req.Params.Arguments; args != nil {
		if t, ok := args["tier"]; ok && t != "" {
			label = t
		}
		tags = args["tags"]
	}

	tagClause := ""
	if tags != "" {
		tagClause = fmt.Sprintf(" and tags='%s'", tags)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Requirements interview (%s tier)", tier.Normalize(label)),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to run a requirements interview at the '%s' tier.\n\n"+
						"Please:\n"+
						"1. Run `interview_questions` with tier='%s'%s and ask me the questions stage by stage\n"+
						"2. After each batch of my answers, run `interview_expand` with the same tier, tags, "+
						"and ALL answers so far as a JSON object\n"+
						"3. Ask me the questions it lists as pending, and skip the ones it lists as skipped\n"+
						"4. Repeat until nothing is pending\n"+
						"5. Run `interview_validate` and only report the interview as finished when it is VALID\n\n"+
						"Keep my answers exactly as I give them: booleans as true/false, multi-select answers as lists.",
					label, label, tagClause,
				)),
			},
		},
	}, nil
}
