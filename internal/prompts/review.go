package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the interview-review MCP prompt.
// It asks the AI to check collected answers before a document is generated.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("interview-review",
		mcp.WithPromptDescription(
			"Review the answers collected so far: list follow-ups still open "+
				"and the required fields that are missing.",
		),
	)
}

// Handle processes the interview-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Interview review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please review my interview answers.\n\n" +
						"1. Run `interview_expand` with every answer I have given so far\n" +
						"2. Show me the pending questions grouped by stage\n" +
						"3. Run `interview_validate` and list each missing field with its question\n" +
						"4. Tell me exactly what I still need to answer",
				),
			},
		},
	}, nil
}
