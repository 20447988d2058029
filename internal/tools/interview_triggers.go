package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// TriggersTool handles the interview_triggers MCP tool.
// It runs one trigger pass over the given answers.
type TriggersTool struct {
	engine *flow.Engine
}

// NewTriggersTool creates a TriggersTool.
func NewTriggersTool(engine *flow.Engine) *TriggersTool {
	return &TriggersTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *TriggersTool) Definition() mcp.Tool {
	return mcp.NewTool("interview_triggers",
		mcp.WithDescription(
			"Apply answer-driven triggers once and return the follow-up questions they surface. "+
				"This is a single pass: answer the returned questions and call again until nothing new "+
				"is returned, or use interview_expand to run the loop in one call.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(answersArgHelp),
		),
	)
}

type triggersPayload struct {
	NewlyTriggered []string `json:"newlyTriggeredQuestions"`
	FiredTriggers  []string `json:"firedTriggers"`
}

// Handle processes the interview_triggers tool call.
func (t *TriggersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("answers", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("'answers' is required"), nil
	}
	answers, err := parseAnswersArg(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.engine.ApplyTriggers(ctx, answers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("questionnaire unavailable: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("# Triggered Questions\n\n")
	if len(result.FiredTriggers) == 0 {
		sb.WriteString("_No triggers fired. The question set is complete for these answers._\n\n")
	} else {
		fmt.Fprintf(&sb, "Fired: %s\n\n", strings.Join(result.FiredTriggers, ", "))
		for _, q := range result.NewlyTriggered {
			writeQuestion(&sb, q)
		}
		sb.WriteString("\n")
	}

	if err := writeJSONBlock(&sb, triggersPayload{
		NewlyTriggered: questionIDs(result.NewlyTriggered),
		FiredTriggers:  result.FiredTriggers,
	}); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}
