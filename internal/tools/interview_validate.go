package tools

import (
	"context"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateTool handles the interview_validate MCP tool.
// A questionnaire that cannot be loaded yields an invalid report, not a
// tool error.
type ValidateTool struct {
	engine      *flow.Engine
	defaultTier string
}

// NewValidateTool creates a ValidateTool.
func NewValidateTool(engine *flow.Engine, defaultTier string) *ValidateTool {
	return &ValidateTool{engine: engine, defaultTier: defaultTier}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("interview_validate",
		mcp.WithDescription(
			"Check an answer set against the fields required at a tier before generating the document. "+
				"A field is missing when it is absent or an empty string; false is a valid answer.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(answersArgHelp),
		),
		mcp.WithString("tier",
			mcp.Description(tierArgHelp),
		),
	)
}

// Handle processes the interview_validate tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, err := parseAnswersArg(req.GetString("answers", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label := req.GetString("tier", t.defaultTier)

	report := t.engine.Validate(ctx, answers, label)

	var sb strings.Builder
	sb.WriteString("# Validation Report\n\n")
	if report.Valid {
		sb.WriteString("**VALID**: every required field is answered.\n\n")
	} else {
		sb.WriteString("**INVALID**\n\n")
		for _, e := range report.Errors {
			sb.WriteString("- " + e + "\n")
		}
		sb.WriteString("\n")
	}
	if err := writeJSONBlock(&sb, report); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}
