package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
	"github.com/mark3labs/mcp-go/mcp"
)

// QuestionsTool handles the interview_questions MCP tool.
// It returns the questions that apply for a tier and tag selection.
type QuestionsTool struct {
	engine      *flow.Engine
	defaultTier string
}

// NewQuestionsTool creates a QuestionsTool. defaultTier is used when the
// caller omits the tier argument.
func NewQuestionsTool(engine *flow.Engine, defaultTier string) *QuestionsTool {
	return &QuestionsTool{engine: engine, defaultTier: defaultTier}
}

// Definition returns the MCP tool definition for registration.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("interview_questions",
		mcp.WithDescription(
			"List the interview questions that apply for a complexity tier and an optional tag filter. "+
				"Call this first to get the initial question set, then ask the user each question in order. "+
				"Questions with a skip condition are included; decide whether to skip them once answers exist.",
		),
		mcp.WithString("tier",
			mcp.Description(tierArgHelp),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags. When set, only questions carrying at least one of them are returned."),
		),
	)
}

// Handle processes the interview_questions tool call.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	label := req.GetString("tier", t.defaultTier)
	tags := splitTags(req.GetString("tags", ""))

	snap, err := t.engine.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("questionnaire unavailable: %v", err)), nil
	}
	questions, err := t.engine.Resolve(ctx, label, tags)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("questionnaire unavailable: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Interview Questions\n\n")
	fmt.Fprintf(&sb, "- **Tier**: %s", tier.Normalize(label))
	if !tier.IsKnown(label) {
		fmt.Fprintf(&sb, " (unknown label %q, using base)", label)
	}
	sb.WriteString("\n")
	if len(tags) > 0 {
		fmt.Fprintf(&sb, "- **Tags**: %s\n", strings.Join(tags, ", "))
	}
	fmt.Fprintf(&sb, "- **Questionnaire version**: %s\n", snap.Questionnaire.Version)
	fmt.Fprintf(&sb, "- **Count**: %d\n\n", len(questions))

	if len(questions) == 0 {
		sb.WriteString("_No questions apply for this selection._\n")
		return mcp.NewToolResultText(sb.String()), nil
	}

	writeStageGroups(&sb, snap.Questionnaire.ByStage(questions))
	sb.WriteString("After each batch of answers, call `interview_triggers` (or `interview_expand`) " +
		"to surface follow-up questions.\n")
	return mcp.NewToolResultText(sb.String()), nil
}
