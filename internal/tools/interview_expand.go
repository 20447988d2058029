package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/interview"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExpandTool handles the interview_expand MCP tool.
// It replays the answers through a fresh session, which repeats trigger
// passes until the question set stops growing, and reports what is left.
type ExpandTool struct {
	engine      *flow.Engine
	skipper     interview.Skipper
	logger      interview.Logger
	defaultTier string
}

// NewExpandTool creates an ExpandTool. skipper and logger may be nil.
func NewExpandTool(engine *flow.Engine, skipper interview.Skipper, logger interview.Logger, defaultTier string) *ExpandTool {
	return &ExpandTool{engine: engine, skipper: skipper, logger: logger, defaultTier: defaultTier}
}

// Definition returns the MCP tool definition for registration.
func (t *ExpandTool) Definition() mcp.Tool {
	return mcp.NewTool("interview_expand",
		mcp.WithDescription(
			"Run the whole interview loop for the answers collected so far: resolve the tier's questions, "+
				"apply triggers until no new question appears, evaluate skip conditions, and list what is "+
				"still pending. Call after every batch of answers; the interview is done when nothing is pending.",
		),
		mcp.WithString("tier",
			mcp.Description(tierArgHelp),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tag filter for the initial question set."),
		),
		mcp.WithString("answers",
			mcp.Description(answersArgHelp+" Omit to get the initial question set."),
		),
	)
}

type expandPayload struct {
	SessionID string          `json:"sessionId"`
	Tier      string          `json:"tier"`
	Active    []string        `json:"active"`
	Pending   []string        `json:"pending"`
	Skipped   []string        `json:"skipped"`
	Round     interview.Round `json:"round"`
	Report    flow.Report     `json:"report"`
}

// Handle processes the interview_expand tool call.
func (t *ExpandTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	label := req.GetString("tier", t.defaultTier)
	tags := splitTags(req.GetString("tags", ""))
	answers, err := parseAnswersArg(req.GetString("answers", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, err := t.engine.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("questionnaire unavailable: %v", err)), nil
	}

	var opts []interview.Option
	if t.skipper != nil {
		opts = append(opts, interview.WithSkipper(t.skipper))
	}
	opts = append(opts, interview.WithLogger(t.logger))

	session, err := interview.New(snap, label, tags, opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	round := session.Answer(answers)
	report := session.Finalize()
	pending := session.Pending()
	skipped := session.Skipped()

	var sb strings.Builder
	sb.WriteString("# Interview Progress\n\n")
	fmt.Fprintf(&sb, "- **Tier**: %s\n", session.Tier())
	fmt.Fprintf(&sb, "- **Answered**: %d\n", answers.Len())
	fmt.Fprintf(&sb, "- **Active questions**: %d\n", len(session.Active()))
	fmt.Fprintf(&sb, "- **Trigger passes**: %d\n", round.Passes)
	if len(round.Fired) > 0 {
		fmt.Fprintf(&sb, "- **Fired**: %s\n", strings.Join(round.Fired, ", "))
	}
	if len(round.Added) > 0 {
		fmt.Fprintf(&sb, "- **Follow-ups added**: %s\n", strings.Join(round.Added, ", "))
	}
	sb.WriteString("\n")

	if len(pending) == 0 {
		sb.WriteString("## Pending\n\n_Nothing pending. The interview is complete._\n\n")
	} else {
		fmt.Fprintf(&sb, "## Pending (%d)\n\n", len(pending))
		writeStageGroups(&sb, session.PendingByStage())
	}
	if len(skipped) > 0 {
		sb.WriteString("## Skipped\n\n")
		for _, q := range skipped {
			fmt.Fprintf(&sb, "- %s (`%s`)\n", q.ID, q.SkipIf)
		}
		sb.WriteString("\n")
	}

	if err := writeJSONBlock(&sb, expandPayload{
		SessionID: session.ID(),
		Tier:      string(session.Tier()),
		Active:    questionIDs(session.Active()),
		Pending:   questionIDs(pending),
		Skipped:   questionIDs(skipped),
		Round:     round,
		Report:    report,
	}); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}
