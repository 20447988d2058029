// Package tools implements the MCP tool handlers for the interview engine.
//
// Each tool is a struct that receives its dependencies through a
// constructor and exposes Definition() for registration and Handle() for
// mcp-go's CallToolRequest signature. One file per tool.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
)

// answersArgHelp documents the answers argument shared by several tools.
const answersArgHelp = "Answers as a JSON object keyed by question id, in the order they were given. " +
	"Values are booleans, strings, or arrays of strings for multi-select questions. " +
	`Example: {"privacy.pii": true, "deployment.model": "hybrid"}`

// tierArgHelp documents the tier argument.
var tierArgHelp = "Complexity tier: " + strings.Join(tier.Labels(), ", ") +
	". Unknown labels fall back to base."

// parseAnswersArg decodes the answers argument. An empty string is an
// empty answer set.
func parseAnswersArg(raw string) (schema.Answers, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.Answers{}, nil
	}
	a, err := schema.ParseAnswers([]byte(raw), schema.FormatJSON)
	if err != nil {
		return schema.Answers{}, fmt.Errorf("'answers' must be a JSON object: %w", err)
	}
	return a, nil
}

// splitTags parses a comma-separated tag list.
func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// writeQuestion appends one question as a markdown bullet.
func writeQuestion(sb *strings.Builder, q schema.Question) {
	fmt.Fprintf(sb, "- **%s**: %s", q.ID, q.Prompt)
	if q.Type != "" {
		fmt.Fprintf(sb, " _(%s)_", q.Type)
	}
	sb.WriteString("\n")
	if len(q.Options) > 0 {
		fmt.Fprintf(sb, "  - options: %s\n", strings.Join(q.Options, ", "))
	}
	if q.Help != "" {
		fmt.Fprintf(sb, "  - help: %s\n", q.Help)
	}
	if q.SkipIf != "" {
		fmt.Fprintf(sb, "  - skip if: `%s`\n", q.SkipIf)
	}
}

// writeStageGroups appends questions grouped under stage headings.
func writeStageGroups(sb *strings.Builder, groups []schema.StageGroup) {
	for _, g := range groups {
		stage := g.Stage
		if stage == "" {
			stage = "other"
		}
		fmt.Fprintf(sb, "### %s\n\n", stage)
		for _, q := range g.Questions {
			writeQuestion(sb, q)
		}
		sb.WriteString("\n")
	}
}

// writeJSONBlock appends v as an indented JSON code block.
func writeJSONBlock(sb *strings.Builder, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	sb.WriteString("```json\n")
	sb.Write(data)
	sb.WriteString("\n```\n")
	return nil
}

// questionIDs extracts ids in order. Never nil.
func questionIDs(questions []schema.Question) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}
