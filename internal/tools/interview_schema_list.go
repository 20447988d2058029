package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/schemastore"
	"github.com/mark3labs/mcp-go/mcp"
)

// SchemaListTool handles the interview_schema_list MCP tool.
type SchemaListTool struct {
	store *schemastore.Store
}

// NewSchemaListTool creates a SchemaListTool.
func NewSchemaListTool(store *schemastore.Store) *SchemaListTool {
	return &SchemaListTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SchemaListTool) Definition() mcp.Tool {
	return mcp.NewTool("interview_schema_list",
		mcp.WithDescription("List imported questionnaire revisions, newest first. The first one is active."),
	)
}

// Handle processes the interview_schema_list tool call.
func (t *SchemaListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	revisions, err := t.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing revisions failed: %v", err)), nil
	}
	if len(revisions) == 0 {
		return mcp.NewToolResultText("No questionnaire has been imported yet. Use interview_schema_import."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d revisions:\n\n", len(revisions))
	for i, r := range revisions {
		marker := ""
		if i == 0 {
			marker = " **(active)**"
		}
		fmt.Fprintf(&sb, "%d. `%s` version %s, %d questions, imported %s%s\n",
			i+1, r.ID, r.Version, r.QuestionCount, r.ImportedAt, marker)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
