package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/schemastore"
	"github.com/mark3labs/mcp-go/mcp"
)

// SchemaImportTool handles the interview_schema_import MCP tool.
// It copies a questionnaire directory into the sqlite store.
type SchemaImportTool struct {
	store      *schemastore.Store
	defaultDir string
}

// NewSchemaImportTool creates a SchemaImportTool. defaultDir is imported
// when the caller gives no path.
func NewSchemaImportTool(store *schemastore.Store, defaultDir string) *SchemaImportTool {
	return &SchemaImportTool{store: store, defaultDir: defaultDir}
}

// Definition returns the MCP tool definition for registration.
func (t *SchemaImportTool) Definition() mcp.Tool {
	return mcp.NewTool("interview_schema_import",
		mcp.WithDescription(
			"Import a questionnaire directory ("+schema.DefaultQuestionnaireFile+" plus optional "+
				schema.DefaultMetadataFile+") into the schema store. The newest import becomes the "+
				"questionnaire served when the server runs from the store. Structural warnings are listed.",
		),
		mcp.WithString("path",
			mcp.Description("Directory holding the questionnaire files. Defaults to the configured schema directory."),
		),
	)
}

// Handle processes the interview_schema_import tool call.
func (t *SchemaImportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := strings.TrimSpace(req.GetString("path", t.defaultDir))
	if dir == "" {
		return mcp.NewToolResultError("'path' is required: no default schema directory is configured"), nil
	}

	id, snap, err := t.store.ImportDir(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("# Questionnaire Imported\n\n")
	fmt.Fprintf(&sb, "- **Revision**: %s\n", id)
	fmt.Fprintf(&sb, "- **Version**: %s\n", snap.Questionnaire.Version)
	fmt.Fprintf(&sb, "- **Questions**: %d\n", len(snap.Questionnaire.Questions))
	fmt.Fprintf(&sb, "- **Metadata entries**: %d\n\n", len(snap.Metadata))

	if warnings := schema.Lint(snap); len(warnings) > 0 {
		fmt.Fprintf(&sb, "## Warnings (%d)\n\n", len(warnings))
		for _, w := range warnings {
			sb.WriteString("- " + w + "\n")
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}
