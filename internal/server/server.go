// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the schema loader, the flow
// engine, and the skip_if evaluator, and injects them into the tools,
// prompts, and resources. No interview logic lives here, only wiring.
package server

import (
	"context"
	"log"

	"github.com/HendryAvila/hoofy-interview/internal/condition"
	"github.com/HendryAvila/hoofy-interview/internal/config"
	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/prompts"
	"github.com/HendryAvila/hoofy-interview/internal/resources"
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/schemastore"
	"github.com/HendryAvila/hoofy-interview/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// openStore is replaceable in tests.
var openStore = schemastore.New

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the schema store and must be called
// on shutdown. It is always non-nil and safe to call even if the store
// failed to open.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}
	logger := log.Default()

	// --- Schema store ---
	//
	// The store is an independent subsystem: if it fails to open, the
	// server falls back to reading the schema directory and the import
	// tools are not registered.

	cleanup := noop
	store, storeErr := openStore(schemastore.Config{DataDir: cfg.DataDir})
	if storeErr != nil {
		log.Printf("WARNING: schema store disabled: %v", storeErr)
		store = nil
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("WARNING: schema store close: %v", err)
			}
		}
	}

	loader := selectLoader(cfg, store)
	engine := flow.NewEngine(loader, flow.WithLogger(logger))
	evaluator := condition.NewEvaluator()
	checkSchema(engine, evaluator)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"hoofy-interview",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register interview tools ---

	questionsTool := tools.NewQuestionsTool(engine, cfg.DefaultTier)
	s.AddTool(questionsTool.Definition(), questionsTool.Handle)

	triggersTool := tools.NewTriggersTool(engine)
	s.AddTool(triggersTool.Definition(), triggersTool.Handle)

	validateTool := tools.NewValidateTool(engine, cfg.DefaultTier)
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	expandTool := tools.NewExpandTool(engine, evaluator, logger, cfg.DefaultTier)
	s.AddTool(expandTool.Definition(), expandTool.Handle)

	if store != nil {
		importTool := tools.NewSchemaImportTool(store, cfg.SchemaDir)
		s.AddTool(importTool.Definition(), importTool.Handle)

		listTool := tools.NewSchemaListTool(store)
		s.AddTool(listTool.Definition(), listTool.Handle)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt(cfg.DefaultTier)
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(engine)
	s.AddResource(resourceHandler.SummaryResource(), resourceHandler.HandleSummary)
	s.AddResource(resourceHandler.QuestionnaireResource(), resourceHandler.HandleQuestionnaire)

	return s, cleanup, nil
}

// noop is the cleanup used when the store is not open.
func noop() {}

// selectLoader picks the snapshot source. The sqlite source needs an open
// store; without one the schema directory is used instead.
func selectLoader(cfg config.Config, store *schemastore.Store) schema.Loader {
	files := cfg.FileLoader()
	if cfg.Source != config.SourceSQLite {
		return files
	}
	if store == nil {
		log.Printf("WARNING: %s=%s but the store is unavailable, reading %s", config.EnvSource, cfg.Source, cfg.SchemaDir)
		return files
	}
	if cfg.SeedStore {
		seedStore(store, files)
	}
	return store
}

// seedStore imports the schema directory into an empty store.
func seedStore(store *schemastore.Store, files *schema.FileLoader) {
	ctx := context.Background()
	revisions, err := store.List(ctx)
	if err != nil {
		log.Printf("WARNING: schema store seed: %v", err)
		return
	}
	if len(revisions) > 0 || !files.Exists() {
		return
	}
	snap, err := files.Load(ctx)
	if err != nil {
		log.Printf("WARNING: schema store seed: %v", err)
		return
	}
	id, err := store.Import(ctx, snap)
	if err != nil {
		log.Printf("WARNING: schema store seed: %v", err)
		return
	}
	log.Printf("seeded schema store from %s (revision %s)", files.Dir(), id)
}

// checkSchema loads the questionnaire once at startup and logs structural
// warnings and skip_if expressions that do not compile. The server starts
// either way; tools report an unavailable questionnaire per call.
func checkSchema(engine *flow.Engine, evaluator *condition.Evaluator) {
	snap, err := engine.Snapshot(context.Background())
	if err != nil {
		log.Printf("WARNING: %v", err)
		return
	}
	for _, w := range schema.Lint(snap) {
		log.Printf("WARNING: schema: %s", w)
	}
	for _, q := range snap.Questionnaire.Questions {
		if q.SkipIf == "" {
			continue
		}
		if err := evaluator.Compile(q.SkipIf); err != nil {
			log.Printf("WARNING: skip_if for %s does not compile: %v", q.ID, err)
		}
	}
}

func serverInstructions() string {
	return `You have access to hoofy-interview, an MCP server that runs structured
requirements interviews before a document is generated.

## HOW THE INTERVIEW WORKS

1. Pick a complexity tier with the user: simple, startup, or enterprise.
   (base, minimal, mcp and mcp-specific are accepted too.)
2. Call interview_questions with that tier to get the initial questions.
   Ask them stage by stage. Do not invent questions of your own.
3. After every batch of answers, call interview_expand with ALL answers
   given so far. It surfaces follow-up questions triggered by the answers
   and tells you which questions to skip.
4. Keep asking the pending questions until interview_expand reports that
   nothing is pending.
5. Call interview_validate before writing any document. Only proceed when
   the report is VALID. If it is INVALID, ask for each missing field.

## ANSWER FORMAT

Pass answers as a JSON object keyed by question id, in the order the user
answered. Use true/false for yes/no questions, a string for single choice,
and an array of strings for multi-select. An empty string counts as
unanswered; false is an answer.

## SCHEMA MANAGEMENT

When the server keeps questionnaires in its store, interview_schema_import
loads a questionnaire directory and interview_schema_list shows revisions.
The resource interview://schema/summary lists the required fields per tier.`
}
