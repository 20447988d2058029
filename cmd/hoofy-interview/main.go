// hoofy-interview: schema-driven requirements interviews over MCP.
//
// The server resolves which questions apply for a complexity tier, expands
// the set as answers trigger follow-ups, and validates the answers before a
// document is generated.
//
// Usage:
//
//	hoofy-interview serve       # Start MCP server (stdio transport)
//	hoofy-interview questions   # Print the questions for a tier
//	hoofy-interview validate    # Validate an answers file
//	hoofy-interview lint        # Check a questionnaire directory
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/HendryAvila/hoofy-interview/internal/condition"
	"github.com/HendryAvila/hoofy-interview/internal/config"
	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/interview"
	"github.com/HendryAvila/hoofy-interview/internal/report"
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	ivserver "github.com/HendryAvila/hoofy-interview/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "serve":
		if err := serve(args[1:], stderr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitInvalid
		}
		return exitOK
	case "questions":
		return runQuestions(args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "lint":
		return runLint(args[1:], stdout, stderr)
	case "--help", "-h", "help":
		printUsage(stdout)
		return exitOK
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "hoofy-interview v%s\n", ivserver.Version)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return exitUsage
	}
}

func serve(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env", config.DefaultEnvFile, "dotenv file to load before reading the environment")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	s, cleanup, err := ivserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

// commonFlags are shared by the offline subcommands.
type commonFlags struct {
	schemaDir string
	tier      string
	noColor   bool
}

func newFlagSet(name string, stderr io.Writer, c *commonFlags) *flag.FlagSet {
	def := config.FromEnv()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.schemaDir, "schema", def.SchemaDir, "questionnaire directory")
	fs.StringVar(&c.tier, "tier", def.DefaultTier, "complexity tier (simple, startup, enterprise, ...)")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	return fs
}

func loadSnapshot(dir string) (*schema.Snapshot, error) {
	cfg := config.FromEnv()
	cfg.SchemaDir = dir
	return cfg.FileLoader().Load(context.Background())
}

func runQuestions(args []string, stdout, stderr io.Writer) int {
	var c commonFlags
	fs := newFlagSet("questions", stderr, &c)
	tags := fs.String("tags", "", "comma-separated tag filter")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	snap, err := loadSnapshot(c.schemaDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}
	questions := flow.Resolve(snap, c.tier, splitList(*tags))
	title := fmt.Sprintf("Questions for %s", snap.Questionnaire.Version)
	fmt.Fprint(stdout, report.Questions(title, snap.Questionnaire.ByStage(questions), c.noColor))
	return exitOK
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	var c commonFlags
	fs := newFlagSet("validate", stderr, &c)
	answersFile := fs.String("answers", "", "answers file (.yaml or .json)")
	followUps := fs.Bool("follow-ups", false, "also require questions surfaced by triggers")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *answersFile == "" {
		fmt.Fprintln(stderr, "Error: --answers is required")
		return exitUsage
	}

	snap, err := loadSnapshot(c.schemaDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}
	answers, err := schema.LoadAnswersFile(*answersFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}

	var result flow.Report
	if *followUps {
		session, err := interview.New(snap, c.tier, nil, interview.WithSkipper(condition.NewEvaluator()))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitInvalid
		}
		round := session.Answer(answers)
		fmt.Fprint(stdout, report.Triggers(flow.TriggerResult{
			NewlyTriggered: questionsByID(snap, round.Added),
			FiredTriggers:  round.Fired,
		}, c.noColor))
		result = session.Finalize()
	} else {
		result = flow.Validate(snap, answers, c.tier)
	}

	fmt.Fprint(stdout, report.Validation(result, c.noColor))
	if !result.Valid {
		return exitInvalid
	}
	return exitOK
}

func runLint(args []string, stdout, stderr io.Writer) int {
	var c commonFlags
	fs := newFlagSet("lint", stderr, &c)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	snap, err := loadSnapshot(c.schemaDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}
	warnings := schema.Lint(snap)
	evaluator := condition.NewEvaluator()
	for _, q := range snap.Questionnaire.Questions {
		if q.SkipIf == "" {
			continue
		}
		if err := evaluator.Compile(q.SkipIf); err != nil {
			warnings = append(warnings, fmt.Sprintf("skip_if for %s: %v", q.ID, err))
		}
	}
	if len(warnings) == 0 {
		fmt.Fprintf(stdout, "%d questions, no problems found\n", len(snap.Questionnaire.Questions))
		return exitOK
	}
	for _, w := range warnings {
		fmt.Fprintf(stdout, "warning: %s\n", w)
	}
	return exitInvalid
}

func questionsByID(snap *schema.Snapshot, ids []string) []schema.Question {
	out := make([]schema.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := snap.Questionnaire.Question(id); ok {
			out = append(out, q)
		}
	}
	return out
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `hoofy-interview v%s: schema-driven requirements interviews

Usage:
  hoofy-interview serve [--env FILE]
      Start the MCP server (stdio transport)
  hoofy-interview questions [--schema DIR] [--tier TIER] [--tags a,b] [--no-color]
      Print the questions that apply for a tier
  hoofy-interview validate --answers FILE [--schema DIR] [--tier TIER] [--follow-ups] [--no-color]
      Validate an answers file; exits 1 when fields are missing
  hoofy-interview lint [--schema DIR]
      Check a questionnaire directory for structural problems
  hoofy-interview version

Environment:
  INTERVIEW_SCHEMA_DIR     questionnaire directory (default: .)
  INTERVIEW_QUESTIONNAIRE  questionnaire filename (default: questionnaire.yaml)
  INTERVIEW_METADATA       field-metadata filename (default: field-metadata.yaml)
  INTERVIEW_SOURCE         file or sqlite (default: file)
  INTERVIEW_DATA_DIR       schema store directory (default: ~/.hoofy-interview)
  INTERVIEW_DEFAULT_TIER   tier used when a call names none (default: base)
  INTERVIEW_SEED_STORE     import the schema directory into an empty store (default: true)

MCP config:

  {
    "mcpServers": {
      "interview": {
        "command": "hoofy-interview",
        "args": ["serve"]
      }
    }
  }
`, ivserver.Version)
}
