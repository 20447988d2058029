package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
)

// Logger receives degraded-path notices (unknown tiers, load failures).
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Engine runs the flow operations against a snapshot obtained from a
// loader on every call. Caching is the loader's job.
type Engine struct {
	loader schema.Loader
	logger Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l == nil {
			e.logger = noopLogger{}
			return
		}
		e.logger = l
	}
}

// NewEngine creates an Engine reading snapshots from loader.
func NewEngine(loader schema.Loader, opts ...Option) *Engine {
	e := &Engine{loader: loader, logger: noopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Snapshot loads the current snapshot. Every failure satisfies
// errors.Is(err, schema.ErrUnavailable).
func (e *Engine) Snapshot(ctx context.Context) (*schema.Snapshot, error) {
	if e.loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", schema.ErrUnavailable)
	}
	snap, err := e.loader.Load(ctx)
	if err != nil {
		if !errors.Is(err, schema.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", schema.ErrUnavailable, err)
		}
		return nil, err
	}
	if snap == nil || snap.Questionnaire == nil {
		return nil, fmt.Errorf("%w: loader returned no questionnaire", schema.ErrUnavailable)
	}
	return snap, nil
}

// Resolve loads the snapshot and returns the questions for tierLabel and tags.
func (e *Engine) Resolve(ctx context.Context, tierLabel string, tags []string) ([]schema.Question, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	e.checkTier(tierLabel)
	return Resolve(snap, tierLabel, tags), nil
}

// RequiredFields loads the snapshot and returns the required ids for tierLabel.
func (e *Engine) RequiredFields(ctx context.Context, tierLabel string) ([]string, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	e.checkTier(tierLabel)
	return RequiredFields(snap, tierLabel), nil
}

// ApplyTriggers loads the snapshot and runs one trigger pass over answers.
func (e *Engine) ApplyTriggers(ctx context.Context, answers schema.Answers) (TriggerResult, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return TriggerResult{}, err
	}
	return ApplyTriggers(snap, answers), nil
}

// Validate loads the snapshot and validates answers at tierLabel. It never
// returns an error: a load failure becomes an invalid report with a single
// descriptive error and no missing fields.
func (e *Engine) Validate(ctx context.Context, answers schema.Answers, tierLabel string) Report {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		e.logger.Printf("WARNING: validation skipped: %v", err)
		return unavailableReport(err)
	}
	e.checkTier(tierLabel)
	return Validate(snap, answers, tierLabel)
}

func (e *Engine) checkTier(label string) {
	if !tier.IsKnown(label) {
		e.logger.Printf("WARNING: unknown tier %q, using %s", label, tier.Fallback)
	}
}
