// Package interview hosts one interview: it holds the caller's answers,
// keeps the active question set, and drives the trigger engine to a fixed
// point after every answer batch.
//
// The flow package runs a single trigger pass per call. Reaching the full
// question set is this package's job: after each batch, passes repeat until
// one surfaces nothing new. The active set only grows and is bounded by the
// questionnaire, so the loop terminates even when triggers form a cycle.
package interview

import (
	"fmt"
	"slices"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
	"github.com/google/uuid"
)

// Skipper decides whether a question's skip_if condition holds.
type Skipper interface {
	ShouldSkip(expression string, answers schema.Answers) (bool, error)
}

// Logger receives evaluation warnings. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Round summarizes one answer batch. Fired lists the trigger labels that
// fired for the first time in this batch.
type Round struct {
	Number int      `json:"round"`
	Passes int      `json:"passes"`
	Fired  []string `json:"firedTriggers"`
	Added  []string `json:"added"`
}

// Session is a single interview in progress. It is owned by one caller and
// is not safe for concurrent use; the snapshot it reads may be shared.
type Session struct {
	id        string
	snap      *schema.Snapshot
	tierLabel string
	tags      []string

	answers  schema.Answers
	active   []schema.Question
	isActive map[string]bool
	fired    map[string]bool
	rounds   []Round

	skipper Skipper
	logger  Logger
}

// Option configures a Session.
type Option func(*Session)

// WithSkipper sets the skip_if evaluator. Without one no question is skipped.
func WithSkipper(s Skipper) Option {
	return func(sess *Session) { sess.skipper = s }
}

// WithLogger attaches a logger for skip_if evaluation failures.
func WithLogger(l Logger) Option {
	return func(sess *Session) {
		if l != nil {
			sess.logger = l
		}
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(sess *Session) {
		if id != "" {
			sess.id = id
		}
	}
}

// New starts a session whose initial active set is the resolved question
// list for tierLabel and tags.
func New(snap *schema.Snapshot, tierLabel string, tags []string, opts ...Option) (*Session, error) {
	if snap == nil || snap.Questionnaire == nil {
		return nil, fmt.Errorf("interview: %w", schema.ErrUnavailable)
	}
	s := &Session{
		id:        uuid.NewString(),
		snap:      snap,
		tierLabel: tierLabel,
		tags:      slices.Clone(tags),
		isActive:  make(map[string]bool),
		fired:     make(map[string]bool),
		logger:    noopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.activate(flow.Resolve(snap, tierLabel, tags))
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Tier returns the canonical tier the session runs at.
func (s *Session) Tier() tier.Tier { return tier.Normalize(s.tierLabel) }

// Tags returns the tag filter the session started with.
func (s *Session) Tags() []string { return slices.Clone(s.tags) }

// Answers returns the committed answers.
func (s *Session) Answers() schema.Answers { return s.answers }

// Active returns every question currently in the interview, in the order
// it joined: resolved questions first, then triggered ones.
func (s *Session) Active() []schema.Question { return slices.Clone(s.active) }

// Rounds returns the history of answer batches.
func (s *Session) Rounds() []Round { return slices.Clone(s.rounds) }

// Answer commits a batch and expands the active set to a fixed point.
func (s *Session) Answer(batch schema.Answers) Round {
	s.answers = s.answers.Merge(batch)
	round := s.expand()
	round.Number = len(s.rounds) + 1
	s.rounds = append(s.rounds, round)
	return round
}

// expand runs trigger passes over the answers to active questions until a
// pass adds nothing.
func (s *Session) expand() Round {
	round := Round{Fired: []string{}, Added: []string{}}
	for {
		round.Passes++
		result := flow.ApplyTriggers(s.snap, s.activeAnswers())
		for _, label := range result.FiredTriggers {
			if !s.fired[label] {
				s.fired[label] = true
				round.Fired = append(round.Fired, label)
			}
		}
		added := s.activate(result.NewlyTriggered)
		if len(added) == 0 {
			return round
		}
		round.Added = append(round.Added, added...)
	}
}

// activeAnswers restricts the answers to active questions so an answer to
// a question the interview never reached cannot fire its triggers.
func (s *Session) activeAnswers() schema.Answers {
	var entries []schema.Answer
	for _, e := range s.answers.Entries() {
		if s.isActive[e.ID] {
			entries = append(entries, e)
		}
	}
	return schema.NewAnswers(entries...)
}

func (s *Session) activate(questions []schema.Question) []string {
	var added []string
	for _, q := range questions {
		if s.isActive[q.ID] {
			continue
		}
		s.isActive[q.ID] = true
		s.active = append(s.active, q)
		added = append(added, q.ID)
	}
	return added
}

// Pending returns the questions still to ask: active questions that are
// unanswered and not skipped, followed by fields required at the session's
// tier that the tag filter left out.
func (s *Session) Pending() []schema.Question {
	var out []schema.Question
	for _, q := range s.active {
		if s.open(q) {
			out = append(out, q)
		}
	}
	for _, q := range flow.Resolve(s.snap, s.tierLabel, nil) {
		if !s.isActive[q.ID] && s.open(q) {
			out = append(out, q)
		}
	}
	return out
}

func (s *Session) open(q schema.Question) bool {
	return !s.answers.Has(q.ID) && !s.skipped(q)
}

// Skipped returns active questions whose skip_if condition holds.
func (s *Session) Skipped() []schema.Question {
	var out []schema.Question
	for _, q := range s.active {
		if s.skipped(q) {
			out = append(out, q)
		}
	}
	return out
}

// Complete reports whether nothing is pending. A complete session
// finalizes to a valid report.
func (s *Session) Complete() bool { return len(s.Pending()) == 0 }

// PendingByStage groups Pending by the questionnaire's stage order.
func (s *Session) PendingByStage() []schema.StageGroup {
	return s.snap.Questionnaire.ByStage(s.Pending())
}

// Finalize validates the session. The tier's required fields are checked
// by flow.Validate; required questions whose skip_if holds are waived, and
// triggered questions that are still pending are reported as missing too.
func (s *Session) Finalize() flow.Report {
	base := flow.Validate(s.snap, s.answers, s.tierLabel)
	report := flow.Report{Errors: []string{}, MissingFields: []string{}}
	missing := make(map[string]bool)

	for i, id := range base.MissingFields {
		if q, ok := s.snap.Questionnaire.Question(id); ok && s.skipped(q) {
			continue
		}
		missing[id] = true
		report.MissingFields = append(report.MissingFields, id)
		report.Errors = append(report.Errors, base.Errors[i])
	}
	for _, q := range s.Pending() {
		if missing[q.ID] {
			continue
		}
		report.MissingFields = append(report.MissingFields, q.ID)
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", q.ID, q.Prompt))
	}
	report.Valid = len(report.MissingFields) == 0
	return report
}

func (s *Session) skipped(q schema.Question) bool {
	if q.SkipIf == "" || s.skipper == nil {
		return false
	}
	skip, err := s.skipper.ShouldSkip(q.SkipIf, s.answers)
	if err != nil {
		s.logger.Printf("WARNING: skip_if for %s: %v", q.ID, err)
		return false
	}
	return skip
}
