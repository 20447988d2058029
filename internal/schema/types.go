// Package schema holds the interview data model: questions, the
// questionnaire snapshot, the per-question tier metadata, and committed
// answers. It also provides the loaders that produce snapshots from files.
//
// Everything here is read-only once built. A Snapshot is safe to share
// between concurrent interview sessions.
package schema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/HendryAvila/hoofy-interview/internal/tier"
)

// ErrUnavailable reports that no questionnaire could be produced.
// Loaders wrap the underlying cause, so callers test with errors.Is.
var ErrUnavailable = errors.New("schema: questionnaire unavailable")

// Question is a single interview item.
type Question struct {
	ID     string `json:"id" yaml:"id"`
	Prompt string `json:"prompt" yaml:"prompt"`
	Help   string `json:"help,omitempty" yaml:"help,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Stage  string `json:"stage,omitempty" yaml:"stage,omitempty"`

	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Triggers maps an answer value key ("true", "false", a string
	// option, or a multi-select option) to the question ids it surfaces.
	Triggers map[string][]string `json:"triggers,omitempty" yaml:"triggers,omitempty"`

	// SkipIf is a declarative condition evaluated at answer time by the
	// host. The question flow never drops a question because of it.
	SkipIf string `json:"skip_if,omitempty" yaml:"skip_if,omitempty"`
}

// HasAnyTag reports whether q carries at least one tag from tags.
func (q Question) HasAnyTag(tags []string) bool {
	for _, t := range q.Tags {
		if slices.Contains(tags, t) {
			return true
		}
	}
	return false
}

// TriggerTargets returns the question ids surfaced by key, in declared order.
func (q Question) TriggerTargets(key string) ([]string, bool) {
	targets, ok := q.Triggers[key]
	return targets, ok
}

// Questionnaire is an immutable snapshot of the question definitions.
type Questionnaire struct {
	Version          string     `json:"version" yaml:"version"`
	Stages           []string   `json:"stages,omitempty" yaml:"stages,omitempty"`
	ComplexityLevels []string   `json:"complexity_levels,omitempty" yaml:"complexity_levels,omitempty"`
	Questions        []Question `json:"questions" yaml:"questions"`

	index map[string]int
}

// NewQuestionnaire builds a questionnaire and indexes it by question id.
// Ids must be non-empty and unique.
func NewQuestionnaire(version string, stages, levels []string, questions []Question) (*Questionnaire, error) {
	q := &Questionnaire{
		Version:          version,
		Stages:           stages,
		ComplexityLevels: levels,
		Questions:        questions,
	}
	if err := q.buildIndex(); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Questionnaire) buildIndex() error {
	index := make(map[string]int, len(q.Questions))
	for i, question := range q.Questions {
		if question.ID == "" {
			return fmt.Errorf("schema: question at position %d has no id", i)
		}
		if _, dup := index[question.ID]; dup {
			return fmt.Errorf("schema: duplicate question id %q", question.ID)
		}
		index[question.ID] = i
	}
	q.index = index
	return nil
}

// Question returns the definition for id.
func (q *Questionnaire) Question(id string) (Question, bool) {
	if q.index != nil {
		i, ok := q.index[id]
		if !ok {
			return Question{}, false
		}
		return q.Questions[i], true
	}
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// StageGroup is a run of questions sharing a stage.
type StageGroup struct {
	Stage     string     `json:"stage"`
	Questions []Question `json:"questions"`
}

// ByStage groups questions by the questionnaire's declared stage order.
// Questions whose stage is empty or undeclared are collected in a trailing
// group with an empty stage name. Order within a group is preserved.
func (q *Questionnaire) ByStage(questions []Question) []StageGroup {
	buckets := make(map[string][]Question, len(q.Stages))
	var rest []Question
	for _, question := range questions {
		if question.Stage != "" && slices.Contains(q.Stages, question.Stage) {
			buckets[question.Stage] = append(buckets[question.Stage], question)
			continue
		}
		rest = append(rest, question)
	}

	var groups []StageGroup
	for _, stage := range q.Stages {
		if qs := buckets[stage]; len(qs) > 0 {
			groups = append(groups, StageGroup{Stage: stage, Questions: qs})
		}
	}
	if len(rest) > 0 {
		groups = append(groups, StageGroup{Questions: rest})
	}
	return groups
}

// FieldMetadata maps a question id to the canonical tiers it applies to.
type FieldMetadata map[string][]tier.Tier

// Applies reports whether the question applies at t. A question with no
// entry applies to every tier; schemas that predate metadata rely on this.
func (m FieldMetadata) Applies(id string, t tier.Tier) bool {
	tiers, ok := m[id]
	if !ok {
		return true
	}
	return slices.Contains(tiers, t)
}

// Snapshot is the read-only input to every flow operation.
type Snapshot struct {
	Questionnaire *Questionnaire
	Metadata      FieldMetadata
}

// NewSnapshot pairs a questionnaire with its metadata. A nil metadata
// table is treated as empty.
func NewSnapshot(q *Questionnaire, m FieldMetadata) *Snapshot {
	if m == nil {
		m = FieldMetadata{}
	}
	return &Snapshot{Questionnaire: q, Metadata: m}
}
