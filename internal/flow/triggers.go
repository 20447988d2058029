package flow

import (
	"strconv"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
)

// TriggerResult is the outcome of one trigger pass.
type TriggerResult struct {
	// NewlyTriggered holds the surfaced questions, unique by id, in the
	// order their ids were first seen.
	NewlyTriggered []schema.Question `json:"newlyTriggeredQuestions"`
	// FiredTriggers holds "questionId:key" labels in answer order.
	FiredTriggers []string `json:"firedTriggers"`
}

// ApplyTriggers runs a single pass over answers and reports which questions
// the given values surface.
//
// The pass is not transitive: questions surfaced here can carry triggers of
// their own, and those only fire once they are answered and ApplyTriggers is
// called again. Callers that need the complete question set must repeat the
// call after every answer batch until it surfaces nothing new.
//
// Answers for unknown questions and trigger targets that do not resolve are
// ignored; schema versions evolve independently of collected answers.
func ApplyTriggers(snap *schema.Snapshot, answers schema.Answers) TriggerResult {
	result := TriggerResult{
		NewlyTriggered: []schema.Question{},
		FiredTriggers:  []string{},
	}
	if snap == nil || snap.Questionnaire == nil {
		return result
	}
	q := snap.Questionnaire

	seen := make(map[string]bool)
	var targets []string
	for _, answer := range answers.Entries() {
		question, ok := q.Question(answer.ID)
		if !ok || len(question.Triggers) == 0 {
			continue
		}
		key, ok := TriggerKey(question, answer.Value)
		if !ok {
			continue
		}
		rule, ok := question.TriggerTargets(key)
		if !ok {
			continue
		}
		result.FiredTriggers = append(result.FiredTriggers, question.ID+":"+key)
		for _, id := range rule {
			if seen[id] {
				continue
			}
			seen[id] = true
			targets = append(targets, id)
		}
	}

	for _, id := range targets {
		if target, ok := q.Question(id); ok {
			result.NewlyTriggered = append(result.NewlyTriggered, target)
		}
	}
	return result
}

// TriggerKey derives the trigger map key for v on question:
// booleans use "true"/"false", strings are used as-is, and a multi-select
// list uses its first element that question declares a trigger for.
// Absent values and other types have no key.
func TriggerKey(question schema.Question, v schema.Value) (string, bool) {
	switch v.Kind() {
	case schema.KindBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b), true
	case schema.KindString:
		s, _ := v.AsString()
		return s, true
	case schema.KindList:
		items, _ := v.AsList()
		for _, item := range items {
			if _, ok := question.Triggers[item]; ok {
				return item, true
			}
		}
		return "", false
	default:
		return "", false
	}
}
