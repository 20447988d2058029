// Package flow implements the interview's question-flow core: selecting the
// questions that apply to a tier and tag selection, expanding the set from
// answer-driven triggers, and validating an answer set against a tier's
// required fields.
//
// Every function here is pure over a *schema.Snapshot. The Engine type
// adds snapshot loading on top for callers that hold a schema.Loader.
package flow

import (
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
)

// Resolve returns the questions that apply to tierLabel, in questionnaire
// order. The label is normalized through the tier alias table; unknown
// labels resolve as the most restrictive tier.
//
// Filters, in order:
//  1. field metadata must list the tier (questions without metadata always pass);
//  2. questions with a skip_if condition are kept, skipping happens at answer time;
//  3. a non-empty tags set keeps only questions sharing at least one tag.
func Resolve(snap *schema.Snapshot, tierLabel string, tags []string) []schema.Question {
	if snap == nil || snap.Questionnaire == nil {
		return nil
	}
	t := tier.Normalize(tierLabel)
	tags = cleanTags(tags)

	var out []schema.Question
	for _, q := range snap.Questionnaire.Questions {
		if !snap.Metadata.Applies(q.ID, t) {
			continue
		}
		if len(tags) > 0 && !q.HasAnyTag(tags) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// RequiredFields returns the ids of every question required at tierLabel:
// the tier-filtered set with no tag filter.
func RequiredFields(snap *schema.Snapshot, tierLabel string) []string {
	questions := Resolve(snap, tierLabel, nil)
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

// cleanTags drops empty labels so a tags value like [""] means "no filter".
func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
