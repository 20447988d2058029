package schema

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Lint reports structural oddities in a snapshot that are legal but
// usually mistakes: trigger targets and metadata entries naming unknown
// questions, undeclared stages, and empty prompts. Unknown ids are never
// rejected outright because schema versions evolve independently of the
// answers already collected against them.
func Lint(snap *Snapshot) []string {
	if snap == nil || snap.Questionnaire == nil {
		return []string{"no questionnaire loaded"}
	}
	q := snap.Questionnaire
	var warnings []string

	for _, question := range q.Questions {
		if strings.TrimSpace(question.Prompt) == "" {
			warnings = append(warnings, fmt.Sprintf("question %q has an empty prompt", question.ID))
		}
		if question.Stage != "" && len(q.Stages) > 0 && !slices.Contains(q.Stages, question.Stage) {
			warnings = append(warnings, fmt.Sprintf("question %q uses undeclared stage %q", question.ID, question.Stage))
		}
		for _, key := range sortedKeys(question.Triggers) {
			for _, target := range question.Triggers[key] {
				if _, ok := q.Question(target); !ok {
					warnings = append(warnings, fmt.Sprintf("trigger %s:%s targets unknown question %q", question.ID, key, target))
				}
			}
		}
	}

	for _, id := range sortedKeys(snap.Metadata) {
		if _, ok := q.Question(id); !ok {
			warnings = append(warnings, fmt.Sprintf("field metadata names unknown question %q", id))
		}
	}

	return warnings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
