package flow

import (
	"fmt"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
)

// Report is the outcome of validating an answer set.
type Report struct {
	Valid         bool     `json:"valid"`
	Errors        []string `json:"errors"`
	MissingFields []string `json:"missingFields"`
}

// Validate checks answers against the questions required at tierLabel.
// A field is missing when it has no entry, an absent value, or an empty
// string. A boolean false is an answer. Without a questionnaire the report
// is invalid.
func Validate(snap *schema.Snapshot, answers schema.Answers, tierLabel string) Report {
	if snap == nil || snap.Questionnaire == nil {
		return unavailableReport(schema.ErrUnavailable)
	}
	report := Report{Errors: []string{}, MissingFields: []string{}}
	for _, q := range Resolve(snap, tierLabel, nil) {
		v, ok := answers.Get(q.ID)
		if ok && !v.IsMissing() {
			continue
		}
		report.Errors = append(report.Errors, missingError(q))
		report.MissingFields = append(report.MissingFields, q.ID)
	}
	report.Valid = len(report.MissingFields) == 0
	return report
}

// unavailableReport renders a schema load failure as a failed validation.
func unavailableReport(err error) Report {
	return Report{
		Valid:         false,
		Errors:        []string{fmt.Sprintf("cannot validate: %v", err)},
		MissingFields: []string{},
	}
}

func missingError(q schema.Question) string {
	return fmt.Sprintf("%s: %s", q.ID, q.Prompt)
}
