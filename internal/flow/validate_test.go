package flow

import (
	"reflect"
	"strings"
	"testing"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/schema/schematest"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
)

// completeAnswers answers every required field at label with a non-empty value.
func completeAnswers(snap *schema.Snapshot, label string) schema.Answers {
	a := schema.Answers{}
	for _, q := range Resolve(snap, label, nil) {
		if q.Type == "boolean" {
			a = a.With(q.ID, schema.Bool(false))
			continue
		}
		a = a.With(q.ID, schema.String("value for "+q.ID))
	}
	return a
}

// --- Validate ---

func TestValidate_SimpleScenario(t *testing.T) {
	snap := schematest.Snapshot()
	a := answers(
		ans("doc.version", schema.String("1.0")),
		ans("project.name", schema.String("Hoofy")),
	)

	report := Validate(snap, a, "simple")
	if report.Valid {
		t.Error("report should be invalid")
	}
	want := []string{"summary.problem", "summary.solution"}
	if !reflect.DeepEqual(report.MissingFields, want) {
		t.Errorf("MissingFields = %v, want %v", report.MissingFields, want)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("Errors = %v, want 2 entries", report.Errors)
	}
	if !strings.Contains(report.Errors[0], "summary.problem") || !strings.Contains(report.Errors[0], "What problem does the project solve?") {
		t.Errorf("error should combine id and prompt, got %q", report.Errors[0])
	}
}

func TestValidate_CompleteForEveryTier(t *testing.T) {
	snap := schematest.Snapshot()
	for _, tr := range tier.Canonical() {
		t.Run(string(tr), func(t *testing.T) {
			report := Validate(snap, completeAnswers(snap, string(tr)), string(tr))
			if !report.Valid {
				t.Errorf("report should be valid, missing %v", report.MissingFields)
			}
			if len(report.MissingFields) != 0 || len(report.Errors) != 0 {
				t.Errorf("expected no gaps, got %+v", report)
			}
		})
	}
}

func TestValidate_DetectsEachSingleGap(t *testing.T) {
	snap := schematest.Snapshot()
	full := completeAnswers(snap, "enterprise")

	for _, id := range RequiredFields(snap, "enterprise") {
		t.Run(id, func(t *testing.T) {
			var kept []schema.Answer
			for _, e := range full.Entries() {
				if e.ID != id {
					kept = append(kept, e)
				}
			}
			report := Validate(snap, schema.NewAnswers(kept...), "enterprise")
			if report.Valid {
				t.Error("report should be invalid")
			}
			if !reflect.DeepEqual(report.MissingFields, []string{id}) {
				t.Errorf("MissingFields = %v, want [%s]", report.MissingFields, id)
			}
		})
	}
}

func TestValidate_FalseIsAnAnswer(t *testing.T) {
	snap := schematest.Snapshot()
	a := completeAnswers(snap, "startup").With("privacy.pii", schema.Bool(false))
	report := Validate(snap, a, "startup")
	if !report.Valid {
		t.Errorf("boolean false must count as answered, missing %v", report.MissingFields)
	}
}

func TestValidate_EmptyStringAndAbsentAreMissing(t *testing.T) {
	snap := schematest.Snapshot()
	a := completeAnswers(snap, "base").
		With("doc.version", schema.String("")).
		With("project.name", schema.Absent())

	report := Validate(snap, a, "base")
	want := []string{"doc.version", "project.name"}
	if !reflect.DeepEqual(report.MissingFields, want) {
		t.Errorf("MissingFields = %v, want %v", report.MissingFields, want)
	}
}

func TestValidate_ExtraAnswersIgnored(t *testing.T) {
	snap := schematest.Snapshot()
	a := completeAnswers(snap, "base").With("not.in.schema", schema.String("x"))
	if report := Validate(snap, a, "base"); !report.Valid {
		t.Errorf("extra answers should not invalidate, got %+v", report)
	}
}

func TestValidate_SlicesNeverNil(t *testing.T) {
	report := Validate(schematest.Snapshot(), completeAnswers(schematest.Snapshot(), "base"), "base")
	if report.Errors == nil || report.MissingFields == nil {
		t.Error("Errors and MissingFields should be empty slices")
	}
}

func TestValidate_NoQuestionnaireIsInvalid(t *testing.T) {
	tests := []struct {
		name string
		snap *schema.Snapshot
	}{
		{"nil snapshot", nil},
		{"nil questionnaire", &schema.Snapshot{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(tt.snap, schema.Answers{}, "simple")
			if report.Valid {
				t.Fatal("validation without a questionnaire should fail")
			}
			if len(report.Errors) != 1 {
				t.Fatalf("Errors = %v, want one error", report.Errors)
			}
			if !strings.Contains(report.Errors[0], "cannot validate") {
				t.Errorf("error = %q, want a cannot validate message", report.Errors[0])
			}
			if report.MissingFields == nil || len(report.MissingFields) != 0 {
				t.Errorf("MissingFields = %v, want empty slice", report.MissingFields)
			}
		})
	}
}
