package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

// --- NewAnswers / With / Merge ---

func TestNewAnswers_RepeatedIDKeepsFirstPosition(t *testing.T) {
	a := NewAnswers(
		Answer{ID: "a", Value: String("1")},
		Answer{ID: "b", Value: String("2")},
		Answer{ID: "a", Value: String("3")},
	)

	if got := a.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("IDs() = %v, want [a b]", got)
	}
	v, _ := a.Get("a")
	if s, _ := v.AsString(); s != "3" {
		t.Errorf("a = %q, want 3", s)
	}
}

func TestWith_DoesNotMutateReceiver(t *testing.T) {
	a := NewAnswers(Answer{ID: "a", Value: Bool(true)})
	b := a.With("b", String("x"))
	c := a.With("a", Bool(false))

	if a.Len() != 1 {
		t.Errorf("receiver Len = %d, want 1", a.Len())
	}
	if b.Len() != 2 {
		t.Errorf("With Len = %d, want 2", b.Len())
	}
	orig, _ := a.Get("a")
	if v, _ := orig.AsBool(); !v {
		t.Error("receiver value changed by With")
	}
	changed, _ := c.Get("a")
	if v, _ := changed.AsBool(); v {
		t.Error("With should replace the value in the copy")
	}
}

func TestMerge_AppendsNewIDsInOrder(t *testing.T) {
	a := NewAnswers(Answer{ID: "x", Value: String("1")})
	b := NewAnswers(
		Answer{ID: "z", Value: String("2")},
		Answer{ID: "x", Value: String("3")},
		Answer{ID: "y", Value: String("4")},
	)

	got := a.Merge(b).IDs()
	want := []string{"x", "z", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge IDs = %v, want %v", got, want)
	}
	if a.Len() != 1 {
		t.Error("Merge mutated the receiver")
	}
}

func TestHas(t *testing.T) {
	a := NewAnswers(
		Answer{ID: "empty", Value: String("")},
		Answer{ID: "no", Value: Bool(false)},
	)
	if a.Has("empty") {
		t.Error("empty string should not count as answered")
	}
	if !a.Has("no") {
		t.Error("false should count as answered")
	}
	if a.Has("missing") {
		t.Error("unknown id should not count as answered")
	}
}

func TestAnswersFromMap(t *testing.T) {
	a := AnswersFromMap(map[string]any{"b": true, "a": "x"}, []string{"a", "b", "c"})
	if got := a.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("IDs() = %v, want [a b]", got)
	}
}

// --- JSON ---

func TestAnswers_JSONKeepsOrder(t *testing.T) {
	var a Answers
	input := `{"zeta": true, "alpha": "x", "mid": ["p", "q"], "nothing": null, "num": 4}`
	if err := json.Unmarshal([]byte(input), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"zeta", "alpha", "mid", "nothing", "num"}
	if got := a.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	v, _ := a.Get("nothing")
	if v.Kind() != KindAbsent {
		t.Errorf("null decoded as %s, want absent", v.Kind())
	}
	v, _ = a.Get("num")
	if v.Kind() != KindOther {
		t.Errorf("number decoded as %s, want other", v.Kind())
	}
}

func TestAnswers_JSONRoundTripOrder(t *testing.T) {
	a := NewAnswers(
		Answer{ID: "b", Value: Bool(true)},
		Answer{ID: "a", Value: List("x")},
	)
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"b":true,"a":["x"]}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestAnswers_JSONRejectsNonObject(t *testing.T) {
	var a Answers
	if err := json.Unmarshal([]byte(`["a"]`), &a); err == nil {
		t.Error("expected error for array input")
	}
}

// --- YAML ---

func TestAnswers_YAMLKeepsOrder(t *testing.T) {
	var a Answers
	input := "privacy.pii: true\nproject.name: Hoofy\nintegrations.list: [jira, github]\n"
	if err := yaml.Unmarshal([]byte(input), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"privacy.pii", "project.name", "integrations.list"}
	if got := a.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	v, _ := a.Get("integrations.list")
	items, ok := v.AsList()
	if !ok || !reflect.DeepEqual(items, []string{"jira", "github"}) {
		t.Errorf("list = %v", items)
	}
}
