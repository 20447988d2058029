package schema

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

// --- FromAny ---

func TestFromAny_Kinds(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, KindAbsent},
		{"bool", true, KindBool},
		{"string", "x", KindString},
		{"string slice", []string{"a"}, KindList},
		{"any slice of strings", []any{"a", "b"}, KindList},
		{"mixed slice", []any{"a", 1}, KindOther},
		{"number", 3.5, KindOther},
		{"object", map[string]any{"a": 1}, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromAny(tt.in).Kind(); got != tt.want {
				t.Errorf("FromAny(%v).Kind() = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

// --- IsMissing ---

func TestIsMissing(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"absent", Absent(), true},
		{"zero value", Value{}, true},
		{"empty string", String(""), true},
		{"non-empty string", String("x"), false},
		{"false is present", Bool(false), false},
		{"true", Bool(true), false},
		{"empty list is present", List(), false},
		{"number is present", FromAny(0.0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsMissing(); got != tt.want {
				t.Errorf("IsMissing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestList_CopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	v := List(items...)
	items[0] = "mutated"

	got, ok := v.AsList()
	if !ok {
		t.Fatal("AsList() ok = false")
	}
	if got[0] != "a" {
		t.Errorf("List should copy its input, got %v", got)
	}

	got[1] = "mutated"
	again, _ := v.AsList()
	if again[1] != "b" {
		t.Error("AsList should return a copy")
	}
}

func TestValue_Equal(t *testing.T) {
	if !List("a", "b").Equal(List("a", "b")) {
		t.Error("equal lists should compare equal")
	}
	if List("a").Equal(List("a", "b")) {
		t.Error("lists of different length should differ")
	}
	if Bool(false).Equal(String("false")) {
		t.Error("different kinds should differ")
	}
}

// --- Encoding ---

func TestValue_JSON(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`["x","y"]`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	items, ok := v.AsList()
	if !ok || len(items) != 2 || items[1] != "y" {
		t.Errorf("decoded %v, want [x y]", items)
	}

	data, err := json.Marshal(Bool(false))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "false" {
		t.Errorf("Marshal(false) = %s", data)
	}
}

func TestValue_YAML(t *testing.T) {
	var v Value
	if err := yaml.Unmarshal([]byte("true"), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if b, ok := v.AsBool(); !ok || !b {
		t.Errorf("decoded %v, want true", v.Interface())
	}
}
