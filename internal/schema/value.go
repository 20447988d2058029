package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindString
	KindList
	KindOther
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "other"
	}
}

// Value is a single committed answer: a boolean, a string, an ordered list
// of strings (multi-select), or absent. Anything else decoded from an
// answers document (numbers, objects, mixed lists) is kept as KindOther so
// it counts as present but never produces a trigger key.
//
// The zero Value is absent.
type Value struct {
	kind  Kind
	b     bool
	s     string
	list  []string
	other any
}

// Bool returns a boolean answer.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string answer.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a multi-select answer. The items are copied.
func List(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Absent returns an explicitly unset answer.
func Absent() Value { return Value{} }

// FromAny converts a decoded JSON/YAML value into a Value.
func FromAny(x any) Value {
	switch v := x.(type) {
	case nil:
		return Absent()
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case []string:
		return List(v...)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Value{kind: KindOther, other: x}
			}
			items = append(items, s)
		}
		return Value{kind: KindList, list: items}
	default:
		return Value{kind: KindOther, other: x}
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean and true when v holds a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string and true when v holds a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsList returns a copy of the items and true when v holds a list.
func (v Value) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, true
}

// IsMissing reports whether v counts as unanswered: absent or the empty
// string. A boolean false is a present answer.
func (v Value) IsMissing() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return v.s == ""
	default:
		return false
	}
}

// Interface returns v as a plain Go value (nil, bool, string, []string, or
// the original decoded value).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindList:
		cp, _ := v.AsList()
		return cp
	case KindOther:
		return v.other
	default:
		return nil
	}
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case KindOther:
		return fmt.Sprint(v.other) == fmt.Sprint(o.other)
	default:
		return true
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("schema: decode answer value: %w", err)
	}
	*v = FromAny(x)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var x any
	if err := node.Decode(&x); err != nil {
		return fmt.Errorf("schema: decode answer value: %w", err)
	}
	*v = FromAny(x)
	return nil
}
