package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Answer pairs a question id with its committed value.
type Answer struct {
	ID    string `json:"id"`
	Value Value  `json:"value"`
}

// Answers is an insertion-ordered set of committed answers keyed by
// question id. Decoding from JSON or YAML keeps document order, so trigger
// evaluation over an answer set is deterministic.
//
// Answers is treated as an immutable value: With and Merge return new sets
// and never touch the receiver.
type Answers struct {
	entries []Answer
	index   map[string]int
}

// NewAnswers builds an answer set. A repeated id keeps its first position
// and takes the later value.
func NewAnswers(entries ...Answer) Answers {
	a := Answers{}
	for _, e := range entries {
		a = a.set(e.ID, e.Value)
	}
	return a
}

// AnswersFromMap builds an answer set from a plain map. Go maps have no
// order, so entries are added in the order given by ids; ids missing from
// m are skipped.
func AnswersFromMap(m map[string]any, ids []string) Answers {
	a := Answers{}
	for _, id := range ids {
		x, ok := m[id]
		if !ok {
			continue
		}
		a = a.set(id, FromAny(x))
	}
	return a
}

// Len returns the number of answers.
func (a Answers) Len() int { return len(a.entries) }

// Get returns the value for id and whether an entry exists.
func (a Answers) Get(id string) (Value, bool) {
	i, ok := a.index[id]
	if !ok {
		return Value{}, false
	}
	return a.entries[i].Value, true
}

// Has reports whether id has an entry whose value is not missing.
func (a Answers) Has(id string) bool {
	v, ok := a.Get(id)
	return ok && !v.IsMissing()
}

// Entries returns the answers in order.
func (a Answers) Entries() []Answer {
	out := make([]Answer, len(a.entries))
	copy(out, a.entries)
	return out
}

// IDs returns the answered question ids in order.
func (a Answers) IDs() []string {
	ids := make([]string, len(a.entries))
	for i, e := range a.entries {
		ids[i] = e.ID
	}
	return ids
}

// With returns a copy of a with id set to v.
func (a Answers) With(id string, v Value) Answers {
	return a.clone().set(id, v)
}

// Merge returns a copy of a overlaid with every answer in b. Ids new to a
// are appended in b's order.
func (a Answers) Merge(b Answers) Answers {
	out := a.clone()
	for _, e := range b.entries {
		out = out.set(e.ID, e.Value)
	}
	return out
}

// Map returns the answers as a plain map of Go values.
func (a Answers) Map() map[string]any {
	m := make(map[string]any, len(a.entries))
	for _, e := range a.entries {
		m[e.ID] = e.Value.Interface()
	}
	return m
}

func (a Answers) clone() Answers {
	out := Answers{
		entries: make([]Answer, len(a.entries)),
		index:   make(map[string]int, len(a.entries)),
	}
	copy(out.entries, a.entries)
	for id, i := range a.index {
		out.index[id] = i
	}
	return out
}

// set mutates a in place; callers must own a.
func (a Answers) set(id string, v Value) Answers {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	if i, ok := a.index[id]; ok {
		a.entries[i].Value = v
		return a
	}
	a.index[id] = len(a.entries)
	a.entries = append(a.entries, Answer{ID: id, Value: v})
	return a
}

// MarshalJSON writes the answers as a JSON object in insertion order.
func (a Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (a *Answers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("schema: decode answers: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		if tok == nil {
			*a = Answers{}
			return nil
		}
		return fmt.Errorf("schema: decode answers: expected object, got %v", tok)
	}

	out := Answers{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("schema: decode answers: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("schema: decode answers: expected string key, got %v", tok)
		}
		var v Value
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("schema: decode answer %q: %w", id, err)
		}
		out = out.set(id, v)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("schema: decode answers: %w", err)
	}
	*a = out
	return nil
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (a *Answers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*a = Answers{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: decode answers: expected mapping at line %d", node.Line)
	}

	out := Answers{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var v Value
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("schema: decode answer %q: %w", keyNode.Value, err)
		}
		out = out.set(keyNode.Value, v)
	}
	*a = out
	return nil
}
