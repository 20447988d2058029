package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/tier"
	"gopkg.in/yaml.v3"
)

// Format selects the document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension. Anything that is
// not .json is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// metadataDoc is the on-disk shape of the field-metadata table.
type metadataDoc struct {
	Fields map[string]metadataEntry `json:"fields" yaml:"fields"`
}

type metadataEntry struct {
	Tiers []string `json:"tiers" yaml:"tiers"`
}

// ParseQuestionnaire decodes and indexes a questionnaire document.
func ParseQuestionnaire(data []byte, format Format) (*Questionnaire, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("schema: questionnaire document is empty")
	}
	var q Questionnaire
	if err := decodeStrict(data, format, &q); err != nil {
		return nil, fmt.Errorf("schema: decode questionnaire: %w", err)
	}
	if err := q.buildIndex(); err != nil {
		return nil, err
	}
	return &q, nil
}

// ParseFieldMetadata decodes a field-metadata document. Tier labels go
// through the alias table; a label the table does not know is rejected so a
// typo cannot silently widen or narrow a question's visibility.
func ParseFieldMetadata(data []byte, format Format) (FieldMetadata, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return FieldMetadata{}, nil
	}
	var doc metadataDoc
	if err := decodeStrict(data, format, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode field metadata: %w", err)
	}

	m := make(FieldMetadata, len(doc.Fields))
	for id, entry := range doc.Fields {
		tiers := make([]tier.Tier, 0, len(entry.Tiers))
		for _, label := range entry.Tiers {
			if !tier.IsKnown(label) {
				return nil, fmt.Errorf("schema: field %q: unknown tier %q", id, label)
			}
			t := tier.Normalize(label)
			if !slices.Contains(tiers, t) {
				tiers = append(tiers, t)
			}
		}
		m[id] = tiers
	}
	return m, nil
}

// ParseAnswers decodes an answers document, keeping key order.
func ParseAnswers(data []byte, format Format) (Answers, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Answers{}, nil
	}
	var a Answers
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &a); err != nil {
			return Answers{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &a); err != nil {
			return Answers{}, fmt.Errorf("schema: decode answers: %w", err)
		}
	}
	return a, nil
}

// LoadQuestionnaireFile reads a questionnaire from path.
func LoadQuestionnaireFile(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	q, err := ParseQuestionnaire(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return q, nil
}

// LoadFieldMetadataFile reads a field-metadata table from path.
func LoadFieldMetadataFile(path string) (FieldMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	m, err := ParseFieldMetadata(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return m, nil
}

// LoadAnswersFile reads an answers document from path.
func LoadAnswersFile(path string) (Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Answers{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	a, err := ParseAnswers(data, FormatForPath(path))
	if err != nil {
		return Answers{}, fmt.Errorf("schema: %s: %w", path, err)
	}
	return a, nil
}

// decodeStrict decodes a single document, rejecting unknown fields and
// trailing documents.
func decodeStrict(data []byte, format Format, out any) error {
	if format == FormatJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return err
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return fmt.Errorf("multiple documents are not supported")
			}
			return err
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("multiple documents are not supported")
		}
		return err
	}
	return nil
}
