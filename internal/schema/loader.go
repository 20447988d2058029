package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	// DefaultQuestionnaireFile is the questionnaire filename inside a schema directory.
	DefaultQuestionnaireFile = "questionnaire.yaml"
	// DefaultMetadataFile is the field-metadata filename inside a schema directory.
	DefaultMetadataFile = "field-metadata.yaml"
)

// Loader produces the snapshot an interview runs against.
// Failures must wrap ErrUnavailable.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// StaticLoader serves a fixed, already-built snapshot.
type StaticLoader struct {
	snap *Snapshot
}

// NewStaticLoader wraps snap. A nil snapshot makes every Load fail.
func NewStaticLoader(snap *Snapshot) *StaticLoader {
	return &StaticLoader{snap: snap}
}

// Load returns the wrapped snapshot.
func (l *StaticLoader) Load(ctx context.Context) (*Snapshot, error) {
	if l.snap == nil || l.snap.Questionnaire == nil {
		return nil, fmt.Errorf("%w: no snapshot configured", ErrUnavailable)
	}
	return l.snap, nil
}

// FileLoader reads a questionnaire and its field metadata from a schema
// directory and caches the parsed snapshot until Invalidate is called.
type FileLoader struct {
	dir               string
	questionnaireFile string
	metadataFile      string

	mu     sync.Mutex
	cached *Snapshot
}

// FileLoaderOption customizes a FileLoader.
type FileLoaderOption func(*FileLoader)

// WithQuestionnaireFile overrides the questionnaire filename.
func WithQuestionnaireFile(name string) FileLoaderOption {
	return func(l *FileLoader) {
		if name != "" {
			l.questionnaireFile = name
		}
	}
}

// WithMetadataFile overrides the field-metadata filename.
func WithMetadataFile(name string) FileLoaderOption {
	return func(l *FileLoader) {
		if name != "" {
			l.metadataFile = name
		}
	}
}

// NewFileLoader creates a loader for the schema directory dir.
func NewFileLoader(dir string, opts ...FileLoaderOption) *FileLoader {
	l := &FileLoader{
		dir:               dir,
		questionnaireFile: DefaultQuestionnaireFile,
		metadataFile:      DefaultMetadataFile,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Dir returns the schema directory.
func (l *FileLoader) Dir() string { return l.dir }

// Load returns the cached snapshot, reading it from disk on first use.
// A missing metadata file is not an error: every question is then visible
// at every tier.
func (l *FileLoader) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	q, err := LoadQuestionnaireFile(l.path(l.questionnaireFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	meta, err := LoadFieldMetadataFile(l.path(l.metadataFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		meta = FieldMetadata{}
	}

	l.cached = NewSnapshot(q, meta)
	return l.cached, nil
}

// Invalidate drops the cached snapshot so the next Load re-reads the files.
func (l *FileLoader) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func (l *FileLoader) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.dir, name)
}

// Exists reports whether the questionnaire file is present.
func (l *FileLoader) Exists() bool {
	_, err := os.Stat(l.path(l.questionnaireFile))
	return err == nil
}
