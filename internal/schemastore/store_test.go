package schemastore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/schema/schematest"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// --- New ---

func TestNew_CreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := New(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, DBFile)); err != nil {
		t.Errorf("database file missing: %v", err)
	}
	if s.Path() != filepath.Join(dir, DBFile) {
		t.Errorf("Path() = %q", s.Path())
	}
}

func TestNew_OpenError(t *testing.T) {
	orig := openDB
	defer func() { openDB = orig }()
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("disk on fire")
	}

	if _, err := New(Config{DataDir: t.TempDir()}); err == nil {
		t.Fatal("expected error when the database cannot open")
	}
}

func TestNew_MigrationIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		s, err := New(Config{DataDir: dir})
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

// --- Import / Load ---

func TestImportLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	want := schematest.Snapshot()

	id, err := s.Import(ctx, want)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if id == "" {
		t.Fatal("Import returned an empty id")
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Questionnaire.Version != want.Questionnaire.Version {
		t.Errorf("Version = %q, want %q", got.Questionnaire.Version, want.Questionnaire.Version)
	}
	if !reflect.DeepEqual(schematest.IDs(got.Questionnaire.Questions), schematest.IDs(want.Questionnaire.Questions)) {
		t.Error("question order changed across the round trip")
	}
	q, ok := got.Questionnaire.Question("deployment.model")
	if !ok || !reflect.DeepEqual(q.Triggers, map[string][]string{
		"on-prem": {"deployment.hardware"},
		"hybrid":  {"deployment.hardware", "deployment.sync"},
	}) {
		t.Errorf("triggers lost: %+v", q.Triggers)
	}

	for _, id := range []string{"project.name", "security.audit", "privacy.controls", "integrations.list"} {
		for _, tr := range tier.Canonical() {
			if got.Metadata.Applies(id, tr) != want.Metadata.Applies(id, tr) {
				t.Errorf("Applies(%s, %s) changed across the round trip", id, tr)
			}
		}
	}
}

func TestImport_EmptyTierListStillHides(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, schematest.Snapshot()); err != nil {
		t.Fatalf("Import: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tiers, ok := got.Metadata["privacy.controls"]
	if !ok || len(tiers) != 0 {
		t.Errorf("privacy.controls metadata = %v (present=%v), want empty entry", tiers, ok)
	}
}

func TestImport_NilSnapshot(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Import(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestLoad_EmptyStoreIsUnavailable(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background())
	if !errors.Is(err, schema.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestLoad_ReturnsLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := schematest.Snapshot()
	if _, err := s.Import(ctx, first); err != nil {
		t.Fatal(err)
	}
	q, err := schema.NewQuestionnaire("3.0.0", nil, nil, []schema.Question{{ID: "only", Prompt: "Only?"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Import(ctx, schema.NewSnapshot(q, nil)); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Questionnaire.Version != "3.0.0" {
		t.Errorf("Version = %q, want 3.0.0", got.Questionnaire.Version)
	}
}

func TestLoadRevision_Unknown(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadRevision(context.Background(), "missing")
	if !errors.Is(err, schema.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestImportDir(t *testing.T) {
	s := newTestStore(t)
	dir := schematest.WriteDir(t)

	id, snap, err := s.ImportDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}
	if id == "" || snap == nil {
		t.Fatalf("ImportDir returned id=%q snap=%v", id, snap)
	}
}

func TestImportDir_MissingDir(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.ImportDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, schema.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

// --- List / Delete ---

func TestList_NewestFirst(t *testing.T) {
	orig := timeNow
	defer func() { timeNow = orig }()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	timeNow = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}

	s := newTestStore(t)
	ctx := context.Background()
	first, _ := s.Import(ctx, schematest.Snapshot())
	second, _ := s.Import(ctx, schematest.Snapshot())

	revs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(revs) != 2 || revs[0].ID != second || revs[1].ID != first {
		t.Fatalf("List = %+v", revs)
	}
	if revs[0].QuestionCount != 16 || revs[0].Version != "2.1.0" {
		t.Errorf("revision = %+v", revs[0])
	}
	if revs[1].ImportedAt != "2026-01-02T03:05:05Z" {
		t.Errorf("ImportedAt = %q", revs[1].ImportedAt)
	}
}

func TestList_Empty(t *testing.T) {
	revs, err := newTestStore(t).List(context.Background())
	if err != nil || revs == nil || len(revs) != 0 {
		t.Errorf("List = %v, %v; want empty non-nil", revs, err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id, _ := s.Import(ctx, schematest.Snapshot())

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, schema.ErrUnavailable) {
		t.Errorf("Load after delete = %v, want ErrUnavailable", err)
	}
	if err := s.Delete(ctx, id); err == nil {
		t.Error("second delete should fail")
	}
}
