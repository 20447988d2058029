package server

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/hoofy-interview/internal/config"
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/schema/schematest"
	"github.com/HendryAvila/hoofy-interview/internal/schemastore"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SchemaDir = schematest.WriteDir(t)
	cfg.DataDir = t.TempDir()
	return cfg
}

// toolNames asks the server for its tool list over JSON-RPC.
func toolNames(t *testing.T, s *mcpserver.MCPServer) string {
	t.Helper()
	msg := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp := s.HandleMessage(context.Background(), msg)
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(data)
}

// --- New ---

func TestNew_RegistersTools(t *testing.T) {
	s, cleanup, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	list := toolNames(t, s)
	for _, name := range []string{
		"interview_questions", "interview_triggers", "interview_validate",
		"interview_expand", "interview_schema_import", "interview_schema_list",
	} {
		if !strings.Contains(list, `"`+name+`"`) {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = "carrier-pigeon"
	_, cleanup, err := New(cfg)
	if err == nil {
		t.Fatal("expected config error")
	}
	cleanup()
}

func TestNew_StoreFailureDegrades(t *testing.T) {
	orig := openStore
	defer func() { openStore = orig }()
	openStore = func(schemastore.Config) (*schemastore.Store, error) {
		return nil, errors.New("read-only filesystem")
	}

	cfg := testConfig(t)
	cfg.Source = config.SourceSQLite
	s, cleanup, err := New(cfg)
	if err != nil {
		t.Fatalf("New should degrade, got %v", err)
	}
	defer cleanup()

	list := toolNames(t, s)
	if strings.Contains(list, "interview_schema_import") {
		t.Error("import tool registered without a store")
	}
	if !strings.Contains(list, "interview_questions") {
		t.Error("core tools missing")
	}
}

// --- selectLoader ---

func TestSelectLoader_FileSource(t *testing.T) {
	cfg := testConfig(t)
	if _, ok := selectLoader(cfg, nil).(*schema.FileLoader); !ok {
		t.Error("file source should use a FileLoader")
	}
}

func TestSelectLoader_SQLiteSeedsEmptyStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = config.SourceSQLite
	store, err := schemastore.New(schemastore.Config{DataDir: cfg.DataDir})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	loader := selectLoader(cfg, store)
	if loader != schema.Loader(store) {
		t.Fatal("sqlite source should use the store")
	}
	snap, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("seeded store should load: %v", err)
	}
	if snap.Questionnaire.Version != "2.1.0" {
		t.Errorf("version = %s", snap.Questionnaire.Version)
	}

	// A second start must not import again.
	selectLoader(cfg, store)
	revs, _ := store.List(context.Background())
	if len(revs) != 1 {
		t.Errorf("revisions = %d, want 1", len(revs))
	}
}

func TestSelectLoader_NoSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = config.SourceSQLite
	cfg.SeedStore = false
	cfg.SchemaDir = filepath.Join(t.TempDir(), "empty")
	store, err := schemastore.New(schemastore.Config{DataDir: cfg.DataDir})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	_, err = selectLoader(cfg, store).Load(context.Background())
	if !errors.Is(err, schema.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable for an empty store", err)
	}
}

func TestSelectLoader_SQLiteWithoutStoreFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = config.SourceSQLite
	if _, ok := selectLoader(cfg, nil).(*schema.FileLoader); !ok {
		t.Error("missing store should fall back to files")
	}
}
