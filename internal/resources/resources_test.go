package resources

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/schema/schematest"
	"github.com/mark3labs/mcp-go/mcp"
)

type brokenLoader struct{}

func (brokenLoader) Load(context.Context) (*schema.Snapshot, error) {
	return nil, errors.New("gone")
}

func read(t *testing.T, fn func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error), uri string) mcp.TextResourceContents {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	contents, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("read %s: %v", uri, err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content is %T", contents[0])
	}
	return tc
}

// --- Summary ---

func TestHandleSummary(t *testing.T) {
	h := NewHandler(flow.NewEngine(schema.NewStaticLoader(schematest.Snapshot())))
	tc := read(t, h.HandleSummary, SummaryURI)

	if tc.MIMEType != "application/json" {
		t.Errorf("MIMEType = %s", tc.MIMEType)
	}
	var s Summary
	if err := json.Unmarshal([]byte(tc.Text), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Version != "2.1.0" || s.QuestionCount != 16 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Tiers) != 3 {
		t.Fatalf("tiers = %d, want 3", len(s.Tiers))
	}
	if !reflect.DeepEqual(s.Tiers[0].RequiredFields, schematest.BaseRequired) {
		t.Errorf("base required = %v", s.Tiers[0].RequiredFields)
	}
	if s.Tiers[1].QuestionCount != 7 || s.Tiers[2].QuestionCount != 9 {
		t.Errorf("minimal=%d enterprise=%d, want 7 and 9", s.Tiers[1].QuestionCount, s.Tiers[2].QuestionCount)
	}
}

func TestHandleSummary_Unavailable(t *testing.T) {
	h := NewHandler(flow.NewEngine(brokenLoader{}))
	tc := read(t, h.HandleSummary, SummaryURI)
	if tc.MIMEType != "text/plain" || !strings.HasPrefix(tc.Text, "Error: ") {
		t.Errorf("got %+v", tc)
	}
}

// --- Questionnaire ---

func TestHandleQuestionnaire(t *testing.T) {
	h := NewHandler(flow.NewEngine(schema.NewStaticLoader(schematest.Snapshot())))
	tc := read(t, h.HandleQuestionnaire, QuestionnaireURI)

	q, err := schema.ParseQuestionnaire([]byte(tc.Text), schema.FormatJSON)
	if err != nil {
		t.Fatalf("resource is not a valid questionnaire: %v", err)
	}
	if len(q.Questions) != 16 {
		t.Errorf("questions = %d", len(q.Questions))
	}
}

func TestResourceDefinitions(t *testing.T) {
	h := NewHandler(nil)
	if h.SummaryResource().URI != SummaryURI || h.QuestionnaireResource().URI != QuestionnaireURI {
		t.Error("resource URIs wrong")
	}
}
