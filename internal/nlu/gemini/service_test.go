package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	nluGemini "appliance-support-bot/internal/nlu/gemini"

	"appliance-support-bot/internal/mantis"
	"appliance-support-bot/internal/nlu"
	pkgGemini "appliance-support-bot/pkg/gemini"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// newService wires the NLU service against a fake LLM returning a fixed text.
func newService(t *testing.T, modelReply string) (*nluGemini.Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := pkgGemini.GenerateResponse{
			Candidates: []pkgGemini.Candidate{
				{Content: pkgGemini.Content{Parts: []pkgGemini.Part{{Text: modelReply}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	llm := pkgGemini.NewClient("test-key")
	llm.SetAPIURL(srv.URL)
	return nluGemini.New(llm, &mockLogger{}), srv
}

func newFailingService(t *testing.T) (*nluGemini.Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	llm := pkgGemini.NewClient("test-key")
	llm.SetAPIURL(srv.URL)
	return nluGemini.New(llm, &mockLogger{}), srv
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("Plain JSON", func(t *testing.T) {
		svc, srv := newService(t, `{"action": "kb_answer", "info": "leak"}`)
		defer srv.Close()

		result, err := svc.Classify(ctx, "my washer leaks", nlu.RouteContext{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Action != "kb_answer" || result.Info != "leak" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Fenced JSON", func(t *testing.T) {
		svc, srv := newService(t, "```json\n{\"action\": \"greeting\"}\n```")
		defer srv.Close()

		result, err := svc.Classify(ctx, "hi", nlu.RouteContext{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Action != "greeting" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Unparseable Response Errors", func(t *testing.T) {
		svc, srv := newService(t, "sorry, I cannot classify that")
		defer srv.Close()

		if _, err := svc.Classify(ctx, "???", nlu.RouteContext{}); err == nil {
			t.Errorf("garbage output must surface an error for the router to absorb")
		}
	})

	t.Run("LLM Failure Errors", func(t *testing.T) {
		svc, srv := newFailingService(t)
		defer srv.Close()

		if _, err := svc.Classify(ctx, "hi", nlu.RouteContext{}); err == nil {
			t.Errorf("expected error on LLM failure")
		}
	})
}

func TestExtractTicketFields(t *testing.T) {
	ctx := context.Background()
	projects := []mantis.Project{{ID: 1, Name: "Appliances"}}
	categories := map[int][]mantis.Category{1: {{ID: 10, Name: "Plumbing"}}}

	t.Run("Confident Extraction", func(t *testing.T) {
		svc, srv := newService(t, `{"summary":"Door leak","description":"Water under door","project_name":"Appliances","category_name":"Plumbing"}`)
		defer srv.Close()

		fields, err := svc.ExtractTicketFields(ctx, "water everywhere", projects, categories)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fields == nil || fields.Summary != "Door leak" {
			t.Errorf("unexpected fields %+v", fields)
		}
	})

	t.Run("Uncertain Signal", func(t *testing.T) {
		svc, srv := newService(t, "UNCERTAIN")
		defer srv.Close()

		fields, err := svc.ExtractTicketFields(ctx, "weirdness", projects, categories)
		if err != nil || fields != nil {
			t.Errorf("uncertain must yield (nil, nil), got %+v err=%v", fields, err)
		}
	})

	t.Run("Garbage Is Treated As Uncertain", func(t *testing.T) {
		svc, srv := newService(t, "not json at all")
		defer srv.Close()

		fields, err := svc.ExtractTicketFields(ctx, "weirdness", projects, categories)
		if err != nil || fields != nil {
			t.Errorf("parse failure must degrade to (nil, nil), got %+v err=%v", fields, err)
		}
	})

	t.Run("Hallucinated Project Is Treated As Uncertain", func(t *testing.T) {
		svc, srv := newService(t, `{"summary":"x","description":"y","project_name":"Spaceships","category_name":"Plumbing"}`)
		defer srv.Close()

		fields, err := svc.ExtractTicketFields(ctx, "weirdness", projects, categories)
		if err != nil || fields != nil {
			t.Errorf("unknown project must degrade to (nil, nil), got %+v err=%v", fields, err)
		}
	})

	t.Run("LLM Failure Errors", func(t *testing.T) {
		svc, srv := newFailingService(t)
		defer srv.Close()

		if _, err := svc.ExtractTicketFields(ctx, "x", projects, categories); err == nil {
			t.Errorf("expected error on LLM failure")
		}
	})
}

func TestPickTicketID(t *testing.T) {
	ctx := context.Background()
	open := []nlu.OpenTicket{{ID: 5, Category: "Plumbing"}, {ID: 7, Category: "Electrical"}}

	t.Run("Numeric Match", func(t *testing.T) {
		svc, srv := newService(t, "5")
		defer srv.Close()

		id, ok, err := svc.PickTicketID(ctx, "close my leak ticket", open)
		if err != nil || !ok || id != 5 {
			t.Errorf("expected (5, true), got (%d, %v, %v)", id, ok, err)
		}
	})

	t.Run("Null Means No Match", func(t *testing.T) {
		svc, srv := newService(t, "null")
		defer srv.Close()

		_, ok, err := svc.PickTicketID(ctx, "close it", open)
		if err != nil || ok {
			t.Errorf("expected no match, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("Non Numeric Means No Match", func(t *testing.T) {
		svc, srv := newService(t, "the plumbing one, probably")
		defer srv.Close()

		_, ok, err := svc.PickTicketID(ctx, "close it", open)
		if err != nil || ok {
			t.Errorf("chatty output must read as no match, got ok=%v err=%v", ok, err)
		}
	})
}

func TestTroubleshoot(t *testing.T) {
	ctx := context.Background()

	t.Run("Advice", func(t *testing.T) {
		svc, srv := newService(t, "1. Check the drain hose.\n2. Clean the filter.")
		defer srv.Close()

		advice, err := svc.Troubleshoot(ctx, "washer won't drain", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if advice == "" {
			t.Errorf("expected advice text")
		}
	})

	t.Run("Escalation Signal", func(t *testing.T) {
		svc, srv := newService(t, "ESCALATE")
		defer srv.Close()

		advice, err := svc.Troubleshoot(ctx, "motor is sparking", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if advice != "" {
			t.Errorf("escalation must yield empty advice, got %q", advice)
		}
	})

	t.Run("LLM Failure Errors", func(t *testing.T) {
		svc, srv := newFailingService(t)
		defer srv.Close()

		if _, err := svc.Troubleshoot(ctx, "x", false); err == nil {
			t.Errorf("expected error on LLM failure")
		}
	})
}
