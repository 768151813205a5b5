package history

import (
	"path/filepath"
	"testing"

	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/engine"
	"github.com/archadvisor/archadvisor/internal/intent"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testResult(app string, score float64) *engine.ScoringResult {
	return &engine.ScoringResult{
		AppName: app,
		Intent: &intent.DerivedIntent{
			Treatment: intent.Finding{Value: "replatform", Confidence: intent.ConfidenceMedium, Source: intent.SourceInferred},
		},
		Recommendations: []engine.Recommendation{
			{
				Rank:  1,
				Entry: catalog.ArchitectureEntry{ID: "app_service_web_app", Name: "App Service Web Application"},
				Score: score,
			},
		},
		Summary: engine.Summary{Primary: "App Service Web Application", Confidence: intent.ConfidenceMedium},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)

	id, err := s.SaveRun(testResult("order-portal", 72.5))
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun returned an empty id")
	}

	run, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.AppName != "order-portal" || run.Treatment != "replatform" {
		t.Errorf("run = %+v", run)
	}
	if run.TopScore != 72.5 {
		t.Errorf("top score = %v, want 72.5", run.TopScore)
	}

	decoded, err := run.DecodeResult()
	if err != nil {
		t.Fatalf("DecodeResult failed: %v", err)
	}
	if len(decoded.Recommendations) != 1 || decoded.Recommendations[0].Entry.ID != "app_service_web_app" {
		t.Errorf("decoded result lost its recommendations: %+v", decoded.Recommendations)
	}

	if _, err := s.GetRun("no-such-run"); err == nil {
		t.Error("expected an error for an unknown run id")
	}
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)

	for _, app := range []string{"order-portal", "claims-engine", "order-portal"} {
		if _, err := s.SaveRun(testResult(app, 50)); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	all, err := s.ListRuns("", 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("run count = %d, want 3", len(all))
	}

	filtered, err := s.ListRuns("order-portal", 10)
	if err != nil {
		t.Fatalf("ListRuns filtered failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered count = %d, want 2", len(filtered))
	}
	for _, r := range filtered {
		if r.AppName != "order-portal" {
			t.Errorf("filter leaked run for %q", r.AppName)
		}
	}

	limited, err := s.ListRuns("", 1)
	if err != nil {
		t.Fatalf("ListRuns limited failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited count = %d, want 1", len(limited))
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.SaveRun(testResult("order-portal", 50)); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	n, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared %d runs, want 3", n)
	}

	runs, err := s.ListRuns("", 10)
	if err != nil {
		t.Fatalf("ListRuns after clear failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs after clear, got %d", len(runs))
	}
}
