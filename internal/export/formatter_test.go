package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/engine"
	"github.com/archadvisor/archadvisor/internal/intent"
)

func sampleResult() *engine.ScoringResult {
	return &engine.ScoringResult{
		AppName: "order-portal",
		Intent: &intent.DerivedIntent{
			Treatment:      intent.Finding{Value: "replatform", Confidence: intent.ConfidenceMedium, Source: intent.SourceInferred},
			TimeCategory:   intent.Finding{Value: "migrate", Confidence: intent.ConfidenceMedium, Source: intent.SourceInferred},
			SecurityLevel:  intent.Finding{Value: "enterprise", Confidence: intent.ConfidenceMedium, Source: intent.SourceInferred},
			OperatingModel: intent.Finding{Value: "transitional", Confidence: intent.ConfidenceLow, Source: intent.SourceDefault},
			CostPosture:    intent.Finding{Value: "balanced", Confidence: intent.ConfidenceLow, Source: intent.SourceDefault},
			Availability:   intent.Finding{Value: "standard", Confidence: intent.ConfidenceLow, Source: intent.SourceDefault},
			RuntimeModel:   intent.Finding{Value: "n_tier", Confidence: intent.ConfidenceLow, Source: intent.SourceInferred},
		},
		Recommendations: []engine.Recommendation{
			{
				Rank: 1,
				Entry: catalog.ArchitectureEntry{
					ID: "app_service_web_app", Name: "App Service Web Application",
					Family: catalog.FamilyPaaS, QualityTier: catalog.TierCurated,
				},
				Score:     72.5,
				Fit:       []string{"supports the derived treatment as a primary path"},
				Struggles: []string{"little overlap between its services and the detected technologies"},
			},
		},
		Excluded: []engine.ExcludedArchitecture{
			{ID: "vm_lift_and_shift", Name: "Virtual Machine Lift and Shift", Reason: engine.ExclusionTreatmentMismatch, Detail: "treatment mismatch"},
		},
		Questions: []engine.ClarificationQuestion{
			{
				ID: "q_availability", Dimension: intent.DimAvailability,
				Question:     "What availability does this application need?",
				Options:      []engine.QuestionOption{{Value: "standard", Label: "Standard"}},
				CurrentValue: "standard", CurrentConfidence: intent.ConfidenceLow,
			},
		},
		Summary: engine.Summary{Primary: "App Service Web Application", Confidence: intent.ConfidenceMedium},
	}
}

func TestFormatResultText(t *testing.T) {
	f := NewFormatter("text", false)
	out, err := f.FormatResult(sampleResult())
	if err != nil {
		t.Fatalf("FormatResult failed: %v", err)
	}

	for _, want := range []string{
		"Recommendations for order-portal",
		"App Service Web Application",
		"72.5",
		"Derived Intent",
		"replatform",
		"Open Questions (1)",
		"1 architectures excluded",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("color codes present with color disabled")
	}
}

func TestFormatResultJSON(t *testing.T) {
	f := NewFormatter("json", false)
	out, err := f.FormatResult(sampleResult())
	if err != nil {
		t.Fatalf("FormatResult failed: %v", err)
	}

	var decoded engine.ScoringResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json output does not round-trip: %v", err)
	}
	if decoded.AppName != "order-portal" {
		t.Errorf("app name = %q", decoded.AppName)
	}
	if len(decoded.Recommendations) != 1 {
		t.Errorf("recommendations = %d", len(decoded.Recommendations))
	}
}

func TestFormatResultYAML(t *testing.T) {
	f := NewFormatter("yaml", false)
	out, err := f.FormatResult(sampleResult())
	if err != nil {
		t.Fatalf("FormatResult failed: %v", err)
	}
	if !strings.Contains(out, "order-portal") {
		t.Error("yaml output missing app name")
	}
}

func TestFormatQuestions(t *testing.T) {
	f := NewFormatter("text", false)
	out, err := f.FormatQuestions(sampleResult().Questions)
	if err != nil {
		t.Fatalf("FormatQuestions failed: %v", err)
	}
	if !strings.Contains(out, "availability") || !strings.Contains(out, "--answer") {
		t.Errorf("question output incomplete:\n%s", out)
	}

	empty, err := f.FormatQuestions(nil)
	if err != nil {
		t.Fatalf("FormatQuestions(nil) failed: %v", err)
	}
	if !strings.Contains(empty, "Nothing to clarify") {
		t.Error("empty question list should say there is nothing to clarify")
	}
}

func TestFormatStats(t *testing.T) {
	f := NewFormatter("text", false)
	stats := catalog.Stats{
		Total:    2,
		ByFamily: map[catalog.Family]int{catalog.FamilyPaaS: 1, catalog.FamilyIaaS: 1},
		ByTier:   map[catalog.QualityTier]int{catalog.TierCurated: 2},
	}
	out, err := f.FormatStats(stats)
	if err != nil {
		t.Fatalf("FormatStats failed: %v", err)
	}
	for _, want := range []string{"Total architectures: 2", "paas", "curated"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q", want)
		}
	}
}

func TestExportToFile(t *testing.T) {
	e := NewExporter()
	dir := t.TempDir()
	result := sampleResult()

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"app_name": "order-portal"`},
		{"yaml", "app_name: order-portal"},
		{"csv", "app_service_web_app"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, "out."+tt.format)
			if err := e.ExportToFile(result, tt.format, path); err != nil {
				t.Fatalf("ExportToFile(%s) failed: %v", tt.format, err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading export: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s export missing %q", tt.format, tt.want)
			}
		})
	}

	if err := e.ExportToFile(result, "xml", filepath.Join(dir, "out.xml")); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
