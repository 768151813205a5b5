package server

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/engine"
	"github.com/archadvisor/archadvisor/internal/history"
)

const toolCatalogJSON = `{
  "architectures": [
    {
      "id": "app_service_web_app",
      "name": "App Service Web Application",
      "family": "paas",
      "domain": "web",
      "treatments": ["replatform", "refactor"],
      "runtime_models": ["n_tier", "monolith"],
      "security_level": "enterprise",
      "quality_tier": "curated"
    },
    {
      "id": "vm_lift_and_shift",
      "name": "Virtual Machine Lift and Shift",
      "family": "iaas",
      "domain": "infrastructure",
      "treatments": ["rehost"],
      "runtime_models": ["n_tier", "monolith"],
      "quality_tier": "ai_enriched"
    }
  ]
}`

const toolExportJSON = `[{
	"app_overview": {"application": "Order Portal", "business_criticality": "Medium"},
	"detected_technology_running": [".NET Framework 4.8", "IIS"],
	"server_details": [{"server_name": "web01", "operating_system": "Windows Server 2019"}]
}]`

func newToolEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cat, err := catalog.Load([]byte(toolCatalogJSON))
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	eng, err := engine.New(cat, engine.DefaultWeights())
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return eng
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestScoreToolHandle(t *testing.T) {
	tool := NewScoreTool(newToolEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"export": toolExportJSON,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	out := resultText(t, res)
	if !strings.Contains(out, `"app_name": "Order Portal"`) {
		t.Errorf("result missing app name:\n%s", out)
	}
	if !strings.Contains(out, "recommendations") {
		t.Error("result missing recommendations")
	}
}

func TestScoreToolRejectsBadInput(t *testing.T) {
	tool := NewScoreTool(newToolEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !res.IsError {
		t.Error("expected an error for a missing export")
	}

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"export": `{"who": "knows"}`,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !res.IsError {
		t.Error("expected an error for an unrecognized export format")
	}
	if out := resultText(t, res); !strings.Contains(out, "app_overview") {
		t.Errorf("format error should carry remediation guidance, got %q", out)
	}

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"export":  toolExportJSON,
		"answers": "not-a-pair",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !res.IsError {
		t.Error("expected an error for malformed answers")
	}
}

func TestScoreToolWarnsWhenArchiveFails(t *testing.T) {
	store, err := history.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.New failed: %v", err)
	}
	store.Close() // every SaveRun after this fails

	tool := NewScoreTool(newToolEngine(t))
	tool.WithHistory(store)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"export": toolExportJSON,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("archiving failure must not fail the call: %s", resultText(t, res))
	}
	if !strings.Contains(buf.String(), "could not archive") {
		t.Errorf("expected archive warning in log, got %q", buf.String())
	}
}

func TestQuestionsToolHandle(t *testing.T) {
	tool := NewQuestionsTool(newToolEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"export": toolExportJSON,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if out := resultText(t, res); !strings.Contains(out, "dimension") {
		t.Errorf("question output missing dimensions:\n%s", out)
	}
}

func TestStatsToolHandle(t *testing.T) {
	tool := NewStatsTool(newToolEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	out := resultText(t, res)
	if !strings.Contains(out, `"total": 2`) {
		t.Errorf("stats output wrong:\n%s", out)
	}
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single pair", "treatment=replatform", map[string]string{"treatment": "replatform"}, false},
		{
			"multiple pairs with spaces",
			" treatment=replatform , availability=high_availability ",
			map[string]string{"treatment": "replatform", "availability": "high_availability"},
			false,
		},
		{"missing value", "treatment=", nil, true},
		{"no equals", "treatment", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswers(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnswers failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("answers[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}
