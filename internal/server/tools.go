package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/archadvisor/archadvisor/internal/engine"
	"github.com/archadvisor/archadvisor/internal/history"
)

// ScoreTool handles the score_application MCP tool.
type ScoreTool struct {
	engine *engine.Engine
	store  *history.Store
}

// NewScoreTool creates a ScoreTool.
func NewScoreTool(eng *engine.Engine) *ScoreTool {
	return &ScoreTool{engine: eng}
}

// WithHistory enables run archiving for scored applications.
func (t *ScoreTool) WithHistory(store *history.Store) {
	t.store = store
}

// Definition returns the MCP tool definition for score_application.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_application",
		mcp.WithDescription(
			"Score an application export against the reference-architecture catalog and return "+
				"ranked recommendations with per-factor explanations, exclusions, and open questions.",
		),
		mcp.WithString("export",
			mcp.Required(),
			mcp.Description("Raw application export JSON (assessment or narrative format)"),
		),
		mcp.WithString("answers",
			mcp.Description("Clarification answers as comma-separated dimension=value pairs, e.g. treatment=replatform,availability=high_availability"),
		),
		mcp.WithNumber("max_recommendations",
			mcp.Description("Max ranked architectures to return (default: 3)"),
		),
	)
}

// Handle processes the score_application tool call.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("export", "")
	if raw == "" {
		return mcp.NewToolResultError("'export' is required"), nil
	}

	answers, err := ParseAnswers(req.GetString("answers", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxRecs := intArg(req, "max_recommendations", 3)

	result, err := t.engine.Score([]byte(raw), answers, maxRecs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if t.store != nil {
		if _, err := t.store.SaveRun(result); err != nil {
			// Archiving is best-effort; the result is still returned.
			log.Printf("WARNING: could not archive run: %v", err)
		}
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// QuestionsTool handles the get_clarification_questions MCP tool.
type QuestionsTool struct {
	engine *engine.Engine
}

// NewQuestionsTool creates a QuestionsTool.
func NewQuestionsTool(eng *engine.Engine) *QuestionsTool {
	return &QuestionsTool{engine: eng}
}

// Definition returns the MCP tool definition for get_clarification_questions.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_clarification_questions",
		mcp.WithDescription(
			"Return the clarification questions that would sharpen a scoring run for an "+
				"application export. Each question names the uncertain dimension, its current "+
				"inferred value, and the selectable options.",
		),
		mcp.WithString("export",
			mcp.Required(),
			mcp.Description("Raw application export JSON (assessment or narrative format)"),
		),
	)
}

// Handle processes the get_clarification_questions tool call.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("export", "")
	if raw == "" {
		return mcp.NewToolResultError("'export' is required"), nil
	}

	questions, err := t.engine.Questions([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(questions) == 0 {
		return mcp.NewToolResultText("Nothing to clarify: every scoring dimension is already settled."), nil
	}

	payload, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding questions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// StatsTool handles the catalog_stats MCP tool.
type StatsTool struct {
	engine *engine.Engine
}

// NewStatsTool creates a StatsTool.
func NewStatsTool(eng *engine.Engine) *StatsTool {
	return &StatsTool{engine: eng}
}

// Definition returns the MCP tool definition for catalog_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("catalog_stats",
		mcp.WithDescription("Summarize the loaded architecture catalog: totals by family, domain, quality tier, and treatment."),
	)
}

// Handle processes the catalog_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := t.engine.Catalog().Stats()
	payload, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding stats: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// intArg extracts a numeric argument from a tool request. JSON numbers
// arrive as float64.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// ParseAnswers parses comma-separated dimension=value pairs.
func ParseAnswers(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	answers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("invalid answer %q: expected dimension=value", pair)
		}
		answers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return answers, nil
}
