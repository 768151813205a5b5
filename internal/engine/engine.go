package engine

import (
	"fmt"
	"time"

	"github.com/archadvisor/archadvisor/internal/appctx"
	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/intent"
)

// Engine wires the catalog, intent deriver, and scoring weights into one
// stateless scoring pipeline. It is safe for concurrent use: nothing is
// mutated after New.
type Engine struct {
	cat     *catalog.Catalog
	weights Weights
	deriver *intent.Deriver
}

// New builds an engine over the given catalog and weights.
func New(cat *catalog.Catalog, w Weights) (*Engine, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("engine: catalog is empty")
	}
	d, err := intent.NewDeriver()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Engine{cat: cat, weights: w, deriver: d}, nil
}

// Score runs the full pipeline on a raw application export: normalize,
// derive intent, filter, score, rank, and assemble. answers carries
// clarification answers keyed by dimension and may be nil; unknown
// dimensions or values are rejected here rather than scored. maxRecs
// below 1 is treated as 1.
func (e *Engine) Score(raw []byte, answers map[string]string, maxRecs int) (*ScoringResult, error) {
	if err := intent.ValidateAnswers(answers); err != nil {
		return nil, err
	}
	ctx, err := appctx.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return e.ScoreContext(ctx, answers, maxRecs), nil
}

// ScoreContext scores an already-normalized context. Same-input calls
// produce identical output apart from the timestamp.
func (e *Engine) ScoreContext(ctx *appctx.Context, answers map[string]string, maxRecs int) *ScoringResult {
	di := e.deriver.Derive(ctx, answers)
	eligible, excluded := filterEligible(e.cat, di, ctx)

	recs := make([]Recommendation, 0, len(eligible))
	for i := range eligible {
		entry := eligible[i]
		score, factors, fit, struggles := scoreEntry(&entry, di, ctx, e.weights)
		recs = append(recs, Recommendation{
			Entry:     entry,
			Score:     score,
			Factors:   factors,
			Fit:       fit,
			Struggles: struggles,
		})
	}
	ranked := rankRecommendations(recs, maxRecs)

	return &ScoringResult{
		AppName:         ctx.AppName,
		Intent:          di,
		Recommendations: ranked,
		Excluded:        excluded,
		Questions:       generateQuestions(eligible, di, e.weights.MaxQuestions),
		Summary:         buildSummary(ranked, excluded, di, e.weights),
		GeneratedAt:     time.Now().UTC(),
	}
}

// Questions runs normalization and derivation only, returning the
// clarification questions that would sharpen a subsequent Score call.
func (e *Engine) Questions(raw []byte) ([]ClarificationQuestion, error) {
	ctx, err := appctx.Normalize(raw)
	if err != nil {
		return nil, err
	}
	di := e.deriver.Derive(ctx, nil)
	eligible, _ := filterEligible(e.cat, di, ctx)
	return generateQuestions(eligible, di, e.weights.MaxQuestions), nil
}

// Catalog exposes the engine's catalog for stats and validation surfaces.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}
