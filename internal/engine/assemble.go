package engine

import (
	"fmt"
	"sort"

	"github.com/archadvisor/archadvisor/internal/intent"
)

// rankRecommendations orders scored recommendations by score descending,
// breaking ties by id ascending so equal inputs always rank identically,
// then truncates to max and assigns ranks.
func rankRecommendations(recs []Recommendation, max int) []Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Entry.ID < recs[j].Entry.ID
	})
	if max < 1 {
		max = 1
	}
	if len(recs) > max {
		recs = recs[:max]
	}
	for i := range recs {
		recs[i].Rank = i + 1
	}
	return recs
}

// buildSummary condenses the ranked result into a headline with an overall
// confidence grade. Confidence reflects both the top score and how much of
// the intent was actually grounded rather than defaulted.
func buildSummary(recs []Recommendation, excluded []ExcludedArchitecture, di *intent.DerivedIntent, w Weights) Summary {
	if len(recs) == 0 {
		s := Summary{
			Confidence: intent.ConfidenceLow,
			Notes:      "no eligible architectures: every catalog entry was excluded by a hard rule",
		}
		if di.DerivedTreatment() == "retire" || di.TimeCategory.Value == string(intent.TIMEEliminate) {
			s.Notes = "the derived intent is to decommission this application; no target architecture applies"
		}
		if n := len(excluded); n > 0 {
			s.Notes += fmt.Sprintf(" (%d entries excluded)", n)
		}
		return s
	}

	top := recs[0]
	confidence := intent.ConfidenceLow
	switch {
	case top.Score >= w.HighScore && highConfidenceFindings(di) >= 4:
		confidence = intent.ConfidenceHigh
	case top.Score >= w.MediumScore:
		confidence = intent.ConfidenceMedium
	}

	s := Summary{
		Primary:    top.Entry.Name,
		Confidence: confidence,
		KeyDrivers: top.Fit,
		KeyRisks:   top.Struggles,
	}
	for _, dim := range intent.AllDimensions() {
		if f, ok := di.Finding(dim); ok && f.Confidence == intent.ConfidenceLow {
			s.KeyRisks = append(s.KeyRisks, fmt.Sprintf("%s was assumed at low confidence (%s)", dim, f.Value))
		}
	}
	if len(recs) > 1 && recs[1].Score > 0 && top.Score-recs[1].Score < 5 {
		s.Notes = fmt.Sprintf("close call: %q scored within 5 points of the primary", recs[1].Entry.Name)
	}
	return s
}

// highConfidenceFindings counts dimensions pinned at high confidence. A
// High summary requires most of the seven dimensions to be pinned, not
// merely non-defaulted.
func highConfidenceFindings(di *intent.DerivedIntent) int {
	n := 0
	for _, dim := range intent.AllDimensions() {
		if f, ok := di.Finding(dim); ok && f.Confidence == intent.ConfidenceHigh {
			n++
		}
	}
	return n
}
