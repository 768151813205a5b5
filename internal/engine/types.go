// Package engine filters, scores, and ranks catalog architectures against
// a derived intent, and generates clarification questions for ambiguous
// dimensions.
package engine

import (
	"time"

	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/intent"
)

// ExclusionReason identifies which hard eligibility rule removed an entry.
type ExclusionReason string

const (
	// ExclusionTreatmentMismatch: the entry does not support the derived
	// treatment, or the intent is retire/eliminate (nothing to recommend).
	ExclusionTreatmentMismatch ExclusionReason = "treatment_mismatch"
	// ExclusionNotSuitable: an explicit not-suitable-for marker on the
	// entry conflicts with the detected infrastructure.
	ExclusionNotSuitable ExclusionReason = "not_suitable"
	// ExclusionSecurityBelowRequirement: the entry's security level is
	// below the derived requirement.
	ExclusionSecurityBelowRequirement ExclusionReason = "security_below_requirement"
)

// ExcludedArchitecture records one entry removed before scoring, with the
// first rule that matched.
type ExcludedArchitecture struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Reason ExclusionReason `json:"reason"`
	Detail string          `json:"detail"`
}

// FactorScore is one scoring factor's contribution, kept as an ordered
// slice so output is deterministic.
type FactorScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Boosted  bool    `json:"boosted,omitempty"`
	Weighted float64 `json:"weighted"`
}

// Recommendation is one ranked architecture with its explanation.
type Recommendation struct {
	Rank      int                       `json:"rank"`
	Entry     catalog.ArchitectureEntry `json:"architecture"`
	Score     float64                   `json:"score"`
	Factors   []FactorScore             `json:"factors"`
	Fit       []string                  `json:"fit,omitempty"`
	Struggles []string                  `json:"struggles,omitempty"`
}

// QuestionOption is one selectable value for a clarification question.
type QuestionOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// ClarificationQuestion asks the user to pin down a low-confidence
// dimension whose value would change the ranking.
type ClarificationQuestion struct {
	ID                string            `json:"id"`
	Dimension         intent.Dimension  `json:"dimension"`
	Question          string            `json:"question"`
	Options           []QuestionOption  `json:"options"`
	CurrentValue      string            `json:"current_value"`
	CurrentConfidence intent.Confidence `json:"current_confidence"`
}

// Summary is the headline interpretation of a scoring result.
type Summary struct {
	Primary    string            `json:"primary_recommendation"`
	Confidence intent.Confidence `json:"confidence"`
	KeyDrivers []string          `json:"key_drivers,omitempty"`
	KeyRisks   []string          `json:"key_risks,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

// ScoringResult is the complete output of one scoring call. It is built
// fresh per call and never mutated after return.
type ScoringResult struct {
	AppName         string                  `json:"app_name"`
	Intent          *intent.DerivedIntent   `json:"derived_intent"`
	Recommendations []Recommendation        `json:"recommendations"`
	Excluded        []ExcludedArchitecture  `json:"excluded"`
	Questions       []ClarificationQuestion `json:"open_questions,omitempty"`
	Summary         Summary                 `json:"summary"`
	GeneratedAt     time.Time               `json:"generated_at"`
}
