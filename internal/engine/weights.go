package engine

import "github.com/archadvisor/archadvisor/internal/catalog"

// Factor names, in the fixed order they are evaluated and reported.
const (
	FactorTreatment      = "treatment_alignment"
	FactorPlatform       = "platform_compatibility"
	FactorRuntime        = "runtime_model"
	FactorAvailability   = "availability_alignment"
	FactorServiceOverlap = "service_overlap"
	FactorAppModTarget   = "app_mod_target"
	FactorOperatingModel = "operating_model_fit"
	FactorCostPosture    = "cost_posture_alignment"
	FactorSecurity       = "security_alignment"
)

// Weights holds every tunable of the scoring model. The zero value is not
// usable; start from DefaultWeights.
type Weights struct {
	Treatment      float64 `json:"treatment"`
	Platform       float64 `json:"platform"`
	Runtime        float64 `json:"runtime"`
	Availability   float64 `json:"availability"`
	ServiceOverlap float64 `json:"service_overlap"`
	AppModTarget   float64 `json:"app_mod_target"`
	OperatingModel float64 `json:"operating_model"`
	CostPosture    float64 `json:"cost_posture"`
	Security       float64 `json:"security"`

	// AnswerBoost multiplies a dimension's weight when its value came
	// from a user answer. The other weights are deliberately not
	// renormalized; the final score is clamped to [0,100] instead.
	AnswerBoost float64 `json:"answer_boost"`

	// QualityMultipliers scale the final score by catalog-entry trust.
	QualityMultipliers map[catalog.QualityTier]float64 `json:"quality_multipliers"`

	// FitThreshold and StruggleThreshold bound the factor sub-scores
	// reported as fits and struggles.
	FitThreshold      float64 `json:"fit_threshold"`
	StruggleThreshold float64 `json:"struggle_threshold"`

	// HighScore and MediumScore are the summary-confidence cutoffs.
	HighScore   float64 `json:"high_score"`
	MediumScore float64 `json:"medium_score"`

	// MaxQuestions caps generated clarification questions per call.
	MaxQuestions int `json:"max_questions"`
}

// DefaultWeights returns the nominal scoring configuration. The factor
// weights sum to 1.0 before any answer boost.
func DefaultWeights() Weights {
	return Weights{
		Treatment:      0.20,
		Platform:       0.20,
		Runtime:        0.10,
		Availability:   0.08,
		ServiceOverlap: 0.10,
		AppModTarget:   0.08,
		OperatingModel: 0.08,
		CostPosture:    0.08,
		Security:       0.08,

		AnswerBoost: 1.5,

		QualityMultipliers: map[catalog.QualityTier]float64{
			catalog.TierCurated:     1.0,
			catalog.TierAIEnriched:  0.9,
			catalog.TierAISuggested: 0.75,
			catalog.TierExampleOnly: 0.5,
		},

		FitThreshold:      0.6,
		StruggleThreshold: 0.35,

		HighScore:   60,
		MediumScore: 30,

		MaxQuestions: 5,
	}
}

func (w Weights) qualityMultiplier(tier catalog.QualityTier) float64 {
	if m, ok := w.QualityMultipliers[tier]; ok {
		return m
	}
	// Unknown tiers score like the least trusted one.
	return w.QualityMultipliers[catalog.TierExampleOnly]
}
