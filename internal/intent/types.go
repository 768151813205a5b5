// Package intent derives a structured migration intent from the canonical
// application context, tagging every inferred dimension with a confidence
// level and the evidence that produced it.
package intent

import "github.com/archadvisor/archadvisor/internal/catalog"

// Confidence grades how strongly a finding is supported.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Source records where a finding's value came from.
type Source string

const (
	// SourceExplicit means the export carried the value directly.
	SourceExplicit Source = "explicit"
	// SourceInferred means keyword or structural signals produced the value.
	SourceInferred Source = "inferred"
	// SourceDefault means no signal fired and a baseline was assumed.
	SourceDefault Source = "default"
	// SourceUser means the value came from a clarification answer. User
	// answers always override inference and are pinned at high confidence.
	SourceUser Source = "user-provided"
)

// Dimension identifies one inferable scoring dimension. Dimension values
// double as the question ids user answers are keyed by.
type Dimension string

const (
	DimTreatment      Dimension = "treatment"
	DimTimeCategory   Dimension = "time_category"
	DimSecurityLevel  Dimension = "security_level"
	DimOperatingModel Dimension = "operating_model"
	DimCostPosture    Dimension = "cost_posture"
	DimAvailability   Dimension = "availability"
	DimRuntimeModel   Dimension = "runtime_model"
)

// AllDimensions lists every dimension in the fixed order used for
// question generation and reporting.
func AllDimensions() []Dimension {
	return []Dimension{
		DimTreatment, DimTimeCategory, DimSecurityLevel, DimOperatingModel,
		DimCostPosture, DimAvailability, DimRuntimeModel,
	}
}

// Finding is one derived dimension value with its provenance.
type Finding struct {
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
	Source     Source     `json:"source"`
	Evidence   []string   `json:"evidence,omitempty"`
}

// DerivedIntent is the engine's structured interpretation of what the
// application needs, one finding per dimension.
type DerivedIntent struct {
	Treatment      Finding `json:"treatment"`
	TimeCategory   Finding `json:"time_category"`
	SecurityLevel  Finding `json:"security_level"`
	OperatingModel Finding `json:"operating_model"`
	CostPosture    Finding `json:"cost_posture"`
	Availability   Finding `json:"availability"`
	RuntimeModel   Finding `json:"runtime_model"`
}

// Finding returns the finding for the given dimension.
func (d *DerivedIntent) Finding(dim Dimension) (Finding, bool) {
	switch dim {
	case DimTreatment:
		return d.Treatment, true
	case DimTimeCategory:
		return d.TimeCategory, true
	case DimSecurityLevel:
		return d.SecurityLevel, true
	case DimOperatingModel:
		return d.OperatingModel, true
	case DimCostPosture:
		return d.CostPosture, true
	case DimAvailability:
		return d.Availability, true
	case DimRuntimeModel:
		return d.RuntimeModel, true
	default:
		return Finding{}, false
	}
}

func (d *DerivedIntent) set(dim Dimension, f Finding) {
	switch dim {
	case DimTreatment:
		d.Treatment = f
	case DimTimeCategory:
		d.TimeCategory = f
	case DimSecurityLevel:
		d.SecurityLevel = f
	case DimOperatingModel:
		d.OperatingModel = f
	case DimCostPosture:
		d.CostPosture = f
	case DimAvailability:
		d.Availability = f
	case DimRuntimeModel:
		d.RuntimeModel = f
	}
}

// DerivedTreatment returns the treatment finding as a catalog enum.
func (d *DerivedIntent) DerivedTreatment() catalog.Treatment {
	return catalog.Treatment(d.Treatment.Value)
}

// TIMECategory classifies strategic investment posture.
type TIMECategory string

const (
	TIMEInvest    TIMECategory = "invest"
	TIMEMigrate   TIMECategory = "migrate"
	TIMETolerate  TIMECategory = "tolerate"
	TIMEEliminate TIMECategory = "eliminate"
)

// timeForTreatment maps each treatment onto its TIME posture.
func timeForTreatment(t catalog.Treatment) TIMECategory {
	switch t {
	case catalog.TreatmentRefactor, catalog.TreatmentRebuild:
		return TIMEInvest
	case catalog.TreatmentRetain, catalog.TreatmentTolerate:
		return TIMETolerate
	case catalog.TreatmentRetire:
		return TIMEEliminate
	default:
		return TIMEMigrate
	}
}
