package engine

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/intent"
)

var titleCaser = cases.Title(language.English)

// questionText is the prompt shown for each dimension.
var questionText = map[intent.Dimension]string{
	intent.DimTreatment:      "Which migration treatment should this application follow?",
	intent.DimSecurityLevel:  "What level of security and compliance does this application require?",
	intent.DimOperatingModel: "How does the team that will run this application operate?",
	intent.DimCostPosture:    "What is the cost posture for this application?",
	intent.DimAvailability:   "What availability does this application need?",
	intent.DimRuntimeModel:   "What best describes the application's runtime shape?",
}

// optionDescriptions adds a short gloss to the less obvious option values.
var optionDescriptions = map[intent.Dimension]map[string]string{
	intent.DimTreatment: {
		"rehost":     "lift and shift onto cloud VMs with minimal change",
		"replatform": "move onto managed services with modest changes",
		"refactor":   "restructure the application for cloud-native runtimes",
		"rebuild":    "rewrite the application from scratch",
		"replace":    "adopt a SaaS product instead of migrating",
		"retain":     "keep the application where it is for now",
		"tolerate":   "keep running as-is and accept the debt",
		"retire":     "decommission the application",
	},
	intent.DimSecurityLevel: {
		"basic":            "no special compliance obligations",
		"enterprise":       "standard corporate security controls",
		"regulated":        "subject to regulatory frameworks such as SOX or GDPR",
		"highly_regulated": "subject to strict frameworks such as HIPAA or PCI-DSS",
	},
	intent.DimOperatingModel: {
		"traditional_it": "ticket-driven ops with separate infrastructure teams",
		"transitional":   "partly automated, moving toward cloud operations",
		"sre":            "dedicated reliability engineering with error budgets",
		"devops":         "the product team builds and runs the application",
	},
	intent.DimCostPosture: {
		"cost_minimized":   "lowest possible run cost",
		"balanced":         "reasonable cost with room to grow",
		"scale_optimized":  "pay for elasticity and throughput",
		"innovation_first": "cost is secondary to capability",
	},
	intent.DimAvailability: {
		"standard":          "business-hours availability is acceptable",
		"high_availability": "redundancy within a region, minutes of downtime",
		"mission_critical":  "multi-region resilience, near-zero downtime",
	},
	intent.DimRuntimeModel: {
		"n_tier":   "classic web, app, and database tiers",
		"monolith": "single deployable unit",
	},
}

// generateQuestions produces clarification questions for dimensions that are
// both uncertain (below high confidence) and discriminating (the eligible
// entries actually differ on them). Asking about a dimension every eligible
// entry shares would not change the ranking. Output order follows the fixed
// dimension order and is capped at max.
func generateQuestions(eligible []catalog.ArchitectureEntry, di *intent.DerivedIntent, max int) []ClarificationQuestion {
	if max <= 0 {
		return nil
	}

	var questions []ClarificationQuestion
	for _, dim := range intent.AllDimensions() {
		if len(questions) >= max {
			break
		}
		// TIME is derivative: pinning the treatment pins it too.
		if dim == intent.DimTimeCategory {
			continue
		}
		finding, ok := di.Finding(dim)
		if !ok || finding.Confidence == intent.ConfidenceHigh {
			continue
		}
		if !discriminates(dim, eligible) {
			continue
		}
		questions = append(questions, ClarificationQuestion{
			ID:                "q_" + string(dim),
			Dimension:         dim,
			Question:          questionText[dim],
			Options:           optionsFor(dim),
			CurrentValue:      finding.Value,
			CurrentConfidence: finding.Confidence,
		})
	}
	return questions
}

// discriminates reports whether the eligible entries take at least two
// distinct values on the dimension. With zero or one eligible entry there
// is nothing left to separate, so every uncertain dimension qualifies.
func discriminates(dim intent.Dimension, eligible []catalog.ArchitectureEntry) bool {
	if len(eligible) <= 1 {
		return true
	}
	seen := make(map[string]bool)
	for i := range eligible {
		seen[dimensionKey(dim, &eligible[i])] = true
		if len(seen) > 1 {
			return true
		}
	}
	return false
}

// dimensionKey projects an entry onto a comparable value for the dimension.
func dimensionKey(dim intent.Dimension, e *catalog.ArchitectureEntry) string {
	switch dim {
	case intent.DimTreatment:
		vals := make([]string, len(e.Treatments))
		for i, t := range e.Treatments {
			vals[i] = string(t)
		}
		sort.Strings(vals)
		return strings.Join(vals, ",")
	case intent.DimSecurityLevel:
		return string(e.SecurityLevel)
	case intent.DimOperatingModel:
		return string(e.OperatingModel)
	case intent.DimCostPosture:
		return string(e.CostProfile)
	case intent.DimAvailability:
		return string(e.Availability)
	case intent.DimRuntimeModel:
		vals := make([]string, len(e.RuntimeModels))
		for i, m := range e.RuntimeModels {
			vals[i] = string(m)
		}
		sort.Strings(vals)
		return strings.Join(vals, ",")
	default:
		return ""
	}
}

func optionsFor(dim intent.Dimension) []QuestionOption {
	var values []string
	switch dim {
	case intent.DimTreatment:
		values = enumValues(catalog.AllTreatments())
	case intent.DimSecurityLevel:
		values = enumValues(catalog.AllSecurityLevels())
	case intent.DimOperatingModel:
		values = enumValues(catalog.AllOperatingModels())
	case intent.DimCostPosture:
		values = enumValues(catalog.AllCostProfiles())
	case intent.DimAvailability:
		values = enumValues(catalog.AllAvailabilityTiers())
	case intent.DimRuntimeModel:
		values = enumValues(catalog.AllRuntimeModels())
	}

	opts := make([]QuestionOption, 0, len(values))
	for _, v := range values {
		if v == string(catalog.RuntimeUnknown) {
			continue
		}
		opts = append(opts, QuestionOption{
			Value:       v,
			Label:       titleCaser.String(strings.ReplaceAll(v, "_", " ")),
			Description: optionDescriptions[dim][v],
		})
	}
	return opts
}

func enumValues[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
