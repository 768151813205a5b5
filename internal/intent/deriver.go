package intent

import (
	"fmt"
	"strings"

	"github.com/archadvisor/archadvisor/internal/appctx"
	"github.com/archadvisor/archadvisor/internal/catalog"
)

// Deriver turns a canonical context plus optional user answers into a
// DerivedIntent. It holds only immutable keyword tables and is safe for
// concurrent use.
type Deriver struct {
	compliance   KeywordTable
	runtime      KeywordTable
	operating    KeywordTable
	cost         KeywordTable
	availability KeywordTable
	saas         []string
	eol          []string
}

// NewDeriver builds a Deriver with the default lexicon, validating every
// keyword table key against its enum set.
func NewDeriver() (*Deriver, error) {
	checks := []struct {
		name    string
		table   KeywordTable
		allowed []string
	}{
		{"compliance", defaultComplianceKeywords, stringValues(catalog.AllSecurityLevels())},
		{"runtime", defaultRuntimeKeywords, stringValues(catalog.AllRuntimeModels())},
		{"operating", defaultOperatingKeywords, stringValues(catalog.AllOperatingModels())},
		{"cost", defaultCostKeywords, stringValues(catalog.AllCostProfiles())},
		{"availability", defaultAvailabilityKeywords, stringValues(catalog.AllAvailabilityTiers())},
	}
	for _, c := range checks {
		if err := validateTable(c.name, c.table, c.allowed); err != nil {
			return nil, err
		}
	}

	return &Deriver{
		compliance:   cloneKeywordTable(defaultComplianceKeywords),
		runtime:      cloneKeywordTable(defaultRuntimeKeywords),
		operating:    cloneKeywordTable(defaultOperatingKeywords),
		cost:         cloneKeywordTable(defaultCostKeywords),
		availability: cloneKeywordTable(defaultAvailabilityKeywords),
		saas:         append([]string(nil), saasReplacementKeywords...),
		eol:          append([]string(nil), eolKeywords...),
	}, nil
}

// Derive infers every scoring dimension from the context, then applies
// user answers, which override inference at high confidence.
func (d *Deriver) Derive(ctx *appctx.Context, answers map[string]string) *DerivedIntent {
	di := &DerivedIntent{}

	di.Treatment = d.deriveTreatment(ctx)
	di.TimeCategory = d.deriveTimeCategory(ctx, di.Treatment)
	di.SecurityLevel = d.deriveSecurityLevel(ctx)
	di.OperatingModel = d.deriveOperatingModel(ctx)
	di.CostPosture = d.deriveCostPosture(ctx)
	di.Availability = d.deriveAvailability(ctx)
	di.RuntimeModel = d.deriveRuntimeModel(ctx)

	d.applyAnswers(di, answers)
	return di
}

func (d *Deriver) deriveTreatment(ctx *appctx.Context) Finding {
	haystack := contextHaystack(ctx)

	// Hard override: explicit blockers with no recommended targets on an
	// end-of-life platform admit no migration path at all.
	if ctx.AppMod != nil && len(ctx.AppMod.Blockers) > 0 && len(ctx.AppMod.RecommendedTargets) == 0 {
		if kw, ok := matchAny(haystack, d.eol); ok {
			return Finding{
				Value:      string(catalog.TreatmentRetire),
				Confidence: ConfidenceHigh,
				Source:     SourceInferred,
				Evidence: []string{
					fmt.Sprintf("App Mod reports %d blockers and no targets", len(ctx.AppMod.Blockers)),
					fmt.Sprintf("end-of-life signal %q detected", kw),
				},
			}
		}
	}

	if ctx.ExplicitTreatment != "" {
		return Finding{
			Value:      ctx.ExplicitTreatment,
			Confidence: ConfidenceHigh,
			Source:     SourceExplicit,
			Evidence:   []string{"treatment field present in source data"},
		}
	}

	if kw, ok := matchAny(haystack, d.eol); ok {
		return Finding{
			Value:      string(catalog.TreatmentRetire),
			Confidence: ConfidenceHigh,
			Source:     SourceInferred,
			Evidence:   []string{fmt.Sprintf("end-of-life signal %q detected", kw)},
		}
	}

	if kw, ok := matchAny(haystack, d.saas); ok {
		return Finding{
			Value:      string(catalog.TreatmentReplace),
			Confidence: ConfidenceMedium,
			Source:     SourceInferred,
			Evidence:   []string{fmt.Sprintf("commodity SaaS candidate signal %q detected", kw)},
		}
	}

	if ctx.AppMod != nil && ctx.AppMod.ContainerReady && ctx.HasTechnology("microservice") {
		return Finding{
			Value:      string(catalog.TreatmentRefactor),
			Confidence: ConfidenceMedium,
			Source:     SourceInferred,
			Evidence:   []string{"App Mod verdict is container-ready with microservices detected"},
		}
	}

	if len(ctx.Servers) > 0 && ctx.AppMod == nil {
		return Finding{
			Value:      string(catalog.TreatmentRehost),
			Confidence: ConfidenceMedium,
			Source:     SourceInferred,
			Evidence:   []string{fmt.Sprintf("VM-only estate (%d servers) with no App Mod findings", len(ctx.Servers))},
		}
	}

	// Very large estates with no explicit treatment bias toward the
	// lower-risk migration path, never toward refactor.
	if ctx.Complexity.VeryHighScale() {
		return Finding{
			Value:      string(catalog.TreatmentReplatform),
			Confidence: ConfidenceMedium,
			Source:     SourceInferred,
			Evidence:   []string{fmt.Sprintf("very high scale (%d servers, %d environments)", ctx.Complexity.ServerCount, ctx.Complexity.EnvironmentCount)},
		}
	}

	return Finding{
		Value:      string(catalog.TreatmentReplatform),
		Confidence: ConfidenceLow,
		Source:     SourceDefault,
		Evidence:   []string{"no treatment signal fired; defaulting to replatform"},
	}
}

func (d *Deriver) deriveTimeCategory(ctx *appctx.Context, treatment Finding) Finding {
	if ctx.ExplicitTime != "" {
		return Finding{
			Value:      ctx.ExplicitTime,
			Confidence: ConfidenceHigh,
			Source:     SourceExplicit,
			Evidence:   []string{"time_category field present in source data"},
		}
	}
	return Finding{
		Value:      string(timeForTreatment(catalog.Treatment(treatment.Value))),
		Confidence: treatment.Confidence,
		Source:     SourceInferred,
		Evidence:   []string{fmt.Sprintf("follows derived treatment %q", treatment.Value)},
	}
}

func (d *Deriver) deriveSecurityLevel(ctx *appctx.Context) Finding {
	compliance := strings.ToLower(strings.Join(ctx.Compliance, " "))

	// Highest level first so HIPAA beats a generic "regulated" token.
	for _, level := range []catalog.SecurityLevel{catalog.SecurityHighlyRegulated, catalog.SecurityRegulated} {
		if kw, ok := matchAny(compliance, d.compliance[string(level)]); ok {
			conf := ConfidenceHigh
			if level == catalog.SecurityRegulated {
				conf = ConfidenceMedium
			}
			return Finding{
				Value:      string(level),
				Confidence: conf,
				Source:     SourceInferred,
				Evidence:   []string{fmt.Sprintf("compliance requirement %q", kw)},
			}
		}
	}

	switch ctx.Criticality {
	case "mission_critical", "high":
		return Finding{
			Value:      string(catalog.SecurityEnterprise),
			Confidence: ConfidenceMedium,
			Source:     SourceInferred,
			Evidence:   []string{fmt.Sprintf("criticality %q with no compliance tokens", ctx.Criticality)},
		}
	}
	return Finding{
		Value:      string(catalog.SecurityBasic),
		Confidence: ConfidenceLow,
		Source:     SourceDefault,
		Evidence:   []string{"no compliance or criticality signal"},
	}
}

func (d *Deriver) deriveOperatingModel(ctx *appctx.Context) Finding {
	haystack := contextHaystack(ctx)
	for _, model := range []catalog.OperatingModel{catalog.OperatingDevOps, catalog.OperatingSRE} {
		if kw, ok := matchAny(haystack, d.operating[string(model)]); ok {
			return Finding{
				Value:      string(model),
				Confidence: ConfidenceMedium,
				Source:     SourceInferred,
				Evidence:   []string{fmt.Sprintf("tooling signal %q", kw)},
			}
		}
	}
	return Finding{
		Value:      string(catalog.OperatingTransitional),
		Confidence: ConfidenceLow,
		Source:     SourceDefault,
		Evidence:   []string{"no operating-model signal; assuming transitional baseline"},
	}
}

func (d *Deriver) deriveCostPosture(ctx *appctx.Context) Finding {
	haystack := contextHaystack(ctx)
	for _, profile := range []catalog.CostProfile{catalog.CostMinimized, catalog.CostScaleOptimized, catalog.CostInnovation} {
		if kw, ok := matchAny(haystack, d.cost[string(profile)]); ok {
			return Finding{
				Value:      string(profile),
				Confidence: ConfidenceMedium,
				Source:     SourceInferred,
				Evidence:   []string{fmt.Sprintf("cost signal %q", kw)},
			}
		}
	}
	return Finding{
		Value:      string(catalog.CostBalanced),
		Confidence: ConfidenceLow,
		Source:     SourceDefault,
		Evidence:   []string{"no cost signal; assuming balanced posture"},
	}
}

func (d *Deriver) deriveAvailability(ctx *appctx.Context) Finding {
	if ctx.Criticality == "mission_critical" {
		return Finding{
			Value:      string(catalog.AvailabilityMissionCritical),
			Confidence: ConfidenceMedium,
			Source:     SourceInferred,
			Evidence:   []string{"mission-critical application"},
		}
	}
	haystack := contextHaystack(ctx)
	for _, tier := range []catalog.AvailabilityTier{catalog.AvailabilityMissionCritical, catalog.AvailabilityHigh} {
		if kw, ok := matchAny(haystack, d.availability[string(tier)]); ok {
			return Finding{
				Value:      string(tier),
				Confidence: ConfidenceMedium,
				Source:     SourceInferred,
				Evidence:   []string{fmt.Sprintf("availability signal %q", kw)},
			}
		}
	}
	return Finding{
		Value:      string(catalog.AvailabilityStandard),
		Confidence: ConfidenceLow,
		Source:     SourceDefault,
		Evidence:   []string{"no availability signal"},
	}
}

func (d *Deriver) deriveRuntimeModel(ctx *appctx.Context) Finding {
	haystack := contextHaystack(ctx)
	for _, model := range []catalog.RuntimeModel{
		catalog.RuntimeMicroservices, catalog.RuntimeEventDriven, catalog.RuntimeAPI, catalog.RuntimeBatch,
	} {
		if kw, ok := matchAny(haystack, d.runtime[string(model)]); ok {
			return Finding{
				Value:      string(model),
				Confidence: ConfidenceMedium,
				Source:     SourceInferred,
				Evidence:   []string{fmt.Sprintf("runtime signal %q", kw)},
			}
		}
	}

	switch {
	case len(ctx.Servers) >= 3:
		return Finding{
			Value:      string(catalog.RuntimeNTier),
			Confidence: ConfidenceLow,
			Source:     SourceInferred,
			Evidence:   []string{fmt.Sprintf("%d servers with no distributed-runtime signal", len(ctx.Servers))},
		}
	case len(ctx.Servers) >= 1:
		return Finding{
			Value:      string(catalog.RuntimeMonolith),
			Confidence: ConfidenceLow,
			Source:     SourceInferred,
			Evidence:   []string{"single-server or small estate"},
		}
	}
	return Finding{
		Value:      string(catalog.RuntimeUnknown),
		Confidence: ConfidenceLow,
		Source:     SourceDefault,
		Evidence:   []string{"no runtime signal"},
	}
}

// applyAnswers overwrites findings for dimensions the user answered.
// Unknown dimension ids are ignored.
func (d *Deriver) applyAnswers(di *DerivedIntent, answers map[string]string) {
	for _, dim := range AllDimensions() {
		value, ok := answers[string(dim)]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		di.set(dim, Finding{
			Value:      strings.ToLower(strings.TrimSpace(value)),
			Confidence: ConfidenceHigh,
			Source:     SourceUser,
			Evidence:   []string{"user-provided answer"},
		})
	}

	// An answered treatment drags TIME along unless TIME was answered or
	// explicit in the source.
	if di.Treatment.Source == SourceUser && di.TimeCategory.Source != SourceUser && di.TimeCategory.Source != SourceExplicit {
		di.TimeCategory = Finding{
			Value:      string(timeForTreatment(catalog.Treatment(di.Treatment.Value))),
			Confidence: ConfidenceHigh,
			Source:     SourceInferred,
			Evidence:   []string{fmt.Sprintf("follows user-selected treatment %q", di.Treatment.Value)},
		}
	}
}

// contextHaystack flattens the searchable text of a context: technologies,
// compliance tokens, and server OS names.
func contextHaystack(ctx *appctx.Context) string {
	var parts []string
	parts = append(parts, ctx.Technologies...)
	parts = append(parts, ctx.Compliance...)
	for _, s := range ctx.Servers {
		parts = append(parts, s.OS)
	}
	if ctx.AppMod != nil {
		parts = append(parts, ctx.AppMod.Blockers...)
		parts = append(parts, ctx.AppMod.RecommendedTargets...)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func matchAny(haystack string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return kw, true
		}
	}
	return "", false
}
