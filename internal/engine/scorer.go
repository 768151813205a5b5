package engine

import (
	"math"
	"strings"

	"github.com/archadvisor/archadvisor/internal/appctx"
	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/intent"
)

// techServiceHints maps canonical technology tokens to the cloud services
// that usually replace them. Used for the service-overlap factor.
var techServiceHints = map[string][]string{
	"sql_server":    {"sql_database", "sql_managed_instance"},
	"oracle_db":     {"oracle_database", "sql_managed_instance"},
	"postgresql":    {"database_for_postgresql"},
	"mysql":         {"database_for_mysql"},
	"mongodb":       {"cosmos_db"},
	"redis":         {"cache_for_redis"},
	"elasticsearch": {"ai_search"},
	"kafka":         {"event_hubs"},
	"rabbitmq":      {"service_bus"},
	"kubernetes":    {"aks"},
	"docker":        {"container_apps", "aks", "container_registry"},
	"iis":           {"app_service"},
	"dotnet":        {"app_service"},
	"java":          {"app_service", "container_apps"},
	"spring":        {"container_apps", "aks"},
	"nodejs":        {"app_service", "container_apps"},
	"php":           {"app_service"},
	"python":        {"app_service", "container_apps"},
	"file_share":    {"azure_files"},
	"vmware":        {"virtual_machines", "vmware_solution"},
}

// factorExplanations holds the templated fit/struggle text per factor.
var factorExplanations = map[string][2]string{
	FactorTreatment:      {"supports the derived treatment as a primary path", "supports the treatment only as a secondary path"},
	FactorPlatform:       {"platform is a strong match for the detected technology stack", "platform is a poor match for the detected technology stack"},
	FactorRuntime:        {"designed for the application's runtime model", "not designed for the application's runtime model"},
	FactorAvailability:   {"meets the required availability tier", "falls short of the required availability tier"},
	FactorServiceOverlap: {"core services line up with the detected technologies", "little overlap between its services and the detected technologies"},
	FactorAppModTarget:   {"recommended as a target by the App Mod assessment", "not among the App Mod recommended targets"},
	FactorOperatingModel: {"fits the team's operating model", "assumes a different operating model than the team runs"},
	FactorCostPosture:    {"matches the application's cost posture", "optimizes for a different cost posture"},
	FactorSecurity:       {"security posture matches the requirement exactly", "security posture is misaligned with the requirement"},
}

// scoreEntry computes the weighted multi-factor score for one eligible
// entry. The returned score is clamped to [0,100] after the quality-tier
// multiplier; factor order is fixed so identical inputs always produce
// identical output.
func scoreEntry(entry *catalog.ArchitectureEntry, di *intent.DerivedIntent, ctx *appctx.Context, w Weights) (float64, []FactorScore, []string, []string) {
	type factor struct {
		name   string
		score  float64
		weight float64
		dim    intent.Dimension
	}

	factors := []factor{
		{FactorTreatment, treatmentAlignment(entry, di), w.Treatment, intent.DimTreatment},
		{FactorPlatform, platformCompatibility(entry, ctx), w.Platform, ""},
		{FactorRuntime, runtimeCompatibility(entry, di), w.Runtime, intent.DimRuntimeModel},
		{FactorAvailability, availabilityAlignment(entry, di), w.Availability, intent.DimAvailability},
		{FactorServiceOverlap, serviceOverlap(entry, ctx), w.ServiceOverlap, ""},
		{FactorAppModTarget, appModTargetBoost(entry, ctx), w.AppModTarget, ""},
		{FactorOperatingModel, operatingModelFit(entry, di), w.OperatingModel, intent.DimOperatingModel},
		{FactorCostPosture, costPostureAlignment(entry, di), w.CostPosture, intent.DimCostPosture},
		{FactorSecurity, securityAlignment(entry, di), w.Security, intent.DimSecurityLevel},
	}

	total := 0.0
	scores := make([]FactorScore, 0, len(factors))
	var fit, struggles []string

	for _, f := range factors {
		weight := f.weight
		boosted := false
		// Answered dimensions get their weight boosted without
		// renormalizing the rest: answers should visibly move the ranking.
		if f.dim != "" {
			if finding, ok := di.Finding(f.dim); ok && finding.Source == intent.SourceUser {
				weight *= w.AnswerBoost
				boosted = true
			}
		}

		weighted := f.score * weight
		total += weighted
		scores = append(scores, FactorScore{
			Name:     f.name,
			Score:    round3(f.score),
			Weight:   weight,
			Boosted:  boosted,
			Weighted: round3(weighted),
		})

		if expl, ok := factorExplanations[f.name]; ok {
			switch {
			case f.score >= w.FitThreshold:
				fit = append(fit, expl[0])
			case f.score <= w.StruggleThreshold:
				struggles = append(struggles, expl[1])
			}
		}
	}

	score := total * 100 * w.qualityMultiplier(entry.QualityTier)
	score = math.Min(100, math.Max(0, score))
	return round3(score), scores, fit, struggles
}

// treatmentAlignment: eligibility already guarantees support; entries that
// list the treatment first (their primary path) align best.
func treatmentAlignment(entry *catalog.ArchitectureEntry, di *intent.DerivedIntent) float64 {
	t := di.DerivedTreatment()
	if len(entry.Treatments) > 0 && entry.Treatments[0] == t {
		return 1.0
	}
	if entry.SupportsTreatment(t) {
		return 0.75
	}
	return 0.0
}

// platformCompatibility scores the entry family against the technology
// signals in the context.
func platformCompatibility(entry *catalog.ArchitectureEntry, ctx *appctx.Context) float64 {
	containerSignal := ctx.HasTechnology("docker") || ctx.HasTechnology("kubernetes") ||
		(ctx.AppMod != nil && ctx.AppMod.ContainerReady)
	webFramework := ctx.HasTechnology("dotnet") || ctx.HasTechnology("java") ||
		ctx.HasTechnology("spring") || ctx.HasTechnology("nodejs") ||
		ctx.HasTechnology("php") || ctx.HasTechnology("python")
	dataTech := ctx.HasTechnology("sql") || ctx.HasTechnology("postgres") ||
		ctx.HasTechnology("mysql") || ctx.HasTechnology("oracle") ||
		ctx.HasTechnology("mongodb") || ctx.HasTechnology("elasticsearch")
	messaging := ctx.HasTechnology("kafka") || ctx.HasTechnology("rabbitmq")

	switch entry.Family {
	case catalog.FamilyCloudNative:
		if containerSignal {
			return 1.0
		}
		return 0.3
	case catalog.FamilyIaaS:
		if len(ctx.Servers) > 0 {
			return 0.9
		}
		return 0.4
	case catalog.FamilyPaaS:
		if ctx.HasTechnology("mainframe") {
			return 0.1
		}
		if webFramework || containerSignal {
			return 0.9
		}
		return 0.5
	case catalog.FamilyData:
		if dataTech {
			return 1.0
		}
		return 0.3
	case catalog.FamilyIntegration:
		if messaging || ctx.HasTechnology("api") {
			return 0.9
		}
		return 0.4
	case catalog.FamilyFoundation:
		return 0.6
	default:
		return 0.5
	}
}

func runtimeCompatibility(entry *catalog.ArchitectureEntry, di *intent.DerivedIntent) float64 {
	derived := catalog.RuntimeModel(di.RuntimeModel.Value)
	if derived == catalog.RuntimeUnknown || entry.SupportsRuntime(catalog.RuntimeUnknown) {
		return 0.5
	}
	if entry.SupportsRuntime(derived) {
		return 1.0
	}
	return 0.2
}

func availabilityAlignment(entry *catalog.ArchitectureEntry, di *intent.DerivedIntent) float64 {
	required := catalog.AvailabilityTier(di.Availability.Value).Rank()
	offered := entry.Availability.Rank()
	if required < 0 || offered < 0 {
		return 0.5
	}
	if offered >= required {
		// Slight penalty for paying for more resilience than needed.
		return 1.0 - 0.1*float64(offered-required)
	}
	return math.Max(0, 1.0-0.4*float64(required-offered))
}

func serviceOverlap(entry *catalog.ArchitectureEntry, ctx *appctx.Context) float64 {
	hinted := make(map[string]bool)
	for _, tech := range ctx.Technologies {
		for _, svc := range techServiceHints[tech] {
			hinted[svc] = true
		}
	}
	if len(hinted) == 0 {
		return 0.5
	}

	services := append(append([]string(nil), entry.CoreServices...), entry.SupportingServices...)
	if len(services) == 0 {
		return 0.5
	}
	matched := 0
	for _, svc := range services {
		if hinted[strings.ToLower(svc)] {
			matched++
		}
	}

	denom := len(entry.CoreServices)
	if denom == 0 || denom > 4 {
		denom = 4
	}
	return math.Min(1.0, float64(matched)/float64(denom))
}

func appModTargetBoost(entry *catalog.ArchitectureEntry, ctx *appctx.Context) float64 {
	if ctx.AppMod == nil || len(ctx.AppMod.RecommendedTargets) == 0 {
		return 0.0
	}
	for _, target := range ctx.AppMod.RecommendedTargets {
		t := strings.ToLower(target)
		if strings.Contains(strings.ToLower(entry.ID), t) || strings.Contains(strings.ToLower(entry.Name), t) {
			return 1.0
		}
		for _, svc := range entry.CoreServices {
			if strings.Contains(strings.ToLower(svc), t) {
				return 1.0
			}
		}
	}
	return 0.0
}

func operatingModelFit(entry *catalog.ArchitectureEntry, di *intent.DerivedIntent) float64 {
	return rankProximity(catalog.OperatingModel(di.OperatingModel.Value).Rank(), entry.OperatingModel.Rank(), 3)
}

func costPostureAlignment(entry *catalog.ArchitectureEntry, di *intent.DerivedIntent) float64 {
	return rankProximity(catalog.CostProfile(di.CostPosture.Value).Rank(), entry.CostProfile.Rank(), 3)
}

func securityAlignment(entry *catalog.ArchitectureEntry, di *intent.DerivedIntent) float64 {
	required := catalog.SecurityLevel(di.SecurityLevel.Value).Rank()
	offered := entry.SecurityLevel.Rank()
	if required < 0 || offered < 0 {
		return 0.5
	}
	if offered == required {
		return 1.0
	}
	if offered > required {
		// Exceeding the requirement is fine, just mildly over-provisioned.
		return math.Max(0.7, 1.0-0.1*float64(offered-required))
	}
	return 0.0
}

// rankProximity converts the distance between two enum ranks into [0,1].
func rankProximity(a, b, span int) float64 {
	if a < 0 || b < 0 {
		return 0.5
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return 1.0 - float64(d)/float64(span)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
