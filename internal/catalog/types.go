// Package catalog holds the read-only collection of cloud reference
// architectures that the recommendation engine filters and ranks.
package catalog

// Treatment classifies the migration strategy for a workload (the "8 Rs").
type Treatment string

const (
	TreatmentRehost     Treatment = "rehost"
	TreatmentReplatform Treatment = "replatform"
	TreatmentRefactor   Treatment = "refactor"
	TreatmentRebuild    Treatment = "rebuild"
	TreatmentReplace    Treatment = "replace"
	TreatmentRetain     Treatment = "retain"
	TreatmentTolerate   Treatment = "tolerate"
	TreatmentRetire     Treatment = "retire"
)

// AllTreatments lists every treatment in stable order.
func AllTreatments() []Treatment {
	return []Treatment{
		TreatmentRehost, TreatmentReplatform, TreatmentRefactor,
		TreatmentRebuild, TreatmentReplace, TreatmentRetain,
		TreatmentTolerate, TreatmentRetire,
	}
}

// Family groups architectures by delivery model.
type Family string

const (
	FamilyFoundation  Family = "foundation"
	FamilyIaaS        Family = "iaas"
	FamilyPaaS        Family = "paas"
	FamilyCloudNative Family = "cloud_native"
	FamilyData        Family = "data"
	FamilyIntegration Family = "integration"
	FamilySpecialized Family = "specialized"
)

// AllFamilies lists every architecture family in stable order.
func AllFamilies() []Family {
	return []Family{
		FamilyFoundation, FamilyIaaS, FamilyPaaS, FamilyCloudNative,
		FamilyData, FamilyIntegration, FamilySpecialized,
	}
}

// WorkloadDomain tags the kind of workload an architecture targets.
type WorkloadDomain string

const (
	DomainWeb            WorkloadDomain = "web"
	DomainData           WorkloadDomain = "data"
	DomainIntegration    WorkloadDomain = "integration"
	DomainSecurity       WorkloadDomain = "security"
	DomainAI             WorkloadDomain = "ai"
	DomainInfrastructure WorkloadDomain = "infrastructure"
)

// AllDomains lists every workload domain in stable order.
func AllDomains() []WorkloadDomain {
	return []WorkloadDomain{
		DomainWeb, DomainData, DomainIntegration,
		DomainSecurity, DomainAI, DomainInfrastructure,
	}
}

// RuntimeModel describes the expected application runtime shape.
type RuntimeModel string

const (
	RuntimeMicroservices RuntimeModel = "microservices"
	RuntimeEventDriven   RuntimeModel = "event_driven"
	RuntimeAPI           RuntimeModel = "api"
	RuntimeNTier         RuntimeModel = "n_tier"
	RuntimeBatch         RuntimeModel = "batch"
	RuntimeMonolith      RuntimeModel = "monolith"
	RuntimeUnknown       RuntimeModel = "unknown"
)

// AllRuntimeModels lists every runtime model in stable order.
func AllRuntimeModels() []RuntimeModel {
	return []RuntimeModel{
		RuntimeMicroservices, RuntimeEventDriven, RuntimeAPI,
		RuntimeNTier, RuntimeBatch, RuntimeMonolith, RuntimeUnknown,
	}
}

// SecurityLevel orders compliance postures from least to most demanding.
type SecurityLevel string

const (
	SecurityBasic           SecurityLevel = "basic"
	SecurityEnterprise      SecurityLevel = "enterprise"
	SecurityRegulated       SecurityLevel = "regulated"
	SecurityHighlyRegulated SecurityLevel = "highly_regulated"
)

// AllSecurityLevels lists security levels from lowest to highest.
func AllSecurityLevels() []SecurityLevel {
	return []SecurityLevel{
		SecurityBasic, SecurityEnterprise, SecurityRegulated, SecurityHighlyRegulated,
	}
}

// Rank returns the ordering position of the level (basic=0 .. highly_regulated=3).
// Unknown values rank below basic so they never satisfy a requirement.
func (s SecurityLevel) Rank() int {
	switch s {
	case SecurityBasic:
		return 0
	case SecurityEnterprise:
		return 1
	case SecurityRegulated:
		return 2
	case SecurityHighlyRegulated:
		return 3
	default:
		return -1
	}
}

// OperatingModel describes the operations maturity an architecture assumes.
type OperatingModel string

const (
	OperatingTraditionalIT OperatingModel = "traditional_it"
	OperatingTransitional  OperatingModel = "transitional"
	OperatingSRE           OperatingModel = "sre"
	OperatingDevOps        OperatingModel = "devops"
)

// AllOperatingModels lists operating models from least to most cloud-mature.
func AllOperatingModels() []OperatingModel {
	return []OperatingModel{
		OperatingTraditionalIT, OperatingTransitional, OperatingSRE, OperatingDevOps,
	}
}

// Rank returns the maturity position of the model (traditional_it=0 .. devops=3).
func (o OperatingModel) Rank() int {
	for i, m := range AllOperatingModels() {
		if m == o {
			return i
		}
	}
	return -1
}

// CostProfile describes the spending posture an architecture optimizes for.
type CostProfile string

const (
	CostMinimized      CostProfile = "cost_minimized"
	CostBalanced       CostProfile = "balanced"
	CostScaleOptimized CostProfile = "scale_optimized"
	CostInnovation     CostProfile = "innovation_first"
)

// AllCostProfiles lists cost profiles from thriftiest to most aggressive.
func AllCostProfiles() []CostProfile {
	return []CostProfile{
		CostMinimized, CostBalanced, CostScaleOptimized, CostInnovation,
	}
}

// Rank returns the spending position of the profile (cost_minimized=0 .. innovation_first=3).
func (c CostProfile) Rank() int {
	for i, p := range AllCostProfiles() {
		if p == c {
			return i
		}
	}
	return -1
}

// AvailabilityTier describes the resilience posture an architecture delivers.
type AvailabilityTier string

const (
	AvailabilityStandard        AvailabilityTier = "standard"
	AvailabilityHigh            AvailabilityTier = "high_availability"
	AvailabilityMissionCritical AvailabilityTier = "mission_critical"
)

// AllAvailabilityTiers lists availability tiers from lowest to highest.
func AllAvailabilityTiers() []AvailabilityTier {
	return []AvailabilityTier{
		AvailabilityStandard, AvailabilityHigh, AvailabilityMissionCritical,
	}
}

// Rank returns the resilience position of the tier (standard=0 .. mission_critical=2).
func (a AvailabilityTier) Rank() int {
	for i, t := range AllAvailabilityTiers() {
		if t == a {
			return i
		}
	}
	return -1
}

// QualityTier marks the provenance and trust level of a catalog entry.
// Curated entries were reviewed by a human; everything below was mined
// from documentation with decreasing confidence.
type QualityTier string

const (
	TierCurated     QualityTier = "curated"
	TierAIEnriched  QualityTier = "ai_enriched"
	TierAISuggested QualityTier = "ai_suggested"
	TierExampleOnly QualityTier = "example_only"
)

// AllQualityTiers lists quality tiers from most to least trusted.
func AllQualityTiers() []QualityTier {
	return []QualityTier{TierCurated, TierAIEnriched, TierAISuggested, TierExampleOnly}
}

// NotSuitableMarker declares a workload shape an architecture must never be
// recommended for. Markers are matched against the application context by
// the eligibility filter.
type NotSuitableMarker string

const (
	// NotSuitableSimpleWorkloads excludes heavyweight platforms when the
	// application is a couple of servers with no distributed runtime.
	NotSuitableSimpleWorkloads NotSuitableMarker = "simple_workloads"
	// NotSuitableWindowsOnly marks Windows-bound architectures that cannot
	// host a Linux-only estate.
	NotSuitableWindowsOnly NotSuitableMarker = "windows_only"
	// NotSuitableLinuxOnly marks Linux-bound architectures that cannot
	// host a Windows-only estate.
	NotSuitableLinuxOnly NotSuitableMarker = "linux_only"
)

// ArchitectureEntry is a single reference architecture in the catalog.
// Entries are immutable once loaded.
type ArchitectureEntry struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description,omitempty"`
	Family             Family              `json:"family"`
	Domain             WorkloadDomain      `json:"domain"`
	Treatments         []Treatment         `json:"treatments"`
	RuntimeModels      []RuntimeModel      `json:"runtime_models,omitempty"`
	SecurityLevel      SecurityLevel       `json:"security_level,omitempty"`
	OperatingModel     OperatingModel      `json:"operating_model,omitempty"`
	CostProfile        CostProfile         `json:"cost_profile,omitempty"`
	Availability       AvailabilityTier    `json:"availability,omitempty"`
	CoreServices       []string            `json:"core_services,omitempty"`
	SupportingServices []string            `json:"supporting_services,omitempty"`
	QualityTier        QualityTier         `json:"quality_tier,omitempty"`
	NotSuitableFor     []NotSuitableMarker `json:"not_suitable_for,omitempty"`
}

// SupportsTreatment reports whether the entry lists the given treatment.
func (e *ArchitectureEntry) SupportsTreatment(t Treatment) bool {
	for _, s := range e.Treatments {
		if s == t {
			return true
		}
	}
	return false
}

// SupportsRuntime reports whether the entry lists the given runtime model.
func (e *ArchitectureEntry) SupportsRuntime(r RuntimeModel) bool {
	for _, m := range e.RuntimeModels {
		if m == r {
			return true
		}
	}
	return false
}
