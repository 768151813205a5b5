package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// maxEntries rejects structurally implausible catalogs. Real catalogs stay
// well under 500 entries; anything bigger is a corrupted or hostile file.
const maxEntries = 1000

// ValidationError reports a structurally invalid catalog. It is fatal:
// callers must not score against a catalog that failed to load.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid catalog: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid catalog: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

type catalogFile struct {
	Architectures []ArchitectureEntry `json:"architectures"`
}

// LoadFile reads and validates a catalog JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Load(data)
}

// Load parses and validates catalog JSON. The document must carry a
// top-level "architectures" array; every entry needs an ID or name, at
// least one treatment, and a workload domain. Missing optional
// classification fields fall back to the most conservative value.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("not valid JSON: %v", err)}}
	}

	var problems []string
	if len(file.Architectures) == 0 {
		problems = append(problems, `"architectures" array is missing or empty`)
	}
	if len(file.Architectures) > maxEntries {
		problems = append(problems, fmt.Sprintf("catalog has %d entries, limit is %d", len(file.Architectures), maxEntries))
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	seen := make(map[string]bool, len(file.Architectures))
	entries := make([]ArchitectureEntry, 0, len(file.Architectures))
	for i, e := range file.Architectures {
		if e.ID == "" && e.Name == "" {
			problems = append(problems, fmt.Sprintf("entry %d has neither id nor name", i))
			continue
		}
		if e.ID == "" {
			e.ID = slug(e.Name)
		}
		if e.Name == "" {
			e.Name = e.ID
		}
		if seen[e.ID] {
			problems = append(problems, fmt.Sprintf("duplicate entry id %q", e.ID))
			continue
		}
		seen[e.ID] = true

		problems = append(problems, validateEntry(&e)...)
		applyDefaults(&e)
		entries = append(entries, e)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return newCatalog(entries), nil
}

func validateEntry(e *ArchitectureEntry) []string {
	var problems []string
	if len(e.Treatments) == 0 {
		problems = append(problems, fmt.Sprintf("entry %q has no treatments", e.ID))
	}
	for _, t := range e.Treatments {
		if !contains(AllTreatments(), t) {
			problems = append(problems, fmt.Sprintf("entry %q has unknown treatment %q", e.ID, t))
		}
	}
	if e.Domain == "" {
		problems = append(problems, fmt.Sprintf("entry %q has no workload domain", e.ID))
	} else if !contains(AllDomains(), e.Domain) {
		problems = append(problems, fmt.Sprintf("entry %q has unknown domain %q", e.ID, e.Domain))
	}
	if e.Family != "" && !contains(AllFamilies(), e.Family) {
		problems = append(problems, fmt.Sprintf("entry %q has unknown family %q", e.ID, e.Family))
	}
	for _, r := range e.RuntimeModels {
		if !contains(AllRuntimeModels(), r) {
			problems = append(problems, fmt.Sprintf("entry %q has unknown runtime model %q", e.ID, r))
		}
	}
	if e.SecurityLevel != "" && e.SecurityLevel.Rank() < 0 {
		problems = append(problems, fmt.Sprintf("entry %q has unknown security level %q", e.ID, e.SecurityLevel))
	}
	if e.OperatingModel != "" && e.OperatingModel.Rank() < 0 {
		problems = append(problems, fmt.Sprintf("entry %q has unknown operating model %q", e.ID, e.OperatingModel))
	}
	if e.CostProfile != "" && e.CostProfile.Rank() < 0 {
		problems = append(problems, fmt.Sprintf("entry %q has unknown cost profile %q", e.ID, e.CostProfile))
	}
	if e.Availability != "" && e.Availability.Rank() < 0 {
		problems = append(problems, fmt.Sprintf("entry %q has unknown availability tier %q", e.ID, e.Availability))
	}
	if e.QualityTier != "" && !contains(AllQualityTiers(), e.QualityTier) {
		problems = append(problems, fmt.Sprintf("entry %q has unknown quality tier %q", e.ID, e.QualityTier))
	}
	return problems
}

// applyDefaults fills unset optional attributes with the most conservative
// value so downstream scoring never sees an empty classification.
func applyDefaults(e *ArchitectureEntry) {
	if len(e.RuntimeModels) == 0 {
		e.RuntimeModels = []RuntimeModel{RuntimeUnknown}
	}
	if e.SecurityLevel == "" {
		e.SecurityLevel = SecurityBasic
	}
	if e.OperatingModel == "" {
		e.OperatingModel = OperatingTransitional
	}
	if e.CostProfile == "" {
		e.CostProfile = CostBalanced
	}
	if e.Availability == "" {
		e.Availability = AvailabilityStandard
	}
	if e.QualityTier == "" {
		e.QualityTier = TierExampleOnly
	}
}

func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
