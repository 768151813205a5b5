package intent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/archadvisor/archadvisor/internal/catalog"
)

// answerOptions lists the selectable values for an answered dimension,
// or nil for an unknown dimension.
func answerOptions(dim Dimension) []string {
	switch dim {
	case DimTreatment:
		return stringValues(catalog.AllTreatments())
	case DimTimeCategory:
		return []string{
			string(TIMEInvest), string(TIMEMigrate),
			string(TIMETolerate), string(TIMEEliminate),
		}
	case DimSecurityLevel:
		return stringValues(catalog.AllSecurityLevels())
	case DimOperatingModel:
		return stringValues(catalog.AllOperatingModels())
	case DimCostPosture:
		return stringValues(catalog.AllCostProfiles())
	case DimAvailability:
		return stringValues(catalog.AllAvailabilityTiers())
	case DimRuntimeModel:
		return stringValues(catalog.AllRuntimeModels())
	}
	return nil
}

// ValidateAnswers checks clarification answers against the known
// dimensions and their enum values. A typo in a value would otherwise
// flow through as an impossible intent and exclude the whole catalog
// with a misleading treatment-mismatch reason.
func ValidateAnswers(answers map[string]string) error {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		options := answerOptions(Dimension(k))
		if options == nil {
			return fmt.Errorf("unknown dimension %q: valid dimensions are %s", k, strings.Join(dimensionNames(), ", "))
		}
		value := strings.ToLower(strings.TrimSpace(answers[k]))
		if !containsString(options, value) {
			return fmt.Errorf("invalid value %q for %s: valid options are %s", answers[k], k, strings.Join(options, ", "))
		}
	}
	return nil
}

func dimensionNames() []string {
	dims := AllDimensions()
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = string(d)
	}
	return names
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
