package engine

import (
	"fmt"

	"github.com/archadvisor/archadvisor/internal/appctx"
	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/intent"
)

// filterEligible partitions the catalog into eligible entries and excluded
// entries. Filtering is a pure set partition: no ranking happens here, and
// the rules are evaluated in fixed precedence order so the reported reason
// is deterministic when several would apply.
func filterEligible(cat *catalog.Catalog, di *intent.DerivedIntent, ctx *appctx.Context) ([]catalog.ArchitectureEntry, []ExcludedArchitecture) {
	treatment := di.DerivedTreatment()
	decommission := treatment == catalog.TreatmentRetire ||
		di.TimeCategory.Value == string(intent.TIMEEliminate)
	required := catalog.SecurityLevel(di.SecurityLevel.Value)

	var eligible []catalog.ArchitectureEntry
	var excluded []ExcludedArchitecture

	for _, entry := range cat.Entries() {
		// Rule 1: treatment. A retire/eliminate intent admits nothing —
		// there is no architecture to recommend for decommissioning.
		if decommission {
			excluded = append(excluded, ExcludedArchitecture{
				ID: entry.ID, Name: entry.Name,
				Reason: ExclusionTreatmentMismatch,
				Detail: "treatment mismatch: no architectures are recommended for a retire/eliminate intent",
			})
			continue
		}
		if !entry.SupportsTreatment(treatment) {
			excluded = append(excluded, ExcludedArchitecture{
				ID: entry.ID, Name: entry.Name,
				Reason: ExclusionTreatmentMismatch,
				Detail: fmt.Sprintf("treatment mismatch: entry does not support %q", treatment),
			})
			continue
		}

		// Rule 2: explicit not-suitable-for markers against the estate.
		if marker, detail, hit := notSuitable(&entry, ctx); hit {
			excluded = append(excluded, ExcludedArchitecture{
				ID: entry.ID, Name: entry.Name,
				Reason: ExclusionNotSuitable,
				Detail: fmt.Sprintf("not suitable (%s): %s", marker, detail),
			})
			continue
		}

		// Rule 3: the entry must meet or exceed the derived security level.
		if entry.SecurityLevel.Rank() < required.Rank() {
			excluded = append(excluded, ExcludedArchitecture{
				ID: entry.ID, Name: entry.Name,
				Reason: ExclusionSecurityBelowRequirement,
				Detail: fmt.Sprintf("security level %q is below required %q", entry.SecurityLevel, required),
			})
			continue
		}

		eligible = append(eligible, entry)
	}

	return eligible, excluded
}

// notSuitable evaluates the entry's not-suitable-for markers against the
// context and returns the first conflicting marker.
func notSuitable(entry *catalog.ArchitectureEntry, ctx *appctx.Context) (catalog.NotSuitableMarker, string, bool) {
	for _, marker := range entry.NotSuitableFor {
		switch marker {
		case catalog.NotSuitableWindowsOnly:
			if ctx.LinuxOnly() {
				return marker, "architecture is Windows-bound but the estate is Linux-only", true
			}
		case catalog.NotSuitableLinuxOnly:
			if ctx.WindowsOnly() {
				return marker, "architecture is Linux-bound but the estate is Windows-only", true
			}
		case catalog.NotSuitableSimpleWorkloads:
			if isSimpleWorkload(ctx) {
				return marker, "architecture is oversized for a simple workload", true
			}
		}
	}
	return "", "", false
}

// isSimpleWorkload: a couple of servers and no distributed-runtime signal.
func isSimpleWorkload(ctx *appctx.Context) bool {
	if ctx.Complexity != nil && ctx.Complexity.ServerCount > 2 {
		return false
	}
	if len(ctx.Servers) > 2 {
		return false
	}
	return !ctx.HasTechnology("microservice") && !ctx.HasTechnology("kubernetes")
}
