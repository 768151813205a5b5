package intent

import (
	"fmt"

	"github.com/archadvisor/archadvisor/internal/catalog"
)

// KeywordTable maps an enum value to the ordered keyword list that votes
// for it. Tables are validated against the known enum set when a Deriver
// is constructed; unknown keys fail fast.
type KeywordTable map[string][]string

var (
	defaultComplianceKeywords = KeywordTable{
		string(catalog.SecurityHighlyRegulated): {
			"hipaa", "pci-dss", "pci dss", "pci", "fedramp", "itar", "cjis", "hitrust", "ferpa",
		},
		string(catalog.SecurityRegulated): {
			"gdpr", "sox", "soc 2", "soc2", "iso 27001", "glba", "regulated", "regulatory",
		},
	}

	defaultRuntimeKeywords = KeywordTable{
		string(catalog.RuntimeMicroservices): {"microservice", "kubernetes", "service mesh", "istio"},
		string(catalog.RuntimeEventDriven):   {"kafka", "rabbitmq", "event hub", "service bus", "event-driven", "messaging"},
		string(catalog.RuntimeAPI):           {"api gateway", "rest api", "graphql", "grpc"},
		string(catalog.RuntimeBatch):         {"batch", "etl", "scheduled job", "cron", "ssis"},
	}

	defaultOperatingKeywords = KeywordTable{
		string(catalog.OperatingDevOps): {
			"docker", "kubernetes", "terraform", "ci/cd", "cicd", "github actions", "gitlab", "jenkins", "ansible",
		},
		string(catalog.OperatingSRE): {
			"prometheus", "grafana", "pagerduty", "slo", "error budget", "datadog",
		},
	}

	defaultCostKeywords = KeywordTable{
		string(catalog.CostMinimized):      {"cost reduction", "cost saving", "budget constrained", "decommission budget"},
		string(catalog.CostScaleOptimized): {"autoscale", "auto-scale", "high traffic", "elastic", "burst"},
		string(catalog.CostInnovation):     {"machine learning", "artificial intelligence", "data science", "analytics platform"},
	}

	defaultAvailabilityKeywords = KeywordTable{
		string(catalog.AvailabilityMissionCritical): {"24x7", "24/7", "zero downtime", "active-active"},
		string(catalog.AvailabilityHigh):            {"load balancer", "failover", "cluster", "replica", "high availability", "ha pair"},
	}

	// saasReplacementKeywords flag workloads that are commodity SaaS
	// candidates: recommending infrastructure for them is wasted effort.
	saasReplacementKeywords = []string{
		"sharepoint", "exchange", "crm", "helpdesk", "ticketing", "payroll", "hr portal", "intranet",
	}

	// eolKeywords flag end-of-life or blocked platforms that should be
	// retired rather than migrated.
	eolKeywords = []string{
		"mainframe", "cobol", "as/400", "as400", "end-of-life", "end of life", "eol",
		"unsupported", "windows server 2003", "windows server 2008", "decommission",
	}
)

// validateTable checks every key against the allowed enum values.
func validateTable(name string, table KeywordTable, allowed []string) error {
	ok := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		ok[v] = true
	}
	for key := range table {
		if !ok[key] {
			return fmt.Errorf("lexicon %s: key %q is not a known enum value", name, key)
		}
	}
	return nil
}

func cloneKeywordTable(src KeywordTable) KeywordTable {
	dst := make(KeywordTable, len(src))
	for k, values := range src {
		copied := make([]string, len(values))
		copy(copied, values)
		dst[k] = copied
	}
	return dst
}

func stringValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
