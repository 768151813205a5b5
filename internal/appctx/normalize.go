package appctx

import (
	"encoding/json"
	"sort"
	"strings"
)

// assessmentExport is the structured technical-assessment shape.
type assessmentExport struct {
	AppOverview struct {
		Application         string          `json:"application"`
		Name                string          `json:"name"`
		Criticality         string          `json:"criticality"`
		BusinessCriticality string          `json:"business_criticality"`
		Compliance          json.RawMessage `json:"compliance_requirements"`
		Treatment           string          `json:"treatment"`
		TimeCategory        string          `json:"time_category"`
		Environments        []string        `json:"environments"`
	} `json:"app_overview"`
	DetectedTechnology json.RawMessage    `json:"detected_technology_running"`
	ServerDetails      []assessmentServer `json:"server_details"`
	AppModResults      *appModExport      `json:"App Mod results"`
	Network            *networkExport     `json:"network_connectivity"`
}

type assessmentServer struct {
	Name            string  `json:"server_name"`
	Hostname        string  `json:"hostname"`
	OperatingSystem string  `json:"operating_system"`
	OS              string  `json:"os"`
	Cores           int     `json:"cores"`
	CPUCores        int     `json:"cpu_cores"`
	MemoryGB        float64 `json:"memory_gb"`
	Ready           bool    `json:"migration_ready"`
}

type appModExport struct {
	Verdict            string   `json:"verdict"`
	ContainerReady     bool     `json:"container_ready"`
	Blockers           []string `json:"blockers"`
	RecommendedTargets []string `json:"recommended_targets"`
}

type networkExport struct {
	Connections  int `json:"connection_count"`
	Dependencies int `json:"dependency_count"`
}

// narrativeExport is the prose-oriented shape some vendors produce.
type narrativeExport struct {
	ApplicationOverview struct {
		Name                string          `json:"name"`
		ApplicationName     string          `json:"application_name"`
		BusinessCriticality string          `json:"business_criticality"`
		Criticality         string          `json:"criticality"`
		Compliance          json.RawMessage `json:"compliance"`
		Regulatory          json.RawMessage `json:"regulatory_requirements"`
	} `json:"application_overview"`
	ServerOverviews []narrativeServer `json:"server_overviews"`
	KeySoftware     []string          `json:"key_software"`
	Environments    []string          `json:"environments"`
}

type narrativeServer struct {
	Hostname        string  `json:"hostname"`
	Name            string  `json:"name"`
	OperatingSystem string  `json:"operating_system"`
	CPU             int     `json:"cpu"`
	MemoryGB        float64 `json:"memory_gb"`
}

// Normalize converts a raw export document into the canonical Context.
// It is a pure transform: the same input always yields the same output.
func Normalize(raw []byte) (*Context, error) {
	doc, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	format, err := detectFormat(doc)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var ctx *Context
	switch format {
	case FormatAssessment:
		ctx, err = normalizeAssessment(payload)
	case FormatNarrative:
		ctx, err = normalizeNarrative(payload)
	}
	if err != nil {
		return nil, err
	}

	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

func normalizeAssessment(payload []byte) (*Context, error) {
	var export assessmentExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return nil, &UnrecognizedFormatError{
			Suggestions: []string{"app_overview or server_details has an unexpected shape"},
		}
	}

	ctx := &Context{SourceFormat: FormatAssessment}
	ctx.AppName = firstNonEmpty(export.AppOverview.Application, export.AppOverview.Name)
	ctx.Criticality = canonicalCriticality(firstNonEmpty(export.AppOverview.Criticality, export.AppOverview.BusinessCriticality))
	ctx.Compliance = parseStringList(export.AppOverview.Compliance)
	ctx.ExplicitTreatment = strings.ToLower(strings.TrimSpace(export.AppOverview.Treatment))
	ctx.ExplicitTime = strings.ToLower(strings.TrimSpace(export.AppOverview.TimeCategory))
	ctx.Technologies = normalizeTechList(parseTechEntries(export.DetectedTechnology))

	for _, s := range export.ServerDetails {
		ctx.Servers = append(ctx.Servers, Server{
			Name:     firstNonEmpty(s.Name, s.Hostname),
			OS:       firstNonEmpty(s.OperatingSystem, s.OS),
			CPUCores: maxInt(s.Cores, s.CPUCores),
			MemoryGB: s.MemoryGB,
			Ready:    s.Ready,
		})
	}

	if export.AppModResults != nil {
		ctx.AppMod = &AppModFindings{
			Verdict:            export.AppModResults.Verdict,
			ContainerReady:     export.AppModResults.ContainerReady,
			Blockers:           append([]string(nil), export.AppModResults.Blockers...),
			RecommendedTargets: append([]string(nil), export.AppModResults.RecommendedTargets...),
		}
	}

	ctx.Complexity = &ComplexityMetrics{
		ServerCount:      len(ctx.Servers),
		EnvironmentCount: len(export.AppOverview.Environments),
	}
	if export.Network != nil {
		ctx.Complexity.ConnectionCount = maxInt(export.Network.Connections, export.Network.Dependencies)
	}

	return ctx, nil
}

func normalizeNarrative(payload []byte) (*Context, error) {
	var export narrativeExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return nil, &UnrecognizedFormatError{
			Suggestions: []string{"application_overview or server_overviews has an unexpected shape"},
		}
	}

	ctx := &Context{SourceFormat: FormatNarrative}
	ctx.AppName = firstNonEmpty(export.ApplicationOverview.Name, export.ApplicationOverview.ApplicationName)
	ctx.Criticality = canonicalCriticality(firstNonEmpty(
		export.ApplicationOverview.BusinessCriticality, export.ApplicationOverview.Criticality))

	compliance := parseStringList(export.ApplicationOverview.Compliance)
	compliance = append(compliance, parseStringList(export.ApplicationOverview.Regulatory)...)
	ctx.Compliance = dedupe(compliance)

	ctx.Technologies = normalizeTechList(export.KeySoftware)

	for _, s := range export.ServerOverviews {
		ctx.Servers = append(ctx.Servers, Server{
			Name:     firstNonEmpty(s.Hostname, s.Name),
			OS:       s.OperatingSystem,
			CPUCores: s.CPU,
			MemoryGB: s.MemoryGB,
		})
	}

	// The narrative export never ships App-Mod results; synthesize an
	// equivalent from the recognized frameworks so downstream inference
	// sees both formats the same way.
	ctx.AppMod = synthesizeAppMod(ctx.Technologies)

	ctx.Complexity = &ComplexityMetrics{
		ServerCount:      len(ctx.Servers),
		EnvironmentCount: len(export.Environments),
	}

	return ctx, nil
}

func validateContext(ctx *Context) error {
	var missing, suggestions []string
	if ctx.AppName == "" {
		missing = append(missing, "application name")
		suggestions = append(suggestions, `set "application" (assessment) or "application_overview.name" (narrative)`)
	}
	if len(ctx.Technologies) == 0 && len(ctx.Servers) == 0 {
		missing = append(missing, "technologies or servers")
		suggestions = append(suggestions, "include at least one detected technology or one server record")
	}
	if len(missing) > 0 {
		return &IncompleteDataError{MissingFields: missing, Suggestions: suggestions}
	}
	return nil
}

// parseTechEntries accepts the detected-technology array in either of its
// observed encodings: plain strings or objects with a name field.
func parseTechEntries(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		return asStrings
	}
	var asObjects []struct {
		Name       string `json:"name"`
		Technology string `json:"technology"`
	}
	if err := json.Unmarshal(raw, &asObjects); err == nil {
		out := make([]string, 0, len(asObjects))
		for _, o := range asObjects {
			if v := firstNonEmpty(o.Name, o.Technology); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	return nil
}

// parseStringList accepts either a JSON array of strings or a single
// comma-separated string.
func parseStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimAll(list)
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return trimAll(strings.Split(single, ","))
	}
	return nil
}

func normalizeTechList(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, t := range raw {
		c := canonicalTech(t)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, v := range list {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
