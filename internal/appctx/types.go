// Package appctx normalizes raw application-assessment exports into the
// canonical context record the intent deriver and scorer consume.
package appctx

import "strings"

// Context is the canonical application description. It is built once per
// scoring request from a raw export and never mutated afterwards.
type Context struct {
	AppName           string              `json:"app_name"`
	Criticality       string              `json:"criticality,omitempty"`
	Compliance        []string            `json:"compliance,omitempty"`
	Technologies      []string            `json:"technologies,omitempty"`
	Servers           []Server            `json:"servers,omitempty"`
	AppMod            *AppModFindings     `json:"app_mod,omitempty"`
	Complexity        *ComplexityMetrics  `json:"complexity,omitempty"`
	ExplicitTreatment string              `json:"explicit_treatment,omitempty"`
	ExplicitTime      string              `json:"explicit_time_category,omitempty"`
	SourceFormat      Format              `json:"source_format"`
}

// Server is one infrastructure record from the export.
type Server struct {
	Name     string  `json:"name"`
	OS       string  `json:"os,omitempty"`
	CPUCores int     `json:"cpu_cores,omitempty"`
	MemoryGB float64 `json:"memory_gb,omitempty"`
	Ready    bool    `json:"ready"`
}

// IsWindows reports whether the server runs a Windows OS.
func (s Server) IsWindows() bool {
	return strings.Contains(strings.ToLower(s.OS), "windows")
}

// IsLinux reports whether the server runs a Linux distribution.
func (s Server) IsLinux() bool {
	os := strings.ToLower(s.OS)
	for _, marker := range []string{"linux", "ubuntu", "rhel", "red hat", "centos", "debian", "suse"} {
		if strings.Contains(os, marker) {
			return true
		}
	}
	return false
}

// AppModFindings carries App Modernization assessment output: whether the
// app can be containerized, what blocks it, and which targets the
// assessment recommends. Synthesized is true when the findings were
// inferred from technology names rather than present in the export.
type AppModFindings struct {
	Verdict            string   `json:"verdict,omitempty"`
	ContainerReady     bool     `json:"container_ready"`
	Blockers           []string `json:"blockers,omitempty"`
	RecommendedTargets []string `json:"recommended_targets,omitempty"`
	Synthesized        bool     `json:"synthesized,omitempty"`
}

// ComplexityMetrics summarizes estate scale signals derived from server
// and network records.
type ComplexityMetrics struct {
	ServerCount      int `json:"server_count"`
	EnvironmentCount int `json:"environment_count"`
	ConnectionCount  int `json:"connection_count"`
}

// VeryHighScale reports whether the estate is big enough that the intent
// deriver should bias toward lower-risk migration treatments.
func (m *ComplexityMetrics) VeryHighScale() bool {
	if m == nil {
		return false
	}
	return m.ServerCount >= 20 || m.EnvironmentCount >= 4 || m.ConnectionCount >= 50
}

// WindowsOnly reports whether every server with a known OS runs Windows.
func (c *Context) WindowsOnly() bool {
	return c.osOnly(Server.IsWindows, Server.IsLinux)
}

// LinuxOnly reports whether every server with a known OS runs Linux.
func (c *Context) LinuxOnly() bool {
	return c.osOnly(Server.IsLinux, Server.IsWindows)
}

func (c *Context) osOnly(match, exclude func(Server) bool) bool {
	found := false
	for _, s := range c.Servers {
		if exclude(s) {
			return false
		}
		if match(s) {
			found = true
		}
	}
	return found
}

// HasTechnology reports whether any detected technology token contains the
// given substring (case-insensitive).
func (c *Context) HasTechnology(substr string) bool {
	substr = strings.ToLower(substr)
	for _, t := range c.Technologies {
		if strings.Contains(strings.ToLower(t), substr) {
			return true
		}
	}
	return false
}
