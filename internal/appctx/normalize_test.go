package appctx

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const assessmentDoc = `[{
	"app_overview": {
		"application": "Order Portal",
		"criticality": "Business Critical",
		"compliance_requirements": ["PCI-DSS", "SOX"],
		"treatment": "Rehost",
		"environments": ["dev", "prod"]
	},
	"detected_technology_running": ["Microsoft SQL Server 2016", "IIS 10", ".NET Framework 4.8"],
	"server_details": [
		{"server_name": "web01", "operating_system": "Windows Server 2019", "cores": 4, "memory_gb": 16, "migration_ready": true},
		{"server_name": "db01", "operating_system": "Windows Server 2016", "cores": 8, "memory_gb": 64}
	],
	"App Mod results": {
		"verdict": "needs_review",
		"container_ready": false,
		"blockers": ["full framework dependency"],
		"recommended_targets": ["app_service"]
	},
	"network_connectivity": {"connection_count": 12}
}]`

const narrativeDoc = `{
	"application_overview": {
		"name": "Claims Intake",
		"business_criticality": "Mission Critical",
		"compliance": "HIPAA, HITRUST"
	},
	"server_overviews": [
		{"hostname": "app-lx-01", "operating_system": "RHEL 8", "cpu": 8, "memory_gb": 32}
	],
	"key_software": ["Spring Boot 2.7", "PostgreSQL 13", "Apache Kafka"],
	"environments": ["prod"]
}`

func TestNormalizeAssessmentExport(t *testing.T) {
	ctx, err := Normalize([]byte(assessmentDoc))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if ctx.SourceFormat != FormatAssessment {
		t.Errorf("expected assessment format, got %q", ctx.SourceFormat)
	}
	if ctx.AppName != "Order Portal" {
		t.Errorf("expected app name Order Portal, got %q", ctx.AppName)
	}
	if ctx.Criticality != "high" {
		t.Errorf("expected canonical criticality high, got %q", ctx.Criticality)
	}
	if ctx.ExplicitTreatment != "rehost" {
		t.Errorf("expected explicit treatment rehost, got %q", ctx.ExplicitTreatment)
	}

	wantTech := []string{"dotnet", "iis", "sql_server"}
	if !reflect.DeepEqual(ctx.Technologies, wantTech) {
		t.Errorf("expected technologies %v, got %v", wantTech, ctx.Technologies)
	}

	if len(ctx.Servers) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(ctx.Servers))
	}
	if !ctx.Servers[0].IsWindows() {
		t.Error("expected web01 to be detected as Windows")
	}
	if !ctx.WindowsOnly() {
		t.Error("expected a Windows-only estate")
	}

	if ctx.AppMod == nil || ctx.AppMod.Synthesized {
		t.Fatal("expected App Mod findings taken from the export, not synthesized")
	}
	if ctx.AppMod.ContainerReady {
		t.Error("expected container_ready false")
	}

	if ctx.Complexity.ServerCount != 2 || ctx.Complexity.EnvironmentCount != 2 || ctx.Complexity.ConnectionCount != 12 {
		t.Errorf("unexpected complexity metrics: %+v", ctx.Complexity)
	}
}

func TestNormalizeNarrativeExport(t *testing.T) {
	ctx, err := Normalize([]byte(narrativeDoc))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if ctx.SourceFormat != FormatNarrative {
		t.Errorf("expected narrative format, got %q", ctx.SourceFormat)
	}
	if ctx.Criticality != "mission_critical" {
		t.Errorf("expected mission_critical, got %q", ctx.Criticality)
	}
	if !reflect.DeepEqual(ctx.Compliance, []string{"HIPAA", "HITRUST"}) {
		t.Errorf("expected split compliance list, got %v", ctx.Compliance)
	}
	if !ctx.HasTechnology("spring") || !ctx.HasTechnology("kafka") {
		t.Errorf("expected canonical spring and kafka tokens, got %v", ctx.Technologies)
	}
	if !ctx.LinuxOnly() {
		t.Error("expected a Linux-only estate")
	}

	// Narrative exports carry no App Mod record: one must be synthesized
	// from the recognized frameworks.
	if ctx.AppMod == nil {
		t.Fatal("expected synthesized App Mod findings")
	}
	if !ctx.AppMod.Synthesized || !ctx.AppMod.ContainerReady {
		t.Errorf("expected synthesized container-ready findings, got %+v", ctx.AppMod)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, err := Normalize([]byte(narrativeDoc))
	if err != nil {
		t.Fatalf("first Normalize failed: %v", err)
	}
	second, err := Normalize([]byte(narrativeDoc))
	if err != nil {
		t.Fatalf("second Normalize failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalizeUnrecognizedFormat(t *testing.T) {
	_, err := Normalize([]byte(`{"random_field": 1, "other": "x"}`))
	if err == nil {
		t.Fatal("expected error for unknown shape")
	}
	var ferr *UnrecognizedFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *UnrecognizedFormatError, got %T: %v", err, err)
	}
	if len(ferr.Suggestions) == 0 {
		t.Error("expected actionable suggestions on format error")
	}
	if !strings.Contains(ferr.Error(), "other") {
		t.Errorf("expected present fields in message, got %q", ferr.Error())
	}
}

func TestNormalizeIncompleteData(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing app name",
			doc: `{"app_overview": {"criticality": "high"},
				"detected_technology_running": ["java"]}`,
			want: "application name",
		},
		{
			name: "no technologies or servers",
			doc: `{"app_overview": {"application": "Empty App"},
				"detected_technology_running": [], "server_details": []}`,
			want: "technologies or servers",
		},
		{
			name: "empty wrapper array",
			doc:  `[]`,
			want: "document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected IncompleteDataError")
			}
			var ierr *IncompleteDataError
			if !errors.As(err, &ierr) {
				t.Fatalf("expected *IncompleteDataError, got %T: %v", err, err)
			}
			if !strings.Contains(ierr.Error(), tt.want) {
				t.Errorf("expected missing field %q in %q", tt.want, ierr.Error())
			}
			if len(ierr.Suggestions) == 0 {
				t.Error("expected remediation suggestions")
			}
		})
	}
}

func TestErrorMessagesCarrySuggestions(t *testing.T) {
	// The error string itself must carry the remediation guidance; callers
	// that just print err.Error() (cobra does) get the full message.
	_, err := Normalize([]byte(`{"random_field": 1}`))
	if err == nil {
		t.Fatal("expected error for unknown shape")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"app_overview"`) || !strings.Contains(msg, `"application_overview"`) {
		t.Errorf("format error message should list the accepted shapes, got %q", msg)
	}

	_, err = Normalize([]byte(`{"app_overview": {}, "server_details": []}`))
	if err == nil {
		t.Fatal("expected error for incomplete data")
	}
	msg = err.Error()
	if !strings.Contains(msg, `set "application"`) {
		t.Errorf("incomplete-data message should carry the remediation steps, got %q", msg)
	}
}

func TestCanonicalTechFallsBackToLowercase(t *testing.T) {
	if got := canonicalTech("  Custom Inventory Agent "); got != "custom inventory agent" {
		t.Errorf("expected lowercase fallback, got %q", got)
	}
	if got := canonicalTech("Apache Kafka 3.2"); got != "kafka" {
		t.Errorf("expected kafka alias, got %q", got)
	}
}
