package intent

import (
	"testing"

	"github.com/archadvisor/archadvisor/internal/appctx"
	"github.com/archadvisor/archadvisor/internal/catalog"
)

func newTestDeriver(t *testing.T) *Deriver {
	t.Helper()
	d, err := NewDeriver()
	if err != nil {
		t.Fatalf("NewDeriver failed: %v", err)
	}
	return d
}

func baseContext() *appctx.Context {
	return &appctx.Context{
		AppName:    "test-app",
		Complexity: &appctx.ComplexityMetrics{ServerCount: 2, EnvironmentCount: 1},
	}
}

func TestDeriveTreatment(t *testing.T) {
	d := newTestDeriver(t)

	tests := []struct {
		name       string
		ctx        func() *appctx.Context
		wantValue  catalog.Treatment
		wantConf   Confidence
		wantSource Source
	}{
		{
			name: "explicit treatment wins",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.ExplicitTreatment = "rehost"
				c.Servers = []appctx.Server{{Name: "vm1", OS: "Windows Server 2019"}}
				return c
			},
			wantValue:  catalog.TreatmentRehost,
			wantConf:   ConfidenceHigh,
			wantSource: SourceExplicit,
		},
		{
			name: "blockers without targets on EOL platform force retire",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.ExplicitTreatment = "replatform" // override beats even explicit labels
				c.Technologies = []string{"mainframe"}
				c.AppMod = &appctx.AppModFindings{Blockers: []string{"no container path"}}
				return c
			},
			wantValue:  catalog.TreatmentRetire,
			wantConf:   ConfidenceHigh,
			wantSource: SourceInferred,
		},
		{
			name: "end-of-life language infers retire",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.Technologies = []string{"java"}
				c.Servers = []appctx.Server{{Name: "vm1", OS: "Windows Server 2008"}}
				c.AppMod = &appctx.AppModFindings{ContainerReady: false}
				return c
			},
			wantValue:  catalog.TreatmentRetire,
			wantConf:   ConfidenceHigh,
			wantSource: SourceInferred,
		},
		{
			name: "SaaS candidate infers replace",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.Technologies = []string{"sharepoint"}
				c.AppMod = &appctx.AppModFindings{}
				return c
			},
			wantValue:  catalog.TreatmentReplace,
			wantConf:   ConfidenceMedium,
			wantSource: SourceInferred,
		},
		{
			name: "container-ready microservices infer refactor",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.Technologies = []string{"microservices", "kubernetes"}
				c.AppMod = &appctx.AppModFindings{ContainerReady: true, RecommendedTargets: []string{"aks"}}
				return c
			},
			wantValue:  catalog.TreatmentRefactor,
			wantConf:   ConfidenceMedium,
			wantSource: SourceInferred,
		},
		{
			name: "VM-only estate with no App Mod infers rehost",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.Technologies = []string{"java"}
				c.Servers = []appctx.Server{{Name: "vm1", OS: "RHEL 8"}, {Name: "vm2", OS: "RHEL 8"}}
				return c
			},
			wantValue:  catalog.TreatmentRehost,
			wantConf:   ConfidenceMedium,
			wantSource: SourceInferred,
		},
		{
			name: "very high scale defaults to replatform, not refactor",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.Technologies = []string{"java"}
				c.AppMod = &appctx.AppModFindings{ContainerReady: true}
				c.Complexity = &appctx.ComplexityMetrics{ServerCount: 40, EnvironmentCount: 5}
				return c
			},
			wantValue:  catalog.TreatmentReplatform,
			wantConf:   ConfidenceMedium,
			wantSource: SourceInferred,
		},
		{
			name: "no signal defaults to replatform at low confidence",
			ctx: func() *appctx.Context {
				c := baseContext()
				c.Technologies = []string{"java"}
				c.AppMod = &appctx.AppModFindings{}
				return c
			},
			wantValue:  catalog.TreatmentReplatform,
			wantConf:   ConfidenceLow,
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			di := d.Derive(tt.ctx(), nil)
			if di.Treatment.Value != string(tt.wantValue) {
				t.Errorf("treatment = %q, want %q", di.Treatment.Value, tt.wantValue)
			}
			if di.Treatment.Confidence != tt.wantConf {
				t.Errorf("confidence = %q, want %q", di.Treatment.Confidence, tt.wantConf)
			}
			if di.Treatment.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", di.Treatment.Source, tt.wantSource)
			}
			if len(di.Treatment.Evidence) == 0 {
				t.Error("expected evidence on the treatment finding")
			}
		})
	}
}

func TestDeriveSecurityLevel(t *testing.T) {
	d := newTestDeriver(t)

	tests := []struct {
		name       string
		compliance []string
		crit       string
		want       catalog.SecurityLevel
		wantConf   Confidence
	}{
		{"HIPAA is highly regulated", []string{"HIPAA"}, "", catalog.SecurityHighlyRegulated, ConfidenceHigh},
		{"PCI-DSS is highly regulated", []string{"PCI-DSS"}, "low", catalog.SecurityHighlyRegulated, ConfidenceHigh},
		{"generic regulatory term", []string{"regulated industry"}, "", catalog.SecurityRegulated, ConfidenceMedium},
		{"high criticality without compliance", nil, "high", catalog.SecurityEnterprise, ConfidenceMedium},
		{"nothing at all", nil, "", catalog.SecurityBasic, ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseContext()
			c.Compliance = tt.compliance
			c.Criticality = tt.crit
			c.Technologies = []string{"java"}
			c.AppMod = &appctx.AppModFindings{}
			di := d.Derive(c, nil)
			if di.SecurityLevel.Value != string(tt.want) {
				t.Errorf("security = %q, want %q", di.SecurityLevel.Value, tt.want)
			}
			if di.SecurityLevel.Confidence != tt.wantConf {
				t.Errorf("confidence = %q, want %q", di.SecurityLevel.Confidence, tt.wantConf)
			}
		})
	}
}

func TestDeriveSoftDimensions(t *testing.T) {
	d := newTestDeriver(t)

	c := baseContext()
	c.Technologies = []string{"kubernetes", "kafka", "terraform"}
	c.AppMod = &appctx.AppModFindings{}
	di := d.Derive(c, nil)

	if di.OperatingModel.Value != string(catalog.OperatingDevOps) {
		t.Errorf("operating model = %q, want devops", di.OperatingModel.Value)
	}
	if di.RuntimeModel.Value != string(catalog.RuntimeMicroservices) {
		t.Errorf("runtime = %q, want microservices (kubernetes signal)", di.RuntimeModel.Value)
	}

	// No signal at all: baselines at low confidence.
	quiet := baseContext()
	quiet.Technologies = []string{"java"}
	quiet.AppMod = &appctx.AppModFindings{}
	di = d.Derive(quiet, nil)
	if di.OperatingModel.Value != string(catalog.OperatingTransitional) || di.OperatingModel.Confidence != ConfidenceLow {
		t.Errorf("expected transitional/low baseline, got %q/%q", di.OperatingModel.Value, di.OperatingModel.Confidence)
	}
	if di.CostPosture.Value != string(catalog.CostBalanced) || di.CostPosture.Confidence != ConfidenceLow {
		t.Errorf("expected balanced/low baseline, got %q/%q", di.CostPosture.Value, di.CostPosture.Confidence)
	}
	if di.Availability.Value != string(catalog.AvailabilityStandard) {
		t.Errorf("expected standard availability, got %q", di.Availability.Value)
	}
}

func TestTimeCategoryFollowsTreatment(t *testing.T) {
	tests := []struct {
		treatment catalog.Treatment
		want      TIMECategory
	}{
		{catalog.TreatmentRefactor, TIMEInvest},
		{catalog.TreatmentRebuild, TIMEInvest},
		{catalog.TreatmentRehost, TIMEMigrate},
		{catalog.TreatmentReplatform, TIMEMigrate},
		{catalog.TreatmentReplace, TIMEMigrate},
		{catalog.TreatmentRetain, TIMETolerate},
		{catalog.TreatmentTolerate, TIMETolerate},
		{catalog.TreatmentRetire, TIMEEliminate},
	}
	for _, tt := range tests {
		if got := timeForTreatment(tt.treatment); got != tt.want {
			t.Errorf("timeForTreatment(%q) = %q, want %q", tt.treatment, got, tt.want)
		}
	}
}

func TestUserAnswersOverrideInference(t *testing.T) {
	d := newTestDeriver(t)

	c := baseContext()
	c.Technologies = []string{"java"}
	c.AppMod = &appctx.AppModFindings{}
	answers := map[string]string{
		"operating_model": "devops",
		"treatment":       "refactor",
		"bogus_dimension": "ignored",
	}

	di := d.Derive(c, answers)

	if di.OperatingModel.Value != "devops" || di.OperatingModel.Confidence != ConfidenceHigh || di.OperatingModel.Source != SourceUser {
		t.Errorf("expected user-pinned devops at high confidence, got %+v", di.OperatingModel)
	}
	if di.Treatment.Value != "refactor" || di.Treatment.Source != SourceUser {
		t.Errorf("expected user-pinned refactor, got %+v", di.Treatment)
	}
	// TIME follows the user-selected treatment.
	if di.TimeCategory.Value != string(TIMEInvest) {
		t.Errorf("expected TIME invest after refactor answer, got %q", di.TimeCategory.Value)
	}
}

func TestLexiconValidationFailsFast(t *testing.T) {
	bad := KeywordTable{"warp_speed": {"x"}}
	if err := validateTable("test", bad, stringValues(catalog.AllSecurityLevels())); err == nil {
		t.Fatal("expected unknown enum key to fail validation")
	}
}
