package appctx

import "strings"

// techAlias maps vendor-export technology names to a canonical token.
// Lookups are case-insensitive substring matches over the export value;
// the table is ordered so a value matching several aliases always
// resolves to the same token.
type techAlias struct {
	canonical string
	aliases   []string
}

var techAliases = []techAlias{
	{"sql_server", []string{"microsoft sql server", "ms sql", "mssql", "sql server"}},
	{"oracle_db", []string{"oracle database", "oracle db"}},
	{"postgresql", []string{"postgresql", "postgres"}},
	{"mysql", []string{"mysql", "mariadb"}},
	{"iis", []string{"internet information services", "iis"}},
	{"spring", []string{"spring boot", "spring framework", "spring"}},
	{"dotnet", []string{".net framework", ".net core", "dotnet", "asp.net"}},
	{"java", []string{"tomcat", "jboss", "weblogic", "websphere", "java", "jdk", "jre"}},
	{"nodejs", []string{"node.js", "nodejs", "node js"}},
	{"php", []string{"laravel", "wordpress", "php"}},
	{"python", []string{"django", "flask", "python"}},
	{"nginx", []string{"nginx"}},
	{"apache", []string{"apache http", "httpd", "apache2"}},
	{"redis", []string{"redis"}},
	{"rabbitmq", []string{"rabbitmq"}},
	{"kafka", []string{"kafka"}},
	{"kubernetes", []string{"kubernetes", "k8s", "openshift"}},
	{"docker", []string{"docker", "container"}},
	{"mainframe", []string{"mainframe", "as/400", "as400", "cobol", "cics", "z/os"}},
	{"sharepoint", []string{"sharepoint"}},
	{"exchange", []string{"exchange server", "microsoft exchange"}},
	{"citrix", []string{"citrix"}},
	{"vmware", []string{"vmware", "vsphere", "esxi"}},
	{"file_share", []string{"file share", "smb", "nfs"}},
	{"active_directory", []string{"active directory"}},
	{"elasticsearch", []string{"elasticsearch", "elastic search"}},
	{"mongodb", []string{"mongodb", "mongo db"}},
}

// criticalityAliases maps narrative criticality wording to canonical
// values, most specific first.
var criticalityAliases = []techAlias{
	{"mission_critical", []string{"mission critical", "mission-critical", "tier 0", "tier-0"}},
	{"high", []string{"business critical", "business-critical", "tier 1", "tier-1", "high"}},
	{"medium", []string{"moderate", "important", "tier 2", "tier-2", "medium"}},
	{"low", []string{"non-critical", "tier 3", "tier-3", "low"}},
}

// frameworkTarget pairs an application-framework pattern with the App-Mod
// findings the assessment tool would have produced for it. Used only to
// synthesize an App-Mod record for the narrative export, which ships none.
type frameworkTarget struct {
	patterns       []string
	containerReady bool
	targets        []string
	blockers       []string
}

var frameworkTargets = []frameworkTarget{
	{
		patterns:       []string{"spring", "java", "tomcat"},
		containerReady: true,
		targets:        []string{"aks", "container_apps"},
	},
	{
		patterns:       []string{".net core", "dotnet core", "asp.net core"},
		containerReady: true,
		targets:        []string{"app_service", "container_apps"},
	},
	{
		patterns:       []string{".net framework", "asp.net"},
		containerReady: false,
		targets:        []string{"app_service"},
		blockers:       []string{"framework version requires Windows containers or replatform"},
	},
	{
		patterns:       []string{"node", "python", "php"},
		containerReady: true,
		targets:        []string{"app_service", "container_apps"},
	},
	{
		patterns:       []string{"mainframe", "cobol", "as/400", "as400"},
		containerReady: false,
		blockers:       []string{"mainframe workload has no supported container path"},
	},
}

// canonicalTech normalizes one export technology value to its canonical
// token, falling back to a lowercased copy of the raw value.
func canonicalTech(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return ""
	}
	for _, entry := range techAliases {
		for _, alias := range entry.aliases {
			if strings.Contains(lower, alias) {
				return entry.canonical
			}
		}
	}
	return lower
}

func canonicalCriticality(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return ""
	}
	for _, entry := range criticalityAliases {
		for _, alias := range entry.aliases {
			if strings.Contains(lower, alias) {
				return entry.canonical
			}
		}
	}
	return lower
}

// synthesizeAppMod pattern-matches technology names to known frameworks and
// builds the App-Mod record the narrative export lacks. Returns nil when no
// framework is recognized.
func synthesizeAppMod(technologies []string) *AppModFindings {
	joined := strings.ToLower(strings.Join(technologies, " "))
	for _, ft := range frameworkTargets {
		for _, p := range ft.patterns {
			if strings.Contains(joined, p) {
				verdict := "compatible"
				if !ft.containerReady {
					verdict = "needs_review"
				}
				return &AppModFindings{
					Verdict:            verdict,
					ContainerReady:     ft.containerReady,
					Blockers:           append([]string(nil), ft.blockers...),
					RecommendedTargets: append([]string(nil), ft.targets...),
					Synthesized:        true,
				}
			}
		}
	}
	return nil
}
