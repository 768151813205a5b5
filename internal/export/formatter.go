// Package export renders scoring results for terminals and files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/engine"
	"github.com/archadvisor/archadvisor/internal/intent"
)

// Colors for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// Formatter handles output formatting
type Formatter struct {
	format string
	color  bool
}

// NewFormatter creates a new formatter
func NewFormatter(format string, color bool) *Formatter {
	return &Formatter{
		format: format,
		color:  color,
	}
}

// FormatResult formats a full scoring result
func (f *Formatter) FormatResult(result *engine.ScoringResult) (string, error) {
	switch f.format {
	case "json":
		return f.toJSON(result)
	case "yaml":
		return f.toYAML(result)
	}

	var sb strings.Builder

	sb.WriteString(f.header(fmt.Sprintf("Recommendations for %s", result.AppName)))

	// Summary
	if result.Summary.Primary != "" {
		sb.WriteString(f.bold(fmt.Sprintf("Primary: %s\n", result.Summary.Primary)))
	}
	sb.WriteString(fmt.Sprintf("Confidence: %s\n", f.confidence(result.Summary.Confidence)))
	if result.Summary.Notes != "" {
		sb.WriteString(fmt.Sprintf("Note: %s\n", result.Summary.Notes))
	}
	sb.WriteString("\n")

	// Derived intent
	sb.WriteString(f.subheader("Derived Intent"))
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIMENSION\tVALUE\tCONFIDENCE\tSOURCE")
	fmt.Fprintln(w, "---------\t-----\t----------\t------")
	for _, dim := range intent.AllDimensions() {
		finding, ok := result.Intent.Finding(dim)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dim, finding.Value, finding.Confidence, finding.Source)
	}
	w.Flush()
	sb.WriteString("\n")

	// Ranked recommendations
	if len(result.Recommendations) == 0 {
		sb.WriteString(fmt.Sprintf("%sNo eligible architectures%s\n", colorIf(f.color, colorRed), colorIf(f.color, colorReset)))
	} else {
		sb.WriteString(f.subheader("Ranked Architectures"))
		w = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tARCHITECTURE\tSCORE\tFAMILY\tTIER")
		fmt.Fprintln(w, "----\t------------\t-----\t------\t----")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%s\n",
				rec.Rank, rec.Entry.Name, rec.Score, rec.Entry.Family, rec.Entry.QualityTier)
		}
		w.Flush()
		sb.WriteString("\n")

		top := result.Recommendations[0]
		if len(top.Fit) > 0 {
			sb.WriteString(f.subheader("Why It Fits"))
			for _, reason := range top.Fit {
				sb.WriteString(fmt.Sprintf("  %s+%s %s\n", colorIf(f.color, colorGreen), colorIf(f.color, colorReset), reason))
			}
			sb.WriteString("\n")
		}
		if len(top.Struggles) > 0 {
			sb.WriteString(f.subheader("Watch Out For"))
			for _, reason := range top.Struggles {
				sb.WriteString(fmt.Sprintf("  %s-%s %s\n", colorIf(f.color, colorYellow), colorIf(f.color, colorReset), reason))
			}
			sb.WriteString("\n")
		}
	}

	// Open questions
	if len(result.Questions) > 0 {
		sb.WriteString(f.subheader(fmt.Sprintf("Open Questions (%d)", len(result.Questions))))
		for i, q := range result.Questions {
			sb.WriteString(fmt.Sprintf("%d. %s (currently %q, %s confidence)\n",
				i+1, q.Question, q.CurrentValue, q.CurrentConfidence))
		}
		sb.WriteString("\n")
	}

	if n := len(result.Excluded); n > 0 {
		sb.WriteString(fmt.Sprintf("%d architectures excluded before scoring; use --show-excluded for details\n", n))
	}

	return sb.String(), nil
}

// FormatExcluded formats the exclusion list
func (f *Formatter) FormatExcluded(excluded []engine.ExcludedArchitecture) (string, error) {
	switch f.format {
	case "json":
		return f.toJSON(excluded)
	case "yaml":
		return f.toYAML(excluded)
	}

	var sb strings.Builder

	sb.WriteString(f.header("Excluded Architectures"))
	if len(excluded) == 0 {
		sb.WriteString("Nothing was excluded\n")
		return sb.String(), nil
	}

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARCHITECTURE\tREASON\tDETAIL")
	fmt.Fprintln(w, "------------\t------\t------")
	for _, ex := range excluded {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ex.Name, ex.Reason, ex.Detail)
	}
	w.Flush()

	return sb.String(), nil
}

// FormatQuestions formats clarification questions with their options
func (f *Formatter) FormatQuestions(questions []engine.ClarificationQuestion) (string, error) {
	switch f.format {
	case "json":
		return f.toJSON(questions)
	case "yaml":
		return f.toYAML(questions)
	}

	var sb strings.Builder

	sb.WriteString(f.header("Clarification Questions"))
	if len(questions) == 0 {
		sb.WriteString(fmt.Sprintf("%sNothing to clarify: the derived intent is settled%s\n",
			colorIf(f.color, colorGreen), colorIf(f.color, colorReset)))
		return sb.String(), nil
	}

	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.bold(q.Question)))
		sb.WriteString(fmt.Sprintf("   current: %s (%s confidence)\n", q.CurrentValue, q.CurrentConfidence))
		for _, opt := range q.Options {
			if opt.Description != "" {
				sb.WriteString(fmt.Sprintf("   - %s: %s\n", opt.Value, opt.Description))
			} else {
				sb.WriteString(fmt.Sprintf("   - %s\n", opt.Value))
			}
		}
		sb.WriteString(fmt.Sprintf("   answer with: --answer %s=<value>\n\n", q.Dimension))
	}

	return sb.String(), nil
}

// FormatStats formats catalog statistics
func (f *Formatter) FormatStats(stats catalog.Stats) (string, error) {
	switch f.format {
	case "json":
		return f.toJSON(stats)
	case "yaml":
		return f.toYAML(stats)
	}

	var sb strings.Builder

	sb.WriteString(f.header("Catalog Statistics"))
	sb.WriteString(f.bold(fmt.Sprintf("Total architectures: %d\n", stats.Total)))
	sb.WriteString("\n")

	sections := []struct {
		title  string
		counts map[string]int
	}{
		{"By Family", stringCounts(stats.ByFamily)},
		{"By Domain", stringCounts(stats.ByDomain)},
		{"By Quality Tier", stringCounts(stats.ByTier)},
		{"By Treatment", stringCounts(stats.Treatments)},
	}
	for _, section := range sections {
		if len(section.counts) == 0 {
			continue
		}
		sb.WriteString(f.subheader(section.title))
		w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		for _, key := range sortedKeys(section.counts) {
			fmt.Fprintf(w, "%s\t%d\n", key, section.counts[key])
		}
		w.Flush()
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// Print outputs to stdout
func (f *Formatter) Print(output string) {
	fmt.Fprint(os.Stdout, output)
}

// Helper methods

func (f *Formatter) header(text string) string {
	if f.color {
		return fmt.Sprintf("\n%s%s=== %s ===%s\n\n", colorBold, colorCyan, text, colorReset)
	}
	return fmt.Sprintf("\n=== %s ===\n\n", text)
}

func (f *Formatter) subheader(text string) string {
	if f.color {
		return fmt.Sprintf("%s%s%s%s\n", colorBold, colorYellow, text, colorReset)
	}
	return fmt.Sprintf("%s\n", text)
}

func (f *Formatter) bold(text string) string {
	if f.color {
		return fmt.Sprintf("%s%s%s", colorBold, text, colorReset)
	}
	return text
}

func (f *Formatter) confidence(c intent.Confidence) string {
	if !f.color {
		return string(c)
	}
	color := colorRed
	switch c {
	case intent.ConfidenceHigh:
		color = colorGreen
	case intent.ConfidenceMedium:
		color = colorYellow
	}
	return fmt.Sprintf("%s%s%s", color, c, colorReset)
}

func (f *Formatter) toJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(data), nil
}

func (f *Formatter) toYAML(v interface{}) (string, error) {
	data, err := yamlBytes(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return string(data), nil
}

// yamlBytes marshals through JSON first so the YAML keys match the
// snake_case JSON field names instead of Go identifiers.
func yamlBytes(v interface{}) ([]byte, error) {
	j, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree interface{}
	if err := json.Unmarshal(j, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

func colorIf(enabled bool, code string) string {
	if enabled {
		return code
	}
	return ""
}

func stringCounts[T ~string](m map[T]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
