package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/archadvisor/archadvisor/internal/engine"
)

// Exporter handles result export to files
type Exporter struct{}

// NewExporter creates a new exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportToFile writes a scoring result to a file in the given format
func (e *Exporter) ExportToFile(result *engine.ScoringResult, format, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var content []byte
	var err error

	switch format {
	case "json":
		content, err = json.MarshalIndent(result, "", "  ")
	case "yaml":
		content, err = yamlBytes(result)
	case "csv":
		content, err = e.toCSV(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// toCSV flattens the ranked recommendations into one row per entry.
func (e *Exporter) toCSV(result *engine.ScoringResult) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	w.Write([]string{"Rank", "ID", "Architecture", "Score", "Family", "Quality Tier", "Fit", "Struggles"})

	for _, rec := range result.Recommendations {
		w.Write([]string{
			fmt.Sprintf("%d", rec.Rank),
			rec.Entry.ID,
			rec.Entry.Name,
			fmt.Sprintf("%.1f", rec.Score),
			string(rec.Entry.Family),
			string(rec.Entry.QualityTier),
			strings.Join(rec.Fit, "; "),
			strings.Join(rec.Struggles, "; "),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return []byte(sb.String()), nil
}

// GenerateFilename generates a timestamped filename for export
func (e *Exporter) GenerateFilename(prefix, format string) string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("%s-%s.%s", prefix, timestamp, format)
}
