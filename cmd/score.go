package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archadvisor/archadvisor/internal/export"
	"github.com/archadvisor/archadvisor/internal/history"
	"github.com/archadvisor/archadvisor/internal/server"
)

var (
	scoreAnswers      string
	scoreMax          int
	scoreOutput       string
	scoreShowExcluded bool
	scoreNoSave       bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreAnswers, "answer", "", "clarification answers as dimension=value pairs, comma separated")
	scoreCmd.Flags().IntVar(&scoreMax, "max", 0, "max recommendations to return (default: from config, 3)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "", "export the full result to a file (json, yaml, or csv by extension)")
	scoreCmd.Flags().BoolVar(&scoreShowExcluded, "show-excluded", false, "also print the architectures excluded before scoring")
	scoreCmd.Flags().BoolVar(&scoreNoSave, "no-save", false, "do not archive this run in the history database")
}

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <export-file>",
	Short: "Score an application export against the architecture catalog",
	Long: `Score an application assessment export and print ranked architecture
recommendations. Reads the export from the given file, or from stdin
when the file is "-".

Examples:
  archadvisor score assessment.json
  archadvisor score assessment.json --answer treatment=replatform,availability=high_availability
  archadvisor score assessment.json --max 5 --format json
  archadvisor score assessment.json --output result.yaml
  cat assessment.json | archadvisor score -`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	raw, err := readExport(args[0])
	if err != nil {
		return err
	}

	answers, err := server.ParseAnswers(scoreAnswers)
	if err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	maxRecs := scoreMax
	if maxRecs <= 0 {
		maxRecs = viper.GetInt("scoring.max_recommendations")
	}

	result, err := eng.Score(raw, answers, maxRecs)
	if err != nil {
		return err
	}

	if !scoreNoSave {
		if path := historyPath(); path != "" {
			if store, herr := history.New(path); herr == nil {
				if _, serr := store.SaveRun(result); serr != nil && viper.GetBool("debug") {
					fmt.Fprintf(os.Stderr, "Warning: could not archive run: %v\n", serr)
				}
				store.Close()
			} else if viper.GetBool("debug") {
				fmt.Fprintf(os.Stderr, "Warning: run history disabled: %v\n", herr)
			}
		}
	}

	if scoreOutput != "" {
		exporter := export.NewExporter()
		if err := exporter.ExportToFile(result, formatFromPath(scoreOutput), scoreOutput); err != nil {
			return err
		}
		fmt.Printf("Result written to %s\n", scoreOutput)
		return nil
	}

	formatter := newFormatter()
	output, err := formatter.FormatResult(result)
	if err != nil {
		return err
	}
	formatter.Print(output)

	if scoreShowExcluded {
		excluded, err := formatter.FormatExcluded(result.Excluded)
		if err != nil {
			return err
		}
		formatter.Print(excluded)
	}

	return nil
}

// readExport reads the export document from a file or stdin.
func readExport(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return raw, nil
}

// formatFromPath infers the export format from the file extension.
func formatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return "yaml"
	case strings.HasSuffix(path, ".csv"):
		return "csv"
	default:
		return "json"
	}
}
