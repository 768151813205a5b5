package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(questionsCmd)
}

// questionsCmd represents the questions command
var questionsCmd = &cobra.Command{
	Use:   "questions <export-file>",
	Short: "Show the clarification questions for an application export",
	Long: `Derive the migration intent from an export and print the questions
that would sharpen a scoring run. Each question names the uncertain
dimension, its currently inferred value, and the selectable options.

Answer them on the next score run:
  archadvisor score assessment.json --answer treatment=replatform

Examples:
  archadvisor questions assessment.json
  archadvisor questions assessment.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuestions,
}

func runQuestions(cmd *cobra.Command, args []string) error {
	raw, err := readExport(args[0])
	if err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	questions, err := eng.Questions(raw)
	if err != nil {
		return err
	}

	formatter := newFormatter()
	output, err := formatter.FormatQuestions(questions)
	if err != nil {
		return err
	}
	formatter.Print(output)
	return nil
}
