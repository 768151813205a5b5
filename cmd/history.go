package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/archadvisor/archadvisor/internal/history"
)

var (
	historyApp   string
	historyLimit int
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().StringVar(&historyApp, "app", "", "only show runs for this application")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "max runs to list")
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past scoring runs",
	Long: `Past scoring runs are archived in a local SQLite database
(default: $HOME/.archadvisor/history.db, override with history.path).

Examples:
  archadvisor history list
  archadvisor history list --app order-portal --limit 5
  archadvisor history show 3f1c9a2e-...
  archadvisor history clear`,
}

// historyListCmd lists recent runs
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent scoring runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(historyApp, historyLimit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAPPLICATION\tTREATMENT\tPRIMARY\tSCORE\tCREATED")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
				r.ID, r.AppName, r.Treatment, r.Primary, r.TopScore, r.CreatedAt)
		}
		return w.Flush()
	},
}

// historyShowCmd replays one archived run
var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full result of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.GetRun(args[0])
		if err != nil {
			return err
		}

		result, err := run.DecodeResult()
		if err != nil {
			return err
		}

		formatter := newFormatter()
		output, err := formatter.FormatResult(result)
		if err != nil {
			return err
		}
		formatter.Print(output)
		return nil
	},
}

// historyClearCmd wipes the archive
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all archived runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear()
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d archived runs\n", n)
		return nil
	},
}

func openHistory() (*history.Store, error) {
	path := historyPath()
	if path == "" {
		return nil, fmt.Errorf("no history database configured: set history.path in the config file")
	}
	return history.New(path)
}
