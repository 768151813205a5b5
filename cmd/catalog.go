package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archadvisor/archadvisor/internal/catalog"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
}

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate the architecture catalog",
}

// catalogValidateCmd validates a catalog file
var catalogValidateCmd = &cobra.Command{
	Use:   "validate <catalog-file>",
	Short: "Validate a catalog file without loading it into the engine",
	Long: `Parse a catalog file and report every validation problem it contains.
Exits non-zero when the catalog is invalid.

Examples:
  archadvisor catalog validate architectures.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			var verr *catalog.ValidationError
			if errors.As(err, &verr) {
				fmt.Printf("Catalog %s is invalid (%d problems):\n", args[0], len(verr.Problems))
				for _, p := range verr.Problems {
					fmt.Printf("  - %s\n", p)
				}
			}
			return err
		}
		fmt.Printf("Catalog %s is valid: %d architectures\n", args[0], cat.Len())
		return nil
	},
}

// catalogStatsCmd summarizes the configured catalog
var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the configured catalog by family, domain, tier, and treatment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		formatter := newFormatter()
		output, err := formatter.FormatStats(cat.Stats())
		if err != nil {
			return err
		}
		formatter.Print(output)
		return nil
	},
}
