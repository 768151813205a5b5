package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archadvisor/archadvisor/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation engine as an MCP server over stdio",
	Long: `Expose the scoring engine to MCP clients over stdio. The server
registers three tools: score_application, get_clarification_questions,
and catalog_stats.

Stdout carries the MCP transport, so diagnostics go to stderr.

Example client config:
  {
    "mcpServers": {
      "archadvisor": {
        "command": "archadvisor",
        "args": ["serve", "--catalog", "/path/to/architectures.json"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine()
		if err != nil {
			return err
		}

		srv, cleanup, err := server.New(eng, historyPath())
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Fprintf(os.Stderr, "archadvisor MCP server listening on stdio (%d architectures)\n", eng.Catalog().Len())
		return server.ServeStdio(srv)
	},
}
