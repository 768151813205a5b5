package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage archadvisor configuration",
	Long:  `Configure archadvisor settings including the catalog path, output format, and scoring weights.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a default configuration file in your home directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath := filepath.Join(home, ".archadvisor.yaml")

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("Configuration file already exists at %s\n", configPath)
			return nil
		}

		defaultConfig := `# Archadvisor Configuration
# Copy this to ~/.archadvisor.yaml and customize for your setup

catalog:
  path: /path/to/architectures.json  # Architecture catalog (or set ARCHADVISOR_CATALOG)

output:
  format: table    # table, json, or yaml
  no_color: false

scoring:
  max_recommendations: 3

# Factor weights sum to 1.0. Adjust to tune how much each signal
# contributes to the final score.
weights:
  treatment: 0.20
  platform: 0.20
  runtime: 0.10
  availability: 0.08
  service_overlap: 0.10
  app_mod_target: 0.08
  operating_model: 0.08
  cost_posture: 0.08
  security: 0.08
  answer_boost: 1.5  # Multiplier for dimensions confirmed by the user
  max_questions: 5

history:
  path: ""  # Run archive database (default: ~/.archadvisor/history.db)

debug: false
`

		err = os.WriteFile(configPath, []byte(defaultConfig), 0644)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}

		fmt.Printf("Configuration file created at %s\n", configPath)
		fmt.Println("Please edit the file to set the catalog path.")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath := filepath.Join(home, ".archadvisor.yaml")

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Println("No configuration file found. Run 'archadvisor config init' to create one.")
			return nil
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}

		fmt.Printf("Configuration file: %s\n\n", configPath)
		fmt.Print(string(content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
