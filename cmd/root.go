package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archadvisor/archadvisor/internal/catalog"
	"github.com/archadvisor/archadvisor/internal/engine"
	"github.com/archadvisor/archadvisor/internal/export"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "archadvisor",
	Short: "Reference-architecture recommendations for application migrations",
	Long: `Archadvisor scores application assessment exports against a catalog of
cloud reference architectures. It derives the migration intent from the
export, filters out unsuitable architectures, ranks the rest with a
weighted multi-factor score, and tells you which questions would
sharpen the result.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.archadvisor.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("catalog", "", "path to the architecture catalog JSON (or set ARCHADVISOR_CATALOG)")
	rootCmd.PersistentFlags().String("format", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// TODO: add error return here
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output.no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	viper.SetDefault("output.format", "table")
	viper.SetDefault("scoring.max_recommendations", 3)

	defaults := engine.DefaultWeights()
	viper.SetDefault("weights.treatment", defaults.Treatment)
	viper.SetDefault("weights.platform", defaults.Platform)
	viper.SetDefault("weights.runtime", defaults.Runtime)
	viper.SetDefault("weights.availability", defaults.Availability)
	viper.SetDefault("weights.service_overlap", defaults.ServiceOverlap)
	viper.SetDefault("weights.app_mod_target", defaults.AppModTarget)
	viper.SetDefault("weights.operating_model", defaults.OperatingModel)
	viper.SetDefault("weights.cost_posture", defaults.CostPosture)
	viper.SetDefault("weights.security", defaults.Security)
	viper.SetDefault("weights.answer_boost", defaults.AnswerBoost)
	viper.SetDefault("weights.fit_threshold", defaults.FitThreshold)
	viper.SetDefault("weights.struggle_threshold", defaults.StruggleThreshold)
	viper.SetDefault("weights.high_score", defaults.HighScore)
	viper.SetDefault("weights.medium_score", defaults.MediumScore)
	viper.SetDefault("weights.max_questions", defaults.MaxQuestions)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".archadvisor")
	}

	viper.SetEnvPrefix("ARCHADVISOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// weightsFromViper builds the scoring configuration, starting from the
// defaults and overriding with anything set in config or flags.
func weightsFromViper() engine.Weights {
	w := engine.DefaultWeights()
	w.Treatment = viper.GetFloat64("weights.treatment")
	w.Platform = viper.GetFloat64("weights.platform")
	w.Runtime = viper.GetFloat64("weights.runtime")
	w.Availability = viper.GetFloat64("weights.availability")
	w.ServiceOverlap = viper.GetFloat64("weights.service_overlap")
	w.AppModTarget = viper.GetFloat64("weights.app_mod_target")
	w.OperatingModel = viper.GetFloat64("weights.operating_model")
	w.CostPosture = viper.GetFloat64("weights.cost_posture")
	w.Security = viper.GetFloat64("weights.security")
	w.AnswerBoost = viper.GetFloat64("weights.answer_boost")
	w.FitThreshold = viper.GetFloat64("weights.fit_threshold")
	w.StruggleThreshold = viper.GetFloat64("weights.struggle_threshold")
	w.HighScore = viper.GetFloat64("weights.high_score")
	w.MediumScore = viper.GetFloat64("weights.medium_score")
	w.MaxQuestions = viper.GetInt("weights.max_questions")
	return w
}

// loadCatalog resolves and loads the architecture catalog.
func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog.path")
	if path == "" {
		return nil, fmt.Errorf("no catalog configured: pass --catalog, set ARCHADVISOR_CATALOG, or add catalog.path to the config file")
	}
	return catalog.LoadFile(path)
}

// buildEngine wires the catalog and weights into a scoring engine.
func buildEngine() (*engine.Engine, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return engine.New(cat, weightsFromViper())
}

// newFormatter builds the output formatter from the shared flags.
func newFormatter() *export.Formatter {
	format := viper.GetString("output.format")
	color := !viper.GetBool("output.no_color")
	if format == "json" || format == "yaml" {
		color = false
	}
	return export.NewFormatter(format, color)
}

// historyPath resolves the run-archive database path.
func historyPath() string {
	if p := viper.GetString("history.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".archadvisor", "history.db")
}
