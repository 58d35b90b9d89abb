package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nichefeed/internal/config"
	"nichefeed/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	language   string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nichefeed",
	Short: "nichefeed - SaaS curation classification & topic generation",
	Long: `nichefeed ingests structured analyses of SaaS products and turns them
into curated topic collections for a discovery feed.

The engine validates generated curation templates, evaluates their filter
rules against candidate records, checks theme-judgment consistency, and
assembles bounded, ordered topics ready for display.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if language != "" {
			cfg.Assembly.Language = language
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.JSON)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "nichefeed.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "display language for assembled topics (zh or en)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
