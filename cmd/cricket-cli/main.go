// Package main provides the cricket engine CLI entrypoint.
package main

import (
	"fmt"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/spiritx-ai/cricket-engine/internal/config"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	verbose    bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "cricket-cli",
	Short: "Cricket engine CLI for dataset management and queries",
	Long: `Cricket engine CLI provides commands for managing the player dataset
and querying the chatbot engine locally.

Use this tool to:
- Import a player dataset from CSV
- Rebuild the vector index from stored players
- Ask questions against the local engine
- Inspect the stored player roster`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}
		logLevel := cfg.Observability.LogLevel
		if !verbose {
			logLevel = "warn"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       logLevel,
			Format:      logFormat,
			ServiceName: "cricket-cli",
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newPlayersCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
