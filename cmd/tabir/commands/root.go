// Package commands implements the CLI commands for tabir.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tabir",
	Short: "SFT dataset optimizer for Turkish dream interpretation content",
	Long: `Tabir turns raw dream interpretation portal exports into clean,
supervised fine-tuning datasets.

Point it at a JSON export and it cleans the HTML, filters low-quality
records, writes chat and prompt/completion training files, and reports
on dataset quality.

Examples:
  # Optimize an export into training datasets
  tabir optimize -i dreams.json -o output/

  # Large export with parallel processing
  tabir optimize -i dreams.json -o output/ --parallel --max-workers 8

  # Quality report over an already-processed dataset
  tabir analyze -i output/processed_data.json --format yaml

  # Inspect what the cleaner does to a single page
  tabir clean -i page.html`,
	Version: version.String(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.tabir.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to a file instead of stderr")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log-json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".tabir")
		viper.SetConfigType("yaml")
	}

	// Environment variables: TABIR_MIN_CONTENT_LENGTH maps onto the
	// min-content-length key, and so on for the other dashed keys.
	viper.SetEnvPrefix("TABIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// setupLogging initializes the logger from the global flags. The returned
// cleanup closes the log file when --log-file was given.
func setupLogging() (func(), error) {
	opts := logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log-json"),
	}

	cleanup := func() {}
	if path := viper.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //#nosec G304 -- CLI tool writes to user-specified log file
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", path, err)
		}
		opts.Output = f
		cleanup = func() { _ = f.Close() }
	}

	logger.Init(opts)
	return cleanup, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
