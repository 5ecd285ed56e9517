package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/internal/output"
	"github.com/tabir/tabir/pkg/dream"
	"github.com/tabir/tabir/pkg/quality"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report dataset quality for a processed file",
	Long: `Analyze runs the quality analyzer over an already-processed dataset
(the processed_data.json written by optimize) without reprocessing.

The report covers symbol coverage, content completeness, training
readiness and cultural authenticity.

Examples:
  # Print the report as JSON
  tabir analyze -i output/processed_data.json

  # YAML report to a file
  tabir analyze -i output/processed_data.json -o report.yaml --format yaml`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.StringP("input", "i", "", "path to processed_data.json (required)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, yaml")

	_ = analyzeCmd.MarkFlagRequired("input")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Debug("analyze command starting")

	inputPath, _ := cmd.Flags().GetString("input")
	records, err := dream.LoadCleanedRecords(inputPath)
	if err != nil {
		logger.Error("failed to load processed records", "error", err)
		return err
	}

	report := quality.Analyze(records)

	outFile := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		outFile = f
	}

	formatStr, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(outFile, output.Format(formatStr))
	if err != nil {
		logger.Error("failed to create output writer", "format", formatStr, "error", err)
		return err
	}

	if err := writer.Write(report); err != nil {
		logger.Error("failed to write report", "error", err)
		return err
	}
	if err := writer.Close(); err != nil {
		logger.Error("failed to flush report", "error", err)
		return err
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		logInfo("Quality: %s (report written to %s)", report.QualitySummary.String(), outPath)
	}
	return nil
}
