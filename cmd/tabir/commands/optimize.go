package commands

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tabir/tabir/internal/config"
	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/internal/output"
	"github.com/tabir/tabir/pkg/cleaner"
	"github.com/tabir/tabir/pkg/cleaner/htmltext"
	"github.com/tabir/tabir/pkg/dream"
	"github.com/tabir/tabir/pkg/quality"
	"github.com/tabir/tabir/pkg/tabir"
)

// parallelThreshold is the record count above which --parallel takes effect.
// Small exports finish faster sequentially than the chunking overhead costs.
const parallelThreshold = 50

// optimizeReport is the quality report merged with run metadata. The
// embedded report keeps its sections at the top level of the JSON output.
type optimizeReport struct {
	*quality.Report
	ProcessingSummary processingSummary `json:"processing_summary"`
	OutputFormats     outputFormats     `json:"output_formats"`
	DatasetMetrics    datasetMetrics    `json:"dataset_metrics"`
}

type processingSummary struct {
	DurationSeconds  float64 `json:"duration_seconds"`
	OriginalRecords  int     `json:"original_records"`
	ProcessedRecords int     `json:"processed_records"`
	FilteredRecords  int     `json:"filtered_records"`
	RetentionRate    float64 `json:"retention_rate"`
	Parallel         bool    `json:"parallel"`
	Workers          int     `json:"workers"`
	FailedChunks     int     `json:"failed_chunks,omitempty"`
}

type outputFormats struct {
	ChatExamples   int  `json:"chat_examples"`
	PromptExamples int  `json:"prompt_examples"`
	Consistent     bool `json:"consistent"`
}

type datasetMetrics struct {
	AvgCleanedLength float64 `json:"avg_cleaned_length"`
	RecordsWithTags  int     `json:"records_with_tags"`
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Process a dream export into SFT training datasets",
	Long: `Optimize cleans a raw dream interpretation export and writes
SFT-ready training datasets plus a quality report.

Each record's HTML content is cleaned to plain text, validated against
a minimum content length, and formatted into chat and prompt/completion
examples. A quality report covering symbol coverage, completeness,
training readiness and cultural authenticity is written alongside.

Examples:
  # Default run
  tabir optimize -i dreams.json

  # Custom output directory and a stricter length filter
  tabir optimize -i dreams.json -o datasets/ --min-content-length 200

  # Parallel processing for large exports
  tabir optimize -i dreams.json --parallel --max-workers 8

  # Probe single-record throughput before the run
  tabir optimize -i dreams.json --benchmark`,
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	flags := optimizeCmd.Flags()

	// Input/output
	flags.StringP("input", "i", "", "path to the JSON export (required)")
	flags.StringP("output-dir", "o", "optimized_data", "directory for generated datasets")

	// Processing settings
	flags.Int("min-content-length", dream.DefaultMinContentLength, "minimum cleaned content length in characters")
	flags.Bool("no-clean", false, "skip HTML cleaning (pass content through as-is)")

	// Parallel settings
	flags.Bool("parallel", false, "process chunks in parallel (exports >50 records)")
	flags.Int("max-workers", 0, "worker goroutines for parallel mode (0=auto)")
	flags.Int("chunk-size", 0, "records per chunk in parallel mode (0=auto)")
	flags.Bool("benchmark", false, "estimate single-record throughput before processing")

	// Artifact toggles
	flags.Bool("save-processed-data", true, "write processed_data.json")
	flags.Bool("save-chat-format", true, "write chat_format.jsonl")
	flags.Bool("save-prompt-format", true, "write prompt_format.jsonl")
	flags.Bool("save-quality-report", true, "write quality_report.json")

	_ = optimizeCmd.MarkFlagRequired("input")

	// Bind to viper
	_ = viper.BindPFlag("input", flags.Lookup("input"))
	_ = viper.BindPFlag("output-dir", flags.Lookup("output-dir"))
	_ = viper.BindPFlag("min-content-length", flags.Lookup("min-content-length"))
	_ = viper.BindPFlag("no-clean", flags.Lookup("no-clean"))
	_ = viper.BindPFlag("parallel", flags.Lookup("parallel"))
	_ = viper.BindPFlag("max-workers", flags.Lookup("max-workers"))
	_ = viper.BindPFlag("chunk-size", flags.Lookup("chunk-size"))
	_ = viper.BindPFlag("benchmark", flags.Lookup("benchmark"))
	_ = viper.BindPFlag("save-processed-data", flags.Lookup("save-processed-data"))
	_ = viper.BindPFlag("save-chat-format", flags.Lookup("save-chat-format"))
	_ = viper.BindPFlag("save-prompt-format", flags.Lookup("save-prompt-format"))
	_ = viper.BindPFlag("save-quality-report", flags.Lookup("save-quality-report"))
}

func runOptimize(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Debug("optimize command starting")

	settings, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Error("invalid settings", "error", err)
		return err
	}
	logger.Debug("settings loaded",
		"input", settings.InputFile,
		"output_dir", settings.OutputDir,
		"min_content_length", settings.MinContentLength)

	records, err := dream.LoadRecords(settings.InputFile)
	if err != nil {
		logger.Error("failed to load input", "error", err)
		return err
	}

	// Build cleaner based on --no-clean flag
	var cl cleaner.Cleaner
	if settings.NoClean {
		cl = cleaner.NewNoop()
		logger.Debug("content cleaning disabled")
	} else {
		cl = htmltext.New(htmltext.DefaultConfig())
		logger.Debug("using html text cleaner", "cleaner", cl.Name())
	}

	workers := settings.MaxWorkers
	if workers == 0 {
		workers = tabir.EstimateWorkers(len(records), avgRecordKB(settings.InputFile, len(records)))
		logger.Debug("estimated worker count", "workers", workers)
	}

	parallel := settings.Parallel && len(records) > parallelThreshold
	if settings.Parallel && !parallel {
		logger.Info("export below parallel threshold, processing sequentially",
			"records", len(records), "threshold", parallelThreshold)
	}

	o := tabir.New(
		tabir.WithMinContentLength(settings.MinContentLength),
		tabir.WithCleaner(cl),
		tabir.WithParallel(parallel),
		tabir.WithWorkers(workers),
		tabir.WithChunkSize(settings.ChunkSize),
	)

	if settings.Benchmark {
		bench := o.Benchmark(records)
		logInfo("Benchmark: %.1f records/sec (%v per record, sample of %d)",
			bench.RecordsPerSec, bench.PerRecord.Round(time.Microsecond), bench.SampleSize)
	}

	result, err := o.Run(ctx, records)
	if err != nil {
		logger.Error("optimization failed", "error", err)
		return err
	}

	report := buildReport(result, quality.Analyze(result.Records), parallel, workers)

	if err := writeArtifacts(settings, result, report); err != nil {
		logger.Error("failed to write artifacts", "error", err)
		return err
	}

	printSummary(settings, result, report)
	return nil
}

// avgRecordKB estimates the mean raw record size from the input file size.
func avgRecordKB(path string, count int) float64 {
	if count == 0 {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(info.Size()) / 1024 / float64(count)
}

// buildReport merges the quality report with run metadata for the
// quality_report.json artifact.
func buildReport(result *tabir.Result, report *quality.Report, parallel bool, workers int) *optimizeReport {
	retention := 0.0
	if result.OriginalCount > 0 {
		retention = round2(float64(result.ProcessedCount) / float64(result.OriginalCount) * 100)
	}

	totalLength := 0
	withTags := 0
	for _, r := range result.Records {
		totalLength += r.CleanedLength
		if len(r.Tags) > 0 {
			withTags++
		}
	}
	avgLength := 0.0
	if len(result.Records) > 0 {
		avgLength = round2(float64(totalLength) / float64(len(result.Records)))
	}

	return &optimizeReport{
		Report: report,
		ProcessingSummary: processingSummary{
			DurationSeconds:  round2(result.Duration.Seconds()),
			OriginalRecords:  result.OriginalCount,
			ProcessedRecords: result.ProcessedCount,
			FilteredRecords:  result.FilteredCount,
			RetentionRate:    retention,
			Parallel:         parallel,
			Workers:          workers,
			FailedChunks:     len(result.FailedChunks),
		},
		OutputFormats: outputFormats{
			ChatExamples:   len(result.ChatExamples),
			PromptExamples: len(result.PromptExamples),
			Consistent: len(result.ChatExamples) == len(result.Records) &&
				len(result.PromptExamples) == len(result.Records),
		},
		DatasetMetrics: datasetMetrics{
			AvgCleanedLength: avgLength,
			RecordsWithTags:  withTags,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeArtifacts(settings config.Settings, result *tabir.Result, report *optimizeReport) error {
	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", settings.OutputDir, err)
	}

	if settings.SaveProcessedData {
		items := make([]any, len(result.Records))
		for i, r := range result.Records {
			items[i] = r
		}
		if err := writeDataset(filepath.Join(settings.OutputDir, "processed_data.json"), output.FormatJSON, items); err != nil {
			return err
		}
	}

	if settings.SaveChatFormat {
		if err := writeDataset(filepath.Join(settings.OutputDir, "chat_format.jsonl"), output.FormatJSONL, result.ChatExamples); err != nil {
			return err
		}
	}

	if settings.SavePromptFormat {
		if err := writeDataset(filepath.Join(settings.OutputDir, "prompt_format.jsonl"), output.FormatJSONL, result.PromptExamples); err != nil {
			return err
		}
	}

	if settings.SaveQualityReport {
		path := filepath.Join(settings.OutputDir, "quality_report.json")
		w, closeFn, err := output.NewFileWriter(path, output.FormatJSON)
		if err != nil {
			return err
		}
		if err := w.Write(report); err != nil {
			_ = closeFn()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := closeFn(); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("wrote quality report", "path", path)
	}

	return nil
}

// writeDataset writes items to path in the given format.
func writeDataset(path string, format output.Format, items []any) error {
	w, closeFn, err := output.NewFileWriter(path, format)
	if err != nil {
		return err
	}
	if err := w.WriteAll(items); err != nil {
		_ = closeFn()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wrote dataset", "path", path, "records", len(items))
	return nil
}

func printSummary(settings config.Settings, result *tabir.Result, report *optimizeReport) {
	logInfo("")
	logInfo("Optimization complete in %v", result.Duration.Round(time.Millisecond))
	logInfo("  Records:  %d in, %d kept, %d filtered",
		result.OriginalCount, result.ProcessedCount, result.FilteredCount)
	logInfo("  Quality:  %s", report.QualitySummary.String())
	logInfo("  Output:   %s", settings.OutputDir)
	if len(result.FailedChunks) > 0 {
		logError("%d chunk(s) failed and were excluded: %v", len(result.FailedChunks), result.FailedChunks)
	}
}
