package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/internal/output"
	"github.com/tabir/tabir/pkg/cleaner/htmltext"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a single HTML document to plain text",
	Long: `Clean strips HTML down to the plain text the optimizer would keep.
Useful for inspecting what the cleaner does to portal markup before
running a full optimization.

Reads from --input or stdin and writes to --output or stdout.

Examples:
  # Clean a file
  tabir clean -i page.html

  # Pipe HTML through
  cat page.html | tabir clean > cleaned.txt

  # Write to a file and show cleaning stats
  tabir clean -i page.html -o cleaned.txt --stats`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("input", "i", "", "HTML file to clean (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats", false, "print cleaning stats to stderr")
	flags.Bool("json-stats", false, "print cleaning stats to stderr as JSON")
}

func runClean(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	var htmlContent string
	source := "stdin"
	if inPath, _ := cmd.Flags().GetString("input"); inPath != "" {
		data, err := os.ReadFile(inPath) //#nosec G304 -- CLI tool reads user-specified file
		if err != nil {
			logger.Error("failed to read input", "path", inPath, "error", err)
			return err
		}
		htmlContent = string(data)
		source = inPath
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("failed to read stdin", "error", err)
			return err
		}
		htmlContent = string(data)
	}

	if len(htmlContent) == 0 {
		return fmt.Errorf("empty input")
	}

	cl := htmltext.New(htmltext.DefaultConfig())
	result := cl.CleanWithStats(htmlContent)

	for _, w := range result.Warnings {
		logger.Warn("cleaning warning", "warning", w.String())
	}

	showStats, _ := cmd.Flags().GetBool("stats")
	jsonStats, _ := cmd.Flags().GetBool("json-stats")
	switch {
	case jsonStats:
		if err := writeJSONStats(result, source); err != nil {
			logger.Error("failed to write stats", "error", err)
			return err
		}
	case showStats:
		fmt.Fprintf(os.Stderr, "Source: %s\n%s", source, result.Stats.String())
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := os.WriteFile(outPath, []byte(result.Content), 0o644); err != nil { //#nosec G304 -- CLI tool writes to user-specified output file
			logger.Error("failed to write output", "path", outPath, "error", err)
			return err
		}
		logInfo("Written to %s", outPath)
	} else {
		fmt.Println(result.Content)
	}

	return nil
}

func writeJSONStats(result *htmltext.Result, source string) error {
	stats := struct {
		Source  string          `json:"source"`
		Stats   *htmltext.Stats `json:"stats"`
		Reduced float64         `json:"reduction_percent"`
	}{
		Source:  source,
		Stats:   result.Stats,
		Reduced: result.Stats.ReductionPercent(),
	}

	w, err := output.NewWriter(os.Stderr, output.FormatJSON)
	if err != nil {
		return err
	}
	if err := w.Write(stats); err != nil {
		return err
	}
	return w.Close()
}
