package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/internal/cli/output"
	"github.com/mdwipe/mdwipe/internal/cli/prompt"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/platform"
	"github.com/mdwipe/mdwipe/pkg/wipe"
	"github.com/spf13/cobra"
)

var cleanForce bool

var cleanCmd = &cobra.Command{
	Use:   "clean FILE...",
	Short: "Remove metadata from files",
	Long: `Remove identifying metadata from the given files.

For each file mdwipe clears extended attributes and platform
bookkeeping, strips embedded metadata with exiftool, and refreshes the
modification time. Files are modified in place; no backup copy is kept.

A file that fails keeps its place in the summary but never stops the
rest of the batch. The command exits non-zero unless every file was
cleaned.

File paths can also be piped on stdin, one per line.

Examples:
  # Clean two photos
  mdwipe clean photo.jpg scan.pdf

  # Clean without the confirmation prompt
  mdwipe clean -f photo.jpg

  # Clean everything a find produces
  find ./export -name '*.jpg' | mdwipe clean`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "Skip confirmation prompt")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	plat := platform.Current()
	if err := plat.Validate(); err != nil {
		return err
	}
	r := runner.System{}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files selected\nHint: Pass file paths as arguments or pipe them on stdin")
	}

	tool, err := ensureExiftool(ctx, cfg, plat, r)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}

	label := fmt.Sprintf("Remove metadata from %d files?", len(files))
	if len(files) == 1 {
		label = fmt.Sprintf("Remove metadata from %s?", files[0])
	}
	confirmed, err := prompt.ConfirmWithForce(label, cleanForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	processor := wipe.NewProcessor(plat, r, tool.Client(r))
	report := processor.Run(ctx, files)

	if err := printReport(report); err != nil {
		return err
	}

	if report.Verdict() != wipe.VerdictAllSucceeded {
		os.Exit(1)
	}
	return nil
}

// collectFiles merges positional arguments with paths piped on stdin,
// dropping duplicates while preserving order. Stdin is only read when
// no arguments were given and it is not a terminal.
func collectFiles(args []string) ([]string, error) {
	paths := args

	if len(paths) == 0 {
		info, err := os.Stdin.Stat()
		if err == nil && info.Mode()&os.ModeCharDevice == 0 {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if line := scanner.Text(); line != "" {
					paths = append(paths, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read file list from stdin: %w", err)
			}
		}
	}

	seen := make(map[string]struct{}, len(paths))
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	return files, nil
}

// printReport renders the run report in the requested output format.
func printReport(report *wipe.Report) error {
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, report)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, report)
	}

	printer := cmdutil.NewPrinter(os.Stdout)

	if cmdutil.IsVerbose() {
		table := output.NewTableData("FILE", "OUTCOME", "DURATION")
		for _, res := range report.Results {
			table.AddRow(res.Path, res.Outcome.String(), fmt.Sprintf("%.0fms", res.DurationMs))
		}
		if err := output.PrintTable(os.Stdout, table); err != nil {
			return err
		}
		fmt.Println()
	}

	switch report.Verdict() {
	case wipe.VerdictAllSucceeded:
		printer.Success(report.Summary())
	case wipe.VerdictPartial:
		printer.Warning(report.Summary())
	default:
		printer.Error(report.Summary())
	}

	for _, res := range report.FailedResults() {
		fmt.Printf("  %s: %s\n", res.Path, res.Outcome.Reason)
	}
	return nil
}
