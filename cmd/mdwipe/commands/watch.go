package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/internal/cli/output"
	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/exiftool"
	"github.com/mdwipe/mdwipe/pkg/platform"
	"github.com/mdwipe/mdwipe/pkg/wipe"
	"github.com/spf13/cobra"
)

var (
	watchSettleDelay time.Duration
	watchExtensions  string
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR...",
	Short: "Watch directories and clean new files",
	Long: `Watch directories and remove metadata from files as they appear.

A file is cleaned once it has stayed quiet for the settle delay, so
downloads and copies finish before mdwipe touches them. Files are
processed one at a time in the order they settle.

With -o json every cleaned file is printed as one JSON object per
line, suitable for piping. Press Ctrl+C to stop watching.

Examples:
  # Clean everything that lands in the Downloads folder
  mdwipe watch ~/Downloads

  # Only clean images, waiting 5s for them to settle
  mdwipe watch --ext jpg,jpeg,png,heic --settle-delay 5s ~/Downloads`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettleDelay, "settle-delay", 0, "How long a file must stay quiet before cleaning (default from config)")
	watchCmd.Flags().StringVar(&watchExtensions, "ext", "", "Comma-separated extensions to clean (default from config; empty cleans every file)")
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	// Watch may run unattended, so a missing tool is an error instead
	// of an interactive install.
	tool, err := resolveTool(ctx, cfg, plat, r)
	if errors.Is(err, exiftool.ErrNotFound) {
		return fmt.Errorf("exiftool not found\nHint: Run 'mdwipe install' to install it")
	}
	if err != nil {
		return err
	}

	settle := cfg.Watch.SettleDelay
	if watchSettleDelay > 0 {
		settle = watchSettleDelay
	}

	exts := cfg.Watch.Extensions
	if cmd.Flags().Changed("ext") {
		exts = nil
		for _, ext := range cmdutil.ParseCommaSeparatedList(watchExtensions) {
			exts = append(exts, strings.TrimPrefix(strings.ToLower(ext), "."))
		}
	}

	for _, dir := range args {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("cannot watch %s: not a directory", dir)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range args {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Info("watching directory", logger.Dir(dir))
	}

	processor := wipe.NewProcessor(plat, r, tool.Client(r))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	fmt.Println("Watching for new files. Press Ctrl+C to stop.")

	// pending holds the settle timer per path. It is only touched from
	// this loop; the timers just send the path back in.
	ready := make(chan string, 16)
	pending := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := event.Name
			switch {
			case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
				if !shouldClean(path, exts) {
					continue
				}
				if info, err := os.Stat(path); err != nil || info.IsDir() {
					continue
				}
				if timer, ok := pending[path]; ok {
					timer.Reset(settle)
					continue
				}
				logger.Debug("file event", logger.Path(path), logger.Event(event.Op.String()))
				pending[path] = time.AfterFunc(settle, func() { ready <- path })
			case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
				if timer, ok := pending[path]; ok {
					timer.Stop()
					delete(pending, path)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logger.Err(err))

		case path := <-ready:
			delete(pending, path)
			processWatched(ctx, processor, path)

		case <-sigChan:
			signal.Stop(sigChan)
			logger.Info("shutdown signal received, stopping watch")
			fmt.Println("\nStopping.")
			return nil
		}
	}
}

// shouldClean reports whether the path passes the extension filter. An
// empty filter cleans everything.
func shouldClean(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// processWatched cleans one settled file and reports the result.
func processWatched(ctx context.Context, processor *wipe.Processor, path string) {
	res := processor.ProcessFile(ctx, path)

	format, err := cmdutil.GetOutputFormatParsed()
	if err == nil && format == output.FormatJSON {
		_ = output.PrintJSONCompact(os.Stdout, res)
		return
	}

	printer := cmdutil.NewPrinter(os.Stdout)
	if res.Succeeded() {
		printer.Success(fmt.Sprintf("Cleaned %s", path))
	} else {
		printer.Error(fmt.Sprintf("Failed %s: %s", path, res.Outcome.Reason))
	}
}
