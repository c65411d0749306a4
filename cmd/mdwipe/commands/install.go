package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/internal/cli/prompt"
	"github.com/mdwipe/mdwipe/internal/hostenv"
	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/config"
	"github.com/mdwipe/mdwipe/pkg/exiftool"
	"github.com/mdwipe/mdwipe/pkg/pkgmgr"
	"github.com/mdwipe/mdwipe/pkg/platform"
	"github.com/spf13/cobra"
)

// Official installer one-liners, shown when no package manager exists
// to do the work for us.
const (
	brewInstallCommand  = `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`
	chocoInstallCommand = `Set-ExecutionPolicy Bypass -Scope Process -Force; [System.Net.ServicePointManager]::SecurityProtocol = [System.Net.ServicePointManager]::SecurityProtocol -bor 3072; iex ((New-Object System.Net.WebClient).DownloadString('https://community.chocolatey.org/install.ps1'))`

	exiftoolURL = "https://exiftool.org"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install exiftool",
	Long: `Install exiftool, the external tool mdwipe uses to strip embedded
metadata.

When Homebrew or Chocolatey is available the install runs through it.
Otherwise mdwipe prints manual instructions, copies the install command
to the clipboard, and offers to open a terminal window for you.

Examples:
  # Install exiftool
  mdwipe install`,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
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

	tool, err := resolveTool(ctx, cfg, plat, r)
	if err == nil {
		version, verr := tool.Client(r).Version(ctx)
		if verr == nil {
			cmdutil.PrintSuccess(fmt.Sprintf("exiftool %s is already installed at %s", version, tool.Path))
		} else {
			cmdutil.PrintSuccess(fmt.Sprintf("exiftool is already installed at %s", tool.Path))
		}
		return nil
	}
	if !errors.Is(err, exiftool.ErrNotFound) {
		return err
	}

	installed, err := installFlow(ctx, plat, r)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}

	tool, lerr := exiftool.NewLocator(plat, r).Locate(ctx)
	if lerr == nil {
		cmdutil.PrintSuccess(fmt.Sprintf("exiftool installed at %s", tool.Path))
		return nil
	}
	if installed {
		return fmt.Errorf("exiftool was installed but cannot be found\nHint: Open a new shell so PATH changes take effect, or set tool.path in your configuration")
	}

	fmt.Println("Run 'mdwipe doctor' to check your environment once exiftool is installed.")
	return nil
}

// ensureExiftool locates exiftool and, when it is missing, walks the
// user through installing it. Used by commands that cannot work
// without the tool.
func ensureExiftool(ctx context.Context, cfg *config.Config, plat platform.Platform, r runner.Runner) (*exiftool.Tool, error) {
	tool, err := resolveTool(ctx, cfg, plat, r)
	if err == nil {
		return tool, nil
	}
	if !errors.Is(err, exiftool.ErrNotFound) {
		return nil, err
	}

	fmt.Println("exiftool is required to remove metadata but was not found.")
	if _, err := installFlow(ctx, plat, r); err != nil {
		return nil, err
	}

	tool, err = exiftool.NewLocator(plat, r).Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("exiftool is still not available\nHint: Install it and run the command again, or set tool.path in your configuration")
	}
	return tool, nil
}

// installFlow walks the user through installing exiftool. Returns true
// when an automatic package manager install ran to completion, false
// when the user got manual instructions or skipped.
func installFlow(ctx context.Context, plat platform.Platform, r runner.Runner) (bool, error) {
	mgr, err := pkgmgr.NewDetector(plat, r).Detect(ctx)
	if errors.Is(err, pkgmgr.ErrNoManager) {
		return false, runManualFlow(ctx, plat, r, manualInstructions(plat))
	}
	if err != nil {
		return false, err
	}

	action, err := prompt.Select("exiftool is not installed. How do you want to proceed?", []prompt.SelectOption{
		{Label: fmt.Sprintf("Install automatically with %s", mgr.Kind), Value: "auto"},
		{Label: "Copy the install command and run it myself", Value: "copy"},
		{Label: "Skip for now", Value: "skip"},
	})
	if err != nil {
		return false, err
	}

	switch action {
	case "auto":
		if !mgr.Install(ctx, r, "exiftool") {
			return false, fmt.Errorf("package manager install failed\nHint: Try running '%s' yourself", mgr.ManualCommand("exiftool"))
		}
		return true, nil
	case "copy":
		return false, runManualFlow(ctx, plat, r, manualInstall{
			Steps: []string{
				"Paste the command into your shell",
				"Run mdwipe again once the install finishes",
			},
			Command: mgr.ManualCommand("exiftool"),
		})
	default:
		return false, nil
	}
}

// manualInstall describes the do-it-yourself path: ordered steps for
// the user plus the one command worth putting on the clipboard.
type manualInstall struct {
	Steps   []string
	Command string
}

func manualInstructions(plat platform.Platform) manualInstall {
	if plat.IsWindows() {
		return manualInstall{
			Steps: []string{
				"Open an elevated PowerShell (Run as Administrator)",
				"Install Chocolatey: " + chocoInstallCommand,
				"Install exiftool: choco install exiftool -y",
				"Open a new shell and run mdwipe again",
			},
			Command: chocoInstallCommand,
		}
	}
	return manualInstall{
		Steps: []string{
			"Install Homebrew: " + brewInstallCommand,
			"Install exiftool: brew install exiftool",
			"Run mdwipe again",
		},
		Command: brewInstallCommand,
	}
}

// runManualFlow prints the manual install steps, puts the command on
// the clipboard, and offers to open a terminal ready for pasting (or,
// on Windows, the exiftool download page). The conveniences are
// best-effort; only a prompt abort stops the flow.
func runManualFlow(ctx context.Context, plat platform.Platform, r runner.Runner, inst manualInstall) error {
	host := hostenv.New(plat, r)

	fmt.Println()
	fmt.Println("Install exiftool manually:")
	for i, step := range inst.Steps {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
	fmt.Println()

	if err := host.CopyToClipboard(inst.Command); err != nil {
		logger.Debug("clipboard copy failed", logger.Err(err))
	} else {
		fmt.Println("The install command has been copied to your clipboard.")
	}

	// On Windows the standalone installer from exiftool.org is easier
	// than pasting a long PowerShell line into a fresh console.
	if plat.IsWindows() {
		ok, err := prompt.Confirm("Open the exiftool download page?", true)
		if err != nil {
			return err
		}
		if ok {
			if err := host.OpenURL(ctx, exiftoolURL); err != nil {
				logger.Debug("failed to open download page", logger.Err(err))
				fmt.Printf("Could not open a browser. Visit %s instead.\n", exiftoolURL)
			}
		}
		return nil
	}

	ok, err := prompt.Confirm("Open a terminal window now?", true)
	if err != nil {
		return err
	}
	if ok {
		if err := host.OpenTerminal(ctx); err != nil {
			logger.Debug("failed to open terminal", logger.Err(err))
			fmt.Println("Could not open a terminal. Paste the command into your shell instead.")
		}
	}
	return nil
}
