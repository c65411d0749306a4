package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/internal/cli/output"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/config"
	"github.com/mdwipe/mdwipe/pkg/exiftool"
	"github.com/mdwipe/mdwipe/pkg/pkgmgr"
	"github.com/mdwipe/mdwipe/pkg/platform"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment",
	Long: `Check whether mdwipe can run on this system.

Reports the platform, whether exiftool is installed and where it was
found, and whether a package manager is available for guided installs.

Examples:
  # Check the environment
  mdwipe doctor

  # Output as JSON
  mdwipe doctor -o json`,
	RunE: runDoctor,
}

// EnvironmentStatus represents the environment check result for display.
type EnvironmentStatus struct {
	Platform       string `json:"platform" yaml:"platform"`
	Supported      bool   `json:"supported" yaml:"supported"`
	ToolFound      bool   `json:"tool_found" yaml:"tool_found"`
	ToolPath       string `json:"tool_path,omitempty" yaml:"tool_path,omitempty"`
	ToolSource     string `json:"tool_source,omitempty" yaml:"tool_source,omitempty"`
	ToolVersion    string `json:"tool_version,omitempty" yaml:"tool_version,omitempty"`
	ToolError      string `json:"tool_error,omitempty" yaml:"tool_error,omitempty"`
	ManagerFound   bool   `json:"manager_found" yaml:"manager_found"`
	Manager        string `json:"manager,omitempty" yaml:"manager,omitempty"`
	ManagerPath    string `json:"manager_path,omitempty" yaml:"manager_path,omitempty"`
	ManagerVersion string `json:"manager_version,omitempty" yaml:"manager_version,omitempty"`
	ConfigFile     string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	plat := platform.Current()
	r := runner.System{}

	status := EnvironmentStatus{
		Platform:  plat.String(),
		Supported: plat.Validate() == nil,
	}

	// Tool check. A pinned path that fails the probe is reported, not
	// fatal; doctor exists to surface exactly that kind of problem.
	if cfg.Tool.Path != "" {
		status.ToolPath = cfg.Tool.Path
		status.ToolSource = string(exiftool.SourceConfig)
		version, err := exiftool.NewClient(cfg.Tool.Path, r).Version(ctx)
		if err != nil {
			status.ToolError = err.Error()
		} else {
			status.ToolFound = true
			status.ToolVersion = version
		}
	} else {
		tool, err := exiftool.NewLocator(plat, r).Locate(ctx)
		switch {
		case errors.Is(err, exiftool.ErrNotFound):
			// Reported through ToolFound below
		case err != nil:
			status.ToolError = err.Error()
		default:
			status.ToolFound = true
			status.ToolPath = tool.Path
			status.ToolSource = string(tool.Source)
			if version, err := tool.Client(r).Version(ctx); err == nil {
				status.ToolVersion = version
			}
		}
	}

	// Package manager check
	if mgr, err := pkgmgr.NewDetector(plat, r).Detect(ctx); err == nil {
		status.ManagerFound = true
		status.Manager = string(mgr.Kind)
		status.ManagerPath = mgr.Path
		if version, err := mgr.Version(ctx, r); err == nil {
			status.ManagerVersion = version
		}
	}

	// Config file in use
	if cmdutil.Flags.ConfigFile != "" {
		status.ConfigFile = cmdutil.Flags.ConfigFile
	} else if config.DefaultConfigExists() {
		status.ConfigFile = config.GetDefaultConfigPath()
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printEnvironmentTable(status)
	}

	return nil
}

func printEnvironmentTable(status EnvironmentStatus) {
	useColor := !cmdutil.IsColorDisabled()
	good := func(s string) string {
		if useColor {
			return "\033[32m● " + s + "\033[0m"
		}
		return "● " + s
	}
	bad := func(s string) string {
		if useColor {
			return "\033[31m○ " + s + "\033[0m"
		}
		return "○ " + s
	}

	fmt.Println()
	fmt.Println("mdwipe Environment Check")
	fmt.Println("========================")
	fmt.Println()

	if status.Supported {
		fmt.Printf("  Platform:   %s\n", good(status.Platform))
	} else {
		fmt.Printf("  Platform:   %s\n", bad(status.Platform+" (unsupported)"))
	}

	if status.ToolFound {
		fmt.Printf("  exiftool:   %s\n", good("installed"))
		fmt.Printf("    Path:     %s\n", status.ToolPath)
		fmt.Printf("    Source:   %s\n", status.ToolSource)
		if status.ToolVersion != "" {
			fmt.Printf("    Version:  %s\n", status.ToolVersion)
		}
	} else {
		fmt.Printf("  exiftool:   %s\n", bad("not found"))
		if status.ToolError != "" {
			fmt.Printf("    Error:    %s\n", status.ToolError)
		}
	}

	if status.ManagerFound {
		fmt.Printf("  Manager:    %s\n", good(status.Manager))
		fmt.Printf("    Path:     %s\n", status.ManagerPath)
		if status.ManagerVersion != "" {
			fmt.Printf("    Version:  %s\n", status.ManagerVersion)
		}
	} else {
		fmt.Printf("  Manager:    %s\n", bad("not found"))
	}

	fmt.Printf("  Config:     %s\n", cmdutil.EmptyOr(status.ConfigFile, "(built-in defaults)"))
	fmt.Println()

	if !status.ToolFound {
		fmt.Println("Run 'mdwipe install' to install exiftool.")
		fmt.Println()
	}
}
