package config

import (
	"os"

	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/internal/cli/output"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the current mdwipe configuration with defaults applied.

By default outputs YAML format. Use --output json to change format.

Examples:
  # Show effective config as YAML
  mdwipe config show

  # Show as JSON
  mdwipe config show -o json

  # Show a specific config file
  mdwipe config show --config ~/mdwipe.yaml`,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := cmdutil.LoadConfig()
	if err != nil {
		return err
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	// The config is nested, so the table format renders as YAML.
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, cfg)
	default:
		return output.PrintYAML(os.Stdout, cfg)
	}
}
