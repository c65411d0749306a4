package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/exiftool"
	"github.com/mdwipe/mdwipe/pkg/platform"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show the metadata still present in a file",
	Long: `Show the metadata exiftool can read from a file.

Useful before cleaning to see what would be removed, and after cleaning
to verify what is left.

Examples:
  # Inspect a photo
  mdwipe inspect photo.jpg

  # Output as JSON
  mdwipe inspect -o json photo.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// metadataTable renders metadata fields as a two-column table.
type metadataTable struct {
	meta *exiftool.Metadata
}

func (m metadataTable) Headers() []string {
	return []string{"NAME", "VALUE"}
}

func (m metadataTable) Rows() [][]string {
	rows := make([][]string, 0, len(m.meta.Fields))
	for _, f := range m.meta.Fields {
		rows = append(rows, []string{f.Name, f.Value})
	}
	return rows
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	plat := platform.Current()
	r := runner.System{}

	tool, err := resolveTool(ctx, cfg, plat, r)
	if errors.Is(err, exiftool.ErrNotFound) {
		return fmt.Errorf("exiftool not found\nHint: Run 'mdwipe install' to install it")
	}
	if err != nil {
		return err
	}

	meta, err := tool.Client(r).Inspect(ctx, args[0])
	if err != nil {
		return err
	}

	return cmdutil.PrintOutput(os.Stdout, meta, len(meta.Fields) == 0, "No metadata found.", metadataTable{meta})
}
