package commands

import (
	"fmt"

	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample mdwipe configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/mdwipe/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  mdwipe init

  # Initialize with custom path
  mdwipe init --config ~/mdwipe.yaml

  # Force overwrite existing config
  mdwipe init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := cmdutil.Flags.ConfigFile

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Check your environment with: mdwipe doctor")
	fmt.Printf("  3. Clean files with: mdwipe clean --config %s FILE...\n", configPath)

	return nil
}
