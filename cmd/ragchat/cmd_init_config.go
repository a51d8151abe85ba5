package main

import (
	"fmt"
	"os"

	"ragchat/internal/config"

	"github.com/spf13/cobra"
)

var forceInit bool

// initConfigCmd writes a starter config file
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the default configuration file",
	Long: `Writes the default configuration to --config (or the default config
path) so it can be edited. An existing file is left alone unless --force
is given.`,
	Args: cobra.NoArgs,
	RunE: runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

func runInitConfig(cmd *cobra.Command, _ []string) error {
	path := resolvedConfigPath()

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}
