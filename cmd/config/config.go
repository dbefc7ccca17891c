// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/spf13/cobra"
)

var (
	// globalFlag determines whether to operate on user config vs local config
	globalFlag bool
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bellows configuration",
		Long: `Manage bellows configuration settings.

Configuration precedence (highest to lowest):
  1. Environment variables (BELLOWS_*)
  2. Local config (./bellows.yaml)
  3. User config (~/.config/bellows/config.yaml)
  4. Defaults

By default, config commands operate on local config (./bellows.yaml).
Use --global to operate on user config instead.`,
		Example: `  # Set local config (project-specific)
  bellows config set image.system ubuntu
  bellows config set cert.principal rack-1.example.com

  # Set global config (user preferences)
  bellows config set --global use-tui false
  bellows config set --global catalog.path ~/catalogs/lab.yaml

  # Get configuration value
  bellows config get use-tui

  # Remove configuration value
  bellows config unset image.kernel
  bellows config unset --global catalog.keyring

  # List all configuration
  bellows config list`,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newUnsetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

// addGlobalFlag adds the --global flag to a command
func addGlobalFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&globalFlag, "global", false, "Operate on user config instead of local config")
}
