// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value",
		Long: `Get a configuration value and show its source.

The source indicates where the value comes from in precedence order:
  - ENV: Environment variable (BELLOWS_*)
  - Local: Local config file (./bellows.yaml)
  - User: User config file (~/.config/bellows/config.yaml)
  - Default: Built-in default value`,
		Args: cobra.ExactArgs(1),
		Example: `  # Get a configuration value
  bellows config get use-tui

  # Get nested value
  bellows config get image.release

  # Output shows value and source:
  # use-tui = true (from ENV: BELLOWS_USE_TUI)
  # image.release = ubuntu/22.04 (from ./bellows.yaml)
  # catalog.path = ~/catalogs/lab.yaml (from ~/.config/bellows/config.yaml)
  # log-level = debug (default)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			configValue, err := config.GetConfigValue(key)
			if err != nil {
				return err
			}

			fmt.Printf("%s = %v (%s)\n", configValue.Key, configValue.Value, configValue.Source)

			return nil
		},
	}

	return cmd
}
