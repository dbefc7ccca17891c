// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/spf13/cobra"
)

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove configuration value",
		Long: `Remove a configuration key from a config file.

Keys use dot notation for nested values (e.g., image.release).

**Note:**
  - Removing a parent key removes all nested values (e.g., unsetting 'image' removes 'image.system', 'image.release', and 'image.kernel')
  - Environment variables and defaults will still apply after removal`,
		Args: cobra.ExactArgs(1),
		Example: `  # Remove from local config
  bellows config unset image.kernel
  bellows config unset cert.principal

  # Remove from user config
  bellows config unset --global catalog.keyring

  # Remove nested value
  bellows config unset image.release

  # Remove parent (removes all children)
  bellows config unset image`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			scope := config.ScopeRepo
			if globalFlag {
				scope = config.ScopeUser
			}

			if err := config.UnsetConfigValue(key, scope); err != nil {
				return err
			}

			scopeName := "local"
			configFile := config.LocalConfigFile + config.DefaultConfigExt
			if globalFlag {
				scopeName = "global"
				configFile = "~/.config/bellows/" + config.ConfigFileName + config.DefaultConfigExt
			}
			fmt.Printf("Removed %s from %s config (%s)\n", key, scopeName, configFile)

			return nil
		},
	}

	addGlobalFlag(cmd)
	return cmd
}
