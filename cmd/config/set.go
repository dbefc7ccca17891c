// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set configuration value",
		Long: `Set a configuration key to a value.

Keys use dot notation for nested values (e.g., image.release).

Boolean values support natural language:
  - true:  true, yes, on, enable, enabled
  - false: false, no, off, disable, disabled

Numeric values are automatically detected and typed.`,
		Args: cobra.ExactArgs(2),
		Example: `  # Set boolean values (multiple formats supported)
  bellows config set use-tui true
  bellows config set use-tui enable
  bellows config set use-tui yes

  # Set string values
  bellows config set log-level debug
  bellows config set cert.principal rack-1.example.com

  # Set nested values with dot notation
  bellows config set image.system ubuntu
  bellows config set image.release ubuntu/22.04

  # Set in user config instead of local
  bellows config set --global catalog.path ~/catalogs/lab.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			scope := config.ScopeRepo
			if globalFlag {
				scope = config.ScopeUser
			}

			if err := config.SetConfigValue(key, value, scope); err != nil {
				return err
			}

			scopeName := "local"
			configFile := config.LocalConfigFile + config.DefaultConfigExt
			if globalFlag {
				scopeName = "global"
				configFile = "~/.config/bellows/" + config.ConfigFileName + config.DefaultConfigExt
			}
			fmt.Printf("Set %s = %s (%s: %s)\n", key, value, scopeName, configFile)

			return nil
		},
	}

	addGlobalFlag(cmd)
	return cmd
}
