// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"github.com/spf13/cobra"
)

// NewCatalogCmd creates the catalog command and its subcommands
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and refresh the image catalog",
		Long:  `Show, refresh, and verify the image catalog the picker reads from.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newRefreshCmd())
	cmd.AddCommand(newVerifyCmd())

	return cmd
}
