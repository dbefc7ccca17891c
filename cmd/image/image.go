// SPDX-License-Identifier: Apache-2.0
package image

import (
	"github.com/Work-Fort/Bellows/cmd/cmdutil"
	"github.com/spf13/cobra"
)

// NewImageCmd creates the image command and its subcommands
func NewImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Browse and choose provisioning images",
		Long:  `Browse the image catalog and choose the operating system, release, and kernel variant to provision with.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If terminal is interactive, go straight to the picker
			if cmdutil.IsInteractive() {
				return runPick(nil)
			}
			// Non-interactive: show help
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newPickCmd())

	return cmd
}
