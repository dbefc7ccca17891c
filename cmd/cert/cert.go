// SPDX-License-Identifier: Apache-2.0
package cert

import (
	"github.com/spf13/cobra"
)

// NewCertCmd creates the cert command and its subcommands
func NewCertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Manage provisioning certificates",
		Long:  `Generate the self-signed certificate/key pairs machines present during provisioning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newGenerateCmd())

	return cmd
}
