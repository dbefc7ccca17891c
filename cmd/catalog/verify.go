// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"fmt"

	"github.com/Work-Fort/Bellows/pkg/catalog"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify the catalog signature",
		Long:  `Check the catalog file against its detached signature using the configured keyring.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify()
		},
	}
}

func runVerify() error {
	path := config.GetCatalogPath()
	if path == "" {
		return fmt.Errorf("no catalog configured (set catalog.path)")
	}

	source := catalog.NewSource(path, config.GetCatalogKeyring())
	if err := source.Verify(); err != nil {
		return err
	}

	theme := config.CurrentTheme
	fmt.Println(theme.SuccessMessage(fmt.Sprintf("Signature OK: %s", path)))
	return nil
}
