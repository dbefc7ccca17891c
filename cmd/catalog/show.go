// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"fmt"

	"github.com/Work-Fort/Bellows/cmd/cmdutil"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show catalog summary",
		Long:  `Show where the catalog comes from and what it contains.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow()
		},
	}
}

func runShow() error {
	source, err := cmdutil.LoadSource()
	if err != nil {
		return err
	}

	cat := source.Catalog()
	theme := config.CurrentTheme

	fmt.Printf("Catalog:  %s\n", config.GetCatalogPath())

	keyring := config.GetCatalogKeyring()
	if keyring == "" {
		fmt.Printf("Keyring:  %s\n", theme.SubtleStyle().Render("(none - signature checks disabled)"))
	} else {
		fmt.Printf("Keyring:  %s\n", keyring)
	}

	fmt.Printf("Systems:  %d\n", len(cat.Systems))
	fmt.Printf("Releases: %d\n", len(cat.Releases))

	variants := 0
	for _, byRelease := range cat.Kernels {
		for _, kernels := range byRelease {
			variants += len(kernels)
		}
	}
	fmt.Printf("Kernels:  %d\n", variants)

	if cat.HasDefaults() {
		fmt.Printf("Defaults: %s / %s\n", *cat.DefaultSystemID, *cat.DefaultReleaseName)
	} else {
		fmt.Printf("Defaults: %s\n", theme.SubtleStyle().Render("(none)"))
	}

	return nil
}
