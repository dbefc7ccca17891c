// SPDX-License-Identifier: Apache-2.0
package image

import (
	"fmt"
	"strings"

	"github.com/Work-Fort/Bellows/cmd/cmdutil"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog images",
		Long:  `List every system, release, and kernel variant the catalog offers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
}

func runList() error {
	source, err := cmdutil.LoadSource()
	if err != nil {
		return err
	}

	cat := source.Catalog()
	theme := config.CurrentTheme

	if len(cat.Systems) == 0 {
		fmt.Println(theme.WarningMessage("Catalog is empty"))
		return nil
	}

	for _, system := range cat.Systems {
		fmt.Printf("%s (%s)\n", system.Label, system.Key)

		for _, release := range cat.Releases {
			if !strings.Contains(release.Key, system.Key) {
				continue
			}
			fmt.Printf("  %s (%s)\n", release.Label, release.Key)

			name := release.Key
			if idx := strings.Index(name, "/"); idx >= 0 {
				name = name[idx+1:]
			}
			for _, kernel := range cat.KernelsFor(system.Key, name) {
				fmt.Printf("    %s %s (%s)\n", theme.SubtleStyle().Render("kernel:"), kernel.Label, kernel.Key)
			}
		}
	}

	return nil
}
