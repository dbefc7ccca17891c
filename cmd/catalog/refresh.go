// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Work-Fort/Bellows/cmd/cmdutil"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/Work-Fort/Bellows/pkg/util"
	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-read the catalog file",
		Long:  `Re-read the catalog file and report whether it changed since the last refresh.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh()
		},
	}
}

func runRefresh() error {
	// Load validates parse and signature before we record anything
	source, err := cmdutil.LoadSource()
	if err != nil {
		return err
	}

	sum, err := util.FileSHA256(config.GetCatalogPath())
	if err != nil {
		return err
	}

	// Checksums persist across runs; a one-shot CLI has no long-lived
	// source to compare against
	sumPath := filepath.Join(config.GlobalPaths.CacheDir, "catalog.sum")
	previous, _ := os.ReadFile(sumPath)

	theme := config.CurrentTheme
	cat := source.Catalog()

	if strings.TrimSpace(string(previous)) == sum {
		fmt.Println("Catalog unchanged")
		return nil
	}

	if err := os.WriteFile(sumPath, []byte(sum+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to record catalog checksum: %w", err)
	}

	fmt.Println(theme.SuccessMessage(fmt.Sprintf("Catalog updated: %d systems, %d releases", len(cat.Systems), len(cat.Releases))))
	return nil
}
