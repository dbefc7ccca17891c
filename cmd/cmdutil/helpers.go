// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Bellows/pkg/catalog"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/Work-Fort/Bellows/pkg/osselect"
	"golang.org/x/term"
)

// IsInteractive checks if stdin is connected to a terminal AND the user wants
// TUI mode
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && config.GetUseTUI()
}

// LoadSource opens the configured catalog file and performs the initial load.
func LoadSource() (*catalog.Source, error) {
	path := config.GetCatalogPath()
	if path == "" {
		return nil, fmt.Errorf("no catalog configured (set catalog.path)")
	}

	source := catalog.NewSource(path, config.GetCatalogKeyring())
	if err := source.Load(); err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	log.Debugf("LoadSource: loaded catalog from %s", path)
	return source, nil
}

// NewController builds a selection controller over the source's catalog,
// seeded from any image.* config keys, and subscribes it to catalog changes.
func NewController(source *catalog.Source) *osselect.Controller {
	sel := &osselect.Selection{}
	if system := config.GetImageSystem(); system != "" {
		sel.SystemID = &system
	}
	if release := config.GetImageRelease(); release != "" {
		sel.ReleaseKey = &release
	}
	if kernel := config.GetImageKernel(); kernel != "" {
		sel.KernelID = &kernel
	}

	ctrl := osselect.NewController(source.Catalog(), sel)
	source.SubscribeReleases(ctrl.OnReleasesChanged)
	source.SubscribeKernels(ctrl.OnKernelsChanged)
	return ctrl
}

// SaveSelection persists a selection to repo-scope config so later runs and
// provisioning scripts can read it back.
func SaveSelection(sel *osselect.Selection) error {
	pairs := []struct {
		key   string
		value *string
	}{
		{"image.system", sel.SystemID},
		{"image.release", sel.ReleaseKey},
		{"image.kernel", sel.KernelID},
	}

	for _, pair := range pairs {
		if pair.value == nil || *pair.value == "" {
			// Best effort: the key may never have been written
			_ = config.UnsetConfigValue(pair.key, config.ScopeRepo)
			continue
		}
		if err := config.SetConfigValue(pair.key, *pair.value, config.ScopeRepo); err != nil {
			return err
		}
	}

	return nil
}

// FormatSelection renders a selection as "system/release" with an optional
// "+kernel" suffix, or "(none)" when nothing is chosen.
func FormatSelection(sel *osselect.Selection) string {
	if sel == nil || sel.ReleaseKey == nil {
		return "(none)"
	}

	out := *sel.ReleaseKey
	if sel.KernelID != nil && *sel.KernelID != "" {
		out += "+" + *sel.KernelID
	}
	return out
}
