// SPDX-License-Identifier: Apache-2.0
package image

import (
	"fmt"

	"github.com/Work-Fort/Bellows/cmd/cmdutil"
	"github.com/Work-Fort/Bellows/pkg/catalog"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/Work-Fort/Bellows/pkg/osselect"
	"github.com/Work-Fort/Bellows/pkg/ui"
	"github.com/spf13/cobra"
)

type pickOptions struct {
	system  string
	release string
	kernel  string
}

func newPickCmd() *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose the image to provision with",
		Long: `Choose the operating system, release, and kernel variant to provision
with. Runs the interactive picker on a terminal; pass --system and
--release to choose non-interactively. The choice is saved to the repo
config so provisioning tooling can read it back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.system == "" && opts.release == "" && opts.kernel == "" {
				return runPick(nil)
			}
			return runPick(opts)
		},
	}

	cmd.Flags().StringVar(&opts.system, "system", "", "Operating system to choose")
	cmd.Flags().StringVar(&opts.release, "release", "", "Release to choose (\"system/release\" key)")
	cmd.Flags().StringVar(&opts.kernel, "kernel", "", "Kernel variant to choose")

	return cmd
}

// runPick drives one selection round. A nil opts means interactive mode.
func runPick(opts *pickOptions) error {
	source, err := cmdutil.LoadSource()
	if err != nil {
		return err
	}

	ctrl := cmdutil.NewController(source)
	theme := config.CurrentTheme

	if opts == nil {
		if !cmdutil.IsInteractive() {
			return fmt.Errorf("not a terminal; use --system/--release/--kernel to pick non-interactively")
		}

		accepted, err := ui.RunImagePicker(source.Catalog(), ctrl)
		if err != nil {
			return err
		}
		if !accepted {
			fmt.Println(theme.WarningMessage("Selection cancelled"))
			return nil
		}
	} else {
		if err := applyFlags(ctrl, opts); err != nil {
			return err
		}
	}

	sel := ctrl.Selection()
	if err := cmdutil.SaveSelection(sel); err != nil {
		return err
	}

	fmt.Println(theme.SuccessMessage(fmt.Sprintf("Selected %s", cmdutil.FormatSelection(sel))))
	return nil
}

// applyFlags walks the flag values through the cascade, validating each tier
// against what the previous one made selectable.
func applyFlags(ctrl *osselect.Controller, opts *pickOptions) error {
	sel := ctrl.Selection()

	if opts.system != "" {
		sel.SystemID = &opts.system
		ctrl.OnSystemChanged()
	}

	if opts.release != "" {
		if !containsKey(ctrl.SelectableReleases(), opts.release) {
			return fmt.Errorf("release %q is not available for the chosen system", opts.release)
		}
		sel.ReleaseKey = &opts.release
		ctrl.OnReleaseChanged()
	}

	if opts.kernel != "" {
		if !containsKey(ctrl.SelectableKernels(), opts.kernel) {
			return fmt.Errorf("kernel %q is not available for the chosen release", opts.kernel)
		}
		sel.KernelID = &opts.kernel
	}

	if sel.SystemID == nil || sel.ReleaseKey == nil {
		return fmt.Errorf("incomplete selection: both a system and a release are required")
	}

	return nil
}

func containsKey(options []catalog.Option, key string) bool {
	for _, opt := range options {
		if opt.Key == key {
			return true
		}
	}
	return false
}
