// SPDX-License-Identifier: Apache-2.0

// Package osselect keeps a three-tier image choice — operating system,
// release, optional kernel variant — consistent with a catalog that can
// change underneath it. The controller owns the derived option lists for the
// subordinate tiers, fills in sensible defaults exactly once per quiescent
// catalog state, and cascades user edits at one tier into the tiers below.
//
// Nothing here returns an error: malformed or missing input degrades to
// empty option lists and unset fields, and the next valid notification heals
// the state. The controller assumes a single-threaded UI event loop; no
// operation blocks and none may run concurrently on the same instance.
package osselect

import (
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Bellows/pkg/catalog"
)

// fallbackSystemID is preferred over the plain first catalog entry whenever
// the catalog's own default-system hint names nothing selectable.
const fallbackSystemID = "ubuntu"

// Selection is the caller-owned current choice. All three fields are
// explicit optionals: nil means unset. KernelID additionally distinguishes
// nil (no kernel chosen) from a pointer to the empty string, which means
// "use the release's default kernel" — the defaulting path sets the latter,
// the system-changed cascade the former. Both sentinels are deliberate.
type Selection struct {
	SystemID   *string
	ReleaseKey *string // compound "<systemID>/<releaseName>" form
	KernelID   *string
}

// Controller derives the selectable releases and kernels from a catalog and
// a selection, and rewrites both whenever either side changes.
type Controller struct {
	catalog   *catalog.Catalog
	selection *Selection

	selectableReleases []catalog.Option
	selectableKernels  []catalog.Option
}

// NewController attaches to a catalog and a selection, immediately computes
// the derived option lists, and default-fills a fully unset selection. A nil
// selection is replaced by a fresh all-unset one.
func NewController(cat *catalog.Catalog, sel *Selection) *Controller {
	if sel == nil {
		sel = &Selection{}
	}

	c := &Controller{
		catalog:   cat,
		selection: sel,
	}

	c.selectableReleases = selectableReleases(cat, sel)
	c.selectableKernels = selectableKernels(cat, sel)
	c.applyDefaults()

	return c
}

// Selection returns the selection the controller is attached to.
func (c *Controller) Selection() *Selection {
	return c.selection
}

// SelectableReleases returns the releases matching the current system, in
// catalog order. Callers must not mutate the returned slice.
func (c *Controller) SelectableReleases() []catalog.Option {
	return c.selectableReleases
}

// SelectableKernels returns the kernel variants for the current system and
// release. Callers must not mutate the returned slice.
func (c *Controller) SelectableKernels() []catalog.Option {
	return c.selectableKernels
}

// OnReleasesChanged handles a catalog notification that the release list was
// replaced. The selectable releases are recomputed and, if the selection is
// still fully unset, defaults are filled in.
func (c *Controller) OnReleasesChanged() {
	c.selectableReleases = selectableReleases(c.catalog, c.selection)
	c.applyDefaults()
}

// OnKernelsChanged handles a catalog notification that the kernel map was
// replaced.
func (c *Controller) OnKernelsChanged() {
	c.selectableKernels = selectableKernels(c.catalog, c.selection)
	c.applyDefaults()
}

// OnSystemChanged cascades an explicit user change of the system tier:
// releases are refiltered, the release and kernel choices are cleared, and
// the first matching release (if any) becomes the new release choice. The
// kernel stays unset — not the empty-string "default kernel" sentinel the
// defaulting path uses. Unlike the catalog-driven handlers this runs
// unconditionally, even over an existing selection.
func (c *Controller) OnSystemChanged() {
	sel := c.selection
	c.selectableReleases = selectableReleases(c.catalog, sel)

	sel.ReleaseKey = nil
	sel.KernelID = nil
	// Recomputed after the release is cleared, so this empties the list.
	c.selectableKernels = selectableKernels(c.catalog, sel)

	if len(c.selectableReleases) > 0 {
		key := c.selectableReleases[0].Key
		sel.ReleaseKey = &key
	}

	log.Debugf("system changed: releases=%d release=%v", len(c.selectableReleases), deref(sel.ReleaseKey))
}

// OnReleaseChanged cascades an explicit user change of the release tier: the
// kernel list is recomputed for the new release and the kernel choice is
// cleared.
func (c *Controller) OnReleaseChanged() {
	c.selectableKernels = selectableKernels(c.catalog, c.selection)
	c.selection.KernelID = nil

	log.Debugf("release changed: kernels=%d", len(c.selectableKernels))
}

// Reset clears the whole selection and re-runs defaulting, which now fires
// because the selection is fully unset.
func (c *Controller) Reset() {
	sel := c.selection
	sel.SystemID = nil
	sel.ReleaseKey = nil
	sel.KernelID = nil

	c.selectableReleases = selectableReleases(c.catalog, sel)
	c.selectableKernels = selectableKernels(c.catalog, sel)
	c.applyDefaults()
}

// applyDefaults fills in a fully unset selection from the catalog's
// defaulting hints. It never overwrites a partial or full selection, and it
// is a no-op when the catalog carries no hints, which makes it idempotent
// per quiescent catalog state.
func (c *Controller) applyDefaults() {
	sel := c.selection
	if sel.SystemID != nil || sel.ReleaseKey != nil {
		return
	}
	if !c.catalog.HasDefaults() {
		return
	}

	weight := fallbackSystemID
	sel.SystemID = resolveDefaultOrFirst(c.catalog.Systems, c.catalog.DefaultSystemID, &weight)

	c.selectableReleases = selectableReleases(c.catalog, sel)

	var preferred *string
	if sel.SystemID != nil {
		key := *sel.SystemID + "/" + *c.catalog.DefaultReleaseName
		preferred = &key
	}
	sel.ReleaseKey = resolveDefaultOrFirst(c.selectableReleases, preferred, nil)

	// Empty string, not unset: "use the release's default kernel".
	empty := ""
	sel.KernelID = &empty

	log.Debugf("defaults applied: system=%v release=%v", deref(sel.SystemID), deref(sel.ReleaseKey))
}

func deref(s *string) string {
	if s == nil {
		return "<unset>"
	}
	return *s
}
