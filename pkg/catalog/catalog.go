// SPDX-License-Identifier: Apache-2.0
package catalog

// Option is a single selectable entry: an opaque key plus the label shown to
// the operator.
type Option struct {
	Key   string
	Label string
}

// Catalog describes the images available for provisioning. It is owned by the
// Source that produced it; consumers treat it as read-only between change
// notifications.
type Catalog struct {
	// Systems lists the available operating systems in display order.
	Systems []Option

	// Releases lists every release across all systems, in display order.
	// Keys are compound: "<systemID>/<releaseName>". Filtering by the
	// currently chosen system is the selection controller's job, not the
	// catalog's.
	Releases []Option

	// Kernels maps systemID -> releaseName -> kernel variants. The map is
	// sparse: systems and releases without special kernels simply have no
	// entry.
	Kernels map[string]map[string][]Option

	// DefaultSystemID and DefaultReleaseName are optional defaulting hints.
	// nil means the catalog carries no hint at all; a pointer to the empty
	// string means the hint is present but names nothing usable.
	DefaultSystemID    *string
	DefaultReleaseName *string
}

// HasDefaults reports whether the catalog carries both defaulting hints.
// Selection defaulting only runs when it does.
func (c *Catalog) HasDefaults() bool {
	return c != nil && c.DefaultSystemID != nil && c.DefaultReleaseName != nil
}

// KernelsFor returns the kernel variants for a system/release pair, or nil
// when either lookup key is absent.
func (c *Catalog) KernelsFor(systemID, releaseName string) []Option {
	if c == nil || c.Kernels == nil {
		return nil
	}
	byRelease, ok := c.Kernels[systemID]
	if !ok {
		return nil
	}
	return byRelease[releaseName]
}
