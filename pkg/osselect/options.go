// SPDX-License-Identifier: Apache-2.0
package osselect

import (
	"strings"

	"github.com/Work-Fort/Bellows/pkg/catalog"
)

// selectableReleases filters the catalog's release list down to the entries
// matching the selection's system. Matching is a substring test against the
// full compound key, not a strict prefix test: a systemID that happens to be
// a substring of another system's key will also match. That looseness is the
// defining behavior and is kept as-is pending product confirmation.
//
// An unset or empty systemID yields an empty list, as does a catalog without
// releases. Original order is preserved.
func selectableReleases(cat *catalog.Catalog, sel *Selection) []catalog.Option {
	if cat == nil || sel == nil || sel.SystemID == nil || *sel.SystemID == "" {
		return nil
	}

	var matches []catalog.Option
	for _, rel := range cat.Releases {
		if strings.Contains(rel.Key, *sel.SystemID) {
			matches = append(matches, rel)
		}
	}
	return matches
}

// selectableKernels looks up the kernel variants for the selection's system
// and release. The release name is the portion of the compound release key
// after the first slash. Any missing piece — unset system, unset release, a
// key without a slash, or an absent map entry — yields an empty list rather
// than an error.
func selectableKernels(cat *catalog.Catalog, sel *Selection) []catalog.Option {
	if cat == nil || sel == nil || sel.SystemID == nil || sel.ReleaseKey == nil {
		return nil
	}

	idx := strings.Index(*sel.ReleaseKey, "/")
	if idx < 0 {
		return nil
	}
	releaseName := (*sel.ReleaseKey)[idx+1:]

	return cat.KernelsFor(*sel.SystemID, releaseName)
}

// resolveDefaultOrFirst picks a key from options by priority: the preferred
// key if present, else the fallback key if present, else the first entry,
// else nil. Preferred strictly dominates fallback even when the fallback
// appears earlier in the list. The decision is made once against the options
// passed in; callers re-invoke after the list changes.
func resolveDefaultOrFirst(options []catalog.Option, preferred, fallback *string) *string {
	if preferred != nil && hasKey(options, *preferred) {
		key := *preferred
		return &key
	}
	if fallback != nil && hasKey(options, *fallback) {
		key := *fallback
		return &key
	}
	if len(options) > 0 {
		key := options[0].Key
		return &key
	}
	return nil
}

func hasKey(options []catalog.Option, key string) bool {
	for _, opt := range options {
		if opt.Key == key {
			return true
		}
	}
	return false
}
