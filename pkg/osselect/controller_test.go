// SPDX-License-Identifier: Apache-2.0
package osselect

import (
	"testing"

	"github.com/Work-Fort/Bellows/pkg/catalog"
)

func ptr(s string) *string {
	return &s
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Systems: []catalog.Option{
			{Key: "ubuntu", Label: "Ubuntu"},
			{Key: "centos", Label: "CentOS"},
		},
		Releases: []catalog.Option{
			{Key: "ubuntu/xenial", Label: "16.04"},
			{Key: "centos/7", Label: "7"},
		},
		Kernels: map[string]map[string][]catalog.Option{
			"centos": {
				"7": {{Key: "k1", Label: "HWE"}},
			},
		},
		DefaultSystemID:    ptr(""),
		DefaultReleaseName: ptr("xenial"),
	}
}

func TestSelectableReleases_UnsetSystem(t *testing.T) {
	cat := testCatalog()

	if got := selectableReleases(cat, &Selection{}); len(got) != 0 {
		t.Errorf("expected no releases for unset system, got %d", len(got))
	}
	if got := selectableReleases(cat, &Selection{SystemID: ptr("")}); len(got) != 0 {
		t.Errorf("expected no releases for empty system, got %d", len(got))
	}
}

func TestSelectableReleases_FiltersBySystem(t *testing.T) {
	cat := testCatalog()

	got := selectableReleases(cat, &Selection{SystemID: ptr("centos")})
	if len(got) != 1 || got[0].Key != "centos/7" {
		t.Fatalf("expected [centos/7], got %v", got)
	}
}

func TestSelectableReleases_SubstringMatch(t *testing.T) {
	// Matching is a substring test on the whole compound key, so a systemID
	// that is a substring of another system's key also matches. Kept as-is.
	cat := &catalog.Catalog{
		Releases: []catalog.Option{
			{Key: "centos/7", Label: "7"},
			{Key: "centos-stream/9", Label: "9"},
		},
	}

	got := selectableReleases(cat, &Selection{SystemID: ptr("centos")})
	if len(got) != 2 {
		t.Errorf("expected substring match to catch both keys, got %v", got)
	}
}

func TestSelectableReleases_EmptyCatalog(t *testing.T) {
	got := selectableReleases(&catalog.Catalog{}, &Selection{SystemID: ptr("ubuntu")})
	if len(got) != 0 {
		t.Errorf("expected empty result for catalog without releases, got %v", got)
	}
}

func TestSelectableKernels_Lookup(t *testing.T) {
	cat := testCatalog()

	got := selectableKernels(cat, &Selection{SystemID: ptr("centos"), ReleaseKey: ptr("centos/7")})
	if len(got) != 1 || got[0].Key != "k1" {
		t.Fatalf("expected [k1], got %v", got)
	}
}

func TestSelectableKernels_MissingLookups(t *testing.T) {
	cat := testCatalog()

	cases := []struct {
		name string
		sel  Selection
	}{
		{"unset system", Selection{ReleaseKey: ptr("centos/7")}},
		{"unset release", Selection{SystemID: ptr("centos")}},
		{"release not in map", Selection{SystemID: ptr("centos"), ReleaseKey: ptr("centos/8")}},
		{"system not in map", Selection{SystemID: ptr("ubuntu"), ReleaseKey: ptr("ubuntu/xenial")}},
		{"key without slash", Selection{SystemID: ptr("centos"), ReleaseKey: ptr("centos")}},
	}

	for _, tc := range cases {
		if got := selectableKernels(cat, &tc.sel); len(got) != 0 {
			t.Errorf("%s: expected no kernels, got %v", tc.name, got)
		}
	}
}

func TestResolveDefaultOrFirst_PreferredWins(t *testing.T) {
	options := []catalog.Option{
		{Key: "ubuntu", Label: "Ubuntu"},
		{Key: "centos", Label: "CentOS"},
	}

	// Preferred dominates even when the fallback sits earlier in the list.
	got := resolveDefaultOrFirst(options, ptr("centos"), ptr("ubuntu"))
	if got == nil || *got != "centos" {
		t.Errorf("expected centos, got %v", got)
	}
}

func TestResolveDefaultOrFirst_FallbackWins(t *testing.T) {
	options := []catalog.Option{
		{Key: "debian", Label: "Debian"},
		{Key: "ubuntu", Label: "Ubuntu"},
	}

	got := resolveDefaultOrFirst(options, ptr("fedora"), ptr("ubuntu"))
	if got == nil || *got != "ubuntu" {
		t.Errorf("expected ubuntu, got %v", got)
	}
}

func TestResolveDefaultOrFirst_PositionalFirst(t *testing.T) {
	options := []catalog.Option{
		{Key: "debian", Label: "Debian"},
		{Key: "fedora", Label: "Fedora"},
	}

	got := resolveDefaultOrFirst(options, ptr("suse"), ptr("ubuntu"))
	if got == nil || *got != "debian" {
		t.Errorf("expected debian, got %v", got)
	}

	got = resolveDefaultOrFirst(options, nil, nil)
	if got == nil || *got != "debian" {
		t.Errorf("expected debian with no candidates, got %v", got)
	}
}

func TestResolveDefaultOrFirst_EmptyOptions(t *testing.T) {
	if got := resolveDefaultOrFirst(nil, ptr("ubuntu"), ptr("ubuntu")); got != nil {
		t.Errorf("expected nil for empty options, got %v", *got)
	}
}

func TestNewController_AppliesDefaults(t *testing.T) {
	// No usable default system hint: the hardcoded "ubuntu" weighting wins
	// because it is present in the catalog.
	c := NewController(testCatalog(), nil)
	sel := c.Selection()

	if sel.SystemID == nil || *sel.SystemID != "ubuntu" {
		t.Errorf("expected system ubuntu, got %v", deref(sel.SystemID))
	}
	if sel.ReleaseKey == nil || *sel.ReleaseKey != "ubuntu/xenial" {
		t.Errorf("expected release ubuntu/xenial, got %v", deref(sel.ReleaseKey))
	}
	if sel.KernelID == nil || *sel.KernelID != "" {
		t.Errorf("expected empty-string kernel sentinel, got %v", deref(sel.KernelID))
	}
}

func TestNewController_HonorsDefaultHints(t *testing.T) {
	cat := testCatalog()
	cat.DefaultSystemID = ptr("centos")
	cat.DefaultReleaseName = ptr("7")

	c := NewController(cat, nil)
	sel := c.Selection()

	if sel.SystemID == nil || *sel.SystemID != "centos" {
		t.Errorf("expected system centos, got %v", deref(sel.SystemID))
	}
	if sel.ReleaseKey == nil || *sel.ReleaseKey != "centos/7" {
		t.Errorf("expected release centos/7, got %v", deref(sel.ReleaseKey))
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	c := NewController(testCatalog(), nil)
	first := *c.Selection()

	c.applyDefaults()
	second := *c.Selection()

	if deref(first.SystemID) != deref(second.SystemID) ||
		deref(first.ReleaseKey) != deref(second.ReleaseKey) ||
		deref(first.KernelID) != deref(second.KernelID) {
		t.Errorf("applyDefaults not idempotent: %+v vs %+v", first, second)
	}
}

func TestApplyDefaults_NeverOverwrites(t *testing.T) {
	sel := &Selection{SystemID: ptr("centos"), ReleaseKey: ptr("centos/7")}
	NewController(testCatalog(), sel)

	if *sel.SystemID != "centos" || *sel.ReleaseKey != "centos/7" {
		t.Errorf("existing selection was overwritten: %+v", sel)
	}
	if sel.KernelID != nil {
		t.Errorf("kernel set on an already-selected model: %v", *sel.KernelID)
	}
}

func TestApplyDefaults_PartialSelectionIsNoOp(t *testing.T) {
	sel := &Selection{SystemID: ptr("centos")}
	NewController(testCatalog(), sel)

	if sel.ReleaseKey != nil {
		t.Errorf("defaulting ran over a partial selection: %v", *sel.ReleaseKey)
	}
}

func TestApplyDefaults_NoHintsIsNoOp(t *testing.T) {
	cat := testCatalog()
	cat.DefaultSystemID = nil

	c := NewController(cat, nil)
	if c.Selection().SystemID != nil {
		t.Errorf("defaulting ran without catalog hints")
	}
}

func TestOnSystemChanged_Cascade(t *testing.T) {
	cat := testCatalog()
	sel := &Selection{}
	c := NewController(cat, sel)

	sel.SystemID = ptr("centos")
	c.OnSystemChanged()

	releases := c.SelectableReleases()
	if len(releases) != 1 || releases[0].Key != "centos/7" {
		t.Fatalf("expected [centos/7], got %v", releases)
	}
	if sel.ReleaseKey == nil || *sel.ReleaseKey != "centos/7" {
		t.Errorf("expected release centos/7, got %v", deref(sel.ReleaseKey))
	}
	// The cascade leaves the kernel unset, not the empty-string sentinel.
	if sel.KernelID != nil {
		t.Errorf("expected unset kernel after system change, got %q", *sel.KernelID)
	}
	if len(c.SelectableKernels()) != 0 {
		t.Errorf("expected kernels cleared by the cascade, got %v", c.SelectableKernels())
	}
}

func TestOnSystemChanged_NoReleases(t *testing.T) {
	cat := testCatalog()
	sel := &Selection{}
	c := NewController(cat, sel)

	sel.SystemID = ptr("fedora")
	c.OnSystemChanged()

	if len(c.SelectableReleases()) != 0 {
		t.Errorf("expected no releases for unknown system, got %v", c.SelectableReleases())
	}
	if sel.ReleaseKey != nil {
		t.Errorf("expected release cleared, got %v", *sel.ReleaseKey)
	}
}

func TestOnReleaseChanged_RecomputesKernels(t *testing.T) {
	cat := testCatalog()
	sel := &Selection{}
	c := NewController(cat, sel)

	sel.SystemID = ptr("centos")
	c.OnSystemChanged()
	c.OnReleaseChanged()

	kernels := c.SelectableKernels()
	if len(kernels) != 1 || kernels[0].Key != "k1" {
		t.Fatalf("expected [k1], got %v", kernels)
	}
	if sel.KernelID != nil {
		t.Errorf("expected kernel cleared on release change, got %q", *sel.KernelID)
	}
}

func TestOnReleasesChanged_RefiltersAndDefaults(t *testing.T) {
	cat := &catalog.Catalog{
		Systems:            []catalog.Option{{Key: "ubuntu", Label: "Ubuntu"}},
		DefaultSystemID:    ptr("ubuntu"),
		DefaultReleaseName: ptr("xenial"),
	}

	c := NewController(cat, nil)
	sel := c.Selection()

	// The catalog had no releases yet, so defaulting picked the system but
	// could not pick a release; the selection is partial and stays that way
	// until the operator intervenes or it is reset.
	if sel.SystemID == nil || *sel.SystemID != "ubuntu" {
		t.Fatalf("expected system ubuntu, got %v", deref(sel.SystemID))
	}

	cat.Releases = []catalog.Option{{Key: "ubuntu/xenial", Label: "16.04"}}
	c.OnReleasesChanged()

	if len(c.SelectableReleases()) != 1 {
		t.Errorf("expected refiltered releases, got %v", c.SelectableReleases())
	}

	c.Reset()
	if sel.ReleaseKey == nil || *sel.ReleaseKey != "ubuntu/xenial" {
		t.Errorf("expected release ubuntu/xenial after reset, got %v", deref(sel.ReleaseKey))
	}
}

func TestReset_ClearsAndRedefaults(t *testing.T) {
	cat := testCatalog()
	sel := &Selection{
		SystemID:   ptr("centos"),
		ReleaseKey: ptr("centos/7"),
		KernelID:   ptr("k1"),
	}
	c := NewController(cat, sel)

	c.Reset()

	// Identical catalog state, so the reset lands on the same defaults a
	// fresh attach would produce.
	if sel.SystemID == nil || *sel.SystemID != "ubuntu" {
		t.Errorf("expected system ubuntu after reset, got %v", deref(sel.SystemID))
	}
	if sel.ReleaseKey == nil || *sel.ReleaseKey != "ubuntu/xenial" {
		t.Errorf("expected release ubuntu/xenial after reset, got %v", deref(sel.ReleaseKey))
	}
	if sel.KernelID == nil || *sel.KernelID != "" {
		t.Errorf("expected empty-string kernel sentinel after reset, got %v", deref(sel.KernelID))
	}
}

func TestReset_WithoutHintsLeavesUnset(t *testing.T) {
	cat := testCatalog()
	cat.DefaultSystemID = nil
	cat.DefaultReleaseName = nil

	sel := &Selection{SystemID: ptr("centos"), ReleaseKey: ptr("centos/7")}
	c := NewController(cat, sel)

	c.Reset()

	if sel.SystemID != nil || sel.ReleaseKey != nil || sel.KernelID != nil {
		t.Errorf("expected fully unset selection, got %+v", sel)
	}
	if len(c.SelectableReleases()) != 0 || len(c.SelectableKernels()) != 0 {
		t.Errorf("expected empty derived lists for unset selection")
	}
}
