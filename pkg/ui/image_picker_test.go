// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/Work-Fort/Bellows/pkg/catalog"
	"github.com/Work-Fort/Bellows/pkg/osselect"
)

func strptr(s string) *string { return &s }

func pickerCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Systems: []catalog.Option{
			{Key: "ubuntu", Label: "Ubuntu"},
			{Key: "centos", Label: "CentOS"},
		},
		Releases: []catalog.Option{
			{Key: "ubuntu/xenial", Label: "Ubuntu 16.04 LTS"},
			{Key: "ubuntu/bionic", Label: "Ubuntu 18.04 LTS"},
			{Key: "centos/7", Label: "CentOS 7"},
		},
		Kernels: map[string]map[string][]catalog.Option{
			"centos": {
				"7": {
					{Key: "generic", Label: "Generic kernel"},
					{Key: "lowlatency", Label: "Low latency kernel"},
				},
			},
		},
	}
}

func newTestPicker() ImagePickerModel {
	cat := pickerCatalog()
	ctrl := osselect.NewController(cat, nil)
	m := NewImagePicker(cat, ctrl)

	// Size the panes so list navigation behaves as it would on screen
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(ImagePickerModel)
}

func TestImagePicker_Init(t *testing.T) {
	m := newTestPicker()

	if len(m.tabs) != tierCount {
		t.Errorf("expected %d tabs, got %d", tierCount, len(m.tabs))
	}

	if m.activeTier != tierSystem {
		t.Errorf("expected system tier active, got %d", m.activeTier)
	}

	// System pane shows the full catalog regardless of selection
	if got := len(m.lists[tierSystem].Items()); got != 2 {
		t.Errorf("expected 2 system items, got %d", got)
	}

	// Nothing is selected yet, so the derived panes are empty
	if got := len(m.lists[tierRelease].Items()); got != 0 {
		t.Errorf("expected empty release pane, got %d items", got)
	}
	if got := len(m.lists[tierKernel].Items()); got != 0 {
		t.Errorf("expected empty kernel pane, got %d items", got)
	}
}

func TestImagePicker_TabCyclesTiers(t *testing.T) {
	m := newTestPicker()

	tab := tea.KeyMsg{Type: tea.KeyTab}
	for _, want := range []int{tierRelease, tierKernel, tierSystem} {
		updated, _ := m.Update(tab)
		m = updated.(ImagePickerModel)
		if m.activeTier != want {
			t.Errorf("expected tier %d after tab, got %d", want, m.activeTier)
		}
	}
}

func TestImagePicker_ChoosingSystemCascades(t *testing.T) {
	m := newTestPicker()

	// Highlight centos (second entry) and choose it
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ImagePickerModel)

	sel := m.Selection()
	if sel.SystemID == nil || *sel.SystemID != "centos" {
		t.Fatalf("expected system centos, got %v", sel.SystemID)
	}

	// The controller advances the release automatically; the picker moves
	// focus to the release pane
	if m.activeTier != tierRelease {
		t.Errorf("expected release tier active, got %d", m.activeTier)
	}
	if got := len(m.lists[tierRelease].Items()); got != 1 {
		t.Errorf("expected 1 release item for centos, got %d", got)
	}
	if sel.ReleaseKey == nil || *sel.ReleaseKey != "centos/7" {
		t.Errorf("expected release centos/7, got %v", sel.ReleaseKey)
	}
}

func TestImagePicker_ChoosingReleaseWithKernelsAdvances(t *testing.T) {
	m := newTestPicker()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // centos
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // centos/7
	m = updated.(ImagePickerModel)

	if m.activeTier != tierKernel {
		t.Errorf("expected kernel tier active, got %d", m.activeTier)
	}
	if got := len(m.lists[tierKernel].Items()); got != 2 {
		t.Errorf("expected 2 kernel items, got %d", got)
	}
	if m.quitting {
		t.Error("picker should keep running while a kernel can still be chosen")
	}
}

func TestImagePicker_ChoosingReleaseWithoutKernelsFinishes(t *testing.T) {
	m := newTestPicker()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // ubuntu
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // ubuntu/xenial
	m = updated.(ImagePickerModel)

	if !m.accepted {
		t.Error("expected choice to be accepted")
	}
	if !m.quitting {
		t.Error("expected picker to quit when no kernel tier applies")
	}

	sel := m.Selection()
	if sel.KernelID != nil {
		t.Errorf("expected no kernel choice, got %v", *sel.KernelID)
	}
}

func TestImagePicker_ChoosingKernelFinishes(t *testing.T) {
	m := newTestPicker()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // centos
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // centos/7
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // generic
	m = updated.(ImagePickerModel)

	if !m.accepted || !m.quitting {
		t.Error("expected picker to finish after kernel choice")
	}

	sel := m.Selection()
	if sel.KernelID == nil || *sel.KernelID != "generic" {
		t.Errorf("expected kernel generic, got %v", sel.KernelID)
	}
}

func TestImagePicker_EscapeExitsWithoutAccepting(t *testing.T) {
	m := newTestPicker()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(ImagePickerModel)

	if !m.quitting {
		t.Error("expected picker to quit on escape")
	}
	if m.accepted {
		t.Error("escape must not accept the selection")
	}
}

func TestImagePicker_ResetAsksForConfirmation(t *testing.T) {
	m := newTestPicker()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // ubuntu, auto-advances release
	m = updated.(ImagePickerModel)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(ImagePickerModel)

	if m.currentState != stateConfirmingReset {
		t.Fatalf("expected reset confirmation, got state %d", m.currentState)
	}

	// Declining keeps the selection intact
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = updated.(ImagePickerModel)

	if m.currentState != stateBrowsing {
		t.Errorf("expected browsing state after decline, got %d", m.currentState)
	}
	if m.Selection().SystemID == nil {
		t.Error("declined reset must not clear the selection")
	}
}

func TestImagePicker_ConfirmedResetClearsSelection(t *testing.T) {
	m := newTestPicker()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // centos
	m = updated.(ImagePickerModel)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(ImagePickerModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = updated.(ImagePickerModel)

	sel := m.Selection()
	if sel.SystemID != nil || sel.ReleaseKey != nil || sel.KernelID != nil {
		t.Errorf("expected cleared selection after reset, got %+v", sel)
	}
	if m.activeTier != tierSystem {
		t.Errorf("expected focus back on system tier, got %d", m.activeTier)
	}
}

func TestToItems_MarksCurrent(t *testing.T) {
	options := []catalog.Option{
		{Key: "a", Label: "A"},
		{Key: "b", Label: "B"},
	}

	items := toItems(options, strptr("b"))
	if items[0].(OptionItem).current {
		t.Error("item a should not be marked current")
	}
	if !items[1].(OptionItem).current {
		t.Error("item b should be marked current")
	}
}
