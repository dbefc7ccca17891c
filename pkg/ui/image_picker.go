// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Bellows/pkg/catalog"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/Work-Fort/Bellows/pkg/osselect"
)

type pickerState int

const (
	stateBrowsing pickerState = iota
	stateConfirmingReset
)

// Tier indexes into the picker's panes: the cascade runs left to right.
const (
	tierSystem = iota
	tierRelease
	tierKernel
	tierCount
)

var tierTitles = [tierCount]string{"System", "Release", "Kernel"}

// OptionItem adapts a catalog option for bubbles' list component
type OptionItem struct {
	key     string
	label   string
	current bool
}

func (o OptionItem) FilterValue() string { return o.label }
func (o OptionItem) Title() string       { return o.label }
func (o OptionItem) Description() string { return "" }

// optionDelegate renders options as single lines, marking the currently
// chosen one
type optionDelegate struct {
	accentColor lipgloss.Color
}

func (d optionDelegate) Height() int  { return 1 }
func (d optionDelegate) Spacing() int { return 0 }
func (d optionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	opt, ok := item.(OptionItem)
	if !ok {
		return
	}

	theme := config.CurrentTheme
	var displayText string
	if opt.current {
		displayText = theme.ActiveIndicator() + " " + opt.label
	} else {
		displayText = "  " + opt.label
	}

	if index == m.Index() {
		displayText = lipgloss.NewStyle().Foreground(d.accentColor).Render(displayText)
	}

	fmt.Fprint(w, displayText)
}

// ImagePickerModel is the interactive three-tier image chooser. Each pane
// holds one tier of the cascade; choosing an entry feeds the selection
// controller, which refilters the subordinate panes.
type ImagePickerModel struct {
	catalog    *catalog.Catalog
	controller *osselect.Controller

	lists      [tierCount]list.Model
	tabs       []Tab
	activeTier int

	currentState pickerState
	confirmForm  *ConfirmationForm

	width    int
	height   int
	quitting bool
	accepted bool

	globalKeys KeyBindingSet
	paneKeys   KeyBindingSet

	showInstructions bool
	blankLineCount   int
}

// NewImagePicker creates a picker over an attached controller. The catalog
// supplies the system tier; the controller supplies the derived tiers.
func NewImagePicker(cat *catalog.Catalog, ctrl *osselect.Controller) ImagePickerModel {
	theme := config.CurrentTheme

	m := ImagePickerModel{
		catalog:          cat,
		controller:       ctrl,
		activeTier:       tierSystem,
		currentState:     stateBrowsing,
		globalKeys:       GlobalKeyBindings(),
		paneKeys:         PaneKeyBindings(),
		showInstructions: true,
		blankLineCount:   3,
	}

	accents := [tierCount]lipgloss.Color{
		theme.GetPrimaryColor(),
		theme.GetSecondaryColor(),
		theme.GetPrimaryColor(),
	}

	for tier := 0; tier < tierCount; tier++ {
		l := list.New(nil, optionDelegate{accentColor: accents[tier]}, 0, 0)
		l.SetShowTitle(false)
		l.SetShowStatusBar(false)
		l.SetShowPagination(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		m.lists[tier] = l

		m.tabs = append(m.tabs, Tab{Title: tierTitles[tier]})
	}

	m.populate()
	return m
}

// populate rebuilds all three panes from the catalog and the controller's
// derived state
func (m *ImagePickerModel) populate() {
	sel := m.controller.Selection()

	m.lists[tierSystem].SetItems(toItems(m.catalog.Systems, sel.SystemID))
	m.lists[tierRelease].SetItems(toItems(m.controller.SelectableReleases(), sel.ReleaseKey))
	m.lists[tierKernel].SetItems(toItems(m.controller.SelectableKernels(), sel.KernelID))
}

func toItems(options []catalog.Option, current *string) []list.Item {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = OptionItem{
			key:     opt.Key,
			label:   opt.Label,
			current: current != nil && *current == opt.Key,
		}
	}
	return items
}

// Selection returns the picker's underlying selection
func (m ImagePickerModel) Selection() *osselect.Selection {
	return m.controller.Selection()
}

// Accepted reports whether the operator confirmed a choice rather than
// bailing out
func (m ImagePickerModel) Accepted() bool {
	return m.accepted
}

func (m ImagePickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m ImagePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle reset confirmation if active
	if m.currentState == stateConfirmingReset && m.confirmForm != nil {
		confirmed, shouldProceed, cmd := m.confirmForm.Update(msg)

		if shouldProceed {
			if confirmed {
				log.Debugf("Update: reset confirmed")
				m.controller.Reset()
				m.populate()
				m.activeTier = tierSystem
			}
			m.currentState = stateBrowsing
			return m, cmd
		} else if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.currentState = stateBrowsing
			return m, nil
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if binding := m.globalKeys.Contains(msg.String()); binding != nil {
			switch binding.Key {
			case "ESC":
				m.quitting = true
				return m, tea.Quit

			case "TAB":
				m.activeTier = (m.activeTier + 1) % tierCount
				return m, nil

			case "R":
				m.confirmForm = NewConfirmationForm(
					"confirm",
					"Reset the current selection?",
					"Defaults will be re-applied from the catalog.",
					"Yes",
					"No",
				)
				m.currentState = stateConfirmingReset
				return m, m.confirmForm.Init()
			}
			return m, nil
		}

		if binding := m.paneKeys.Contains(msg.String()); binding != nil && binding.Key == "ENTER" {
			return m.choose()
		}
	}

	var cmd tea.Cmd
	m.lists[m.activeTier], cmd = m.lists[m.activeTier].Update(msg)
	return m, cmd
}

// choose applies the highlighted entry of the active pane to the selection
// and runs the matching cascade
func (m ImagePickerModel) choose() (tea.Model, tea.Cmd) {
	item, ok := m.lists[m.activeTier].SelectedItem().(OptionItem)
	if !ok {
		return m, nil
	}

	sel := m.controller.Selection()
	key := item.key

	switch m.activeTier {
	case tierSystem:
		sel.SystemID = &key
		m.controller.OnSystemChanged()
		m.populate()
		m.activeTier = tierRelease

	case tierRelease:
		sel.ReleaseKey = &key
		m.controller.OnReleaseChanged()
		m.populate()
		if len(m.controller.SelectableKernels()) > 0 {
			m.activeTier = tierKernel
		} else {
			// Nothing below this tier: the choice is complete
			m.accepted = true
			m.quitting = true
			return m, tea.Quit
		}

	case tierKernel:
		sel.KernelID = &key
		m.populate()
		m.accepted = true
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// layout recalculates pane sizes, dropping optional chrome on small
// terminals
func (m *ImagePickerModel) layout() {
	const (
		headerLines   = 1
		tabsLines     = 3
		helpLines     = 1
		contentBorder = 2
		minListHeight = 5

		instructionsLines = 1
		blankLines        = 3
	)

	borderWidth := 2 // Border sides (top border is disabled, connects to tabs)
	contentWidth := m.width - borderWidth

	requiredOverhead := headerLines + tabsLines + helpLines + contentBorder
	availableHeight := m.height - requiredOverhead

	m.showInstructions = false
	m.blankLineCount = 0

	if availableHeight >= minListHeight+instructionsLines+blankLines {
		m.showInstructions = true
		m.blankLineCount = 3
	} else if availableHeight >= minListHeight+instructionsLines+1 {
		m.showInstructions = true
		m.blankLineCount = 1
	}

	actualOverhead := requiredOverhead + m.blankLineCount
	if m.showInstructions {
		actualOverhead += instructionsLines
	}

	listHeight := m.height - actualOverhead
	if listHeight < minListHeight {
		listHeight = minListHeight
	}

	for tier := 0; tier < tierCount; tier++ {
		m.lists[tier].SetSize(contentWidth, listHeight)
	}
}

func (m ImagePickerModel) View() string {
	if m.quitting {
		return ""
	}

	// View() may be called before the first WindowSizeMsg arrives
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	theme := config.CurrentTheme
	sel := m.controller.Selection()

	header := theme.RenderHeader(m.width, "IMAGE PICKER", tierTitles[m.activeTier])

	// Tab states follow the cascade: chosen tiers are complete, the one
	// being viewed is active, the rest pend
	chosen := [tierCount]bool{
		sel.SystemID != nil,
		sel.ReleaseKey != nil,
		sel.KernelID != nil,
	}
	for i := range m.tabs {
		switch {
		case i == m.activeTier:
			m.tabs[i].State = TabActive
		case chosen[i]:
			m.tabs[i].State = TabComplete
		default:
			m.tabs[i].State = TabPending
		}
	}

	tabsRow := RenderTabs(m.tabs, TabsConfig{
		ActiveIndex: m.activeTier,
		Width:       m.width,
	})

	helpStyle := lipgloss.NewStyle().Foreground(theme.GetMutedColor())
	tabHelp := m.paneKeys.RenderInline(helpStyle)
	contentWithHelp := lipgloss.JoinVertical(lipgloss.Left, m.lists[m.activeTier].View(), "", tabHelp)

	borderWidth := 2
	contentPane := RenderTabContent(contentWithHelp, m.width-borderWidth, 0)

	help := theme.RenderFooter(m.width, m.globalKeys.Render(lipgloss.NewStyle()))

	layoutParts := []string{header}

	if m.blankLineCount >= 1 {
		layoutParts = append(layoutParts, "")
	}

	if m.showInstructions {
		instructionText := "Choose a system, then a release, then an optional kernel variant. Changing an upstream tier refilters the tiers below it."
		instructions := lipgloss.NewStyle().
			Foreground(theme.GetMutedColor()).
			Width(m.width).
			Align(lipgloss.Center).
			Render(instructionText)
		layoutParts = append(layoutParts, instructions)
	}

	if m.blankLineCount >= 2 {
		layoutParts = append(layoutParts, "")
	}

	layoutParts = append(layoutParts, tabsRow, contentPane)

	if m.blankLineCount >= 3 {
		layoutParts = append(layoutParts, "")
	}

	layoutParts = append(layoutParts, help)

	baseView := lipgloss.JoinVertical(lipgloss.Left, layoutParts...)

	if m.currentState == stateConfirmingReset {
		formView := m.confirmForm.View()
		constrainedForm := lipgloss.NewStyle().
			MaxWidth(60).
			Render(formView)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, constrainedForm, lipgloss.WithWhitespaceChars(" "), lipgloss.WithWhitespaceForeground(lipgloss.Color("0")))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, baseView)
}

// RunImagePicker runs the interactive picker; the resulting choice is left
// on the controller's selection. Returns whether the operator accepted a
// complete choice.
func RunImagePicker(cat *catalog.Catalog, ctrl *osselect.Controller) (bool, error) {
	model := NewImagePicker(cat, ctrl)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	if picker, ok := final.(ImagePickerModel); ok {
		return picker.Accepted(), nil
	}
	return false, nil
}
