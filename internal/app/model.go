// Package app implements the interactive gearing calculator.
//
// The Model owns a form.Form and subscribes to its change signal: every
// edit (typed, picked from the chooser, or reset from the info panel)
// recomputes the comparison, persists the field, and refreshes an open
// chooser whose rows depend on it.
package app

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-version"

	"github.com/treykane/cli-gearing/internal/chooser"
	"github.com/treykane/cli-gearing/internal/form"
	"github.com/treykane/cli-gearing/internal/gearing"
	"github.com/treykane/cli-gearing/internal/store"
)

// overlayMode selects which popup, if any, has the keyboard.
type overlayMode int

const (
	overlayNone overlayMode = iota
	overlayChooser
	overlayFlyout
)

// formListenerKey identifies the model's subscription on the form signal.
const formListenerKey = "app"

// Options configures New.
type Options struct {
	// Store receives every input change. Nil disables persistence.
	Store store.KV
	// Unit is the rollout display unit.
	Unit gearing.Unit
	// Theme is the configured theme: auto, light or dark.
	Theme string
	// Version is shown in the info panel.
	Version *version.Version
	// DarkBackground reports the terminal background for the auto theme.
	// Defaults to lipgloss.HasDarkBackground.
	DarkBackground func() bool
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	form       *form.Form
	comparison gearing.Comparison
	kv         store.KV
	unit       gearing.Unit
	version    *version.Version

	// Inputs, indexed by form.Field. The toggle has no text input.
	inputs [len(fieldOrder)]textinput.Model
	focus  int

	overlay overlayMode
	status  string

	// Chooser overlay
	chooser      chooser.State
	chooserRows  []chooser.Row
	chooserTable table.Model

	// Info panel
	flyoutFocus         int
	prevFocus           int
	flyoutView          viewport.Model
	flyoutRendered      string
	flyoutRenderedWidth int
	showFormulas        bool

	theme  themeName
	styles styles

	width  int
	height int
}

// New builds the model, restores saved inputs and subscribes to form changes.
func New(opts Options) *Model {
	unit := opts.Unit
	if unit == "" {
		unit = gearing.UnitMillimetre
	}
	detect := opts.DarkBackground
	if detect == nil {
		detect = lipgloss.HasDarkBackground
	}

	m := &Model{
		form:    form.New(),
		kv:      opts.Store,
		unit:    unit,
		version: opts.Version,
		chooserTable: table.New(
			table.WithFocused(true),
			table.WithHeight(ChooserPopupHeight),
		),
		flyoutView: viewport.New(0, 0),
		status:     "Ready",
	}
	for i, field := range fieldOrder {
		m.inputs[i] = newFieldInput(field)
	}
	if m.kv != nil {
		m.form.Restore(m.kv)
	}
	m.syncInputs()
	m.comparison = m.form.Snapshot().Compare()
	m.applyTheme(resolveTheme(m.kv, opts.Theme, detect))
	m.form.OnChange(formListenerKey, m.onFormChange)
	m.setFocus(indexOfField(form.FieldCurPinion))
	return m
}

// Init starts the cursor blink of the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Close unsubscribes the model from its form.
func (m *Model) Close() {
	m.form.RemoveListener(formListenerKey)
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout(m.calculateLayout())
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.overlay {
		case overlayChooser:
			return m.handleChooserKey(msg)
		case overlayFlyout:
			return m.handleFlyoutKey(msg)
		default:
			return m.handleKey(msg)
		}
	}
	var cmd tea.Cmd
	if in := m.focusedInput(); in != nil {
		*in, cmd = in.Update(msg)
	}
	return m, cmd
}

// handleKey routes key presses on the main form.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := fieldOrder[m.focus]

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "tab", "down":
		return m, m.setFocus(wrapIndex(m.focus, 1, len(fieldOrder)))
	case "shift+tab", "up":
		return m, m.setFocus(wrapIndex(m.focus, -1, len(fieldOrder)))
	case "enter":
		if g, ok := field.Gear(); ok {
			m.openChooser(g, fieldSide(field))
			return m, nil
		}
		if field.IsToggle() {
			m.toggleNoTransmission()
			return m, nil
		}
		return m, m.setFocus(wrapIndex(m.focus, 1, len(fieldOrder)))
	case " ", "x":
		if field.IsToggle() {
			m.toggleNoTransmission()
		}
		return m, nil
	case "p":
		m.openChooser(gearing.GearPinion, fieldSide(field))
		return m, nil
	case "s":
		m.openChooser(gearing.GearSpur, fieldSide(field))
		return m, nil
	case "t":
		m.toggleTheme()
		return m, nil
	case "?", "i":
		m.openFlyout()
		return m, nil
	case "y":
		m.copyResultsToClipboard()
		return m, nil
	case "f":
		m.showFormulas = !m.showFormulas
		return m, nil
	case "ctrl+r":
		m.resetInputs()
		return m, nil
	}

	return m, m.updateFocusedInput(msg)
}

// fieldSide returns the setup a field belongs to; shared fields act on the
// current setup.
func fieldSide(f form.Field) form.Side {
	side, _ := f.Side()
	return side
}
