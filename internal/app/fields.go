package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gearing/internal/form"
)

// fieldOrder is the Tab order of the main form.
var fieldOrder = [...]form.Field{
	form.FieldInternal,
	form.FieldNoTransmission,
	form.FieldCurPinion,
	form.FieldCurSpur,
	form.FieldCurTire,
	form.FieldNewPinion,
	form.FieldNewSpur,
	form.FieldNewTire,
}

func indexOfField(f form.Field) int {
	for i, field := range fieldOrder {
		if field == f {
			return i
		}
	}
	return 0
}

func newFieldInput(f form.Field) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = InputCharLimit
	in.Width = InputWidth
	switch f {
	case form.FieldNewTire:
		in.Placeholder = "= current"
	case form.FieldInternal:
		in.Placeholder = "e.g. 2.6"
	default:
		in.Placeholder = "—"
	}
	return in
}

// focusedInput returns the text input under focus, or nil on the toggle.
func (m *Model) focusedInput() *textinput.Model {
	if fieldOrder[m.focus].IsToggle() {
		return nil
	}
	return &m.inputs[m.focus]
}

// setFocus moves focus to index i, blurring the previous input.
func (m *Model) setFocus(i int) tea.Cmd {
	m.blurInputs()
	m.focus = clamp(i, 0, len(fieldOrder)-1)
	if in := m.focusedInput(); in != nil {
		in.CursorEnd()
		return in.Focus()
	}
	return nil
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// updateFocusedInput forwards an editing key to the focused input and
// publishes the new value to the form.
func (m *Model) updateFocusedInput(msg tea.KeyMsg) tea.Cmd {
	in := m.focusedInput()
	if in == nil || m.shouldIgnoreInput(msg) {
		return nil
	}
	if msg.Type == tea.KeyRunes && !numericRunes(msg.Runes) {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	m.form.Set(fieldOrder[m.focus], in.Value())
	return cmd
}

// syncInputs copies form values into inputs that differ, e.g. after a chooser
// pick or a reset.
func (m *Model) syncInputs() {
	for i, field := range fieldOrder {
		if field.IsToggle() {
			continue
		}
		if v := m.form.Value(field); m.inputs[i].Value() != v {
			m.inputs[i].SetValue(v)
		}
	}
}

// onFormChange is the form listener: recompute, persist, refresh the chooser.
func (m *Model) onFormChange(field form.Field) {
	m.syncInputs()
	m.comparison = m.form.Snapshot().Compare()
	m.persist(field)
	// Un-bypassing makes the internal ratio live again.
	if field == form.FieldNoTransmission && !m.form.NoTransmission() {
		m.persist(form.FieldInternal)
	}
	if m.isOverlay(overlayChooser) && m.chooser.Upstream().Contains(field) {
		appLog.Debug("refreshing chooser", "field", field, "chooser", m.chooser.Title())
		m.refreshChooserRows()
	}
}

func (m *Model) persist(field form.Field) {
	if m.kv == nil {
		return
	}
	if err := m.form.Persist(m.kv, field); err != nil {
		m.setStatusWarn("Could not save inputs", err, "field", field.String())
	}
}

func (m *Model) toggleNoTransmission() {
	m.form.SetNoTransmission(!m.form.NoTransmission())
	if m.form.NoTransmission() {
		m.status = "No transmission: internal ratio bypassed"
	} else {
		m.status = "Internal ratio restored"
	}
}

func (m *Model) resetInputs() {
	m.form.Reset()
	m.status = "Inputs cleared"
}

// numericRunes reports whether every rune can appear in a number.
func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if !strings.ContainsRune("0123456789.-", r) {
			return false
		}
	}
	return len(runes) > 0
}

// shouldIgnoreInput drops terminal replies (such as the background colour
// report triggered by theme detection) that arrive as key runes.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	seq := msg.String()
	if strings.Contains(seq, "rgb:") || containsControlRunes(seq) {
		appLog.Debug("ignored terminal input", "sequence", seq)
		return true
	}
	return false
}

func containsControlRunes(sequence string) bool {
	for _, r := range sequence {
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}
