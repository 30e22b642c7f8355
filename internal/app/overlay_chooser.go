package app

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-gearing/internal/chooser"
	"github.com/treykane/cli-gearing/internal/form"
	"github.com/treykane/cli-gearing/internal/gearing"
)

// openChooser shows the picker for gear g of side with the cursor on the
// count currently entered.
func (m *Model) openChooser(g gearing.Gear, side form.Side) {
	m.openOverlay(overlayChooser)
	m.chooser = chooser.State{Gear: g, Side: side}
	m.chooserTable.SetColumns(m.chooserColumns())
	m.refreshChooserRows()

	current := m.form.Snapshot().Setup(side).Gear(g)
	if i := chooser.IndexOf(m.chooserRows, current); i >= 0 {
		m.chooserTable.SetCursor(i)
	} else {
		m.chooserTable.SetCursor(0)
	}
	m.chooserTable.Focus()
	m.status = m.chooser.Title() + ": Enter to pick, Esc to cancel"
}

// refreshChooserRows recomputes the rows and keeps the cursor on the same
// count.
func (m *Model) refreshChooserRows() {
	var selected int
	if len(m.chooserRows) > 0 {
		selected = m.chooserRows[clamp(m.chooserTable.Cursor(), 0, len(m.chooserRows)-1)].Count
	}
	m.chooserRows = chooser.Rows(m.chooser, m.form.Snapshot())

	rows := make([]table.Row, 0, len(m.chooserRows))
	for _, row := range m.chooserRows {
		rows = append(rows, table.Row(row.Cells(m.unit)))
	}
	m.chooserTable.SetRows(rows)
	if i := chooser.IndexOf(m.chooserRows, selected); i >= 0 {
		m.chooserTable.SetCursor(i)
	}
}

func (m *Model) chooserColumns() []table.Column {
	return []table.Column{
		{Title: m.chooser.Gear.String(), Width: 7},
		{Title: "Ratio", Width: 8},
		{Title: "FDR", Width: 8},
		{Title: "Rollout " + string(m.unit), Width: 11},
	}
}

func (m *Model) handleChooserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, selectPressed, closePressed, handled := handlePopupListNav(msg, m.chooserTable.Cursor(), len(m.chooserRows))
	switch {
	case closePressed:
		m.closeOverlay()
		m.status = "Chooser closed"
		return m, nil
	case selectPressed:
		m.pickChooserRow(next)
		return m, nil
	case handled:
		m.chooserTable.SetCursor(next)
		return m, nil
	}

	// Paging keys fall through to the table's own key map.
	var cmd tea.Cmd
	m.chooserTable, cmd = m.chooserTable.Update(msg)
	return m, cmd
}

func (m *Model) pickChooserRow(i int) {
	if i < 0 || i >= len(m.chooserRows) {
		return
	}
	st := m.chooser
	count := m.chooserRows[i].Count
	m.closeOverlay()
	chooser.Apply(m.form, st, count)
	m.setFocus(indexOfField(st.Target()))
	m.status = fmt.Sprintf("%s %s set to %d", st.Side, st.Gear, count)
}

func (m *Model) renderChooserOverlay(width, height int) string {
	popupWidth, _ := chooserPopupSize(width, height)

	fixed := m.form.Snapshot().Setup(m.chooser.Side)
	counterpart := m.chooser.Gear.Counterpart()
	sub := fmt.Sprintf("%s %s", counterpart, countOrPlaceholder(fixed.Gear(counterpart)))

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(m.chooser.Title()),
		m.styles.muted.Render(truncate(sub, popupWidth-4)),
		m.chooserTable.View(),
	)
	popup := m.styles.popup.Width(popupWidth - m.styles.popup.GetHorizontalBorderSize()).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

// chooserPopupSize returns the popup's outer size for a content area.
func chooserPopupSize(width, height int) (int, int) {
	return min(52, max(40, width-ChooserPopupPadding)), min(ChooserPopupHeight, max(8, height-2))
}

func countOrPlaceholder(n int) string {
	if n <= 0 {
		return gearing.Placeholder
	}
	return strconv.Itoa(n)
}
