package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-gearing/internal/form"
	"github.com/treykane/cli-gearing/internal/gearing"
)

const labelWidth = 17

// View draws the full UI (header + panes or overlay + status footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footerHeight := m.footerHeightForWidth(m.width)
	layout := m.calculateLayout()

	main := m.renderPanes(layout)
	switch m.overlay {
	case overlayChooser:
		main = m.renderChooserOverlay(m.width, layout.ContentHeight)
	case overlayFlyout:
		main = m.flyoutPanel(main, m.width, layout.ContentHeight)
	}
	main = padBlock(main, m.width, layout.ContentHeight)

	view := m.renderHeader(m.width) + "\n" + main + "\n" + m.renderStatus(m.width, footerHeight)
	return padBlock(view, m.width, m.height)
}

func (m *Model) renderHeader(width int) string {
	title := m.styles.title.Render("RC Gearing")
	meta := m.styles.muted.Render(fmt.Sprintf("  rollout in %s · %s theme", m.unit, m.theme))
	return truncate(" "+title+meta, width)
}

func (m *Model) renderPanes(l LayoutDimensions) string {
	inputs := m.renderInputs(l.InputsWidth)
	results := m.renderResults(l.ResultsWidth)
	if l.SideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, inputs, results)
	}
	return lipgloss.JoinVertical(lipgloss.Left, inputs, results)
}

func (m *Model) renderInputs(width int) string {
	inner := max(0, width-m.styles.pane.GetHorizontalFrameSize())
	lines := []string{m.styles.title.Render("Inputs")}
	for i, field := range fieldOrder {
		switch field {
		case form.FieldCurPinion:
			lines = append(lines, "", m.styles.muted.Render("Current"))
		case form.FieldNewPinion:
			lines = append(lines, "", m.styles.muted.Render("New"))
		}
		lines = append(lines, truncate(m.renderField(i, field), inner))
	}
	return m.styles.pane.Width(max(0, width-m.styles.pane.GetHorizontalBorderSize())).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderField(i int, field form.Field) string {
	marker := "  "
	label := m.styles.label
	if i == m.focus && m.overlay != overlayFlyout {
		marker = "› "
		label = m.styles.focused
	}
	name := label.Render(fmt.Sprintf("%-*s", labelWidth, field.Label()))

	var value string
	switch {
	case field.IsToggle():
		box := "[ ]"
		if m.form.NoTransmission() {
			box = "[x]"
		}
		value = m.styles.value.Render(box)
	case field == form.FieldInternal && m.form.NoTransmission():
		value = m.inputs[i].View() + m.styles.muted.Render(" bypassed")
	default:
		value = m.inputs[i].View()
	}
	if _, ok := field.Gear(); ok {
		value += m.styles.muted.Render(" ⏎")
	}
	return marker + name + value
}

func (m *Model) renderResults(width int) string {
	inner := max(0, width-m.styles.pane.GetHorizontalFrameSize())
	c := m.comparison
	col := lipgloss.NewStyle().Width(10)
	head := lipgloss.NewStyle().Width(14)

	row := func(label string, cur, next, delta string) string {
		return head.Render(label) + col.Render(cur) + col.Render(next) + delta
	}
	metric := func(r gearing.Result, v float64) string {
		if !r.Valid {
			return gearing.Placeholder
		}
		return gearing.FormatNumber(v, gearing.MetricPlaces)
	}
	rollout := func(r gearing.Result) string {
		return metric(r, m.unit.FromMillimetres(r.Rollout))
	}
	delta := func(p gearing.Percent) string {
		return m.styles.trendStyle(p.Trend()).Render(gearing.FormatPercent(p))
	}

	lines := []string{
		m.styles.title.Render("Results"),
		m.styles.muted.Render(row("", "Current", "New", "Change")),
		row("Ratio", metric(c.Current, c.Current.Ratio), metric(c.Next, c.Next.Ratio), ""),
		row("FDR", metric(c.Current, c.Current.FDR), metric(c.Next, c.Next.FDR), delta(c.FDRDelta)),
		row("Rollout ("+string(m.unit)+")", rollout(c.Current), rollout(c.Next), delta(c.RolloutDelta)),
	}
	if m.showFormulas {
		lines = append(lines, "", m.styles.muted.Render("Formulas (current)"))
		lines = append(lines, m.formulaLines()...)
	}
	for i, line := range lines {
		lines[i] = truncate(line, inner)
	}
	return m.styles.pane.Width(max(0, width-m.styles.pane.GetHorizontalBorderSize())).Render(strings.Join(lines, "\n"))
}

// formulaLines spells out the arithmetic for the current setup.
func (m *Model) formulaLines() []string {
	s := m.form.Snapshot().Current
	r := m.comparison.Current
	n := func(v float64) string {
		if !r.Valid {
			return gearing.Placeholder
		}
		return gearing.FormatNumber(v, gearing.MetricPlaces)
	}
	return []string{
		fmt.Sprintf("ratio   = spur ÷ pinion = %s ÷ %s = %s",
			countOrPlaceholder(s.Spur), countOrPlaceholder(s.Pinion), n(r.Ratio)),
		fmt.Sprintf("FDR     = ratio × internal = %s × %s = %s",
			n(r.Ratio), n(s.Internal), n(r.FDR)),
		fmt.Sprintf("rollout = π × tire ÷ FDR = π × %s ÷ %s = %s mm",
			n(s.Tire), n(r.FDR), n(r.Rollout)),
	}
}
