package app

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-gearing/internal/gearing"
)

// palette is the set of colours one theme is drawn with.
type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	border  lipgloss.Color
	focus   lipgloss.Color
	up      lipgloss.Color
	down    lipgloss.Color
	selectB lipgloss.Color
}

var palettes = map[themeName]palette{
	themeDark: {
		text:    lipgloss.Color("252"),
		muted:   lipgloss.Color("244"),
		accent:  lipgloss.Color("212"),
		border:  lipgloss.Color("62"),
		focus:   lipgloss.Color("204"),
		up:      lipgloss.Color("78"),
		down:    lipgloss.Color("203"),
		selectB: lipgloss.Color("57"),
	},
	themeLight: {
		text:    lipgloss.Color("235"),
		muted:   lipgloss.Color("242"),
		accent:  lipgloss.Color("125"),
		border:  lipgloss.Color("33"),
		focus:   lipgloss.Color("161"),
		up:      lipgloss.Color("28"),
		down:    lipgloss.Color("160"),
		selectB: lipgloss.Color("153"),
	},
}

// styles holds every lipgloss style the views use. It is rebuilt whenever
// the theme changes.
type styles struct {
	pane     lipgloss.Style
	popup    lipgloss.Style
	flyout   lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	muted    lipgloss.Style
	status   lipgloss.Style
	value    lipgloss.Style
	up       lipgloss.Style
	down     lipgloss.Style
}

func newStyles(p palette) styles {
	pane := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1)
	return styles{
		pane:     pane,
		popup:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(p.accent).Padding(0, 1),
		flyout:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(p.accent).Padding(0, 1),
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		label:    lipgloss.NewStyle().Foreground(p.text),
		focused:  lipgloss.NewStyle().Bold(true).Foreground(p.focus),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		status:   lipgloss.NewStyle().Foreground(p.muted),
		value:    lipgloss.NewStyle().Foreground(p.text),
		up:       lipgloss.NewStyle().Foreground(p.up),
		down:     lipgloss.NewStyle().Foreground(p.down),
	}
}

// trendStyle colours a delta by its direction.
func (s styles) trendStyle(t gearing.Trend) lipgloss.Style {
	switch t {
	case gearing.TrendUp:
		return s.up
	case gearing.TrendDown:
		return s.down
	default:
		return s.muted
	}
}

func applyInputTheme(in *textinput.Model, p palette) {
	in.PromptStyle = lipgloss.NewStyle().Foreground(p.muted)
	in.TextStyle = lipgloss.NewStyle().Foreground(p.text)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(p.muted)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(p.focus)
}

func tableStyles(p palette) table.Styles {
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border).
		BorderBottom(true).
		Bold(true).
		Foreground(p.accent)
	st.Cell = st.Cell.Foreground(p.text)
	st.Selected = st.Selected.
		Foreground(p.text).
		Background(p.selectB).
		Bold(true)
	return st
}
