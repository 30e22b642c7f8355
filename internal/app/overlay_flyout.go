package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// flyoutLink is one focusable entry of the info panel. A nil run only
// closes the panel.
type flyoutLink struct {
	label string
	run   func(*Model)
}

var flyoutLinks = []flyoutLink{
	{label: "Formulas", run: (*Model).showFormulasPanel},
	{label: "Copy results", run: (*Model).copyResultsToClipboard},
	{label: "Reset inputs", run: (*Model).resetInputs},
	{label: "Toggle theme", run: (*Model).toggleTheme},
	{label: "Close"},
}

// flyoutHeaderRows is the number of rows above the help viewport: title,
// version, blank, links, blank.
var flyoutHeaderRows = 4 + len(flyoutLinks)

const helpMarkdown = `## Gearing

**Ratio** = spur ÷ pinion

**FDR** (final drive ratio) = ratio × internal ratio

**Rollout** = π × tire ÷ FDR, the distance the car travels per motor
revolution, shown in %[1]s.

With *no transmission* the internal ratio counts as 1. A blank new tire
uses the current tire.

Deltas compare the new setup with the current one. A longer rollout means
more top speed and less punch.

## Keys

| Key | Action |
| --- | --- |
| Tab / Shift+Tab | move between fields |
| Enter, p, s | pick pinion or spur from a table |
| Space, x | toggle no transmission |
| t | toggle theme |
| y | copy results |
| f | show formulas |
| Ctrl+R | clear inputs |
| ?, i | this panel |
| q | quit |
`

// openFlyout slides in the info panel and traps focus inside it.
func (m *Model) openFlyout() {
	m.prevFocus = m.focus
	m.openOverlay(overlayFlyout)
	m.blurInputs()
	m.flyoutFocus = 0
	m.flyoutView.GotoTop()
	m.renderFlyoutContent()
	m.status = "Info: Tab to move, Enter to choose, Esc to close"
}

func (m *Model) handleFlyoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		m.status = "Info panel closed"
		return m, nil
	case "tab", "down", "j":
		m.flyoutFocus = wrapIndex(m.flyoutFocus, 1, len(flyoutLinks))
		return m, nil
	case "shift+tab", "up", "k":
		m.flyoutFocus = wrapIndex(m.flyoutFocus, -1, len(flyoutLinks))
		return m, nil
	case "enter", " ":
		m.activateFlyoutLink(m.flyoutFocus)
		return m, nil
	}

	var cmd tea.Cmd
	m.flyoutView, cmd = m.flyoutView.Update(msg)
	return m, cmd
}

// activateFlyoutLink closes the panel, restoring focus, then runs the link.
func (m *Model) activateFlyoutLink(i int) {
	link := flyoutLinks[clamp(i, 0, len(flyoutLinks)-1)]
	m.closeOverlay()
	m.status = "Info panel closed"
	if link.run != nil {
		link.run(m)
	}
}

func (m *Model) showFormulasPanel() {
	m.showFormulas = true
	m.status = "Showing formulas"
}

// renderFlyoutContent renders the help markdown for the current width and
// theme. Rendering is skipped while the cached output is still valid.
func (m *Model) renderFlyoutContent() {
	width := max(20, m.flyoutView.Width)
	if m.flyoutRendered != "" && m.flyoutRenderedWidth == width {
		return
	}
	m.flyoutRenderedWidth = width
	md := fmt.Sprintf(helpMarkdown, m.unit)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(string(m.theme)),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			m.flyoutRendered = out
			m.flyoutView.SetContent(out)
			return
		}
	}
	appLog.Warn("render help failed", "error", err)
	m.flyoutRendered = md
	m.flyoutView.SetContent(md)
}

func (m *Model) versionLabel() string {
	if m.version == nil {
		return "cli-gearing (dev)"
	}
	return "cli-gearing v" + m.version.String()
}

func (m *Model) renderFlyout(height int) string {
	inner := FlyoutWidth - m.styles.flyout.GetHorizontalFrameSize()

	lines := []string{
		m.styles.title.Render(truncate("Info", inner)),
		m.styles.muted.Render(truncate(m.versionLabel(), inner)),
		"",
	}
	for i, link := range flyoutLinks {
		label := "  " + link.label
		style := m.styles.label
		if i == m.flyoutFocus {
			label = "› " + link.label
			style = m.styles.focused
		}
		lines = append(lines, style.Render(truncate(label, inner)))
	}
	lines = append(lines, "", m.flyoutView.View())

	body := padBlock(strings.Join(lines, "\n"), inner, max(0, height))
	return m.styles.flyout.Render(body)
}

// flyoutPanel renders the panel beside main, taking width from it.
func (m *Model) flyoutPanel(main string, width, height int) string {
	mainWidth := max(0, width-FlyoutWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		padBlock(main, mainWidth, height),
		m.renderFlyout(height),
	)
}
