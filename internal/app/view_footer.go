package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, m.styles.status.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs the help and status segments into at most rowLimit
// rows. The bool reports whether everything fit.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	segments := make([]string, 0, len(help)+1)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if m.status != "" {
		segments = append(segments, "Status: "+m.status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		segment := strings.TrimSpace(seg)
		if segment == "" {
			continue
		}
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		rows[rowIndex] = truncateWithEllipsis(candidate, width)
		break
	}
	return rows, fit
}

func (m *Model) statusHelpSegments() []string {
	switch m.overlay {
	case overlayChooser:
		return []string{"Chooser", "↑/↓ move", "PgUp/PgDn page", "Enter pick", "Esc cancel"}
	case overlayFlyout:
		return []string{"Info", "Tab/Shift+Tab move", "Enter choose", "PgUp/PgDn scroll", "Esc close"}
	}
	help := []string{"Tab/Shift+Tab move"}
	if fieldOrder[m.focus].IsToggle() {
		help = append(help, "Space toggle")
	} else if _, ok := fieldOrder[m.focus].Gear(); ok {
		help = append(help, "Enter choose")
	}
	return append(help, "p/s pick gear", "t theme", "y copy", "? info", "q quit")
}
