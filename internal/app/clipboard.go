package app

import (
	"bytes"

	"github.com/atotto/clipboard"

	"github.com/treykane/cli-gearing/internal/export"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// copyResultsToClipboard copies a plain-text comparison of the current and
// new setups to the system clipboard.
//
// The new setup is included only when it is complete. The status bar is
// updated with a confirmation or an error if the clipboard write fails or
// the current setup is incomplete.
func (m *Model) copyResultsToClipboard() {
	snap := m.form.Snapshot()
	if !m.comparison.Current.Valid {
		m.status = "Nothing to copy: current setup is incomplete"
		return
	}

	report := export.NewReport(snap.Current, nil, m.unit)
	if m.comparison.Next.Valid {
		report = export.NewReport(snap.Current, &snap.New, m.unit)
	}
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, export.FormatText, report); err != nil {
		m.setStatusError("Could not format results", err)
		return
	}
	if err := writeClipboard(buf.String()); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = "Copied results"
}
