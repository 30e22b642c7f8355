package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/treykane/cli-gearing/internal/gearing"
)

var reportHeaders = []string{
	"setup",
	"pinion",
	"spur",
	"tire_mm",
	"internal_ratio",
	"ratio",
	"fdr",
	"rollout",
	"unit",
	"fdr_delta_pct",
	"rollout_delta_pct",
}

// WriteReport encodes r to w in format f.
func WriteReport(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatCSV:
		return writeReportCSV(w, r)
	default:
		return writeReportText(w, r)
	}
}

// WriteTable encodes t to w in format f.
func WriteTable(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, t)
	case FormatYAML:
		return writeYAML(w, t)
	case FormatCSV:
		return writeTableCSV(w, t)
	default:
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(t.Headers()...).
			Rows(t.cells...)
		if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}

func writeReportText(w io.Writer, r Report) error {
	var err error
	line := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format+"\n", args...)
		}
	}
	setupLines := func(title string, s SetupReport) {
		line("%s: pinion %d, spur %d, tire %s mm, internal %s",
			title, s.Pinion, s.Spur, textNumber(&s.Tire), textNumber(&s.Internal))
		line("  ratio    %s", textNumber(s.Ratio))
		line("  fdr      %s", textNumber(s.FDR))
		line("  rollout  %s %s", textNumber(s.Rollout), r.Unit)
	}

	setupLines("Current", r.Current)
	if r.New != nil {
		setupLines("New", *r.New)
		line("Change: fdr %s, rollout %s", textPercent(r.FDRDelta), textPercent(r.RolloutDelta))
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeReportCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	rows := [][]string{csvSetup("current", r.Current, r.Unit, nil, nil)}
	if r.New != nil {
		rows = append(rows, csvSetup("new", *r.New, r.Unit, r.FDRDelta, r.RolloutDelta))
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvSetup(name string, s SetupReport, unit gearing.Unit, fdrDelta, rolloutDelta *float64) []string {
	return []string{
		name,
		strconv.Itoa(s.Pinion),
		strconv.Itoa(s.Spur),
		csvNumber(&s.Tire),
		csvNumber(&s.Internal),
		csvNumber(s.Ratio),
		csvNumber(s.FDR),
		csvNumber(s.Rollout),
		string(unit),
		csvNumber(fdrDelta),
		csvNumber(rolloutDelta),
	}
}

func writeTableCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{t.Name, "ratio", "fdr", "rollout", "unit"}); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range t.Rows {
		rec := []string{
			strconv.Itoa(row.Count),
			csvNumber(row.Ratio),
			csvNumber(row.FDR),
			csvNumber(row.Rollout),
			string(t.Unit),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// csvNumber leaves undefined values empty so spreadsheets treat them as blank.
func csvNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func textNumber(v *float64) string {
	if v == nil {
		return gearing.Placeholder
	}
	return gearing.FormatNumber(*v, gearing.MetricPlaces)
}

func textPercent(v *float64) string {
	if v == nil {
		return gearing.Placeholder
	}
	return gearing.FormatPercent(gearing.Percent{Value: *v, Valid: true})
}
