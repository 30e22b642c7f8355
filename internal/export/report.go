// Package export renders comparisons and chooser tables for the
// non-interactive command line.
package export

import (
	"fmt"
	"strings"

	"github.com/treykane/cli-gearing/internal/chooser"
	"github.com/treykane/cli-gearing/internal/gearing"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name. An empty value selects text.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, yaml or csv)", value)
	}
}

// SetupReport is one evaluated setup. Metric pointers are nil when the setup
// is invalid.
type SetupReport struct {
	Pinion   int      `json:"pinion" yaml:"pinion"`
	Spur     int      `json:"spur" yaml:"spur"`
	Tire     float64  `json:"tire_mm" yaml:"tire_mm"`
	Internal float64  `json:"internal_ratio" yaml:"internal_ratio"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Ratio    *float64 `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	FDR      *float64 `json:"fdr,omitempty" yaml:"fdr,omitempty"`
	Rollout  *float64 `json:"rollout,omitempty" yaml:"rollout,omitempty"`
}

// Report is a serialisable comparison. Rollout values are in Unit.
type Report struct {
	Unit         gearing.Unit `json:"unit" yaml:"unit"`
	Current      SetupReport  `json:"current" yaml:"current"`
	New          *SetupReport `json:"new,omitempty" yaml:"new,omitempty"`
	FDRDelta     *float64     `json:"fdr_delta_pct,omitempty" yaml:"fdr_delta_pct,omitempty"`
	RolloutDelta *float64     `json:"rollout_delta_pct,omitempty" yaml:"rollout_delta_pct,omitempty"`
}

// NewReport evaluates current and, when next is non-nil, the new setup.
func NewReport(current gearing.Setup, next *gearing.Setup, unit gearing.Unit) Report {
	r := Report{Unit: unit}
	if next == nil {
		r.Current = setupReport(current, gearing.Compute(current), unit)
		return r
	}
	c := gearing.Compare(current, *next)
	r.Current = setupReport(current, c.Current, unit)
	n := setupReport(*next, c.Next, unit)
	r.New = &n
	r.FDRDelta = percent(c.FDRDelta)
	r.RolloutDelta = percent(c.RolloutDelta)
	return r
}

func setupReport(s gearing.Setup, res gearing.Result, unit gearing.Unit) SetupReport {
	sr := SetupReport{
		Pinion:   s.Pinion,
		Spur:     s.Spur,
		Tire:     s.Tire,
		Internal: s.Internal,
		Valid:    res.Valid,
	}
	if res.Valid {
		sr.Ratio = rounded(res.Ratio, gearing.MetricPlaces)
		sr.FDR = rounded(res.FDR, gearing.MetricPlaces)
		sr.Rollout = rounded(unit.FromMillimetres(res.Rollout), gearing.MetricPlaces)
	}
	return sr
}

func percent(p gearing.Percent) *float64 {
	if !p.Valid {
		return nil
	}
	return rounded(p.Value, gearing.DeltaPlaces)
}

func rounded(v float64, places int) *float64 {
	r := gearing.Round(v, places)
	return &r
}

// TableRow is one serialisable chooser row.
type TableRow struct {
	Count   int      `json:"count" yaml:"count"`
	Ratio   *float64 `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	FDR     *float64 `json:"fdr,omitempty" yaml:"fdr,omitempty"`
	Rollout *float64 `json:"rollout,omitempty" yaml:"rollout,omitempty"`
}

// Table is a serialisable chooser scan.
type Table struct {
	Gear gearing.Gear `json:"-" yaml:"-"`
	Name string       `json:"gear" yaml:"gear"`
	Unit gearing.Unit `json:"unit" yaml:"unit"`
	Rows []TableRow   `json:"rows" yaml:"rows"`

	cells [][]string
}

// NewTable converts chooser rows for output.
func NewTable(g gearing.Gear, rows []chooser.Row, unit gearing.Unit) Table {
	t := Table{Gear: g, Name: g.String(), Unit: unit, Rows: make([]TableRow, 0, len(rows))}
	for _, row := range rows {
		tr := TableRow{Count: row.Count}
		if row.Valid {
			tr.Ratio = rounded(row.Ratio, gearing.TablePlaces)
			tr.FDR = rounded(row.FDR, gearing.TablePlaces)
			tr.Rollout = rounded(unit.FromMillimetres(row.Rollout), gearing.TablePlaces)
		}
		t.Rows = append(t.Rows, tr)
		t.cells = append(t.cells, row.Cells(unit))
	}
	return t
}

// Headers returns the column titles of the table.
func (t Table) Headers() []string {
	return []string{t.Name, "ratio", "fdr", "rollout (" + string(t.Unit) + ")"}
}
