// Package chooser builds the gear-count picker: one row per candidate tooth
// count with the counterpart gear, tire and internal ratio held fixed.
package chooser

import (
	"fmt"
	"strconv"

	"github.com/ErikKalkoken/go-set"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/treykane/cli-gearing/internal/form"
	"github.com/treykane/cli-gearing/internal/gearing"
)

// Range is an inclusive tooth-count scan range.
type Range struct {
	Min int
	Max int
}

// Scan ranges offered by the picker.
var (
	PinionRange = Range{Min: 5, Max: 70}
	SpurRange   = Range{Min: 20, Max: 160}
)

// RangeFor returns the scan range of g.
func RangeFor(g gearing.Gear) Range {
	if g == gearing.GearSpur {
		return SpurRange
	}
	return PinionRange
}

// Len returns the number of counts in r.
func (r Range) Len() int {
	return r.Max - r.Min + 1
}

// Contains reports whether count lies within r.
func (r Range) Contains(count int) bool {
	return count >= r.Min && count <= r.Max
}

// State says which gear of which setup is being chosen.
type State struct {
	Gear gearing.Gear
	Side form.Side
}

// Target returns the form field a selection is written to.
func (s State) Target() form.Field {
	return form.GearField(s.Side, s.Gear)
}

// Title returns a heading such as "Choose Pinion (current)".
func (s State) Title() string {
	return fmt.Sprintf("Choose %s (%s)", cases.Title(language.English).String(s.Gear.String()), s.Side)
}

// Upstream returns the fields whose change alters the rows.
func (s State) Upstream() set.Set[form.Field] {
	return form.Inputs(s.Side, s.Target())
}

// Row is one candidate count and the metrics it produces.
type Row struct {
	Count int
	gearing.Result
}

// Cells renders the row for a table: count, ratio, FDR and rollout in unit.
// Undefined metrics render as the placeholder.
func (r Row) Cells(unit gearing.Unit) []string {
	count := strconv.Itoa(r.Count)
	if !r.Valid {
		return []string{count, gearing.Placeholder, gearing.Placeholder, gearing.Placeholder}
	}
	return []string{
		count,
		gearing.FormatNumber(r.Ratio, gearing.TablePlaces),
		gearing.FormatNumber(r.FDR, gearing.TablePlaces),
		gearing.FormatNumber(unit.FromMillimetres(r.Rollout), gearing.TablePlaces),
	}
}

// Rows computes one row per count in the scan range of s.Gear, substituting
// the count into the setup of s.Side.
func Rows(s State, snap form.Snapshot) []Row {
	base := snap.Setup(s.Side)
	r := RangeFor(s.Gear)
	rows := make([]Row, 0, r.Len())
	for count := r.Min; count <= r.Max; count++ {
		rows = append(rows, Row{
			Count:  count,
			Result: gearing.Compute(base.WithGear(s.Gear, count)),
		})
	}
	return rows
}

// IndexOf returns the index of the row for count, or -1.
func IndexOf(rows []Row, count int) int {
	for i, row := range rows {
		if row.Count == count {
			return i
		}
	}
	return -1
}

// Apply writes count into the target field of s. Form listeners recompute
// and persist.
func Apply(f *form.Form, s State, count int) {
	f.Set(s.Target(), strconv.Itoa(count))
}
