package gearing

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Display precision used across the app.
const (
	MetricPlaces = 3
	TablePlaces  = 2
	DeltaPlaces  = 2
)

// Placeholder is shown in place of an undefined value.
const Placeholder = "—"

// Unit is a display unit for rollout distance.
type Unit string

const (
	UnitMillimetre Unit = "mm"
	UnitCentimetre Unit = "cm"
	UnitInch       Unit = "in"
)

// ParseUnit validates a unit name. An empty value selects millimetres.
func ParseUnit(value string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(value))) {
	case "", UnitMillimetre:
		return UnitMillimetre, nil
	case UnitCentimetre:
		return UnitCentimetre, nil
	case UnitInch:
		return UnitInch, nil
	default:
		return "", fmt.Errorf("unknown unit %q (want mm, cm or in)", value)
	}
}

// FromMillimetres converts a length in mm to u.
func (u Unit) FromMillimetres(mm float64) float64 {
	switch u {
	case UnitCentimetre:
		return mm / 10
	case UnitInch:
		return mm / 25.4
	default:
		return mm
	}
}

// Round rounds v to the given number of decimal places. Non-finite values
// round to 0.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// FormatNumber renders v rounded to places with trailing zeros dropped,
// e.g. 6.240 becomes "6.24".
func FormatNumber(v float64, places int) string {
	return humanize.FtoaWithDigits(Round(v, places), places)
}

// FormatPercent renders a delta such as "+4.17%", or the placeholder when
// undefined.
func FormatPercent(p Percent) string {
	if !p.Valid {
		return Placeholder
	}
	s := FormatNumber(p.Value, DeltaPlaces) + "%"
	if p.Trend() == TrendUp {
		s = "+" + s
	}
	return s
}
