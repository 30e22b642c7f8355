// Package form holds the calculator inputs as an explicit state value.
//
// A Form owns the eight raw input strings (as typed), notifies listeners
// whenever one changes, and converts itself into gearing setups on demand.
package form

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ErikKalkoken/go-set"
	"github.com/maniartech/signals"

	"github.com/treykane/cli-gearing/internal/gearing"
)

// Field identifies one input of the form.
type Field int

const (
	FieldInternal Field = iota
	FieldNoTransmission
	FieldCurPinion
	FieldCurSpur
	FieldCurTire
	FieldNewPinion
	FieldNewSpur
	FieldNewTire
	fieldCount
)

// Side selects the current or the new setup.
type Side int

const (
	SideCurrent Side = iota
	SideNew
)

func (s Side) String() string {
	if s == SideNew {
		return "new"
	}
	return "current"
}

// ParseSide converts "cur"/"current" or "new" to a Side.
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "cur", "current":
		return SideCurrent, nil
	case "new":
		return SideNew, nil
	default:
		return 0, fmt.Errorf("unknown side %q (want current or new)", value)
	}
}

var fieldKeys = [fieldCount]string{
	FieldInternal:       "internalRatio",
	FieldNoTransmission: "noTransmission",
	FieldCurPinion:      "curPinion",
	FieldCurSpur:        "curSpur",
	FieldCurTire:        "curTire",
	FieldNewPinion:      "newPinion",
	FieldNewSpur:        "newSpur",
	FieldNewTire:        "newTire",
}

var fieldLabels = [fieldCount]string{
	FieldInternal:       "Internal ratio",
	FieldNoTransmission: "No transmission",
	FieldCurPinion:      "Pinion",
	FieldCurSpur:        "Spur",
	FieldCurTire:        "Tire (mm)",
	FieldNewPinion:      "Pinion",
	FieldNewSpur:        "Spur",
	FieldNewTire:        "Tire (mm)",
}

// KeyPrefix namespaces the persisted keys.
const KeyPrefix = "gearing.speedrollout."

// Fields returns every field in display order.
func Fields() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}

// Key is the persistent store key of f.
func (f Field) Key() string {
	return KeyPrefix + fieldKeys[f]
}

// Label is the short display label of f.
func (f Field) Label() string {
	return fieldLabels[f]
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldKeys[f]
}

// Side reports which setup f belongs to. Shared fields report false.
func (f Field) Side() (Side, bool) {
	switch f {
	case FieldCurPinion, FieldCurSpur, FieldCurTire:
		return SideCurrent, true
	case FieldNewPinion, FieldNewSpur, FieldNewTire:
		return SideNew, true
	default:
		return 0, false
	}
}

// Gear reports which gear f holds, if any.
func (f Field) Gear() (gearing.Gear, bool) {
	switch f {
	case FieldCurPinion, FieldNewPinion:
		return gearing.GearPinion, true
	case FieldCurSpur, FieldNewSpur:
		return gearing.GearSpur, true
	default:
		return 0, false
	}
}

// IsToggle reports whether f is a boolean field.
func (f Field) IsToggle() bool {
	return f == FieldNoTransmission
}

// GearField returns the field holding gear g of side.
func GearField(side Side, g gearing.Gear) Field {
	switch {
	case side == SideCurrent && g == gearing.GearPinion:
		return FieldCurPinion
	case side == SideCurrent:
		return FieldCurSpur
	case g == gearing.GearPinion:
		return FieldNewPinion
	default:
		return FieldNewSpur
	}
}

// TireField returns the tire field of side.
func TireField(side Side) Field {
	if side == SideNew {
		return FieldNewTire
	}
	return FieldCurTire
}

// Inputs returns the fields a setup of side is computed from, minus except.
// The new side includes the current tire because a blank new tire falls back
// to it.
func Inputs(side Side, except ...Field) set.Set[Field] {
	fields := []Field{
		FieldInternal,
		FieldNoTransmission,
		GearField(side, gearing.GearPinion),
		GearField(side, gearing.GearSpur),
		TireField(side),
	}
	if side == SideNew {
		fields = append(fields, FieldCurTire)
	}
	fields = slices.DeleteFunc(fields, func(f Field) bool {
		return slices.Contains(except, f)
	})
	return set.Of(fields...)
}

// Form is the mutable input state. Use New to create one.
type Form struct {
	values  [fieldCount]string
	changed signals.Signal[Field]
}

// New returns an empty form.
func New() *Form {
	return &Form{changed: signals.NewSync[Field]()}
}

// Value returns the raw value of field.
func (f *Form) Value(field Field) string {
	return f.values[field]
}

// Set stores a raw value and notifies listeners if it changed.
func (f *Form) Set(field Field, value string) {
	if f.values[field] == value {
		return
	}
	f.values[field] = value
	f.changed.Emit(context.Background(), field)
}

// NoTransmission reports whether the internal ratio is bypassed.
func (f *Form) NoTransmission() bool {
	return f.values[FieldNoTransmission] == "true"
}

// SetNoTransmission sets the bypass flag.
func (f *Form) SetNoTransmission(on bool) {
	f.Set(FieldNoTransmission, strconv.FormatBool(on))
}

// OnChange registers fn to run synchronously after every change. The key
// allows removing the listener with RemoveListener.
func (f *Form) OnChange(key string, fn func(Field)) {
	f.changed.AddListener(func(_ context.Context, field Field) {
		fn(field)
	}, key)
}

// RemoveListener unregisters the listener added under key.
func (f *Form) RemoveListener(key string) {
	f.changed.RemoveListener(key)
}

// Snapshot is the parsed view of a form at one point in time.
type Snapshot struct {
	Current        gearing.Setup
	New            gearing.Setup
	Internal       float64 // raw internal ratio as entered
	NoTransmission bool
}

// Snapshot parses the raw values. Blank or malformed numbers become 0, which
// makes the affected setup invalid.
func (f *Form) Snapshot() Snapshot {
	internal := parseFloat(f.values[FieldInternal])
	noTrans := f.NoTransmission()
	eff := gearing.EffectiveInternal(internal, noTrans)

	cur := gearing.Setup{
		Pinion:   parseInt(f.values[FieldCurPinion]),
		Spur:     parseInt(f.values[FieldCurSpur]),
		Tire:     parseFloat(f.values[FieldCurTire]),
		Internal: eff,
	}
	next := gearing.Setup{
		Pinion:   parseInt(f.values[FieldNewPinion]),
		Spur:     parseInt(f.values[FieldNewSpur]),
		Tire:     parseFloat(f.values[FieldNewTire]),
		Internal: eff,
	}
	if strings.TrimSpace(f.values[FieldNewTire]) == "" {
		next.Tire = cur.Tire
	}
	return Snapshot{Current: cur, New: next, Internal: internal, NoTransmission: noTrans}
}

// Setup returns the setup of side.
func (s Snapshot) Setup(side Side) gearing.Setup {
	if side == SideNew {
		return s.New
	}
	return s.Current
}

// Compare evaluates both setups.
func (s Snapshot) Compare() gearing.Comparison {
	return gearing.Compare(s.Current, s.New)
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return v
}
