// Package cli implements the non-interactive subcommands.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/treykane/cli-gearing/internal/export"
	"github.com/treykane/cli-gearing/internal/gearing"
)

// ErrUsage marks invalid arguments. Callers exit with status 2.
var ErrUsage = errors.New("usage error")

// CalcConfig holds the options of the calc subcommand.
type CalcConfig struct {
	Pinion         int
	Spur           int
	Tire           float64
	Internal       float64
	NoTransmission bool

	NewPinion int
	NewSpur   int
	NewTire   float64

	Format export.Format
	Unit   gearing.Unit
}

// HasNew reports whether any new-setup flag was given.
func (c CalcConfig) HasNew() bool {
	return c.NewPinion != 0 || c.NewSpur != 0 || c.NewTire != 0
}

// Current returns the current setup.
func (c CalcConfig) Current() gearing.Setup {
	return gearing.Setup{
		Pinion:   c.Pinion,
		Spur:     c.Spur,
		Tire:     c.Tire,
		Internal: gearing.EffectiveInternal(c.Internal, c.NoTransmission),
	}
}

// Next returns the new setup. Omitted values default to the current ones,
// so "-new-pinion 21" alone compares a one-tooth pinion change.
func (c CalcConfig) Next() gearing.Setup {
	s := c.Current()
	if c.NewPinion != 0 {
		s.Pinion = c.NewPinion
	}
	if c.NewSpur != 0 {
		s.Spur = c.NewSpur
	}
	if c.NewTire != 0 {
		s.Tire = c.NewTire
	}
	return s
}

// TableConfig holds the options of the table subcommand.
type TableConfig struct {
	Gear     gearing.Gear
	Fixed    int
	Tire     float64
	Internal float64
	Format   export.Format
	Unit     gearing.Unit
}

// ParseCalc parses the arguments following "calc".
func ParseCalc(args []string, stderr io.Writer) (*CalcConfig, error) {
	cfg := &CalcConfig{}
	var format, unit string

	fs := flag.NewFlagSet("gearing calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Pinion, "pinion", 0, "Current pinion tooth count (required)")
	fs.IntVar(&cfg.Spur, "spur", 0, "Current spur tooth count (required)")
	fs.Float64Var(&cfg.Tire, "tire", 0, "Current tire diameter in mm (required)")
	fs.Float64Var(&cfg.Internal, "internal", 0, "Internal gearbox ratio")
	fs.BoolVar(&cfg.NoTransmission, "no-transmission", false, "Bypass the internal ratio (use 1)")
	fs.IntVar(&cfg.NewPinion, "new-pinion", 0, "New pinion tooth count")
	fs.IntVar(&cfg.NewSpur, "new-spur", 0, "New spur tooth count")
	fs.Float64Var(&cfg.NewTire, "new-tire", 0, "New tire diameter in mm")
	fs.StringVar(&format, "format", "text", "Output format: text, json, yaml or csv")
	fs.StringVar(&unit, "unit", "mm", "Rollout unit: mm, cm or in")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	var err error
	if cfg.Format, cfg.Unit, err = parseOutput(format, unit); err != nil {
		return nil, err
	}

	switch {
	case cfg.Pinion <= 0:
		return nil, usagef("-pinion must be a positive tooth count")
	case cfg.Spur <= 0:
		return nil, usagef("-spur must be a positive tooth count")
	case !(cfg.Tire > 0):
		return nil, usagef("-tire must be a positive diameter")
	case !cfg.NoTransmission && !(cfg.Internal > 0):
		return nil, usagef("-internal must be positive unless -no-transmission is set")
	case cfg.NewPinion < 0 || cfg.NewSpur < 0 || cfg.NewTire < 0:
		return nil, usagef("new setup values must be positive")
	}
	return cfg, nil
}

// ParseTable parses the arguments following "table".
func ParseTable(args []string, stderr io.Writer) (*TableConfig, error) {
	cfg := &TableConfig{}
	var gear, format, unit string

	fs := flag.NewFlagSet("gearing table", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&gear, "gear", "pinion", "Gear to scan: pinion or spur")
	fs.IntVar(&cfg.Fixed, "fixed", 0, "Tooth count of the other gear (required)")
	fs.Float64Var(&cfg.Tire, "tire", 0, "Tire diameter in mm (required)")
	fs.Float64Var(&cfg.Internal, "internal", 1, "Internal gearbox ratio")
	fs.StringVar(&format, "format", "text", "Output format: text, json, yaml or csv")
	fs.StringVar(&unit, "unit", "mm", "Rollout unit: mm, cm or in")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	g, err := gearing.ParseGear(gear)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	cfg.Gear = g
	if cfg.Format, cfg.Unit, err = parseOutput(format, unit); err != nil {
		return nil, err
	}

	switch {
	case cfg.Fixed <= 0:
		return nil, usagef("-fixed must be a positive tooth count")
	case !(cfg.Tire > 0):
		return nil, usagef("-tire must be a positive diameter")
	case !(cfg.Internal > 0):
		return nil, usagef("-internal must be positive")
	}
	return cfg, nil
}

func parseOutput(format, unit string) (export.Format, gearing.Unit, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	u, err := gearing.ParseUnit(unit)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, u, nil
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// PrintUsage writes the subcommand help.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `RC gearing calculator

Usage: gearing [global flags]                 (interactive calculator)
       gearing [global flags] calc [flags]    (compare two setups)
       gearing [global flags] table [flags]   (scan pinion or spur counts)
       gearing help                           (show this message)

GLOBAL:
  -version                 Print the version and exit
  -show-dirs               Print config, data and log locations and exit
  -loglevel <level>        debug, info, warn or error
  -no-persist              Do not read or write saved inputs

CALC:
  -pinion <n>              Current pinion tooth count
  -spur <n>                Current spur tooth count
  -tire <mm>               Current tire diameter
  -internal <ratio>        Internal gearbox ratio
  -no-transmission         Use an internal ratio of 1
  -new-pinion <n>          New pinion (defaults to current)
  -new-spur <n>            New spur (defaults to current)
  -new-tire <mm>           New tire (defaults to current)
  -format <fmt>            text, json, yaml or csv (default: text)
  -unit <unit>             mm, cm or in (default: mm)

TABLE:
  -gear <pinion|spur>      Gear to scan (default: pinion)
  -fixed <n>               Tooth count of the other gear
  -tire <mm>               Tire diameter
  -internal <ratio>        Internal gearbox ratio (default: 1)
  -format, -unit           As for calc

EXAMPLES:
  # What does one more pinion tooth do?
  gearing calc -pinion 20 -spur 48 -tire 62 -internal 2.6 -new-pinion 21

  # Pinion options for a 48T spur, as CSV
  gearing table -gear pinion -fixed 48 -tire 62 -internal 2.6 -format csv
`)
}
