package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/treykane/cli-gearing/internal/chooser"
	"github.com/treykane/cli-gearing/internal/export"
	"github.com/treykane/cli-gearing/internal/form"
	"github.com/treykane/cli-gearing/internal/logging"
)

var log = logging.New("cli")

// Exit statuses returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// IsSubcommand reports whether name is handled by Run.
func IsSubcommand(name string) bool {
	switch name {
	case "calc", "table", "help":
		return true
	}
	return false
}

// Run executes the subcommand in args[0] and returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		PrintUsage(stderr)
		return ExitUsage
	}

	var err error
	switch args[0] {
	case "help":
		PrintUsage(stdout)
		return ExitOK
	case "calc":
		err = runCalc(args[1:], stdout, stderr)
	case "table":
		err = runTable(args[1:], stdout, stderr)
	default:
		err = fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		PrintUsage(stderr)
		return ExitUsage
	default:
		log.Error("command failed", "command", args[0], "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}

func runCalc(args []string, stdout, stderr io.Writer) error {
	cfg, err := ParseCalc(args, stderr)
	if err != nil {
		return err
	}
	current := cfg.Current()
	var report export.Report
	if cfg.HasNew() {
		next := cfg.Next()
		report = export.NewReport(current, &next, cfg.Unit)
	} else {
		report = export.NewReport(current, nil, cfg.Unit)
	}
	log.Debug("calc", "current", current, "compare", cfg.HasNew(), "format", cfg.Format)
	return export.WriteReport(stdout, cfg.Format, report)
}

// runTable scans through a form so the rows come from the same path the
// interactive picker uses.
func runTable(args []string, stdout, stderr io.Writer) error {
	cfg, err := ParseTable(args, stderr)
	if err != nil {
		return err
	}
	st := chooser.State{Gear: cfg.Gear, Side: form.SideCurrent}

	f := form.New()
	f.Set(form.FieldInternal, strconv.FormatFloat(cfg.Internal, 'f', -1, 64))
	f.Set(form.TireField(st.Side), strconv.FormatFloat(cfg.Tire, 'f', -1, 64))
	f.Set(form.GearField(st.Side, cfg.Gear.Counterpart()), strconv.Itoa(cfg.Fixed))

	rows := chooser.Rows(st, f.Snapshot())
	log.Debug("table", "gear", cfg.Gear, "fixed", cfg.Fixed, "rows", len(rows))
	return export.WriteTable(stdout, cfg.Format, export.NewTable(cfg.Gear, rows, cfg.Unit))
}
