package cli

import (
	"errors"
	"io"
	"testing"

	"github.com/treykane/cli-gearing/internal/export"
	"github.com/treykane/cli-gearing/internal/gearing"
)

func TestParseCalc_Current(t *testing.T) {
	cfg, err := ParseCalc([]string{"-pinion", "20", "-spur", "48", "-tire", "62", "-internal", "2.6"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseCalc() error = %v", err)
	}
	if cfg.HasNew() {
		t.Error("HasNew() = true without new flags")
	}
	want := gearing.Setup{Pinion: 20, Spur: 48, Tire: 62, Internal: 2.6}
	if got := cfg.Current(); got != want {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}
	if cfg.Format != export.FormatText || cfg.Unit != gearing.UnitMillimetre {
		t.Errorf("defaults = %q/%q, want text/mm", cfg.Format, cfg.Unit)
	}
}

func TestParseCalc_NewDefaultsToCurrent(t *testing.T) {
	cfg, err := ParseCalc([]string{"-pinion", "20", "-spur", "48", "-tire", "62", "-internal", "2.6", "-new-pinion", "21"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseCalc() error = %v", err)
	}
	if !cfg.HasNew() {
		t.Fatal("HasNew() = false, want true")
	}
	next := cfg.Next()
	if next.Pinion != 21 || next.Spur != 48 || next.Tire != 62 {
		t.Errorf("Next() = %+v, want pinion 21 spur 48 tire 62", next)
	}
}

func TestParseCalc_NoTransmission(t *testing.T) {
	cfg, err := ParseCalc([]string{"-pinion", "20", "-spur", "48", "-tire", "62", "-no-transmission"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseCalc() error = %v", err)
	}
	if got := cfg.Current().Internal; got != 1 {
		t.Errorf("Internal = %v, want 1", got)
	}
}

func TestParseCalc_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing pinion", []string{"-spur", "48", "-tire", "62", "-internal", "2.6"}},
		{"zero tire", []string{"-pinion", "20", "-spur", "48", "-tire", "0", "-internal", "2.6"}},
		{"missing internal", []string{"-pinion", "20", "-spur", "48", "-tire", "62"}},
		{"negative new spur", []string{"-pinion", "20", "-spur", "48", "-tire", "62", "-internal", "2.6", "-new-spur", "-1"}},
		{"bad format", []string{"-pinion", "20", "-spur", "48", "-tire", "62", "-internal", "2.6", "-format", "xml"}},
		{"bad unit", []string{"-pinion", "20", "-spur", "48", "-tire", "62", "-internal", "2.6", "-unit", "ft"}},
		{"fractional pinion", []string{"-pinion", "20.5", "-spur", "48", "-tire", "62", "-internal", "2.6"}},
		{"extra argument", []string{"-pinion", "20", "-spur", "48", "-tire", "62", "-internal", "2.6", "oops"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCalc(tt.args, io.Discard)
			if !errors.Is(err, ErrUsage) {
				t.Errorf("ParseCalc() error = %v, want ErrUsage", err)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	cfg, err := ParseTable([]string{"-gear", "spur", "-fixed", "20", "-tire", "62", "-format", "csv", "-unit", "in"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if cfg.Gear != gearing.GearSpur {
		t.Errorf("Gear = %v, want spur", cfg.Gear)
	}
	if cfg.Internal != 1 {
		t.Errorf("Internal = %v, want default 1", cfg.Internal)
	}
	if cfg.Format != export.FormatCSV || cfg.Unit != gearing.UnitInch {
		t.Errorf("output = %q/%q, want csv/in", cfg.Format, cfg.Unit)
	}
}

func TestParseTable_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"-gear", "crown", "-fixed", "48", "-tire", "62"},
		{"-fixed", "0", "-tire", "62"},
		{"-fixed", "48"},
		{"-fixed", "48", "-tire", "62", "-internal", "-2"},
	} {
		if _, err := ParseTable(args, io.Discard); !errors.Is(err, ErrUsage) {
			t.Errorf("ParseTable(%v) error = %v, want ErrUsage", args, err)
		}
	}
}
