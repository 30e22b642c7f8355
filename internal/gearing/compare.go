package gearing

import (
	"fmt"
	"math"
)

// Gear identifies one of the two gears in the spur/pinion pair.
type Gear int

const (
	GearPinion Gear = iota
	GearSpur
)

func (g Gear) String() string {
	switch g {
	case GearPinion:
		return "pinion"
	case GearSpur:
		return "spur"
	default:
		return fmt.Sprintf("gear(%d)", int(g))
	}
}

// Counterpart returns the other gear of the pair.
func (g Gear) Counterpart() Gear {
	if g == GearPinion {
		return GearSpur
	}
	return GearPinion
}

// ParseGear converts "pinion" or "spur" to a Gear.
func ParseGear(value string) (Gear, error) {
	switch value {
	case "pinion":
		return GearPinion, nil
	case "spur":
		return GearSpur, nil
	default:
		return 0, fmt.Errorf("unknown gear %q (want pinion or spur)", value)
	}
}

// Percent is a percentage that may be undefined.
type Percent struct {
	Value float64
	Valid bool
}

// Trend classifies a percentage change for display.
type Trend int

const (
	TrendNeutral Trend = iota
	TrendUp
	TrendDown
)

// Trend returns the direction of p. Undefined and zero values are neutral.
func (p Percent) Trend() Trend {
	switch {
	case !p.Valid || p.Value == 0:
		return TrendNeutral
	case p.Value > 0:
		return TrendUp
	default:
		return TrendDown
	}
}

// Delta returns (next/current - 1) * 100. The result is undefined when either
// side is non-positive or the quotient is not finite.
func Delta(next, current float64) Percent {
	if !(next > 0) || !(current > 0) {
		return Percent{}
	}
	v := (next/current - 1) * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Percent{}
	}
	return Percent{Value: v, Valid: true}
}

// Comparison is the side-by-side evaluation of the current and the new setup.
type Comparison struct {
	Current      Result
	Next         Result
	FDRDelta     Percent
	RolloutDelta Percent
}

// Compare computes both setups and, when both are valid, the percentage
// deltas of FDR and rollout.
func Compare(current, next Setup) Comparison {
	c := Comparison{
		Current: Compute(current),
		Next:    Compute(next),
	}
	if c.Current.Valid && c.Next.Valid {
		c.FDRDelta = Delta(c.Next.FDR, c.Current.FDR)
		c.RolloutDelta = Delta(c.Next.Rollout, c.Current.Rollout)
	}
	return c
}
