// Package gearing implements the drivetrain arithmetic: spur/pinion ratio,
// final drive ratio (FDR) and rollout distance, and the comparison of two
// gear setups.
//
// Rollout is the linear distance a wheel travels per motor revolution and is
// always computed in millimetres. Conversion to other units happens at
// display time (see [Unit]).
package gearing

import "math"

// Setup is one complete set of gearing inputs.
type Setup struct {
	Pinion   int     // pinion tooth count
	Spur     int     // spur tooth count
	Tire     float64 // tire diameter in mm
	Internal float64 // effective internal gearbox ratio
}

// Valid reports whether every input is strictly positive and finite.
// Derived metrics are only defined for valid setups.
func (s Setup) Valid() bool {
	return s.Pinion > 0 && s.Spur > 0 && positive(s.Tire) && positive(s.Internal)
}

// WithGear returns a copy of s with the given gear count replaced.
func (s Setup) WithGear(g Gear, count int) Setup {
	switch g {
	case GearPinion:
		s.Pinion = count
	case GearSpur:
		s.Spur = count
	}
	return s
}

// Gear returns the tooth count of the given gear.
func (s Setup) Gear(g Gear) int {
	if g == GearSpur {
		return s.Spur
	}
	return s.Pinion
}

// Metrics holds the values derived from a valid Setup.
type Metrics struct {
	Ratio   float64 // spur / pinion
	FDR     float64 // ratio * internal
	Rollout float64 // mm per motor revolution
}

// Result is the outcome of Compute. Metrics are zero when Valid is false.
type Result struct {
	Metrics
	Valid bool
}

// SpurPinionRatio returns spur/pinion.
func SpurPinionRatio(spur, pinion int) float64 {
	return float64(spur) / float64(pinion)
}

// FinalDriveRatio returns the spur/pinion ratio multiplied by the internal ratio.
func FinalDriveRatio(spur, pinion int, internal float64) float64 {
	return SpurPinionRatio(spur, pinion) * internal
}

// Rollout returns the distance in mm travelled per motor revolution. A zero
// tire or FDR yields 0 instead of dividing by zero.
func Rollout(tire, fdr float64) float64 {
	if tire == 0 || fdr == 0 {
		return 0
	}
	return math.Pi * tire / fdr
}

// Compute derives all metrics for s, or returns an invalid Result when any
// input is non-positive.
func Compute(s Setup) Result {
	if !s.Valid() {
		return Result{}
	}
	ratio := SpurPinionRatio(s.Spur, s.Pinion)
	fdr := ratio * s.Internal
	return Result{
		Metrics: Metrics{
			Ratio:   ratio,
			FDR:     fdr,
			Rollout: Rollout(s.Tire, fdr),
		},
		Valid: true,
	}
}

// EffectiveInternal returns the internal ratio to use for computation.
// Vehicles without a transmission drive the spur directly, so the ratio is 1.
func EffectiveInternal(ratio float64, noTransmission bool) float64 {
	if noTransmission {
		return 1
	}
	return ratio
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
