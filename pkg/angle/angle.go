// Package angle provides angle normalization and wrap-aware differences
// in both radians and degrees.
package angle

import "math"

const (
	// FullCircle is one turn in radians.
	FullCircle = 2 * math.Pi
	// HalfCircle is half a turn in radians.
	HalfCircle = math.Pi
	// QuarterCircle is a quarter turn in radians.
	QuarterCircle = math.Pi / 2
)

// NormalizeRadians maps a into [0, 2π).
// Non-finite input is returned unchanged.
func NormalizeRadians(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return a
	}
	// Large magnitudes would need too many steps; fold them first.
	if math.Abs(a) > 64*FullCircle {
		a = math.Mod(a, FullCircle)
	}
	for a < 0 {
		a += FullCircle
	}
	for a >= FullCircle {
		a -= FullCircle
	}
	return a
}

// NormalizeDegrees maps a into [0, 360).
// Non-finite input is returned unchanged.
func NormalizeDegrees(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return a
	}
	if math.Abs(a) > 64*360 {
		a = math.Mod(a, 360)
	}
	for a < 0 {
		a += 360
	}
	for a >= 360 {
		a -= 360
	}
	return a
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DifferenceRadians returns the shortest signed rotation from one angle to
// another, in (-π, π].
func DifferenceRadians(from, to float64) float64 {
	diff := NormalizeRadians(to - from)
	if diff > HalfCircle {
		diff -= FullCircle
	}
	return diff
}

// DifferenceDegrees returns the shortest signed rotation from one angle to
// another, in (-180, 180]. Dragging from 359 to 1 yields +2.
func DifferenceDegrees(from, to float64) float64 {
	diff := NormalizeDegrees(to - from)
	if diff > 180 {
		diff -= 360
	}
	return diff
}
