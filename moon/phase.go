// Package moon computes the lunar phase, the moon's looping screen
// trajectory, and the procedurally synthesized albedo texture.
package moon

import (
	"math"
	"time"
)

// SynodicMonthDays is the mean length of the synodic month: the new-moon
// to new-moon cycle the illuminated fraction follows.
const SynodicMonthDays = 29.530588853

// epochJulianDay is a reference new moon (2000-01-06 18:14 UTC) used as
// the zero point of the age computation.
const epochJulianDay = 2451550.26

// julianDay converts an instant to a continuous Julian-day value.
func julianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/86400000.0 + 2440587.5
}

// Phase returns the illuminated fraction in [0, 1] and whether the moon is
// waxing at the given instant.
//
// The phase is evaluated from the instant's calendar position: the age is
// the Julian-day distance from a reference new moon, wrapped into one
// synodic month, and the fraction follows the cosine illumination curve
// (0 at new moon, 1 at full moon).
func Phase(at time.Time) (fraction float64, waxing bool) {
	age := math.Mod(julianDay(at)-epochJulianDay, SynodicMonthDays)
	if age < 0 {
		age += SynodicMonthDays
	}
	fraction = 0.5 * (1 - math.Cos(2*math.Pi*age/SynodicMonthDays))
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return fraction, age < SynodicMonthDays/2
}

// PhaseFromFraction maps an explicit normalized cycle position v in [0, 1]
// (0 = new moon, 0.5 = full moon) to the illuminated fraction and waxing
// flag, bypassing the date computation entirely. Used by the phase
// override.
func PhaseFromFraction(v float64) (fraction float64, waxing bool) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	fraction = 0.5 * (1 - math.Cos(2*math.Pi*v))
	return fraction, v < 0.5
}

// Midnight returns the local midnight opening the instant's calendar day.
// Phase evaluation uses this fixed reference so the fraction is stable
// across a day rather than drifting tick by tick.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SecondsSinceMidnight returns the seconds elapsed since the instant's
// local midnight; the arc trajectory is a pure function of this value.
func SecondsSinceMidnight(t time.Time) float64 {
	return t.Sub(Midnight(t)).Seconds()
}
