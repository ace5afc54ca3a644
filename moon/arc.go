package moon

import "math"

// Arc is the moon's looping great-arc screen trajectory. The center is a
// pure function of wall-clock time; Arc holds no mutable state.
//
// Each traversal is a single sine hump: the moon rises from the baseline,
// peaks at mid-traversal and returns to the baseline, then snaps back to
// the entry edge when the period wraps. The discontinuity at the period
// boundary is the observed behavior ("moonset, then re-rise") and is kept
// as is.
type Arc struct {
	// ScreenWidth is the logical screen width in pixels.
	ScreenWidth int

	// Radius is the moon radius; the horizontal run is inset by one radius
	// on both sides so the disc never clips the screen edge.
	Radius int

	// BaseY is the arc baseline in screen pixels (y grows downward).
	BaseY float64

	// Amplitude is the hump's rise above the baseline in pixels.
	Amplitude float64

	// PeriodSeconds is the full traversal period.
	PeriodSeconds float64

	// LeftToRight fixes the travel direction for the process lifetime
	// (northern reference latitude travels left to right).
	LeftToRight bool
}

// Center returns the disc center for the given seconds-since-midnight.
func (a Arc) Center(sinceMidnight float64) (x, y float64) {
	p := math.Mod(sinceMidnight, a.PeriodSeconds) / a.PeriodSeconds
	if p < 0 {
		p++
	}

	inset := float64(a.Radius)
	usable := float64(a.ScreenWidth) - 2*inset
	if usable < 0 {
		usable = 0
	}
	if a.LeftToRight {
		x = inset + p*usable
	} else {
		x = inset + (1-p)*usable
	}

	// Screen y grows downward, so the hump subtracts from the baseline.
	y = a.BaseY - a.Amplitude*math.Sin(math.Pi*p)
	return x, y
}
