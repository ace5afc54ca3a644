package world

import "time"

// Beacon is the blinking warning light on the tallest building's roof.
// Its position is computed once from the layout and is immutable for the
// lifetime of the current world; only the on/off state machine advances.
//
// The cycle is ON for the first half of the period and OFF for the second
// half; completing a full period turns the beacon back on and resets the
// cycle origin.
type Beacon struct {
	// X, Y is the beacon center in ground coordinates (Y above the roof).
	X, Y float64

	// Radius is the beacon radius in pixels.
	Radius float64

	period float64
	lastOn time.Time
}

// NewBeacon derives the beacon from a layout: centered over the tallest
// building, one radius above its roof. A non-positive period or an empty
// layout yields no beacon.
func NewBeacon(l Layout, radius, periodSeconds float64, now time.Time) (*Beacon, bool) {
	if periodSeconds <= 0 {
		return nil, false
	}
	tallest, ok := l.Tallest()
	if !ok {
		return nil, false
	}
	return &Beacon{
		X:      float64(tallest.StartX) + float64(tallest.Width)/2,
		Y:      float64(tallest.Height) + radius,
		Radius: radius,
		period: periodSeconds,
		lastOn: now,
	}, true
}

// Lit advances the state machine to now and reports whether the beacon is
// currently on.
func (b *Beacon) Lit(now time.Time) bool {
	elapsed := now.Sub(b.lastOn).Seconds()
	if elapsed >= b.period {
		b.lastOn = now
		return true
	}
	return elapsed < b.period/2
}

// Period returns the configured full cycle length in seconds.
func (b *Beacon) Period() float64 { return b.period }
