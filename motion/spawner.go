// Package motion holds the stochastic point-kinematics simulators for
// shooting stars and satellites. Both share one shape: a Poisson-process
// spawn clock, constant-velocity entities retired at the screen edge, and
// a per-tick sprite list plus trail keep-fraction for the compositor.
package motion

import (
	"math"
	"math/rand/v2"
)

// Direction selects the travel direction for newly spawned shooting stars.
type Direction int

const (
	// DirectionRandom picks DownLeft or DownRight per spawn.
	DirectionRandom Direction = iota

	// DirectionDownLeft travels down and to the left.
	DirectionDownLeft

	// DirectionDownRight travels down and to the right.
	DirectionDownRight
)

// spawnEpsilon keeps the uniform draw away from 0 and 1, bounding the
// exponential inter-arrival draw.
const spawnEpsilon = 1e-6

// nextInterval draws an exponentially distributed inter-arrival time with
// the given mean, yielding a memoryless constant-rate-on-average spawn
// pattern.
func nextInterval(rng *rand.Rand, avgSeconds float64) float64 {
	u := spawnEpsilon + (1-2*spawnEpsilon)*rng.Float64()
	return -math.Log(1-u) * avgSeconds
}

// spawnClock accumulates elapsed time against the next spawn instant.
type spawnClock struct {
	remaining float64
	avg       float64
}

// advance subtracts dt and reports whether a spawn is due. At most one
// spawn fires per tick: when the deadline passes, the next interval is
// drawn fresh rather than catching up on missed intervals, an explicit
// backpressure choice.
func (c *spawnClock) advance(rng *rand.Rand, dt float64) bool {
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	c.remaining = nextInterval(rng, c.avg)
	return true
}

// reset schedules the next spawn a full interval from now.
func (c *spawnClock) reset(rng *rand.Rand) {
	c.remaining = nextInterval(rng, c.avg)
}

// keepFraction converts a trail half-life into this tick's decay factor:
// 0.5^(dt/halfLife). A disabled trail (halfLife <= 0) keeps nothing.
// The half-life formulation is stable across variable frame rates.
func keepFraction(dt, halfLifeSeconds float64) float64 {
	if halfLifeSeconds <= 0 {
		return 0
	}
	return math.Pow(0.5, dt/halfLifeSeconds)
}

// clampRange restricts v to [lo, hi].
func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
