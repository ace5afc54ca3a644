package motion

import (
	"math/rand/v2"

	"github.com/gogpu/gg"

	"github.com/gogpu/nightsky/compose"
)

// beaconGap is the extra vertical clearance, in pixels, kept between a
// satellite's spawn altitude and the beacon's screen footprint.
const beaconGap = 8

// SatellitesConfig parameterizes the satellite simulator. Out-of-range
// values are clamped on apply.
type SatellitesConfig struct {
	// AvgSeconds is the mean Poisson spawn interval, clamped to
	// [0.5, 3600].
	AvgSeconds float64

	// Speed is the horizontal travel speed in px/s.
	Speed float64

	// Size is the square head sprite's half-extent basis in pixels,
	// clamped to [1, 8]; each spawn jitters around it.
	Size float64

	// TrailHalfLifeSeconds is the trail decay half-life, clamped to
	// [0.01, 30]. Zero disables trailing entirely.
	TrailHalfLifeSeconds float64

	// BandTopFraction and BandBottomFraction bound the vertical spawn band
	// as fractions of screen height, both clamped to [0, 1] with top
	// forced <= bottom.
	BandTopFraction    float64
	BandBottomFraction float64
}

func (c SatellitesConfig) normalized() SatellitesConfig {
	c.AvgSeconds = clampRange(c.AvgSeconds, 0.5, 3600)
	if c.Speed < 1 {
		c.Speed = 1
	}
	c.Size = clampRange(c.Size, 1, 8)
	if c.TrailHalfLifeSeconds != 0 {
		c.TrailHalfLifeSeconds = clampRange(c.TrailHalfLifeSeconds, 0.01, 30)
	}
	c.BandTopFraction = clampRange(c.BandTopFraction, 0, 1)
	c.BandBottomFraction = clampRange(c.BandBottomFraction, 0, 1)
	if c.BandTopFraction > c.BandBottomFraction {
		c.BandTopFraction = c.BandBottomFraction
	}
	return c
}

// satellite is one live satellite crossing the screen horizontally.
type satellite struct {
	x, y  float64
	vx    float64
	half  float64
	color gg.RGBA
}

// Satellites simulates slow horizontal satellite passes: square heads
// spawned by a Poisson clock inside a vertical band near the top of the
// screen, entering from a random side and retired once their bounding box
// has fully crossed the far edge.
type Satellites struct {
	cfg     SatellitesConfig
	rng     *rand.Rand
	clock   spawnClock
	enabled bool

	width, height int

	// Beacon footprint in screen coordinates; spawns keep clear of its
	// vertical extent so the steady blink is never crossed by a trail.
	beaconY, beaconR float64
	beaconPresent    bool

	live []satellite
}

// NewSatellites builds a disabled simulator; enable it with SetEnabled.
func NewSatellites(rng *rand.Rand, width, height int, cfg SatellitesConfig) *Satellites {
	cfg = cfg.normalized()
	s := &Satellites{
		cfg:    cfg,
		rng:    rng,
		width:  width,
		height: height,
	}
	s.clock.avg = cfg.AvgSeconds
	return s
}

// SetConfig applies a new parameter set. Live satellites keep their
// spawn-time velocity and size; the spawn clock keeps its deadline unless
// the mean changed.
func (s *Satellites) SetConfig(cfg SatellitesConfig) {
	cfg = cfg.normalized()
	if cfg.AvgSeconds != s.cfg.AvgSeconds {
		s.clock.avg = cfg.AvgSeconds
		if s.enabled {
			s.clock.reset(s.rng)
		}
	}
	s.cfg = cfg
}

// SetEnabled toggles the simulator. Disabling drops all live satellites;
// re-enabling schedules the first spawn a full interval out.
func (s *Satellites) SetEnabled(on bool) {
	if on == s.enabled {
		return
	}
	s.enabled = on
	if on {
		s.clock.reset(s.rng)
		return
	}
	s.live = s.live[:0]
}

// SetBeacon updates the spawn exclusion zone from the beacon's screen
// position. Pass present=false when the current world has no beacon.
func (s *Satellites) SetBeacon(y, radius float64, present bool) {
	s.beaconY, s.beaconR, s.beaconPresent = y, radius, present
}

// Resize updates the spawn and retirement geometry.
func (s *Satellites) Resize(width, height int) {
	s.width, s.height = width, height
}

// Advance moves every live satellite by dt seconds, retires the ones that
// have fully exited and spawns at most one new satellite if the clock
// fires.
func (s *Satellites) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}

	for i := 0; i < len(s.live); {
		sat := &s.live[i]
		sat.x += sat.vx * dt
		exited := (sat.vx > 0 && sat.x-sat.half > float64(s.width)) ||
			(sat.vx < 0 && sat.x+sat.half < 0)
		if exited {
			s.live[i] = s.live[len(s.live)-1]
			s.live = s.live[:len(s.live)-1]
			continue
		}
		i++
	}

	if s.enabled && s.clock.advance(s.rng, dt) {
		s.spawn()
	}
}

// spawn creates one satellite just off a random screen side, at an
// altitude drawn uniformly from the spawn band minus the beacon's
// exclusion zone. When the exclusion swallows the whole band the spawn is
// skipped silently; the clock has already rescheduled, so the miss costs
// one interval.
func (s *Satellites) spawn() {
	y, ok := s.spawnAltitude()
	if !ok {
		return
	}

	half := s.cfg.Size * (0.8 + 0.4*s.rng.Float64())
	vx := s.cfg.Speed
	x := -half
	if s.rng.IntN(2) == 0 {
		vx = -vx
		x = float64(s.width) + half
	}

	b := 0.55 + 0.15*s.rng.Float64()
	s.live = append(s.live, satellite{
		x:    x,
		y:    y,
		vx:   vx,
		half: half,
		// Zero alpha: trail-layer addition via the premultiplied blend.
		color: gg.RGBA{R: b * 0.9, G: b * 0.95, B: b},
	})
}

// spawnAltitude draws a uniform altitude from the band with the beacon's
// vertical footprint (plus clearance) cut out. The draw is uniform over
// the remaining length, not per segment, so a thin sliver above the
// beacon is not over-represented.
func (s *Satellites) spawnAltitude() (float64, bool) {
	top := s.cfg.BandTopFraction * float64(s.height)
	bottom := s.cfg.BandBottomFraction * float64(s.height)
	if bottom <= top {
		return 0, false
	}

	if !s.beaconPresent {
		return top + s.rng.Float64()*(bottom-top), true
	}

	exTop := s.beaconY - s.beaconR - beaconGap
	exBottom := s.beaconY + s.beaconR + beaconGap

	// Clip the exclusion to the band; what remains are at most two
	// segments.
	segs := [2][2]float64{}
	n := 0
	if exTop > top {
		hi := exTop
		if hi > bottom {
			hi = bottom
		}
		segs[n] = [2]float64{top, hi}
		n++
	}
	if exBottom < bottom {
		lo := exBottom
		if lo < top {
			lo = top
		}
		segs[n] = [2]float64{lo, bottom}
		n++
	}

	total := 0.0
	for i := 0; i < n; i++ {
		total += segs[i][1] - segs[i][0]
	}
	if total <= 0 {
		return 0, false
	}

	pick := s.rng.Float64() * total
	for i := 0; i < n; i++ {
		length := segs[i][1] - segs[i][0]
		if pick <= length {
			return segs[i][0] + pick, true
		}
		pick -= length
	}
	return segs[n-1][1], true
}

// AppendSprites appends one head sprite per live satellite to dst.
func (s *Satellites) AppendSprites(dst []compose.Sprite) []compose.Sprite {
	for i := range s.live {
		sat := &s.live[i]
		dst = append(dst, compose.Sprite{
			X:     sat.x,
			Y:     sat.y,
			HalfW: sat.half,
			HalfH: sat.half,
			Color: sat.color,
			Shape: compose.ShapeRect,
		})
	}
	return dst
}

// Keep returns this tick's trail decay factor for the satellite layer.
func (s *Satellites) Keep(dt float64) float64 {
	return keepFraction(dt, s.cfg.TrailHalfLifeSeconds)
}

// Len returns the number of live satellites.
func (s *Satellites) Len() int { return len(s.live) }
