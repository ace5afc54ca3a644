package motion

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"

	"github.com/gogpu/nightsky/compose"
)

// StarsConfig parameterizes the shooting-star simulator. Out-of-range
// values are clamped on apply.
type StarsConfig struct {
	// AvgSeconds is the mean Poisson spawn interval, clamped to
	// [0.5, 3600].
	AvgSeconds float64

	// Speed is the travel speed in px/s along the 45-degree diagonal.
	Speed float64

	// Brightness is the nominal head brightness in [0, 1]; each spawn
	// jitters around it.
	Brightness float64

	// TrailHalfLifeSeconds is the trail decay half-life, clamped to
	// [0.01, 30]. Zero disables trailing entirely.
	TrailHalfLifeSeconds float64

	// Direction selects the travel diagonal.
	Direction Direction
}

// normalized returns the config with every field clamped into its
// documented range.
func (c StarsConfig) normalized() StarsConfig {
	c.AvgSeconds = clampRange(c.AvgSeconds, 0.5, 3600)
	if c.Speed < 1 {
		c.Speed = 1
	}
	c.Brightness = clampRange(c.Brightness, 0, 1)
	if c.TrailHalfLifeSeconds != 0 {
		c.TrailHalfLifeSeconds = clampRange(c.TrailHalfLifeSeconds, 0.01, 30)
	}
	return c
}

// star is one live shooting star.
type star struct {
	x, y      float64
	vx, vy    float64
	half      float64
	color     gg.RGBA
	traveled  float64
	maxTravel float64
}

// Stars simulates shooting stars: diagonal streaks spawned by a Poisson
// clock at the top of the screen, retired after a fixed travel length or
// on leaving the screen.
type Stars struct {
	cfg     StarsConfig
	rng     *rand.Rand
	clock   spawnClock
	enabled bool

	width, height int
	live          []star
}

// NewStars builds a disabled simulator; enable it with SetEnabled.
func NewStars(rng *rand.Rand, width, height int, cfg StarsConfig) *Stars {
	cfg = cfg.normalized()
	s := &Stars{
		cfg:    cfg,
		rng:    rng,
		width:  width,
		height: height,
	}
	s.clock.avg = cfg.AvgSeconds
	return s
}

// SetConfig applies a new parameter set. Live stars keep the velocity and
// brightness they spawned with; only future spawns see the change. The
// spawn clock keeps its current deadline unless the mean changed.
func (s *Stars) SetConfig(cfg StarsConfig) {
	cfg = cfg.normalized()
	if cfg.AvgSeconds != s.cfg.AvgSeconds {
		s.clock.avg = cfg.AvgSeconds
		if s.enabled {
			s.clock.reset(s.rng)
		}
	}
	s.cfg = cfg
}

// SetEnabled toggles the simulator. Disabling drops all live stars
// immediately; re-enabling schedules the first spawn a full interval out.
func (s *Stars) SetEnabled(on bool) {
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

// Resize updates the spawn and retirement geometry. Live stars are kept;
// off-screen retirement handles any that the new bounds orphaned.
func (s *Stars) Resize(width, height int) {
	s.width, s.height = width, height
}

// Advance moves every live star by dt seconds, retires finished ones and
// spawns at most one new star if the clock fires.
func (s *Stars) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}

	// Removal sweep: the index advances only when nothing was removed at
	// it, so the element swapped into the slot is inspected too.
	for i := 0; i < len(s.live); {
		st := &s.live[i]
		st.x += st.vx * dt
		st.y += st.vy * dt
		st.traveled += s.cfg.Speed * dt
		if s.retired(st) {
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

// retired reports whether a star has run its course: travelled its full
// streak length or left the screen past its leading edge.
func (s *Stars) retired(st *star) bool {
	if st.traveled >= st.maxTravel {
		return true
	}
	if st.y-st.half > float64(s.height) {
		return true
	}
	if st.vx < 0 && st.x+st.half < 0 {
		return true
	}
	if st.vx > 0 && st.x-st.half > float64(s.width) {
		return true
	}
	return false
}

// spawn creates one star at the top edge. The horizontal spawn window is
// shifted a quarter screen against the travel direction so the streak
// crosses visible space instead of exiting immediately.
func (s *Stars) spawn() {
	w := float64(s.width)
	h := float64(s.height)

	left := s.cfg.Direction == DirectionDownLeft
	if s.cfg.Direction == DirectionRandom {
		left = s.rng.IntN(2) == 0
	}

	var x float64
	if left {
		x = w*0.25 + s.rng.Float64()*w
	} else {
		x = -w*0.25 + s.rng.Float64()*w
	}

	diag := s.cfg.Speed * math.Sqrt2 / 2
	vx := diag
	if left {
		vx = -diag
	}

	// Spawn-time jitter: brightness and size vary per star, then stay
	// fixed for its lifetime.
	b := s.cfg.Brightness * (0.75 + 0.5*s.rng.Float64())
	if b > 1 {
		b = 1
	}

	s.live = append(s.live, star{
		x:    x,
		y:    -2,
		vx:   vx,
		vy:   diag,
		half: 1 + 0.6*s.rng.Float64(),
		// Alpha stays zero: on a premultiplied trail layer a zero-alpha
		// source makes the "over" blend act as pure addition.
		color:     gg.RGBA{R: b, G: b * 0.97, B: b * 0.88},
		maxTravel: (0.35 + 0.30*s.rng.Float64()) * math.Hypot(w, h),
	})
}

// AppendSprites appends one head sprite per live star to dst.
func (s *Stars) AppendSprites(dst []compose.Sprite) []compose.Sprite {
	for i := range s.live {
		st := &s.live[i]
		dst = append(dst, compose.Sprite{
			X:     st.x,
			Y:     st.y,
			HalfW: st.half,
			Color: st.color,
			Shape: compose.ShapeCircle,
		})
	}
	return dst
}

// Keep returns this tick's trail decay factor for the star layer.
func (s *Stars) Keep(dt float64) float64 {
	return keepFraction(dt, s.cfg.TrailHalfLifeSeconds)
}

// Len returns the number of live stars.
func (s *Stars) Len() int { return len(s.live) }
