package nightsky

import (
	"math/rand/v2"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/nightsky/compose"
	"github.com/gogpu/nightsky/moon"
	"github.com/gogpu/nightsky/motion"
	"github.com/gogpu/nightsky/world"
)

// Clock returns the current wall-clock time. The engine's time-driven
// behavior (beacon blink, moon arc, world lifetime) reads time only
// through its clock, so tests can drive it deterministically.
type Clock func() time.Time

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the engine's wall-clock source.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.now = c
		}
	}
}

// WithRand replaces the engine's random source. All stochastic behavior
// (world generation, spawn clocks, jitter) flows from this single source,
// so a seeded source makes the whole scene reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// Engine owns the scene state and advances it one tick at a time. Each
// Advance call diffs the incoming config against the previous tick's,
// regenerates exactly the invalidated sub-state, steps the simulators and
// assembles the frame payload for the compositor.
//
// Engine is not safe for concurrent use.
type Engine struct {
	now Clock
	rng *rand.Rand

	width, height int
	cfg           Config
	haveCfg       bool

	layout    world.Layout
	beacon    *world.Beacon
	starField []Sprite
	worldBorn time.Time

	// Beacon state from the previous tick; the base layer is persistent,
	// so the beacon sprite is re-emitted only on state flips.
	beaconLit bool

	stars *motion.Stars
	sats  *motion.Satellites

	// albedoDiameter is the pixel diameter the current albedo was
	// synthesized at; a mismatch (or resize) triggers regeneration.
	albedoDiameter int

	// leftToRight fixes the moon's travel direction at the first Advance
	// for the process lifetime.
	leftToRight  bool
	directionSet bool

	payload FramePayload
}

// NewEngine creates an engine with an empty scene. The first Advance call
// generates the world.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return e
}

// Layout returns the current skyline layout.
func (e *Engine) Layout() world.Layout { return e.layout }

// Beacon returns the current rooftop beacon, or nil when the world has
// none.
func (e *Engine) Beacon() *world.Beacon { return e.beacon }

// HitTest reports the building under the given screen pixel, front-most
// first. Screen y grows downward; the ground line is the bottom row.
func (e *Engine) HitTest(screenX, screenY int) (world.Building, bool) {
	return e.layout.HitTest(screenX, e.height-1-screenY)
}

// Advance steps the scene by dt seconds at the given logical screen size
// and returns the frame payload for the compositor.
//
// Config changes take effect mid-run: fields driving world generation
// force a full regeneration (payload.Clear set), everything else updates
// incrementally without touching the skyline or the trails. Exceeding
// ClearAfterSeconds likewise regenerates the world.
//
// The returned payload is reused across ticks; consume it before the next
// call.
func (e *Engine) Advance(dt float64, width, height int, cfg Config) *FramePayload {
	if dt < 0 {
		dt = 0
	}
	cfg = cfg.normalized()
	now := e.now()

	if !e.directionSet {
		e.leftToRight = cfg.ReferenceLatitude >= 0
		e.directionSet = true
	}

	resized := width != e.width || height != e.height
	expired := e.haveCfg && now.Sub(e.worldBorn).Seconds() >= cfg.ClearAfterSeconds
	regen := !e.haveCfg || resized || expired || !cfg.worldEqual(e.cfg)

	e.resetPayload(width, height)

	if regen {
		e.regenerate(width, height, cfg, now)
		e.payload.Clear = true
	}

	// A period change swaps only the beacon; the skyline stays put.
	beaconRebuilt := false
	if !regen && cfg.FlasherPeriodSeconds != e.cfg.FlasherPeriodSeconds {
		e.rebuildBeacon(cfg, now, height)
		beaconRebuilt = true
	}

	e.stepSimulators(dt, width, height, cfg, resized)

	if e.payload.Clear {
		e.emitScene(height)
	}
	e.emitBeacon(now, e.payload.Clear || beaconRebuilt)
	e.emitMoon(width, height, cfg, now, resized)
	if cfg.DebugOverlayEnabled {
		e.emitOverlay(width, height, cfg)
	}

	e.payload.SatelliteKeep = e.sats.Keep(dt)
	e.payload.StarKeep = e.stars.Keep(dt)

	e.width, e.height = width, height
	e.cfg = cfg
	e.haveCfg = true
	return &e.payload
}

// resetPayload clears the reused payload for a fresh tick.
func (e *Engine) resetPayload(width, height int) {
	e.payload.Width = width
	e.payload.Height = height
	e.payload.Clear = false
	e.payload.Base = e.payload.Base[:0]
	e.payload.Satellites = e.payload.Satellites[:0]
	e.payload.Stars = e.payload.Stars[:0]
	e.payload.Overlay = e.payload.Overlay[:0]
	e.payload.Moon = nil
	e.payload.MoonAlbedo = nil
}

// regenerate rebuilds the world: skyline, beacon and star field.
func (e *Engine) regenerate(width, height int, cfg Config, now time.Time) {
	e.layout = world.Generate(e.rng, width, height,
		cfg.BuildingHeightMaxFraction,
		cfg.BuildingWidthMin, cfg.BuildingWidthMax,
		cfg.BuildingFrequency)

	e.beacon = nil
	if b, ok := world.NewBeacon(e.layout, cfg.FlasherRadius, cfg.FlasherPeriodSeconds, now); ok {
		e.beacon = b
	}

	e.starField = e.generateStarField(width, height)
	e.worldBorn = now

	Logger().Info("nightsky: world regenerated",
		"width", width, "height", height,
		"buildings", len(e.layout.Buildings),
		"beacon", e.beacon != nil)
}

// rebuildBeacon replaces the beacon against the existing skyline after a
// period change. A retired beacon is painted over with background, since
// the base layer persists between clears.
func (e *Engine) rebuildBeacon(cfg Config, now time.Time, height int) {
	old := e.beacon
	e.beacon = nil
	if b, ok := world.NewBeacon(e.layout, cfg.FlasherRadius, cfg.FlasherPeriodSeconds, now); ok {
		e.beacon = b
	}
	if old != nil && e.beacon == nil {
		// One extra pixel covers the old circle's anti-aliased fringe.
		e.payload.Base = append(e.payload.Base, Sprite{
			X:     old.X,
			Y:     float64(height) - old.Y,
			HalfW: old.Radius + 1,
			Color: gg.RGBA{A: 1},
			Shape: compose.ShapeCircle,
		})
	}
}

// generateStarField scatters dim static background stars over the sky.
// The field is drawn before the buildings, so silhouettes occlude it.
func (e *Engine) generateStarField(width, height int) []Sprite {
	count := width * height / 6000
	field := make([]Sprite, 0, count)
	for i := 0; i < count; i++ {
		b := 0.25 + 0.6*e.rng.Float64()
		field = append(field, Sprite{
			X:     e.rng.Float64() * float64(width),
			Y:     e.rng.Float64() * float64(height) * 0.9,
			HalfW: 0.5,
			HalfH: 0.5,
			Color: gg.RGBA{R: b, G: b, B: b * 0.95, A: 1},
			Shape: compose.ShapeRect,
		})
	}
	return field
}

// stepSimulators syncs the simulators with this tick's config and
// geometry, then advances them.
func (e *Engine) stepSimulators(dt float64, width, height int, cfg Config, resized bool) {
	if e.stars == nil {
		e.stars = motion.NewStars(e.rng, width, height, starConfig(cfg))
		e.sats = motion.NewSatellites(e.rng, width, height, satelliteConfig(cfg))
	} else {
		e.stars.SetConfig(starConfig(cfg))
		e.sats.SetConfig(satelliteConfig(cfg))
		if resized {
			e.stars.Resize(width, height)
			e.sats.Resize(width, height)
		}
	}

	e.stars.SetEnabled(cfg.ShootingStarsEnabled)
	e.sats.SetEnabled(cfg.SatellitesEnabled)

	if e.beacon != nil {
		e.sats.SetBeacon(float64(height)-e.beacon.Y, e.beacon.Radius, true)
	} else {
		e.sats.SetBeacon(0, 0, false)
	}

	e.stars.Advance(dt)
	e.sats.Advance(dt)
	e.payload.Stars = e.stars.AppendSprites(e.payload.Stars)
	e.payload.Satellites = e.sats.AppendSprites(e.payload.Satellites)
}

// emitScene appends the full static scene to the base layer: star field,
// building silhouettes and lit windows. Called only on clear ticks; the
// base layer persists between them.
func (e *Engine) emitScene(height int) {
	e.payload.Base = append(e.payload.Base, e.starField...)

	for i := range e.layout.Buildings {
		b := &e.layout.Buildings[i]

		// Ground coordinates put y = 0 at the bottom of the screen.
		topY := float64(height - b.Height)
		e.payload.Base = append(e.payload.Base, Sprite{
			X:     float64(b.StartX) + float64(b.Width)/2,
			Y:     topY + float64(b.Height)/2,
			HalfW: float64(b.Width) / 2,
			HalfH: float64(b.Height) / 2,
			Color: b.Style.Body,
			Shape: compose.ShapeRect,
		})

		e.emitWindows(b, topY)
	}
}

// emitWindows appends this building's lit windows, walking the grid from
// the roof downward so the pattern hangs off the skyline edge.
func (e *Engine) emitWindows(b *world.Building, topY float64) {
	cols := (b.Width - 2) / b.Style.CellW
	rows := (b.Height - 4) / b.Style.CellH
	ww := float64(b.Style.CellW - 2)
	wh := float64(b.Style.CellH - 2)
	if ww < 1 {
		ww = 1
	}
	if wh < 1 {
		wh = 1
	}

	for cy := 0; cy < rows; cy++ {
		rowY := topY + 3 + float64(cy*b.Style.CellH)
		for cx := 0; cx < cols; cx++ {
			if !b.WindowLit(cx, cy) {
				continue
			}
			e.payload.Base = append(e.payload.Base, Sprite{
				X:     float64(b.StartX) + 1 + float64(cx*b.Style.CellW) + ww/2,
				Y:     rowY + wh/2,
				HalfW: ww / 2,
				HalfH: wh / 2,
				Color: b.Style.Window,
				Shape: compose.ShapeRect,
			})
		}
	}
}

// beaconOn and beaconOff are the rooftop beacon's lit and unlit colors.
var (
	beaconOn  = gg.RGBA{R: 1, G: 0.15, B: 0.1, A: 1}
	beaconOff = gg.RGBA{R: 0.22, G: 0.05, B: 0.05, A: 1}
)

// emitBeacon appends the beacon circle when its on/off state flipped this
// tick (or unconditionally on a clear tick). The base layer persists, so
// an unchanged beacon needs no redraw.
func (e *Engine) emitBeacon(now time.Time, force bool) {
	if e.beacon == nil {
		return
	}
	lit := e.beacon.Lit(now)
	if !force && lit == e.beaconLit {
		return
	}
	e.beaconLit = lit

	color := beaconOff
	if lit {
		color = beaconOn
	}
	e.payload.Base = append(e.payload.Base, Sprite{
		X:     e.beacon.X,
		Y:     float64(e.payload.Height) - e.beacon.Y,
		HalfW: e.beacon.Radius,
		Color: color,
		Shape: compose.ShapeCircle,
	})
}

// emitMoon fills in the moon parameters and, when the pixel diameter
// changed, attaches a freshly synthesized albedo for the compositor to
// stage.
func (e *Engine) emitMoon(width, height int, cfg Config, now time.Time, resized bool) {
	radius := moon.Radius(width, cfg.MoonDiameterScreenWidthPercent)
	if radius <= 0 {
		return
	}

	// A resize also re-sends the albedo: the compositor drops its staged
	// copy when its buffers are reallocated.
	if resized || 2*radius != e.albedoDiameter {
		e.payload.MoonAlbedo = moon.Albedo(2 * radius)
		e.albedoDiameter = 2 * radius
	}

	var fraction float64
	var waxing bool
	if cfg.MoonPhaseOverrideEnabled {
		fraction, waxing = moon.PhaseFromFraction(cfg.MoonPhaseOverride)
	} else {
		fraction, waxing = moon.Phase(moon.Midnight(now))
	}

	arc := moon.Arc{
		ScreenWidth:   width,
		Radius:        radius,
		BaseY:         cfg.MoonArcBaseYFraction * float64(height),
		Amplitude:     cfg.MoonArcAmplitudeFraction * float64(height),
		PeriodSeconds: cfg.MoonTraversalSeconds,
		LeftToRight:   e.leftToRight,
	}
	x, y := arc.Center(moon.SecondsSinceMidnight(now))

	e.payload.Moon = &MoonParams{
		X:           x,
		Y:           y,
		Radius:      radius,
		Illuminated: fraction,
		Waxing:      waxing,
		Bright:      cfg.MoonBrightFactor,
		Dark:        cfg.MoonDarkFactor,
		Mask:        cfg.DebugMoonMaskEnabled,
	}
}

// overlayBand and overlayMark are the diagnostic overlay colors
// (premultiplied, semi-transparent).
var (
	overlayBand = gg.RGBA{R: 0, G: 0.35, B: 0.1, A: 0.35}
	overlayMark = gg.RGBA{R: 0.4, G: 0.1, B: 0, A: 0.4}
)

// emitOverlay appends the diagnostic markers: the satellite spawn band
// outline and the beacon exclusion footprint.
func (e *Engine) emitOverlay(width, height int, cfg Config) {
	top := clampF(cfg.SatelliteBandTopFraction, 0, 1) * float64(height)
	bottom := clampF(cfg.SatelliteBandBottomFraction, 0, 1) * float64(height)
	if bottom > top {
		e.payload.Overlay = append(e.payload.Overlay, Sprite{
			X:     float64(width) / 2,
			Y:     (top + bottom) / 2,
			HalfW: float64(width) / 2,
			HalfH: (bottom - top) / 2,
			Color: overlayBand,
			Shape: compose.ShapeRectOutline,
		})
	}

	if e.beacon != nil {
		e.payload.Overlay = append(e.payload.Overlay, Sprite{
			X:     e.beacon.X,
			Y:     float64(height) - e.beacon.Y,
			HalfW: e.beacon.Radius * 3,
			Color: overlayMark,
			Shape: compose.ShapeCircle,
		})
	}
}

// starConfig maps the flat engine config onto the star simulator's.
func starConfig(c Config) motion.StarsConfig {
	return motion.StarsConfig{
		AvgSeconds:           c.ShootingStarAvgSeconds,
		Speed:                c.ShootingStarSpeed,
		Brightness:           c.ShootingStarBrightness,
		TrailHalfLifeSeconds: c.ShootingStarTrailHalfLifeSeconds,
		Direction:            starDirection(c.ShootingStarDirection),
	}
}

// satelliteConfig maps the flat engine config onto the satellite
// simulator's.
func satelliteConfig(c Config) motion.SatellitesConfig {
	return motion.SatellitesConfig{
		AvgSeconds:           c.SatelliteAvgSeconds,
		Speed:                c.SatelliteSpeed,
		Size:                 c.SatelliteSize,
		TrailHalfLifeSeconds: c.SatelliteTrailHalfLifeSeconds,
		BandTopFraction:      c.SatelliteBandTopFraction,
		BandBottomFraction:   c.SatelliteBandBottomFraction,
	}
}

// starDirection converts the public direction enum to the simulator's.
func starDirection(d StarDirection) motion.Direction {
	switch d {
	case StarDirectionDownLeft:
		return motion.DirectionDownLeft
	case StarDirectionDownRight:
		return motion.DirectionDownRight
	default:
		return motion.DirectionRandom
	}
}
