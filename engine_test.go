package nightsky

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/nightsky/compose"
)

// testClock is a manually advanced wall clock.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 8, 25, 22, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(seconds float64) {
	c.t = c.t.Add(time.Duration(seconds * float64(time.Second)))
}

func newTestEngine(clock *testClock) *Engine {
	return NewEngine(
		WithClock(clock.now),
		WithRand(rand.New(rand.NewPCG(11, 17))),
	)
}

// tick advances clock and engine together at a fixed step.
func tick(e *Engine, c *testClock, dt float64, cfg Config) *FramePayload {
	c.advance(dt)
	return e.Advance(dt, 1920, 1080, cfg)
}

func TestAdvanceFirstTick(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)

	p := e.Advance(1.0/30, 1920, 1080, DefaultConfig())

	if !p.Clear {
		t.Error("first tick Clear = false, want true")
	}
	if p.Width != 1920 || p.Height != 1080 {
		t.Errorf("payload size = %dx%d, want 1920x1080", p.Width, p.Height)
	}
	if len(p.Base) == 0 {
		t.Error("first tick emitted no base sprites")
	}
	if got := len(e.Layout().Buildings); got != 63 {
		t.Errorf("generated %d buildings at 1920x0.033, want 63", got)
	}
	if p.Moon == nil {
		t.Fatal("first tick Moon = nil, want parameters")
	}
	if p.MoonAlbedo == nil {
		t.Error("first tick MoonAlbedo = nil, want synthesized bitmap")
	}
	if p.Moon.Radius != 26 {
		t.Errorf("moon radius = %d, want 26 at 1920px", p.Moon.Radius)
	}
}

func TestAdvanceSteadyStateIsIncremental(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()

	e.Advance(1.0/30, 1920, 1080, cfg)
	p := tick(e, clock, 1.0/30, cfg)

	if p.Clear {
		t.Error("steady-state tick Clear = true, want false")
	}
	if len(p.Base) != 0 {
		t.Errorf("steady-state tick emitted %d base sprites, want 0 (beacon unchanged)", len(p.Base))
	}
	if p.MoonAlbedo != nil {
		t.Error("steady-state tick re-sent the moon albedo")
	}
	if p.Moon == nil {
		t.Error("steady-state tick Moon = nil, want parameters")
	}
}

func TestWorldFieldChangeRegenerates(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()

	e.Advance(1.0/30, 1920, 1080, cfg)
	first := e.Layout().Buildings

	cfg.BuildingFrequency = 0.05
	p := tick(e, clock, 1.0/30, cfg)

	if !p.Clear {
		t.Error("frequency change did not set Clear")
	}
	if got := len(e.Layout().Buildings); got != 96 {
		t.Errorf("regenerated %d buildings at 0.05, want 96", got)
	}
	if len(first) == len(e.Layout().Buildings) {
		t.Error("layout not regenerated after frequency change")
	}
}

func TestSimulatorFieldChangeKeepsWorld(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()

	e.Advance(1.0/30, 1920, 1080, cfg)
	first := e.Layout().Buildings

	cfg.ShootingStarTrailHalfLifeSeconds = 5
	cfg.MoonBrightFactor = 0.7
	p := tick(e, clock, 1.0/30, cfg)

	if p.Clear {
		t.Error("trail half-life change set Clear, want incremental update")
	}
	if &first[0] != &e.Layout().Buildings[0] || len(first) != len(e.Layout().Buildings) {
		t.Error("skyline regenerated by a simulator-only config change")
	}
}

func TestWorldExpiryRegenerates(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig() // ClearAfterSeconds: 3600

	e.Advance(1.0/30, 1920, 1080, cfg)

	clock.advance(3601)
	p := e.Advance(1.0/30, 1920, 1080, cfg)
	if !p.Clear {
		t.Error("world older than ClearAfterSeconds did not regenerate")
	}
}

func TestResizeRegenerates(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()

	e.Advance(1.0/30, 1920, 1080, cfg)

	clock.advance(1.0 / 30)
	p := e.Advance(1.0/30, 1280, 720, cfg)
	if !p.Clear {
		t.Error("resize did not set Clear")
	}
	if p.Width != 1280 || p.Height != 720 {
		t.Errorf("payload size = %dx%d, want 1280x720", p.Width, p.Height)
	}
	if p.MoonAlbedo == nil {
		t.Error("resize did not re-send the moon albedo")
	}
}

func TestBeaconBlinkEmitsOnFlip(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig() // 4s period: on for 2s, off for 2s

	e.Advance(1.0/30, 1920, 1080, cfg)
	if e.Beacon() == nil {
		t.Fatal("no beacon on a 63-building skyline")
	}

	// Still within the on-phase: no base sprites.
	p := tick(e, clock, 1, cfg)
	if len(p.Base) != 0 {
		t.Fatalf("tick at +1s emitted %d base sprites, want 0", len(p.Base))
	}

	// Crossing into the off-phase emits exactly the beacon sprite.
	p = tick(e, clock, 1.5, cfg)
	if len(p.Base) != 1 {
		t.Fatalf("tick at +2.5s emitted %d base sprites, want 1 (beacon flip)", len(p.Base))
	}
	sp := p.Base[0]
	if sp.Shape != compose.ShapeCircle {
		t.Errorf("beacon sprite shape = %v, want circle", sp.Shape)
	}
	if sp.Color == beaconOn {
		t.Error("beacon sprite uses the lit color in the off-phase")
	}
}

func TestFlasherPeriodChangeRebuildsBeaconOnly(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()

	e.Advance(1.0/30, 1920, 1080, cfg)
	first := e.Layout().Buildings

	cfg.FlasherPeriodSeconds = 6
	p := tick(e, clock, 1.0/30, cfg)
	if p.Clear {
		t.Error("flasher period change set Clear, want incremental update")
	}
	if &first[0] != &e.Layout().Buildings[0] {
		t.Error("skyline regenerated by a flasher period change")
	}
	b := e.Beacon()
	if b == nil {
		t.Fatal("beacon dropped by a period change")
	}
	if b.Period() != 6 {
		t.Errorf("beacon period = %v, want 6", b.Period())
	}
	if len(p.Base) != 1 || p.Base[0].Shape != compose.ShapeCircle {
		t.Fatalf("base sprites = %d, want the re-emitted beacon circle", len(p.Base))
	}

	// Disabling the beacon paints over its old position on the persistent
	// base layer instead of rebuilding the world.
	cfg.FlasherPeriodSeconds = 0
	p = tick(e, clock, 1.0/30, cfg)
	if e.Beacon() != nil {
		t.Error("beacon still present after period set to 0")
	}
	if p.Clear {
		t.Error("disabling the beacon set Clear")
	}
	if len(p.Base) != 1 || p.Base[0].Color != (gg.RGBA{A: 1}) {
		t.Fatalf("base sprites = %+v, want one background-colored erase circle", p.Base)
	}
	if &first[0] != &e.Layout().Buildings[0] {
		t.Error("skyline regenerated when the beacon was disabled")
	}

	// Re-enabling restores a beacon on the same skyline.
	cfg.FlasherPeriodSeconds = 4
	p = tick(e, clock, 1.0/30, cfg)
	if e.Beacon() == nil {
		t.Fatal("beacon not restored after re-enabling the period")
	}
	if p.Clear {
		t.Error("re-enabling the beacon set Clear")
	}
	if len(p.Base) != 1 {
		t.Errorf("base sprites = %d, want the re-emitted beacon circle", len(p.Base))
	}
}

func TestBeaconDisabled(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()
	cfg.FlasherPeriodSeconds = 0

	e.Advance(1.0/30, 1920, 1080, cfg)
	if e.Beacon() != nil {
		t.Error("beacon present with zero flasher period, want disabled")
	}
}

func TestMoonPhaseOverride(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()
	cfg.MoonPhaseOverrideEnabled = true
	cfg.MoonPhaseOverride = 0.5 // full moon

	p := e.Advance(1.0/30, 1920, 1080, cfg)
	if p.Moon == nil {
		t.Fatal("Moon = nil")
	}
	if math.Abs(p.Moon.Illuminated-1) > 1e-9 {
		t.Errorf("Illuminated = %v with override 0.5, want 1", p.Moon.Illuminated)
	}
}

func TestKeepFactors(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig() // star trail half-life 0.35s

	p := e.Advance(0.35, 1920, 1080, cfg)
	if math.Abs(p.StarKeep-0.5) > 0.01 {
		t.Errorf("StarKeep = %v for dt equal to the half-life, want ~0.5", p.StarKeep)
	}
	if p.SatelliteKeep <= 0 || p.SatelliteKeep >= 1 {
		t.Errorf("SatelliteKeep = %v, want in (0, 1)", p.SatelliteKeep)
	}
}

func TestDebugOverlay(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)
	cfg := DefaultConfig()

	p := e.Advance(1.0/30, 1920, 1080, cfg)
	if len(p.Overlay) != 0 {
		t.Errorf("overlay emitted %d sprites with debug disabled, want 0", len(p.Overlay))
	}

	cfg.DebugOverlayEnabled = true
	p = tick(e, clock, 1.0/30, cfg)
	if len(p.Overlay) == 0 {
		t.Error("no overlay sprites with debug enabled")
	}

	cfg.DebugMoonMaskEnabled = true
	p = tick(e, clock, 1.0/30, cfg)
	if p.Moon == nil || !p.Moon.Mask {
		t.Error("moon mask flag not propagated to the payload")
	}
}

func TestHitTestScreenCoordinates(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)

	e.Advance(1.0/30, 1920, 1080, DefaultConfig())

	b := e.Layout().Buildings[0]
	// Bottom screen row is ground level, inside every building footprint.
	if _, ok := e.HitTest(b.StartX, 1079); !ok {
		t.Errorf("HitTest(%d, 1079) found nothing over a building footprint", b.StartX)
	}
	// One row above the building's roof.
	if got, ok := e.HitTest(b.StartX, 1080-b.Height-1); ok && got.Z == b.Z {
		t.Errorf("HitTest above roof returned the same building")
	}
	// Sky.
	if _, ok := e.HitTest(b.StartX, 0); ok {
		t.Error("HitTest at the top of the screen found a building")
	}
}

func TestAdvanceNegativeDt(t *testing.T) {
	clock := newTestClock()
	e := newTestEngine(clock)

	p := e.Advance(-5, 1920, 1080, DefaultConfig())
	if p.StarKeep < 1 {
		t.Errorf("StarKeep = %v for clamped zero dt, want 1", p.StarKeep)
	}
}
