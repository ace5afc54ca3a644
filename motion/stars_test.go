package motion

import (
	"math"
	"testing"
)

func testStarsConfig() StarsConfig {
	return StarsConfig{
		AvgSeconds:           7,
		Speed:                540,
		Brightness:           0.9,
		TrailHalfLifeSeconds: 0.35,
		Direction:            DirectionRandom,
	}
}

// forceSpawn advances with a dt large enough to fire the spawn clock once.
func forceSpawn(t *testing.T, s *Stars) {
	t.Helper()
	before := s.Len()
	for i := 0; i < 100 && s.Len() <= before; i++ {
		s.Advance(10000)
	}
	if s.Len() <= before {
		t.Fatal("no star spawned after repeated large advances")
	}
}

func TestStarsDisabledByDefault(t *testing.T) {
	s := NewStars(testRNG(1), 1920, 1080, testStarsConfig())
	for i := 0; i < 1000; i++ {
		s.Advance(1)
	}
	if s.Len() != 0 {
		t.Errorf("disabled simulator spawned %d stars, want 0", s.Len())
	}
}

func TestStarsSpawnGeometry(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		wantVX func(float64) bool
	}{
		{"down-left", DirectionDownLeft, func(vx float64) bool { return vx < 0 }},
		{"down-right", DirectionDownRight, func(vx float64) bool { return vx > 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testStarsConfig()
			cfg.Direction = tt.dir
			s := NewStars(testRNG(2), 1920, 1080, cfg)
			s.SetEnabled(true)
			forceSpawn(t, s)

			st := s.live[len(s.live)-1]
			if !tt.wantVX(st.vx) {
				t.Errorf("spawned star vx = %v, wrong sign for %s", st.vx, tt.name)
			}
			if st.vy <= 0 {
				t.Errorf("spawned star vy = %v, want downward (positive)", st.vy)
			}
			// 45-degree diagonal: equal magnitude components.
			if math.Abs(st.vx) != st.vy {
				t.Errorf("star velocity (%v, %v), want 45-degree diagonal", st.vx, st.vy)
			}
			if st.maxTravel <= 0 {
				t.Errorf("star maxTravel = %v, want positive", st.maxTravel)
			}
			if st.color.A != 0 {
				t.Errorf("star color alpha = %v, want 0 (additive trail convention)", st.color.A)
			}
		})
	}
}

func TestStarsRetireByTravel(t *testing.T) {
	cfg := testStarsConfig()
	s := NewStars(testRNG(3), 1920, 1080, cfg)
	s.SetEnabled(true)
	forceSpawn(t, s)

	// Push the next spawn far out, then let the live star run its full
	// streak length.
	cfg.AvgSeconds = 3600
	s.SetConfig(cfg)

	for i := 0; i < 100 && s.Len() > 0; i++ {
		s.Advance(0.1)
	}
	if s.Len() != 0 {
		t.Errorf("star still live after 10s at 540 px/s, want retired")
	}
}

func TestStarsDisableClearsAndReenableReschedules(t *testing.T) {
	s := NewStars(testRNG(4), 1920, 1080, testStarsConfig())
	s.SetEnabled(true)
	forceSpawn(t, s)

	s.SetEnabled(false)
	if s.Len() != 0 {
		t.Fatalf("disable left %d live stars, want 0", s.Len())
	}

	// Re-enabling schedules a fresh interval: nothing spawns on a tiny
	// next tick.
	s.SetEnabled(true)
	s.Advance(1e-9)
	if s.Len() != 0 {
		t.Errorf("star spawned immediately after re-enable, want fresh interval")
	}
}

func TestStarsSprites(t *testing.T) {
	s := NewStars(testRNG(5), 1920, 1080, testStarsConfig())
	s.SetEnabled(true)
	forceSpawn(t, s)

	sprites := s.AppendSprites(nil)
	if len(sprites) != s.Len() {
		t.Fatalf("AppendSprites() = %d sprites, want %d", len(sprites), s.Len())
	}
	for _, sp := range sprites {
		if sp.HalfW <= 0 {
			t.Errorf("sprite half-extent = %v, want positive", sp.HalfW)
		}
	}
}

func TestStarsKeep(t *testing.T) {
	s := NewStars(testRNG(6), 1920, 1080, testStarsConfig())
	if got := s.Keep(0.35); got < 0.49 || got > 0.51 {
		t.Errorf("Keep(0.35) = %v, want ~0.5 for a 0.35s half-life", got)
	}

	cfg := testStarsConfig()
	cfg.TrailHalfLifeSeconds = 0
	s.SetConfig(cfg)
	if got := s.Keep(0.1); got != 0 {
		t.Errorf("Keep() with trails disabled = %v, want 0", got)
	}
}

func TestStarsConfigClamped(t *testing.T) {
	cfg := StarsConfig{
		AvgSeconds:           0.001,
		Speed:                -5,
		Brightness:           2,
		TrailHalfLifeSeconds: 100,
	}
	s := NewStars(testRNG(7), 100, 100, cfg)
	if s.cfg.AvgSeconds != 0.5 {
		t.Errorf("AvgSeconds clamped to %v, want 0.5", s.cfg.AvgSeconds)
	}
	if s.cfg.Speed != 1 {
		t.Errorf("Speed clamped to %v, want 1", s.cfg.Speed)
	}
	if s.cfg.Brightness != 1 {
		t.Errorf("Brightness clamped to %v, want 1", s.cfg.Brightness)
	}
	if s.cfg.TrailHalfLifeSeconds != 30 {
		t.Errorf("TrailHalfLifeSeconds clamped to %v, want 30", s.cfg.TrailHalfLifeSeconds)
	}
}
