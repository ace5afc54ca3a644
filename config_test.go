package nightsky

import "testing"

func TestDefaultConfigWithinRanges(t *testing.T) {
	cfg := DefaultConfig()
	if cfg != cfg.normalized() {
		t.Errorf("DefaultConfig() = %+v, changed by normalization to %+v", cfg, cfg.normalized())
	}
}

func TestNormalizedClamps(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		check func(Config) bool
	}{
		{
			"building frequency ceiling",
			func(c *Config) { c.BuildingFrequency = 1 },
			func(c Config) bool { return c.BuildingFrequency == 0.25 },
		},
		{
			"building frequency floor",
			func(c *Config) { c.BuildingFrequency = -1 },
			func(c Config) bool { return c.BuildingFrequency == 0 },
		},
		{
			"height fraction floor",
			func(c *Config) { c.BuildingHeightMaxFraction = 0 },
			func(c Config) bool { return c.BuildingHeightMaxFraction == 0.05 },
		},
		{
			"width bounds",
			func(c *Config) { c.BuildingWidthMin = 0; c.BuildingWidthMax = 999 },
			func(c Config) bool { return c.BuildingWidthMin == 2 && c.BuildingWidthMax == 256 },
		},
		{
			"width min forced below max",
			func(c *Config) { c.BuildingWidthMin = 200; c.BuildingWidthMax = 100 },
			func(c Config) bool { return c.BuildingWidthMin == 100 && c.BuildingWidthMax == 100 },
		},
		{
			"flasher radius",
			func(c *Config) { c.FlasherRadius = 100 },
			func(c Config) bool { return c.FlasherRadius == 32 },
		},
		{
			"moon diameter percent",
			func(c *Config) { c.MoonDiameterScreenWidthPercent = 0.9 },
			func(c Config) bool { return c.MoonDiameterScreenWidthPercent == 0.25 },
		},
		{
			"traversal seconds floor",
			func(c *Config) { c.MoonTraversalSeconds = 1 },
			func(c Config) bool { return c.MoonTraversalSeconds == 30 },
		},
		{
			"phase override",
			func(c *Config) { c.MoonPhaseOverride = 7 },
			func(c Config) bool { return c.MoonPhaseOverride == 1 },
		},
		{
			"clear after floor",
			func(c *Config) { c.ClearAfterSeconds = 1 },
			func(c Config) bool { return c.ClearAfterSeconds == 60 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			if got := cfg.normalized(); !tt.check(got) {
				t.Errorf("normalized() = %+v, clamp not applied", got)
			}
		})
	}
}

func TestWorldEqual(t *testing.T) {
	a := DefaultConfig()
	b := a

	if !a.worldEqual(b) {
		t.Error("identical configs reported as world-unequal")
	}

	b.BuildingFrequency = 0.05
	if a.worldEqual(b) {
		t.Error("frequency change not detected as world change")
	}

	// Non-world fields must not force regeneration.
	c := a
	c.ShootingStarTrailHalfLifeSeconds = 5
	c.MoonBrightFactor = 0.5
	c.SatelliteSpeed = 100
	if !a.worldEqual(c) {
		t.Error("simulator-only change reported as world change")
	}
}
