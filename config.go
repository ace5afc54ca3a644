package nightsky

// StarDirection selects the travel direction for newly spawned
// shooting stars.
type StarDirection int

const (
	// StarDirectionRandom picks DownLeft or DownRight per spawn.
	StarDirectionRandom StarDirection = iota

	// StarDirectionDownLeft spawns stars travelling down and to the left.
	StarDirectionDownLeft

	// StarDirectionDownRight spawns stars travelling down and to the right.
	StarDirectionDownRight
)

// Config is the flat set of scene parameters passed into Engine.Advance
// each tick. It is treated as an immutable value: the engine diffs the
// incoming config against the previous one to decide which sub-generators
// need full regeneration versus an incremental update.
//
// Every numeric field has a documented safe range. Out-of-range values are
// silently clamped by the consuming component rather than rejected, so any
// config always produces a visually sane scene.
type Config struct {
	// BuildingFrequency is the number of buildings per pixel of screen
	// width. Building count = round(screenWidth * BuildingFrequency).
	// Clamped to [0, 0.25].
	BuildingFrequency float64 `yaml:"building_frequency"`

	// BuildingHeightMaxFraction is the tallest possible building as a
	// fraction of screen height. Clamped to [0.05, 1].
	BuildingHeightMaxFraction float64 `yaml:"building_height_max_fraction"`

	// BuildingWidthMin and BuildingWidthMax bound the uniform building
	// width draw, in pixels. Clamped to [2, 256]; Min is forced <= Max.
	BuildingWidthMin int `yaml:"building_width_min"`
	BuildingWidthMax int `yaml:"building_width_max"`

	// FlasherPeriodSeconds is the full on+off cycle of the rooftop beacon.
	// A period <= 0 disables the beacon entirely.
	FlasherPeriodSeconds float64 `yaml:"flasher_period_seconds"`

	// FlasherRadius is the beacon radius in pixels. Clamped to [1, 32].
	FlasherRadius float64 `yaml:"flasher_radius"`

	// MoonDiameterScreenWidthPercent sizes the moon: its pixel radius is
	// round(screenWidth * percent / 2). Clamped to [0.001, 0.25].
	MoonDiameterScreenWidthPercent float64 `yaml:"moon_diameter_screen_width_percent"`

	// MoonTraversalSeconds is the full screen-crossing period of the moon
	// arc. Clamped to [30, 86400].
	MoonTraversalSeconds float64 `yaml:"moon_traversal_seconds"`

	// MoonArcBaseYFraction is the arc baseline as a fraction of screen
	// height, and MoonArcAmplitudeFraction the single sine hump's rise
	// above it. Both clamped to [0, 1].
	MoonArcBaseYFraction     float64 `yaml:"moon_arc_base_y_fraction"`
	MoonArcAmplitudeFraction float64 `yaml:"moon_arc_amplitude_fraction"`

	// MoonBrightFactor and MoonDarkFactor scale the albedo inside and
	// outside the terminator. Both clamped to [0, 1].
	MoonBrightFactor float64 `yaml:"moon_bright_factor"`
	MoonDarkFactor   float64 `yaml:"moon_dark_factor"`

	// MoonPhaseOverrideEnabled, when true, replaces the date-derived phase
	// with MoonPhaseOverride, a normalized synodic-cycle position in [0, 1]
	// (0 = new moon, 0.5 = full moon).
	MoonPhaseOverrideEnabled bool    `yaml:"moon_phase_override_enabled"`
	MoonPhaseOverride        float64 `yaml:"moon_phase_override"`

	// ReferenceLatitude fixes the moon's traversal direction for the
	// process lifetime: >= 0 (northern) travels left to right, < 0
	// (southern) right to left.
	ReferenceLatitude float64 `yaml:"reference_latitude"`

	// Shooting star parameters. AvgSeconds is the Poisson mean spawn
	// interval, clamped to [0.5, 3600]. Speed is in px/s. Brightness is
	// clamped to [0, 1]. TrailHalfLifeSeconds is clamped to [0.01, 30];
	// a zero value disables trailing for the layer.
	ShootingStarsEnabled             bool          `yaml:"shooting_stars_enabled"`
	ShootingStarAvgSeconds           float64       `yaml:"shooting_star_avg_seconds"`
	ShootingStarSpeed                float64       `yaml:"shooting_star_speed"`
	ShootingStarBrightness           float64       `yaml:"shooting_star_brightness"`
	ShootingStarTrailHalfLifeSeconds float64       `yaml:"shooting_star_trail_half_life_seconds"`
	ShootingStarDirection            StarDirection `yaml:"shooting_star_direction"`

	// Satellite parameters. The spawn band is a vertical slice of the
	// screen given as fractions of height (top < bottom, both clamped to
	// [0, 1]). Size is the square head sprite half-extent basis in pixels,
	// clamped to [1, 8].
	SatellitesEnabled             bool    `yaml:"satellites_enabled"`
	SatelliteAvgSeconds           float64 `yaml:"satellite_avg_seconds"`
	SatelliteSpeed                float64 `yaml:"satellite_speed"`
	SatelliteSize                 float64 `yaml:"satellite_size"`
	SatelliteTrailHalfLifeSeconds float64 `yaml:"satellite_trail_half_life_seconds"`
	SatelliteBandTopFraction      float64 `yaml:"satellite_band_top_fraction"`
	SatelliteBandBottomFraction   float64 `yaml:"satellite_band_bottom_fraction"`

	// ClearAfterSeconds is the maximum lifetime of a generated world.
	// Once exceeded, the engine discards and regenerates the entire world
	// (buildings, beacon, moon texture) from scratch.
	// Clamped to [60, 604800].
	ClearAfterSeconds float64 `yaml:"clear_after_seconds"`

	// DebugOverlayEnabled draws diagnostic markers (spawn bands, beacon
	// footprint) on a top overlay layer. DebugMoonMaskEnabled substitutes
	// a flat two-tone mask visualizing the illuminated region for the
	// textured moon disc.
	DebugOverlayEnabled  bool `yaml:"debug_overlay_enabled"`
	DebugMoonMaskEnabled bool `yaml:"debug_moon_mask_enabled"`
}

// DefaultConfig returns the stock scene configuration: a 1080p-tuned
// skyline with both simulators enabled and date-derived moon phase.
func DefaultConfig() Config {
	return Config{
		BuildingFrequency:         0.033,
		BuildingHeightMaxFraction: 0.4,
		BuildingWidthMin:          24,
		BuildingWidthMax:          96,
		FlasherPeriodSeconds:      4,
		FlasherRadius:             3,

		MoonDiameterScreenWidthPercent: 80.0 / 3000.0,
		MoonTraversalSeconds:           3600,
		MoonArcBaseYFraction:           0.35,
		MoonArcAmplitudeFraction:       0.2,
		MoonBrightFactor:               1.0,
		MoonDarkFactor:                 0.12,
		ReferenceLatitude:              45,

		ShootingStarsEnabled:             true,
		ShootingStarAvgSeconds:           7,
		ShootingStarSpeed:                540,
		ShootingStarBrightness:           0.9,
		ShootingStarTrailHalfLifeSeconds: 0.35,
		ShootingStarDirection:            StarDirectionRandom,

		SatellitesEnabled:             true,
		SatelliteAvgSeconds:           45,
		SatelliteSpeed:                42,
		SatelliteSize:                 1,
		SatelliteTrailHalfLifeSeconds: 1.2,
		SatelliteBandTopFraction:      0.02,
		SatelliteBandBottomFraction:   0.3,

		ClearAfterSeconds: 3600,
	}
}

// worldEqual reports whether the fields that drive building layout, beacon
// and star-field generation are unchanged. A change forces a full world
// regeneration.
func (c Config) worldEqual(o Config) bool {
	return c.BuildingFrequency == o.BuildingFrequency &&
		c.BuildingHeightMaxFraction == o.BuildingHeightMaxFraction &&
		c.BuildingWidthMin == o.BuildingWidthMin &&
		c.BuildingWidthMax == o.BuildingWidthMax &&
		c.FlasherRadius == o.FlasherRadius
}

// normalized returns the config with every engine-consumed numeric field
// clamped into its documented range. Simulator-owned fields (star and
// satellite parameters) are clamped by the simulators themselves.
func (c Config) normalized() Config {
	c.BuildingFrequency = clampF(c.BuildingFrequency, 0, 0.25)
	c.BuildingHeightMaxFraction = clampF(c.BuildingHeightMaxFraction, 0.05, 1)
	c.BuildingWidthMin = clampI(c.BuildingWidthMin, 2, 256)
	c.BuildingWidthMax = clampI(c.BuildingWidthMax, 2, 256)
	if c.BuildingWidthMin > c.BuildingWidthMax {
		c.BuildingWidthMin = c.BuildingWidthMax
	}
	c.FlasherRadius = clampF(c.FlasherRadius, 1, 32)
	c.MoonDiameterScreenWidthPercent = clampF(c.MoonDiameterScreenWidthPercent, 0.001, 0.25)
	c.MoonTraversalSeconds = clampF(c.MoonTraversalSeconds, 30, 86400)
	c.MoonArcBaseYFraction = clampF(c.MoonArcBaseYFraction, 0, 1)
	c.MoonArcAmplitudeFraction = clampF(c.MoonArcAmplitudeFraction, 0, 1)
	c.MoonBrightFactor = clampF(c.MoonBrightFactor, 0, 1)
	c.MoonDarkFactor = clampF(c.MoonDarkFactor, 0, 1)
	c.MoonPhaseOverride = clampF(c.MoonPhaseOverride, 0, 1)
	c.ClearAfterSeconds = clampF(c.ClearAfterSeconds, 60, 604800)
	return c
}

// clampF restricts v to [lo, hi].
func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampI restricts v to [lo, hi].
func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
