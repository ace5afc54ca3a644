// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import "github.com/gogpu/gg"

// Shape selects the rasterization routine for a sprite.
type Shape uint8

const (
	// ShapeRect is an axis-aligned filled rectangle.
	ShapeRect Shape = iota

	// ShapeRectOutline is a one-pixel axis-aligned rectangle outline.
	ShapeRectOutline

	// ShapeCircle is an anti-aliased filled circle with radius HalfW.
	ShapeCircle
)

// Sprite is a single transient draw instance. Sprites are rebuilt in full
// every tick by the engine and never persisted; persistence (trails) is
// the compositor's responsibility.
//
// Color is premultiplied RGBA. On trail layers the convention is alpha
// zero with brightness carried in RGB, so that the premultiplied "over"
// blend used by compositing degenerates to pure addition.
type Sprite struct {
	// X, Y is the sprite center in pixels.
	X, Y float64

	// HalfW, HalfH are the half-extents in pixels. Circles use HalfW as
	// the radius and ignore HalfH.
	HalfW, HalfH float64

	// Color is the premultiplied sprite color.
	Color gg.RGBA

	// Shape selects the rasterization routine.
	Shape Shape
}

// MoonParams describes the moon disc for one tick.
type MoonParams struct {
	// X, Y is the disc center in pixels.
	X, Y float64

	// Radius is the disc radius in pixels. The staged albedo bitmap side
	// length is 2*Radius.
	Radius int

	// Illuminated is the illuminated fraction in [0, 1].
	Illuminated float64

	// Waxing is true while the illuminated limb is on the waxing side.
	Waxing bool

	// Bright and Dark scale the albedo inside and outside the terminator.
	Bright, Dark float64

	// Mask substitutes a flat two-tone visualization of the illuminated
	// region for the textured disc (debug aid).
	Mask bool
}

// shadingEqual reports whether two moon parameter sets bake to the same
// disc tile (position excluded; the tile is drawn at X, Y each tick).
func (m MoonParams) shadingEqual(o MoonParams) bool {
	return m.Radius == o.Radius &&
		m.Illuminated == o.Illuminated &&
		m.Waxing == o.Waxing &&
		m.Bright == o.Bright &&
		m.Dark == o.Dark &&
		m.Mask == o.Mask
}

// Frame is the immutable bundle handed from the engine to the compositor
// each tick. All slices are owned by the frame and must not be mutated by
// the compositor.
type Frame struct {
	// Width, Height is the logical screen size the frame was built for.
	Width, Height int

	// Clear requests that every persistent layer be cleared to transparent
	// before any draws (full reset, e.g. after world regeneration).
	Clear bool

	// Base holds this tick's opaque scene sprites (buildings, star field,
	// beacon). The base layer never decays.
	Base []Sprite

	// Satellites and Stars hold the trail layers' head sprites.
	Satellites []Sprite
	Stars      []Sprite

	// SatelliteKeep and StarKeep are the per-tick trail decay factors,
	// 0.5^(dt/halfLife). A keep <= 0 clears the layer; a keep >= 1 skips
	// the decay pass.
	SatelliteKeep float64
	StarKeep      float64

	// Moon describes the moon disc, or nil when absent this tick.
	Moon *MoonParams

	// MoonAlbedo is a newly synthesized albedo bitmap, non-nil only on the
	// tick its pixel diameter changed. The compositor stages it before any
	// draw for the frame.
	MoonAlbedo *gg.Pixmap

	// Overlay holds diagnostic sprites drawn above all scene content.
	Overlay []Sprite
}

// idle reports whether the frame requires no compositing work at all:
// no sprites on any layer, no moon, no decay to apply and no clear.
// Skipping such frames is a pure performance optimization.
func (f *Frame) idle() bool {
	return !f.Clear &&
		len(f.Base) == 0 &&
		len(f.Satellites) == 0 &&
		len(f.Stars) == 0 &&
		len(f.Overlay) == 0 &&
		f.Moon == nil &&
		f.MoonAlbedo == nil &&
		f.SatelliteKeep >= 1 &&
		f.StarKeep >= 1
}
