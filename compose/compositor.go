// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"errors"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Common errors returned by Compositor operations.
var (
	// ErrCompositorClosed is returned when operating on a closed compositor.
	ErrCompositorClosed = errors.New("compose: compositor is closed")

	// ErrNilDrawer is returned when Render is called with a nil drawer.
	ErrNilDrawer = errors.New("compose: nil texture drawer")

	// ErrNoTextureCreator is returned when the drawer cannot create textures.
	ErrNoTextureCreator = errors.New("compose: drawer does not provide a texture creator")

	// ErrInvalidTexture is returned when the host texture does not implement
	// gpucontext.Texture.
	ErrInvalidTexture = errors.New("compose: host texture does not implement gpucontext.Texture")
)

// Compositor owns the persistent per-layer image buffers of the scene and
// turns one Frame per tick into a presentable result.
//
// Layers, in fixed compositing order:
//
//	base (opaque scene, never decays)
//	satellites trail (additive, exponential decay)
//	shooting-stars trail (additive, exponential decay)
//	moon disc (baked tile, repositioned per tick)
//	diagnostic overlay (transient, redrawn per tick)
//
// Compositor is NOT safe for concurrent use: it expects exactly one
// advance-and-render step per tick on a single sequential path.
type Compositor struct {
	width  int
	height int

	base       *layer
	satellites *layer
	stars      *layer

	// overlay is created lazily on the first frame that carries
	// diagnostic sprites.
	overlay *layer

	// Moon state. The tile holds the shaded disc; it is rebaked only when
	// the staged albedo or the shading parameters change.
	moonTile  *layer
	albedo    *gg.Pixmap
	lastMoon  MoonParams
	moonBaked bool

	// out is the reusable headless composite target.
	out *gg.Pixmap

	// presentFailed suppresses repeated warnings for a persistent backend
	// failure; it resets on the next successful present.
	presentFailed bool

	closed bool
}

// NewCompositor creates a compositor with cleared buffers at the given
// logical screen size.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		width:      width,
		height:     height,
		base:       newLayer(width, height, blendOver),
		satellites: newLayer(width, height, blendAdditive),
		stars:      newLayer(width, height, blendAdditive),
	}
}

// Width returns the compositor width in pixels.
func (c *Compositor) Width() int { return c.width }

// Height returns the compositor height in pixels.
func (c *Compositor) Height() int { return c.height }

// Format returns the pixel format of the compositor's buffers.
func (c *Compositor) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Resize reallocates and clears every persistent buffer at the new size.
// It is idempotent: calling it again with the current size does nothing.
func (c *Compositor) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	logger().Info("compose: resize", "width", width, "height", height)

	c.width = width
	c.height = height
	c.base.resize(width, height)
	c.satellites.resize(width, height)
	c.stars.resize(width, height)
	if c.overlay != nil {
		c.overlay.resize(width, height)
	}
	// The moon is screen-size dependent; drop the baked tile and wait for
	// the regenerated albedo.
	c.moonBaked = false
	c.albedo = nil
	c.out = nil
}

// step runs the shared per-tick pipeline: albedo staging, full clear,
// base draw, trail decay and draw, moon tile bake, overlay redraw.
// Compositing (to a surface or a pixmap) happens in the caller.
func (c *Compositor) step(f *Frame) {
	// 1. Stage a new albedo before any draw for this frame.
	if f.MoonAlbedo != nil {
		c.albedo = f.MoonAlbedo
		c.moonBaked = false
	}

	// 2. Full clear on request, before any draws.
	if f.Clear {
		c.base.clear()
		c.satellites.clear()
		c.stars.clear()
		if c.overlay != nil {
			c.overlay.clear()
		}
	}

	// 3. Base layer: standard over compositing, never decayed.
	c.base.draw(f.Base)

	// 4. Trail layers: decay then accumulate this tick's sprites.
	c.satellites.decay(f.SatelliteKeep)
	c.satellites.draw(f.Satellites)
	c.stars.decay(f.StarKeep)
	c.stars.draw(f.Stars)

	// 5. Moon tile.
	if f.Moon != nil {
		c.bakeMoon(*f.Moon)
	}

	// 6. Overlay: transient, rebuilt from scratch each tick.
	if len(f.Overlay) > 0 {
		if c.overlay == nil {
			c.overlay = newLayer(c.width, c.height, blendOver)
		}
		c.overlay.clear()
		c.overlay.draw(f.Overlay)
	} else if c.overlay != nil {
		c.overlay.clear()
	}
}

// bakeMoon rebakes the shaded disc tile if the shading changed.
func (c *Compositor) bakeMoon(p MoonParams) {
	if p.Radius <= 0 {
		return
	}
	// The textured disc needs a staged albedo of matching diameter; the
	// debug mask renders from geometry alone.
	if !p.Mask && (c.albedo == nil || c.albedo.Width() != 2*p.Radius) {
		return
	}
	if c.moonBaked && p.shadingEqual(c.lastMoon) {
		return
	}

	d := 2 * p.Radius
	if c.moonTile == nil {
		c.moonTile = newLayer(d, d, blendOver)
	} else if c.moonTile.pm.Width() != d {
		c.moonTile.resize(d, d)
	}
	bakeMoonTile(c.moonTile.pm, c.albedo, p)
	c.moonTile.nonEmpty = true
	c.moonTile.dirty = true
	c.lastMoon = p
	c.moonBaked = true
}

// skippable reports whether the frame requires no work at all. Beyond the
// frame's own idle test, a lingering overlay from a previous tick still
// needs a clearing pass, and a failed present leaves the surface stale
// until the next draw goes through.
func (c *Compositor) skippable(f *Frame) bool {
	if !f.idle() || c.presentFailed {
		return false
	}
	return c.overlay == nil || !c.overlay.nonEmpty
}

// Render composites the frame onto the host's presentation surface.
//
// Layer buffers are uploaded as textures only when their pixels changed
// this tick, then drawn in fixed order through the host's premultiplied
// blend pipeline. The upload rides the host's command stream for this
// frame; the calling thread never waits for the GPU.
//
// A backend failure is reported once per occurrence (log then error
// return) and that tick's render is skipped; simulation state is
// unaffected and the next tick proceeds normally.
func (c *Compositor) Render(f *Frame, dc gpucontext.TextureDrawer) error {
	if c.closed {
		return ErrCompositorClosed
	}
	if dc == nil {
		return ErrNilDrawer
	}
	c.Resize(f.Width, f.Height)

	if c.skippable(f) {
		return nil
	}

	c.step(f)

	err := c.present(f, dc)
	if err != nil {
		if !c.presentFailed {
			logger().Warn("compose: present failed, frame skipped", "err", err)
			c.presentFailed = true
		}
		return err
	}
	c.presentFailed = false
	return nil
}

// present uploads dirty layers and draws them in compositing order.
func (c *Compositor) present(f *Frame, dc gpucontext.TextureDrawer) error {
	for _, l := range []*layer{c.base, c.satellites, c.stars} {
		tex, err := l.flushTexture(dc)
		if err != nil {
			return err
		}
		if err := dc.DrawTexture(tex, 0, 0); err != nil {
			return err
		}
	}

	if f.Moon != nil && c.moonBaked {
		tex, err := c.moonTile.flushTexture(dc)
		if err != nil {
			return err
		}
		r := float32(c.moonTile.pm.Width()) / 2
		if err := dc.DrawTexture(tex, float32(f.Moon.X)-r, float32(f.Moon.Y)-r); err != nil {
			return err
		}
	}

	if c.overlay != nil && c.overlay.nonEmpty {
		tex, err := c.overlay.flushTexture(dc)
		if err != nil {
			return err
		}
		if err := dc.DrawTexture(tex, 0, 0); err != nil {
			return err
		}
	}

	return nil
}

// RenderToPixmap composites the frame into a CPU pixmap and returns it.
// This is the headless path used for preview generation; unlike Render it
// is synchronous by nature, since the caller needs the pixels back.
//
// The returned pixmap is reused across calls; copy it if it must outlive
// the next tick.
func (c *Compositor) RenderToPixmap(f *Frame) (*gg.Pixmap, error) {
	if c.closed {
		return nil, ErrCompositorClosed
	}
	c.Resize(f.Width, f.Height)

	if c.skippable(f) && c.out != nil {
		return c.out, nil
	}

	c.step(f)

	if c.out == nil {
		c.out = gg.NewPixmap(c.width, c.height)
	}
	c.out.Clear(gg.Black)

	compositeOnto(c.out, c.base.pm)
	compositeOnto(c.out, c.satellites.pm)
	compositeOnto(c.out, c.stars.pm)
	if f.Moon != nil && c.moonBaked {
		drawMoonOnto(c.out, c.moonTile.pm, *f.Moon)
	}
	if c.overlay != nil && c.overlay.nonEmpty {
		compositeOnto(c.out, c.overlay.pm)
	}

	return c.out, nil
}

// compositeOnto blends a full-screen premultiplied layer over the target.
// Trail layers carry zero alpha, for which the over blend degenerates to
// pure addition, matching the GPU path's premultiplied pipeline.
func compositeOnto(out, src *gg.Pixmap) {
	d := out.Data()
	s := src.Data()
	for i := 0; i < len(d); i += 4 {
		sa := float64(s[i+3]) / 255
		if sa <= 0 && s[i] == 0 && s[i+1] == 0 && s[i+2] == 0 {
			continue
		}
		inv := 1 - sa
		d[i+0] = u8(float64(s[i+0])/255 + float64(d[i+0])/255*inv)
		d[i+1] = u8(float64(s[i+1])/255 + float64(d[i+1])/255*inv)
		d[i+2] = u8(float64(s[i+2])/255 + float64(d[i+2])/255*inv)
		d[i+3] = u8(sa + float64(d[i+3])/255*inv)
	}
}

// Close releases all GPU resources held by the compositor. The CPU buffers
// are dropped with the compositor itself. Close is idempotent.
func (c *Compositor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.base.destroyTexture()
	c.satellites.destroyTexture()
	c.stars.destroyTexture()
	if c.overlay != nil {
		c.overlay.destroyTexture()
	}
	if c.moonTile != nil {
		c.moonTile.destroyTexture()
	}
	return nil
}
