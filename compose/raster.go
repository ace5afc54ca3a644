// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"math"

	"github.com/gogpu/gg"
)

// drawBatch rasterizes every sprite of a layer's batch in one pass.
// All sprites of a batch share a blend mode, so the batch is the unit of
// work and of upload: one batch, one buffer write, one texture update.
func drawBatch(pm *gg.Pixmap, sprites []Sprite, mode blendMode) {
	for i := range sprites {
		s := &sprites[i]
		switch s.Shape {
		case ShapeRect:
			fillRect(pm, s.X-s.HalfW, s.Y-s.HalfH, s.X+s.HalfW, s.Y+s.HalfH, s.Color, mode)
		case ShapeRectOutline:
			strokeRect(pm, s, mode)
		case ShapeCircle:
			fillCircle(pm, s.X, s.Y, s.HalfW, s.Color, mode)
		}
	}
}

// fillRect rasterizes an axis-aligned rectangle with exact edge coverage:
// per-pixel coverage is the product of the pixel's horizontal and vertical
// overlap with the rectangle.
func fillRect(pm *gg.Pixmap, x0, y0, x1, y1 float64, c gg.RGBA, mode blendMode) {
	w, h := pm.Width(), pm.Height()

	px0 := int(math.Floor(x0))
	py0 := int(math.Floor(y0))
	px1 := int(math.Ceil(x1))
	py1 := int(math.Ceil(y1))
	if px0 < 0 {
		px0 = 0
	}
	if py0 < 0 {
		py0 = 0
	}
	if px1 > w {
		px1 = w
	}
	if py1 > h {
		py1 = h
	}

	for py := py0; py < py1; py++ {
		oy := overlap(float64(py), float64(py)+1, y0, y1)
		if oy <= 0 {
			continue
		}
		for px := px0; px < px1; px++ {
			ox := overlap(float64(px), float64(px)+1, x0, x1)
			if ox <= 0 {
				continue
			}
			blendPixel(pm, px, py, c, ox*oy, mode)
		}
	}
}

// strokeRect rasterizes a one-pixel rectangle outline as four edge strips.
func strokeRect(pm *gg.Pixmap, s *Sprite, mode blendMode) {
	x0, y0 := s.X-s.HalfW, s.Y-s.HalfH
	x1, y1 := s.X+s.HalfW, s.Y+s.HalfH

	fillRect(pm, x0, y0, x1, y0+1, s.Color, mode) // top
	fillRect(pm, x0, y1-1, x1, y1, s.Color, mode) // bottom
	fillRect(pm, x0, y0+1, x0+1, y1-1, s.Color, mode)
	fillRect(pm, x1-1, y0+1, x1, y1-1, s.Color, mode)
}

// fillCircle rasterizes an anti-aliased filled circle using gg's signed
// distance field coverage.
func fillCircle(pm *gg.Pixmap, cx, cy, radius float64, c gg.RGBA, mode blendMode) {
	w, h := pm.Width(), pm.Height()

	px0 := int(math.Floor(cx - radius - 1))
	py0 := int(math.Floor(cy - radius - 1))
	px1 := int(math.Ceil(cx + radius + 1))
	py1 := int(math.Ceil(cy + radius + 1))
	if px0 < 0 {
		px0 = 0
	}
	if py0 < 0 {
		py0 = 0
	}
	if px1 > w {
		px1 = w
	}
	if py1 > h {
		py1 = h
	}

	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			cov := gg.SDFFilledCircleCoverage(float64(px)+0.5, float64(py)+0.5, cx, cy, radius)
			if cov <= 0 {
				continue
			}
			blendPixel(pm, px, py, c, cov, mode)
		}
	}
}

// blendPixel combines a premultiplied source color scaled by coverage with
// the existing buffer pixel.
//
//	over:     dst' = src + dst*(1 - src.A)
//	additive: dst' = min(1, dst + src)
func blendPixel(pm *gg.Pixmap, x, y int, c gg.RGBA, cov float64, mode blendMode) {
	data := pm.Data()
	i := (y*pm.Width() + x) * 4

	sr := c.R * cov
	sg := c.G * cov
	sb := c.B * cov
	sa := c.A * cov

	dr := float64(data[i+0]) / 255
	dg := float64(data[i+1]) / 255
	db := float64(data[i+2]) / 255
	da := float64(data[i+3]) / 255

	var r, g, b, a float64
	switch mode {
	case blendAdditive:
		r = dr + sr
		g = dg + sg
		b = db + sb
		a = da + sa
	default: // blendOver
		inv := 1 - sa
		r = sr + dr*inv
		g = sg + dg*inv
		b = sb + db*inv
		a = sa + da*inv
	}

	data[i+0] = u8(r)
	data[i+1] = u8(g)
	data[i+2] = u8(b)
	data[i+3] = u8(a)
}

// overlap returns the length of the intersection of [a0, a1] and [b0, b1].
func overlap(a0, a1, b0, b1 float64) float64 {
	lo := math.Max(a0, b0)
	hi := math.Min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// u8 converts a [0, 1] float to a clamped byte.
func u8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
