// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"math"

	"github.com/gogpu/gg"
)

// bakeMoonTile renders the shaded moon disc into a square tile of side
// 2*Radius. The tile combines the albedo bitmap with the terminator: the
// boundary between the illuminated and shadowed hemispheres, approximated
// as an ellipse sweep driven by the illuminated fraction.
//
// The tile only depends on shading parameters, not position, so it is
// rebaked when the phase or albedo changes and merely repositioned on
// every other tick.
func bakeMoonTile(tile, albedo *gg.Pixmap, p MoonParams) {
	d := 2 * p.Radius
	r := float64(p.Radius)

	// cos(theta) of the phase angle; the terminator's semi-minor axis is
	// cosT * the limb half-width at each row.
	cosT := 1 - 2*clamp01(p.Illuminated)

	for y := 0; y < d; y++ {
		v := (float64(y) + 0.5 - r) / r
		vv := 1 - v*v
		var limb float64
		if vv > 0 {
			limb = math.Sqrt(vv)
		}
		for x := 0; x < d; x++ {
			u := (float64(x) + 0.5 - r) / r

			if p.Mask {
				// Flat two-tone visualization of exactly the lit region.
				if u*u+v*v > 1 {
					tile.SetPixel(x, y, gg.Transparent)
					continue
				}
				if litAt(u, limb, cosT, p.Waxing) {
					tile.SetPixel(x, y, gg.RGBA{R: 0.85, G: 0.85, B: 0.7, A: 1})
				} else {
					tile.SetPixel(x, y, gg.RGBA{R: 0.12, G: 0.12, B: 0.16, A: 1})
				}
				continue
			}

			// Textured disc: the albedo's zeroed exterior doubles as the
			// circular clip mask.
			a := albedo.GetPixel(x, y)
			if a.A <= 0 {
				tile.SetPixel(x, y, gg.Transparent)
				continue
			}
			factor := p.Dark
			if litAt(u, limb, cosT, p.Waxing) {
				factor = p.Bright
			}
			g := a.R * factor
			tile.SetPixel(x, y, gg.RGBA{R: g * a.A, G: g * a.A, B: g * a.A, A: a.A})
		}
	}
}

// litAt reports whether the normalized disc coordinate u (at a row whose
// limb half-width is limb) lies on the illuminated side of the terminator.
// Waxing illumination grows from the right limb, waning retreats to the
// left one.
func litAt(u, limb, cosT float64, waxing bool) bool {
	if waxing {
		return u >= cosT*limb
	}
	return u <= -cosT*limb
}

// drawMoonOnto composites the baked tile over a CPU target at the moon's
// current position (headless path).
func drawMoonOnto(out, tile *gg.Pixmap, p MoonParams) {
	d := tile.Width()
	x0 := int(math.Round(p.X)) - d/2
	y0 := int(math.Round(p.Y)) - d/2

	src := tile.Data()
	dst := out.Data()
	w, h := out.Width(), out.Height()

	for ty := 0; ty < d; ty++ {
		oy := y0 + ty
		if oy < 0 || oy >= h {
			continue
		}
		for tx := 0; tx < d; tx++ {
			ox := x0 + tx
			if ox < 0 || ox >= w {
				continue
			}
			si := (ty*d + tx) * 4
			sa := float64(src[si+3]) / 255
			if sa <= 0 {
				continue
			}
			di := (oy*w + ox) * 4
			inv := 1 - sa
			dst[di+0] = u8(float64(src[si+0])/255 + float64(dst[di+0])/255*inv)
			dst[di+1] = u8(float64(src[si+1])/255 + float64(dst[di+1])/255*inv)
			dst[di+2] = u8(float64(src[si+2])/255 + float64(dst[di+2])/255*inv)
			dst[di+3] = u8(sa + float64(dst[di+3])/255*inv)
		}
	}
}

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
