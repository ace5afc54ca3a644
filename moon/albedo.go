package moon

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// baseResolution is the side length of the synthesized albedo before
// resampling. The texture is synthesized once at this fixed resolution
// regardless of the on-screen radius, so the surface features are stable
// across resizes.
const baseResolution = 64

// Brightness is mapped into [albedoFloor, albedoCeil] rather than the full
// 8-bit range; reserving the extremes avoids pure black/white banding
// against the shading factors applied at draw time.
const (
	albedoFloor = 25
	albedoCeil  = 240
)

// mare is a Gaussian depression in the base brightness, a dark "sea".
// Positions and radii are in normalized disc coordinates.
type mare struct {
	x, y, radius, depth float64
}

// maria are fixed, loosely modeled on the near side's prominent seas.
var maria = []mare{
	{-0.30, -0.35, 0.30, 0.25}, // Imbrium
	{0.15, -0.30, 0.20, 0.22},  // Serenitatis
	{0.35, -0.05, 0.22, 0.20},  // Tranquillitatis
	{0.60, -0.15, 0.12, 0.18},  // Crisium
	{-0.15, 0.30, 0.25, 0.15},  // Nubium
	{-0.55, 0.00, 0.30, 0.20},  // Procellarum
}

// Radius derives the moon's pixel radius from the screen width and the
// configured diameter percentage, clamped into [0.001, 0.25] so the disc
// stays visible without dominating the scene.
func Radius(screenWidth int, percent float64) int {
	if percent < 0.001 {
		percent = 0.001
	}
	if percent > 0.25 {
		percent = 0.25
	}
	return int(float64(screenWidth)*percent/2 + 0.5)
}

// Albedo synthesizes the grayscale albedo bitmap at the given pixel
// diameter. The result is fully deterministic: the noise and crater
// stages use integer bit-mixing hashes rather than a seeded PRNG, so the
// texture is identical on every run.
//
// Pixels outside the unit circle carry zero alpha; the renderer uses that
// exterior as the disc's clip mask.
//
// Regenerate only when the diameter changes, not per frame.
func Albedo(diameter int) *gg.Pixmap {
	if diameter < 2 {
		diameter = 2
	}

	base := synthesize()
	if diameter == baseResolution {
		return gg.FromImage(base)
	}

	// Nearest-neighbor keeps the hard alpha edge of the clip mask intact.
	dst := image.NewRGBA(image.Rect(0, 0, diameter, diameter))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return gg.FromImage(dst)
}

// synthesize renders the base-resolution albedo.
func synthesize() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, baseResolution, baseResolution))

	for y := 0; y < baseResolution; y++ {
		ny := (float64(y)+0.5)/baseResolution*2 - 1
		for x := 0; x < baseResolution; x++ {
			nx := (float64(x)+0.5)/baseResolution*2 - 1
			rr := nx*nx + ny*ny
			if rr > 1 {
				img.SetRGBA(x, y, color.RGBA{})
				continue
			}

			// Base brightness with mild radial limb darkening.
			b := 0.92 - 0.22*rr

			// Dark seas: subtract Gaussian depressions.
			for _, m := range maria {
				dx := nx - m.x
				dy := ny - m.y
				b -= m.depth * math.Exp(-(dx*dx+dy*dy)/(m.radius*m.radius))
			}

			// Small-amplitude surface noise from a bit-mixing hash.
			h := hash2(uint64(x), uint64(y))
			b += (float64(h>>11)/(1<<53) - 0.5) * 0.08

			// Sparse bright crater rims: a secondary hash clearing a high
			// threshold marks a highlight.
			h2 := hash2(uint64(x)*0x9e37+13, uint64(y)*0x85eb+7)
			if float64(h2>>11)/(1<<53) > 0.985 {
				b += 0.18
			}

			if b < 0 {
				b = 0
			}
			if b > 1 {
				b = 1
			}
			g := uint8(albedoFloor + b*(albedoCeil-albedoFloor))
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}

// hash2 mixes two coordinates into a 64-bit hash (splitmix64 finalizer).
func hash2(x, y uint64) uint64 {
	v := x*0x9e3779b97f4a7c15 ^ y*0xbf58476d1ce4e5b9
	v += 0x9e3779b97f4a7c15
	v = (v ^ (v >> 30)) * 0xbf58476d1ce4e5b9
	v = (v ^ (v >> 27)) * 0x94d049bb133111eb
	return v ^ (v >> 31)
}
