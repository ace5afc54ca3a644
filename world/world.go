package world

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/gogpu/gg"
)

// Building is a single skyline building. Buildings are small value records
// kept in a contiguous, startX-sorted slice; Z is the insertion index and
// serves only as the front/back tiebreak for overlapping silhouettes.
//
// Geometry lives in ground coordinates: the ground line is y = 0 and the
// building spans y in [0, Height). Callers convert to screen coordinates
// when drawing.
type Building struct {
	StartX int
	Width  int
	Height int
	Z      int
	Style  Style
}

// Style holds a building's palette and window-light grid parameters.
type Style struct {
	// Body is the silhouette fill color.
	Body gg.RGBA

	// Window is the lit-window color.
	Window gg.RGBA

	// CellW, CellH is the window grid pitch in pixels (window plus gap).
	CellW, CellH int

	// LitChance is the probability that a given grid cell is lit.
	LitChance float64

	// Seed drives the deterministic lit-window pattern for this building.
	Seed uint64
}

// WindowLit reports whether the window grid cell (cx, cy) of this building
// is lit. The pattern is a pure function of the building's seed, so it is
// stable for the lifetime of the world.
func (b Building) WindowLit(cx, cy int) bool {
	h := mix64(b.Style.Seed ^ uint64(cx)<<32 ^ uint64(uint32(cy)))
	return float64(h>>11)/(1<<53) < b.Style.LitChance
}

// Layout is a generated skyline: a startX-sorted building list plus the
// screen size it was generated for. Immutable once generated.
type Layout struct {
	Buildings []Building
	Width     int
	Height    int
}

// bodyPalette are the silhouette fills cycled across buildings. Dark
// blue-grays so lit windows and the star field carry the scene.
var bodyPalette = []gg.RGBA{
	{R: 0.05, G: 0.06, B: 0.09, A: 1},
	{R: 0.07, G: 0.07, B: 0.11, A: 1},
	{R: 0.04, G: 0.05, B: 0.08, A: 1},
}

// windowPalette are the lit-window colors: warm sodium and cool
// fluorescent tones.
var windowPalette = []gg.RGBA{
	{R: 0.95, G: 0.80, B: 0.45, A: 1},
	{R: 0.85, G: 0.85, B: 0.70, A: 1},
	{R: 0.70, G: 0.80, B: 0.90, A: 1},
}

// Generate builds a skyline for the given screen.
//
// Building count is max(0, round(screenWidth*frequency)). Heights are
// drawn as uniform(0.01, 1) squared times the maximum height; squaring the
// uniform draw biases toward shorter buildings, which reads as a more
// natural skyline than uniform heights. Widths are uniform in
// [widthMin, widthMax], clamped so no building extends past the right
// screen edge. The result is sorted ascending by StartX; HitTest depends
// on that ordering.
//
// A screen too small to place any building yields an empty layout, never
// an error.
func Generate(rng *rand.Rand, screenWidth, screenHeight int, heightFractionMax float64, widthMin, widthMax int, frequency float64) Layout {
	l := Layout{Width: screenWidth, Height: screenHeight}
	if screenWidth <= 0 || screenHeight <= 0 {
		return l
	}

	count := int(float64(screenWidth)*frequency + 0.5)
	if count <= 0 {
		return l
	}

	maxHeight := heightFractionMax * float64(screenHeight)
	if widthMin > widthMax {
		widthMin = widthMax
	}

	l.Buildings = make([]Building, 0, count)
	for i := 0; i < count; i++ {
		u := 0.01 + 0.99*rng.Float64()
		height := int(u * u * maxHeight)
		if height < 1 {
			height = 1
		}

		startX := rng.IntN(screenWidth)
		width := widthMin
		if widthMax > widthMin {
			width += rng.IntN(widthMax - widthMin + 1)
		}
		if startX+width > screenWidth {
			width = screenWidth - startX
		}
		if width < 1 {
			continue
		}

		l.Buildings = append(l.Buildings, Building{
			StartX: startX,
			Width:  width,
			Height: height,
			Z:      i,
			Style: Style{
				Body:      bodyPalette[rng.IntN(len(bodyPalette))],
				Window:    windowPalette[rng.IntN(len(windowPalette))],
				CellW:     4 + rng.IntN(4),
				CellH:     5 + rng.IntN(4),
				LitChance: 0.2 + 0.3*rng.Float64(),
				Seed:      rng.Uint64(),
			},
		})
	}

	slices.SortFunc(l.Buildings, func(a, b Building) int {
		return cmp.Compare(a.StartX, b.StartX)
	})
	return l
}

// HitTest returns the building owning the ground-coordinate point (x, y),
// if any. Among overlapping buildings the front-most one (greatest Z)
// wins.
//
// The scan walks the startX-sorted list and exits as soon as a building
// starts beyond x, so a lookup touches only the O(k) buildings whose span
// can contain the point rather than the whole list.
func (l Layout) HitTest(x, y int) (Building, bool) {
	var best Building
	found := false
	for i := range l.Buildings {
		b := &l.Buildings[i]
		if b.StartX > x {
			break
		}
		if x >= b.StartX+b.Width {
			continue
		}
		if y < 0 || y >= b.Height {
			continue
		}
		if !found || b.Z > best.Z {
			best = *b
			found = true
		}
	}
	return best, found
}

// Tallest returns the tallest building of the layout.
func (l Layout) Tallest() (Building, bool) {
	var best Building
	found := false
	for i := range l.Buildings {
		if !found || l.Buildings[i].Height > best.Height {
			best = l.Buildings[i]
			found = true
		}
	}
	return best, found
}

// mix64 is a 64-bit finalizer (splitmix64) used for the deterministic
// window pattern.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
