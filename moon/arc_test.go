package moon

import (
	"math"
	"testing"
)

func testArc(leftToRight bool) Arc {
	return Arc{
		ScreenWidth:   1920,
		Radius:        26,
		BaseY:         378,
		Amplitude:     216,
		PeriodSeconds: 3600,
		LeftToRight:   leftToRight,
	}
}

func TestArcEndpoints(t *testing.T) {
	a := testArc(true)

	x, y := a.Center(0)
	if x != 26 {
		t.Errorf("Center(0) x = %v, want left inset 26", x)
	}
	if y != a.BaseY {
		t.Errorf("Center(0) y = %v, want baseline %v", y, a.BaseY)
	}

	// Mid-traversal: horizontal midpoint, full amplitude above the
	// baseline (screen y grows downward).
	x, y = a.Center(1800)
	if math.Abs(x-960) > 1e-9 {
		t.Errorf("Center(T/2) x = %v, want 960", x)
	}
	if math.Abs(y-(a.BaseY-a.Amplitude)) > 1e-9 {
		t.Errorf("Center(T/2) y = %v, want %v", y, a.BaseY-a.Amplitude)
	}
}

func TestArcWrapsAtPeriod(t *testing.T) {
	a := testArc(true)
	x0, y0 := a.Center(0)
	x1, y1 := a.Center(3600)
	if x0 != x1 || y0 != y1 {
		t.Errorf("Center(T) = (%v, %v), want wrap to Center(0) = (%v, %v)", x1, y1, x0, y0)
	}
}

func TestArcDirection(t *testing.T) {
	ltr := testArc(true)
	rtl := testArc(false)

	x, _ := rtl.Center(0)
	if x != 1920-26 {
		t.Errorf("right-to-left Center(0) x = %v, want right inset %v", x, 1920-26)
	}

	// A quarter in, the two directions must be mirror images.
	xl, _ := ltr.Center(900)
	xr, _ := rtl.Center(900)
	if math.Abs((xl-26)-(1920-26-xr)) > 1e-9 {
		t.Errorf("directions not mirrored: ltr x = %v, rtl x = %v", xl, xr)
	}
}

func TestArcStaysAboveBaseline(t *testing.T) {
	a := testArc(true)
	for s := 0.0; s < 3600; s += 60 {
		_, y := a.Center(s)
		if y > a.BaseY || y < a.BaseY-a.Amplitude {
			t.Errorf("Center(%v) y = %v, want within [%v, %v]",
				s, y, a.BaseY-a.Amplitude, a.BaseY)
		}
	}
}
