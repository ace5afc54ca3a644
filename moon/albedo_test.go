package moon

import (
	"bytes"
	"testing"
)

func TestRadius(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		want    int
	}{
		{"1080p stock", 1920, 80.0 / 3000.0, 26},
		{"4k stock", 3840, 80.0 / 3000.0, 51},
		{"percent floor", 1920, 0, 1},
		{"percent ceiling", 1920, 0.9, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Radius(tt.width, tt.percent); got != tt.want {
				t.Errorf("Radius(%d, %v) = %d, want %d", tt.width, tt.percent, got, tt.want)
			}
		})
	}
}

func TestAlbedoDeterministic(t *testing.T) {
	a := Albedo(52)
	b := Albedo(52)
	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("Albedo() differs across calls, want identical output")
	}
}

func TestAlbedoGeometry(t *testing.T) {
	for _, d := range []int{16, 52, 64, 128} {
		pm := Albedo(d)
		if pm.Width() != d || pm.Height() != d {
			t.Fatalf("Albedo(%d) size = %dx%d, want %dx%d",
				d, pm.Width(), pm.Height(), d, d)
		}

		// Corners are outside the disc and must be fully transparent; the
		// renderer relies on the exterior as its clip mask.
		for _, pt := range [][2]int{{0, 0}, {d - 1, 0}, {0, d - 1}, {d - 1, d - 1}} {
			if c := pm.GetPixel(pt[0], pt[1]); c.A != 0 {
				t.Errorf("Albedo(%d) corner (%d, %d) alpha = %v, want 0", d, pt[0], pt[1], c.A)
			}
		}

		if c := pm.GetPixel(d/2, d/2); c.A != 1 {
			t.Errorf("Albedo(%d) center alpha = %v, want 1", d, c.A)
		}
	}
}

func TestAlbedoBrightnessRange(t *testing.T) {
	pm := Albedo(64)
	data := pm.Data()
	for i := 0; i < len(data); i += 4 {
		if data[i+3] == 0 {
			continue
		}
		if data[i] != data[i+1] || data[i+1] != data[i+2] {
			t.Fatalf("pixel %d not grayscale: %d %d %d", i/4, data[i], data[i+1], data[i+2])
		}
		if data[i] < albedoFloor || data[i] > albedoCeil {
			t.Fatalf("pixel %d brightness %d outside [%d, %d]", i/4, data[i], albedoFloor, albedoCeil)
		}
	}
}

func TestAlbedoMinimumDiameter(t *testing.T) {
	pm := Albedo(0)
	if pm.Width() < 2 {
		t.Errorf("Albedo(0) width = %d, want clamped to at least 2", pm.Width())
	}
}
