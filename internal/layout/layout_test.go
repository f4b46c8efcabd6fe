package layout

import (
	"image"
	"testing"
)

func TestAlignCenter(t *testing.T) {
	tests := []struct {
		name       string
		fg, bg, up int
		want       image.Point
	}{
		{"ability icon", 40, 479, 420, image.Pt(219, 420)},
		{"same width", 479, 479, 0, image.Pt(0, 0)},
		{"odd fg even bg", 41, 480, 7, image.Pt(220, 7)},
		{"even fg odd bg", 40, 481, 0, image.Pt(220, 0)},
		{"default top", 100, 300, 0, image.Pt(100, 0)},
		{"wider than bg", 600, 479, 360, image.Pt(-61, 360)},
		{"negative fg floors", -11, 100, 0, image.Pt(56, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignCenter(tt.fg, tt.bg, tt.up); got != tt.want {
				t.Errorf("AlignCenter(%d, %d, %d) = %v, want %v", tt.fg, tt.bg, tt.up, got, tt.want)
			}
		})
	}
}

func TestStripWidth(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 45},
		{2, 100},
		{4, 210},
	}

	for _, tt := range tests {
		if got := StripWidth(tt.n); got != tt.want {
			t.Errorf("StripWidth(%d) = %d, want %d", tt.n, got, tt.want)
		}
		if tt.n > 0 && StripWidth(tt.n) != tt.n*55-10 {
			t.Errorf("StripWidth(%d) != n*55-10", tt.n)
		}
	}
}

func TestIconOffset(t *testing.T) {
	for i := range 5 {
		want := image.Pt(i*55, 0)
		if got := IconOffset(i); got != want {
			t.Errorf("IconOffset(%d) = %v, want %v", i, got, want)
		}
	}
	// The last icon always fits inside the strip.
	if end := IconOffset(3).X + IconSize; end > StripWidth(4) {
		t.Errorf("last icon ends at %d, strip is %d wide", end, StripWidth(4))
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-10, 2, -5},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
