// color_test.go tests [ParseHexColor] with 6- and 8-digit inputs (with and
// without "#" prefix), rejects malformed hex strings, and checks [lerp]
// endpoints.

package main

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#FF4655", color.NRGBA{R: 0xFF, G: 0x46, B: 0x55, A: 255}},
		{"#FFFFFF", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}},
		{"#000000", color.NRGBA{R: 0, G: 0, B: 0, A: 255}},
		{"0F1923", color.NRGBA{R: 0x0F, G: 0x19, B: 0x23, A: 255}}, // no # prefix
		{"#0F192380", color.NRGBA{R: 0x0F, G: 0x19, B: 0x23, A: 0x80}},
		{"#00000000", color.NRGBA{}},
	}

	for _, tt := range tests {
		c, err := ParseHexColor(tt.input)
		if err != nil {
			t.Errorf("ParseHexColor(%q) error: %v", tt.input, err)
			continue
		}
		if c != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, c, tt.want)
		}
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	invalid := []string{"#FFF", "#GGGGGG", "", "12345", "#1234567"}
	for _, s := range invalid {
		_, err := ParseHexColor(s)
		if err == nil {
			t.Errorf("ParseHexColor(%q) expected error, got nil", s)
		}
	}
}

func TestLerp(t *testing.T) {
	a := color.NRGBA{R: 0, G: 100, B: 200, A: 0}
	b := color.NRGBA{R: 200, G: 100, B: 0, A: 255}
	if got := lerp(a, b, 0); got != a {
		t.Errorf("lerp(t=0) = %v, want %v", got, a)
	}
	if got := lerp(a, b, 1); got != b {
		t.Errorf("lerp(t=1) = %v, want %v", got, b)
	}
	if got := lerp(a, b, 0.5); got.R != 100 || got.G != 100 || got.B != 100 {
		t.Errorf("lerp(t=0.5) = %v, want midpoint", got)
	}
}
