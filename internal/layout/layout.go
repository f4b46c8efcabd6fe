// Package layout holds the pixel arithmetic shared by the card compositor:
// horizontal centering and the ability strip geometry.
package layout

import "image"

// Ability strip geometry. Icons are square and each slot advances by
// IconStep. The strip is StripTrim pixels narrower than n full slots, which
// leaves 5px of transparent padding after the last icon.
const (
	IconSize  = 40
	IconStep  = 55
	StripTrim = 10
)

// Name text geometry. The name starts at NameSize points and only ever
// shrinks to fit NameMaxWidth.
const (
	NameSize     = 56
	NameMaxWidth = 260
)

// AlignCenter returns the origin that centers a foreground of width fg on a
// background of width bg, top pixels from the top edge. Both halves are
// floored independently, so odd widths can land one pixel left of the true
// center; callers rely on that exact rounding.
func AlignCenter(fg, bg, top int) image.Point {
	return image.Pt(floorDiv(bg, 2)-floorDiv(fg, 2), top)
}

// StripWidth returns the width of an ability strip holding n icons.
// An empty strip is zero wide.
func StripWidth(n int) int {
	return max(n*IconStep-StripTrim, 0)
}

// IconOffset returns the top-left corner of icon i inside the strip.
func IconOffset(i int) image.Point {
	return image.Pt(i*IconStep, 0)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
