// render.go implements PNG rendering for the generate-assets tool. Each
// Render function returns encoded PNG bytes for one file of the card asset
// tree described by [Style].

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// RenderBackground renders the opaque card background: a vertical gradient
// from BgTop to BgBottom.
func RenderBackground(style Style) ([]byte, error) {
	top, err := ParseHexColor(style.BgTop)
	if err != nil {
		return nil, fmt.Errorf("parse bg_top: %w", err)
	}
	bottom, err := ParseHexColor(style.BgBottom)
	if err != nil {
		return nil, fmt.Errorf("parse bg_bottom: %w", err)
	}
	top.A, bottom.A = 255, 255

	img := image.NewNRGBA(image.Rect(0, 0, style.Size, style.Size))
	for y := range style.Size {
		row := lerp(top, bottom, float64(y)/float64(max(style.Size-1, 1)))
		fillRow(img, y, 0, style.Size, row)
	}
	return encodePNG(img)
}

// RenderBorder renders a transparent canvas with a solid frame BorderWidth
// pixels wide along every edge.
func RenderBorder(style Style) ([]byte, error) {
	c, err := ParseHexColor(style.BorderColor)
	if err != nil {
		return nil, fmt.Errorf("parse border_color: %w", err)
	}
	size, w := style.Size, min(style.BorderWidth, style.Size/2)

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		if y < w || y >= size-w {
			fillRow(img, y, 0, size, c)
			continue
		}
		fillRow(img, y, 0, w, c)
		fillRow(img, y, size-w, size, c)
	}
	return encodePNG(img)
}

// RenderOverlay renders the gradient overlay: fully transparent above
// ShadeStart, then fading into ShadeColor toward the bottom edge so the name
// and ability strip stay readable over any portrait.
func RenderOverlay(style Style) ([]byte, error) {
	shade, err := ParseHexColor(style.ShadeColor)
	if err != nil {
		return nil, fmt.Errorf("parse shade_color: %w", err)
	}
	size := style.Size
	start := int(float64(size) * style.ShadeStart)
	faded := shade
	faded.A = 0

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := start; y < size; y++ {
		t := float64(y-start) / float64(max(size-1-start, 1))
		fillRow(img, y, 0, size, lerp(faded, shade, t))
	}
	return encodePNG(img)
}

// RenderPlaceholder renders the icon used for abilities without one: a
// question mark centered on a tinted square.
func RenderPlaceholder(style Style, otFont *opentype.Font) ([]byte, error) {
	bg, err := ParseHexColor(style.IconBg)
	if err != nil {
		return nil, fmt.Errorf("parse icon_bg: %w", err)
	}
	fg, err := ParseHexColor(style.IconFg)
	if err != nil {
		return nil, fmt.Errorf("parse icon_fg: %w", err)
	}
	size := style.IconSize

	face, err := opentype.NewFace(otFont, &opentype.FaceOptions{
		Size:    float64(size) * 0.7,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	const mark = "?"
	// Center on the glyph's ink bounds, not its advance box.
	bounds, _ := font.BoundString(face, mark)
	glyphW := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	originX := (size-glyphW)/2 - bounds.Min.X.Floor()
	originY := (size-glyphH)/2 - bounds.Min.Y.Floor()

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(originX, originY),
	}
	d.DrawString(mark)
	return encodePNG(img)
}

// fillRow paints pixels [x0,x1) of row y with c.
func fillRow(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	for x := x0; x < x1; x++ {
		img.SetNRGBA(x, y, c)
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
