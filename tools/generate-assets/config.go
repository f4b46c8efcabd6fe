// config.go defines the asset style and its JSON loading for the
// generate-assets tool. [Style] controls the colors and geometry of every
// generated image; a style file only needs the fields it changes.

package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Style holds the visual settings for the default card assets.
type Style struct {
	// Size is the square card dimension in pixels.
	Size int `json:"size,omitempty"`
	// BgTop and BgBottom are the background gradient end colors.
	BgTop    string `json:"bg_top,omitempty"`
	BgBottom string `json:"bg_bottom,omitempty"`
	// BorderColor and BorderWidth draw the frame in border.png.
	BorderColor string `json:"border_color,omitempty"`
	BorderWidth int    `json:"border_width,omitempty"`
	// ShadeColor is the color the overlay fades into at the bottom edge.
	// ShadeStart is the fraction of the height where the fade begins.
	ShadeColor string  `json:"shade_color,omitempty"`
	ShadeStart float64 `json:"shade_start,omitempty"`
	// IconSize, IconBg and IconFg style the placeholder ability icon.
	IconSize int    `json:"icon_size,omitempty"`
	IconBg   string `json:"icon_bg,omitempty"`
	IconFg   string `json:"icon_fg,omitempty"`
	// Font is a local font path; FontFallback is a Google Fonts spec
	// (e.g. "google:Anton:400") used when Font is not found.
	Font         string `json:"font,omitempty"`
	FontFallback string `json:"font_fallback,omitempty"`
}

// DefaultStyle matches the card layout: a 479px canvas, 40px icons.
func DefaultStyle() Style {
	return Style{
		Size:         479,
		BgTop:        "#1F2731",
		BgBottom:     "#0F1923",
		BorderColor:  "#FF4655",
		BorderWidth:  6,
		ShadeColor:   "#0F1923",
		ShadeStart:   0.55,
		IconSize:     40,
		IconBg:       "#FFFFFF33",
		IconFg:       "#ECE8E1",
		FontFallback: "google:Anton:400",
	}
}

// mergeStyle applies non-zero fields from src onto dst.
func mergeStyle(dst *Style, src Style) {
	if src.Size != 0 {
		dst.Size = src.Size
	}
	if src.BgTop != "" {
		dst.BgTop = src.BgTop
	}
	if src.BgBottom != "" {
		dst.BgBottom = src.BgBottom
	}
	if src.BorderColor != "" {
		dst.BorderColor = src.BorderColor
	}
	if src.BorderWidth != 0 {
		dst.BorderWidth = src.BorderWidth
	}
	if src.ShadeColor != "" {
		dst.ShadeColor = src.ShadeColor
	}
	if src.ShadeStart != 0 {
		dst.ShadeStart = src.ShadeStart
	}
	if src.IconSize != 0 {
		dst.IconSize = src.IconSize
	}
	if src.IconBg != "" {
		dst.IconBg = src.IconBg
	}
	if src.IconFg != "" {
		dst.IconFg = src.IconFg
	}
	if src.Font != "" {
		dst.Font = src.Font
	}
	if src.FontFallback != "" {
		dst.FontFallback = src.FontFallback
	}
}

// LoadStyle returns DefaultStyle overlaid with the JSON file at path. An
// empty path returns the defaults.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, err
	}
	var override Style
	if err := json.Unmarshal(data, &override); err != nil {
		return Style{}, fmt.Errorf("parse %s: %w", path, err)
	}
	mergeStyle(&style, override)
	if style.ShadeStart < 0 || style.ShadeStart >= 1 {
		return Style{}, fmt.Errorf("shade_start must be in [0,1), got %v", style.ShadeStart)
	}
	return style, nil
}
