// generate-assets writes a default asset tree for agentcard.
//
// It renders the four card images (background, border, gradient overlay and
// the placeholder ability icon) from a [Style] and makes sure a name font is
// present. Output goes to {out}/images/ and {out}/font/.
//
// Font resolution:
//  1. {out}/font/Valorant.ttf if it already exists (never overwritten)
//  2. Local file from the style's "font" field
//  3. Google Fonts download from "font_fallback" (e.g. "google:Anton:400")
//
// Usage:
//
//	cd tools/generate-assets && go run .
//	cd tools/generate-assets && go run . -style style.json -out ../../assets -force
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/image/font/opentype"
)

// Asset tree layout, matching what the renderer reads.
const (
	imagesDir      = "images"
	fontDir        = "font"
	fontFile       = "Valorant.ttf"
	backgroundFile = "background.png"
	borderFile     = "border.png"
	overlayFile    = "overlay.png"
	iconFile       = "icon.png"
)

func main() {
	// Default paths assume running from tools/generate-assets/
	outDir := flag.String("out", "../../assets", "Asset root to write images/ and font/ into")
	styleFile := flag.String("style", "", "Optional JSON style overrides")
	force := flag.Bool("force", false, "Overwrite existing images")
	flag.Parse()

	style, err := LoadStyle(*styleFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load style: %v\n", err)
		os.Exit(1)
	}

	fetcher := NewFontFetcher(filepath.Join(*outDir, fontDir, ".cache"))
	n, err := generate(*outDir, style, fetcher, *force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done. Wrote %d files under %s.\n", n, *outDir)
}

// generate writes the asset tree under outDir and returns how many files it
// wrote. Existing images are kept unless force is set.
func generate(outDir string, style Style, fetcher *FontFetcher, force bool) (int, error) {
	for _, d := range []string{imagesDir, fontDir} {
		if err := os.MkdirAll(filepath.Join(outDir, d), 0o755); err != nil {
			return 0, fmt.Errorf("create output dir: %w", err)
		}
	}

	written := 0
	fontPath := filepath.Join(outDir, fontDir, fontFile)
	fontBytes, fresh, err := resolveFont(style, fontPath, fetcher)
	if err != nil {
		return 0, err
	}
	if fresh {
		if err := os.WriteFile(fontPath, fontBytes, 0o644); err != nil {
			return 0, fmt.Errorf("write %s: %w", fontPath, err)
		}
		fmt.Printf("  %s/%s\n", fontDir, fontFile)
		written++
	}

	otFont, err := opentype.Parse(fontBytes)
	if err != nil {
		return written, fmt.Errorf("parse font: %w", err)
	}

	images := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{backgroundFile, func() ([]byte, error) { return RenderBackground(style) }},
		{borderFile, func() ([]byte, error) { return RenderBorder(style) }},
		{overlayFile, func() ([]byte, error) { return RenderOverlay(style) }},
		{iconFile, func() ([]byte, error) { return RenderPlaceholder(style, otFont) }},
	}
	for _, img := range images {
		outPath := filepath.Join(outDir, imagesDir, img.name)
		if !force {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Printf("  %s/%s (exists, skipped)\n", imagesDir, img.name)
				continue
			}
		}
		data, err := img.render()
		if err != nil {
			return written, fmt.Errorf("render %s: %w", img.name, err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Printf("  %s/%s\n", imagesDir, img.name)
		written++
	}
	return written, nil
}

// resolveFont returns SFNT font bytes using the fallback chain in the package
// doc. fresh is true when the bytes did not come from fontPath and should be
// written there.
func resolveFont(style Style, fontPath string, fetcher *FontFetcher) (data []byte, fresh bool, err error) {
	if data, err := os.ReadFile(fontPath); err == nil {
		fmt.Printf("  font: %s (existing)\n", fontPath)
		return data, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("read %s: %w", fontPath, err)
	}

	if style.Font != "" {
		if data, err := os.ReadFile(style.Font); err == nil {
			fmt.Printf("  font: %s (local)\n", style.Font)
			sfnt, err := toSFNT(style.Font, data)
			return sfnt, err == nil, err
		}
	}

	if style.FontFallback != "" {
		if family, weight, ok := ParseGoogleFontSpec(style.FontFallback); ok {
			fmt.Printf("  font: %s wght@%s (Google Fonts)\n", family, weight)
			data, err := fetcher.Fetch(style.FontFallback)
			if err != nil {
				return nil, false, fmt.Errorf("google fonts fallback failed: %w", err)
			}
			return data, true, nil
		}
	}

	return nil, false, fmt.Errorf("no font available (set \"font\" or \"font_fallback\" in the style file)")
}
