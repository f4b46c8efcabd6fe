// Package typeface loads the card font and fits text to a pixel budget.
//
// A [Source] is the parsed font file. Faces are cheap to create and are made
// fresh for every point size the caller asks for; nothing is cached across
// sizes.
package typeface

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// DPI is fixed so that point sizes map 1:1 to pixels.
const DPI = 72

// ///////////////////////////////////////////////
// Errors
// ///////////////////////////////////////////////

// ResourceError reports a font file that could not be read or parsed.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("font %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ClampedError reports that text still did not fit at the minimum size.
type ClampedError struct {
	Text     string
	MinSize  int
	Width    int
	MaxWidth int
}

func (e *ClampedError) Error() string {
	return fmt.Sprintf("text %q is %dpx wide at the %dpt floor, budget %dpx", e.Text, e.Width, e.MinSize, e.MaxWidth)
}

// ///////////////////////////////////////////////
// Source
// ///////////////////////////////////////////////

// Source is a parsed font ready to produce faces.
type Source struct {
	path string
	font *opentype.Font
}

// Open reads and parses the font file at path. TTF, OTF and WOFF2 files are
// accepted; WOFF2 is converted to SFNT first. Any failure is a
// *ResourceError.
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return Parse(data, path)
}

// Parse builds a Source from raw font bytes. name is only used in errors.
func Parse(data []byte, name string) (*Source, error) {
	if isWOFF2(name, data) {
		sfnt, err := font.ToSFNT(data)
		if err != nil {
			return nil, &ResourceError{Path: name, Err: fmt.Errorf("convert woff2 to sfnt: %w", err)}
		}
		data = sfnt
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &ResourceError{Path: name, Err: err}
	}
	return &Source{path: name, font: f}, nil
}

// Path returns the file the source was loaded from.
func (s *Source) Path() string { return s.path }

// Face returns a new face at size points. The caller owns the face.
func (s *Source) Face(size int) (xfont.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font %s: invalid size %d", s.path, size)
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     DPI,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font %s: face at %dpt: %w", s.path, size, err)
	}
	return face, nil
}

// isWOFF2 checks whether a font file is WOFF2 by extension or magic bytes.
// WOFF2 magic: 0x774F4632 ("wOF2")
func isWOFF2(path string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(path), ".woff2") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}

// ///////////////////////////////////////////////
// Measuring and Fitting
// ///////////////////////////////////////////////

// Measure returns the advance width of text in whole pixels, rounded up.
func Measure(face xfont.Face, text string) int {
	return xfont.MeasureString(face, text).Ceil()
}

// Fit is the outcome of [FitText].
type Fit struct {
	Face xfont.Face
	// Size is the final point size.
	Size int
	// Width is the measured width of the text at Size.
	Width int
	// Shrink is how many points were shed from the starting size.
	Shrink int
}

// FitText shrinks the font one point at a time, starting at size, until text
// measures strictly less than maxWidth. It never grows the font and never goes
// below minSize (values under 1 are treated as 1): if text is still too wide
// there, the fit at minSize is returned together with a *ClampedError. A start
// size under minSize is an error.
func FitText(src *Source, text string, size, maxWidth, minSize int) (Fit, error) {
	minSize = max(minSize, 1)
	if size < minSize {
		return Fit{}, fmt.Errorf("start size %dpt is below the %dpt floor", size, minSize)
	}

	face, err := src.Face(size)
	if err != nil {
		return Fit{}, err
	}
	fit := Fit{Face: face, Size: size, Width: Measure(face, text)}

	for fit.Width >= maxWidth {
		if fit.Size <= minSize {
			return fit, &ClampedError{Text: text, MinSize: minSize, Width: fit.Width, MaxWidth: maxWidth}
		}
		next, err := src.Face(fit.Size - 1)
		if err != nil {
			fit.Face.Close()
			return Fit{}, err
		}
		fit.Face.Close()
		fit.Face = next
		fit.Size--
		fit.Shrink++
		fit.Width = Measure(next, text)
	}
	return fit, nil
}

// IsClamped reports whether err is (or wraps) a *ClampedError.
func IsClamped(err error) bool {
	var ce *ClampedError
	return errors.As(err, &ce)
}
