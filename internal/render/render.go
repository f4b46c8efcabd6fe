// Package render composites one agent card: background, border, portrait,
// gradient overlay, ability strip and name, in that order. Each call starts
// from a fresh canvas, so no state carries over between agents.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"tools.zach/dev/agentcard/internal/agent"
	"tools.zach/dev/agentcard/internal/atomicfile"
	"tools.zach/dev/agentcard/internal/config"
	"tools.zach/dev/agentcard/internal/layout"
	"tools.zach/dev/agentcard/internal/logger"
	"tools.zach/dev/agentcard/internal/paths"
	"tools.zach/dev/agentcard/internal/typeface"
)

// Card geometry in pixels (font sizes in points at 72 DPI).
const (
	PortraitSize = 479
	NameSize     = layout.NameSize
	NameMaxWidth = layout.NameMaxWidth
	NameTop      = 360
	StripTop     = 420
)

// ///////////////////////////////////////////////
// Errors
// ///////////////////////////////////////////////

// AssetError reports a local asset image that could not be opened or decoded.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string { return fmt.Sprintf("asset %s: %v", e.Path, e.Err) }

func (e *AssetError) Unwrap() error { return e.Err }

// ///////////////////////////////////////////////
// Compositor
// ///////////////////////////////////////////////

// ImageFetcher downloads a remote image. A nil image with a nil error means
// the server had no image for that URL.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (image.Image, error)
}

// Options configures a [Compositor].
type Options struct {
	Assets      config.Assets
	ExportDir   string
	MinFontSize int
	// Resample names the filter for portraits and icons; see [Filter].
	Resample string
	// Logger receives per-layer trace output. Nil uses slog.Default().
	Logger *slog.Logger
}

// Compositor renders agent cards.
type Compositor struct {
	fetch  ImageFetcher
	opts   Options
	filter imaging.ResampleFilter
	logger *slog.Logger
}

// New returns a Compositor that downloads remote images through fetch.
func New(fetch ImageFetcher, opts Options) *Compositor {
	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}
	return &Compositor{fetch: fetch, opts: opts, filter: Filter(opts.Resample), logger: lg}
}

// Filter maps a config resample name to an imaging filter. Empty and unknown
// names fall back to CatmullRom.
func Filter(name string) imaging.ResampleFilter {
	switch strings.ToLower(name) {
	case "nearest":
		return imaging.NearestNeighbor
	case "box":
		return imaging.Box
	case "linear":
		return imaging.Linear
	case "lanczos":
		return imaging.Lanczos
	default:
		return imaging.CatmullRom
	}
}

// Render composites the card for a and returns the canvas. The canvas has
// the background's dimensions and is fully opaque.
func (c *Compositor) Render(ctx context.Context, a agent.Agent) (*image.NRGBA, error) {
	assets := c.opts.Assets
	lg := c.logger.With("agent", a.Name)

	bg, err := openAsset(assets.Background)
	if err != nil {
		return nil, err
	}
	canvas := opaque(bg)
	width := canvas.Bounds().Dx()
	logger.Trace(lg, "background", "width", width, "height", canvas.Bounds().Dy())

	border, err := openAsset(assets.Border)
	if err != nil {
		return nil, err
	}
	canvas = imaging.Overlay(canvas, border, image.Pt(0, 0), 1.0)

	portrait, err := c.fetch.FetchImage(ctx, a.Portrait)
	if err != nil {
		return nil, fmt.Errorf("portrait: %w", err)
	}
	if portrait != nil {
		portrait = imaging.Resize(portrait, PortraitSize, PortraitSize, c.filter)
		// Centered on the difference, so an even-width canvas puts the
		// spare column on the right.
		at := image.Pt((width-PortraitSize)/2, 0)
		canvas = imaging.Overlay(canvas, portrait, at, 1.0)
		logger.Trace(lg, "portrait", "x", at.X, "y", at.Y)
	} else {
		lg.Debug("no portrait", "url", a.Portrait)
	}

	overlay, err := openAsset(assets.Overlay)
	if err != nil {
		return nil, err
	}
	canvas = imaging.Overlay(canvas, overlay, image.Pt(0, 0), 1.0)

	strip, err := c.abilityStrip(ctx, lg, a.Abilities)
	if err != nil {
		return nil, err
	}
	if strip != nil {
		at := layout.AlignCenter(strip.Bounds().Dx(), width, StripTop)
		canvas = imaging.Overlay(canvas, strip, at, 1.0)
		logger.Trace(lg, "strip", "x", at.X, "y", at.Y, "icons", len(a.Abilities))
	}

	if err := c.drawName(canvas, lg, a.Name); err != nil {
		return nil, err
	}
	return canvas, nil
}

// abilityStrip builds the transparent row of ability icons. It returns nil
// when there are no abilities.
func (c *Compositor) abilityStrip(ctx context.Context, lg *slog.Logger, abilities []agent.Ability) (*image.NRGBA, error) {
	w := layout.StripWidth(len(abilities))
	if w == 0 {
		return nil, nil
	}
	strip := imaging.New(w, layout.IconSize, color.NRGBA{})

	var placeholder image.Image
	for i, ab := range abilities {
		var icon image.Image
		if ab.Icon != "" {
			img, err := c.fetch.FetchImage(ctx, ab.Icon)
			if err != nil {
				return nil, fmt.Errorf("ability %d icon: %w", i, err)
			}
			icon = img
		}
		if icon == nil {
			if placeholder == nil {
				img, err := openAsset(c.opts.Assets.NoneIcon)
				if err != nil {
					return nil, err
				}
				placeholder = img
			}
			icon = placeholder
			logger.Trace(lg, "placeholder icon", "slot", ab.Slot, "index", i)
		}
		icon = imaging.Resize(icon, layout.IconSize, layout.IconSize, c.filter)
		strip = imaging.Overlay(strip, icon, layout.IconOffset(i), 1.0)
	}
	return strip, nil
}

// drawName draws name in white, shrinking the font until it fits
// NameMaxWidth. The text's top edge sits at NameTop plus half the shrink so
// smaller text stays vertically centered on the same line.
func (c *Compositor) drawName(canvas *image.NRGBA, lg *slog.Logger, name string) error {
	src, err := typeface.Open(c.opts.Assets.Font)
	if err != nil {
		return err
	}
	fit, err := typeface.FitText(src, name, NameSize, NameMaxWidth, c.opts.MinFontSize)
	if err != nil {
		if fit.Face != nil {
			fit.Face.Close()
		}
		return fmt.Errorf("name: %w", err)
	}
	defer fit.Face.Close()

	at := layout.AlignCenter(fit.Width, canvas.Bounds().Dx(), NameTop+fit.Shrink/2)
	ascent := fit.Face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: fit.Face,
		Dot:  fixed.Point26_6{X: fixed.I(at.X), Y: fixed.I(at.Y) + ascent},
	}
	d.DrawString(name)
	logger.Trace(lg, "name", "size", fit.Size, "width", fit.Width, "x", at.X, "y", at.Y)
	return nil
}

// ///////////////////////////////////////////////
// Export
// ///////////////////////////////////////////////

// Export renders a and writes it as PNG to the export directory, replacing
// any previous card for the same name. The directory must already exist.
// Export returns the path written.
func (c *Compositor) Export(ctx context.Context, a agent.Agent) (string, error) {
	canvas, err := c.Render(ctx, a)
	if err != nil {
		return "", err
	}
	path := paths.ExportPath(c.opts.ExportDir, a.Name)
	err = atomicfile.WriteFunc(path, 0o644, func(w io.Writer) error {
		return png.Encode(w, canvas)
	})
	if err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

// openAsset decodes a local image file.
func openAsset(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return img, nil
}

// opaque copies img into a new canvas with every alpha value forced to 255.
// Color channels keep their stored values, so transparent regions of the
// background show whatever color they carry.
func opaque(img image.Image) *image.NRGBA {
	canvas := imaging.Clone(img)
	for i := 3; i < len(canvas.Pix); i += 4 {
		canvas.Pix[i] = 0xff
	}
	return canvas
}
