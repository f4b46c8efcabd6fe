// google_fonts.go downloads font files from the Google Fonts CSS API. It is
// the fallback when no local name font is available.
//
// Font specs use the format "google:FAMILY:WEIGHT" (e.g. "google:Anton:400").
// Downloaded fonts are cached locally so they aren't re-fetched on every run.

package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/font"
)

// fontURLRe extracts the font file URL from the CSS response.
// Matches: url(https://fonts.gstatic.com/s/anton/v25/xxx.woff2)
var fontURLRe = regexp.MustCompile(`url\((https?://[^)]+)\)`)

// ParseGoogleFontSpec parses a "google:Family:Weight" spec into its parts.
// Returns family, weight, and whether the spec is valid.
func ParseGoogleFontSpec(spec string) (family, weight string, ok bool) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] != "google" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// FontFetcher downloads Google Fonts into a local cache.
type FontFetcher struct {
	// CSSBase is the CSS API endpoint.
	CSSBase string
	// CacheDir holds converted fonts; it is created on first write.
	CacheDir string
	Client   *http.Client
}

// NewFontFetcher returns a FontFetcher for the public Google Fonts API.
func NewFontFetcher(cacheDir string) *FontFetcher {
	return &FontFetcher{
		CSSBase:  "https://fonts.googleapis.com/css2",
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads the font for spec, caching the result. Returns the raw
// font bytes in SFNT (TTF/OTF) format, converting from WOFF2 if necessary.
func (f *FontFetcher) Fetch(spec string) ([]byte, error) {
	family, weight, ok := ParseGoogleFontSpec(spec)
	if !ok {
		return nil, fmt.Errorf("invalid google font spec %q: expected google:FAMILY:WEIGHT", spec)
	}

	cacheFile := filepath.Join(f.CacheDir, fmt.Sprintf("%s-%s.ttf", strings.ReplaceAll(family, " ", "_"), weight))
	if data, err := os.ReadFile(cacheFile); err == nil {
		return data, nil
	}

	cssURL := fmt.Sprintf("%s?family=%s:wght@%s", f.CSSBase, url.QueryEscape(family), weight)
	req, err := http.NewRequest(http.MethodGet, cssURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	// Modern UA to get WOFF2 (we have a converter)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	cssBody, err := f.get(req, 1<<20)
	if err != nil {
		return nil, fmt.Errorf("fetching CSS for %s wght@%s: %w", family, weight, err)
	}
	matches := fontURLRe.FindSubmatch(cssBody)
	if matches == nil {
		return nil, fmt.Errorf("no font URL found in Google Fonts CSS response for %s wght@%s", family, weight)
	}
	fontURL := string(matches[1])

	req, err = http.NewRequest(http.MethodGet, fontURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	fontData, err := f.get(req, 10<<20)
	if err != nil {
		return nil, fmt.Errorf("downloading font file: %w", err)
	}

	fontData, err = toSFNT(fontURL, fontData)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating font cache dir: %w", err)
	}
	if err := os.WriteFile(cacheFile, fontData, 0o644); err != nil {
		// Non-fatal: the font is still usable for this run.
		fmt.Fprintf(os.Stderr, "  warning: failed to cache font: %v\n", err)
	}
	return fontData, nil
}

// get performs req and returns at most limit bytes of a 200 response body.
func (f *FontFetcher) get(req *http.Request, limit int64) ([]byte, error) {
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, req.URL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// toSFNT converts WOFF2 font data to SFNT; other data is returned unchanged.
func toSFNT(name string, data []byte) ([]byte, error) {
	if !isWOFF2(name, data) {
		return data, nil
	}
	sfnt, err := font.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("convert woff2 to sfnt: %w", err)
	}
	return sfnt, nil
}

// isWOFF2 checks whether font data is WOFF2 by name extension or magic bytes.
// WOFF2 magic: 0x774F4632 ("wOF2")
func isWOFF2(name string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(name), ".woff2") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}
