// Package paths centralizes file and directory names used across the project.
// Asset and export locations are defined here as the single source of truth;
// config defaults are built from these values.
package paths

import (
	"path/filepath"
	"strings"
)

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Asset tree layout, relative to the working directory.
const (
	AssetsDir      = "assets"
	ImagesDir      = "images"
	FontDir        = "font"
	BackgroundFile = "background.png"
	BorderFile     = "border.png"
	OverlayFile    = "overlay.png"
	NoneIconFile   = "icon.png"
	FontFile       = "Valorant.ttf"
)

// Output and runtime file names.
const (
	ExportsDir = "exports"
	ExportExt  = ".png"
	ConfigFile = "agentcard.toml"
	LogFile    = "agentcard.log"
	BinaryName = "agentcard"
)

// ///////////////////////////////////////////////
// AssetDir
// ///////////////////////////////////////////////

// AssetDir provides path construction methods rooted at an asset directory.
type AssetDir struct {
	Root string
}

// Background returns the full path to the card background image.
func (d AssetDir) Background() string { return filepath.Join(d.Root, ImagesDir, BackgroundFile) }

// Border returns the full path to the border overlay image.
func (d AssetDir) Border() string { return filepath.Join(d.Root, ImagesDir, BorderFile) }

// Overlay returns the full path to the gradient overlay image.
func (d AssetDir) Overlay() string { return filepath.Join(d.Root, ImagesDir, OverlayFile) }

// NoneIcon returns the full path to the placeholder ability icon.
func (d AssetDir) NoneIcon() string { return filepath.Join(d.Root, ImagesDir, NoneIconFile) }

// Font returns the full path to the name font.
func (d AssetDir) Font() string { return filepath.Join(d.Root, FontDir, FontFile) }

// ///////////////////////////////////////////////
// Exports
// ///////////////////////////////////////////////

// separatorReplacer maps both slash styles to "_" so a display name such as
// "KAY/O" stays a single file inside the export directory.
var separatorReplacer = strings.NewReplacer("/", "_", `\`, "_")

// ExportFileName returns the output file name for an agent display name.
func ExportFileName(displayName string) string {
	return separatorReplacer.Replace(displayName) + ExportExt
}

// ExportPath returns the full output path for an agent inside dir.
func ExportPath(dir, displayName string) string {
	return filepath.Join(dir, ExportFileName(displayName))
}
