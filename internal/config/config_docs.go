package config

import "tools.zach/dev/agentcard/internal/paths"

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated config.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "render.min_font_size")
// to their [FieldDoc] entries. The genconfig tool uses this map to annotate the
// generated config.default.toml with inline comments and alternative examples.
var ConfigDocs = map[string]FieldDoc{
	// ── Root ──────────────────────────────────────────────────────
	"version": {
		Comment: "Config schema version. Do not edit.",
	},

	// ── API ───────────────────────────────────────────────────────
	"api.endpoint": {
		Comment: "Agent list endpoint. Must answer with {\"data\": [...]}.",
	},
	"api.language": {
		Comment: "Locale for display names, e.g. \"ja-JP\". Empty uses the API default.",
		Alternatives: []string{
			`language = "fr-FR"`,
		},
	},
	"api.playable_only": {
		Comment: "Ask the API for playable characters only.\nThe unfiltered list contains a non-playable duplicate.",
	},
	"api.timeout_seconds": {
		Comment: "Per-request timeout in seconds. 0 waits forever.",
		Alternatives: []string{
			"timeout_seconds = 30",
		},
	},
	"api.retry_max": {
		Comment: "Retries after a failed request (0-10). 0 fails on the first error.",
	},
	"api.user_agent": {
		Comment: "User-Agent header sent with every request.",
	},

	// ── Assets ────────────────────────────────────────────────────
	"assets.dir": {
		Comment: "Asset root. Expected layout:\n  images/background.png, images/border.png, images/overlay.png, images/icon.png\n  font/Valorant.ttf\nRun tools/generate-assets to create a default set.",
	},
	"assets.background": {
		Comment: "Override individual asset files. Empty uses the layout under dir.",
		Alternatives: []string{
			`background = "assets/images/background.png"`,
		},
	},
	"assets.border": {
		Alternatives: []string{
			`border = "assets/images/border.png"`,
		},
	},
	"assets.overlay": {
		Alternatives: []string{
			`overlay = "assets/images/overlay.png"`,
		},
	},
	"assets.none_icon": {
		Comment: "Placeholder drawn for abilities without an icon.",
		Alternatives: []string{
			`none_icon = "assets/images/icon.png"`,
		},
	},
	"assets.font": {
		Comment: "Name font. TTF, OTF and WOFF2 are accepted.",
		Alternatives: []string{
			`font = "assets/font/Valorant.ttf"`,
		},
	},

	// ── Render ────────────────────────────────────────────────────
	"render.export_dir": {
		Comment: "Output directory. It must already exist.",
	},
	"render.min_font_size": {
		Comment: "Smallest point size tried when shrinking a long name.\nA name that still does not fit aborts the pass.\nMust be between 1 and 56, the starting name size.",
	},
	"render.resample": {
		Comment: "Resampling filter for portraits and icons.",
		Alternatives: []string{
			`resample = "lanczos"`,
			`resample = "linear"`,
			`resample = "box"`,
			`resample = "nearest"`,
		},
	},
	"render.only": {
		Comment: "Glob patterns over display names. Empty renders every agent.",
		Alternatives: []string{
			`only = ["Jett", "K*"]`,
		},
	},
	"render.skip": {
		Comment: "Glob patterns over display names to leave out. Skip wins over only.",
		Alternatives: []string{
			`skip = ["Sova"]`,
		},
	},

	// ── Log ───────────────────────────────────────────────────────
	"log.level": {
		Comment: "Log level: trace, debug, info, warn, error",
	},
	"log.file": {
		Comment: "Also write logs to this file, rotated by size. Empty logs to stderr only.",
		Alternatives: []string{
			`file = "` + paths.LogFile + `"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Rotate the log file after this many megabytes.",
	},
}
