// Package config provides configuration loading and defaults for agentcard.
//
// Configuration is read from a TOML file (agentcard.toml by default) and then
// overridden by AGENTCARD_* environment variables. A missing file is not an
// error: the built-in defaults reproduce the stock card layout and asset tree.
package config

//go:generate go run ../../cmd/genconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/caarlos0/env/v11"
	"tools.zach/dev/agentcard/internal/layout"
	"tools.zach/dev/agentcard/internal/paths"
)

// CurrentVersion is the only config schema version Load accepts.
const CurrentVersion = 1

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "AGENTCARD_"

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config is the top-level configuration.
type Config struct {
	Version int          `toml:"version"`
	API     APIConfig    `toml:"api" envPrefix:"API_"`
	Assets  AssetsConfig `toml:"assets" envPrefix:"ASSETS_"`
	Render  RenderConfig `toml:"render" envPrefix:"RENDER_"`
	Log     LogConfig    `toml:"log" envPrefix:"LOG_"`
}

// APIConfig controls requests to the game-data API.
type APIConfig struct {
	Endpoint       string `toml:"endpoint" env:"ENDPOINT"`
	Language       string `toml:"language" env:"LANGUAGE"`
	PlayableOnly   bool   `toml:"playable_only" env:"PLAYABLE_ONLY"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	RetryMax       int    `toml:"retry_max" env:"RETRY_MAX"`
	UserAgent      string `toml:"user_agent" env:"USER_AGENT"`
}

// Timeout returns the per-request timeout. Zero means none.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AssetsConfig locates the local card assets. Individual paths are optional;
// an empty value falls back to the stock layout under Dir.
type AssetsConfig struct {
	Dir        string `toml:"dir" env:"DIR"`
	Background string `toml:"background,omitempty" env:"BACKGROUND"`
	Border     string `toml:"border,omitempty" env:"BORDER"`
	Overlay    string `toml:"overlay,omitempty" env:"OVERLAY"`
	NoneIcon   string `toml:"none_icon,omitempty" env:"NONE_ICON"`
	Font       string `toml:"font,omitempty" env:"FONT"`
}

// Resolved returns every asset path with defaults applied.
func (a AssetsConfig) Resolved() Assets {
	d := paths.AssetDir{Root: a.Dir}
	return Assets{
		Background: or(a.Background, d.Background()),
		Border:     or(a.Border, d.Border()),
		Overlay:    or(a.Overlay, d.Overlay()),
		NoneIcon:   or(a.NoneIcon, d.NoneIcon()),
		Font:       or(a.Font, d.Font()),
	}
}

// Assets is a fully resolved set of asset file paths.
type Assets struct {
	Background string
	Border     string
	Overlay    string
	NoneIcon   string
	Font       string
}

// Files returns the resolved paths in compositing order, font last.
func (a Assets) Files() []string {
	return []string{a.Background, a.Border, a.Overlay, a.NoneIcon, a.Font}
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// RenderConfig controls output and card drawing.
type RenderConfig struct {
	ExportDir   string   `toml:"export_dir" env:"EXPORT_DIR"`
	MinFontSize int      `toml:"min_font_size" env:"MIN_FONT_SIZE"`
	Resample    string   `toml:"resample" env:"RESAMPLE"`
	Only        []string `toml:"only" env:"ONLY"`
	Skip        []string `toml:"skip" env:"SKIP"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level     string `toml:"level" env:"LEVEL"`
	File      string `toml:"file" env:"FILE"`
	MaxSizeMB int    `toml:"max_size_mb" env:"MAX_SIZE_MB"`
}

// ///////////////////////////////////////////////
// Defaults
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			Endpoint:       "https://valorant-api.com/v1/agents",
			Language:       "",
			PlayableOnly:   false,
			TimeoutSeconds: 0,
			RetryMax:       0,
			UserAgent:      paths.BinaryName,
		},
		Assets: AssetsConfig{
			Dir: paths.AssetsDir,
		},
		Render: RenderConfig{
			ExportDir:   paths.ExportsDir,
			MinFontSize: 8,
			Resample:    "catmullrom",
			Only:        []string{},
			Skip:        []string{},
		},
		Log: LogConfig{
			Level:     "info",
			File:      "",
			MaxSizeMB: 10,
		},
	}
}

// ///////////////////////////////////////////////
// Example Configuration
// ///////////////////////////////////////////////

// ExampleConfig returns a Config suitable for generating config.default.toml.
// For this project all defaults are good examples.
func ExampleConfig() *Config {
	return DefaultConfig()
}

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

// Load reads the TOML file at path over the defaults, then applies
// environment overrides and validates the result. A missing file yields the
// defaults (still subject to the environment).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays AGENTCARD_* environment variables onto c. Unset
// variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// validResample is the set of accepted resampling filters.
var validResample = map[string]bool{
	"nearest": true, "box": true, "linear": true, "catmullrom": true, "lanczos": true,
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version %d (want %d)", c.Version, CurrentVersion)
	}

	u, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid api.endpoint %q: %w", c.API.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.endpoint %q: must be an absolute http(s) URL", c.API.Endpoint)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must be >= 0, got %d", c.API.TimeoutSeconds)
	}
	if c.API.RetryMax < 0 || c.API.RetryMax > 10 {
		return fmt.Errorf("api.retry_max must be between 0 and 10, got %d", c.API.RetryMax)
	}

	if c.Assets.Dir == "" {
		return fmt.Errorf("assets.dir must not be empty")
	}

	if c.Render.ExportDir == "" {
		return fmt.Errorf("render.export_dir must not be empty")
	}
	if c.Render.MinFontSize < 1 || c.Render.MinFontSize > layout.NameSize {
		return fmt.Errorf("render.min_font_size must be between 1 and %d, got %d", layout.NameSize, c.Render.MinFontSize)
	}
	if !validResample[strings.ToLower(c.Render.Resample)] {
		return fmt.Errorf("invalid render.resample %q: must be nearest, box, linear, catmullrom, or lanczos", c.Render.Resample)
	}
	for _, p := range c.Render.Only {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid render.only pattern %q", p)
		}
	}
	for _, p := range c.Render.Skip {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid render.skip pattern %q", p)
		}
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 1 {
		return fmt.Errorf("log.max_size_mb must be >= 1, got %d", c.Log.MaxSizeMB)
	}

	return nil
}

// ///////////////////////////////////////////////
// Agent Filters
// ///////////////////////////////////////////////

// Selects reports whether an agent with the given display name should be
// rendered. An empty Only list selects everything; Skip wins over Only.
// Patterns are matched case-sensitively against the whole name.
func (c *Config) Selects(name string) bool {
	if matchAny(c.Render.Skip, name) {
		return false
	}
	if len(c.Render.Only) == 0 {
		return true
	}
	return matchAny(c.Render.Only, name)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
