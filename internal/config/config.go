package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wintk/internal/render"
)

// Metrics sizes the window chrome. Units are pixels for the pixel preset and
// character cells for the terminal preset.
type Metrics struct {
	ButtonSize     int `yaml:"button_size"`     // Title bar button and title bar height.
	BorderWidth    int `yaml:"border_width"`    // Frame width; resize margin is twice this.
	ScrollBarSize  int `yaml:"scrollbar_size"`  // Thickness of a scroll bar.
	MinimizedWidth int `yaml:"minimized_width"` // Width of a minimized window strip.
	MinWindowSize  int `yaml:"min_window_size"` // Smallest width/height of a window.
	MenuPadding    int `yaml:"menu_padding"`    // Horizontal padding around menu item text.
}

// Theme holds colors as #rgb or #rrggbb strings.
type Theme struct {
	Desktop       string `yaml:"desktop"`
	Window        string `yaml:"window"`
	Border        string `yaml:"border"`
	TitleActive   string `yaml:"title_active"`
	TitleInactive string `yaml:"title_inactive"`
	TitleText     string `yaml:"title_text"`
	Text          string `yaml:"text"`
	Button        string `yaml:"button"`
	ButtonPushed  string `yaml:"button_pushed"`
	ScrollTrack   string `yaml:"scroll_track"`
	Slider        string `yaml:"slider"`
	Menu          string `yaml:"menu"`
	MenuHighlight string `yaml:"menu_highlight"`
	Tooltip       string `yaml:"tooltip"`
}

// Palette is a Theme with its colors parsed.
type Palette struct {
	Desktop       render.Color
	Window        render.Color
	Border        render.Color
	TitleActive   render.Color
	TitleInactive render.Color
	TitleText     render.Color
	Text          render.Color
	Button        render.Color
	ButtonPushed  render.Color
	ScrollTrack   render.Color
	Slider        render.Color
	Menu          render.Color
	MenuHighlight render.Color
	Tooltip       render.Color
}

// Input tunes pointer and keyboard handling.
type Input struct {
	TooltipDelayMS int `yaml:"tooltip_delay_ms"`
	DoubleClickMS  int `yaml:"double_click_ms"`
	WheelStep      int `yaml:"wheel_step"`      // Scroll distance per wheel notch.
	KeyScrollStep  int `yaml:"key_scroll_step"` // Scroll distance per arrow key.
}

// TooltipDelay returns the tooltip delay as a duration.
func (i Input) TooltipDelay() time.Duration {
	return time.Duration(i.TooltipDelayMS) * time.Millisecond
}

// DoubleClick returns the double click interval as a duration.
func (i Input) DoubleClick() time.Duration {
	return time.Duration(i.DoubleClickMS) * time.Millisecond
}

// FontSpec names a font file to load at startup.
type FontSpec struct {
	Path string `yaml:"path"`
	Size int    `yaml:"size"`
}

// ImageSpec names an image file to load at startup. A non-zero tile size loads
// it as an image map.
type ImageSpec struct {
	Path       string `yaml:"path"`
	TileWidth  int    `yaml:"tile_width,omitempty"`
	TileHeight int    `yaml:"tile_height,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	Preset   string               `yaml:"preset"`
	Metrics  Metrics              `yaml:"metrics"`
	Theme    Theme                `yaml:"theme"`
	Input    Input                `yaml:"input"`
	LogLevel string               `yaml:"log_level"`
	Display  string               `yaml:"display,omitempty"`
	Fonts    map[string]FontSpec  `yaml:"fonts,omitempty"`
	Images   map[string]ImageSpec `yaml:"images,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{
		LogLevel: "info",
	}
	cfg.applyPreset(DefaultPreset, BuiltinPresets()[DefaultPreset])
	return cfg
}

// UsePreset replaces metrics, theme and input with the named builtin preset.
func (c *Config) UsePreset(name string) error {
	p, ok := BuiltinPresets()[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	c.applyPreset(name, p)
	return nil
}

func (c *Config) applyPreset(name string, p Preset) {
	c.Preset = name
	c.Metrics = p.Metrics
	c.Theme = p.Theme
	c.Input = p.Input
}

// Palette parses the theme colors.
func (c *Config) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		path string
		in   string
		out  *render.Color
	}{
		{"theme.desktop", c.Theme.Desktop, &p.Desktop},
		{"theme.window", c.Theme.Window, &p.Window},
		{"theme.border", c.Theme.Border, &p.Border},
		{"theme.title_active", c.Theme.TitleActive, &p.TitleActive},
		{"theme.title_inactive", c.Theme.TitleInactive, &p.TitleInactive},
		{"theme.title_text", c.Theme.TitleText, &p.TitleText},
		{"theme.text", c.Theme.Text, &p.Text},
		{"theme.button", c.Theme.Button, &p.Button},
		{"theme.button_pushed", c.Theme.ButtonPushed, &p.ButtonPushed},
		{"theme.scroll_track", c.Theme.ScrollTrack, &p.ScrollTrack},
		{"theme.slider", c.Theme.Slider, &p.Slider},
		{"theme.menu", c.Theme.Menu, &p.Menu},
		{"theme.menu_highlight", c.Theme.MenuHighlight, &p.MenuHighlight},
		{"theme.tooltip", c.Theme.Tooltip, &p.Tooltip},
	}
	for _, f := range fields {
		col, err := render.ParseHex(f.in)
		if err != nil {
			return Palette{}, &ValidationError{Path: f.path, Err: err}
		}
		*f.out = col
	}
	return p, nil
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration. Every
// failing field is reported: the result joins one *ValidationError per field.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path string, err error) {
		errs = append(errs, &ValidationError{Path: path, Err: err})
	}

	if _, ok := BuiltinPresets()[c.Preset]; !ok {
		fail("preset", fmt.Errorf("preset must be one of: %s", strings.Join(PresetNames(), ", ")))
	}

	positive := []struct {
		path  string
		value int
	}{
		{"metrics.button_size", c.Metrics.ButtonSize},
		{"metrics.border_width", c.Metrics.BorderWidth},
		{"metrics.scrollbar_size", c.Metrics.ScrollBarSize},
		{"metrics.minimized_width", c.Metrics.MinimizedWidth},
		{"metrics.min_window_size", c.Metrics.MinWindowSize},
		{"input.wheel_step", c.Input.WheelStep},
		{"input.key_scroll_step", c.Input.KeyScrollStep},
		{"input.tooltip_delay_ms", c.Input.TooltipDelayMS},
		{"input.double_click_ms", c.Input.DoubleClickMS},
	}
	for _, p := range positive {
		if p.value <= 0 {
			fail(p.path, fmt.Errorf("must be > 0, got %d", p.value))
		}
	}
	if c.Metrics.MenuPadding < 0 {
		fail("metrics.menu_padding", fmt.Errorf("must be >= 0"))
	}
	chrome := c.Metrics.ButtonSize + 2*c.Metrics.BorderWidth
	switch {
	case c.Metrics.MinWindowSize > 255:
		fail("metrics.min_window_size", fmt.Errorf("must be <= 255, got %d", c.Metrics.MinWindowSize))
	case c.Metrics.MinWindowSize > 0 && c.Metrics.MinWindowSize < chrome:
		fail("metrics.min_window_size", fmt.Errorf("must be at least button_size + 2*border_width (%d)", chrome))
	}

	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fail("log_level", fmt.Errorf("log_level must be one of: debug, info, warn, error"))
	}

	for _, id := range sortedKeys(c.Fonts) {
		f := c.Fonts[id]
		if strings.TrimSpace(f.Path) == "" {
			fail("fonts."+id+".path", fmt.Errorf("path is required"))
		}
		if f.Size <= 0 {
			fail("fonts."+id+".size", fmt.Errorf("size must be > 0"))
		}
	}
	for _, id := range sortedKeys(c.Images) {
		img := c.Images[id]
		if strings.TrimSpace(img.Path) == "" {
			fail("images."+id+".path", fmt.Errorf("path is required"))
		}
		switch {
		case img.TileWidth < 0 || img.TileHeight < 0:
			fail("images."+id, fmt.Errorf("tile size must be >= 0"))
		case (img.TileWidth == 0) != (img.TileHeight == 0):
			fail("images."+id, fmt.Errorf("tile_width and tile_height must be set together"))
		}
	}

	return errors.Join(errs...)
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
