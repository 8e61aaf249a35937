package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_ValidAndUsesDefaultPreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Preset != DefaultPreset {
		t.Fatalf("expected preset %q, got %q", DefaultPreset, cfg.Preset)
	}
	if cfg.Metrics.BorderWidth != 4 || cfg.Metrics.ScrollBarSize != 17 || cfg.Metrics.MinimizedWidth != 200 {
		t.Fatalf("unexpected pixel metrics: %+v", cfg.Metrics)
	}
}

func TestBuiltinPresets_AllValidate(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.applyPreset(name, BuiltinPresets()[name])
			if err := cfg.Validate(); err != nil {
				t.Fatalf("preset %q invalid: %v", name, err)
			}
		})
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Preset != DefaultPreset {
		t.Fatalf("expected default preset, got %q", res.Config.Preset)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Metrics != DefaultConfig().Metrics {
		t.Fatalf("expected default metrics, got %+v", res.Config.Metrics)
	}
}

func TestLoadFromPath_PresetWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"preset: terminal",
		"metrics:",
		"  minimized_width: 24",
		"theme:",
		"  desktop: \"#123\"",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Metrics.ButtonSize != 1 {
		t.Fatalf("expected terminal button size, got %d", cfg.Metrics.ButtonSize)
	}
	if cfg.Metrics.MinimizedWidth != 24 {
		t.Fatalf("expected override 24, got %d", cfg.Metrics.MinimizedWidth)
	}
	palette, err := cfg.Palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if palette.Desktop.Hex() != "#112233" {
		t.Fatalf("desktop = %s", palette.Desktop.Hex())
	}

	val, src, err := Explain(res, "metrics.minimized_width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 24 || src.Kind != SourceFile || src.Line != 3 {
		t.Fatalf("unexpected explain: %v %+v", val, src)
	}
	_, src, err = Explain(res, "metrics.button_size")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourcePreset || src.Name != "terminal" {
		t.Fatalf("expected preset source, got %+v", src)
	}
}

func TestLoadFromPath_UnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "preset: neon\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "preset" || verr.Source.Line != 1 {
		t.Fatalf("unexpected error context: %+v", verr)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(configD, "10-base.yaml"), "input:\n  wheel_step: 5\n  key_scroll_step: 3\n")
	writeFile(t, filepath.Join(configD, "20-override.yaml"), "input:\n  wheel_step: 6\n")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: config.d\nlog_level: debug\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Input.WheelStep != 6 || res.Config.Input.KeyScrollStep != 3 {
		t.Fatalf("unexpected input: %+v", res.Config.Input)
	}
	if res.Config.LogLevel != "debug" {
		t.Fatalf("expected debug, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	if _, err := LoadFromPath(a); err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero border", func(c *Config) { c.Metrics.BorderWidth = 0 }, "metrics.border_width"},
		{"negative padding", func(c *Config) { c.Metrics.MenuPadding = -1 }, "metrics.menu_padding"},
		{"min size below chrome", func(c *Config) { c.Metrics.MinWindowSize = 20 }, "metrics.min_window_size"},
		{"bad color", func(c *Config) { c.Theme.Slider = "blue" }, "theme.slider"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"zero wheel", func(c *Config) { c.Input.WheelStep = 0 }, "input.wheel_step"},
		{"font without path", func(c *Config) { c.Fonts = map[string]FontSpec{"f": {Size: 10}} }, "fonts.f.path"},
		{"half tile size", func(c *Config) { c.Images = map[string]ImageSpec{"i": {Path: "x.png", TileWidth: 8}} }, "images.i"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func validationPaths(err error) []string {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	var paths []string
	for _, e := range errs {
		var verr *ValidationError
		if errors.As(e, &verr) {
			paths = append(paths, verr.Path)
		}
	}
	return paths
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.BorderWidth = 0
	cfg.Theme.Slider = "blue"
	cfg.LogLevel = "trace"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	got := strings.Join(validationPaths(err), ",")
	if want := "metrics.border_width,theme.slider,log_level"; got != want {
		t.Fatalf("paths = %s, want %s", got, want)
	}
}

func TestLoadFromPath_ReportsEveryFieldWithSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log_level: trace\ninput:\n  wheel_step: 0\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if got := strings.Join(validationPaths(err), ","); got != "input.wheel_step,log_level" {
		t.Fatalf("paths = %s", got)
	}
	for _, want := range []string{path + ":1:", path + ":3:"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Preset = "terminal"
	cfg.Metrics = BuiltinPresets()["terminal"].Metrics
	cfg.Fonts = map[string]FontSpec{"mono": {Path: "/fonts/mono.ttf", Size: 12}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Preset != "terminal" || res.Config.Fonts["mono"].Size != 12 {
		t.Fatalf("unexpected reloaded config: %+v", res.Config)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log_level: info\n")

	w, err := NewWatcher(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan *LoadResult, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(res *LoadResult) { got <- res })
	}()

	writeFile(t, path, "log_level: debug\n")

	// The truncating write may be observed before the new content lands.
	for reloaded := false; !reloaded; {
		select {
		case res := <-got:
			reloaded = res.Config.LogLevel == "debug"
		case <-ctx.Done():
			t.Fatalf("timed out waiting for reload")
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestUsePreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.UsePreset("terminal"); err != nil {
		t.Fatalf("UsePreset: %v", err)
	}
	if cfg.Preset != "terminal" || cfg.Metrics.ButtonSize != 1 || cfg.Input.WheelStep != 1 {
		t.Fatalf("terminal preset not applied: %+v", cfg.Metrics)
	}
	if err := cfg.UsePreset("nope"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if cfg.Preset != "terminal" {
		t.Fatalf("failed UsePreset changed preset to %q", cfg.Preset)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Source{Kind: SourceDefault}, "default"},
		{Source{Kind: SourceDefault, Name: "defaults"}, "default:defaults"},
		{Source{Kind: SourcePreset, Name: "terminal"}, "preset:terminal"},
		{Source{Kind: SourceFile, File: "a.yaml", Line: 3, Column: 5}, "file:a.yaml:3:5"},
		{Source{Kind: SourceFile, File: "a.yaml"}, "file:a.yaml"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Fatalf("String(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
