package config

import (
	"fmt"
	"sort"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies the selected preset and then the raw overrides.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Preset != nil {
		name := strings.TrimSpace(*raw.Preset)
		preset, ok := BuiltinPresets()[name]
		if !ok {
			return nil, &ValidationError{
				Path: "preset",
				Err:  fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", ")),
			}
		}
		cfg.applyPreset(name, preset)
	}

	if raw.Metrics != nil {
		m := raw.Metrics
		cfg.Metrics.ButtonSize = derefInt(m.ButtonSize, cfg.Metrics.ButtonSize)
		cfg.Metrics.BorderWidth = derefInt(m.BorderWidth, cfg.Metrics.BorderWidth)
		cfg.Metrics.ScrollBarSize = derefInt(m.ScrollBarSize, cfg.Metrics.ScrollBarSize)
		cfg.Metrics.MinimizedWidth = derefInt(m.MinimizedWidth, cfg.Metrics.MinimizedWidth)
		cfg.Metrics.MinWindowSize = derefInt(m.MinWindowSize, cfg.Metrics.MinWindowSize)
		cfg.Metrics.MenuPadding = derefInt(m.MenuPadding, cfg.Metrics.MenuPadding)
	}
	if raw.Theme != nil {
		t := raw.Theme
		cfg.Theme.Desktop = derefString(t.Desktop, cfg.Theme.Desktop)
		cfg.Theme.Window = derefString(t.Window, cfg.Theme.Window)
		cfg.Theme.Border = derefString(t.Border, cfg.Theme.Border)
		cfg.Theme.TitleActive = derefString(t.TitleActive, cfg.Theme.TitleActive)
		cfg.Theme.TitleInactive = derefString(t.TitleInactive, cfg.Theme.TitleInactive)
		cfg.Theme.TitleText = derefString(t.TitleText, cfg.Theme.TitleText)
		cfg.Theme.Text = derefString(t.Text, cfg.Theme.Text)
		cfg.Theme.Button = derefString(t.Button, cfg.Theme.Button)
		cfg.Theme.ButtonPushed = derefString(t.ButtonPushed, cfg.Theme.ButtonPushed)
		cfg.Theme.ScrollTrack = derefString(t.ScrollTrack, cfg.Theme.ScrollTrack)
		cfg.Theme.Slider = derefString(t.Slider, cfg.Theme.Slider)
		cfg.Theme.Menu = derefString(t.Menu, cfg.Theme.Menu)
		cfg.Theme.MenuHighlight = derefString(t.MenuHighlight, cfg.Theme.MenuHighlight)
		cfg.Theme.Tooltip = derefString(t.Tooltip, cfg.Theme.Tooltip)
	}
	if raw.Input != nil {
		in := raw.Input
		cfg.Input.TooltipDelayMS = derefInt(in.TooltipDelayMS, cfg.Input.TooltipDelayMS)
		cfg.Input.DoubleClickMS = derefInt(in.DoubleClickMS, cfg.Input.DoubleClickMS)
		cfg.Input.WheelStep = derefInt(in.WheelStep, cfg.Input.WheelStep)
		cfg.Input.KeyScrollStep = derefInt(in.KeyScrollStep, cfg.Input.KeyScrollStep)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if len(raw.Fonts) > 0 {
		cfg.Fonts = mergeMap(nil, raw.Fonts)
	}
	if len(raw.Images) > 0 {
		cfg.Images = mergeMap(nil, raw.Images)
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
