package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMetrics struct {
	ButtonSize     *int `yaml:"button_size"`
	BorderWidth    *int `yaml:"border_width"`
	ScrollBarSize  *int `yaml:"scrollbar_size"`
	MinimizedWidth *int `yaml:"minimized_width"`
	MinWindowSize  *int `yaml:"min_window_size"`
	MenuPadding    *int `yaml:"menu_padding"`
}

type RawTheme struct {
	Desktop       *string `yaml:"desktop"`
	Window        *string `yaml:"window"`
	Border        *string `yaml:"border"`
	TitleActive   *string `yaml:"title_active"`
	TitleInactive *string `yaml:"title_inactive"`
	TitleText     *string `yaml:"title_text"`
	Text          *string `yaml:"text"`
	Button        *string `yaml:"button"`
	ButtonPushed  *string `yaml:"button_pushed"`
	ScrollTrack   *string `yaml:"scroll_track"`
	Slider        *string `yaml:"slider"`
	Menu          *string `yaml:"menu"`
	MenuHighlight *string `yaml:"menu_highlight"`
	Tooltip       *string `yaml:"tooltip"`
}

type RawInput struct {
	TooltipDelayMS *int `yaml:"tooltip_delay_ms"`
	DoubleClickMS  *int `yaml:"double_click_ms"`
	WheelStep      *int `yaml:"wheel_step"`
	KeyScrollStep  *int `yaml:"key_scroll_step"`
}

type RawConfig struct {
	Include  IncludeList          `yaml:"include"`
	Preset   *string              `yaml:"preset"`
	Metrics  *RawMetrics          `yaml:"metrics"`
	Theme    *RawTheme            `yaml:"theme"`
	Input    *RawInput            `yaml:"input"`
	LogLevel *string              `yaml:"log_level"`
	Display  *string              `yaml:"display"`
	Fonts    map[string]FontSpec  `yaml:"fonts"`
	Images   map[string]ImageSpec `yaml:"images"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Preset != nil {
		out.Preset = overlay.Preset
	}
	if overlay.Metrics != nil {
		m := RawMetrics{}
		if out.Metrics != nil {
			m = *out.Metrics
		}
		m = mergeRawMetrics(m, *overlay.Metrics)
		out.Metrics = &m
	}
	if overlay.Theme != nil {
		t := RawTheme{}
		if out.Theme != nil {
			t = *out.Theme
		}
		t = mergeRawTheme(t, *overlay.Theme)
		out.Theme = &t
	}
	if overlay.Input != nil {
		in := RawInput{}
		if out.Input != nil {
			in = *out.Input
		}
		in = mergeRawInput(in, *overlay.Input)
		out.Input = &in
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Fonts != nil {
		out.Fonts = mergeMap(out.Fonts, overlay.Fonts)
	}
	if overlay.Images != nil {
		out.Images = mergeMap(out.Images, overlay.Images)
	}

	return out
}

func mergeRawMetrics(base RawMetrics, overlay RawMetrics) RawMetrics {
	out := base
	setIf(&out.ButtonSize, overlay.ButtonSize)
	setIf(&out.BorderWidth, overlay.BorderWidth)
	setIf(&out.ScrollBarSize, overlay.ScrollBarSize)
	setIf(&out.MinimizedWidth, overlay.MinimizedWidth)
	setIf(&out.MinWindowSize, overlay.MinWindowSize)
	setIf(&out.MenuPadding, overlay.MenuPadding)
	return out
}

func mergeRawTheme(base RawTheme, overlay RawTheme) RawTheme {
	out := base
	setIf(&out.Desktop, overlay.Desktop)
	setIf(&out.Window, overlay.Window)
	setIf(&out.Border, overlay.Border)
	setIf(&out.TitleActive, overlay.TitleActive)
	setIf(&out.TitleInactive, overlay.TitleInactive)
	setIf(&out.TitleText, overlay.TitleText)
	setIf(&out.Text, overlay.Text)
	setIf(&out.Button, overlay.Button)
	setIf(&out.ButtonPushed, overlay.ButtonPushed)
	setIf(&out.ScrollTrack, overlay.ScrollTrack)
	setIf(&out.Slider, overlay.Slider)
	setIf(&out.Menu, overlay.Menu)
	setIf(&out.MenuHighlight, overlay.MenuHighlight)
	setIf(&out.Tooltip, overlay.Tooltip)
	return out
}

func mergeRawInput(base RawInput, overlay RawInput) RawInput {
	out := base
	setIf(&out.TooltipDelayMS, overlay.TooltipDelayMS)
	setIf(&out.DoubleClickMS, overlay.DoubleClickMS)
	setIf(&out.WheelStep, overlay.WheelStep)
	setIf(&out.KeyScrollStep, overlay.KeyScrollStep)
	return out
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func mergeMap[V any](base map[string]V, overlay map[string]V) map[string]V {
	out := make(map[string]V, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
