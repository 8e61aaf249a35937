package config

import "sort"

// DefaultPreset is used when the config file names none.
const DefaultPreset = "pixel"

// Preset is a named base for metrics, theme and input settings.
type Preset struct {
	Metrics Metrics
	Theme   Theme
	Input   Input
}

var baseTheme = Theme{
	Desktop:       "#5a8080",
	Window:        "#c0c0c0",
	Border:        "#808080",
	TitleActive:   "#000080",
	TitleInactive: "#808080",
	TitleText:     "#ffffff",
	Text:          "#000000",
	Button:        "#c0c0c0",
	ButtonPushed:  "#808080",
	ScrollTrack:   "#e0e0e0",
	Slider:        "#c0c0c0",
	Menu:          "#e0e0e0",
	MenuHighlight: "#000080",
	Tooltip:       "#ffffe0",
}

// BuiltinPresets returns the built-in preset library.
//
// These are always available; a config file selects one with "preset" and
// overrides individual fields on top of it.
func BuiltinPresets() map[string]Preset {
	return map[string]Preset{
		"pixel": {
			Metrics: Metrics{
				ButtonSize:     26,
				BorderWidth:    4,
				ScrollBarSize:  17,
				MinimizedWidth: 200,
				MinWindowSize:  120,
				MenuPadding:    8,
			},
			Theme: baseTheme,
			Input: Input{
				TooltipDelayMS: 300,
				DoubleClickMS:  400,
				WheelStep:      10,
				KeyScrollStep:  2,
			},
		},
		"terminal": {
			Metrics: Metrics{
				ButtonSize:     1,
				BorderWidth:    1,
				ScrollBarSize:  1,
				MinimizedWidth: 20,
				MinWindowSize:  8,
				MenuPadding:    1,
			},
			Theme: baseTheme,
			Input: Input{
				TooltipDelayMS: 500,
				DoubleClickMS:  400,
				WheelStep:      1,
				KeyScrollStep:  1,
			},
		},
	}
}

// PresetNames returns the builtin preset names, sorted.
func PresetNames() []string {
	presets := BuiltinPresets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
