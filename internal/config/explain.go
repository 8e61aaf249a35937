package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	preset
//	log_level
//	display
//	metrics.<field>
//	theme.<field>
//	input.<field>
//	fonts.<id>.path
//	images.<id>.tile_width
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	switch strings.SplitN(path, ".", 2)[0] {
	case "metrics", "theme", "input":
		return value, Source{Kind: SourcePreset, Name: res.Config.Preset}, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	unknown := fmt.Errorf("unknown path: %s", path)

	if len(parts) == 1 {
		switch parts[0] {
		case "preset":
			return cfg.Preset, nil
		case "log_level":
			return cfg.LogLevel, nil
		case "display":
			return cfg.Display, nil
		case "metrics":
			return cfg.Metrics, nil
		case "theme":
			return cfg.Theme, nil
		case "input":
			return cfg.Input, nil
		case "fonts":
			return cfg.Fonts, nil
		case "images":
			return cfg.Images, nil
		}
		return nil, unknown
	}

	switch parts[0] {
	case "metrics":
		if len(parts) != 2 {
			return nil, unknown
		}
		switch parts[1] {
		case "button_size":
			return cfg.Metrics.ButtonSize, nil
		case "border_width":
			return cfg.Metrics.BorderWidth, nil
		case "scrollbar_size":
			return cfg.Metrics.ScrollBarSize, nil
		case "minimized_width":
			return cfg.Metrics.MinimizedWidth, nil
		case "min_window_size":
			return cfg.Metrics.MinWindowSize, nil
		case "menu_padding":
			return cfg.Metrics.MenuPadding, nil
		}
	case "theme":
		if len(parts) != 2 {
			return nil, unknown
		}
		if v, ok := themeField(cfg.Theme, parts[1]); ok {
			return v, nil
		}
	case "input":
		if len(parts) != 2 {
			return nil, unknown
		}
		switch parts[1] {
		case "tooltip_delay_ms":
			return cfg.Input.TooltipDelayMS, nil
		case "double_click_ms":
			return cfg.Input.DoubleClickMS, nil
		case "wheel_step":
			return cfg.Input.WheelStep, nil
		case "key_scroll_step":
			return cfg.Input.KeyScrollStep, nil
		}
	case "fonts":
		f, ok := cfg.Fonts[parts[1]]
		if !ok {
			return nil, fmt.Errorf("font %q not configured", parts[1])
		}
		if len(parts) == 2 {
			return f, nil
		}
		switch parts[2] {
		case "path":
			return f.Path, nil
		case "size":
			return f.Size, nil
		}
	case "images":
		img, ok := cfg.Images[parts[1]]
		if !ok {
			return nil, fmt.Errorf("image %q not configured", parts[1])
		}
		if len(parts) == 2 {
			return img, nil
		}
		switch parts[2] {
		case "path":
			return img.Path, nil
		case "tile_width":
			return img.TileWidth, nil
		case "tile_height":
			return img.TileHeight, nil
		}
	}
	return nil, unknown
}

func themeField(t Theme, name string) (string, bool) {
	switch name {
	case "desktop":
		return t.Desktop, true
	case "window":
		return t.Window, true
	case "border":
		return t.Border, true
	case "title_active":
		return t.TitleActive, true
	case "title_inactive":
		return t.TitleInactive, true
	case "title_text":
		return t.TitleText, true
	case "text":
		return t.Text, true
	case "button":
		return t.Button, true
	case "button_pushed":
		return t.ButtonPushed, true
	case "scroll_track":
		return t.ScrollTrack, true
	case "slider":
		return t.Slider, true
	case "menu":
		return t.Menu, true
	case "menu_highlight":
		return t.MenuHighlight, true
	case "tooltip":
		return t.Tooltip, true
	}
	return "", false
}
