package mcp

// LayoutDumpInput is the input for the layout_dump tool.
type LayoutDumpInput struct {
	Windows int    `json:"windows,omitempty" jsonschema:"Number of windows to tile (default: 4)"`
	Mode    string `json:"mode,omitempty" jsonschema:"Layout mode: grid, vertical, horizontal or master_stack (default: grid)"`
	Gap     int    `json:"gap,omitempty" jsonschema:"Gap between tiles (default: 0)"`
	Width   int    `json:"width,omitempty" jsonschema:"Screen width (default: 640)"`
	Height  int    `json:"height,omitempty" jsonschema:"Screen height (default: 480)"`
	Preset  string `json:"preset,omitempty" jsonschema:"Builtin preset to use instead of the configured one"`
}

// ListPresetsInput is the input for the list_presets tool.
type ListPresetsInput struct{}

// PresetInfo describes one builtin preset.
type PresetInfo struct {
	Name          string `json:"name"`
	Default       bool   `json:"default"`
	Current       bool   `json:"current"`
	ButtonSize    int    `json:"button_size"`
	BorderWidth   int    `json:"border_width"`
	ScrollBarSize int    `json:"scrollbar_size"`
	MinWindowSize int    `json:"min_window_size"`
}

// ListPresetsOutput is the output for the list_presets tool.
type ListPresetsOutput struct {
	Presets []PresetInfo `json:"presets"`
}

// ExplainConfigInput is the input for the explain_config tool.
type ExplainConfigInput struct {
	Path string `json:"path" jsonschema:"Config path such as metrics.button_size or theme.desktop"`
}

// ExplainConfigOutput is the output for the explain_config tool.
type ExplainConfigOutput struct {
	Path   string `json:"path"`
	Source string `json:"source"`
	Value  string `json:"value"`
}
