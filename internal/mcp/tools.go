package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/dump"
	"github.com/1broseidon/wintk/internal/tiling"
)

const (
	defaultDumpWindows = 4
	defaultDumpWidth   = 640
	defaultDumpHeight  = 480
	maxDumpWindows     = 64
)

// currentConfig returns a copy of the loaded config, switched to preset when
// one is given.
func (s *Server) currentConfig(preset string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.loaded != nil && s.loaded.Config != nil {
		c := *s.loaded.Config
		cfg = &c
	}
	if preset != "" && preset != cfg.Preset {
		if err := cfg.UsePreset(preset); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (s *Server) handleLayoutDump(_ context.Context, _ *mcpsdk.CallToolRequest, args LayoutDumpInput) (*mcpsdk.CallToolResult, *dump.Report, error) {
	if args.Windows == 0 {
		args.Windows = defaultDumpWindows
	}
	if args.Windows < 0 || args.Windows > maxDumpWindows {
		return nil, nil, fmt.Errorf("windows must be between 1 and %d, got %d", maxDumpWindows, args.Windows)
	}
	if args.Width == 0 {
		args.Width = defaultDumpWidth
	}
	if args.Height == 0 {
		args.Height = defaultDumpHeight
	}

	cfg, err := s.currentConfig(args.Preset)
	if err != nil {
		return nil, nil, err
	}
	report, err := dump.Build(cfg, dump.Options{
		Windows: args.Windows,
		Mode:    tiling.Mode(strings.TrimSpace(args.Mode)),
		Gap:     args.Gap,
		Width:   args.Width,
		Height:  args.Height,
		Logger:  s.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("layout_dump", "windows", args.Windows, "mode", report.Layout)
	return nil, report, nil
}

func (s *Server) handleListPresets(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListPresetsInput) (*mcpsdk.CallToolResult, ListPresetsOutput, error) {
	current := config.DefaultPreset
	if s.loaded != nil && s.loaded.Config != nil {
		current = s.loaded.Config.Preset
	}
	presets := config.BuiltinPresets()
	out := ListPresetsOutput{Presets: make([]PresetInfo, 0, len(presets))}
	for _, name := range config.PresetNames() {
		m := presets[name].Metrics
		out.Presets = append(out.Presets, PresetInfo{
			Name:          name,
			Default:       name == config.DefaultPreset,
			Current:       name == current,
			ButtonSize:    m.ButtonSize,
			BorderWidth:   m.BorderWidth,
			ScrollBarSize: m.ScrollBarSize,
			MinWindowSize: m.MinWindowSize,
		})
	}
	return nil, out, nil
}

func (s *Server) handleExplainConfig(_ context.Context, _ *mcpsdk.CallToolRequest, args ExplainConfigInput) (*mcpsdk.CallToolResult, ExplainConfigOutput, error) {
	path := strings.TrimSpace(args.Path)
	value, src, err := config.Explain(s.loaded, path)
	if err != nil {
		return nil, ExplainConfigOutput{}, err
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, ExplainConfigOutput{}, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil, ExplainConfigOutput{
		Path:   path,
		Source: src.String(),
		Value:  strings.TrimSpace(string(data)),
	}, nil
}
