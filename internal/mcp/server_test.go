package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/dump"
)

func loaded() *config.LoadResult {
	return &config.LoadResult{Config: config.DefaultConfig(), Sources: map[string]config.Source{}}
}

func TestHandleLayoutDump(t *testing.T) {
	s := NewServer(loaded(), nil)
	_, report, err := s.handleLayoutDump(context.Background(), nil, LayoutDumpInput{
		Windows: 2,
		Mode:    "vertical",
		Width:   80,
		Height:  24,
		Preset:  "terminal",
	})
	if err != nil {
		t.Fatalf("layout_dump: %v", err)
	}
	if report.Preset != "terminal" || report.Layout != "vertical" {
		t.Fatalf("report header = %q %q", report.Preset, report.Layout)
	}
	want := map[string]string{
		"win1": "RECT(xy[0,0],wh[80,12])",
		"win2": "RECT(xy[0,12],wh[80,12])",
	}
	for _, w := range report.Windows {
		if w.Rect != want[w.ID] {
			t.Fatalf("%s at %s, want %s", w.ID, w.Rect, want[w.ID])
		}
	}
	if s.loaded.Config.Preset != config.DefaultPreset {
		t.Fatalf("preset override leaked into the loaded config: %q", s.loaded.Config.Preset)
	}
}

func TestHandleLayoutDumpDefaults(t *testing.T) {
	s := NewServer(loaded(), nil)
	_, report, err := s.handleLayoutDump(context.Background(), nil, LayoutDumpInput{})
	if err != nil {
		t.Fatalf("layout_dump: %v", err)
	}
	if len(report.Windows) != defaultDumpWindows {
		t.Fatalf("got %d windows, want %d", len(report.Windows), defaultDumpWindows)
	}
	if report.Screen != "RECT(xy[0,0],wh[640,480])" || report.Layout != "grid" {
		t.Fatalf("defaults not applied: %s %s", report.Screen, report.Layout)
	}
}

func TestHandleLayoutDumpErrors(t *testing.T) {
	s := NewServer(loaded(), nil)
	tests := []struct {
		name string
		in   LayoutDumpInput
	}{
		{"too many windows", LayoutDumpInput{Windows: maxDumpWindows + 1}},
		{"negative windows", LayoutDumpInput{Windows: -1}},
		{"unknown preset", LayoutDumpInput{Preset: "nope"}},
		{"unknown mode", LayoutDumpInput{Mode: "spiral"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := s.handleLayoutDump(context.Background(), nil, tt.in); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestHandleListPresets(t *testing.T) {
	res := loaded()
	if err := res.Config.UsePreset("terminal"); err != nil {
		t.Fatalf("UsePreset: %v", err)
	}
	s := NewServer(res, nil)
	_, out, err := s.handleListPresets(context.Background(), nil, ListPresetsInput{})
	if err != nil {
		t.Fatalf("list_presets: %v", err)
	}
	if len(out.Presets) != len(config.PresetNames()) {
		t.Fatalf("got %d presets", len(out.Presets))
	}
	for _, p := range out.Presets {
		if p.Default != (p.Name == config.DefaultPreset) {
			t.Fatalf("%s default = %v", p.Name, p.Default)
		}
		if p.Current != (p.Name == "terminal") {
			t.Fatalf("%s current = %v", p.Name, p.Current)
		}
		if p.Name == "terminal" && p.ButtonSize != 1 {
			t.Fatalf("terminal button size = %d", p.ButtonSize)
		}
	}
}

func TestHandleExplainConfig(t *testing.T) {
	s := NewServer(loaded(), nil)
	_, out, err := s.handleExplainConfig(context.Background(), nil, ExplainConfigInput{Path: " metrics.button_size "})
	if err != nil {
		t.Fatalf("explain_config: %v", err)
	}
	if out.Path != "metrics.button_size" || out.Value != "26" || out.Source != "preset:pixel" {
		t.Fatalf("unexpected explanation: %+v", out)
	}
	if _, _, err := s.handleExplainConfig(context.Background(), nil, ExplainConfigInput{Path: "metrics.nope"}); err == nil {
		t.Fatal("expected error for unknown path")
	}
}

func connect(t *testing.T, s *Server) *mcpsdk.ClientSession {
	t.Helper()
	ctx := context.Background()
	ct, st := mcpsdk.NewInMemoryTransports()
	ss, err := s.Connect(ctx, st)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { ss.Close() })
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })
	return cs
}

func TestSessionTools(t *testing.T) {
	cs := connect(t, NewServer(loaded(), nil))
	ctx := context.Background()

	tools, err := cs.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"layout_dump", "list_presets", "explain_config"} {
		if !names[want] {
			t.Fatalf("tool %s not listed", want)
		}
	}

	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "layout_dump",
		Arguments: map[string]any{"windows": 3, "width": 90, "height": 30, "preset": "terminal"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatalf("layout_dump failed: %+v", res.Content)
	}
	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var report dump.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(report.Windows) != 3 || report.Screen != "RECT(xy[0,0],wh[90,30])" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestSessionToolError(t *testing.T) {
	cs := connect(t, NewServer(loaded(), nil))
	res, err := cs.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      "explain_config",
		Arguments: map[string]any{"path": "theme.nope"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !res.IsError || len(res.Content) == 0 {
		t.Fatalf("expected a tool error, got %+v", res)
	}
	text, ok := res.Content[0].(*mcpsdk.TextContent)
	if !ok || !strings.Contains(text.Text, "theme.nope") {
		t.Fatalf("error content = %+v", res.Content[0])
	}
}
