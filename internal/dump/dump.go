// Package dump tiles windows on a recording renderer and reports where they
// landed and what one frame drew. It backs "wintk layout dump" and the
// layout_dump MCP tool.
package dump

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/display"
	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
	"github.com/1broseidon/wintk/internal/resource"
	"github.com/1broseidon/wintk/internal/tiling"
	"github.com/1broseidon/wintk/internal/ui"
)

// Options selects what to tile. Display, when set, supplies the screen size;
// otherwise Width and Height do.
type Options struct {
	Windows int
	Mode    tiling.Mode
	Gap     int
	Width   int
	Height  int
	Display display.Provider
	Logger  *slog.Logger
}

// Window is one tiled window.
type Window struct {
	ID     string `yaml:"id" json:"id"`
	Rect   string `yaml:"rect" json:"rect"`
	Client string `yaml:"client" json:"client"`
}

// Report is the result of Build.
type Report struct {
	Preset  string         `yaml:"preset" json:"preset"`
	Screen  string         `yaml:"screen" json:"screen"`
	Layout  string         `yaml:"layout" json:"layout"`
	Windows []Window       `yaml:"windows" json:"windows"`
	Ops     map[string]int `yaml:"ops" json:"ops"`
}

// Build creates opts.Windows top-level windows, tiles them, draws one frame
// and reports the resulting geometry with a count of drawing calls by kind.
func Build(cfg *config.Config, opts Options) (*Report, error) {
	if opts.Windows < 1 {
		return nil, fmt.Errorf("need at least one window, got %d", opts.Windows)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res := resource.New(logger)
	res.SetDefaultFont(resource.CellFace{})
	rec := render.NewRecorder()

	mgrOpts := []ui.Option{ui.WithLogger(logger)}
	if opts.Display != nil {
		mgrOpts = append(mgrOpts, ui.WithDisplay(opts.Display))
	} else {
		mgrOpts = append(mgrOpts, ui.WithScreenSize(opts.Width, opts.Height))
	}
	mgr, err := ui.NewManager(rec, res, cfg, mgrOpts...)
	if err != nil {
		return nil, err
	}
	defer mgr.Dispose()

	screen := mgr.ScreenRect()
	if screen.IsEmpty() {
		return nil, fmt.Errorf("empty screen %s", screen)
	}
	minSize := mgr.Config().Metrics.MinWindowSize
	for i := 1; i <= opts.Windows; i++ {
		r := geom.R(0, 0, max(screen.W/2, minSize), max(screen.H/2, minSize))
		w, err := mgr.AddWindow(fmt.Sprintf("win%d", i), nil, r, ui.FlagsDefault)
		if err != nil {
			return nil, err
		}
		w.SetText(fmt.Sprintf("Window %d", i))
	}

	layout := tiling.DefaultLayout
	if opts.Mode != "" {
		layout.Mode = opts.Mode
	}
	if err := mgr.Tile(nil, layout, opts.Gap); err != nil {
		return nil, err
	}
	mgr.Draw()

	report := &Report{
		Preset: mgr.Config().Preset,
		Screen: screen.String(),
		Layout: string(layout.Mode),
		Ops:    make(map[string]int),
	}
	for _, w := range mgr.Windows() {
		report.Windows = append(report.Windows, Window{
			ID:     w.ID(),
			Rect:   w.Rect(false, false).String(),
			Client: w.ClientRect(false, false).String(),
		})
	}
	for _, op := range rec.Ops {
		report.Ops[op.Kind.String()]++
	}
	logger.Debug("layout dumped", "windows", len(report.Windows), "ops", len(rec.Ops))
	return report, nil
}

// Write encodes report as YAML.
func Write(w io.Writer, report *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
