// Package ui is the window and widget layer: windows with frames, menus,
// toolbars and scroll bars, hit testing, pointer capture, z-order and
// activation, and event dispatch onto an abstract renderer.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/display"
	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
	"github.com/1broseidon/wintk/internal/resource"
)

// DefaultScreenSize is used until the platform reports a size.
var DefaultScreenSize = geom.Pt(640, 480)

// CaptureInfo describes the pointer drag in progress. When Captured is false
// the other fields are zero.
type CaptureInfo struct {
	Captured bool
	Target   HitResult
	// Target rect, parent-relative, when the capture started.
	Origin geom.Rect
	// Origin minus the pointer position at capture start.
	Delta geom.Point
}

type captureSlot struct {
	active bool
	handle Handle
	zone   HitZone
	origin geom.Rect
	delta  geom.Point
}

// Manager owns the windows, the active window, the capture slot, the event
// queue and the timers of one UI. All methods except Post, AddTimer and
// DeleteTimer must be called from the dispatch goroutine.
type Manager struct {
	logger  *slog.Logger
	r       render.Renderer
	res     *resource.Provider
	cfg     *config.Config
	palette config.Palette
	display display.Provider

	windows []*Window
	active  *Window
	handles registry
	capture captureSlot

	queue      *Queue
	types      *eventTypes
	typeLimit  int
	classTypes map[string]EventType
	timerType  EventType

	timerMu   sync.Mutex
	nextTimer TimerID
	timers    map[TimerID]*timerEntry

	tooltip *Tooltip
	screen  geom.Rect
	cursor  string
	pointer geom.Point
	seq     uint64

	// Rects saved by Tile and Cascade for Untile.
	saved map[Handle]geom.Rect
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDisplay sets the display mode provider. The screen starts at its
// current mode.
func WithDisplay(p display.Provider) Option {
	return func(m *Manager) { m.display = p }
}

// WithEventTypeLimit caps the number of event types that can be registered.
func WithEventTypeLimit(n int) Option {
	return func(m *Manager) { m.typeLimit = n }
}

// WithScreenSize sets the initial screen size.
func WithScreenSize(w, h int) Option {
	return func(m *Manager) { m.screen = geom.R(0, 0, w, h) }
}

// NewManager builds a manager drawing to r with resources from res. A nil
// cfg uses the default configuration.
func NewManager(r render.Renderer, res *resource.Provider, cfg *config.Config, opts ...Option) (*Manager, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer: %w", ErrNilArgument)
	}
	if res == nil {
		return nil, fmt.Errorf("resource provider: %w", ErrNilArgument)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if _, err := res.DefaultFont(); err != nil {
		return nil, fmt.Errorf("new manager: %w", err)
	}
	pal, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("new manager: %w", err)
	}

	m := &Manager{
		logger:     slog.Default(),
		r:          r,
		res:        res,
		cfg:        cfg,
		palette:    pal,
		queue:      NewQueue(),
		classTypes: make(map[string]EventType),
		timers:     make(map[TimerID]*timerEntry),
		screen:     geom.R(0, 0, DefaultScreenSize.X, DefaultScreenSize.Y),
		cursor:     resource.CursorDefault,
		saved:      make(map[Handle]geom.Rect),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tooltip = &Tooltip{m: m}
	m.types = newEventTypes(m.typeLimit)
	for _, class := range []string{ClassWindow, ClassButton, ClassMenu, ClassToolbar, ClassTextBox, ClassTree, ClassTimer, ClassManager} {
		m.classTypes[class] = m.mustEventType(class)
	}
	m.timerType = m.classTypes[ClassTimer]

	if m.display != nil {
		if mode, err := m.display.Current(); err == nil && mode.Width > 0 {
			m.screen = geom.R(0, 0, mode.Width, mode.Height)
		} else if err != nil {
			m.logger.Warn("display mode unavailable", "err", err)
		}
	}
	return m, nil
}

// Dispose stops the timers and releases every window.
func (m *Manager) Dispose() {
	m.stopTimers()
	for _, w := range slices.Clone(m.windows) {
		if w.ParentWindow() == nil {
			_ = m.RemoveWindow(w.id)
		}
	}
	m.ReleaseCapture()
	m.active = nil
}

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Config returns the active configuration.
func (m *Manager) Config() *config.Config { return m.cfg }

// Palette returns the parsed theme colors.
func (m *Manager) Palette() config.Palette { return m.palette }

// Renderer returns the drawing sink.
func (m *Manager) Renderer() render.Renderer { return m.r }

// Resources returns the resource provider.
func (m *Manager) Resources() *resource.Provider { return m.res }

// ApplyConfig switches to cfg, typically after a config file reload. Window
// minimum sizes and colors follow the new values.
func (m *Manager) ApplyConfig(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config: %w", ErrNilArgument)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}
	m.cfg = cfg
	m.palette = pal
	for _, w := range m.windows {
		w.style.MinSize = geom.Uniform(uint8(cfg.Metrics.MinWindowSize))
		w.style.Bg = pal.Window
		w.style.Fg = pal.Text
		w.style.BorderColor = pal.Border
		w.style.BorderWidth = uint8(cfg.Metrics.BorderWidth)
	}
	m.logger.Info("config applied", "preset", cfg.Preset)
	return nil
}

// measure returns the size of text in the default font.
func (m *Manager) measure(text string) geom.Point {
	f, err := m.res.DefaultFont()
	if err != nil {
		return geom.Point{}
	}
	return resource.MeasureText(f, text)
}

// AddWindow creates a window. A nil parent makes it top-level. Window ids
// are unique across the manager.
func (m *Manager) AddWindow(id string, parent *Window, rect geom.Rect, flags Flags) (*Window, error) {
	if m.FindWindow(id) != nil {
		return nil, fmt.Errorf("window %s: %w", id, ErrDuplicateID)
	}
	if parent != nil && (parent.null || !m.attached(parent)) {
		return nil, fmt.Errorf("parent of %s: %w", id, ErrNotAttached)
	}
	w, err := newWindow(m, id, parent, rect, flags)
	if err != nil {
		return nil, err
	}

	var pw Widget
	if parent != nil {
		pw = parent
	}
	if err := attach(m, pw, w); err != nil {
		return nil, err
	}
	m.seq++
	w.seq = m.seq
	m.windows = append(m.windows, w)
	m.logger.Debug("window added", "id", id, "rect", rect.String())
	return w, nil
}

// RemoveWindow removes the window and its descendants. Handles of everything
// they contain are released, so captures and timers on them lapse.
func (m *Manager) RemoveWindow(id string) error {
	w := m.FindWindow(id)
	if w == nil {
		return fmt.Errorf("window %s: %w", id, ErrNotFound)
	}
	doomed := m.subtree(w)
	for _, d := range doomed {
		if m.active == d {
			m.active = nil
		}
		if p := d.ParentWindow(); p != nil {
			p.removeMinimizedChild(d)
		}
		delete(m.saved, d.handle)
		detach(d)
	}
	m.windows = slices.DeleteFunc(m.windows, func(x *Window) bool {
		return slices.Contains(doomed, x)
	})
	m.logger.Debug("window removed", "id", id, "count", len(doomed))
	return nil
}

// subtree returns w followed by its descendants.
func (m *Manager) subtree(w *Window) []*Window {
	out := []*Window{w}
	for _, c := range m.ChildWindows(w) {
		out = append(out, m.subtree(c)...)
	}
	return out
}

// FindWindow returns the window with id, or nil.
func (m *Manager) FindWindow(id string) *Window {
	for _, w := range m.windows {
		if w.id == id {
			return w
		}
	}
	return nil
}

// Windows returns every window, bottom to top.
func (m *Manager) Windows() []*Window {
	return slices.Clone(m.windows)
}

// ChildWindows returns the windows whose parent is parent, bottom to top.
// A nil parent selects the top-level windows.
func (m *Manager) ChildWindows(parent *Window) []*Window {
	var out []*Window
	for _, w := range m.windows {
		if w.ParentWindow() == parent {
			out = append(out, w)
		}
	}
	return out
}

func (m *Manager) attached(w Widget) bool {
	return w != nil && m.handles.get(w.AsBase().handle) == w
}

// Active returns the active window, or the null window.
func (m *Manager) Active() *Window {
	if m.active == nil {
		return nullWindow
	}
	return m.active
}

// SetActive makes w the active window and raises it with its descendants.
// Windows flagged NoActivate are ignored.
func (m *Manager) SetActive(w *Window) {
	if w.IsNull() || w.mgr != m || m.active == w || w.HasFlag(FlagNoActivate) {
		return
	}
	if prev := m.active; prev != nil {
		m.post(ClassWindow, CodeWindowDeactivated, prev, nil)
	}
	m.active = w
	m.post(ClassWindow, CodeWindowActivated, w, nil)
	m.MoveToFront(w)
}

// MoveToFront raises the subtree of w's parent, then the subtree of w,
// keeping the relative order within each subtree. Windows outside the
// parent's subtree keep their order.
func (m *Manager) MoveToFront(w *Window) {
	if p := w.ParentWindow(); p != nil {
		m.raiseSubtree(p)
	}
	m.raiseSubtree(w)
}

func (m *Manager) raiseSubtree(w *Window) {
	i := slices.Index(m.windows, w)
	if i < 0 {
		return
	}
	m.windows = append(slices.Delete(m.windows, i, i+1), w)
	for _, c := range m.ChildWindows(w) {
		m.raiseSubtree(c)
	}
}

// HitTest returns the hit on the topmost window whose own hit test finds a
// zone. Points on a frame that has no zone fall through to the windows below.
func (m *Manager) HitTest(pt geom.Point) HitResult {
	for i := len(m.windows) - 1; i >= 0; i-- {
		if h := m.windows[i].HitTest(pt); h.Hit() {
			return h
		}
	}
	return noHit
}

// StartCapture routes all pointer input to hit.Target until ReleaseCapture.
// It replaces any capture in progress.
func (m *Manager) StartCapture(hit HitResult, pt geom.Point) error {
	if !m.attached(hit.Target) {
		return fmt.Errorf("capture: %w", ErrNotAttached)
	}
	m.startCapture(hit, pt)
	return nil
}

func (m *Manager) startCapture(hit HitResult, pt geom.Point) {
	if hit.Target == nil {
		return
	}
	origin := hit.Target.Rect(true, false)
	m.capture = captureSlot{
		active: true,
		handle: hit.Target.AsBase().handle,
		zone:   hit.Zone,
		origin: origin,
		delta:  origin.Origin().Sub(pt),
	}
}

// Capture returns the capture in progress. A capture whose target has been
// removed reads as no capture.
func (m *Manager) Capture() CaptureInfo {
	if !m.capture.active {
		return CaptureInfo{}
	}
	target := m.handles.get(m.capture.handle)
	if target == nil {
		m.capture = captureSlot{}
		return CaptureInfo{}
	}
	return CaptureInfo{
		Captured: true,
		Target:   HitResult{Zone: m.capture.zone, Target: target},
		Origin:   m.capture.origin,
		Delta:    m.capture.delta,
	}
}

// ReleaseCapture ends the capture in progress, if any.
func (m *Manager) ReleaseCapture() {
	m.capture = captureSlot{}
}

// Pointer returns the last pointer position seen by Dispatch.
func (m *Manager) Pointer() geom.Point { return m.pointer }

// SetCursor selects a cursor by id. Unknown ids are logged and ignored.
func (m *Manager) SetCursor(id string) {
	if id == m.cursor {
		return
	}
	if m.res.FindCursor(id) == nil {
		m.logger.Warn("cursor not found", "id", id)
		return
	}
	m.cursor = id
}

// Cursor returns the id of the current cursor.
func (m *Manager) Cursor() string { return m.cursor }

// Tooltip returns the tooltip box.
func (m *Manager) Tooltip() *Tooltip { return m.tooltip }

// ScreenRect returns the screen bounds.
func (m *Manager) ScreenRect() geom.Rect { return m.screen }

// SetScreenSize records a new screen size.
func (m *Manager) SetScreenSize(size geom.Point) {
	m.screen = geom.R(0, 0, max(0, size.X), max(0, size.Y))
}

var errNoDisplay = errors.New("no display provider")

// ScreenModes lists the modes of the display provider.
func (m *Manager) ScreenModes() ([]display.Mode, error) {
	if m.display == nil {
		return nil, fmt.Errorf("screen modes: %w", errNoDisplay)
	}
	return m.display.Modes()
}

// SetScreenResolution switches the display mode and posts DisplayChanged
// with the new mode.
func (m *Manager) SetScreenResolution(mode display.Mode) error {
	if m.display == nil {
		return fmt.Errorf("set resolution: %w", errNoDisplay)
	}
	if err := m.display.SetMode(mode); err != nil {
		return fmt.Errorf("set resolution %s: %w", mode, err)
	}
	m.SetScreenSize(geom.Pt(mode.Width, mode.Height))
	m.post(ClassManager, CodeDisplayChanged, nil, mode)
	m.logger.Info("display mode changed", "mode", mode.String())
	return nil
}

// Draw paints the desktop, the windows bottom to top, the active window's
// open menu and the tooltip.
func (m *Manager) Draw() {
	m.r.SetClipRect(geom.Rect{})
	fillRect(m.r, m.screen, m.palette.Desktop)
	for _, w := range slices.Clone(m.windows) {
		w.Draw()
	}
	if a := m.active; a != nil && a.menu != nil && a.menu.IsOpen() {
		a.menu.DrawOpened()
	}
	m.tooltip.Draw()
}
