package ui

import (
	"fmt"
	"slices"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/geom"
)

// ShowState is the visibility and size mode of a window. Maximized and
// minimized are mutually exclusive; visibility is independent of both.
type ShowState uint8

const (
	ShowVisible ShowState = 1 << iota
	ShowMaximized
	ShowMinimized
)

func (s ShowState) String() string {
	out := "hidden"
	if s&ShowVisible != 0 {
		out = "visible"
	}
	switch {
	case s&ShowMaximized != 0:
		out += "|maximized"
	case s&ShowMinimized != 0:
		out += "|minimized"
	}
	return out
}

// Window is a framed container. Its own controls live in its client area;
// child windows are kept in the manager's window list and reference it as
// their parent.
type Window struct {
	Base

	showState  ShowState
	pushed     HitZone
	controls   []Widget
	menu       *Menu
	toolbar    *Toolbar
	scrollBars *ScrollBars
	grid       Grid

	// Slots for minimized child windows. Nil entries are free.
	minimized []*Window

	seq  uint64
	null bool
}

var nullWindow = func() *Window {
	w := &Window{null: true}
	w.This = w
	return w
}()

// NullWindow returns the window that stands for "no window". It is never
// visible and ignores every operation.
func NullWindow() *Window {
	return nullWindow
}

func newWindow(m *Manager, id string, parent *Window, rect geom.Rect, flags Flags) (*Window, error) {
	if id == "" {
		return nil, fmt.Errorf("window: %w", ErrEmptyID)
	}
	if flags&FlagMinMax != 0 && parent == nil {
		return nil, fmt.Errorf("window %s: %w", id, ErrMinMaxNeedsParent)
	}

	w := &Window{showState: ShowVisible, grid: DefaultGrid}
	w.Base = newBase(w, id, rect, flags)
	w.style.MinSize = geom.Uniform(uint8(m.cfg.Metrics.MinWindowSize))
	w.style.Bg = m.palette.Window
	w.style.Fg = m.palette.Text
	w.style.BorderColor = m.palette.Border
	w.style.BorderWidth = uint8(m.cfg.Metrics.BorderWidth)
	w.text = id

	w.scrollBars = newScrollBars(w)
	if err := w.scrollBars.SetParent(w); err != nil {
		return nil, err
	}
	return w, nil
}

// IsNull reports whether w is the null window.
func (w *Window) IsNull() bool {
	return w == nil || w.null
}

func (w *Window) metrics() config.Metrics {
	if w.mgr == nil {
		return config.Metrics{}
	}
	return w.mgr.cfg.Metrics
}

// ParentWindow returns the parent window, or nil for a top-level window.
func (w *Window) ParentWindow() *Window {
	if p, ok := w.parent.(*Window); ok {
		return p
	}
	return nil
}

// ShowState returns the current show state.
func (w *Window) ShowState() ShowState { return w.showState }

func (w *Window) IsVisible() bool   { return !w.null && w.showState&ShowVisible != 0 }
func (w *Window) IsMaximized() bool { return w.showState&ShowMaximized != 0 }
func (w *Window) IsMinimized() bool { return w.showState&ShowMinimized != 0 }

// Show sets the visible bit.
func (w *Window) Show(visible bool) {
	if w.null {
		return
	}
	if visible {
		w.showState |= ShowVisible
	} else {
		w.showState &^= ShowVisible
	}
}

// shown reports whether w and all of its ancestors are visible.
func (w *Window) shown() bool {
	for p := w; p != nil; p = p.ParentWindow() {
		if !p.IsVisible() {
			return false
		}
	}
	return true
}

// IsActive reports whether w is drawn as the active window.
func (w *Window) IsActive() bool {
	if w.null || w.mgr == nil {
		return false
	}
	return w.HasFlag(FlagActive) || w.mgr.active == w
}

// Grid returns the snap grid applied to child windows.
func (w *Window) Grid() Grid { return w.grid }

// SetGrid replaces the snap grid. Sizes below one become one.
func (w *Window) SetGrid(g Grid) {
	g.Size = max(g.Size, 1)
	w.grid = g
}

// ScrollBars returns the window's scroll bars.
func (w *Window) ScrollBars() *ScrollBars { return w.scrollBars }

// ScrollPos is the current content scroll offset.
func (w *Window) ScrollPos() geom.Point {
	if w.scrollBars == nil {
		return geom.Point{}
	}
	return w.scrollBars.pos
}

// AddControl attaches c to the window's client area. Control ids are unique
// within the window.
func (w *Window) AddControl(c Widget) error {
	if c == nil {
		return ErrNilWidget
	}
	if w.null || w.mgr == nil {
		return fmt.Errorf("add %s: %w", c.ID(), ErrNotAttached)
	}
	if c.ID() == "" {
		return fmt.Errorf("control: %w", ErrEmptyID)
	}
	if w.FindControl(c.ID()) != nil {
		return fmt.Errorf("control %s in %s: %w", c.ID(), w.id, ErrDuplicateID)
	}
	if err := attach(w.mgr, w, c); err != nil {
		return err
	}
	w.controls = append(w.controls, c)
	if w.HasFlag(FlagAutoSize) {
		w.fitContent()
	}
	return nil
}

// FindControl returns the control with id, or nil.
func (w *Window) FindControl(id string) Widget {
	for _, c := range w.controls {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// Controls returns the controls in insertion order.
func (w *Window) Controls() []Widget {
	return slices.Clone(w.controls)
}

// RemoveControl detaches the control with id. A capture or timer held by it
// lapses.
func (w *Window) RemoveControl(id string) error {
	i := slices.IndexFunc(w.controls, func(c Widget) bool { return c.ID() == id })
	if i < 0 {
		return fmt.Errorf("control %s in %s: %w", id, w.id, ErrNotFound)
	}
	c := w.controls[i]
	w.controls = slices.Delete(w.controls, i, i+1)
	detach(c)
	return nil
}

// FocusedControl returns the control holding the focus, or nil.
func (w *Window) FocusedControl() Widget {
	for _, c := range w.controls {
		if c.AsBase().focused {
			return c
		}
	}
	return nil
}

// Menu returns the menu bar, or nil.
func (w *Window) Menu() *Menu { return w.menu }

// SetMenu installs a menu bar, replacing any previous one.
func (w *Window) SetMenu(menu *Menu) error {
	if menu == nil {
		return ErrNilWidget
	}
	if w.null || w.mgr == nil {
		return fmt.Errorf("menu %s: %w", menu.id, ErrNotAttached)
	}
	if err := attach(w.mgr, w, menu); err != nil {
		return err
	}
	if w.menu != nil {
		detach(w.menu)
	}
	w.menu = menu
	return nil
}

// Toolbar returns the toolbar, or nil.
func (w *Window) Toolbar() *Toolbar { return w.toolbar }

// SetToolbar installs a toolbar below the menu bar.
func (w *Window) SetToolbar(tb *Toolbar) error {
	if tb == nil {
		return ErrNilWidget
	}
	if w.null || w.mgr == nil {
		return fmt.Errorf("toolbar %s: %w", tb.id, ErrNotAttached)
	}
	if err := attach(w.mgr, w, tb); err != nil {
		return err
	}
	if w.toolbar != nil {
		detach(w.toolbar)
	}
	w.toolbar = tb
	return nil
}

// ChildWindows returns the windows whose parent is w, in z-order.
func (w *Window) ChildWindows() []*Window {
	if w.null || w.mgr == nil {
		return nil
	}
	return w.mgr.ChildWindows(w)
}

func (w *Window) children() []Widget {
	out := slices.Clone(w.controls)
	if w.menu != nil {
		out = append(out, w.menu)
	}
	if w.toolbar != nil {
		out = append(out, w.toolbar)
	}
	if w.scrollBars != nil {
		out = append(out, w.scrollBars)
	}
	return out
}

// SetFocus focuses the window itself (from == nil) or records that from
// took the focus, clearing it on every other control.
func (w *Window) SetFocus(focus bool, from Widget) {
	if w.null {
		return
	}
	if from == nil {
		if !w.HasFlag(FlagNoFocus) {
			w.focused = focus
		}
		return
	}
	if !focus {
		return
	}
	for _, c := range w.children() {
		if c != from {
			c.AsBase().ClearFocus()
		}
	}
}

// fitContent grows the window so its client area holds every control.
func (w *Window) fitContent() {
	ext := w.scrollBars.contentExtent()
	client := w.ClientRect(true, false)
	outer := w.Rect(true, false)
	size := geom.Pt(
		max(outer.W, ext.X+outer.W-client.W),
		max(outer.H, ext.Y+outer.H-client.H),
	)
	w.Base.Resize(size)
}

func (w *Window) String() string {
	if w.null {
		return "WINDOW(null)"
	}
	return fmt.Sprintf("WINDOW(%s, %s, %s)", w.id, w.rect, w.showState)
}
