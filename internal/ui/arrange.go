package ui

import (
	"fmt"
	"slices"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/tiling"
)

// arrangeable returns the visible, non-minimized children of parent in
// creation order. A nil parent selects the top-level windows.
func (m *Manager) arrangeable(parent *Window) []*Window {
	var out []*Window
	for _, w := range m.ChildWindows(parent) {
		if w.IsVisible() && !w.IsMinimized() && !w.HasFlag(FlagFill) {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b *Window) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return out
}

// arrangeArea is the parent-relative area children are laid out in.
func (m *Manager) arrangeArea(parent *Window) geom.Rect {
	if parent == nil {
		return m.ScreenRect()
	}
	c := parent.ClientRect(true, false)
	return geom.R(0, 0, c.W, c.H)
}

// place records the current rect of w for Untile, the first time only, and
// applies r. Maximized windows are restored first.
func (m *Manager) place(w *Window, r geom.Rect) {
	if _, ok := m.saved[w.handle]; !ok {
		m.saved[w.handle] = w.rect
	}
	w.showState &^= ShowMaximized
	w.setRect(r)
}

// Tile lays the children of parent out with layout, gap pixels apart.
func (m *Manager) Tile(parent *Window, layout tiling.Layout, gap int) error {
	wins := m.arrangeable(parent)
	if len(wins) == 0 {
		return nil
	}
	rects, err := tiling.Positions(len(wins), m.arrangeArea(parent), layout, gap)
	if err != nil {
		return fmt.Errorf("tile %d windows: %w", len(wins), err)
	}
	for i, w := range wins {
		m.place(w, rects[i])
	}
	m.logger.Debug("tiled", "mode", layout.Mode, "windows", len(wins))
	return nil
}

// Cascade stacks the children of parent diagonally, one title bar apart.
func (m *Manager) Cascade(parent *Window) error {
	wins := m.arrangeable(parent)
	if len(wins) == 0 {
		return nil
	}
	area := m.arrangeArea(parent)
	if area.IsEmpty() {
		return fmt.Errorf("cascade: empty area %s", area)
	}
	met := m.cfg.Metrics
	off := met.ButtonSize + met.BorderWidth
	size := geom.Pt(area.W*2/3, area.H*2/3)
	rects := tiling.Cascade(len(wins), area, geom.Pt(off, off), size)
	for i, w := range wins {
		m.place(w, rects[i])
	}
	return nil
}

// Untile puts back the rects saved by Tile and Cascade for the children of
// parent and returns how many windows moved.
func (m *Manager) Untile(parent *Window) int {
	n := 0
	for _, w := range m.ChildWindows(parent) {
		r, ok := m.saved[w.handle]
		if !ok {
			continue
		}
		delete(m.saved, w.handle)
		w.setRect(r)
		n++
	}
	return n
}

// setRect places w at the origin of r with the size of r, clamped to the
// minimum size.
func (w *Window) setRect(r geom.Rect) {
	w.Base.MovePos(r.Origin())
	w.Base.Resize(r.Size())
}
