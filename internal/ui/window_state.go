package ui

import "github.com/1broseidon/wintk/internal/geom"

// Minimize toggles the minimized state. Minimizing takes the first free slot
// in the parent's minimized list; restoring frees it.
func (w *Window) Minimize() {
	if w.null || !w.HasFlag(FlagMinMax) {
		return
	}
	p := w.ParentWindow()
	if w.IsMinimized() {
		w.showState &^= ShowMinimized
		if p != nil {
			p.removeMinimizedChild(w)
		}
		return
	}
	w.showState |= ShowMinimized
	w.showState &^= ShowMaximized
	if p != nil {
		p.setMinimizedChild(w)
	}
}

// Maximize toggles the maximized state. Entering it resets the scroll
// position.
func (w *Window) Maximize() {
	if w.null || !w.HasFlag(FlagMinMax) {
		return
	}
	if w.IsMaximized() {
		w.showState &^= ShowMaximized
		return
	}
	if w.IsMinimized() {
		w.showState &^= ShowMinimized
		if p := w.ParentWindow(); p != nil {
			p.removeMinimizedChild(w)
		}
	}
	w.showState |= ShowMaximized
	w.ScrollTo(geom.Point{})
}

// Restore clears the maximized and minimized states.
func (w *Window) Restore() {
	if w.null || !w.HasFlag(FlagMinMax) {
		return
	}
	if w.IsMinimized() {
		if p := w.ParentWindow(); p != nil {
			p.removeMinimizedChild(w)
		}
	}
	w.showState &^= ShowMaximized | ShowMinimized
}

// Close asks the application to close the window by posting WindowClose.
// The window stays in place until the application removes it.
func (w *Window) Close() bool {
	if w.null || !w.HasFlag(FlagClose) {
		return false
	}
	w.post(ClassWindow, CodeWindowClose, nil)
	return true
}

// ScrollRel scrolls the client area by d along the axes with a scroll bar.
func (w *Window) ScrollRel(d geom.Point) {
	if w.null {
		return
	}
	w.scrollBars.ScrollRel(d)
}

// ScrollTo scrolls the client area to pos.
func (w *Window) ScrollTo(pos geom.Point) {
	if w.null {
		return
	}
	w.scrollBars.ScrollTo(pos)
}

func (w *Window) canMove() bool {
	return !w.null && w.HasFlag(FlagCanMove) && !w.IsMaximized() && !w.IsMinimized()
}

func (w *Window) canResize() bool {
	return !w.null && w.HasFlag(FlagCanResize) && !w.IsMaximized() && !w.IsMinimized()
}

// MovePos moves the window when it can be moved.
func (w *Window) MovePos(pos geom.Point) bool {
	if !w.canMove() {
		return false
	}
	return w.Base.MovePos(pos)
}

// MoveRel moves the window by rel when it can be moved.
func (w *Window) MoveRel(rel geom.Point) bool {
	if !w.canMove() {
		return false
	}
	return w.Base.MoveRel(rel)
}

// Resize resizes the window when it can be resized.
func (w *Window) Resize(size geom.Point) bool {
	if !w.canResize() {
		return false
	}
	return w.Base.Resize(size)
}

// ResizeRel grows the window by rel when it can be resized.
func (w *Window) ResizeRel(rel geom.Point) bool {
	if !w.canResize() {
		return false
	}
	return w.Base.ResizeRel(rel)
}

// MoveRect moves and resizes the window when it can be resized.
func (w *Window) MoveRect(r geom.Rect) bool {
	if !w.canResize() {
		return false
	}
	return w.Base.MoveRect(r)
}
