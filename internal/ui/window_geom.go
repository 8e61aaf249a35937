package ui

import "github.com/1broseidon/wintk/internal/geom"

func (w *Window) borderWidth() int {
	if w.HasFlag(FlagBorderless) {
		return 0
	}
	return w.metrics().BorderWidth
}

func (w *Window) titleHeight() int {
	if w.HasFlag(FlagBorderless) {
		return 0
	}
	return w.metrics().ButtonSize
}

// minimizedHeight is the height of the title strip shown while minimized.
func (w *Window) minimizedHeight() int {
	return w.titleHeight() + 2*w.borderWidth()
}

// Rect returns the window bounds. Maximized windows cover the parent's
// client area and minimized windows sit in a slot along its bottom edge;
// neither follows the parent's scroll offset.
func (w *Window) Rect(relative, scrolled bool) geom.Rect {
	if w.null || w.mgr == nil {
		return w.rect
	}
	p := w.ParentWindow()
	if p == nil {
		if w.HasFlag(FlagFill) {
			return w.mgr.ScreenRect()
		}
		return w.rect
	}

	pc := p.ClientRect(false, scrolled)
	var r geom.Rect
	switch {
	case w.IsMinimized():
		h := w.minimizedHeight()
		mw := w.metrics().MinimizedWidth
		r = geom.R(p.minimizedIndex(w)*mw, pc.H-h, mw, h)
	case w.IsMaximized():
		r = geom.R(0, 0, pc.W, pc.H)
	default:
		r = w.rect
		if scrolled {
			r = r.OffsetNeg(p.ScrollPos())
		}
	}
	if !relative {
		r = r.Offset(pc.Origin())
	}
	return r
}

// frameInterior is the area inside the border and below the title bar.
func (w *Window) frameInterior(relative, scrolled bool) geom.Rect {
	r := w.Rect(relative, scrolled)
	bw, th := w.borderWidth(), w.titleHeight()
	return geom.R(r.X+bw, r.Y+bw+th, max(0, r.W-2*bw), max(0, r.H-2*bw-th))
}

func (w *Window) menuHeight(width int) int {
	if w.menu == nil {
		return 0
	}
	return w.menu.Height(width)
}

func (w *Window) toolbarHeight() int {
	if w.toolbar == nil {
		return 0
	}
	return w.toolbar.Height()
}

// RawClientRect is the client area before the scroll bars are taken out.
func (w *Window) RawClientRect(relative, scrolled bool) geom.Rect {
	fi := w.frameInterior(relative, scrolled)
	top := w.menuHeight(fi.W) + w.toolbarHeight()
	return geom.R(fi.X, fi.Y+top, fi.W, max(0, fi.H-top))
}

// ClientRect is the area child controls and windows are placed in.
func (w *Window) ClientRect(relative, scrolled bool) geom.Rect {
	if w.null || w.mgr == nil {
		return geom.Rect{}
	}
	raw := w.RawClientRect(relative, scrolled)
	return w.scrollBars.state(raw).view()
}

// TitleRect is the title bar area between the system menu button and the
// right-hand buttons.
func (w *Window) TitleRect() geom.Rect {
	th := w.titleHeight()
	if th == 0 {
		return geom.Rect{}
	}
	r := w.Rect(false, true)
	bw := w.borderWidth()
	left := r.X + bw
	if w.HasFlag(FlagSysMenu) {
		left += th
	}
	right := r.Right() - bw - w.rightButtons()*th
	return geom.R(left, r.Y+bw, max(0, right-left), th)
}

// rightButtons counts the buttons at the right of the title bar.
func (w *Window) rightButtons() int {
	n := 0
	if w.HasFlag(FlagClose) {
		n++
	}
	if w.HasFlag(FlagMinMax) {
		n += 2
	}
	return n
}

// ButtonRect returns the rect of a title bar button zone, or an empty rect
// when the window does not have that button.
func (w *Window) ButtonRect(zone HitZone) geom.Rect {
	th := w.titleHeight()
	if th == 0 {
		return geom.Rect{}
	}
	r := w.Rect(false, true)
	bw := w.borderWidth()
	y := r.Y + bw
	slot := func(i int) geom.Rect {
		return geom.R(r.Right()-bw-(i+1)*th, y, th, th)
	}

	switch zone {
	case HitSysMenu:
		if w.HasFlag(FlagSysMenu) {
			return geom.R(r.X+bw, y, th, th)
		}
	case HitCloseButton:
		if w.HasFlag(FlagClose) {
			return slot(0)
		}
	case HitMaxButton, HitMinButton:
		if !w.HasFlag(FlagMinMax) {
			break
		}
		i := 0
		if w.HasFlag(FlagClose) {
			i++
		}
		if zone == HitMinButton {
			i++
		}
		return slot(i)
	}
	return geom.Rect{}
}

// clipRect is the visible part of the window: its bounds cut by the client
// area of every ancestor.
func (w *Window) clipRect() geom.Rect {
	r := w.Rect(false, true)
	for p := w.ParentWindow(); p != nil; p = p.ParentWindow() {
		r = r.Intersect(p.ClientRect(false, true))
	}
	return r
}

// minimizedIndex returns the slot held by child, or -1.
func (w *Window) minimizedIndex(child *Window) int {
	for i, c := range w.minimized {
		if c == child {
			return i
		}
	}
	return -1
}

// setMinimizedChild takes the first free slot for child. A child already in
// a slot keeps it.
func (w *Window) setMinimizedChild(child *Window) {
	if w.minimizedIndex(child) >= 0 {
		return
	}
	for i, c := range w.minimized {
		if c == nil {
			w.minimized[i] = child
			return
		}
	}
	w.minimized = append(w.minimized, child)
}

// removeMinimizedChild frees the slot of child, trimming free slots at the
// end so later minimized windows start from the left again.
func (w *Window) removeMinimizedChild(child *Window) {
	i := w.minimizedIndex(child)
	if i < 0 {
		return
	}
	w.minimized[i] = nil
	for len(w.minimized) > 0 && w.minimized[len(w.minimized)-1] == nil {
		w.minimized = w.minimized[:len(w.minimized)-1]
	}
}

// MinimizedChildren returns the occupied slots; free slots are nil.
func (w *Window) MinimizedChildren() []*Window {
	return append([]*Window(nil), w.minimized...)
}
