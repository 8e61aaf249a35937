package ui

import "github.com/1broseidon/wintk/internal/geom"

// HitTest classifies pt against the window. The first match wins: title
// bar, client area (controls first), title bar buttons, menu, toolbar,
// scroll bars, and finally the resize corners and edges.
func (w *Window) HitTest(pt geom.Point) HitResult {
	if w.null || w.mgr == nil || !w.shown() {
		return noHit
	}
	if !w.clipRect().Contains(pt) {
		return noHit
	}

	if w.TitleRect().Contains(pt) {
		return HitResult{HitTitleBar, w}
	}

	if w.ClientRect(false, true).Contains(pt) {
		for _, c := range w.controls {
			if h := c.HitTest(pt); h.Hit() {
				return h
			}
		}
		return HitResult{HitClient, w}
	}

	for _, zone := range []HitZone{HitSysMenu, HitMinButton, HitMaxButton, HitCloseButton} {
		if w.ButtonRect(zone).Contains(pt) {
			return HitResult{zone, w}
		}
	}

	if w.menu != nil {
		if h := w.menu.HitTest(pt); h.Hit() {
			return h
		}
	}
	if w.toolbar != nil {
		if h := w.toolbar.HitTest(pt); h.Hit() {
			return h
		}
	}
	if h := w.scrollBars.HitTest(pt); h.Hit() {
		return h
	}

	if !w.HasFlag(FlagCanResize) || w.IsMaximized() || w.IsMinimized() {
		return noHit
	}
	if zone := w.resizeZone(pt); zone != HitNothing {
		return HitResult{zone, w}
	}
	return noHit
}

// resizeZone maps pt to a corner or edge using a margin of twice the border
// width. A point inside the margin of two adjacent sides is a corner.
func (w *Window) resizeZone(pt geom.Point) HitZone {
	r := w.Rect(false, true)
	m := 2 * w.borderWidth()
	if m == 0 {
		return HitNothing
	}
	left := pt.X < r.X+m
	right := pt.X >= r.Right()-m
	top := pt.Y < r.Y+m
	bottom := pt.Y >= r.Bottom()-m

	switch {
	case top && left:
		return HitCornerTopLeft
	case top && right:
		return HitCornerTopRight
	case bottom && left:
		return HitCornerBottomLeft
	case bottom && right:
		return HitCornerBottomRight
	case top:
		return HitBorderTop
	case bottom:
		return HitBorderBottom
	case left:
		return HitBorderLeft
	case right:
		return HitBorderRight
	}
	return HitNothing
}
