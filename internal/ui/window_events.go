package ui

import (
	"slices"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/resource"
)

// HandleEvent runs the window frame state machine. Events the frame does not
// use go to the menu, the toolbar, the scroll bars and then each control;
// arrow keys nobody consumed scroll the client area.
func (w *Window) HandleEvent(ev *Event) bool {
	if w.null || w.mgr == nil {
		return false
	}
	w.handleTooltip(ev)

	if w.handleFrame(ev) {
		return true
	}
	if w.forward(ev) {
		return true
	}
	if ev.Type == EventKeyDown {
		return w.handleScrollKey(ev)
	}
	return false
}

func (w *Window) handleFrame(ev *Event) bool {
	m := w.mgr
	capt := m.Capture()
	ours := capt.Captured && capt.Target.Target == Widget(w)

	switch ev.Type {
	case EventMouseDown:
		if ev.Button != ButtonLeft || capt.Captured {
			return false
		}
		hit := w.HitTest(ev.Pos)
		if hit.Target == nil {
			return false
		}
		w.SetActive()
		if hit.Target != Widget(w) {
			return false
		}
		if !hit.Hit() {
			return true
		}
		switch {
		case hit.Is(HitButtonAny):
			w.pushed |= hit.Zone
			m.startCapture(hit, ev.Pos)
			return true
		case hit.Zone == HitTitleBar:
			if ev.Clicks == 2 {
				w.Maximize()
				return true
			}
			m.startCapture(hit, ev.Pos)
			return true
		case hit.Is(HitBorderAny | HitCornerAny):
			m.startCapture(hit, ev.Pos)
			return true
		}

	case EventMouseUp:
		if !ours {
			return false
		}
		if zone := capt.Target.Zone; zone&HitButtonAny != 0 {
			w.pushed &^= zone
			if w.HitTest(ev.Pos).Same(capt.Target) {
				w.ButtonPushed(zone)
			}
		}
		m.ReleaseCapture()
		return true

	case EventMouseMove:
		if ours {
			w.drag(capt, ev.Pos)
			return true
		}
		if capt.Captured {
			return false
		}
		return w.trackCursor(ev.Pos)

	case EventMouseWheel:
		if ev.Wheel.Y != 0 {
			before := w.ScrollPos()
			w.ScrollRel(geom.Pt(0, -ev.Wheel.Y*m.cfg.Input.WheelStep))
			return w.ScrollPos() != before
		}
	}
	return false
}

// drag applies pointer motion to the captured zone. Edge drags keep the
// opposite edge in place.
func (w *Window) drag(c CaptureInfo, pt geom.Point) {
	zone := c.Target.Zone
	if zone&HitButtonAny != 0 {
		if w.HitTest(pt).Same(c.Target) {
			w.pushed |= zone
		} else {
			w.pushed &^= zone
		}
		return
	}

	o := c.Origin
	newPos := pt.Add(c.Delta)
	d := o.Origin().Sub(newPos)

	switch zone {
	case HitTitleBar:
		if p := w.ParentWindow(); p != nil {
			newPos = p.grid.SnapPoint(newPos)
		}
		w.MovePos(newPos)
	case HitBorderLeft:
		w.MoveRect(geom.R(newPos.X, o.Y, o.W+d.X, o.H))
	case HitBorderRight:
		w.Resize(geom.Pt(o.W-d.X, o.H))
	case HitBorderTop:
		w.MoveRect(geom.R(o.X, newPos.Y, o.W, o.H+d.Y))
	case HitBorderBottom:
		w.Resize(geom.Pt(o.W, o.H-d.Y))
	case HitCornerTopLeft:
		w.MoveRect(geom.R(newPos.X, newPos.Y, o.W+d.X, o.H+d.Y))
	case HitCornerTopRight:
		w.MoveRect(geom.R(o.X, newPos.Y, o.W, o.H+d.Y))
		w.Resize(geom.Pt(o.W-d.X, w.rect.H))
	case HitCornerBottomLeft:
		w.MoveRect(geom.R(newPos.X, o.Y, o.W+d.X, o.H))
		w.Resize(geom.Pt(w.rect.W, o.H-d.Y))
	case HitCornerBottomRight:
		w.Resize(geom.Pt(o.W-d.X, o.H-d.Y))
	}
}

// trackCursor shows the resize cursor matching the zone under pt.
func (w *Window) trackCursor(pt geom.Point) bool {
	hit := w.HitTest(pt)
	if hit.Target != Widget(w) {
		return false
	}
	m := w.mgr
	switch {
	case hit.Is(HitBorderTop | HitBorderBottom):
		m.SetCursor(resource.CursorNS)
	case hit.Is(HitBorderLeft | HitBorderRight):
		m.SetCursor(resource.CursorWE)
	case hit.Is(HitCornerTopLeft | HitCornerBottomRight):
		m.SetCursor(resource.CursorNWSE)
	case hit.Is(HitCornerTopRight | HitCornerBottomLeft):
		m.SetCursor(resource.CursorNESW)
	case hit.Is(HitTitleBar | HitButtonAny):
		m.SetCursor(resource.CursorDefault)
	default:
		m.SetCursor(resource.CursorDefault)
		return false
	}
	return true
}

func (w *Window) forward(ev *Event) bool {
	if w.menu != nil && w.menu.HandleEvent(ev) {
		return true
	}
	if w.toolbar != nil && w.toolbar.HandleEvent(ev) {
		return true
	}
	if w.scrollBars.HandleEvent(ev) {
		return true
	}
	for _, c := range slices.Clone(w.controls) {
		if c.HandleEvent(ev) {
			return true
		}
	}
	return false
}

func (w *Window) handleScrollKey(ev *Event) bool {
	step := w.mgr.cfg.Input.KeyScrollStep
	st := w.scrollBars.current()
	switch ev.Key {
	case KeyLeft:
		if st.showH {
			w.ScrollRel(geom.Pt(-step, 0))
			return true
		}
	case KeyRight:
		if st.showH {
			w.ScrollRel(geom.Pt(step, 0))
			return true
		}
	case KeyUp:
		if st.showV {
			w.ScrollRel(geom.Pt(0, -step))
			return true
		}
	case KeyDown:
		if st.showV {
			w.ScrollRel(geom.Pt(0, step))
			return true
		}
	}
	return false
}

// ButtonPushed runs the action of a title bar button.
func (w *Window) ButtonPushed(zone HitZone) {
	switch zone {
	case HitMaxButton:
		w.Maximize()
	case HitMinButton:
		w.Minimize()
	case HitCloseButton:
		w.Close()
	case HitSysMenu:
		w.post(ClassWindow, CodeWindowSysMenu, nil)
	}
}

// Pushed returns the title bar buttons currently drawn pressed.
func (w *Window) Pushed() HitZone { return w.pushed }
