package ui

import (
	"github.com/1broseidon/wintk/internal/geom"
)

// ScrollBars holds a window's scroll position and derives its scroll bars
// from the window's content on every call.
type ScrollBars struct {
	Base

	wnd    *Window
	pos    geom.Point
	pushed HitZone

	// Slider drag start.
	dragPt  geom.Point
	dragPos geom.Point
}

func newScrollBars(w *Window) *ScrollBars {
	s := &ScrollBars{wnd: w}
	s.Base = newBase(s, w.id+".scrollbars", geom.Rect{}, FlagNoFocus)
	return s
}

// scrollState is the scroll bar layout for one raw client rect.
type scrollState struct {
	raw          geom.Rect
	sb           int
	showH, showV bool
	max          geom.Point
}

// view is the client area left once the bars are taken out.
func (st scrollState) view() geom.Rect {
	v := st.raw
	if st.showV {
		v.W = max(0, v.W-st.sb)
	}
	if st.showH {
		v.H = max(0, v.H-st.sb)
	}
	return v
}

// contentExtent is the bottom-right corner of everything placed in the
// client area, in unscrolled client coordinates.
func (s *ScrollBars) contentExtent() geom.Point {
	var ext geom.Point
	grow := func(r geom.Rect) {
		ext.X = max(ext.X, r.Right())
		ext.Y = max(ext.Y, r.Bottom())
	}
	for _, c := range s.wnd.controls {
		grow(c.Rect(true, false))
	}
	if m := s.wnd.mgr; m != nil {
		for _, child := range m.ChildWindows(s.wnd) {
			if !child.IsVisible() || child.IsMaximized() || child.IsMinimized() {
				continue
			}
			grow(child.rect)
		}
	}
	return ext
}

func (s *ScrollBars) state(raw geom.Rect) scrollState {
	st := scrollState{raw: raw}
	w := s.wnd
	if w.HasFlag(FlagNoScroll) || w.mgr == nil {
		return st
	}
	st.sb = w.metrics().ScrollBarSize

	ext := s.contentExtent()
	st.showH = ext.X > raw.W || s.pos.X != 0
	st.showV = ext.Y > raw.H || s.pos.Y != 0
	if st.showH && !st.showV {
		st.showV = ext.Y > raw.H-st.sb
	}
	if st.showV && !st.showH {
		st.showH = ext.X > raw.W-st.sb
	}

	view := st.view()
	if st.showH {
		st.max.X = max(0, ext.X-view.W)
	}
	if st.showV {
		st.max.Y = max(0, ext.Y-view.H)
	}
	return st
}

// current is the state for the window's on-screen raw client rect.
func (s *ScrollBars) current() scrollState {
	return s.state(s.wnd.RawClientRect(false, true))
}

// Pos returns the scroll position.
func (s *ScrollBars) Pos() geom.Point { return s.pos }

// Max returns the largest scroll position on each axis.
func (s *ScrollBars) Max() geom.Point { return s.current().max }

// Visible reports which bars are shown.
func (s *ScrollBars) Visible() (horizontal, vertical bool) {
	st := s.current()
	return st.showH, st.showV
}

// Refresh clamps the scroll position after the content or the window size
// changed.
func (s *ScrollBars) Refresh() {
	st := s.current()
	s.pos.X = clamp(s.pos.X, 0, st.max.X)
	s.pos.Y = clamp(s.pos.Y, 0, st.max.Y)
}

// ScrollRel scrolls by d along the axes whose bar is shown.
func (s *ScrollBars) ScrollRel(d geom.Point) {
	if s.wnd.HasFlag(FlagNoScroll) {
		return
	}
	st := s.current()
	if st.showH {
		s.pos.X = clamp(s.pos.X+d.X, 0, st.max.X)
	}
	if st.showV {
		s.pos.Y = clamp(s.pos.Y+d.Y, 0, st.max.Y)
	}
}

// ScrollTo sets the scroll position, clamped to [0, max].
func (s *ScrollBars) ScrollTo(pos geom.Point) {
	if s.wnd.HasFlag(FlagNoScroll) {
		return
	}
	st := s.current()
	s.pos.X = clamp(pos.X, 0, st.max.X)
	s.pos.Y = clamp(pos.Y, 0, st.max.Y)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// barRects returns the horizontal and vertical bar rects; a hidden bar is
// empty.
func (st scrollState) barRects() (h, v geom.Rect) {
	if st.showH {
		w := st.raw.W
		if st.showV {
			w -= st.sb
		}
		h = geom.R(st.raw.X, st.raw.Bottom()-st.sb, max(0, w), st.sb)
	}
	if st.showV {
		hh := st.raw.H
		if st.showH {
			hh -= st.sb
		}
		v = geom.R(st.raw.Right()-st.sb, st.raw.Y, st.sb, max(0, hh))
	}
	return h, v
}

// scrollParts is the geometry of one bar.
type scrollParts struct {
	dec, inc, area, slider geom.Rect
}

func (s *ScrollBars) hParts(st scrollState, bar geom.Rect) scrollParts {
	sb := st.sb
	p := scrollParts{
		dec:  geom.R(bar.X, bar.Y, sb, sb),
		inc:  geom.R(bar.Right()-sb, bar.Y, sb, sb),
		area: geom.R(bar.X+sb, bar.Y, max(0, bar.W-2*sb), sb),
	}
	off, length := s.sliderSpan(p.area.W, st.max.X, s.pos.X, st.view().W)
	p.slider = geom.R(p.area.X+off, bar.Y, length, sb)
	return p
}

func (s *ScrollBars) vParts(st scrollState, bar geom.Rect) scrollParts {
	sb := st.sb
	p := scrollParts{
		dec:  geom.R(bar.X, bar.Y, sb, sb),
		inc:  geom.R(bar.X, bar.Bottom()-sb, sb, sb),
		area: geom.R(bar.X, bar.Y+sb, sb, max(0, bar.H-2*sb)),
	}
	off, length := s.sliderSpan(p.area.H, st.max.Y, s.pos.Y, st.view().H)
	p.slider = geom.R(bar.X, p.area.Y+off, sb, length)
	return p
}

// sliderSpan sizes the slider in proportion to the visible part of the
// content and places it in proportion to the scroll position.
func (s *ScrollBars) sliderSpan(area, maxPos, pos, view int) (off, length int) {
	if area <= 0 {
		return 0, 0
	}
	total := maxPos + view
	if total <= 0 {
		return 0, area
	}
	minLen := max(1, 2*s.wnd.borderWidth())
	length = min(max(view*area/total, minLen), area)
	off = min(pos*area/total, area-length)
	return max(0, off), length
}

// HitTest classifies pt against the visible bars.
func (s *ScrollBars) HitTest(pt geom.Point) HitResult {
	st := s.current()
	hBar, vBar := st.barRects()
	if hBar.Contains(pt) {
		p := s.hParts(st, hBar)
		switch {
		case p.dec.Contains(pt):
			return HitResult{HitHScrollLeft, s}
		case p.inc.Contains(pt):
			return HitResult{HitHScrollRight, s}
		case p.slider.Contains(pt):
			return HitResult{HitHScrollSlider, s}
		case p.area.Contains(pt):
			return HitResult{HitHScrollArea, s}
		}
	}
	if vBar.Contains(pt) {
		p := s.vParts(st, vBar)
		switch {
		case p.dec.Contains(pt):
			return HitResult{HitVScrollUp, s}
		case p.inc.Contains(pt):
			return HitResult{HitVScrollDown, s}
		case p.slider.Contains(pt):
			return HitResult{HitVScrollSlider, s}
		case p.area.Contains(pt):
			return HitResult{HitVScrollArea, s}
		}
	}
	return noHit
}

// ClickTrack jumps to the position matching pt on the track of the bar named
// by zone.
func (s *ScrollBars) ClickTrack(zone HitZone, pt geom.Point) {
	st := s.current()
	hBar, vBar := st.barRects()
	switch {
	case zone&HitHScrollAny != 0 && !hBar.IsEmpty():
		area := s.hParts(st, hBar).area
		if area.W > 0 {
			s.ScrollTo(geom.Pt((pt.X-area.X)*st.max.X/area.W, s.pos.Y))
		}
	case zone&HitVScrollAny != 0 && !vBar.IsEmpty():
		area := s.vParts(st, vBar).area
		if area.H > 0 {
			s.ScrollTo(geom.Pt(s.pos.X, (pt.Y-area.Y)*st.max.Y/area.H))
		}
	}
}

// step scrolls one tenth of the range, at least one unit, for an arrow
// button.
func (s *ScrollBars) step(zone HitZone) {
	st := s.current()
	dx := max(1, st.max.X/10)
	dy := max(1, st.max.Y/10)
	switch zone {
	case HitHScrollLeft:
		s.ScrollRel(geom.Pt(-dx, 0))
	case HitHScrollRight:
		s.ScrollRel(geom.Pt(dx, 0))
	case HitVScrollUp:
		s.ScrollRel(geom.Pt(0, -dy))
	case HitVScrollDown:
		s.ScrollRel(geom.Pt(0, dy))
	}
}

// HandleEvent runs the arrow buttons and the slider drag.
func (s *ScrollBars) HandleEvent(ev *Event) bool {
	m := s.mgr
	if m == nil {
		return false
	}
	capt := m.Capture()
	ours := capt.Captured && capt.Target.Target == Widget(s)

	switch ev.Type {
	case EventMouseDown:
		if ours || ev.Button != ButtonLeft {
			return false
		}
		hit := s.HitTest(ev.Pos)
		switch {
		case hit.Is(HitScrollButton):
			s.pushed |= hit.Zone
			m.startCapture(hit, ev.Pos)
			return true
		case hit.Is(HitHScrollSlider | HitVScrollSlider):
			s.dragPt, s.dragPos = ev.Pos, s.pos
			m.startCapture(hit, ev.Pos)
			return true
		case hit.Is(HitHScrollArea | HitVScrollArea):
			s.ClickTrack(hit.Zone, ev.Pos)
			return true
		}

	case EventMouseUp:
		if !ours {
			return false
		}
		if zone := capt.Target.Zone; zone&HitScrollButton != 0 {
			s.pushed &^= zone
			if s.HitTest(ev.Pos).Same(capt.Target) {
				s.step(zone)
			}
		}
		m.ReleaseCapture()
		return true

	case EventMouseMove:
		if !ours {
			return false
		}
		zone := capt.Target.Zone
		if zone&HitScrollButton != 0 {
			if s.HitTest(ev.Pos).Same(capt.Target) {
				s.pushed |= zone
			} else {
				s.pushed &^= zone
			}
			return true
		}
		s.dragSlider(zone, ev.Pos)
		return true
	}
	return false
}

// dragSlider converts pointer travel along the track into scroll travel.
func (s *ScrollBars) dragSlider(zone HitZone, pt geom.Point) {
	st := s.current()
	hBar, vBar := st.barRects()
	d := pt.Sub(s.dragPt)
	switch zone {
	case HitHScrollSlider:
		area := s.hParts(st, hBar).area
		if area.W > 0 {
			total := st.max.X + st.view().W
			s.ScrollTo(geom.Pt(s.dragPos.X+d.X*total/area.W, s.pos.Y))
		}
	case HitVScrollSlider:
		area := s.vParts(st, vBar).area
		if area.H > 0 {
			total := st.max.Y + st.view().H
			s.ScrollTo(geom.Pt(s.pos.X, s.dragPos.Y+d.Y*total/area.H))
		}
	}
}

// Draw paints the visible bars.
func (s *ScrollBars) Draw() {
	m := s.mgr
	if m == nil {
		return
	}
	st := s.current()
	hBar, vBar := st.barRects()
	pal := m.palette
	if !hBar.IsEmpty() {
		p := s.hParts(st, hBar)
		fillRect(m.r, hBar, pal.ScrollTrack)
		m.drawButtonFace(p.dec, s.pushed&HitHScrollLeft != 0)
		m.drawGlyph(GlyphLeft, p.dec, pal.Text)
		m.drawButtonFace(p.inc, s.pushed&HitHScrollRight != 0)
		m.drawGlyph(GlyphRight, p.inc, pal.Text)
		fillRect(m.r, p.slider, pal.Slider)
		bevel(m.r, p.slider, pal.Slider, false)
	}
	if !vBar.IsEmpty() {
		p := s.vParts(st, vBar)
		fillRect(m.r, vBar, pal.ScrollTrack)
		m.drawButtonFace(p.dec, s.pushed&HitVScrollUp != 0)
		m.drawGlyph(GlyphUp, p.dec, pal.Text)
		m.drawButtonFace(p.inc, s.pushed&HitVScrollDown != 0)
		m.drawGlyph(GlyphDown, p.inc, pal.Text)
		fillRect(m.r, p.slider, pal.Slider)
		bevel(m.r, p.slider, pal.Slider, false)
	}
	if !hBar.IsEmpty() && !vBar.IsEmpty() {
		fillRect(m.r, geom.R(vBar.X, hBar.Y, st.sb, st.sb), pal.Window)
	}
}
