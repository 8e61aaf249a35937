package ui

import "github.com/1broseidon/wintk/internal/geom"

// Label is static text. It reports Control under the pointer so its tooltip
// works, but never consumes input.
type Label struct {
	Base
}

func NewLabel(id, text string, rect geom.Rect) *Label {
	l := &Label{}
	l.Base = newBase(l, id, rect, FlagNoFocus)
	l.text = text
	return l
}

// NewAutoSizeLabel returns a label sized to its text when attached.
func NewAutoSizeLabel(id, text string, pos geom.Point) *Label {
	l := NewLabel(id, text, geom.R(pos.X, pos.Y, 0, 0))
	l.flags |= FlagAutoSize
	return l
}

func (l *Label) Init() {
	if l.HasFlag(FlagAutoSize) {
		size := l.measure(l.text)
		sf := l.ShrinkFactor()
		l.rect.W = size.X + 2*int(sf.W)
		l.rect.H = size.Y + 2*int(sf.H)
	}
}

func (l *Label) HitTest(pt geom.Point) HitResult {
	if l.Rect(false, true).Contains(pt) {
		return HitResult{HitControl, l}
	}
	return noHit
}

func (l *Label) Draw() {
	m := l.mgr
	if m == nil {
		return
	}
	fillRect(m.r, l.Rect(false, true), l.style.Bg)
	fg := m.palette.Text
	if !l.style.Fg.IsTransparent() {
		fg = l.style.Fg
	}
	m.drawTextIn(l.text, l.ClientRect(false, true), fg, false, true)
}
