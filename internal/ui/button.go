package ui

import (
	"github.com/1broseidon/wintk/internal/geom"
)

// Button is a push button. It posts Clicked when released over itself, or
// on Space or Enter while focused.
type Button struct {
	Base

	pushed bool
	class  string
	code   EventCode

	// Optional image map tile drawn instead of the text.
	image      string
	imageIndex int
}

// NewButton returns a button with a fixed rect.
func NewButton(id, text string, rect geom.Rect) *Button {
	b := &Button{class: ClassButton, code: CodeButtonClicked}
	b.Base = newBase(b, id, rect, 0)
	b.text = text
	return b
}

// NewAutoSizeButton returns a button sized to its text when attached.
func NewAutoSizeButton(id, text string, pos geom.Point) *Button {
	b := NewButton(id, text, geom.R(pos.X, pos.Y, 0, 0))
	b.flags |= FlagAutoSize
	return b
}

// SetImage draws tile index of the image map id instead of the text.
func (b *Button) SetImage(id string, index int) {
	b.image, b.imageIndex = id, index
}

// IsPushed reports whether the button is drawn pressed.
func (b *Button) IsPushed() bool { return b.pushed }

func (b *Button) Init() {
	m := b.mgr
	if m == nil {
		return
	}
	bw := m.cfg.Metrics.BorderWidth
	if !b.style.Padding.NonZero() {
		b.style.Padding = geom.Dimension{W: uint8(bw), H: uint8(bw / 2)}
	}
	if b.HasFlag(FlagAutoSize) {
		size := b.measure(b.text)
		if b.image != "" {
			if img := m.res.Glyph(b.image, b.imageIndex); img != nil {
				size = img.Size()
			}
		}
		sf := b.ShrinkFactor()
		b.rect.W = size.X + 2*int(sf.W)
		b.rect.H = size.Y + 2*int(sf.H)
	}
}

func (b *Button) HitTest(pt geom.Point) HitResult {
	if b.Rect(false, true).Contains(pt) {
		return HitResult{HitControl, b.this()}
	}
	return noHit
}

func (b *Button) captured() bool {
	if b.mgr == nil {
		return false
	}
	c := b.mgr.Capture()
	return c.Captured && c.Target.Target == b.this()
}

func (b *Button) click() {
	b.post(b.class, b.code, nil)
}

func (b *Button) HandleEvent(ev *Event) bool {
	m := b.mgr
	if m == nil {
		return false
	}
	b.handleTooltip(ev)
	ours := b.captured()

	switch ev.Type {
	case EventMouseDown:
		if ours || ev.Button != ButtonLeft || !b.HitTest(ev.Pos).Hit() {
			return false
		}
		b.SetActive()
		b.SetFocus(true, nil)
		b.pushed = true
		m.startCapture(HitResult{HitControl, b.this()}, ev.Pos)
		return true

	case EventMouseUp:
		if !ours {
			return false
		}
		b.pushed = false
		m.ReleaseCapture()
		if b.HitTest(ev.Pos).Hit() {
			b.click()
		}
		return true

	case EventMouseMove:
		if !ours {
			return false
		}
		b.pushed = b.HitTest(ev.Pos).Hit()
		return true

	case EventKeyDown:
		if !b.focused || m.Capture().Captured || !isPressKey(ev.Key) {
			return false
		}
		b.pushed = true
		m.startCapture(HitResult{HitClient, b.this()}, m.Pointer())
		return true

	case EventKeyUp:
		if !ours || !isPressKey(ev.Key) {
			return false
		}
		b.pushed = false
		m.ReleaseCapture()
		b.click()
		return true
	}
	return false
}

func isPressKey(k Key) bool {
	return k == KeySpace || k == KeyEnter
}

func (b *Button) Draw() {
	m := b.mgr
	if m == nil {
		return
	}
	r := b.Rect(false, true)
	m.drawButtonFace(r, b.pushed)
	inner := b.ClientRect(false, true)
	if b.pushed {
		inner = inner.Offset(geom.Pt(1, 1))
	}
	if b.image != "" {
		if img := m.res.Glyph(b.image, b.imageIndex); img != nil && img.Draw(m.r, inner) {
			return
		}
	}
	fg := m.palette.Text
	if !b.style.Fg.IsTransparent() {
		fg = b.style.Fg
	}
	m.drawTextIn(b.text, inner, fg, true, true)
	if b.focused {
		frameRect(m.r, r, 1, m.palette.Border.Darken())
	}
}
