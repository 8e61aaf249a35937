package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
	"github.com/1broseidon/wintk/internal/resource"
)

// TextBox is a single line text field. While focused it takes text input
// and editing keys, posting Changed after every edit and EndEdit on Enter
// or Escape.
type TextBox struct {
	Base

	caret  int // Rune index into the text.
	scroll int // Pixels of text hidden left of the field.
}

func NewTextBox(id, text string, rect geom.Rect) *TextBox {
	t := &TextBox{}
	t.Base = newBase(t, id, rect, FlagBorder)
	t.text = singleLine(text)
	t.caret = utf8.RuneCountInString(t.text)
	return t
}

func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

// Init fills in the frame and padding. A zero height fits one line of text.
func (t *TextBox) Init() {
	m := t.mgr
	if m == nil {
		return
	}
	if t.style.BorderWidth == 0 {
		t.style.BorderWidth = 1
	}
	if !t.style.Padding.NonZero() {
		bw := m.cfg.Metrics.BorderWidth
		t.style.Padding = geom.Dimension{W: uint8(bw / 2), H: uint8(bw / 4)}
	}
	if t.rect.H == 0 {
		t.rect.H = t.measure("").Y + 2*int(t.ShrinkFactor().H)
	}
	t.scrollCaretIntoView()
}

// SetText replaces the text and puts the caret at its end. It posts no
// event.
func (t *TextBox) SetText(s string) {
	t.text = singleLine(s)
	t.caret = utf8.RuneCountInString(t.text)
	t.scrollCaretIntoView()
}

// Caret returns the caret position as a rune index.
func (t *TextBox) Caret() int { return t.caret }

// SetCaret moves the caret, clamped to the text.
func (t *TextBox) SetCaret(i int) {
	t.caret = min(max(i, 0), utf8.RuneCountInString(t.text))
	t.scrollCaretIntoView()
}

// Insert puts s at the caret and moves the caret past it. Line breaks are
// dropped.
func (t *TextBox) Insert(s string) {
	s = singleLine(s)
	if s == "" {
		return
	}
	rs := []rune(t.text)
	t.text = string(rs[:t.caret]) + s + string(rs[t.caret:])
	t.caret += utf8.RuneCountInString(s)
	t.changed()
}

// Backspace removes the rune before the caret.
func (t *TextBox) Backspace() {
	if t.caret == 0 {
		return
	}
	rs := []rune(t.text)
	t.text = string(rs[:t.caret-1]) + string(rs[t.caret:])
	t.caret--
	t.changed()
}

// Delete removes the rune after the caret.
func (t *TextBox) Delete() {
	rs := []rune(t.text)
	if t.caret >= len(rs) {
		return
	}
	t.text = string(rs[:t.caret]) + string(rs[t.caret+1:])
	t.changed()
}

func (t *TextBox) changed() {
	t.scrollCaretIntoView()
	t.post(ClassTextBox, CodeTextBoxChanged, nil)
}

// caretX is the caret offset from the start of the text, in pixels.
func (t *TextBox) caretX() int {
	return t.measure(string([]rune(t.text)[:t.caret])).X
}

func (t *TextBox) scrollCaretIntoView() {
	width := t.ClientRect(false, false).W
	if width <= 0 {
		return
	}
	x := t.caretX()
	switch {
	case x < t.scroll:
		t.scroll = x
	case x >= t.scroll+width:
		t.scroll = x - width + 1
	}
}

// CaretAt returns the caret position closest to the absolute point pt.
func (t *TextBox) CaretAt(pt geom.Point) int {
	x := pt.X - t.ClientRect(false, true).X + t.scroll
	rs := []rune(t.text)
	left := 0
	for i := range rs {
		right := t.measure(string(rs[:i+1])).X
		if x < (left+right)/2 {
			return i
		}
		left = right
	}
	return len(rs)
}

func (t *TextBox) HitTest(pt geom.Point) HitResult {
	if t.Rect(false, true).Contains(pt) {
		return HitResult{HitControl, t}
	}
	return noHit
}

func (t *TextBox) HandleEvent(ev *Event) bool {
	m := t.mgr
	if m == nil {
		return false
	}
	t.handleTooltip(ev)

	switch ev.Type {
	case EventMouseMove:
		if m.Capture().Captured || !t.HitTest(ev.Pos).Hit() {
			return false
		}
		m.SetCursor(resource.CursorIBeam)
		return true

	case EventMouseDown:
		if ev.Button != ButtonLeft || m.Capture().Captured || !t.HitTest(ev.Pos).Hit() {
			return false
		}
		t.SetActive()
		t.SetFocus(true, nil)
		t.SetCaret(t.CaretAt(ev.Pos))
		return true

	case EventTextInput:
		if !t.focused || ev.Text == "" {
			return false
		}
		t.Insert(ev.Text)
		return true

	case EventKeyDown:
		if !t.focused {
			return false
		}
		return t.handleKey(ev)
	}
	return false
}

func (t *TextBox) handleKey(ev *Event) bool {
	switch ev.Key {
	case KeyLeft:
		t.SetCaret(t.caret - 1)
	case KeyRight:
		t.SetCaret(t.caret + 1)
	case KeyHome:
		t.SetCaret(0)
	case KeyEnd:
		t.SetCaret(utf8.RuneCountInString(t.text))
	case KeyBackspace:
		t.Backspace()
	case KeyDelete:
		t.Delete()
	case KeyEnter:
		t.post(ClassTextBox, CodeTextBoxEndEdit, true)
	case KeyEscape:
		t.post(ClassTextBox, CodeTextBoxEndEdit, false)
	case KeyRune, KeySpace:
		// The character itself arrives as text input.
		return ev.Mod&(ModAlt|ModCtrl) == 0
	default:
		return false
	}
	return true
}

func (t *TextBox) Draw() {
	m := t.mgr
	if m == nil {
		return
	}
	r := t.Rect(false, true)
	bg := m.palette.Window
	if !t.style.Bg.IsTransparent() {
		bg = t.style.Bg
	}
	fillRect(m.r, r, bg)
	border := m.palette.Border
	if t.focused {
		border = border.Darken()
	}
	frameRect(m.r, r, int(t.style.BorderWidth), border)

	inner := t.ClientRect(false, true)
	clip := render.PushClip(m.r, inner, true)
	defer clip.Restore()
	if clip.Empty() {
		return
	}
	fg := m.palette.Text
	if !t.style.Fg.IsTransparent() {
		fg = t.style.Fg
	}
	lineH := t.measure("").Y
	at := geom.Pt(inner.X-t.scroll, inner.Y+(inner.H-lineH)/2)
	drawText(m.r, t.text, at, fg)
	if t.focused {
		fillRect(m.r, geom.R(at.X+t.caretX(), at.Y, 1, lineH), fg)
	}
}
