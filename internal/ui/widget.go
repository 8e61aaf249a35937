package ui

import (
	"fmt"

	"golang.org/x/image/font"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
	"github.com/1broseidon/wintk/internal/resource"
)

// Flags are creation-time options for windows and widgets.
type Flags uint32

const (
	FlagSysMenu Flags = 1 << iota
	FlagMinMax
	FlagCanMove
	FlagCanResize
	FlagClose
	FlagActive // Always drawn with the active title color.
	FlagNoScroll
	FlagFill // Top-level window covering the whole screen.
	FlagAutoSize
	FlagNoFocus
	FlagDialog
	FlagBorderless
	FlagNoActivate
	FlagBorder // Widget draws a frame; counts toward its shrink factor.
)

const (
	FlagsDefault = FlagSysMenu | FlagMinMax | FlagCanMove | FlagCanResize | FlagClose
	FlagsDialog  = FlagCanMove | FlagClose | FlagDialog
)

// Style holds the visual attributes shared by every widget kind.
type Style struct {
	Fg          render.Color
	Bg          render.Color
	BorderColor render.Color
	BorderWidth uint8
	Padding     geom.Dimension
	Margin      geom.Dimension
	MinSize     geom.Dimension
	Font        string
}

// Widget is implemented by every element of the widget tree. Concrete kinds
// embed Base and override the methods they specialize.
type Widget interface {
	ID() string
	Handle() Handle
	Parent() Widget
	Flags() Flags
	// AsBase returns the embedded Base.
	AsBase() *Base
	// Init is called once, after the widget is attached to its parent.
	Init()
	// Rect returns the widget bounds, parent-relative or absolute, with or
	// without the parent's scroll offset applied.
	Rect(relative, scrolled bool) geom.Rect
	ClientRect(relative, scrolled bool) geom.Rect
	HitTest(pt geom.Point) HitResult
	// HandleEvent reports whether ev was consumed.
	HandleEvent(ev *Event) bool
	Draw()
	SetFocus(focus bool, from Widget)
}

// Base carries the state common to all widgets. This must point at the
// outer value so base methods dispatch to overrides.
type Base struct {
	This Widget
	Tag  any

	id      string
	handle  Handle
	mgr     *Manager
	parent  Widget
	rect    geom.Rect
	flags   Flags
	style   Style
	focused bool
	text    string
	tooltip string

	tooltipTimer TimerID
	initialized  bool
}

func newBase(this Widget, id string, rect geom.Rect, flags Flags) Base {
	return Base{This: this, id: id, rect: rect, flags: flags}
}

func (b *Base) ID() string     { return b.id }
func (b *Base) AsBase() *Base  { return b }
func (b *Base) Init()          {}
func (b *Base) Draw()          {}
func (b *Base) Handle() Handle { return b.handle }

// Manager returns the manager the widget is attached to, or nil.
func (b *Base) Manager() *Manager { return b.mgr }

func (b *Base) Parent() Widget { return b.parent }
func (b *Base) Flags() Flags   { return b.flags }

// HasFlag reports whether every bit of f is set.
func (b *Base) HasFlag(f Flags) bool { return b.flags&f == f }

func (b *Base) Style() *Style    { return &b.style }
func (b *Base) Text() string     { return b.text }
func (b *Base) SetText(s string) { b.text = s }

func (b *Base) Tooltip() string     { return b.tooltip }
func (b *Base) SetTooltip(s string) { b.tooltip = s }

func (b *Base) IsFocused() bool { return b.focused }
func (b *Base) ClearFocus()     { b.focused = false }

// StoredRect returns the rect as last set, ignoring show state and parents.
func (b *Base) StoredRect() geom.Rect { return b.rect }

func (b *Base) this() Widget {
	if b.This != nil {
		return b.This
	}
	return b
}

// SetParent links the widget to parent. The link can be made only once.
func (b *Base) SetParent(parent Widget) error {
	if b.parent != nil {
		return fmt.Errorf("%s: %w", b.id, ErrAlreadyHasParent)
	}
	b.parent = parent
	return nil
}

// Window returns the nearest window at or above the widget.
func (b *Base) Window() *Window {
	var w Widget = b.this()
	for w != nil {
		if win, ok := w.(*Window); ok {
			return win
		}
		w = w.AsBase().parent
	}
	return nil
}

// ShrinkFactor is the inset from the widget bounds to its content.
func (b *Base) ShrinkFactor() geom.Dimension {
	d := b.style.Padding.Add(b.style.Margin)
	if b.flags&FlagBorder != 0 {
		d = d.Add(geom.Uniform(b.style.BorderWidth))
	}
	return d
}

func (b *Base) Rect(relative, scrolled bool) geom.Rect {
	r := b.rect
	if b.parent == nil {
		return r
	}
	if !relative {
		r = r.Offset(b.parent.ClientRect(false, scrolled).Origin())
	}
	if scrolled {
		r = r.OffsetNeg(scrollPos(b.parent))
	}
	return r
}

// scrollPos is the content scroll offset of w, zero for non-windows.
func scrollPos(w Widget) geom.Point {
	if win, ok := w.(*Window); ok {
		return win.ScrollPos()
	}
	return geom.Point{}
}

func (b *Base) ClientRect(relative, scrolled bool) geom.Rect {
	return b.this().Rect(relative, scrolled).DeflateDim(b.ShrinkFactor())
}

func (b *Base) HitTest(pt geom.Point) HitResult {
	return noHit
}

// HandleEvent shows the tooltip after the pointer rests on the widget.
func (b *Base) HandleEvent(ev *Event) bool {
	b.handleTooltip(ev)
	return false
}

// SetFocus gives the widget focus (from == nil) and tells the parent chain
// which child now holds it.
func (b *Base) SetFocus(focus bool, from Widget) {
	if b.flags&FlagNoFocus != 0 {
		return
	}
	if from == nil {
		b.focused = focus
	}
	if b.parent != nil {
		b.parent.SetFocus(focus, b.this())
	}
}

// SetActive activates the window containing the widget.
func (b *Base) SetActive() {
	if b.mgr == nil {
		return
	}
	if w := b.Window(); w != nil {
		b.mgr.SetActive(w)
	}
}

// MovePos moves the widget, clamping to non-negative coordinates. It reports
// whether the position was applied unchanged.
func (b *Base) MovePos(pos geom.Point) bool {
	b.rect.X, b.rect.Y = pos.X, pos.Y
	return !b.clampOrigin()
}

// MoveRel moves the widget by rel.
func (b *Base) MoveRel(rel geom.Point) bool {
	b.rect.X += rel.X
	b.rect.Y += rel.Y
	return !b.clampOrigin()
}

// Resize sets the size, clamped to the minimum size.
func (b *Base) Resize(size geom.Point) bool {
	b.rect.W, b.rect.H = size.X, size.Y
	return !b.clampSize()
}

// ResizeRel grows the widget by rel.
func (b *Base) ResizeRel(rel geom.Point) bool {
	b.rect.W += rel.X
	b.rect.H += rel.Y
	return !b.clampSize()
}

// MoveRect sets position and size together. r is read as a drag of its left
// and top edges: when the minimum size or the parent origin stops the rect,
// its right and bottom edges stay where r puts them.
func (b *Base) MoveRect(r geom.Rect) bool {
	clipped := false
	if r.X < 0 {
		r.W += r.X
		r.X = 0
		clipped = true
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
		clipped = true
	}
	if minW := int(b.style.MinSize.W); r.W < minW {
		r.X = max(r.X+r.W-minW, 0)
		r.W = minW
		clipped = true
	}
	if minH := int(b.style.MinSize.H); r.H < minH {
		r.Y = max(r.Y+r.H-minH, 0)
		r.H = minH
		clipped = true
	}
	b.rect = r
	return !clipped
}

func (b *Base) clampOrigin() bool {
	clipped := false
	if b.rect.X < 0 {
		b.rect.X = 0
		clipped = true
	}
	if b.rect.Y < 0 {
		b.rect.Y = 0
		clipped = true
	}
	return clipped
}

func (b *Base) clampSize() bool {
	clipped := false
	if minW := int(b.style.MinSize.W); b.rect.W < minW {
		b.rect.W = minW
		clipped = true
	}
	if minH := int(b.style.MinSize.H); b.rect.H < minH {
		b.rect.H = minH
		clipped = true
	}
	return clipped
}

// font returns the widget's font, falling back to the default font.
func (b *Base) font() font.Face {
	if b.mgr == nil {
		return nil
	}
	if b.style.Font != "" {
		if f := b.mgr.res.FindFont(b.style.Font); f != nil {
			return f
		}
	}
	f, err := b.mgr.res.DefaultFont()
	if err != nil {
		return nil
	}
	return f
}

// measure returns the size of text in the widget's font.
func (b *Base) measure(text string) geom.Point {
	f := b.font()
	if f == nil {
		return geom.Point{}
	}
	return resource.MeasureText(f, text)
}

// post queues a notification from this widget.
func (b *Base) post(class string, code EventCode, data any) {
	if b.mgr == nil {
		return
	}
	b.mgr.post(class, code, b.this(), data)
}

func (b *Base) handleTooltip(ev *Event) {
	m := b.mgr
	if m == nil || b.tooltip == "" {
		return
	}
	switch {
	case ev.Type == EventMouseMove && b.tooltipTimer == 0:
		if b.this().HitTest(ev.Pos).Hit() {
			b.tooltipTimer = m.AddTimer(m.cfg.Input.TooltipDelay(), false, b.this())
		}
	case b.tooltipTimer != 0 && ev.Timer == b.tooltipTimer && ev.Type == m.timerType:
		pt := m.Pointer()
		if b.this().HitTest(pt).Hit() {
			m.tooltip.Show(b.this(), pt, b.tooltip)
			return
		}
		_ = m.DeleteTimer(b.tooltipTimer)
		b.tooltipTimer = 0
		m.tooltip.Hide(b.this())
	}
}

// container is implemented by widgets that own other widgets outside the
// window's control list.
type container interface {
	children() []Widget
}

// attach links w under parent, registers it with m and runs Init once.
func attach(m *Manager, parent, w Widget) error {
	if w == nil {
		return ErrNilWidget
	}
	if parent != nil {
		if err := w.AsBase().SetParent(parent); err != nil {
			return err
		}
	}
	register(m, w)
	return nil
}

// register gives w and everything it contains a handle. Contents are
// initialized before their container.
func register(m *Manager, w Widget) {
	b := w.AsBase()
	if b.mgr == m && m.handles.get(b.handle) == w {
		return
	}
	b.mgr = m
	b.handle = m.handles.add(w)
	if c, ok := w.(container); ok {
		for _, child := range c.children() {
			register(m, child)
		}
	}
	if !b.initialized {
		b.initialized = true
		w.Init()
	}
}

// detach releases the handles of w and its contents so captures and timers
// on them lapse.
func detach(w Widget) {
	if c, ok := w.(container); ok {
		for _, child := range c.children() {
			detach(child)
		}
	}
	b := w.AsBase()
	if b.mgr == nil {
		return
	}
	if b.tooltipTimer != 0 {
		_ = b.mgr.DeleteTimer(b.tooltipTimer)
		b.tooltipTimer = 0
	}
	b.mgr.tooltip.Hide(w)
	b.mgr.handles.remove(b.handle)
}
