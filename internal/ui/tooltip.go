package ui

import (
	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

// Tooltip is the single hint box shown above the pointer. It is owned by the
// manager and drawn after every window.
type Tooltip struct {
	m     *Manager
	owner Handle
	text  string
	rect  geom.Rect
}

// Show displays text for owner just above pos, kept on screen.
func (t *Tooltip) Show(owner Widget, pos geom.Point, text string) {
	if owner == nil || text == "" {
		return
	}
	m := t.m
	pad := max(1, m.cfg.Metrics.BorderWidth)
	size := m.measure(text).Add(geom.Pt(2*pad, 2*pad))
	screen := m.ScreenRect()

	x := min(pos.X, screen.Right()-size.X)
	y := pos.Y - size.Y - m.cfg.Metrics.BorderWidth
	t.rect = geom.R(max(screen.X, x), max(screen.Y, y), size.X, size.Y)
	t.text = text
	t.owner = owner.AsBase().handle
}

// Hide removes the tooltip if owner shows it. A nil owner hides any tooltip.
func (t *Tooltip) Hide(owner Widget) {
	if owner != nil && owner.AsBase().handle != t.owner {
		return
	}
	t.owner = Handle{}
	t.text = ""
}

// Visible reports whether a tooltip is showing for a live widget.
func (t *Tooltip) Visible() bool {
	return t.text != "" && t.m.handles.get(t.owner) != nil
}

// Text returns the tooltip text.
func (t *Tooltip) Text() string { return t.text }

// Rect returns the tooltip bounds.
func (t *Tooltip) Rect() geom.Rect { return t.rect }

func (t *Tooltip) Draw() {
	if !t.Visible() {
		return
	}
	m := t.m
	clip := render.PushClip(m.r, m.ScreenRect(), false)
	defer clip.Restore()
	fillRect(m.r, t.rect, m.palette.Tooltip)
	frameRect(m.r, t.rect, 1, m.palette.Text)
	m.drawTextIn(t.text, t.rect, m.palette.Text, true, true)
}
