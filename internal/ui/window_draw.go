package ui

import (
	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

// Draw paints the frame, the title bar, the menu and toolbar, then the
// controls clipped to the client area, then the scroll bars.
func (w *Window) Draw() {
	if w.null || w.mgr == nil || !w.shown() {
		return
	}
	m := w.mgr
	r := m.r
	pal := m.palette

	clip := render.PushClip(r, w.clipRect(), true)
	defer clip.Restore()
	if clip.Empty() {
		return
	}

	outer := w.Rect(false, true)
	fillRect(r, outer, w.style.Bg)
	frameRect(r, outer, w.borderWidth(), w.style.BorderColor)

	if w.titleHeight() > 0 {
		w.drawTitleBar()
	}
	if w.menu != nil {
		w.menu.Draw()
	}
	if w.toolbar != nil {
		w.toolbar.Draw()
	}

	client := w.ClientRect(false, true)
	cc := render.PushClip(r, client, true)
	if !cc.Empty() {
		w.grid.Draw(r, client, w.ScrollPos(), pal.Border)
		for _, c := range w.controls {
			c.Draw()
		}
	}
	cc.Restore()

	w.scrollBars.Draw()
}

func (w *Window) drawTitleBar() {
	m := w.mgr
	pal := m.palette

	bar := w.TitleRect()
	bg := pal.TitleInactive
	if w.IsActive() {
		bg = pal.TitleActive
	}
	// The bar runs under the buttons too.
	outer := w.Rect(false, true)
	bw, th := w.borderWidth(), w.titleHeight()
	fillRect(m.r, geom.R(outer.X+bw, outer.Y+bw, outer.W-2*bw, th), bg)

	tc := render.PushClip(m.r, bar, true)
	if !tc.Empty() {
		m.drawTextIn(w.text, geom.R(bar.X+bw, bar.Y, bar.W-bw, bar.H), pal.TitleText, false, true)
	}
	tc.Restore()

	if rect := w.ButtonRect(HitSysMenu); !rect.IsEmpty() {
		m.drawButtonFace(rect, w.pushed&HitSysMenu != 0)
		m.drawGlyph(GlyphSysMenu, rect, pal.Text)
	}
	if rect := w.ButtonRect(HitMinButton); !rect.IsEmpty() {
		m.drawButtonFace(rect, w.pushed&HitMinButton != 0)
		glyph := GlyphMinimize
		if w.IsMinimized() {
			glyph = GlyphRestore
		}
		m.drawGlyph(glyph, rect, pal.Text)
	}
	if rect := w.ButtonRect(HitMaxButton); !rect.IsEmpty() {
		m.drawButtonFace(rect, w.pushed&HitMaxButton != 0)
		glyph := GlyphMaximize
		if w.IsMaximized() {
			glyph = GlyphRestore
		}
		m.drawGlyph(glyph, rect, pal.Text)
	}
	if rect := w.ButtonRect(HitCloseButton); !rect.IsEmpty() {
		m.drawButtonFace(rect, w.pushed&HitCloseButton != 0)
		m.drawGlyph(GlyphClose, rect, pal.Text)
	}
}
