package ui

import (
	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

// GlyphMapID is the image map holding the title bar and scroll bar glyphs.
const GlyphMapID = "wintk.widgets"

// Tile indices in the glyph map.
const (
	GlyphMinimize = iota
	GlyphMaximize
	GlyphRestore
	GlyphClose
	GlyphSysMenu
	GlyphLeft
	GlyphRight
	GlyphUp
	GlyphDown
	GlyphSubmenu
)

// glyphText is drawn instead of a glyph when the map is not loaded.
var glyphText = [...]string{
	GlyphMinimize: "_",
	GlyphMaximize: "+",
	GlyphRestore:  "=",
	GlyphClose:    "x",
	GlyphSysMenu:  "*",
	GlyphLeft:     "<",
	GlyphRight:    ">",
	GlyphUp:       "^",
	GlyphDown:     "v",
	GlyphSubmenu:  ">",
}

func fillRect(r render.Renderer, rect geom.Rect, c render.Color) {
	if rect.IsEmpty() || c.IsTransparent() {
		return
	}
	r.SetDrawColor(c)
	r.FillRect(rect)
}

// frameRect paints a border of the given width just inside rect.
func frameRect(r render.Renderer, rect geom.Rect, width int, c render.Color) {
	if width <= 0 || rect.IsEmpty() {
		return
	}
	if width == 1 {
		r.SetDrawColor(c)
		r.DrawRect(rect)
		return
	}
	width = min(width, rect.W/2, rect.H/2)
	r.SetDrawColor(c)
	r.FillRect(geom.R(rect.X, rect.Y, rect.W, width))
	r.FillRect(geom.R(rect.X, rect.Bottom()-width, rect.W, width))
	r.FillRect(geom.R(rect.X, rect.Y+width, width, rect.H-2*width))
	r.FillRect(geom.R(rect.Right()-width, rect.Y+width, width, rect.H-2*width))
}

// bevel draws a one-unit 3D edge: light on the top and left, dark on the
// bottom and right. Sunken swaps them.
func bevel(r render.Renderer, rect geom.Rect, base render.Color, sunken bool) {
	if rect.W < 3 || rect.H < 3 {
		return
	}
	light, dark := render.White, base.Darken()
	if sunken {
		light, dark = dark, light
	}
	r.SetDrawColor(light)
	r.DrawLines([]geom.Point{
		geom.Pt(rect.X, rect.Bottom()-1),
		geom.Pt(rect.X, rect.Y),
		geom.Pt(rect.Right()-1, rect.Y),
	})
	r.SetDrawColor(dark)
	r.DrawLines([]geom.Point{
		geom.Pt(rect.Right()-1, rect.Y),
		geom.Pt(rect.Right()-1, rect.Bottom()-1),
		geom.Pt(rect.X, rect.Bottom()-1),
	})
}

// drawText draws text at a point when the renderer supports text.
func drawText(r render.Renderer, text string, at geom.Point, c render.Color) {
	if text == "" {
		return
	}
	if td, ok := r.(render.TextDrawer); ok {
		td.DrawText(text, at, c)
	}
}

// drawTextIn centers text in rect on the chosen axes.
func (m *Manager) drawTextIn(text string, rect geom.Rect, c render.Color, hcenter, vcenter bool) {
	size := m.measure(text)
	at := geom.R(rect.X, rect.Y, size.X, size.Y).CenterIn(rect, hcenter, vcenter).Origin()
	drawText(m.r, text, at, c)
}

// drawGlyph paints a tile of the glyph map into dst, falling back to text.
func (m *Manager) drawGlyph(index int, dst geom.Rect, c render.Color) {
	if img := m.res.Glyph(GlyphMapID, index); img != nil && img.Draw(m.r, dst) {
		return
	}
	if index >= 0 && index < len(glyphText) {
		m.drawTextIn(glyphText[index], dst, c, true, true)
	}
}

// drawButtonFace paints a push button background.
func (m *Manager) drawButtonFace(rect geom.Rect, pushed bool) {
	c := m.palette.Button
	if pushed {
		c = m.palette.ButtonPushed
	}
	fillRect(m.r, rect, c)
	bevel(m.r, rect, c, pushed)
}
