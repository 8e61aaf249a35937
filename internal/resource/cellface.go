package resource

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/1broseidon/wintk/internal/geom"
)

// CellFace is a font.Face for character-cell backends: every rune is one unit
// wide and one unit high. It has no glyph masks.
type CellFace struct{}

func (CellFace) Close() error { return nil }

func (CellFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return image.Rectangle{}, nil, image.Point{}, fixed.I(1), false
}

func (CellFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.R(0, -1, 1, 0), fixed.I(1), true
}

func (CellFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return fixed.I(1), true
}

func (CellFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (CellFace) Metrics() font.Metrics {
	return font.Metrics{
		Height:    fixed.I(1),
		Ascent:    fixed.I(1),
		CapHeight: fixed.I(1),
		XHeight:   fixed.I(1),
	}
}

// MeasureText returns the size of text drawn with face.
func MeasureText(face font.Face, text string) geom.Point {
	if face == nil {
		return geom.Point{}
	}
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	return geom.Pt(w, h)
}
