// Package render defines the drawing sink widgets emit to each frame.
package render

import (
	"fmt"
	"image"

	"github.com/1broseidon/wintk/internal/geom"
)

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

var (
	Transparent = Color{}
	White       = RGB(255, 255, 255)
	Black       = RGB(0, 0, 0)
	VLightGrey  = RGB(224, 224, 224)
	LightGrey   = RGB(192, 192, 192)
	MedGrey     = RGB(128, 128, 128)
	DarkGrey    = RGB(64, 64, 64)
)

// IsTransparent reports whether the color has no alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// Darken halves each channel, keeping alpha.
func (c Color) Darken() Color {
	return Color{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (Color, error) {
	var c Color
	c.A = 255
	switch len(s) {
	case 7:
		_, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case 4:
		_, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", s)
	}
	return c, nil
}

// Texture is a backend-owned image that can be copied to the target.
type Texture interface {
	Size() geom.Point
}

// Renderer is the drawing capability consumed by widgets. An empty clip rect
// means no clipping.
type Renderer interface {
	SetDrawColor(c Color)
	FillRect(r geom.Rect)
	DrawRect(r geom.Rect)
	DrawLines(pts []geom.Point)
	ClipRect() geom.Rect
	SetClipRect(r geom.Rect)
	CreateTexture(img image.Image) (Texture, error)
	DestroyTexture(t Texture)
	Copy(t Texture, src, dst geom.Rect)
	SetTarget(t Texture) error
}

// TextDrawer is implemented by renderers that can draw text directly.
type TextDrawer interface {
	DrawText(text string, at geom.Point, fg Color)
}
