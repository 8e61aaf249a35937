package tui

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

var errOffscreenTarget = errors.New("canvas cannot render to a texture")

type cell struct {
	ch     rune
	fg, bg render.Color
}

type stylePair struct {
	fg, bg render.Color
}

// Canvas is a render.Renderer over a grid of character cells. One unit of the
// toolkit's coordinate space is one cell.
type Canvas struct {
	w, h   int
	cells  []cell
	color  render.Color
	clip   geom.Rect
	styles map[stylePair]lipgloss.Style
}

// NewCanvas returns a blank canvas of w by h cells.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{styles: make(map[stylePair]lipgloss.Style)}
	c.Resize(w, h)
	return c
}

// Resize discards the contents and sets a new size.
func (c *Canvas) Resize(w, h int) {
	c.w, c.h = max(w, 0), max(h, 0)
	c.cells = make([]cell, c.w*c.h)
	c.Clear()
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() geom.Point { return geom.Pt(c.w, c.h) }

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', fg: render.Black, bg: render.Black}
	}
}

// Cell returns the rune and colors at x, y.
func (c *Canvas) Cell(x, y int) (rune, render.Color, render.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0, render.Transparent, render.Transparent
	}
	ce := c.cells[y*c.w+x]
	return ce.ch, ce.fg, ce.bg
}

// bounds is the drawable region: the screen narrowed by the clip rect.
func (c *Canvas) bounds() geom.Rect {
	b := geom.R(0, 0, c.w, c.h)
	if !c.clip.IsEmpty() {
		b = b.Intersect(c.clip)
	}
	return b
}

func (c *Canvas) at(x, y int, b geom.Rect) *cell {
	if !b.Contains(geom.Pt(x, y)) {
		return nil
	}
	return &c.cells[y*c.w+x]
}

func (c *Canvas) SetDrawColor(col render.Color) { c.color = col }
func (c *Canvas) ClipRect() geom.Rect           { return c.clip }
func (c *Canvas) SetClipRect(r geom.Rect)       { c.clip = r }

func (c *Canvas) FillRect(r geom.Rect) {
	if c.color.IsTransparent() {
		return
	}
	r = r.Intersect(c.bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			ce := &c.cells[y*c.w+x]
			ce.ch = ' '
			ce.bg = c.color
		}
	}
}

func (c *Canvas) DrawRect(r geom.Rect) {
	if r.IsEmpty() {
		return
	}
	if r.W == 1 || r.H == 1 {
		c.FillRect(r)
		return
	}
	b := c.bounds()
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		c.line(x, r.Y, '─', b)
		c.line(x, bottom, '─', b)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.line(r.X, y, '│', b)
		c.line(right, y, '│', b)
	}
	c.line(r.X, r.Y, '┌', b)
	c.line(right, r.Y, '┐', b)
	c.line(r.X, bottom, '└', b)
	c.line(right, bottom, '┘', b)
}

// DrawLines draws axis-aligned segments between consecutive points.
// Diagonal segments are drawn as their horizontal then vertical legs.
func (c *Canvas) DrawLines(pts []geom.Point) {
	b := c.bounds()
	for i := 1; i < len(pts); i++ {
		p, q := pts[i-1], pts[i]
		for x := min(p.X, q.X); x <= max(p.X, q.X); x++ {
			if p.X != q.X {
				c.line(x, p.Y, '─', b)
			}
		}
		for y := min(p.Y, q.Y); y <= max(p.Y, q.Y); y++ {
			if p.Y != q.Y {
				c.line(q.X, y, '│', b)
			}
		}
	}
	if len(pts) == 1 {
		c.line(pts[0].X, pts[0].Y, '·', b)
	}
}

func (c *Canvas) line(x, y int, ch rune, b geom.Rect) {
	if ce := c.at(x, y, b); ce != nil && !c.color.IsTransparent() {
		ce.ch = ch
		ce.fg = c.color
	}
}

// DrawText writes text one rune per cell, keeping the background.
func (c *Canvas) DrawText(text string, at geom.Point, fg render.Color) {
	b := c.bounds()
	x := at.X
	for _, r := range text {
		if ce := c.at(x, at.Y, b); ce != nil {
			ce.ch = r
			ce.fg = fg
		}
		x++
	}
}

type cellTexture struct {
	img  image.Image
	size geom.Point
}

func (t *cellTexture) Size() geom.Point { return t.size }

func (c *Canvas) CreateTexture(img image.Image) (render.Texture, error) {
	if img == nil {
		return nil, errors.New("create texture: nil image")
	}
	b := img.Bounds()
	return &cellTexture{img: img, size: geom.Pt(b.Dx(), b.Dy())}, nil
}

func (c *Canvas) DestroyTexture(t render.Texture) {}

// Copy samples the source region once per destination cell and paints the
// cell background with the sampled color.
func (c *Canvas) Copy(t render.Texture, src, dst geom.Rect) {
	ct, ok := t.(*cellTexture)
	if !ok || src.IsEmpty() || dst.IsEmpty() {
		return
	}
	origin := ct.img.Bounds().Min
	b := c.bounds()
	for y := dst.Y; y < dst.Bottom(); y++ {
		for x := dst.X; x < dst.Right(); x++ {
			ce := c.at(x, y, b)
			if ce == nil {
				continue
			}
			sx := src.X + (x-dst.X)*src.W/dst.W
			sy := src.Y + (y-dst.Y)*src.H/dst.H
			col := toColor(ct.img.At(origin.X+sx, origin.Y+sy))
			if col.A < 128 {
				continue
			}
			ce.ch = ' '
			ce.bg = col
		}
	}
}

// SetTarget only supports the screen.
func (c *Canvas) SetTarget(t render.Texture) error {
	if t != nil {
		return errOffscreenTarget
	}
	return nil
}

func toColor(col color.Color) render.Color {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return render.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

func (c *Canvas) style(fg, bg render.Color) lipgloss.Style {
	key := stylePair{fg, bg}
	if s, ok := c.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	c.styles[key] = s
	return s
}

// String renders the canvas as styled terminal lines, one style run at a
// time.
func (c *Canvas) String() string {
	var sb strings.Builder
	run := make([]rune, 0, c.w)
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				continue
			}
			run = run[:0]
			for _, ce := range row[start:x] {
				run = append(run, ce.ch)
			}
			sb.WriteString(c.style(row[start].fg, row[start].bg).Render(string(run)))
			start = x
		}
	}
	return sb.String()
}
